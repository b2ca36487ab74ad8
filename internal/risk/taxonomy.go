package risk

import "strings"

// Severity is how dangerous a single finding is, independent of category.
// Totally ordered LOW < MEDIUM < HIGH < CRITICAL.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// ParseSeverity normalizes case/whitespace. Severity is the ordered axis the
// score depends on, so unknown values are rejected rather than defaulted.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := severityRank[sev]
	return sev, ok
}

func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast reports whether s is equal to or more severe than other.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// RiskCategory is the closed taxonomy of contract risk categories.
type RiskCategory string

const (
	CategoryIPOwnership        RiskCategory = "IP_OWNERSHIP"
	CategoryPaymentTerms       RiskCategory = "PAYMENT_TERMS"
	CategoryScopeAmbiguity     RiskCategory = "SCOPE_AMBIGUITY"
	CategoryLiability          RiskCategory = "LIABILITY"
	CategoryTermination        RiskCategory = "TERMINATION"
	CategoryNonCompete         RiskCategory = "NON_COMPETE"
	CategoryIndemnification    RiskCategory = "INDEMNIFICATION"
	CategoryConfidentiality    RiskCategory = "CONFIDENTIALITY"
	CategoryUnlimitedRevisions RiskCategory = "UNLIMITED_REVISIONS"
	CategoryWorkForHire        RiskCategory = "WORK_FOR_HIRE"
	CategoryKillFee            RiskCategory = "KILL_FEE"
	CategoryOther              RiskCategory = "OTHER"
)

var knownCategories = map[RiskCategory]bool{
	CategoryIPOwnership:        true,
	CategoryPaymentTerms:       true,
	CategoryScopeAmbiguity:     true,
	CategoryLiability:          true,
	CategoryTermination:        true,
	CategoryNonCompete:         true,
	CategoryIndemnification:    true,
	CategoryConfidentiality:    true,
	CategoryUnlimitedRevisions: true,
	CategoryWorkForHire:        true,
	CategoryKillFee:            true,
	CategoryOther:              true,
}

func Categories() []RiskCategory {
	return []RiskCategory{
		CategoryIPOwnership,
		CategoryPaymentTerms,
		CategoryScopeAmbiguity,
		CategoryLiability,
		CategoryTermination,
		CategoryNonCompete,
		CategoryIndemnification,
		CategoryConfidentiality,
		CategoryUnlimitedRevisions,
		CategoryWorkForHire,
		CategoryKillFee,
		CategoryOther,
	}
}

// NormalizeCategory uppercases and trims. Unknown categories are kept as-is
// so the finding stays traceable; scoring treats them with the default weight.
func NormalizeCategory(s string) RiskCategory {
	return RiskCategory(strings.ToUpper(strings.TrimSpace(s)))
}

func (c RiskCategory) Known() bool {
	return knownCategories[c]
}

// PaymentTermBucket classifies how a contract pays out.
type PaymentTermBucket string

const (
	PaymentNet15        PaymentTermBucket = "NET_15"
	PaymentNet30        PaymentTermBucket = "NET_30"
	PaymentNet45        PaymentTermBucket = "NET_45"
	PaymentNet60        PaymentTermBucket = "NET_60"
	PaymentNet90        PaymentTermBucket = "NET_90"
	PaymentOnCompletion PaymentTermBucket = "ON_COMPLETION"
	PaymentMilestone    PaymentTermBucket = "MILESTONE"
	PaymentUpfront      PaymentTermBucket = "UPFRONT"
	PaymentOther        PaymentTermBucket = "OTHER"
)

var knownPaymentBuckets = map[PaymentTermBucket]bool{
	PaymentNet15:        true,
	PaymentNet30:        true,
	PaymentNet45:        true,
	PaymentNet60:        true,
	PaymentNet90:        true,
	PaymentOnCompletion: true,
	PaymentMilestone:    true,
	PaymentUpfront:      true,
	PaymentOther:        true,
}

func PaymentTermBuckets() []PaymentTermBucket {
	return []PaymentTermBucket{
		PaymentNet15, PaymentNet30, PaymentNet45, PaymentNet60, PaymentNet90,
		PaymentOnCompletion, PaymentMilestone, PaymentUpfront, PaymentOther,
	}
}

// NormalizePaymentTermBucket falls back to OTHER for values outside the
// closed set; the raw string is preserved separately on the analysis.
func NormalizePaymentTermBucket(s string) PaymentTermBucket {
	b := PaymentTermBucket(strings.ToUpper(strings.TrimSpace(s)))
	if knownPaymentBuckets[b] {
		return b
	}
	return PaymentOther
}
