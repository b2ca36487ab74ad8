package risk

import (
	"fmt"
	"strings"
)

// FieldError names one offending candidate field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every offending field of a candidate. Required
// fields are never silently coerced; optional fields default to null/empty.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ValidateCandidate turns an extraction candidate into a well-formed Analysis
// or a ValidationError listing every violation. The returned analysis carries
// a recomputed score; any score supplied on the candidate is discarded.
//
// Validation is idempotent: feeding a valid analysis back through produces an
// identical object.
func ValidateCandidate(c Candidate, weights WeightTable) (*Analysis, error) {
	verr := &ValidationError{}

	summary := strings.TrimSpace(c.Summary)
	if summary == "" {
		verr.add("summary", "required")
	}

	clientName := strings.TrimSpace(c.Parties.Client.Name)
	if clientName == "" {
		verr.add("parties.client.name", "required")
	}
	contractorName := strings.TrimSpace(c.Parties.Contractor.Name)
	if contractorName == "" {
		verr.add("parties.contractor.name", "required")
	}

	findings := make([]Finding, 0, len(c.Risks))
	for i, r := range c.Risks {
		clause := strings.TrimSpace(r.Clause)
		if clause == "" {
			verr.add(fmt.Sprintf("risks[%d].clause", i), "required: clause must be traceable to the source document")
		}
		sev, ok := ParseSeverity(r.Severity)
		if !ok {
			verr.add(fmt.Sprintf("risks[%d].severity", i), fmt.Sprintf("unknown severity %q", r.Severity))
		}
		category := NormalizeCategory(r.Category)
		if category == "" {
			verr.add(fmt.Sprintf("risks[%d].category", i), "required")
		}
		findings = append(findings, Finding{
			Clause:            clause,
			Category:          category,
			Severity:          sev,
			Explanation:       strings.TrimSpace(r.Explanation),
			Recommendation:    strings.TrimSpace(r.Recommendation),
			SuggestedRevision: strings.TrimSpace(r.SuggestedRevision),
		})
	}

	if c.Financials.TotalValue != nil && *c.Financials.TotalValue < 0 {
		verr.add("financials.totalValue", "must not be negative")
	}
	if c.Financials.DepositAmount != nil && *c.Financials.DepositAmount < 0 {
		verr.add("financials.depositAmount", "must not be negative")
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	scope := make([]ScopeItem, 0, len(c.Scope))
	for _, s := range c.Scope {
		desc := strings.TrimSpace(s.Description)
		if desc == "" {
			continue
		}
		scope = append(scope, ScopeItem{
			Description:     desc,
			Category:        strings.TrimSpace(s.Category),
			DeliverableType: strings.TrimSpace(s.DeliverableType),
			EstimatedHours:  s.EstimatedHours,
			RevisionLimit:   s.RevisionLimit,
		})
	}

	milestones := make([]Milestone, 0, len(c.Dates.Milestones))
	for _, m := range c.Dates.Milestones {
		desc := strings.TrimSpace(m.Description)
		if desc == "" {
			continue
		}
		milestones = append(milestones, Milestone{
			Description: desc,
			DueDate:     trimDatePtr(m.DueDate),
			Amount:      m.Amount,
		})
	}

	redFlags := make([]string, 0, len(c.RedFlags))
	for _, f := range c.RedFlags {
		if t := strings.TrimSpace(f); t != "" {
			redFlags = append(redFlags, t)
		}
	}

	analysis := &Analysis{
		Summary: summary,
		Parties: Parties{
			Client:     Party{Name: clientName, Address: strings.TrimSpace(c.Parties.Client.Address)},
			Contractor: Party{Name: contractorName, Address: strings.TrimSpace(c.Parties.Contractor.Address)},
		},
		Financials: Financials{
			TotalValue:      c.Financials.TotalValue,
			Currency:        strings.ToUpper(strings.TrimSpace(c.Financials.Currency)),
			PaymentTerms:    NormalizePaymentTermBucket(c.Financials.PaymentTerms),
			PaymentTermsRaw: strings.TrimSpace(c.Financials.PaymentTermsRaw),
			DepositRequired: c.Financials.DepositRequired,
			DepositAmount:   c.Financials.DepositAmount,
		},
		Scope: scope,
		Dates: Dates{
			EffectiveDate: trimDatePtr(c.Dates.EffectiveDate),
			EndDate:       trimDatePtr(c.Dates.EndDate),
			Milestones:    milestones,
		},
		Risks:    findings,
		RedFlags: redFlags,
	}
	analysis.OverallRiskScore = Score(analysis.Risks, weights)
	return analysis, nil
}

func trimDatePtr(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil
	}
	return &t
}
