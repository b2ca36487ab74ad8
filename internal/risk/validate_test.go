package risk

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func validCandidate() Candidate {
	var c Candidate
	c.Summary = "Twelve week website build for Acme."
	c.Parties.Client.Name = "Acme Corp"
	c.Parties.Contractor.Name = "Jane Doe"
	c.Financials.Currency = "usd"
	c.Financials.PaymentTerms = "NET_30"
	c.Financials.PaymentTermsRaw = "Net thirty days from invoice"
	c.Risks = []CandidateFinding{
		{
			Clause:         "Client owns all work product upon creation.",
			Category:       "ip_ownership",
			Severity:       "critical",
			Explanation:    "Full assignment before payment.",
			Recommendation: "Condition assignment on full payment.",
		},
	}
	c.RedFlags = []string{"IP assigned before payment"}
	return c
}

func TestValidateCandidateHappyPath(t *testing.T) {
	w := DefaultWeightTable()
	analysis, err := ValidateCandidate(validCandidate(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.OverallRiskScore != 55 {
		t.Fatalf("score: got %d, want 55", analysis.OverallRiskScore)
	}
	if analysis.Financials.Currency != "USD" {
		t.Fatalf("currency not normalized: %q", analysis.Financials.Currency)
	}
	if analysis.Risks[0].Severity != SeverityCritical {
		t.Fatalf("severity not normalized: %q", analysis.Risks[0].Severity)
	}
	if analysis.Risks[0].Category != CategoryIPOwnership {
		t.Fatalf("category not normalized: %q", analysis.Risks[0].Category)
	}
}

func TestValidateCandidateEnumeratesAllFailures(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	c.Summary = "  "
	c.Parties.Contractor.Name = ""
	c.Risks = append(c.Risks, CandidateFinding{
		Clause:   "",
		Category: "LIABILITY",
		Severity: "EXTREME",
	})
	neg := -100.0
	c.Financials.TotalValue = &neg

	_, err := ValidateCandidate(c, w)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	wantFields := map[string]bool{
		"summary":                 false,
		"parties.contractor.name": false,
		"risks[1].clause":         false,
		"risks[1].severity":       false,
		"financials.totalValue":   false,
	}
	for _, f := range vErr.Fields {
		if _, ok := wantFields[f.Field]; ok {
			wantFields[f.Field] = true
		}
	}
	for field, seen := range wantFields {
		if !seen {
			t.Fatalf("missing field error for %s; got %v", field, vErr.Fields)
		}
	}
}

func TestValidateCandidateRejectsUnknownSeverity(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	c.Risks[0].Severity = "SEVERE"
	_, err := ValidateCandidate(c, w)
	if err == nil {
		t.Fatalf("expected error for unknown severity")
	}
	if !strings.Contains(err.Error(), "severity") {
		t.Fatalf("error should name severity field: %v", err)
	}
}

func TestValidateCandidateKeepsUnknownCategory(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	c.Risks[0].Category = "force_majeure"
	analysis, err := ValidateCandidate(c, w)
	if err != nil {
		t.Fatalf("unknown category must not fail validation: %v", err)
	}
	if analysis.Risks[0].Category != RiskCategory("FORCE_MAJEURE") {
		t.Fatalf("category should survive normalization: %q", analysis.Risks[0].Category)
	}
	// CRITICAL x default 1.0
	if analysis.OverallRiskScore != 70 {
		t.Fatalf("score: got %d, want 70", analysis.OverallRiskScore)
	}
}

func TestValidateCandidatePaymentBucketFallsBackToOther(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	c.Financials.PaymentTerms = "whenever the client feels like it"
	analysis, err := ValidateCandidate(c, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Financials.PaymentTerms != PaymentOther {
		t.Fatalf("got %q, want OTHER", analysis.Financials.PaymentTerms)
	}
	if analysis.Financials.PaymentTermsRaw == "" {
		t.Fatalf("raw payment terms must be preserved")
	}
}

func TestValidateCandidateDiscardsSuppliedScore(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	supplied := 3.0
	c.OverallRiskScore = &supplied
	analysis, err := ValidateCandidate(c, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.OverallRiskScore != 55 {
		t.Fatalf("supplied score must be recomputed: got %d, want 55", analysis.OverallRiskScore)
	}
}

func TestValidateCandidateIdempotent(t *testing.T) {
	w := DefaultWeightTable()
	first, err := ValidateCandidate(validCandidate(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Feed the validated analysis back through as a candidate.
	var again Candidate
	again.Summary = first.Summary
	again.Parties.Client.Name = first.Parties.Client.Name
	again.Parties.Client.Address = first.Parties.Client.Address
	again.Parties.Contractor.Name = first.Parties.Contractor.Name
	again.Parties.Contractor.Address = first.Parties.Contractor.Address
	again.Financials.TotalValue = first.Financials.TotalValue
	again.Financials.Currency = first.Financials.Currency
	again.Financials.PaymentTerms = string(first.Financials.PaymentTerms)
	again.Financials.PaymentTermsRaw = first.Financials.PaymentTermsRaw
	again.Financials.DepositRequired = first.Financials.DepositRequired
	again.Financials.DepositAmount = first.Financials.DepositAmount
	again.RedFlags = first.RedFlags
	for _, f := range first.Risks {
		again.Risks = append(again.Risks, CandidateFinding{
			Clause:            f.Clause,
			Category:          string(f.Category),
			Severity:          string(f.Severity),
			Explanation:       f.Explanation,
			Recommendation:    f.Recommendation,
			SuggestedRevision: f.SuggestedRevision,
		})
	}

	second, err := ValidateCandidate(again, w)
	if err != nil {
		t.Fatalf("revalidation failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateCandidateDropsEmptyScopeAndMilestones(t *testing.T) {
	w := DefaultWeightTable()
	c := validCandidate()
	c.Scope = []CandidateScopeItem{
		{Description: "  "},
		{Description: "Design homepage", DeliverableType: "design"},
	}
	c.Dates.Milestones = []CandidateMilestone{
		{Description: ""},
		{Description: "Launch"},
	}
	analysis, err := ValidateCandidate(c, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.Scope) != 1 {
		t.Fatalf("scope: got %d items, want 1", len(analysis.Scope))
	}
	if len(analysis.Dates.Milestones) != 1 {
		t.Fatalf("milestones: got %d, want 1", len(analysis.Dates.Milestones))
	}
}
