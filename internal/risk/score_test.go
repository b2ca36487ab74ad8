package risk

import (
	"math/rand"
	"testing"
)

func TestScoreEmptyFindings(t *testing.T) {
	w := DefaultWeightTable()
	if got := Score(nil, w); got != 100 {
		t.Fatalf("empty findings: got %d, want 100", got)
	}
	if got := Score([]Finding{}, w); got != 100 {
		t.Fatalf("empty slice: got %d, want 100", got)
	}
}

func TestScoreSingleCriticalIPOwnership(t *testing.T) {
	w := DefaultWeightTable()
	findings := []Finding{
		{Clause: "All work product is assigned to Client.", Category: CategoryIPOwnership, Severity: SeverityCritical},
	}
	if got := Score(findings, w); got != 55 {
		t.Fatalf("got %d, want 55", got)
	}
}

func TestScoreHighConfidentialityPlusMediumLiability(t *testing.T) {
	w := DefaultWeightTable()
	findings := []Finding{
		{Clause: "Confidentiality survives in perpetuity.", Category: CategoryConfidentiality, Severity: SeverityHigh},
		{Clause: "Contractor liable for consequential damages.", Category: CategoryLiability, Severity: SeverityMedium},
	}
	if got := Score(findings, w); got != 76 {
		t.Fatalf("got %d, want 76", got)
	}
}

func TestScoreClampsToZero(t *testing.T) {
	w := DefaultWeightTable()
	findings := make([]Finding, 0, 5)
	for i := 0; i < 5; i++ {
		findings = append(findings, Finding{Clause: "IP assignment.", Category: CategoryIPOwnership, Severity: SeverityCritical})
	}
	if got := Score(findings, w); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	w := DefaultWeightTable()
	// LOW (5) x OTHER (0.5) deducts 2.5; 97.5 rounds to 98.
	findings := []Finding{
		{Clause: "Minor notice clause.", Category: CategoryOther, Severity: SeverityLow},
	}
	if got := Score(findings, w); got != 98 {
		t.Fatalf("got %d, want 98", got)
	}
}

func TestScoreUnknownCategoryUsesDefaultWeight(t *testing.T) {
	w := DefaultWeightTable()
	findings := []Finding{
		{Clause: "Something novel.", Category: RiskCategory("FORCE_MAJEURE"), Severity: SeverityMedium},
	}
	// 10 x 1.0 default
	if got := Score(findings, w); got != 90 {
		t.Fatalf("got %d, want 90", got)
	}
}

func TestScoreOrderInvariant(t *testing.T) {
	w := DefaultWeightTable()
	findings := []Finding{
		{Clause: "a", Category: CategoryIPOwnership, Severity: SeverityCritical},
		{Clause: "b", Category: CategoryPaymentTerms, Severity: SeverityHigh},
		{Clause: "c", Category: CategoryScopeAmbiguity, Severity: SeverityMedium},
		{Clause: "d", Category: CategoryConfidentiality, Severity: SeverityLow},
		{Clause: "e", Category: CategoryOther, Severity: SeverityMedium},
	}
	want := Score(findings, w)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Finding, len(findings))
		copy(shuffled, findings)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Score(shuffled, w); got != want {
			t.Fatalf("permutation %d: got %d, want %d", i, got, want)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	w := DefaultWeightTable()
	findings := []Finding{
		{Clause: "net 90 payment", Category: CategoryPaymentTerms, Severity: SeverityHigh},
		{Clause: "broad indemnity", Category: CategoryIndemnification, Severity: SeverityHigh},
	}
	first := Score(findings, w)
	for i := 0; i < 100; i++ {
		if got := Score(findings, w); got != first {
			t.Fatalf("run %d: got %d, want %d", i, got, first)
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	w := DefaultWeightTable()
	base := []Finding{
		{Clause: "vague scope", Category: CategoryScopeAmbiguity, Severity: SeverityMedium},
	}
	baseScore := Score(base, w)

	// Adding a finding never raises the score.
	more := append([]Finding{}, base...)
	more = append(more, Finding{Clause: "late payment", Category: CategoryPaymentTerms, Severity: SeverityLow})
	if got := Score(more, w); got > baseScore {
		t.Fatalf("adding a finding raised score: %d > %d", got, baseScore)
	}

	// Raising severity never raises the score.
	worse := []Finding{
		{Clause: "vague scope", Category: CategoryScopeAmbiguity, Severity: SeverityCritical},
	}
	if got := Score(worse, w); got > baseScore {
		t.Fatalf("raising severity raised score: %d > %d", got, baseScore)
	}
}

func TestDeduction(t *testing.T) {
	w := DefaultWeightTable()
	f := Finding{Category: CategoryPaymentTerms, Severity: SeverityHigh}
	if got := Deduction(f, w); got != 26 {
		t.Fatalf("got %v, want 26", got)
	}
}
