package risk

import "math"

// Finding is one extracted risky clause. Clause text must be traceable to the
// source document; the engine never fabricates it.
type Finding struct {
	Clause            string       `json:"clause"`
	Category          RiskCategory `json:"category"`
	Severity          Severity     `json:"severity"`
	Explanation       string       `json:"explanation"`
	Recommendation    string       `json:"recommendation"`
	SuggestedRevision string       `json:"suggestedRevision,omitempty"`
}

// Score computes the composite safety score for a multiset of findings.
//
// Start at 100; each finding deducts severityWeight * categoryWeight; clamp
// to [0, 100]; round half-up. Pure and order-invariant: two analyses with
// identical finding multisets always score identically, regardless of input
// order. Empty input means no detected risk and scores 100.
func Score(findings []Finding, weights WeightTable) int {
	total := 0.0
	for _, f := range findings {
		total += weights.severityWeight(f.Severity) * weights.categoryWeight(f.Category)
	}
	raw := 100.0 - total
	if raw <= 0 {
		return 0
	}
	if raw >= 100 {
		return 100
	}
	return int(math.Floor(raw + 0.5))
}

// Deduction returns the exact deduction a single finding contributes,
// exposed for explanation surfaces.
func Deduction(f Finding, weights WeightTable) float64 {
	return weights.severityWeight(f.Severity) * weights.categoryWeight(f.Category)
}
