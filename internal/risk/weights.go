package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeightTable holds the scoring weights as data so they can be tuned and
// tested independently of the scoring function's control flow.
type WeightTable struct {
	Severity map[Severity]float64     `yaml:"severity"`
	Category map[RiskCategory]float64 `yaml:"category"`
	// DefaultCategory applies to categories outside the closed taxonomy.
	DefaultCategory float64 `yaml:"default_category"`
}

// DefaultWeightTable encodes the domain judgment that IP and payment issues
// matter more to a freelancer than boilerplate confidentiality language.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Severity: map[Severity]float64{
			SeverityCritical: 30,
			SeverityHigh:     20,
			SeverityMedium:   10,
			SeverityLow:      5,
		},
		Category: map[RiskCategory]float64{
			CategoryIPOwnership:     1.5,
			CategoryPaymentTerms:    1.3,
			CategoryLiability:       1.2,
			CategoryIndemnification: 1.2,
			CategoryTermination:     1.0,
			CategoryScopeAmbiguity:  1.0,
			CategoryNonCompete:      0.8,
			CategoryConfidentiality: 0.6,
			CategoryOther:           0.5,
		},
		DefaultCategory: 1.0,
	}
}

// LoadWeightTable reads YAML overrides on top of the defaults. Entries not
// present in the file keep their default value.
func LoadWeightTable(path string) (WeightTable, error) {
	table := DefaultWeightTable()
	raw, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read weight table: %w", err)
	}

	var overrides struct {
		Severity        map[string]float64 `yaml:"severity"`
		Category        map[string]float64 `yaml:"category"`
		DefaultCategory *float64           `yaml:"default_category"`
	}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return table, fmt.Errorf("parse weight table: %w", err)
	}

	for k, v := range overrides.Severity {
		sev, ok := ParseSeverity(k)
		if !ok {
			return table, fmt.Errorf("weight table: unknown severity %q", k)
		}
		if v < 0 {
			return table, fmt.Errorf("weight table: negative weight for severity %q", k)
		}
		table.Severity[sev] = v
	}
	for k, v := range overrides.Category {
		if v < 0 {
			return table, fmt.Errorf("weight table: negative weight for category %q", k)
		}
		table.Category[NormalizeCategory(k)] = v
	}
	if overrides.DefaultCategory != nil {
		if *overrides.DefaultCategory < 0 {
			return table, fmt.Errorf("weight table: negative default category weight")
		}
		table.DefaultCategory = *overrides.DefaultCategory
	}
	return table, nil
}

func (w WeightTable) severityWeight(s Severity) float64 {
	return w.Severity[s]
}

func (w WeightTable) categoryWeight(c RiskCategory) float64 {
	if v, ok := w.Category[c]; ok {
		return v
	}
	return w.DefaultCategory
}
