package risk

// Candidate is the unvalidated analysis shape returned by the structured
// extraction collaborator. Nothing downstream of ValidateCandidate ever
// sees this type.
type Candidate struct {
	Summary string `json:"summary"`

	Parties struct {
		Client     CandidateParty `json:"client"`
		Contractor CandidateParty `json:"contractor"`
	} `json:"parties"`

	Financials struct {
		TotalValue      *float64 `json:"totalValue"`
		Currency        string   `json:"currency"`
		PaymentTerms    string   `json:"paymentTerms"`
		PaymentTermsRaw string   `json:"paymentTermsRaw"`
		DepositRequired bool     `json:"depositRequired"`
		DepositAmount   *float64 `json:"depositAmount"`
	} `json:"financials"`

	Scope []CandidateScopeItem `json:"scope"`

	Dates struct {
		EffectiveDate *string              `json:"effectiveDate"`
		EndDate       *string              `json:"endDate"`
		Milestones    []CandidateMilestone `json:"milestones"`
	} `json:"dates"`

	Risks    []CandidateFinding `json:"risks"`
	RedFlags []string           `json:"redFlags"`

	// Models sometimes volunteer a score; it is always discarded and
	// recomputed from the findings.
	OverallRiskScore *float64 `json:"overallRiskScore"`
}

type CandidateParty struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CandidateScopeItem struct {
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	DeliverableType string   `json:"deliverableType"`
	EstimatedHours  *float64 `json:"estimatedHours"`
	RevisionLimit   *int     `json:"revisionLimit"`
}

type CandidateMilestone struct {
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Amount      *float64 `json:"amount"`
}

type CandidateFinding struct {
	Clause            string `json:"clause"`
	Category          string `json:"category"`
	Severity          string `json:"severity"`
	Explanation       string `json:"explanation"`
	Recommendation    string `json:"recommendation"`
	SuggestedRevision string `json:"suggestedRevision"`
}

// Analysis is a validated contract analysis. Immutable once persisted,
// except for score recomputation when the weight tables change.
type Analysis struct {
	Summary    string     `json:"summary"`
	Parties    Parties    `json:"parties"`
	Financials Financials `json:"financials"`
	Scope      []ScopeItem `json:"scope"`
	Dates      Dates       `json:"dates"`
	Risks      []Finding   `json:"risks"`
	RedFlags   []string    `json:"redFlags"`

	// OverallRiskScore is derived from Risks by Score; never supplied by
	// the extraction step.
	OverallRiskScore int `json:"overallRiskScore"`
}

type Parties struct {
	Client     Party `json:"client"`
	Contractor Party `json:"contractor"`
}

type Party struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type Financials struct {
	TotalValue      *float64          `json:"totalValue"`
	Currency        string            `json:"currency"`
	PaymentTerms    PaymentTermBucket `json:"paymentTerms"`
	PaymentTermsRaw string            `json:"paymentTermsRaw"`
	DepositRequired bool              `json:"depositRequired"`
	DepositAmount   *float64          `json:"depositAmount"`
}

type ScopeItem struct {
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	DeliverableType string   `json:"deliverableType"`
	EstimatedHours  *float64 `json:"estimatedHours"`
	RevisionLimit   *int     `json:"revisionLimit"`
}

type Dates struct {
	EffectiveDate *string     `json:"effectiveDate"`
	EndDate       *string     `json:"endDate"`
	Milestones    []Milestone `json:"milestones"`
}

type Milestone struct {
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Amount      *float64 `json:"amount"`
}
