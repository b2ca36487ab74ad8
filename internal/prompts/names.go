package prompts

type PromptName string

const (
	// Extraction
	PromptContractExtraction PromptName = "contract_extraction"

	// Portfolio synthesis
	PromptBrainInsights PromptName = "brain_insights"

	// Negotiation (free text)
	PromptNegotiationEmail PromptName = "negotiation_email"
)
