package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Extraction
	DocumentText string
	FileName     string
	MimeType     string

	// Portfolio synthesis
	ContractsJSON string
	ClientsJSON   string

	// Negotiation email
	ClientName     string
	ContractorName string
	ContractTitle  string
	Tone           string
	IssuesJSON     string
}
