package prompts

// Prompt is a fully rendered request ready to pass into the AI client.
// Schema is nil for free-text prompts (negotiation email prose).
type Prompt struct {
	Name       string
	Version    int
	SchemaName string
	Schema     map[string]any
	System     string
	User       string
}

// FreeText reports whether the prompt expects plain prose rather than a
// schema-constrained JSON object.
func (p Prompt) FreeText() bool {
	return p.Schema == nil
}
