package prompts

import (
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	RegisterAll()
	m.Run()
}

func TestBuildContractExtraction(t *testing.T) {
	p, err := Build(PromptContractExtraction, Input{
		DocumentText: "This agreement is between Acme and Jane.",
		FileName:     "contract.pdf",
		MimeType:     "application/pdf",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.SchemaName != "contract_extraction" {
		t.Fatalf("schema name: %q", p.SchemaName)
	}
	if p.Schema == nil {
		t.Fatalf("schema missing")
	}
	if !strings.Contains(p.User, "This agreement is between Acme and Jane.") {
		t.Fatalf("user prompt missing document text:\n%s", p.User)
	}
	if !strings.Contains(p.System, "IP_OWNERSHIP") {
		t.Fatalf("system prompt missing taxonomy")
	}
}

func TestBuildContractExtractionRequiresDocument(t *testing.T) {
	if _, err := Build(PromptContractExtraction, Input{DocumentText: "   "}); err == nil {
		t.Fatalf("expected error for empty document text")
	}
}

func TestBuildNegotiationEmailIsFreeText(t *testing.T) {
	p, err := Build(PromptNegotiationEmail, Input{
		ClientName:     "Acme Corp",
		ContractorName: "Jane Doe",
		ContractTitle:  "Website Redesign",
		Tone:           "friendly",
		IssuesJSON:     `[{"category":"PAYMENT_TERMS"}]`,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !p.FreeText() {
		t.Fatalf("negotiation email must be free text")
	}
	if p.Schema != nil {
		t.Fatalf("free-text prompt must carry no schema")
	}
	if !strings.Contains(p.User, "Acme Corp") {
		t.Fatalf("user prompt missing client name")
	}
	if !strings.Contains(p.System, "friendly") {
		t.Fatalf("system prompt missing tone")
	}
}

func TestBuildNegotiationEmailRejectsBadTone(t *testing.T) {
	_, err := Build(PromptNegotiationEmail, Input{
		ClientName: "Acme",
		IssuesJSON: "[]",
		Tone:       "aggressive",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported tone")
	}
}

func TestBuildBrainInsights(t *testing.T) {
	p, err := Build(PromptBrainInsights, Input{
		ContractsJSON: "[]",
		ClientsJSON:   "[]",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.SchemaName != "brain_insights" {
		t.Fatalf("schema name: %q", p.SchemaName)
	}
	if !strings.Contains(p.System, "POSITIVE") {
		t.Fatalf("system prompt missing outlook values")
	}
}

func TestBuildUnknownPrompt(t *testing.T) {
	if _, err := Build(PromptName("nonexistent"), Input{}); err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
}
