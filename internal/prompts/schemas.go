package prompts

import "github.com/clausewise/clausewise-backend/internal/risk"

// -------------------- Schema helpers --------------------

func ObjectSchema(properties map[string]any, required []string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func ArraySchema(items map[string]any) map[string]any {
	return map[string]any{
		"type":  "array",
		"items": items,
	}
}

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func StringArraySchema() map[string]any {
	return ArraySchema(StringSchema())
}

func StringOrNullSchema() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

func NumberSchema() map[string]any {
	return map[string]any{"type": "number"}
}

func NumberOrNullSchema() map[string]any {
	return map[string]any{"type": []any{"number", "null"}}
}

func IntOrNullSchema() map[string]any {
	return map[string]any{"type": []any{"integer", "null"}}
}

func BoolSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

func EnumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}

// -------------------- Contract extraction --------------------

func severityEnumSchema() map[string]any {
	vals := make([]string, 0, 4)
	for _, s := range risk.Severities() {
		vals = append(vals, string(s))
	}
	return EnumSchema(vals...)
}

func categoryEnumSchema() map[string]any {
	vals := make([]string, 0, 16)
	for _, c := range risk.Categories() {
		vals = append(vals, string(c))
	}
	return EnumSchema(vals...)
}

func paymentBucketEnumSchema() map[string]any {
	vals := make([]string, 0, 16)
	for _, b := range risk.PaymentTermBuckets() {
		vals = append(vals, string(b))
	}
	return EnumSchema(vals...)
}

func partySchema() map[string]any {
	return ObjectSchema(map[string]any{
		"name":    StringSchema(),
		"address": StringSchema(),
	}, []string{"name", "address"})
}

func findingSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"clause":            StringSchema(),
		"category":          categoryEnumSchema(),
		"severity":          severityEnumSchema(),
		"explanation":       StringSchema(),
		"recommendation":    StringSchema(),
		"suggestedRevision": StringOrNullSchema(),
	}, []string{"clause", "category", "severity", "explanation", "recommendation", "suggestedRevision"})
}

// ContractExtractionSchema is the strict shape the extraction prompt must
// return. Validation of semantics happens afterwards in risk.ValidateCandidate.
func ContractExtractionSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"summary": StringSchema(),
		"parties": ObjectSchema(map[string]any{
			"client":     partySchema(),
			"contractor": partySchema(),
		}, []string{"client", "contractor"}),
		"financials": ObjectSchema(map[string]any{
			"totalValue":      NumberOrNullSchema(),
			"currency":        StringSchema(),
			"paymentTerms":    paymentBucketEnumSchema(),
			"paymentTermsRaw": StringSchema(),
			"depositRequired": BoolSchema(),
			"depositAmount":   NumberOrNullSchema(),
		}, []string{"totalValue", "currency", "paymentTerms", "paymentTermsRaw", "depositRequired", "depositAmount"}),
		"scope": ArraySchema(ObjectSchema(map[string]any{
			"description":     StringSchema(),
			"category":        StringSchema(),
			"deliverableType": StringSchema(),
			"estimatedHours":  NumberOrNullSchema(),
			"revisionLimit":   IntOrNullSchema(),
		}, []string{"description", "category", "deliverableType", "estimatedHours", "revisionLimit"})),
		"dates": ObjectSchema(map[string]any{
			"effectiveDate": StringOrNullSchema(),
			"endDate":       StringOrNullSchema(),
			"milestones": ArraySchema(ObjectSchema(map[string]any{
				"description": StringSchema(),
				"dueDate":     StringOrNullSchema(),
				"amount":      NumberOrNullSchema(),
			}, []string{"description", "dueDate", "amount"})),
		}, []string{"effectiveDate", "endDate", "milestones"}),
		"risks":            ArraySchema(findingSchema()),
		"redFlags":         StringArraySchema(),
		"overallRiskScore": NumberOrNullSchema(),
	}, []string{"summary", "parties", "financials", "scope", "dates", "risks", "redFlags", "overallRiskScore"})
}

// -------------------- Brain insights --------------------

func BrainInsightsSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"forensic": ObjectSchema(map[string]any{
			"riskLevel":   severityEnumSchema(),
			"summary":     StringSchema(),
			"keyFindings": StringArraySchema(),
			"actionItems": StringArraySchema(),
		}, []string{"riskLevel", "summary", "keyFindings", "actionItems"}),
		"financial": ObjectSchema(map[string]any{
			"outlook":          EnumSchema("POSITIVE", "NEUTRAL", "NEGATIVE"),
			"projectedRevenue": StringSchema(),
			"opportunityAreas": StringArraySchema(),
		}, []string{"outlook", "projectedRevenue", "opportunityAreas"}),
	}, []string{"forensic", "financial"})
}
