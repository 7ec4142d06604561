package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulsepixeltech/chatcore/core"
)

// intentPayload mirrors the JSON document providers are instructed to emit.
// Budget is decoded loosely (models emit numbers or numeric strings) but the
// validated fields (intent, confidence) are strict.
type intentPayload struct {
	Intent     string        `json:"intent"`
	Confidence *float64      `json:"confidence"`
	Entities   entityPayload `json:"entities"`
}

type entityPayload struct {
	Category    string      `json:"category"`
	Brand       string      `json:"brand"`
	Budget      json.Number `json:"budget"`
	BudgetKind  string      `json:"budgetKind"`
	Features    []string    `json:"features"`
	OrderNumber string      `json:"orderNumber"`
}

// ParseIntentPayload validates a provider's raw completion text against the
// IntentResult schema. The output is accepted only if it parses as JSON, the
// intent is a member of the closed set and the confidence is numeric in
// [0,1]; any violation yields a MalformedResponse provider error. Entities
// are decoded best-effort since they are free-form extraction output.
func ParseIntentPayload(providerName, raw string) (core.IntentResult, error) {
	doc := extractJSONObject(raw)
	if doc == "" {
		return core.IntentResult{}, core.NewProviderError(providerName, core.ErrKindMalformedResponse,
			fmt.Errorf("no JSON object in completion"))
	}

	var payload intentPayload
	decoder := json.NewDecoder(strings.NewReader(doc))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return core.IntentResult{}, core.NewProviderError(providerName, core.ErrKindMalformedResponse,
			fmt.Errorf("decode completion: %w", err))
	}

	intent, ok := core.ParseIntent(payload.Intent)
	if !ok {
		return core.IntentResult{}, core.NewProviderError(providerName, core.ErrKindMalformedResponse,
			fmt.Errorf("intent %q outside the closed set", payload.Intent))
	}
	if payload.Confidence == nil {
		return core.IntentResult{}, core.NewProviderError(providerName, core.ErrKindMalformedResponse,
			fmt.Errorf("confidence missing"))
	}
	confidence := *payload.Confidence
	if confidence < 0 || confidence > 1 {
		return core.IntentResult{}, core.NewProviderError(providerName, core.ErrKindMalformedResponse,
			fmt.Errorf("confidence %v outside [0,1]", confidence))
	}

	return core.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   payload.Entities.toEntities(),
		Source:     providerName,
	}, nil
}

func (p entityPayload) toEntities() core.Entities {
	e := core.Entities{
		Category:    strings.TrimSpace(p.Category),
		Brand:       strings.TrimSpace(p.Brand),
		OrderNumber: strings.TrimSpace(p.OrderNumber),
	}
	if budget, err := p.Budget.Float64(); err == nil && budget > 0 {
		e.Budget = budget
		switch core.BudgetKind(p.BudgetKind) {
		case core.BudgetCeiling, core.BudgetFloor:
			e.BudgetKind = core.BudgetKind(p.BudgetKind)
		}
	}
	for _, f := range p.Features {
		if f = strings.TrimSpace(f); f != "" {
			e.Features = append(e.Features, f)
		}
	}
	return e
}

// extractJSONObject returns the first top-level {...} block of the text.
// Models frequently wrap payloads in prose or markdown fences.
func extractJSONObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}
