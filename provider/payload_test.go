package provider

import (
	"testing"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/stretchr/testify/assert"
)

// Interface compliance (compile-time assertion)
var _ Provider = (*MockProvider)(nil)

func TestParseIntentPayload_Valid(t *testing.T) {
	raw := `{"intent": "product_search", "confidence": 0.9, "entities": {"category": "laptop", "budget": 70000, "features": ["gaming"]}}`

	result, err := ParseIntentPayload("sambanova", raw)

	assert.NoError(t, err)
	assert.Equal(t, core.IntentProductSearch, result.Intent)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, "laptop", result.Entities.Category)
	assert.Equal(t, 70000.0, result.Entities.Budget)
	assert.Equal(t, []string{"gaming"}, result.Entities.Features)
	assert.Equal(t, "sambanova", result.Source)
}

func TestParseIntentPayload_FencedAndWrapped(t *testing.T) {
	raw := "Sure! Here is the analysis:\n```json\n{\"intent\": \"greeting\", \"confidence\": 0.95, \"entities\": {}}\n```"

	result, err := ParseIntentPayload("openai", raw)

	assert.NoError(t, err)
	assert.Equal(t, core.IntentGreeting, result.Intent)
}

func TestParseIntentPayload_UppercaseIntent(t *testing.T) {
	raw := `{"intent": "ORDER_TRACKING", "confidence": 0.8, "entities": {"orderNumber": "ORD12345"}}`

	result, err := ParseIntentPayload("anthropic", raw)

	assert.NoError(t, err)
	assert.Equal(t, core.IntentOrderTracking, result.Intent)
	assert.Equal(t, "ORD12345", result.Entities.OrderNumber)
}

func TestParseIntentPayload_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I think the user wants a laptop."},
		{"unknown intent", `{"intent": "buy_now", "confidence": 0.9, "entities": {}}`},
		{"confidence too high", `{"intent": "faq", "confidence": 1.7, "entities": {}}`},
		{"confidence negative", `{"intent": "faq", "confidence": -0.2, "entities": {}}`},
		{"confidence missing", `{"intent": "faq", "entities": {}}`},
		{"truncated object", `{"intent": "faq", "confidence": 0.9`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntentPayload("sambanova", tt.raw)

			assert.Error(t, err)
			assert.Equal(t, core.ErrKindMalformedResponse, core.ErrorKindOf(err),
				"schema violations must surface as MalformedResponse, never coerced")
		})
	}
}

func TestParseIntentPayload_EntitiesAreBestEffort(t *testing.T) {
	raw := `{"intent": "product_search", "confidence": 0.85, "entities": {"budget": -5, "features": [" gaming ", ""]}}`

	result, err := ParseIntentPayload("sambanova", raw)

	assert.NoError(t, err)
	assert.Zero(t, result.Entities.Budget, "non-positive budgets are dropped")
	assert.Equal(t, []string{"gaming"}, result.Entities.Features)
}

func TestMockProvider_CountsAndFailure(t *testing.T) {
	mock := NewMockProvider("mock-a")
	ctx := t.Context()

	_, err := mock.AnalyzeIntent(ctx, "hello", ChatContext{})
	assert.NoError(t, err)

	mock.FailWith(core.NewProviderError("mock-a", core.ErrKindTransport, assert.AnError))
	_, err = mock.AnalyzeIntent(ctx, "hello", ChatContext{})
	assert.Error(t, err)
	assert.Equal(t, 2, mock.AnalyzeCalls())

	health := mock.HealthCheck(ctx)
	assert.Equal(t, core.HealthError, health.Status)
}
