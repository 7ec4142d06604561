package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulsepixeltech/chatcore/core"
)

// AnalyzeSystemPrompt instructs the model to classify a message into the
// closed intent set and emit a strict JSON payload. Shared by all vendor
// adapters so every provider is held to the same output contract.
const AnalyzeSystemPrompt = `You are an intelligent e-commerce chatbot assistant for PulsePixelTech, specializing in digital electronics.

Your task is to analyze user messages and return a JSON response with:
1. intent: One of [product_search, order_tracking, faq, greeting, goodbye, support, product_comparison, unknown]
2. confidence: Number between 0 and 1
3. entities: Object with extracted information like {category, budget, budgetKind, features, brand, orderNumber}

Examples:
- "I need a gaming laptop" -> {"intent": "product_search", "confidence": 0.9, "entities": {"category": "laptop", "features": ["gaming"]}}
- "Track order #12345" -> {"intent": "order_tracking", "confidence": 0.95, "entities": {"orderNumber": "12345"}}
- "What's your return policy?" -> {"intent": "faq", "confidence": 0.9, "entities": {}}
- "Hi" -> {"intent": "greeting", "confidence": 0.95, "entities": {}}

Respond ONLY with valid JSON.`

// BuildAnalyzeUserPrompt renders the message plus relevant session context
// for the intent analysis call.
func BuildAnalyzeUserPrompt(message string, cc ChatContext) string {
	var b strings.Builder
	b.WriteString(message)
	if cc.LastIntent != "" && cc.LastIntent != core.IntentUnknown {
		fmt.Fprintf(&b, "\n\n(Previous intent in this conversation: %s)", cc.LastIntent)
	}
	if !cc.Entities.IsZero() {
		if raw, err := json.Marshal(cc.Entities); err == nil {
			fmt.Fprintf(&b, "\n(Known entities from earlier turns: %s)", raw)
		}
	}
	return b.String()
}

// BuildGenerateSystemPrompt renders the response-generation instructions for
// a resolved intent.
func BuildGenerateSystemPrompt(result core.IntentResult, cc ChatContext) string {
	entities, _ := json.Marshal(result.Entities)
	var b strings.Builder
	b.WriteString("You are a helpful e-commerce chatbot for PulsePixelTech, specializing in digital electronics.\n\n")
	fmt.Fprintf(&b, "Context:\n- Intent: %s\n- Entities: %s\n", result.Intent, entities)
	if cc.LastIntent != "" && cc.LastIntent != core.IntentUnknown {
		fmt.Fprintf(&b, "- Previous intent: %s\n", cc.LastIntent)
	}
	b.WriteString(`
Guidelines:
- Be friendly, helpful, and professional
- Keep responses concise (2-3 sentences max)
- For product searches, mention you'll help find products
- For order tracking, mention you'll check the status
- For FAQs, provide helpful information
- Always end with a helpful question or suggestion

Respond with a natural, conversational message.`)
	return b.String()
}

// GenerateUserPrompt returns the user turn for the response-generation call.
func GenerateUserPrompt(cc ChatContext) string {
	if cc.OriginalMessage != "" {
		return cc.OriginalMessage
	}
	return "Generate an appropriate response."
}
