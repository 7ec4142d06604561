package core

import "strings"

// Intent is the closed-set category describing what the user wants. Values
// use snake_case on the wire to stay compatible with the public chat API.
type Intent string

const (
	// IntentProductSearch covers queries looking for products to buy.
	IntentProductSearch Intent = "product_search"
	// IntentOrderTracking covers order status and delivery questions.
	IntentOrderTracking Intent = "order_tracking"
	// IntentFAQ covers policy and store information questions.
	IntentFAQ Intent = "faq"
	// IntentGreeting covers conversation openers.
	IntentGreeting Intent = "greeting"
	// IntentGoodbye covers conversation closers.
	IntentGoodbye Intent = "goodbye"
	// IntentSupport covers requests for human or technical assistance.
	IntentSupport Intent = "support"
	// IntentProductComparison covers requests to compare products.
	IntentProductComparison Intent = "product_comparison"
	// IntentUnknown is the terminal catch-all and is never omitted from the set.
	IntentUnknown Intent = "unknown"
)

// Intents lists every member of the closed intent set.
var Intents = []Intent{
	IntentProductSearch,
	IntentOrderTracking,
	IntentFAQ,
	IntentGreeting,
	IntentGoodbye,
	IntentSupport,
	IntentProductComparison,
	IntentUnknown,
}

// Valid reports whether the intent is a member of the closed set.
func (i Intent) Valid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

// String returns the wire representation of the intent.
func (i Intent) String() string { return string(i) }

// ParseIntent maps a free-form string (as emitted by a remote provider) onto
// the closed intent set. Matching is case-insensitive and tolerates dashes in
// place of underscores. The second return value is false when the string does
// not name a known intent.
func ParseIntent(s string) (Intent, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	candidate := Intent(normalized)
	if candidate.Valid() {
		return candidate, true
	}
	return IntentUnknown, false
}
