package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pulsepixeltech/chatcore/catalog"
	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/logging"
	"github.com/pulsepixeltech/chatcore/provider"
)

// quickReplies maps each intent to its suggested follow-up actions.
var quickReplies = map[core.Intent][]string{
	core.IntentProductSearch: {"Show more options", "Compare products", "Filter by price", "Need help choosing"},
	core.IntentOrderTracking: {"Track package", "Contact delivery", "Order history", "Need help"},
	core.IntentFAQ:           {"More questions", "Contact support", "Browse products", "Return policy"},
	core.IntentGreeting:      {"Find products", "Track order", "FAQs", "Need help"},
	core.IntentGoodbye:       {"Browse products", "Track order", "Contact support"},
	core.IntentSupport:       {"Find products", "Track order", "FAQs", "Contact support"},
}

// defaultQuickReplies backs intents without a dedicated entry.
var defaultQuickReplies = []string{"Find products", "Track order", "Need help"}

// faqTopicKeywords routes FAQ questions to a catalog topic.
var faqTopicKeywords = map[string]string{
	"return":   "returns",
	"refund":   "returns",
	"ship":     "shipping",
	"deliver":  "shipping",
	"pay":      "payments",
	"payment":  "payments",
	"upi":      "payments",
	"warranty": "warranty",
	"cancel":   "cancellation",
}

// Options configures the synthesizer.
type Options struct {
	// SuggestionLimit caps how many product matches are named in a
	// product-search answer.
	SuggestionLimit int
	// Logger receives enrichment diagnostics.
	Logger logging.Logger
}

// Synthesizer composes final chat responses.
type Synthesizer struct {
	catalog catalog.Catalog
	limit   int
	logger  logging.Logger
}

// New creates a synthesizer backed by the given catalog.
func New(cat catalog.Catalog, optFns ...func(o *Options)) *Synthesizer {
	opts := Options{
		SuggestionLimit: 3,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = 3
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Synthesizer{catalog: cat, limit: opts.SuggestionLimit, logger: opts.Logger}
}

// Respond composes the templated rule-based response for a resolved intent.
// It never fails and never blocks, making it a safe terminal fallback.
func (s *Synthesizer) Respond(result core.IntentResult, cc provider.ChatContext) core.Response {
	entities := cc.Entities.Merge(result.Entities)
	return core.Response{
		Message:      templateFor(result.Intent, entities),
		QuickReplies: QuickRepliesFor(result.Intent),
		Source:       core.SourceRuleBased,
	}
}

// Build finalizes the response for one turn. Provider-generated messages pass
// through verbatim; rule-based messages are enriched with catalog data. The
// quick-reply set is always populated.
func (s *Synthesizer) Build(ctx context.Context, result core.IntentResult, cc provider.ChatContext, generated core.Response) core.Response {
	resp := generated
	if resp.Message == "" {
		resp = s.Respond(result, cc)
	}
	if len(resp.QuickReplies) == 0 {
		resp.QuickReplies = QuickRepliesFor(result.Intent)
	}
	if resp.Source == core.SourceRuleBased {
		resp.Message = s.enrich(ctx, result, cc, resp.Message)
	}
	return resp
}

// QuickRepliesFor returns the quick-reply suggestions for an intent. The
// returned slice is a copy.
func QuickRepliesFor(intent core.Intent) []string {
	src, ok := quickReplies[intent]
	if !ok {
		src = defaultQuickReplies
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// QuickReplyTable returns the full intent-to-suggestions mapping, including
// the default entry under the unknown intent.
func QuickReplyTable() map[core.Intent][]string {
	table := make(map[core.Intent][]string, len(quickReplies)+1)
	for intent := range quickReplies {
		table[intent] = QuickRepliesFor(intent)
	}
	table[core.IntentUnknown] = QuickRepliesFor(core.IntentUnknown)
	return table
}

// enrich appends catalog-backed detail to a rule-based message.
func (s *Synthesizer) enrich(ctx context.Context, result core.IntentResult, cc provider.ChatContext, message string) string {
	if s.catalog == nil {
		return message
	}
	entities := cc.Entities.Merge(result.Entities)

	switch result.Intent {
	case core.IntentOrderTracking:
		if entities.OrderNumber == "" {
			return message
		}
		order, err := s.catalog.GetOrder(ctx, entities.OrderNumber)
		if err != nil {
			s.logger.Debug("order lookup failed", "order", entities.OrderNumber, "error", err.Error())
			return message
		}
		return message + " " + orderStatusLine(order)

	case core.IntentProductSearch:
		products, err := s.catalog.SearchProducts(ctx, catalog.Query{
			Category:   entities.Category,
			Brand:      entities.Brand,
			Budget:     entities.Budget,
			BudgetKind: entities.BudgetKind,
			Features:   entities.Features,
			Limit:      s.limit,
		})
		if err != nil || len(products) == 0 {
			return message
		}
		return message + " " + suggestionLine(products)

	case core.IntentFAQ:
		faq, ok := s.matchFAQ(ctx, cc.OriginalMessage)
		if !ok {
			return message
		}
		return message + " " + faq.Answer
	}
	return message
}

// matchFAQ routes the question to a catalog FAQ entry by topic keyword.
func (s *Synthesizer) matchFAQ(ctx context.Context, question string) (catalog.FAQ, bool) {
	lowered := strings.ToLower(question)
	topic := ""
	for keyword, t := range faqTopicKeywords {
		if strings.Contains(lowered, keyword) {
			topic = t
			break
		}
	}
	if topic == "" {
		return catalog.FAQ{}, false
	}

	faqs, err := s.catalog.FAQs(ctx)
	if err != nil {
		return catalog.FAQ{}, false
	}
	for _, f := range faqs {
		if f.Topic == topic {
			return f, true
		}
	}
	return catalog.FAQ{}, false
}

func templateFor(intent core.Intent, entities core.Entities) string {
	switch intent {
	case core.IntentGreeting:
		return "Hi there! Welcome to PulsePixelTech. How can I help you today?"
	case core.IntentGoodbye:
		return "Thanks for visiting PulsePixelTech. Have a great day!"
	case core.IntentProductSearch:
		return productSearchMessage(entities)
	case core.IntentOrderTracking:
		if entities.OrderNumber != "" {
			return fmt.Sprintf("Let me check the status of order #%s for you.", entities.OrderNumber)
		}
		return "I can help you track your order. Could you share your order number?"
	case core.IntentFAQ:
		return "Happy to help with that."
	case core.IntentSupport:
		return "I'm here to help. You can also reach our support team any time at support@pulsepixeltech.com."
	case core.IntentProductComparison:
		return "I can help you compare products. Tell me which models you're considering."
	default:
		return "I'm not sure I understood that. I can help you find products, track orders or answer questions about our store."
	}
}

func productSearchMessage(entities core.Entities) string {
	var b strings.Builder
	b.WriteString("Let me help you find the right ")
	if entities.Category != "" {
		b.WriteString(entities.Category)
	} else {
		b.WriteString("product")
	}
	if entities.Brand != "" {
		b.WriteString(" from ")
		b.WriteString(titleCase(entities.Brand))
	}
	if entities.Budget > 0 {
		if entities.BudgetKind == core.BudgetFloor {
			b.WriteString(fmt.Sprintf(" above ₹%.0f", entities.Budget))
		} else {
			b.WriteString(fmt.Sprintf(" under ₹%.0f", entities.Budget))
		}
	}
	b.WriteString(".")
	return b.String()
}

func orderStatusLine(order catalog.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%s is currently %s", order.Number, statusPhrase(order.Status))
	if !order.EstimatedDelivery.IsZero() {
		fmt.Fprintf(&b, ", estimated delivery %s", order.EstimatedDelivery.Format("Mon, 2 Jan"))
	}
	b.WriteString(".")
	return b.String()
}

func statusPhrase(status catalog.OrderStatus) string {
	switch status {
	case catalog.OrderProcessing:
		return "being processed"
	case catalog.OrderShipped:
		return "shipped"
	case catalog.OrderInTransit:
		return "in transit"
	case catalog.OrderDelivered:
		return "delivered"
	default:
		return string(status)
	}
}

func suggestionLine(products []catalog.Product) string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = fmt.Sprintf("%s (₹%.0f)", p.Name, p.Price)
	}
	if len(names) == 1 {
		return fmt.Sprintf("A great match: %s.", names[0])
	}
	return fmt.Sprintf("Here are some options: %s.", strings.Join(names, ", "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
