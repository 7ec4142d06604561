package synthesizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepixeltech/chatcore/catalog"
	"github.com/pulsepixeltech/chatcore/chain"
	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/provider"
)

var _ chain.Responder = (*Synthesizer)(nil)

func TestRespond_GreetingTemplate(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Respond(core.IntentResult{Intent: core.IntentGreeting, Confidence: 0.9},
		provider.ChatContext{})

	assert.Contains(t, resp.Message, "Welcome to PulsePixelTech")
	assert.Equal(t, core.SourceRuleBased, resp.Source)
	assert.Equal(t, []string{"Find products", "Track order", "FAQs", "Need help"}, resp.QuickReplies)
}

func TestRespond_ProductSearchSubstitutesEntities(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Respond(core.IntentResult{
		Intent:     core.IntentProductSearch,
		Confidence: 0.8,
		Entities: core.Entities{
			Category:   "laptop",
			Budget:     70000,
			BudgetKind: core.BudgetCeiling,
		},
	}, provider.ChatContext{})

	assert.Contains(t, resp.Message, "laptop")
	assert.Contains(t, resp.Message, "under ₹70000")
}

func TestRespond_UsesAccumulatedSessionEntities(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	// Category came from an earlier turn; this turn only added the budget.
	resp := s.Respond(core.IntentResult{
		Intent:     core.IntentProductSearch,
		Confidence: 0.8,
		Entities:   core.Entities{Budget: 50000, BudgetKind: core.BudgetCeiling},
	}, provider.ChatContext{
		Entities: core.Entities{Category: "smartphone", Brand: "samsung"},
	})

	assert.Contains(t, resp.Message, "smartphone")
	assert.Contains(t, resp.Message, "Samsung")
	assert.Contains(t, resp.Message, "under ₹50000")
}

func TestRespond_OrderTrackingWithAndWithoutNumber(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	with := s.Respond(core.IntentResult{
		Intent:   core.IntentOrderTracking,
		Entities: core.Entities{OrderNumber: "ORD12345"},
	}, provider.ChatContext{})
	assert.Contains(t, with.Message, "#ORD12345")

	without := s.Respond(core.IntentResult{Intent: core.IntentOrderTracking}, provider.ChatContext{})
	assert.Contains(t, without.Message, "order number")
}

func TestRespond_UnknownGetsDefaultQuickReplies(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Respond(core.IntentResult{Intent: core.IntentUnknown}, provider.ChatContext{})

	assert.Equal(t, defaultQuickReplies, resp.QuickReplies)
	assert.NotEmpty(t, resp.Message)
}

func TestBuild_ProviderMessagePassesThroughVerbatim(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	generated := core.Response{Message: "Sure! Let me pull up some laptops for you 🎮", Source: "sambanova"}
	resp := s.Build(context.Background(),
		core.IntentResult{Intent: core.IntentProductSearch, Confidence: 0.9},
		provider.ChatContext{}, generated)

	assert.Equal(t, generated.Message, resp.Message)
	assert.Equal(t, "sambanova", resp.Source)
	assert.NotEmpty(t, resp.QuickReplies, "quick replies are filled even for provider messages")
}

func TestBuild_EmptyGenerationFallsBackToTemplate(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Build(context.Background(),
		core.IntentResult{Intent: core.IntentGreeting, Confidence: 0.9},
		provider.ChatContext{}, core.Response{})

	assert.Contains(t, resp.Message, "Welcome")
	assert.Equal(t, core.SourceRuleBased, resp.Source)
}

func TestBuild_EnrichesOrderStatus(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Build(context.Background(), core.IntentResult{
		Intent:   core.IntentOrderTracking,
		Entities: core.Entities{OrderNumber: "ORD12345"},
		Source:   core.SourceRuleBased,
	}, provider.ChatContext{}, core.Response{})

	assert.Contains(t, resp.Message, "in transit")
}

func TestBuild_UnknownOrderKeepsTemplate(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Build(context.Background(), core.IntentResult{
		Intent:   core.IntentOrderTracking,
		Entities: core.Entities{OrderNumber: "ORD00000"},
		Source:   core.SourceRuleBased,
	}, provider.ChatContext{}, core.Response{})

	assert.Contains(t, resp.Message, "#ORD00000")
	assert.NotContains(t, resp.Message, "currently")
}

func TestBuild_EnrichesProductSuggestions(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Build(context.Background(), core.IntentResult{
		Intent: core.IntentProductSearch,
		Entities: core.Entities{
			Category:   "laptop",
			Budget:     70000,
			BudgetKind: core.BudgetCeiling,
			Features:   []string{"gaming"},
		},
		Source: core.SourceRuleBased,
	}, provider.ChatContext{}, core.Response{})

	assert.Contains(t, resp.Message, "ASUS TUF Gaming F15")
	assert.NotContains(t, resp.Message, "Predator", "over-budget items are not suggested")
}

func TestBuild_EnrichesFAQAnswer(t *testing.T) {
	t.Parallel()

	s := New(catalog.NewInMemoryCatalog())

	resp := s.Build(context.Background(), core.IntentResult{
		Intent: core.IntentFAQ,
		Source: core.SourceRuleBased,
	}, provider.ChatContext{OriginalMessage: "What is your return policy?"}, core.Response{})

	assert.Contains(t, resp.Message, "30 days")
}

func TestQuickRepliesFor_ReturnsCopy(t *testing.T) {
	t.Parallel()

	first := QuickRepliesFor(core.IntentGreeting)
	first[0] = "mutated"

	second := QuickRepliesFor(core.IntentGreeting)
	assert.Equal(t, "Find products", second[0])
}

func TestQuickReplyTable(t *testing.T) {
	t.Parallel()

	table := QuickReplyTable()

	require.Contains(t, table, core.IntentProductSearch)
	require.Contains(t, table, core.IntentUnknown)
	assert.Equal(t, defaultQuickReplies, table[core.IntentUnknown])
	for intent, replies := range table {
		assert.NotEmpty(t, replies, "intent %s must have quick replies", intent)
	}
}
