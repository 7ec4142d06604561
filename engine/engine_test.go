package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepixeltech/chatcore/catalog"
	"github.com/pulsepixeltech/chatcore/chain"
	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/logging"
	"github.com/pulsepixeltech/chatcore/nlu"
	"github.com/pulsepixeltech/chatcore/provider"
	"github.com/pulsepixeltech/chatcore/session"
	"github.com/pulsepixeltech/chatcore/synthesizer"
)

func newTestEngine(providers ...provider.Provider) *Engine {
	rules := nlu.New()
	cat := catalog.NewInMemoryCatalog()
	synth := synthesizer.New(cat)
	orch := chain.New(rules, synth, providers)
	store := session.NewInMemoryStore()

	return New(rules, orch, store, synth, cat, func(o *Options) {
		o.Logger = logging.NewChatLogger(&logging.ChatLoggerConfig{
			Level: logging.LogLevelError, Output: io.Discard,
		})
	})
}

func TestChat_Validation(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	cases := []struct {
		name string
		req  ChatRequest
	}{
		{"empty session id", ChatRequest{Message: "hello"}},
		{"empty message", ChatRequest{SessionID: "s1"}},
		{"blank message", ChatRequest{SessionID: "s1", Message: "   "}},
		{"oversized message", ChatRequest{SessionID: "s1", Message: string(make([]byte, MaxMessageLength+1))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Chat(context.Background(), tc.req)
			assert.True(t, core.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestChat_RuleBasedGreeting(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, core.IntentGreeting, res.Intent.Intent)
	assert.Equal(t, core.SourceRuleBased, res.Intent.Source)
	assert.Greater(t, res.Intent.Confidence, 0.6)
	assert.NotEmpty(t, res.Response.Message)
	assert.NotEmpty(t, res.Response.QuickReplies)
	assert.Len(t, res.Session.History, 1)
}

func TestChat_ProviderAnswerPassesThrough(t *testing.T) {
	t.Parallel()

	mock := provider.NewMockProvider("mock")
	mock.SetResult(core.IntentResult{Intent: core.IntentProductSearch, Confidence: 0.95})
	mock.SetMessage("I found some great laptops for you!")
	e := newTestEngine(mock)

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "I need a laptop"})
	require.NoError(t, err)

	assert.Equal(t, core.IntentProductSearch, res.Intent.Intent)
	assert.Equal(t, "mock", res.Intent.Source)
	assert.Equal(t, "I found some great laptops for you!", res.Response.Message)
	assert.Equal(t, "mock", res.Response.Source)
	assert.NotEmpty(t, res.Response.QuickReplies)
}

func TestChat_RuleEntitiesSupplementProviderResult(t *testing.T) {
	t.Parallel()

	// The provider resolves the intent but misses the order number.
	mock := provider.NewMockProvider("mock")
	mock.SetResult(core.IntentResult{Intent: core.IntentOrderTracking, Confidence: 0.9})
	e := newTestEngine(mock)

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "Track my order #ORD12345"})
	require.NoError(t, err)

	assert.Equal(t, "ORD12345", res.Intent.Entities.OrderNumber)
	assert.Equal(t, "ORD12345", res.Session.AccumulatedEntities.OrderNumber)
}

func TestChat_EntitiesAccumulateAcrossTurns(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "I need a gaming laptop"})
	require.NoError(t, err)
	assert.Equal(t, core.IntentProductSearch, res.Intent.Intent)
	assert.Equal(t, "laptop", res.Session.AccumulatedEntities.Category)

	res, err = e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "under 70000"})
	require.NoError(t, err)

	assert.Equal(t, "laptop", res.Session.AccumulatedEntities.Category)
	assert.Equal(t, float64(70000), res.Session.AccumulatedEntities.Budget)
	assert.Equal(t, core.BudgetCeiling, res.Session.AccumulatedEntities.BudgetKind)
	assert.Equal(t, core.IntentProductSearch, res.Session.LastIntent,
		"an unknown turn must not clobber the last resolved intent")
	assert.Len(t, res.Session.History, 2)
}

func TestChat_CancelledContextStillAnswers(t *testing.T) {
	t.Parallel()

	mock := provider.NewMockProvider("mock")
	e := newTestEngine(mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Chat(ctx, ChatRequest{SessionID: "s1", Message: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, core.SourceRuleBased, res.Response.Source)
	assert.NotEmpty(t, res.Response.Message)
}

func TestChat_FailingProviderFallsBackToRules(t *testing.T) {
	t.Parallel()

	mock := provider.NewMockProvider("mock")
	mock.FailWith(errors.New("service unavailable"))
	e := newTestEngine(mock)

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "What is your return policy?"})
	require.NoError(t, err)

	assert.Equal(t, core.IntentFAQ, res.Intent.Intent)
	assert.Equal(t, core.SourceRuleBased, res.Intent.Source)
	assert.Contains(t, res.Response.Message, "30 days", "rule-based FAQ answers come from the catalog")
}

func TestCompareProducts(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	cmp, err := e.CompareProducts(context.Background(), []string{"pho-001", "pho-002"}, core.Entities{})
	require.NoError(t, err)
	require.Len(t, cmp.Products, 2)
	assert.Contains(t, cmp.Summary, "Galaxy S24")
	assert.Contains(t, cmp.Summary, "iPhone 15")

	_, err = e.CompareProducts(context.Background(), []string{"pho-001"}, core.Entities{})
	assert.True(t, core.IsValidation(err))

	_, err = e.CompareProducts(context.Background(), []string{"pho-001", "nope"}, core.Entities{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCompareProducts_BudgetPreference(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	cmp, err := e.CompareProducts(context.Background(), []string{"pho-001", "pho-002"},
		core.Entities{Budget: 76000, BudgetKind: core.BudgetCeiling})
	require.NoError(t, err)

	assert.Contains(t, cmp.Summary, "Within your budget")
	assert.Contains(t, cmp.Summary, "Galaxy S24")
}

func TestRecommendations_MergeSessionEntities(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	_, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "I need a gaming laptop"})
	require.NoError(t, err)

	products, err := e.Recommendations(context.Background(), "s1",
		core.Entities{Budget: 70000, BudgetKind: core.BudgetCeiling})
	require.NoError(t, err)
	require.NotEmpty(t, products)

	for _, p := range products {
		assert.Equal(t, "laptop", p.Category)
		assert.LessOrEqual(t, p.Price, 70000.0)
		assert.Contains(t, p.Features, "gaming")
	}
}

func TestRecommendations_WithoutSession(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	products, err := e.Recommendations(context.Background(), "",
		core.Entities{Category: "headphones"})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "headphones", p.Category)
	}
}

func TestEndSession(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	_, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "I need a laptop"})
	require.NoError(t, err)

	require.NoError(t, e.EndSession("s1"))

	res, err := e.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "Hello"})
	require.NoError(t, err)
	assert.Len(t, res.Session.History, 1, "ended sessions restart empty")
	assert.Empty(t, res.Session.AccumulatedEntities.Category)
}

func TestQuickRepliesAndFAQs(t *testing.T) {
	t.Parallel()

	e := newTestEngine()

	table := e.QuickReplies()
	assert.NotEmpty(t, table[core.IntentProductSearch])

	faqs, err := e.FAQs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, faqs)
}

func TestProviderStatusAndProviders(t *testing.T) {
	t.Parallel()

	mock := provider.NewMockProvider("mock")
	e := newTestEngine(mock)

	infos := e.Providers()
	require.Len(t, infos, 1)
	assert.Equal(t, "mock", infos[0].Name)

	st, err := e.ProviderStatus(context.Background(), "mock")
	require.NoError(t, err)
	assert.Equal(t, core.HealthHealthy, st.Health.Status)

	_, err = e.ProviderStatus(context.Background(), "missing")
	assert.Error(t, err)
}
