package chatcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/engine"
	"github.com/pulsepixeltech/chatcore/provider"
)

func TestNew_DefaultsRunRuleBased(t *testing.T) {
	cc, err := New()
	require.NoError(t, err)

	res, err := cc.Chat(context.Background(), engine.ChatRequest{
		SessionID: "s1",
		Message:   "Hello",
	})
	require.NoError(t, err)

	assert.Equal(t, core.IntentGreeting, res.Intent.Intent)
	assert.Equal(t, core.SourceRuleBased, res.Response.Source)
	assert.NotEmpty(t, res.Response.QuickReplies)
}

func TestNew_WithProviderOverride(t *testing.T) {
	mock := provider.NewMockProvider("mock")
	mock.SetResult(core.IntentResult{Intent: core.IntentFAQ, Confidence: 0.9})
	mock.SetMessage("Our return window is 30 days.")

	cc, err := New(func(o *Options) {
		o.Providers = []provider.Provider{mock}
	})
	require.NoError(t, err)

	res, err := cc.Chat(context.Background(), engine.ChatRequest{
		SessionID: "s1",
		Message:   "What is your return policy?",
	})
	require.NoError(t, err)

	assert.Equal(t, "mock", res.Response.Source)
	assert.Equal(t, "Our return window is 30 days.", res.Response.Message)

	infos := cc.Providers()
	require.Len(t, infos, 1)
	assert.Equal(t, "mock", infos[0].Name)
}

func TestNew_AuxiliaryReads(t *testing.T) {
	cc, err := New()
	require.NoError(t, err)

	table := cc.QuickReplies()
	assert.NotEmpty(t, table[core.IntentGreeting])

	faqs, err := cc.FAQs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, faqs)

	cmp, err := cc.CompareProducts(context.Background(), []string{"pho-001", "pho-002"}, core.Entities{})
	require.NoError(t, err)
	assert.Len(t, cmp.Products, 2)

	products, err := cc.Recommendations(context.Background(), "", core.Entities{Category: "laptop"})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}
