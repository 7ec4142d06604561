// Package chatcore provides a high-level façade over the chat engine and its
// collaborators (rule-based NLU, provider fallback chain, session store,
// catalog and response synthesizer). Most applications interact with this
// package by:
//  1. Creating a ChatCore via New() (optionally overriding defaults)
//  2. Calling Chat() once per inbound user message
//  3. Serving the auxiliary reads (quick replies, FAQs, provider status)
//
// Defaults are safe for local development: with no provider API keys
// configured the engine answers every message through the deterministic
// rule-based path.
package chatcore

import (
	"context"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	openaisdk "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/pulsepixeltech/chatcore/catalog"
	"github.com/pulsepixeltech/chatcore/chain"
	"github.com/pulsepixeltech/chatcore/config"
	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/engine"
	"github.com/pulsepixeltech/chatcore/logging"
	"github.com/pulsepixeltech/chatcore/nlu"
	"github.com/pulsepixeltech/chatcore/provider"
	"github.com/pulsepixeltech/chatcore/provider/anthropic"
	"github.com/pulsepixeltech/chatcore/provider/openai"
	"github.com/pulsepixeltech/chatcore/provider/sambanova"
	"github.com/pulsepixeltech/chatcore/session"
	"github.com/pulsepixeltech/chatcore/synthesizer"
)

// Options configures the ChatCore instance.
type Options struct {
	// Config drives provider registration and tuning. Defaults to the
	// environment-loaded configuration.
	Config config.Config

	// Providers overrides the adapter chain entirely. When set, Config's
	// API keys are ignored. Order is fallback priority.
	Providers []provider.Provider

	// SessionStore overrides the default in-memory store.
	SessionStore core.SessionStore

	// Catalog overrides the default seeded in-memory catalog.
	Catalog catalog.Catalog

	// Logger overrides the config-derived logger.
	Logger *logging.ChatLogger
}

// ChatCore is the high-level façade aggregating the chat engine and its
// services.
type ChatCore struct {
	engine *engine.Engine
}

// New creates a ChatCore with optional overrides. Any unset collaborator
// falls back to its in-memory default; providers are registered for every
// configured API key in fixed priority order (SambaNova, OpenAI, Anthropic).
func New(optFns ...func(o *Options)) (*ChatCore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts := Options{Config: cfg}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewChatLogger(&logging.ChatLoggerConfig{
			Level:  parseLevel(opts.Config.LogLevel),
			Format: opts.Config.LogFormat,
		})
	}

	providers := opts.Providers
	if providers == nil {
		providers = buildProviders(opts.Config)
	}

	store := opts.SessionStore
	if store == nil {
		store = session.NewInMemoryStore(func(o *session.Options) {
			o.TTL = opts.Config.SessionTTL
			o.HistoryLimit = opts.Config.HistoryLimit
		})
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.NewInMemoryCatalog()
	}

	rules := nlu.New()
	synth := synthesizer.New(cat, func(o *synthesizer.Options) {
		o.Logger = logger.WithComponent("synthesizer")
	})
	orch := chain.New(rules, synth, providers, func(o *chain.Options) {
		o.ConfidenceFloor = opts.Config.ConfidenceFloor
		o.CallTimeout = opts.Config.CallTimeout
		o.Breaker = chain.BreakerConfig{
			FailureThreshold: opts.Config.FailureThreshold,
			CoolDown:         opts.Config.BreakerCoolDown,
		}
		o.RateLimit = rate.Limit(opts.Config.RateLimit)
		o.RateBurst = opts.Config.RateBurst
		o.Logger = logger.WithComponent("chain")
	})

	eng := engine.New(rules, orch, store, synth, cat, func(o *engine.Options) {
		o.Logger = logger.WithComponent("engine")
	})

	return &ChatCore{engine: eng}, nil
}

// Chat executes one chat turn. See engine.Engine.Chat.
func (c *ChatCore) Chat(ctx context.Context, req engine.ChatRequest) (engine.ChatResult, error) {
	return c.engine.Chat(ctx, req)
}

// QuickReplies returns the per-intent quick-reply suggestion table.
func (c *ChatCore) QuickReplies() map[core.Intent][]string {
	return c.engine.QuickReplies()
}

// FAQs returns the store's FAQ entries.
func (c *ChatCore) FAQs(ctx context.Context) ([]catalog.FAQ, error) {
	return c.engine.FAQs(ctx)
}

// Providers returns the registered provider metadata in fallback priority
// order.
func (c *ChatCore) Providers() []provider.Info {
	return c.engine.Providers()
}

// ProviderStatus probes one provider and reports its health and breaker
// state.
func (c *ChatCore) ProviderStatus(ctx context.Context, name string) (chain.ProviderStatus, error) {
	return c.engine.ProviderStatus(ctx, name)
}

// CompareProducts resolves product ids and summarizes how they differ,
// weighing the caller's preference entities.
func (c *ChatCore) CompareProducts(ctx context.Context, ids []string, prefs core.Entities) (engine.Comparison, error) {
	return c.engine.CompareProducts(ctx, ids, prefs)
}

// Recommendations returns catalog products matching the session's accumulated
// entities merged with the explicit preferences.
func (c *ChatCore) Recommendations(ctx context.Context, sessionID string, prefs core.Entities) ([]catalog.Product, error) {
	return c.engine.Recommendations(ctx, sessionID, prefs)
}

// EndSession discards the session's conversational state immediately.
func (c *ChatCore) EndSession(sessionID string) error {
	return c.engine.EndSession(sessionID)
}

// buildProviders registers one adapter per configured API key, in fixed
// fallback priority order.
func buildProviders(cfg config.Config) []provider.Provider {
	var providers []provider.Provider

	if cfg.SambaNovaAPIKey != "" {
		providers = append(providers, sambanova.New(cfg.SambaNovaAPIKey, func(o *sambanova.Options) {
			if cfg.SambaNovaBaseURL != "" {
				o.BaseURL = cfg.SambaNovaBaseURL
			}
		}))
	}
	if cfg.OpenAIAPIKey != "" {
		client := openaisdk.NewClient(openaiopt.WithAPIKey(cfg.OpenAIAPIKey))
		providers = append(providers, openai.NewFromClient(&client))
	}
	if cfg.AnthropicAPIKey != "" {
		client := anthropicsdk.NewClient(anthropicopt.WithAPIKey(cfg.AnthropicAPIKey))
		providers = append(providers, anthropic.NewFromClient(&client))
	}
	return providers
}

func parseLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
