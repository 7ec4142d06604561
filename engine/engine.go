package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pulsepixeltech/chatcore/catalog"
	"github.com/pulsepixeltech/chatcore/chain"
	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/logging"
	"github.com/pulsepixeltech/chatcore/nlu"
	"github.com/pulsepixeltech/chatcore/provider"
	"github.com/pulsepixeltech/chatcore/synthesizer"
)

// MaxMessageLength caps one inbound chat message.
const MaxMessageLength = 1000

// ChatRequest is one inbound chat turn.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	Message   string `json:"message"`
}

// ChatResult is the outcome of one chat turn: the final response, the
// resolved intent and the updated session snapshot.
type ChatResult struct {
	Response core.Response     `json:"response"`
	Intent   core.IntentResult `json:"intent"`
	Session  *core.Session     `json:"session"`
}

// Comparison is the outcome of a product comparison request.
type Comparison struct {
	Products []catalog.Product `json:"products"`
	Summary  string            `json:"summary"`
}

// Options configures the engine.
type Options struct {
	Logger *logging.ChatLogger
}

// Engine executes chat turns. All dependencies are injected; see the root
// package for default wiring. Safe for concurrent use.
type Engine struct {
	rules    *nlu.Engine
	chain    *chain.Orchestrator
	sessions core.SessionStore
	synth    *synthesizer.Synthesizer
	catalog  catalog.Catalog
	logger   *logging.ChatLogger
}

// New creates an engine from its collaborators.
func New(rules *nlu.Engine, orch *chain.Orchestrator, sessions core.SessionStore,
	synth *synthesizer.Synthesizer, cat catalog.Catalog, optFns ...func(o *Options)) *Engine {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewChatLogger(&logging.ChatLoggerConfig{
			Level: logging.LogLevelInfo, Component: "engine",
		})
	}
	return &Engine{
		rules:    rules,
		chain:    orch,
		sessions: sessions,
		synth:    synth,
		catalog:  cat,
		logger:   opts.Logger,
	}
}

// Chat executes one full chat turn. It is total for valid input: provider
// outages, low confidence and cancelled contexts all degrade to the
// deterministic rule-based answer rather than an error.
func (e *Engine) Chat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	if err := validate(req); err != nil {
		return ChatResult{}, err
	}
	start := time.Now()

	release := e.sessions.Acquire(req.SessionID)
	defer release()

	sess, err := e.sessions.Load(req.SessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("load session: %w", err)
	}

	cc := provider.ChatContext{
		SessionID:       req.SessionID,
		UserID:          req.UserID,
		OriginalMessage: req.Message,
		History:         sess.History,
		Entities:        sess.AccumulatedEntities,
		LastIntent:      sess.LastIntent,
	}

	result := e.chain.AnalyzeIntent(ctx, req.Message, cc)

	// Rule extraction always runs; provider-supplied entities win per
	// field so a provider that misses the order number does not lose it.
	result.Entities = e.rules.ExtractEntities(req.Message).Merge(result.Entities)

	generated := e.chain.GenerateResponse(ctx, result, cc)
	resp := e.synth.Build(ctx, result, cc, generated)

	msg := core.NewMessage(req.Message, req.SessionID, req.UserID)
	updated, err := e.sessions.Append(req.SessionID, msg, result)
	if err != nil {
		return ChatResult{}, fmt.Errorf("append turn: %w", err)
	}

	e.logger.LogTurn(req.SessionID, result.Intent.String(), result.Confidence,
		resp.Source, time.Since(start))

	return ChatResult{Response: resp, Intent: result, Session: updated}, nil
}

// QuickReplies returns the per-intent quick-reply suggestion table.
func (e *Engine) QuickReplies() map[core.Intent][]string {
	return synthesizer.QuickReplyTable()
}

// FAQs returns the store's FAQ entries.
func (e *Engine) FAQs(ctx context.Context) ([]catalog.FAQ, error) {
	return e.catalog.FAQs(ctx)
}

// Providers returns the registered provider metadata in fallback priority
// order.
func (e *Engine) Providers() []provider.Info {
	return e.chain.Providers()
}

// ProviderStatus probes one provider and reports its health and breaker
// state.
func (e *Engine) ProviderStatus(ctx context.Context, name string) (chain.ProviderStatus, error) {
	return e.chain.Status(ctx, name)
}

// CompareProducts resolves the given product ids and summarizes how they
// differ, weighing the caller's preference entities where present. Between
// two and four products can be compared at once.
func (e *Engine) CompareProducts(ctx context.Context, ids []string, prefs core.Entities) (Comparison, error) {
	if len(ids) < 2 || len(ids) > 4 {
		return Comparison{}, &core.ValidationError{
			Field:  "productIds",
			Reason: "between 2 and 4 products can be compared",
		}
	}

	products, err := e.catalog.GetProducts(ctx, ids)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Products: products, Summary: compareSummary(products, prefs)}, nil
}

// Recommendations returns products matching the session's accumulated
// entities merged with the explicit preferences, best rated first. The
// explicit preferences win per field.
func (e *Engine) Recommendations(ctx context.Context, sessionID string, prefs core.Entities) ([]catalog.Product, error) {
	merged := prefs
	if sessionID != "" {
		sess, err := e.sessions.Load(sessionID)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		merged = sess.AccumulatedEntities.Merge(prefs)
	}

	return e.catalog.SearchProducts(ctx, catalog.Query{
		Category:   merged.Category,
		Brand:      merged.Brand,
		Budget:     merged.Budget,
		BudgetKind: merged.BudgetKind,
		Features:   merged.Features,
		Limit:      5,
	})
}

// EndSession discards the session's conversational state immediately.
func (e *Engine) EndSession(sessionID string) error {
	return e.sessions.Expire(sessionID)
}

func validate(req ChatRequest) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return &core.ValidationError{Field: "sessionId", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return &core.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if len(req.Message) > MaxMessageLength {
		return &core.ValidationError{
			Field:  "message",
			Reason: fmt.Sprintf("must not exceed %d characters", MaxMessageLength),
		}
	}
	return nil
}

func compareSummary(products []catalog.Product, prefs core.Entities) string {
	cheapest, bestRated := products[0], products[0]
	for _, p := range products[1:] {
		if p.Price < cheapest.Price {
			cheapest = p
		}
		if p.Rating > bestRated.Rating {
			bestRated = p
		}
	}

	var summary string
	if cheapest.ID == bestRated.ID {
		summary = fmt.Sprintf("%s is both the most affordable (₹%.0f) and the best rated (%.1f).",
			cheapest.Name, cheapest.Price, cheapest.Rating)
	} else {
		summary = fmt.Sprintf("%s is the most affordable at ₹%.0f, while %s has the best rating at %.1f.",
			cheapest.Name, cheapest.Price, bestRated.Name, bestRated.Rating)
	}

	if prefs.Budget > 0 && prefs.BudgetKind != core.BudgetFloor {
		var fitting []string
		for _, p := range products {
			if p.Price <= prefs.Budget {
				fitting = append(fitting, p.Name)
			}
		}
		switch len(fitting) {
		case 0:
			summary += fmt.Sprintf(" None of these fit your budget of ₹%.0f.", prefs.Budget)
		case len(products):
			summary += fmt.Sprintf(" All of these fit your budget of ₹%.0f.", prefs.Budget)
		default:
			summary += fmt.Sprintf(" Within your budget of ₹%.0f: %s.",
				prefs.Budget, strings.Join(fitting, ", "))
		}
	}
	return summary
}
