package provider

import (
	"context"

	"github.com/pulsepixeltech/chatcore/core"
)

// ChatContext carries the conversational context handed to providers with
// every call. It is a read-only snapshot assembled by the engine from the
// session store; providers never hold a reference to live session state.
type ChatContext struct {
	SessionID       string
	UserID          string
	OriginalMessage string
	History         []core.Turn
	Entities        core.Entities
	LastIntent      core.Intent
}

// Info contains metadata about a provider implementation.
type Info struct {
	// Name is the unique registration name ("sambanova", "openai", ...)
	// reported as IntentResult.Source and used for breaker bookkeeping.
	Name string `json:"name"`
	// Vendor identifies the backing service family.
	Vendor string `json:"vendor"`
	// Model is the concrete model identifier in use.
	Model string `json:"model"`
}

// Provider is the capability contract implemented once per remote
// understanding service. Calls must respect the deadline on ctx and abort on
// cancellation, surfacing a timeout ProviderError. All failures are returned
// as *core.ProviderError so the orchestrator can classify them.
type Provider interface {
	// AnalyzeIntent classifies the message and extracts entities. The
	// remote output is accepted only if it validates against the
	// IntentResult schema (closed intent set, confidence in [0,1]).
	AnalyzeIntent(ctx context.Context, message string, cc ChatContext) (core.IntentResult, error)

	// GenerateResponse produces a user-facing reply for the resolved
	// intent and entities.
	GenerateResponse(ctx context.Context, result core.IntentResult, cc ChatContext) (core.Response, error)

	// HealthCheck issues a minimal round-trip probe. It reports status
	// only and never mutates circuit-breaker state.
	HealthCheck(ctx context.Context) core.ProviderHealth

	// Info returns the provider metadata.
	Info() Info
}
