package chain

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/logging"
	"github.com/pulsepixeltech/chatcore/provider"
)

// Analyzer is the terminal intent fallback. It never fails; the rule engine
// satisfies it.
type Analyzer interface {
	Analyze(text string) core.IntentResult
}

// Responder is the terminal response fallback, composing a templated message
// for a resolved intent. The response synthesizer satisfies it.
type Responder interface {
	Respond(result core.IntentResult, cc provider.ChatContext) core.Response
}

// Options tunes the orchestrator's dispatch behavior.
type Options struct {
	// ConfidenceFloor is the minimum provider confidence accepted before
	// trying the next adapter.
	ConfidenceFloor float64
	// CallTimeout bounds each individual adapter call. Every adapter in
	// the chain gets its own fresh deadline window.
	CallTimeout time.Duration
	// Breaker tunes the per-adapter circuit breakers.
	Breaker BreakerConfig
	// RateLimit optionally throttles calls per adapter (0 = unlimited).
	// Throttled calls skip the adapter without counting as a failure.
	RateLimit rate.Limit
	// RateBurst is the limiter burst size when RateLimit is set.
	RateBurst int
	// Logger receives dispatch and fallback events.
	Logger logging.Logger
}

// ProviderStatus reports one adapter's breaker state and latest health probe
// for operational visibility.
type ProviderStatus struct {
	Name    string              `json:"name"`
	Circuit string              `json:"circuit"`
	Health  core.ProviderHealth `json:"health"`
}

// Orchestrator tries registered provider adapters in priority order under a
// circuit breaker and per-call deadline, falling back to the rule engine when
// all adapters are unavailable or below the confidence floor. Registration
// order is the priority order. Safe for concurrent use.
type Orchestrator struct {
	providers []provider.Provider
	breakers  map[string]*Breaker
	limiters  map[string]*rate.Limiter

	rules     Analyzer
	responder Responder

	opts   Options
	logger logging.Logger
}

// New constructs an orchestrator. The providers slice is the priority order;
// rules and responder form the terminal fallback and must be non-nil.
func New(rules Analyzer, responder Responder, providers []provider.Provider, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		ConfidenceFloor: 0.6,
		CallTimeout:     3 * time.Second,
		Breaker:         DefaultBreakerConfig(),
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	o := &Orchestrator{
		providers: providers,
		breakers:  make(map[string]*Breaker, len(providers)),
		limiters:  make(map[string]*rate.Limiter, len(providers)),
		rules:     rules,
		responder: responder,
		opts:      opts,
		logger:    opts.Logger,
	}
	for _, p := range providers {
		name := p.Info().Name
		o.breakers[name] = NewBreaker(opts.Breaker)
		if opts.RateLimit > 0 {
			burst := opts.RateBurst
			if burst <= 0 {
				burst = 1
			}
			o.limiters[name] = rate.NewLimiter(opts.RateLimit, burst)
		}
	}
	return o
}

// AnalyzeIntent dispatches intent analysis down the provider chain. It
// always completes: when no adapter yields an accepted result the rule
// engine's answer is returned unconditionally.
func (o *Orchestrator) AnalyzeIntent(ctx context.Context, message string, cc provider.ChatContext) core.IntentResult {
	for _, p := range o.providers {
		name := p.Info().Name
		if !o.admit(name) {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
		start := time.Now()
		result, err := p.AnalyzeIntent(callCtx, message, cc)
		cancel()

		if err != nil {
			o.breakers[name].Failure()
			o.logger.Warn("intent analysis failed", "provider", name,
				"error", err.Error(), "duration", time.Since(start))
			continue
		}
		if result.Confidence < o.opts.ConfidenceFloor {
			o.breakers[name].Failure()
			o.logger.Debug("intent below confidence floor", "provider", name,
				"confidence", result.Confidence, "floor", o.opts.ConfidenceFloor)
			continue
		}
		o.breakers[name].Success()
		return result
	}
	return o.rules.Analyze(message)
}

// GenerateResponse dispatches response generation down the provider chain,
// composing the rule-based templated response when every adapter fails.
func (o *Orchestrator) GenerateResponse(ctx context.Context, result core.IntentResult, cc provider.ChatContext) core.Response {
	for _, p := range o.providers {
		name := p.Info().Name
		if !o.admit(name) {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
		start := time.Now()
		resp, err := p.GenerateResponse(callCtx, result, cc)
		cancel()

		if err != nil || resp.Message == "" {
			o.breakers[name].Failure()
			o.logger.Warn("response generation failed", "provider", name,
				"duration", time.Since(start))
			continue
		}
		o.breakers[name].Success()
		return resp
	}
	return o.responder.Respond(result, cc)
}

// admit checks the breaker and rate limiter for one adapter. A tripped
// breaker or exhausted limiter skips the adapter; only the breaker case is
// a health signal, throttling is self-inflicted and not recorded.
func (o *Orchestrator) admit(name string) bool {
	if err := o.breakers[name].Allow(); err != nil {
		o.logger.Debug("skipping provider, circuit open", "provider", name)
		return false
	}
	if lim, ok := o.limiters[name]; ok && !lim.Allow() {
		o.logger.Debug("skipping provider, rate limited", "provider", name)
		return false
	}
	return true
}

// Providers returns the registered adapter metadata in priority order.
func (o *Orchestrator) Providers() []provider.Info {
	infos := make([]provider.Info, len(o.providers))
	for i, p := range o.providers {
		infos[i] = p.Info()
	}
	return infos
}

// Status probes the named adapter and reports its health together with the
// current breaker state. The probe does not mutate breaker state.
func (o *Orchestrator) Status(ctx context.Context, name string) (ProviderStatus, error) {
	for _, p := range o.providers {
		if p.Info().Name != name {
			continue
		}
		probeCtx, cancel := context.WithTimeout(ctx, o.opts.CallTimeout)
		health := p.HealthCheck(probeCtx)
		cancel()

		state := o.breakers[name].State()
		if health.Status == core.HealthHealthy && state != CircuitClosed {
			health.Status = core.HealthDegraded
			health.Reason = "circuit " + state.String()
		}
		return ProviderStatus{
			Name:    name,
			Circuit: state.String(),
			Health:  health,
		}, nil
	}
	return ProviderStatus{}, fmt.Errorf("unknown provider %q", name)
}
