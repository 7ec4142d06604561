// Package anthropic provides a provider wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/provider"
)

// Name is the registration name reported as IntentResult.Source.
const Name = "anthropic"

// Options configures the Anthropic provider adapter (model id, max tokens,
// API key). Extend via functional options to preserve stability.
type Options struct {
	Model               anthropic.Model
	AnalyzeTemperature  float64
	GenerateTemperature float64
	MaxTokens           int64
	APIKey              string
}

// Provider wraps the Anthropic Messages API behind the generic
// provider.Provider interface.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// New creates an Anthropic provider using the official client.
func New(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               anthropic.ModelClaude3_5Sonnet20241022,
		AnalyzeTemperature:  0.3,
		GenerateTemperature: 0.7,
		MaxTokens:           200,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Provider{client: &client, opts: opts}
}

// NewFromClient creates an Anthropic provider from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               anthropic.ModelClaude3_5Sonnet20241022,
		AnalyzeTemperature:  0.3,
		GenerateTemperature: 0.7,
		MaxTokens:           200,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// AnalyzeIntent implements provider.Provider.
func (p *Provider) AnalyzeIntent(ctx context.Context, message string, cc provider.ChatContext) (core.IntentResult, error) {
	raw, err := p.complete(ctx, provider.AnalyzeSystemPrompt,
		provider.BuildAnalyzeUserPrompt(message, cc), p.opts.AnalyzeTemperature)
	if err != nil {
		return core.IntentResult{}, err
	}
	return provider.ParseIntentPayload(Name, raw)
}

// GenerateResponse implements provider.Provider.
func (p *Provider) GenerateResponse(ctx context.Context, result core.IntentResult, cc provider.ChatContext) (core.Response, error) {
	raw, err := p.complete(ctx, provider.BuildGenerateSystemPrompt(result, cc),
		provider.GenerateUserPrompt(cc), p.opts.GenerateTemperature)
	if err != nil {
		return core.Response{}, err
	}
	if raw == "" {
		return core.Response{}, core.NewProviderError(Name, core.ErrKindMalformedResponse,
			fmt.Errorf("empty completion"))
	}
	return core.Response{Message: raw, Source: Name}, nil
}

// HealthCheck implements provider.Provider with a minimal round-trip probe.
func (p *Provider) HealthCheck(ctx context.Context) core.ProviderHealth {
	checked := time.Now().UTC()
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.opts.Model,
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Hello")),
		},
	})
	if err != nil {
		return core.ProviderHealth{Status: core.HealthError, Reason: err.Error(), CheckedAt: checked}
	}
	return core.ProviderHealth{Status: core.HealthHealthy, CheckedAt: checked}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Name: Name, Vendor: "anthropic", Model: string(p.opts.Model)}
}

// complete issues one Messages call and returns the concatenated text blocks.
func (p *Provider) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.opts.Model,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropic.Float(temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", provider.CallError(Name, ctx, err, statusOf(err))
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	return b.String(), nil
}

// statusOf extracts the HTTP status from an anthropic-sdk-go API error.
func statusOf(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
