// Package sambanova provides a provider wrapper for the SambaNova inference
// API, which speaks the OpenAI-compatible chat completion protocol.
package sambanova

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/provider"
)

// Name is the registration name reported as IntentResult.Source.
const Name = "sambanova"

// DefaultBaseURL is the public SambaNova endpoint.
const DefaultBaseURL = "https://api.sambanova.ai/v1"

// DefaultModel is the completion model used unless overridden.
const DefaultModel = "Meta-Llama-3.1-8B-Instruct"

// Options configures the SambaNova provider adapter.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// AnalyzeTemperature keeps classification output stable; generation
	// uses the higher GenerateTemperature for varied phrasing.
	AnalyzeTemperature  float32
	GenerateTemperature float32
	MaxTokens           int
}

// Provider wraps the SambaNova chat completion API behind the generic
// provider.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a SambaNova provider. The API key is required; base URL and
// model fall back to the public endpoint defaults.
func New(apiKey string, optFns ...func(o *Options)) *Provider {
	opts := Options{
		APIKey:              apiKey,
		BaseURL:             DefaultBaseURL,
		Model:               DefaultModel,
		AnalyzeTemperature:  0.3,
		GenerateTemperature: 0.7,
		MaxTokens:           200,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL

	return &Provider{client: openai.NewClientWithConfig(cfg), opts: opts}
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
	if p.opts.APIKey == "" {
		return core.ProviderHealth{Status: core.HealthDisabled, Reason: "API key not configured", CheckedAt: checked}
	}

	_, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.opts.Model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "Hello"}},
		MaxTokens: 10,
	})
	if err != nil {
		return core.ProviderHealth{Status: core.HealthError, Reason: err.Error(), CheckedAt: checked}
	}
	return core.ProviderHealth{Status: core.HealthHealthy, CheckedAt: checked}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Name: Name, Vendor: "sambanova", Model: p.opts.Model}
}

// complete issues one chat completion and returns the first choice's text.
func (p *Provider) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", provider.CallError(Name, ctx, err, statusOf(err))
	}
	if len(resp.Choices) == 0 {
		return "", core.NewProviderError(Name, core.ErrKindMalformedResponse,
			fmt.Errorf("no choices returned"))
	}
	return resp.Choices[0].Message.Content, nil
}

// statusOf extracts the HTTP status from a go-openai API error.
func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
