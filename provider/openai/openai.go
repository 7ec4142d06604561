// Package openai provides a provider wrapper for the OpenAI Chat Completions
// API. It adapts ChatCore's analyze/generate contract onto the official SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"github.com/pulsepixeltech/chatcore/core"
	"github.com/pulsepixeltech/chatcore/provider"
)

// Name is the registration name reported as IntentResult.Source.
const Name = "openai"

// Options configure the OpenAI provider adapter. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal.
type Options struct {
	Model               string
	AnalyzeTemperature  float64
	GenerateTemperature float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind the generic
// provider.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates an OpenAI provider using the official client (credentials are
// read from the environment by the SDK).
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates an OpenAI provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		AnalyzeTemperature:  0.3,
		GenerateTemperature: 0.7,
		MaxCompletionTokens: 200,
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
	_, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               p.opts.Model,
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage("Hello")},
		MaxCompletionTokens: openai.Int(10),
	})
	if err != nil {
		return core.ProviderHealth{Status: core.HealthError, Reason: err.Error(), CheckedAt: checked}
	}
	return core.ProviderHealth{Status: core.HealthHealthy, CheckedAt: checked}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Name: Name, Vendor: "openai", Model: p.opts.Model}
}

// complete issues one chat completion and returns the first choice's text.
func (p *Provider) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
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

// statusOf extracts the HTTP status from an openai-go API error.
func statusOf(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
