package provider

import (
	"context"
	"sync"

	"github.com/pulsepixeltech/chatcore/core"
)

// MockProvider is a lightweight in-memory Provider useful for tests and
// examples. It returns configurable canned results, can be forced to fail,
// and counts calls so chain behavior (breaker trips, skips) can be asserted.
type MockProvider struct {
	mu sync.Mutex

	info    Info
	result  core.IntentResult
	message string

	failWith      error
	analyzeCalls  int
	generateCalls int
	healthCalls   int
}

// NewMockProvider constructs a MockProvider answering with the given intent
// result by default.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		info: Info{Name: name, Vendor: "mock", Model: "mock-1"},
		result: core.IntentResult{
			Intent:     core.IntentGreeting,
			Confidence: 0.9,
			Source:     name,
		},
		message: "Mock response from " + name,
	}
}

// SetResult registers the intent result returned by AnalyzeIntent.
func (m *MockProvider) SetResult(result core.IntentResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result.Source = m.info.Name
	m.result = result
}

// SetMessage registers the message returned by GenerateResponse.
func (m *MockProvider) SetMessage(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = message
}

// FailWith forces every subsequent call to return err. Pass nil to recover.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// AnalyzeCalls returns how many times AnalyzeIntent was invoked.
func (m *MockProvider) AnalyzeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyzeCalls
}

// GenerateCalls returns how many times GenerateResponse was invoked.
func (m *MockProvider) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// AnalyzeIntent implements Provider.
func (m *MockProvider) AnalyzeIntent(ctx context.Context, message string, cc ChatContext) (core.IntentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzeCalls++
	if err := ctx.Err(); err != nil {
		return core.IntentResult{}, CallError(m.info.Name, ctx, err, 0)
	}
	if m.failWith != nil {
		return core.IntentResult{}, m.failWith
	}
	return m.result, nil
}

// GenerateResponse implements Provider.
func (m *MockProvider) GenerateResponse(ctx context.Context, result core.IntentResult, cc ChatContext) (core.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generateCalls++
	if err := ctx.Err(); err != nil {
		return core.Response{}, CallError(m.info.Name, ctx, err, 0)
	}
	if m.failWith != nil {
		return core.Response{}, m.failWith
	}
	return core.Response{Message: m.message, Source: m.info.Name}, nil
}

// HealthCheck implements Provider.
func (m *MockProvider) HealthCheck(ctx context.Context) core.ProviderHealth {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthCalls++
	if m.failWith != nil {
		return core.ProviderHealth{Status: core.HealthError, Reason: m.failWith.Error()}
	}
	return core.ProviderHealth{Status: core.HealthHealthy}
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
