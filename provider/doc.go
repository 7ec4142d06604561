// Package provider defines the uniform capability contract implemented by
// every remote understanding service, plus shared helpers for prompt shaping
// and response-schema validation.
//
// Core goals:
//   - One interface (AnalyzeIntent, GenerateResponse, HealthCheck) per vendor
//     so the orchestrator needs no per-provider branching
//   - Strict validation of model output: JSON-shaped free text is an
//     untrusted payload and any schema violation becomes a MalformedResponse
//     provider error, never a crash or a silent coercion
//   - Lightweight mocking for tests and examples (MockProvider)
//
// Vendors (SambaNova, OpenAI, Anthropic) implement the Provider interface in
// sub-packages so higher layers remain decoupled from the SDKs.
package provider
