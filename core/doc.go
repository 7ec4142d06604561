// Package core provides the foundational domain types used by ChatCore. It
// defines the shared vocabulary of the engine:
//
//   - Intents (the closed classification set) and extracted Entities
//   - Messages, IntentResults and Responses exchanged per chat turn
//   - Sessions (bounded conversational containers with TTL expiry)
//   - Provider health reporting and the error taxonomy
//
// The package intentionally keeps implementation concerns (providers, rule
// matching, orchestration, storage) out of scope, exposing small interfaces so
// higher layers stay decoupled and testable.
package core
