// Package chain implements the provider chain orchestrator: an ordered list
// of provider adapters tried under per-adapter circuit breakers, per-call
// deadlines and a confidence acceptance floor, with the deterministic rule
// engine as the terminal, always-succeeding fallback.
//
// The confidence floor and the breaker decouple "provider is slow or down"
// from "provider is merely unsure"; both degrade gracefully without a
// user-visible error. Analyze and generate operations therefore always
// complete; the only question is which source answered.
package chain
