package core

import "time"

// HealthStatus enumerates provider health states.
type HealthStatus string

const (
	// HealthHealthy means the provider answered a probe successfully.
	HealthHealthy HealthStatus = "healthy"
	// HealthDegraded means the provider answers but with elevated failures.
	HealthDegraded HealthStatus = "degraded"
	// HealthDisabled means the provider is not configured (e.g. missing key).
	HealthDisabled HealthStatus = "disabled"
	// HealthError means the last probe failed.
	HealthError HealthStatus = "error"
)

// ProviderHealth is the outcome of a provider health probe. It is derived on
// demand and never persisted.
type ProviderHealth struct {
	Status    HealthStatus `json:"status"`
	Reason    string       `json:"reason,omitempty"`
	CheckedAt time.Time    `json:"checked_at,omitempty"`
}
