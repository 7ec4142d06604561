// Package config loads engine configuration from CHATCORE_ prefixed
// environment variables. All values have working defaults; only provider API
// keys are genuinely environment-specific.
package config
