// Package synthesizer turns a resolved intent into the final user-facing
// response. Provider-generated text passes through verbatim; rule-based
// answers are composed from per-intent templates, substituted with extracted
// entities and enriched with catalog data (order status, product matches,
// FAQ answers). Every response carries a non-empty quick-reply set.
package synthesizer
