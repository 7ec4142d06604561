// Package catalog provides read access to products, orders and FAQ entries.
// The in-memory implementation ships with a seeded electronics inventory and
// backs the response synthesizer, the comparison and the recommendation
// operations without requiring an external store.
package catalog
