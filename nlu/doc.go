// Package nlu implements the deterministic rule-based understanding engine.
// It classifies messages against weighted keyword tables and extracts
// structured entities (category, brand, budget, features, order number) with
// regular expressions and vocabulary lookups. Both operations are pure
// functions of the input text plus the static vocabulary: they never fail and
// always return a result, defaulting to the unknown intent at confidence 0.
//
// The engine is the terminal fallback of the provider chain, so its total,
// side-effect free contract is load-bearing for the availability guarantee of
// the chat engine.
package nlu
