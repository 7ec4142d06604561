// Package engine wires the chat pipeline end to end: validation, session
// locking and loading, intent resolution through the provider chain, response
// synthesis and session persistence. It is the single entry point embedders
// call per chat turn, plus the auxiliary read operations (quick replies,
// FAQs, provider status, product comparison and recommendations).
package engine
