// Package session provides conversational state storage. The in-memory store
// keeps a bounded turn history per session with TTL expiry, accumulates
// extracted entities across turns and serializes concurrent turns for the
// same session through per-session locks.
package session
