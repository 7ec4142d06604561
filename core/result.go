package core

// SourceRuleBased identifies results produced by the deterministic rule
// engine rather than a remote provider.
const SourceRuleBased = "rule-based"

// IntentResult is the outcome of intent analysis for one message. Source
// identifies the component that produced it: a provider name or
// SourceRuleBased. Confidence always lies in [0,1].
type IntentResult struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
	Source     string   `json:"source"`
}

// Response is the user-facing reply for one chat turn. Message and
// QuickReplies are guaranteed non-empty by the response synthesizer.
type Response struct {
	Message      string   `json:"message"`
	QuickReplies []string `json:"quickReplies"`
	Source       string   `json:"source"`
}
