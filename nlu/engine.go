package nlu

import (
	"strings"
	"unicode"

	"github.com/pulsepixeltech/chatcore/core"
)

// Options tunes the rule engine scoring.
type Options struct {
	// MinConfidence is the floor below which classification yields the
	// unknown intent at confidence 0.
	MinConfidence float64
	// Saturation is the k in score/(score+k), mapping raw trigger weight
	// sums into [0,1).
	Saturation float64
}

// Engine is the deterministic rule-based NLU engine. It is stateless after
// construction and safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates a rule engine with default scoring (floor 0.15, saturation 2.0).
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		MinConfidence: 0.15,
		Saturation:    2.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{opts: opts}
}

// Classify scores the message against the weighted trigger vocabulary and
// returns the winning intent. Identical scores resolve by the fixed priority
// order. A top score below the floor yields the unknown intent at
// confidence 0. Classification is deterministic for identical input.
func (e *Engine) Classify(text string) core.IntentResult {
	normalized := normalize(text)
	tokens := tokenSet(normalized)

	best := core.IntentUnknown
	bestScore := 0.0
	for _, intent := range tieBreak {
		score := 0.0
		for _, tr := range intentTriggers[intent] {
			if matchTrigger(normalized, tokens, tr.phrase) {
				score += tr.weight
			}
		}
		// Strict > keeps the earlier (higher priority) intent on ties.
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}

	confidence := bestScore / (bestScore + e.opts.Saturation)
	if confidence < e.opts.MinConfidence {
		return core.IntentResult{Intent: core.IntentUnknown, Confidence: 0, Source: core.SourceRuleBased}
	}
	return core.IntentResult{Intent: best, Confidence: confidence, Source: core.SourceRuleBased}
}

// Analyze combines Classify and ExtractEntities into one result.
func (e *Engine) Analyze(text string) core.IntentResult {
	result := e.Classify(text)
	result.Entities = e.ExtractEntities(text)
	return result
}

// normalize lowercases the text and strips characters irrelevant to matching,
// keeping letters, digits, '#' (order markers) and '.' (decimals).
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '#' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// tokenSet splits normalized text into its word tokens.
func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		set[strings.Trim(tok, "#.")] = true
	}
	return set
}

// matchTrigger checks a trigger phrase against the message: token membership
// for single words, word-bounded substring for phrases.
func matchTrigger(normalized string, tokens map[string]bool, phrase string) bool {
	if !strings.ContainsRune(phrase, ' ') {
		return tokens[phrase]
	}
	return findWord(normalized, phrase) >= 0
}

// findWord returns the index of term inside text where the surrounding
// characters are word separators, or -1 when no such occurrence exists.
func findWord(text, term string) int {
	for from := 0; ; {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(term)
		beforeOK := idx == 0 || !isWordChar(rune(text[idx-1]))
		afterOK := end == len(text) || !isWordChar(rune(text[end]))
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
