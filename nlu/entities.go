package nlu

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pulsepixeltech/chatcore/core"
)

var (
	// orderNumberRe matches an alphanumeric token preceded by an "order" or
	// "#" marker. Candidates matched through the bare word marker must also
	// carry a digit so phrases like "order tracking" are not mistaken for
	// order numbers.
	orderNumberRe = regexp.MustCompile(`(?i)(?:#|\border(?:\s+(?:number|no\.?|id))?\b[\s:#]*)([A-Za-z0-9]{4,})`)

	// numberRe matches standalone integer or decimal tokens.
	numberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

	// thousandsRe strips thousands separators ("70,000" -> "70000").
	thousandsRe = regexp.MustCompile(`(\d),(\d)`)
)

var budgetCeilingWords = map[string]bool{
	"under": true, "below": true, "within": true, "upto": true, "max": true, "maximum": true,
}

var budgetFloorWords = map[string]bool{
	"above": true, "over": true, "min": true, "minimum": true, "beyond": true,
}

// budgetCeilingPairs and budgetFloorPairs cover two-word qualifiers directly
// preceding the number ("less than 500", "more than 500", "up to 500").
var budgetCeilingPairs = [][2]string{{"less", "than"}, {"up", "to"}, {"at", "most"}, {"cheaper", "than"}}

var budgetFloorPairs = [][2]string{{"more", "than"}, {"at", "least"}, {"starting", "from"}}

// ExtractEntities pulls structured values out of the message text. It is a
// pure function of the text plus the static vocabulary and runs independently
// of intent classification.
func (e *Engine) ExtractEntities(text string) core.Entities {
	var out core.Entities

	cleaned := thousandsRe.ReplaceAllString(text, "$1$2")

	orderNumber, orderSpan := extractOrderNumber(cleaned)
	out.OrderNumber = orderNumber

	out.Budget, out.BudgetKind = extractBudget(cleaned, orderSpan)

	normalized := normalize(cleaned)
	if m := earliestVocabMatch(normalized, categoryTerms); m != nil {
		out.Category = m.canonical
	}
	if m := earliestVocabMatch(normalized, brandTerms); m != nil {
		out.Brand = m.canonical
	}
	out.Features = collectFeatures(normalized)

	return out
}

// extractOrderNumber returns the first valid order number candidate and the
// span of its full match (marker included), or ("", nil).
func extractOrderNumber(text string) (string, []int) {
	for _, m := range orderNumberRe.FindAllStringSubmatchIndex(text, -1) {
		full := text[m[0]:m[1]]
		token := text[m[2]:m[3]]
		if !strings.Contains(full, "#") && !containsDigit(token) {
			continue
		}
		return token, []int{m[0], m[1]}
	}
	return "", nil
}

// extractBudget finds the first standalone number outside the order-number
// span and derives its bound direction from the immediately preceding words.
func extractBudget(text string, orderSpan []int) (float64, core.BudgetKind) {
	for _, span := range numberRe.FindAllStringIndex(text, -1) {
		if orderSpan != nil && span[0] < orderSpan[1] && span[1] > orderSpan[0] {
			continue
		}
		value, err := strconv.ParseFloat(text[span[0]:span[1]], 64)
		if err != nil || value == 0 {
			continue
		}
		return value, budgetKind(text[:span[0]])
	}
	return 0, ""
}

// budgetKind inspects the last words before the number for a bound qualifier.
func budgetKind(prefix string) core.BudgetKind {
	words := strings.Fields(normalize(prefix))
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	if budgetCeilingWords[last] {
		return core.BudgetCeiling
	}
	if budgetFloorWords[last] {
		return core.BudgetFloor
	}
	if len(words) >= 2 {
		pair := [2]string{words[len(words)-2], last}
		for _, p := range budgetCeilingPairs {
			if pair == p {
				return core.BudgetCeiling
			}
		}
		for _, p := range budgetFloorPairs {
			if pair == p {
				return core.BudgetFloor
			}
		}
	}
	return ""
}

// vocabMatch is one claimed occurrence of a vocabulary term.
type vocabMatch struct {
	pos       int
	canonical string
}

// scanVocab finds word-bounded occurrences of the given terms. Terms are
// pre-sorted longest-first, so longer surface forms claim their span before a
// shorter term ("smartphone" wins over "phone") and overlapping shorter
// matches are discarded.
func scanVocab(normalized string, terms []vocabTerm) []vocabMatch {
	var claimed [][2]int
	var out []vocabMatch
	for _, t := range terms {
		from := 0
		for from <= len(normalized)-len(t.surface) {
			idx := findWord(normalized[from:], t.surface)
			if idx < 0 {
				break
			}
			idx += from
			span := [2]int{idx, idx + len(t.surface)}
			if overlapsAny(span, claimed) {
				from = idx + 1
				continue
			}
			claimed = append(claimed, span)
			out = append(out, vocabMatch{pos: idx, canonical: t.canonical})
			break
		}
	}
	return out
}

// earliestVocabMatch returns the match closest to the start of the text.
func earliestVocabMatch(normalized string, terms []vocabTerm) *vocabMatch {
	matches := scanVocab(normalized, terms)
	if len(matches) == 0 {
		return nil
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.pos < best.pos {
			best = m
		}
	}
	return &best
}

// collectFeatures gathers every recognized feature in first-seen order with
// duplicates removed.
func collectFeatures(normalized string) []string {
	matches := scanVocab(normalized, featureTerms)
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	seen := make(map[string]bool, len(matches))
	var features []string
	for _, m := range matches {
		if seen[m.canonical] {
			continue
		}
		seen[m.canonical] = true
		features = append(features, m.canonical)
	}
	return features
}

func overlapsAny(span [2]int, claimed [][2]int) bool {
	for _, c := range claimed {
		if span[0] < c[1] && span[1] > c[0] {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
