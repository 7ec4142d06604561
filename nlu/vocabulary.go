package nlu

import (
	"sort"

	"github.com/pulsepixeltech/chatcore/core"
)

// trigger is one weighted keyword or phrase for an intent. Single-word
// triggers match whole tokens; multi-word triggers match word-bounded
// substrings of the normalized text.
type trigger struct {
	phrase string
	weight float64
}

// intentTriggers is the static classification vocabulary. Weights are tuned
// so that a single strong trigger clears the chain's acceptance floor after
// saturating normalization while weak triggers alone do not.
var intentTriggers = map[core.Intent][]trigger{
	core.IntentGreeting: {
		{"hello", 4}, {"hi", 4}, {"hey", 4}, {"namaste", 3},
		{"good morning", 3}, {"good afternoon", 3}, {"good evening", 3},
	},
	core.IntentGoodbye: {
		{"bye", 3}, {"goodbye", 3}, {"see you", 2}, {"thank you", 1.5}, {"thanks", 1.5},
	},
	core.IntentOrderTracking: {
		{"track", 3}, {"tracking", 3}, {"order status", 3}, {"where is my order", 3.5},
		{"my order", 2}, {"shipment", 2}, {"shipped", 2}, {"delivery status", 2.5},
		{"when will my order arrive", 3},
	},
	core.IntentProductSearch: {
		{"looking for", 2}, {"show me", 2}, {"need", 1.5}, {"want", 1.5},
		{"buy", 2}, {"purchase", 2}, {"search", 2}, {"find", 1.5},
		{"suggest", 1.5}, {"recommend", 1.5}, {"price of", 2},
		{"laptop", 2}, {"laptops", 2}, {"phone", 2}, {"phones", 2},
		{"smartphone", 2}, {"smartphones", 2}, {"headphones", 2}, {"earbuds", 2},
		{"camera", 2}, {"cameras", 2}, {"tablet", 2}, {"tablets", 2},
		{"tv", 2}, {"television", 2}, {"monitor", 2}, {"smartwatch", 2},
		{"speaker", 2}, {"speakers", 2}, {"gaming", 1},
	},
	core.IntentProductComparison: {
		{"compare", 3}, {"comparison", 3}, {"versus", 2}, {"vs", 2},
		{"difference between", 3}, {"which is better", 3}, {"better than", 2},
	},
	core.IntentFAQ: {
		{"return policy", 3}, {"refund", 2.5}, {"shipping", 2}, {"warranty", 2.5},
		{"policy", 2}, {"payment methods", 2.5}, {"cash on delivery", 2.5},
		{"emi", 2}, {"how long", 2}, {"what is", 1}, {"how do i", 1.5},
		{"cancel my order", 2}, {"exchange", 2},
	},
	core.IntentSupport: {
		{"support", 3}, {"help", 2}, {"agent", 2}, {"human", 2},
		{"complaint", 2.5}, {"issue", 2}, {"problem", 2}, {"not working", 2.5},
		{"talk to someone", 2.5}, {"customer care", 3},
	},
}

// tieBreak fixes the priority order used when two intents score identically,
// so classification stays deterministic. Lower index wins.
var tieBreak = []core.Intent{
	core.IntentOrderTracking,
	core.IntentProductSearch,
	core.IntentProductComparison,
	core.IntentFAQ,
	core.IntentGreeting,
	core.IntentGoodbye,
	core.IntentSupport,
}

// vocabTerm maps a surface form to its canonical entity value.
type vocabTerm struct {
	surface   string
	canonical string
}

// categoryTerms is the catalog category vocabulary. Terms are matched
// longest-first so "smartphone" is claimed before "phone".
var categoryTerms = []vocabTerm{
	{"smartphones", "smartphone"}, {"smartphone", "smartphone"},
	{"mobile phones", "smartphone"}, {"mobile phone", "smartphone"},
	{"mobiles", "smartphone"}, {"mobile", "smartphone"},
	{"phones", "smartphone"}, {"phone", "smartphone"},
	{"laptops", "laptop"}, {"laptop", "laptop"},
	{"notebooks", "laptop"}, {"notebook", "laptop"},
	{"headphones", "headphones"}, {"headphone", "headphones"},
	{"earphones", "headphones"}, {"earbuds", "headphones"},
	{"cameras", "camera"}, {"camera", "camera"},
	{"tablets", "tablet"}, {"tablet", "tablet"},
	{"televisions", "television"}, {"television", "television"},
	{"tvs", "television"}, {"tv", "television"},
	{"monitors", "monitor"}, {"monitor", "monitor"},
	{"smartwatches", "smartwatch"}, {"smartwatch", "smartwatch"},
	{"smart watch", "smartwatch"},
	{"speakers", "speaker"}, {"speaker", "speaker"},
	{"keyboards", "keyboard"}, {"keyboard", "keyboard"},
	{"mouse", "mouse"}, {"mice", "mouse"},
}

// brandTerms maps brand mentions (including flagship product lines) onto
// canonical brand names.
var brandTerms = []vocabTerm{
	{"samsung", "samsung"}, {"galaxy", "samsung"},
	{"apple", "apple"}, {"iphone", "apple"}, {"macbook", "apple"},
	{"sony", "sony"}, {"dell", "dell"}, {"hp", "hp"},
	{"lenovo", "lenovo"}, {"asus", "asus"}, {"acer", "acer"},
	{"oneplus", "oneplus"}, {"xiaomi", "xiaomi"}, {"realme", "realme"},
	{"oppo", "oppo"}, {"vivo", "vivo"}, {"motorola", "motorola"},
	{"nokia", "nokia"}, {"boat", "boat"}, {"jbl", "jbl"},
	{"canon", "canon"}, {"nikon", "nikon"}, {"lg", "lg"},
}

// featureTerms maps feature mentions onto canonical feature names. Extraction
// collects every match in first-seen order with duplicates removed.
var featureTerms = []vocabTerm{
	{"gaming", "gaming"},
	{"photography", "photography"},
	{"good camera", "camera"}, {"camera quality", "camera"},
	{"battery life", "battery"}, {"long battery", "battery"},
	{"fast charging", "fast charging"},
	{"noise cancelling", "noise cancelling"}, {"noise canceling", "noise cancelling"},
	{"wireless", "wireless"}, {"bluetooth", "bluetooth"},
	{"waterproof", "waterproof"}, {"lightweight", "lightweight"},
	{"portable", "portable"}, {"touchscreen", "touchscreen"},
	{"5g", "5g"}, {"4k", "4k"}, {"ssd", "ssd"},
}

func init() {
	// Longest surface form first so partial-word collisions resolve to the
	// more specific term.
	for _, terms := range [][]vocabTerm{categoryTerms, brandTerms, featureTerms} {
		sort.SliceStable(terms, func(i, j int) bool {
			return len(terms[i].surface) > len(terms[j].surface)
		})
	}
}
