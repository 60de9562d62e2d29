package interpreter

import (
	"regexp"
	"strings"
)

// intent maps a recognizable spoken preference onto one ranking criterion.
// Phrases are scanned in order; the first hit wins and the rest are skipped,
// so each intent contributes at most once per utterance.
type intent struct {
	criterion criterion
	phrases   []string
	delta     float64
}

type criterion int

const (
	criterionDistance criterion = iota
	criterionCentrality
	criterionAisle
	criterionPrice
	criterionAvoidObstructed
)

// intents is the fixed recognition table. Order matters for the clarification
// gate's matched-intent bookkeeping.
var intents = []intent{
	{criterionDistance, []string{"closer", "near", "front", "close to stage"}, 0.20},
	{criterionCentrality, []string{"center", "central", "middle"}, 0.20},
	{criterionAisle, []string{"aisle", "side seat", "easy access"}, 0.20},
	{criterionPrice, []string{"cheap", "under", "affordable"}, 0.20},
	{criterionAvoidObstructed, []string{"clear view", "avoid obstructed", "unblocked"}, 0.30},
}

// synonyms canonicalizes free-form phrasing onto the vocabulary the intent
// table matches against. Longer forms come first so they win over their
// substrings.
var synonyms = strings.NewReplacer(
	"close to the stage", "close to stage",
	"close by", "closer",
	"nearest", "closer",
	"nearer", "closer",
	"less expensive", "under",
	"cheaper", "under",
	"cheap", "under",
	"walkway", "aisle",
	"side seat", "aisle",
	"blocked view", "obstructed",
	"blocked", "obstructed",
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	optionRe     = regexp.MustCompile(`option (one|two|three)`)
	qualityRe    = regexp.MustCompile(`better|best|good|nice|ideal`)
	negationRe   = regexp.MustCompile(`\b(not|no|avoid)\b`)
)

var optionIndex = map[string]int{"one": 1, "two": 2, "three": 3}

// normalizeText lower-cases, canonicalizes synonyms and collapses whitespace.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = synonyms.Replace(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// negationWindow is how many characters before a matched phrase are inspected
// for a negating token.
const negationWindow = 12

// isNegated reports whether the phrase occurrence sits in a negation context,
// e.g. "not near the front" or "no aisle".
func isNegated(text, phrase string) bool {
	idx := strings.Index(text, phrase)
	if idx < 0 {
		return false
	}
	start := idx - negationWindow
	if start < 0 {
		start = 0
	}
	return negationRe.MatchString(text[start:idx])
}

// intensityMultiplier scales an intent's base delta from hedging words in the
// full utterance.
func intensityMultiplier(text string) float64 {
	switch {
	case strings.Contains(text, "very"):
		return 1.5
	case strings.Contains(text, "slightly"), strings.Contains(text, "a bit"):
		return 0.7
	case strings.Contains(text, "not too"):
		return 0.5
	}
	return 1
}

// needsClarification gates over-broad or self-contradictory requests: generic
// quality adjectives, price and proximity asked for together, or three or more
// distinct preferences in one breath.
func needsClarification(text string, matched []criterion) bool {
	if qualityRe.MatchString(text) {
		return true
	}
	hasPrice, hasDistance := false, false
	for _, c := range matched {
		switch c {
		case criterionPrice:
			hasPrice = true
		case criterionDistance:
			hasDistance = true
		}
	}
	if hasPrice && hasDistance {
		return true
	}
	return len(matched) >= 3
}
