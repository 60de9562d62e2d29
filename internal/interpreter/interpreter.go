package interpreter

import (
	"strings"
	"time"

	"seatsense/internal/ranking"
)

// LowConfidenceToken is the reserved sentinel a caller passes instead of text
// when the upstream speech recognizer reports low transcription confidence.
const LowConfidenceToken = "__LOW_CONFIDENCE__"

// DebounceWindow is the minimum interval between two accepted invocations.
// Calls landing inside it degrade to a generic acknowledgement so echoed
// partial transcripts cannot double-apply a preference.
const DebounceWindow = 1200 * time.Millisecond

// minUtteranceLen rejects noise fragments after trimming.
const minUtteranceLen = 4

// Assistant replies. Spoken verbatim by the caller, so keep them short.
const (
	msgRepeat    = "I didn't quite catch that. Please repeat."
	msgAck       = "Okay."
	msgListening = "Listening."
	msgClarify   = "I heard a few preferences. What matters more: price or being closer to the stage?"
	msgFallback  = "Sorry, I didn't understand that. You can say things like under one twenty, aisle, or option two."
)

// ResultKind discriminates the Result union.
type ResultKind string

const (
	ResultWeightUpdate ResultKind = "weight_update"
	ResultSelect       ResultKind = "select"
	ResultMessage      ResultKind = "message"
)

// Result is the interpreter's tagged union: exactly one variant is populated
// per call. WeightUpdate carries the renormalized vector; Select carries a
// 1-based index into the recommendations last shown to the user; Message
// carries clarification/fallback/status text.
type Result struct {
	Kind        ResultKind       `json:"kind"`
	Weights     *ranking.Weights `json:"weights,omitempty"`
	SelectIndex int              `json:"select_index,omitempty"`
	Message     string           `json:"message,omitempty"`
}

func weightUpdate(w ranking.Weights) Result {
	return Result{Kind: ResultWeightUpdate, Weights: &w}
}

func selectCommand(index int) Result {
	return Result{Kind: ResultSelect, SelectIndex: index}
}

func message(text string) Result {
	return Result{Kind: ResultMessage, Message: text}
}

// Interpreter converts free-form utterances into weight adjustments or
// discrete commands. Its only state is the debounce timestamp, held on the
// instance so independent sessions (and tests) do not interfere. It is not
// safe for concurrent use; callers serialize invocations per session.
type Interpreter struct {
	now            func() time.Time
	lastAcceptedAt time.Time
}

// New returns an interpreter on the wall clock with the debounce clock at
// "never".
func New() *Interpreter {
	return NewWithClock(time.Now)
}

// NewWithClock returns an interpreter using the given clock. Tests use this to
// simulate the debounce window.
func NewWithClock(now func() time.Time) *Interpreter {
	return &Interpreter{now: now}
}

// LastAcceptedAt exposes the debounce timestamp so a caller can persist it
// alongside its session state.
func (i *Interpreter) LastAcceptedAt() time.Time {
	return i.lastAcceptedAt
}

// Restore rehydrates the debounce timestamp from a caller's session store.
func (i *Interpreter) Restore(lastAcceptedAt time.Time) {
	i.lastAcceptedAt = lastAcceptedAt
}

// Interpret maps an utterance and the current weight vector to a Result. It
// is total: every input, including empty or gibberish text, yields a defined
// variant and never an error.
func (i *Interpreter) Interpret(rawText string, currentWeights ranking.Weights) Result {
	// Low-confidence input skips parsing and leaves the debounce clock alone.
	if rawText == LowConfidenceToken {
		return message(msgRepeat)
	}

	text := normalizeText(rawText)

	// The clock updates on every call that reaches this check, so a burst of
	// closely spaced utterances only has its first command applied.
	now := i.now()
	withinCooldown := now.Sub(i.lastAcceptedAt) < DebounceWindow
	i.lastAcceptedAt = now
	if withinCooldown {
		return message(msgAck)
	}

	if len(text) < minUtteranceLen {
		return message(msgListening)
	}

	// Discrete commands outrank preference scanning.
	if m := optionRe.FindStringSubmatch(text); m != nil {
		return selectCommand(optionIndex[m[1]])
	}

	factor := intensityMultiplier(text)
	updated := currentWeights
	var matched []criterion

	for _, in := range intents {
		for _, phrase := range in.phrases {
			if !strings.Contains(text, phrase) {
				continue
			}
			delta := in.delta * factor
			if isNegated(text, phrase) {
				// Soft negation: half magnitude, sign flipped.
				delta = -delta * 0.5
			}
			addDelta(&updated, in.criterion, delta)
			matched = append(matched, in.criterion)
			break
		}
	}

	if len(matched) > 0 && needsClarification(text, matched) {
		return message(msgClarify)
	}

	if len(matched) > 0 {
		return weightUpdate(updated.Normalize())
	}

	return message(msgFallback)
}

func addDelta(w *ranking.Weights, c criterion, delta float64) {
	switch c {
	case criterionDistance:
		w.Distance += delta
	case criterionCentrality:
		w.Centrality += delta
	case criterionAisle:
		w.Aisle += delta
	case criterionPrice:
		w.Price += delta
	case criterionAvoidObstructed:
		w.AvoidObstructed += delta
	}
}
