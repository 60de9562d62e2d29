package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatsense/internal/ranking"
)

// fakeClock steps a simulated clock by fixed increments between calls.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestInterpret_LowConfidenceSentinel(t *testing.T) {
	clock := newFakeClock()
	it := NewWithClock(clock.Now)

	res := it.Interpret(LowConfidenceToken, ranking.DefaultWeights())

	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgRepeat, res.Message)
	assert.True(t, it.LastAcceptedAt().IsZero(), "low-confidence input must not touch the debounce clock")
}

func TestInterpret_TooShortInput(t *testing.T) {
	for _, text := range []string{"", "  ", "no", "hm"} {
		it := NewWithClock(newFakeClock().Now)
		res := it.Interpret(text, ranking.DefaultWeights())
		require.Equal(t, ResultMessage, res.Kind, "input %q", text)
		assert.Equal(t, msgListening, res.Message, "input %q", text)
	}
}

func TestInterpret_RejectedFragmentStillAdvancesCooldown(t *testing.T) {
	clock := newFakeClock()
	it := NewWithClock(clock.Now)

	res := it.Interpret("hm", ranking.DefaultWeights())
	require.Equal(t, msgListening, res.Message)

	clock.Advance(300 * time.Millisecond)
	res = it.Interpret("closer please", ranking.DefaultWeights())
	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgAck, res.Message)
}

func TestInterpret_SelectCommand(t *testing.T) {
	cases := map[string]int{
		"option one":   1,
		"option two":   2,
		"option three": 3,
	}

	for text, want := range cases {
		it := NewWithClock(newFakeClock().Now)
		res := it.Interpret(text, ranking.DefaultWeights())
		require.Equal(t, ResultSelect, res.Kind, "input %q", text)
		assert.Equal(t, want, res.SelectIndex, "input %q", text)
	}
}

func TestInterpret_CommandOutranksPreferences(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)

	res := it.Interpret("cheaper please, option two", ranking.DefaultWeights())

	require.Equal(t, ResultSelect, res.Kind)
	assert.Equal(t, 2, res.SelectIndex)
}

func TestInterpret_SingleIntentRaisesWeight(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)
	current := ranking.DefaultWeights()

	res := it.Interpret("closer please", current)

	require.Equal(t, ResultWeightUpdate, res.Kind)
	require.NotNil(t, res.Weights)
	assert.InDelta(t, 1.0, res.Weights.Sum(), 1e-9)
	assert.Greater(t, res.Weights.Distance, current.Distance)
}

func TestInterpret_IntensityMultiplier(t *testing.T) {
	base := ranking.DefaultWeights()

	plain := NewWithClock(newFakeClock().Now).Interpret("closer please", base)
	strong := NewWithClock(newFakeClock().Now).Interpret("very close to the stage", base)
	mild := NewWithClock(newFakeClock().Now).Interpret("slightly closer", base)

	require.Equal(t, ResultWeightUpdate, plain.Kind)
	require.Equal(t, ResultWeightUpdate, strong.Kind)
	require.Equal(t, ResultWeightUpdate, mild.Kind)
	assert.Greater(t, strong.Weights.Distance, plain.Weights.Distance)
	assert.Less(t, mild.Weights.Distance, plain.Weights.Distance)
}

func TestInterpret_SoftNegationReducesWeight(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)
	current := ranking.DefaultWeights()

	res := it.Interpret("not too close to the stage", current)

	require.Equal(t, ResultWeightUpdate, res.Kind)
	require.NotNil(t, res.Weights)
	assert.Less(t, res.Weights.Distance, current.Distance)
}

func TestInterpret_ClarificationOnPriceAndDistance(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)

	res := it.Interpret("cheap and closer", ranking.DefaultWeights())

	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgClarify, res.Message)
}

func TestInterpret_ClarificationOnQualityAdjective(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)

	res := it.Interpret("a good aisle seat", ranking.DefaultWeights())

	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgClarify, res.Message)
}

func TestInterpret_ClarificationOnThreeIntents(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)

	res := it.Interpret("closer to the middle aisle", ranking.DefaultWeights())

	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgClarify, res.Message)
}

func TestInterpret_Fallback(t *testing.T) {
	it := NewWithClock(newFakeClock().Now)

	res := it.Interpret("purple monkey dishwasher", ranking.DefaultWeights())

	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgFallback, res.Message)
}

func TestInterpret_DebounceSwallowsRapidRepeat(t *testing.T) {
	clock := newFakeClock()
	it := NewWithClock(clock.Now)

	first := it.Interpret("closer please", ranking.DefaultWeights())
	require.Equal(t, ResultWeightUpdate, first.Kind)

	clock.Advance(500 * time.Millisecond)
	second := it.Interpret("cheaper please", ranking.DefaultWeights())
	require.Equal(t, ResultMessage, second.Kind)
	assert.Equal(t, msgAck, second.Message)
}

func TestInterpret_DebounceExpires(t *testing.T) {
	clock := newFakeClock()
	it := NewWithClock(clock.Now)

	first := it.Interpret("closer please", ranking.DefaultWeights())
	require.Equal(t, ResultWeightUpdate, first.Kind)

	clock.Advance(DebounceWindow + 50*time.Millisecond)
	second := it.Interpret("affordable please", ranking.DefaultWeights())
	require.Equal(t, ResultWeightUpdate, second.Kind)
	assert.Greater(t, second.Weights.Price, 0.20)
}

func TestInterpret_RestoreRehydratesDebounceState(t *testing.T) {
	clock := newFakeClock()

	first := NewWithClock(clock.Now)
	res := first.Interpret("closer please", ranking.DefaultWeights())
	require.Equal(t, ResultWeightUpdate, res.Kind)
	stamp := first.LastAcceptedAt()

	clock.Advance(400 * time.Millisecond)
	second := NewWithClock(clock.Now)
	second.Restore(stamp)
	res = second.Interpret("cheaper please", ranking.DefaultWeights())
	require.Equal(t, ResultMessage, res.Kind)
	assert.Equal(t, msgAck, res.Message)
}

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  Nearer   to the ACTION ": "closer to the action",
		"less expensive please":     "under please",
		"a walkway spot":            "a aisle spot",
		"Blocked view up front":     "obstructed up front",
	}

	for in, want := range cases {
		assert.Equal(t, want, normalizeText(in), "input %q", in)
	}
}

func TestIsNegated(t *testing.T) {
	assert.True(t, isNegated("not near the front", "near"))
	assert.True(t, isNegated("no aisle for me", "aisle"))
	assert.False(t, isNegated("near the front", "near"))
	// The negating token must sit inside the lookbehind window.
	assert.False(t, isNegated("not interested in anything except something near", "near"))
}
