package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SumsToOne(t *testing.T) {
	vectors := []Weights{
		{Distance: 1, Centrality: 1, Aisle: 1, Price: 1, AvoidObstructed: 1},
		{Distance: 0.45, Centrality: 0.2, Aisle: 0.2, Price: 0.2, AvoidObstructed: 0.15},
		{Distance: 7},
		{Distance: 2, Price: -3, AvoidObstructed: 0.5},
	}

	for _, w := range vectors {
		assert.InDelta(t, 1.0, w.Normalize().Sum(), 1e-9)
	}
}

func TestNormalize_NegativeClampedToZero(t *testing.T) {
	w := Weights{Distance: 1, Price: -5}.Normalize()

	assert.Equal(t, 0.0, w.Price)
	assert.InDelta(t, 1.0, w.Distance, 1e-9)
}

func TestNormalize_NonFiniteClampedToZero(t *testing.T) {
	w := Weights{Distance: math.NaN(), Centrality: math.Inf(1), Aisle: 1}.Normalize()

	assert.Equal(t, 0.0, w.Distance)
	assert.Equal(t, 0.0, w.Centrality)
	assert.InDelta(t, 1.0, w.Aisle, 1e-9)
}

func TestNormalize_ZeroSumFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultWeights(), Weights{}.Normalize())
	assert.Equal(t, DefaultWeights(), Weights{Distance: -1, Price: -2}.Normalize())
}

func TestDefaultWeights_AlreadyNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
}
