package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/gt4500/internal/game/dice"
)

// fixedSource returns the same value for every Intn call.
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

// TestChance_Bounds verifies the postcondition: probability 0 never occurs and
// probability 1 always occurs, whatever the source returns.
func TestChance_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := fixedSource{v: rapid.IntRange(0, dice.Resolution-1).Draw(rt, "roll")}
		assert.False(rt, dice.Chance(src, 0))
		assert.True(rt, dice.Chance(src, 1))
	})
}

// TestChance_Threshold verifies a roll below p*Resolution succeeds and a roll
// at the threshold fails.
func TestChance_Threshold(t *testing.T) {
	assert.True(t, dice.Chance(fixedSource{v: 2499}, 0.25))
	assert.False(t, dice.Chance(fixedSource{v: 2500}, 0.25))
}

// TestChance_PanicsOutOfRange verifies the precondition on p.
func TestChance_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { dice.Chance(fixedSource{}, -0.1) })
	assert.Panics(t, func() { dice.Chance(fixedSource{}, 1.5) })
}

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestSeededSource_Deterministic verifies two sources with the same seed agree.
func TestSeededSource_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		a, b := dice.NewSeededSource(seed), dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			assert.Equal(rt, a.Intn(100), b.Intn(100))
		}
	})
}
