// Package dice provides the randomness abstraction used for mechanical jam
// rolls in the torpedo stores.
package dice

import "fmt"

// Resolution is the number of buckets a probability is quantised into by Chance.
const Resolution = 10000

// Source is the randomness provider for jam rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Chance rolls src once and reports whether an event of probability p occurred.
//
// Precondition: 0 <= p <= 1 (panics otherwise); src must be non-nil.
// Postcondition: Chance(src, 0) is always false; Chance(src, 1) is always true.
func Chance(src Source, p float64) bool {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("dice: Chance: probability must be in [0, 1], got %v", p))
	}
	return src.Intn(Resolution) < int(p*Resolution)
}
