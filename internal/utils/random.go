package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// RandomIntFunc draws an integer in [min, max] inclusive.
type RandomIntFunc func(min, max int) (int, error)

// SecureRandomInt returns a random integer between min and max (inclusive) using crypto/rand
func SecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max) - int64(min) + 1)
	n, err := crand.Int(crand.Reader, diff)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + min, nil
}

// SequenceRandom returns a RandomIntFunc that replays values in order, clamped
// into the requested range. Used to make lottery draws deterministic in tests.
func SequenceRandom(values ...int) RandomIntFunc {
	i := 0
	return func(min, max int) (int, error) {
		if len(values) == 0 {
			return min, nil
		}
		v := values[i%len(values)]
		i++
		if v < min {
			return min, nil
		}
		if v > max {
			return max, nil
		}
		return v, nil
	}
}
