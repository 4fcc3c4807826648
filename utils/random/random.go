// Package random provides the sampling helpers behind the card strategies:
// integers in a range, unique draws without replacement and a generic shuffle.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrOutOfRange indicates a unique draw was requested for more values than
// the range contains. It signals a strategy configuration bug, not a normal
// runtime condition.
var ErrOutOfRange = errors.New("count exceeds range size")

// NewSeed returns a PRNG seed read from the operating system entropy source,
// falling back to the wall clock if the read fails. Generators seeded from it
// make no cryptographic claims; the entropy only keeps streams apart when
// several generators are created in the same instant.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Int returns a uniform integer in [min, max], both bounds inclusive.
// It panics when max < min, matching math/rand conventions for bad arguments.
func Int(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// UniqueInRange draws count distinct integers from [min, max]. The selection
// is uniform: the full range is materialized, Fisher-Yates shuffled and
// truncated, so there is no rejection loop to degenerate when count
// approaches the range size. Bingo ranges hold at most 90 values, which keeps
// the materialization cheap. A zero count yields an empty, non-nil slice.
func UniqueInRange(rng *rand.Rand, min, max, count int) ([]int, error) {
	if count == 0 {
		return []int{}, nil
	}
	size := max - min + 1
	if count < 0 || count > size {
		return nil, fmt.Errorf("%w: need %d values from [%d, %d]", ErrOutOfRange, count, min, max)
	}
	pool := make([]int, size)
	for i := range pool {
		pool[i] = min + i
	}
	return Shuffle(rng, pool)[:count], nil
}

// Shuffle returns a copy of items in uniformly random order. The input slice
// is never mutated.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
