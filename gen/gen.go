// Package gen simulates transmission of codewords over a noisy channel and
// generates random messages for tests.
package gen

import (
	"math/rand"

	"github.com/bemasher/cyclic/gf2"
)

// InjectErrors flips the bits of codeword named by positions and returns
// the received word together with the applied error pattern. Positions
// form a set: repeats are applied once. Positions outside the word are
// ignored. The codeword itself is never modified.
func InjectErrors(codeword gf2.Poly, positions []int) (received, pattern gf2.Poly) {
	pattern = make(gf2.Poly, len(codeword))
	for _, pos := range positions {
		if pos < 0 || pos >= len(codeword) {
			continue
		}
		pattern[pos] = 1
	}

	received = gf2.Add(codeword, pattern)
	return
}

// Applied lists the positions set in an error pattern.
func Applied(pattern gf2.Poly) (positions []int) {
	for pos, b := range pattern {
		if b != 0 {
			positions = append(positions, pos)
		}
	}
	return
}

// RandomPositions picks count distinct positions in [0, n), in ascending
// order. Count is clamped to n.
func RandomPositions(r *rand.Rand, n, count int) []int {
	if count > n {
		count = n
	}
	if count <= 0 {
		return nil
	}

	picked := make([]bool, n)
	for _, pos := range r.Perm(n)[:count] {
		picked[pos] = true
	}

	positions := make([]int, 0, count)
	for pos, ok := range picked {
		if ok {
			positions = append(positions, pos)
		}
	}
	return positions
}

// BitFlips models a binary symmetric channel: each of n positions is
// flipped independently with probability rate.
func BitFlips(r *rand.Rand, n int, rate float64) (positions []int) {
	for pos := 0; pos < n; pos++ {
		if r.Float64() < rate {
			positions = append(positions, pos)
		}
	}
	return
}

// RandomMessage returns k uniformly random bits.
func RandomMessage(r *rand.Rand, k int) gf2.Poly {
	msg := make(gf2.Poly, k)
	for idx := range msg {
		msg[idx] = byte(r.Intn(2))
	}
	return msg
}
