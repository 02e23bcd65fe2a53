package gen

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/bemasher/cyclic/gf2"
)

func TestInjectErrors(t *testing.T) {
	codeword := gf2.MustParse("1011100")

	received, pattern := InjectErrors(codeword, []int{0, 6})
	if received.Bits() != "0011101" {
		t.Fatalf("Expected: %q Got: %q\n", "0011101", received.Bits())
	}
	if pattern.Bits() != "1000001" {
		t.Fatalf("Expected: %q Got: %q\n", "1000001", pattern.Bits())
	}
	if codeword.Bits() != "1011100" {
		t.Fatalf("codeword modified: %s\n", codeword.Bits())
	}
}

func TestInjectErrorsNone(t *testing.T) {
	codeword := gf2.MustParse("1011100")

	received, pattern := InjectErrors(codeword, nil)
	if !received.Equal(codeword) || !pattern.IsZero() {
		t.Fatalf("Expected no change, got %s %s\n", received.Bits(), pattern.Bits())
	}
}

// Out of range positions are ignored and repeats count once.
func TestInjectErrorsBestEffort(t *testing.T) {
	codeword := gf2.MustParse("0000000")

	received, pattern := InjectErrors(codeword, []int{-1, 3, 3, 7, 100})
	if received.Bits() != "0001000" || !pattern.Equal(received) {
		t.Fatalf("Expected: %q Got: %q %q\n", "0001000", received.Bits(), pattern.Bits())
	}
	if applied := Applied(pattern); !reflect.DeepEqual(applied, []int{3}) {
		t.Fatalf("Expected: %v Got: %v\n", []int{3}, applied)
	}
}

func TestRandomPositions(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 512; trial++ {
		count := r.Intn(9)
		positions := RandomPositions(r, 7, count)

		expected := count
		if expected > 7 {
			expected = 7
		}
		if len(positions) != expected {
			t.Fatalf("Expected: %d Got: %d\n", expected, len(positions))
		}
		for idx, pos := range positions {
			if pos < 0 || pos >= 7 || (idx > 0 && positions[idx-1] >= pos) {
				t.Fatalf("invalid positions: %v\n", positions)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	if !RandomMessage(a, 16).Equal(RandomMessage(b, 16)) {
		t.Fatal("messages differ for the same seed")
	}
	if !reflect.DeepEqual(RandomPositions(a, 7, 2), RandomPositions(b, 7, 2)) {
		t.Fatal("positions differ for the same seed")
	}
	if !reflect.DeepEqual(BitFlips(a, 64, 0.1), BitFlips(b, 64, 0.1)) {
		t.Fatal("bit flips differ for the same seed")
	}
}

func TestBitFlipsRate(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	if positions := BitFlips(r, 64, 0); len(positions) != 0 {
		t.Fatalf("Expected no flips, got %v\n", positions)
	}
	if positions := BitFlips(r, 64, 1); len(positions) != 64 {
		t.Fatalf("Expected 64 flips, got %d\n", len(positions))
	}
}
