package cyclic

import (
	"testing"
	"time"

	"github.com/bemasher/cyclic/gf2"
	"golang.org/x/xerrors"
)

func TestTable(t *testing.T) {
	table := code.Table()
	if table.Len() != 7 || table.Width() != 3 {
		t.Fatalf("Expected: 7 entries of 3 bits Got: %d of %d\n", table.Len(), table.Width())
	}

	seen := make(map[string]bool)
	for pos, entry := range table.Entries() {
		if entry.Position != pos {
			t.Fatalf("Expected: %d Got: %d\n", pos, entry.Position)
		}
		if entry.Syndrome.IsZero() {
			t.Fatalf("position %d has zero syndrome\n", pos)
		}
		if seen[entry.Syndrome.Bits()] {
			t.Fatalf("position %d repeats syndrome %s\n", pos, entry.Syndrome.Bits())
		}
		seen[entry.Syndrome.Bits()] = true

		if p, ok := table.Lookup(entry.Syndrome); !ok || p != pos {
			t.Fatalf("Lookup(%s): Expected: %d Got: %d %t\n", entry.Syndrome.Bits(), pos, p, ok)
		}
	}
	if len(seen) != 7 {
		t.Fatalf("Expected: 7 syndromes Got: %d\n", len(seen))
	}
}

// Errors in the parity bits have the bit itself as their syndrome.
func TestTableParityPositions(t *testing.T) {
	expected := []string{"100", "010", "001"}
	entries := code.Table().Entries()
	for idx, bits := range expected {
		if got := entries[4+idx].Syndrome.Bits(); got != bits {
			t.Errorf("position %d: Expected: %s Got: %s\n", 4+idx, bits, got)
		}
	}
}

func TestTableLookupMiss(t *testing.T) {
	table := code.Table()
	for _, s := range []gf2.Poly{{0, 0, 0}, {1, 0}, {0, 0, 0, 1}} {
		if _, ok := table.Lookup(s); ok {
			t.Fatalf("Lookup(%s) unexpectedly found\n", s.Bits())
		}
	}

	var zero Table
	if _, ok := zero.Lookup(gf2.Poly{}); ok {
		t.Fatal("zero table lookup found an entry")
	}
}

func TestTableAmbiguous(t *testing.T) {
	_, err := NewTable(gf2.MustParse("1001"), 7)
	if !xerrors.Is(err, ErrAmbiguousSyndromeTable) {
		t.Fatalf("Expected: %v Got: %v\n", ErrAmbiguousSyndromeTable, err)
	}
	t.Log(err)

	if _, err := NewTable(gf2.Poly{}, 7); !xerrors.Is(err, ErrInvalidDivisor) {
		t.Fatalf("Expected: %v Got: %v\n", ErrInvalidDivisor, err)
	}
}

// Incremental syndromes agree with long division of each unit error.
func TestTableMatchesDivide(t *testing.T) {
	for _, tc := range []struct {
		gen string
		n   int
	}{
		{"1101", 7}, {"1011", 7}, {"1101", 5}, {"10011", 15}, {"1000011", 63},
	} {
		gen := gf2.MustParse(tc.gen)
		table, err := NewTable(gen, tc.n)
		if err != nil {
			t.Fatalf("%s n=%d: %v\n", tc.gen, tc.n, err)
		}

		for pos := 0; pos < tc.n; pos++ {
			r, err := gf2.Remainder(gf2.Unit(tc.n, pos), gen)
			if err != nil {
				t.Fatal(err)
			}
			s, err := gf2.Pad(r, table.Width())
			if err != nil {
				t.Fatal(err)
			}
			if p, ok := table.Lookup(s); !ok || p != pos {
				t.Fatalf("%s n=%d syndrome %s: Expected: %d Got: %d %t\n", tc.gen, tc.n, s.Bits(), pos, p, ok)
			}
		}
	}
}

func TestTableMaxParity(t *testing.T) {
	start := time.Now()
	c, err := New(gf2.MustParse("10001000000001011"))
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("degree %d code took %s to construct\n", MaxParity, elapsed)
	}

	expected := Params{N: 65535, K: 65519, Parity: 16}
	if c.Params() != expected {
		t.Fatalf("Expected: %s Got: %s\n", expected, c.Params())
	}
	if c.Table().Len() != expected.N {
		t.Fatalf("Expected: %d entries Got: %d\n", expected.N, c.Table().Len())
	}
}

func BenchmarkNewTable(b *testing.B) {
	gen := gf2.MustParse("10001000000001011")
	for i := 0; i < b.N; i++ {
		if _, err := NewTable(gen, 1<<16-1); err != nil {
			b.Fatal(err)
		}
	}
}
