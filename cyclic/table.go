package cyclic

import (
	"fmt"
	"strconv"

	"github.com/bemasher/cyclic/gf2"
	"golang.org/x/xerrors"
)

// Table maps the syndrome of every single-bit error to the position of
// that bit. It is indexed by the syndrome's integer value.
type Table struct {
	width int
	n     int
	pos   []int
}

// NewTable computes the syndrome of the unit error at each position in
// [0, n) of a length n word. Every syndrome must be nonzero and distinct
// from the others, otherwise the table is ambiguous and NewTable fails.
func NewTable(gen gf2.Poly, n int) (table Table, err error) {
	gen = gf2.Trim(gen)
	if len(gen) == 0 {
		return table, xerrors.Errorf("syndrome table: %w", ErrInvalidDivisor)
	}

	table.width = gen.Degree()
	table.n = n

	// Only 2^width - 1 nonzero syndromes exist.
	if limit := 1<<uint(table.width) - 1; n > limit {
		return Table{}, xerrors.Errorf("%d positions but only %d nonzero syndromes: %w", n, limit, ErrAmbiguousSyndromeTable)
	}

	table.pos = make([]int, 1<<uint(table.width))
	for idx := range table.pos {
		table.pos[idx] = -1
	}

	if n == 0 {
		return table, nil
	}

	lfsr, err := gf2.NewLFSR(gen)
	if err != nil {
		return Table{}, err
	}

	// The error at position pos is x^(n-1-pos), so walk the positions
	// from the constant term upward, multiplying by x at each step.
	for pos, s := n-1, uint(1); pos >= 0; pos, s = pos-1, lfsr.Shift(s) {
		if s == 0 {
			return Table{}, xerrors.Errorf("error at position %d has zero syndrome: %w", pos, ErrAmbiguousSyndromeTable)
		}
		if prev := table.pos[s]; prev != -1 {
			return Table{}, xerrors.Errorf("positions %d and %d share syndrome %s: %w",
				pos, prev, gf2.FromUint(s, table.width).Bits(), ErrAmbiguousSyndromeTable,
			)
		}
		table.pos[s] = pos
	}

	return table, nil
}

// Len returns the number of entries, one per bit position.
func (t Table) Len() int { return t.n }

// Width is the number of bits in a syndrome.
func (t Table) Width() int { return t.width }

// Lookup returns the error position for syndrome s.
func (t Table) Lookup(s gf2.Poly) (pos int, ok bool) {
	if len(t.pos) == 0 || len(s) != t.width {
		return -1, false
	}
	pos = t.pos[s.Uint()]
	return pos, pos != -1
}

// Entry is one row of a syndrome table.
type Entry struct {
	Position int      `xml:",attr"`
	Syndrome gf2.Poly `xml:",attr"`
}

func (e Entry) String() string {
	return fmt.Sprintf("{Position:%d Syndrome:%s}", e.Position, e.Syndrome.Bits())
}

func (e Entry) Record() []string {
	return []string{strconv.Itoa(e.Position), e.Syndrome.Bits()}
}

// Entries lists the table ordered by error position.
func (t Table) Entries() []Entry {
	entries := make([]Entry, t.n)
	for s, pos := range t.pos {
		if pos == -1 {
			continue
		}
		entries[pos] = Entry{pos, gf2.FromUint(uint(s), t.width)}
	}
	return entries
}
