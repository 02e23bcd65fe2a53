// CYCLIC - Binary cyclic block codes with syndrome decoding of single-bit errors.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package cyclic implements systematic binary cyclic codes with
// single-bit error correction by syndrome table lookup.
package cyclic

import (
	"fmt"
	"strconv"

	"github.com/bemasher/cyclic/gf2"
	"golang.org/x/xerrors"
)

const (
	MinParity = 2
	MaxParity = 16
)

var (
	ErrInvalidSymbol  = gf2.ErrInvalidSymbol
	ErrInvalidDivisor = gf2.ErrInvalidDivisor
	ErrInvalidLength  = gf2.ErrInvalidLength

	// The generator cannot give every single-bit error its own syndrome.
	ErrAmbiguousSyndromeTable = xerrors.New("cyclic: ambiguous syndrome table")

	// Status of a decoded word whose nonzero syndrome names no single-bit
	// error. Reported through Report.Err, never returned by Decode.
	ErrUncorrectable = xerrors.New("cyclic: uncorrectable error")
)

// Params are the fixed dimensions of a code: N bit codewords carrying K
// message bits and Parity check bits.
type Params struct {
	N      int `xml:",attr"`
	K      int `xml:",attr"`
	Parity int `xml:",attr"`
}

func (p Params) String() string {
	return fmt.Sprintf("(%d,%d)", p.N, p.K)
}

// Code is a binary cyclic code defined by its generator polynomial. It is
// immutable after construction and safe for concurrent use.
type Code struct {
	gen    gf2.Poly
	params Params
	table  Table
	lfsr   gf2.LFSR
}

// New constructs the code of length 2^m - 1 for a generator of degree m,
// the cyclic Hamming code when the generator is primitive.
func New(gen gf2.Poly) (*Code, error) {
	m := gf2.Trim(gen).Degree()
	if m < MinParity || m > MaxParity {
		// Let NewWithLength report what is wrong with gen.
		return NewWithLength(gen, 0)
	}
	return NewWithLength(gen, 1<<uint(m)-1)
}

// NewWithLength constructs a code of length n, shortened when n is less
// than 2^m - 1. Construction fails if any two single-bit errors share a
// syndrome.
func NewWithLength(gen gf2.Poly, n int) (*Code, error) {
	if err := check(gen); err != nil {
		return nil, err
	}

	gen = gf2.Trim(gen).Clone()
	if len(gen) == 0 {
		return nil, xerrors.Errorf("zero generator: %w", ErrInvalidDivisor)
	}

	m := gen.Degree()
	if m < MinParity || m > MaxParity {
		return nil, xerrors.Errorf("generator degree %d outside [%d,%d]: %w", m, MinParity, MaxParity, ErrInvalidLength)
	}
	if n <= m {
		return nil, xerrors.Errorf("length %d leaves no message bits for degree %d: %w", n, m, ErrInvalidLength)
	}

	table, err := NewTable(gen, n)
	if err != nil {
		return nil, err
	}

	lfsr, err := gf2.NewLFSR(gen)
	if err != nil {
		return nil, err
	}

	return &Code{
		gen:    gen,
		params: Params{N: n, K: n - m, Parity: m},
		table:  table,
		lfsr:   lfsr,
	}, nil
}

func (c *Code) Params() Params { return c.params }

func (c *Code) Table() Table { return c.table }

// Generator returns a copy of the generator polynomial.
func (c *Code) Generator() gf2.Poly { return c.gen.Clone() }

func (c *Code) String() string {
	return fmt.Sprintf("{Params:%s Generator:%s LFSR:%s}", c.params, c.gen.Bits(), c.lfsr)
}

// Syndrome returns the Parity bit remainder of word divided by the
// generator. It is zero iff word is a codeword.
func (c *Code) Syndrome(word gf2.Poly) (gf2.Poly, error) {
	if err := checkLength(word, c.params.N, "word"); err != nil {
		return nil, err
	}
	return c.syndrome(word)
}

func (c *Code) syndrome(word gf2.Poly) (gf2.Poly, error) {
	r, err := gf2.Remainder(word, c.gen)
	if err != nil {
		return nil, err
	}
	return gf2.Pad(r, c.params.Parity)
}

// Valid reports whether word is a codeword.
func (c *Code) Valid(word gf2.Poly) bool {
	return len(word) == c.params.N && c.lfsr.Remainder(word) == 0
}

// Trace holds the intermediate polynomials of an encoding for display.
type Trace struct {
	Message   gf2.Poly
	Shifted   gf2.Poly
	Remainder gf2.Poly
	Codeword  gf2.Poly
	Generator gf2.Poly
}

func (t Trace) String() string {
	return fmt.Sprintf("{Message:%s Shifted:%s Remainder:%s Codeword:%s Generator:%s}",
		t.Message.Bits(), t.Shifted.Bits(), t.Remainder.Bits(), t.Codeword.Bits(), t.Generator.Bits(),
	)
}

func (t Trace) Record() (r []string) {
	r = append(r, t.Message.Bits())
	r = append(r, t.Shifted.Bits())
	r = append(r, t.Remainder.Bits())
	r = append(r, t.Codeword.Bits())
	r = append(r, t.Generator.Bits())
	return
}

// Encode returns the systematic codeword for a K bit message: the message
// followed by the remainder of message·x^Parity divided by the generator.
func (c *Code) Encode(msg gf2.Poly) (gf2.Poly, Trace, error) {
	if err := checkLength(msg, c.params.K, "message"); err != nil {
		return nil, Trace{}, err
	}

	// Multiply by x^Parity.
	shifted := make(gf2.Poly, c.params.N)
	copy(shifted, msg)

	remainder, err := c.syndrome(shifted)
	if err != nil {
		return nil, Trace{}, err
	}

	codeword := shifted.Clone()
	for idx, b := range remainder {
		codeword[c.params.K+idx] ^= b
	}

	return codeword, Trace{
		Message:   msg.Clone(),
		Shifted:   shifted,
		Remainder: remainder,
		Codeword:  codeword.Clone(),
		Generator: c.gen.Clone(),
	}, nil
}

// Report describes the outcome of decoding one received word.
type Report struct {
	Received  gf2.Poly
	Syndrome  gf2.Poly
	Word      gf2.Poly // Received with the located error flipped, if any.
	Detected  bool     `xml:",attr"`
	Corrected bool     `xml:",attr"`
	Position  int      `xml:",attr"` // -1 if no error was located.
}

// Err returns ErrUncorrectable for a detected error that could not be
// corrected and nil otherwise.
func (r Report) Err() error {
	if r.Detected && !r.Corrected {
		return xerrors.Errorf("syndrome %s: %w", r.Syndrome.Bits(), ErrUncorrectable)
	}
	return nil
}

// Pattern returns the located error vector, all zero if none.
func (r Report) Pattern() gf2.Poly {
	p := make(gf2.Poly, len(r.Received))
	if r.Position >= 0 && r.Position < len(p) {
		p[r.Position] = 1
	}
	return p
}

func (r Report) String() string {
	return fmt.Sprintf("{Received:%s Syndrome:%s Detected:%t Corrected:%t Position:%d Word:%s}",
		r.Received.Bits(), r.Syndrome.Bits(), r.Detected, r.Corrected, r.Position, r.Word.Bits(),
	)
}

func (r Report) Record() (rec []string) {
	rec = append(rec, r.Received.Bits())
	rec = append(rec, r.Syndrome.Bits())
	rec = append(rec, strconv.FormatBool(r.Detected))
	rec = append(rec, strconv.FormatBool(r.Corrected))
	rec = append(rec, strconv.Itoa(r.Position))
	rec = append(rec, r.Word.Bits())
	return
}

// Decode computes the syndrome of an N bit received word and corrects at
// most one bit error. The returned message is the first K bits of the
// corrected word, or of the received word when the error could not be
// located. An uncorrectable word is not an error of Decode; check
// Report.Err.
func (c *Code) Decode(received gf2.Poly) (gf2.Poly, Report, error) {
	if err := checkLength(received, c.params.N, "received word"); err != nil {
		return nil, Report{Position: -1}, err
	}

	syndrome, err := c.syndrome(received)
	if err != nil {
		return nil, Report{Position: -1}, err
	}

	report := Report{
		Received: received.Clone(),
		Syndrome: syndrome,
		Word:     received.Clone(),
		Position: -1,
	}

	if syndrome.IsZero() {
		return report.Word[:c.params.K].Clone(), report, nil
	}

	report.Detected = true
	if pos, ok := c.table.Lookup(syndrome); ok {
		report.Word[pos] ^= 1
		report.Corrected = true
		report.Position = pos
	}

	return report.Word[:c.params.K].Clone(), report, nil
}

func check(p gf2.Poly) error {
	for idx, b := range p {
		if b > 1 {
			return xerrors.Errorf("coefficient %d at offset %d: %w", b, idx, ErrInvalidSymbol)
		}
	}
	return nil
}

func checkLength(p gf2.Poly, n int, name string) error {
	if len(p) != n {
		return xerrors.Errorf("%s of %d bits, expected %d: %w", name, len(p), n, ErrInvalidLength)
	}
	return check(p)
}
