package gf2

import (
	"fmt"

	"golang.org/x/xerrors"
)

// LFSR computes remainders modulo a packed generator polynomial by
// shifting bits through a linear feedback shift register.
type LFSR struct {
	GenPoly uint
	Degree  byte
}

// NewLFSR packs gen and calculates its degree. Generators must fit in 32
// bits and have degree of at least 1.
func NewLFSR(gen Poly) (lfsr LFSR, err error) {
	gen = Trim(gen)
	if len(gen) < 2 || len(gen) > 32 {
		return lfsr, xerrors.Errorf("lfsr generator of %d coefficients: %w", len(gen), ErrInvalidDivisor)
	}

	lfsr.GenPoly = gen.Uint()

	p := lfsr.GenPoly
	for ; lfsr.Degree < 32 && p > 0; lfsr.Degree, p = lfsr.Degree+1, p>>1 {
	}
	lfsr.Degree--

	return
}

func (lfsr LFSR) String() string {
	return fmt.Sprintf("{GenPoly:%X Degree:%d}", lfsr.GenPoly, lfsr.Degree)
}

// Remainder shifts every coefficient of p into the register, most
// significant first, and returns the register contents: p mod GenPoly.
func (lfsr LFSR) Remainder(p Poly) (reg uint) {
	for _, b := range p {
		// Rotate register and shift in bit.
		reg = reg<<1 | uint(b&1)

		// If the bit above the register is set, reduce by the generator.
		if reg>>lfsr.Degree != 0 {
			reg ^= lfsr.GenPoly
		}
	}

	// Mask to valid length
	reg &= (1 << lfsr.Degree) - 1
	return
}

// Shift multiplies the register contents reg by x and reduces the result
// modulo GenPoly. reg must already be reduced.
func (lfsr LFSR) Shift(reg uint) uint {
	reg <<= 1
	if reg>>lfsr.Degree != 0 {
		reg ^= lfsr.GenPoly
	}
	return reg
}
