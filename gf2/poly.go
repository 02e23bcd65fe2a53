// Package gf2 implements polynomial arithmetic over GF(2).
//
// A Poly is a slice of coefficients, each 0 or 1. Index 0 is the leftmost
// bit as written and holds the coefficient of the highest power; the last
// index is the constant term. So "1011" is x^3 + x + 1.
package gf2

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

var (
	ErrInvalidSymbol  = xerrors.New("gf2: invalid symbol")
	ErrInvalidDivisor = xerrors.New("gf2: invalid divisor")
	ErrInvalidLength  = xerrors.New("gf2: invalid length")
)

// Poly is a binary polynomial, most significant coefficient first.
type Poly []byte

// Parse converts a string of '0' and '1' characters into a Poly.
func Parse(bits string) (Poly, error) {
	p := make(Poly, len(bits))
	for idx := range bits {
		switch bits[idx] {
		case '0':
		case '1':
			p[idx] = 1
		default:
			return nil, xerrors.Errorf("%q at offset %d: %w", bits[idx], idx, ErrInvalidSymbol)
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(bits string) Poly {
	p, err := Parse(bits)
	if err != nil {
		panic(err)
	}
	return p
}

// Unit returns a length n polynomial with a single 1 at index pos.
func Unit(n, pos int) Poly {
	p := make(Poly, n)
	p[pos] = 1
	return p
}

// FromUint returns the low n bits of v as a Poly of length n.
func FromUint(v uint, n int) Poly {
	p := make(Poly, n)
	for idx := n - 1; idx >= 0; idx, v = idx-1, v>>1 {
		p[idx] = byte(v & 1)
	}
	return p
}

// Uint packs p into an unsigned integer, constant term in bit 0.
// Coefficients beyond the width of uint are shifted out.
func (p Poly) Uint() (v uint) {
	for _, b := range p {
		v = v<<1 | uint(b&1)
	}
	return
}

// Clone returns a copy of p that shares no storage with it.
func (p Poly) Clone() Poly {
	c := make(Poly, len(p))
	copy(c, p)
	return c
}

// IsZero reports whether every coefficient of p is 0.
func (p Poly) IsZero() bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(Trim(p)) - 1
}

// Equal compares coefficients position by position, including length.
func (p Poly) Equal(q Poly) bool {
	if len(p) != len(q) {
		return false
	}
	for idx := range p {
		if p[idx] != q[idx] {
			return false
		}
	}
	return true
}

// Bits returns p as a string of '0' and '1' characters.
func (p Poly) Bits() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, c := range p {
		b.WriteByte('0' + c&1)
	}
	return b.String()
}

// String returns p in algebraic form, highest power first. The zero
// polynomial is "0".
func (p Poly) String() string {
	var terms []string
	for idx, c := range p {
		if c == 0 {
			continue
		}
		switch pow := len(p) - 1 - idx; pow {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, "x^"+strconv.Itoa(pow))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// Trim returns p without its leading zero coefficients. The result
// aliases p. The zero polynomial trims to an empty Poly.
func Trim(p Poly) Poly {
	for idx, b := range p {
		if b != 0 {
			return p[idx:]
		}
	}
	return p[len(p):]
}

// Pad returns a copy of p widened to exactly n coefficients by adding
// zeros on the high side, which preserves its value. Leading zeros of p
// are dropped first; if the remaining value does not fit in n
// coefficients Pad fails with ErrInvalidLength.
func Pad(p Poly, n int) (Poly, error) {
	t := Trim(p)
	if len(t) > n {
		return nil, xerrors.Errorf("degree %d does not fit %d coefficients: %w", len(t)-1, n, ErrInvalidLength)
	}
	out := make(Poly, n)
	copy(out[n-len(t):], t)
	return out, nil
}

// Add returns p + q. Over GF(2) addition and subtraction are both XOR.
// Operands are aligned on their constant terms; the result has the
// length of the longer operand.
func Add(p, q Poly) Poly {
	if len(p) < len(q) {
		p, q = q, p
	}
	out := p.Clone()
	off := len(p) - len(q)
	for idx, b := range q {
		out[off+idx] ^= b
	}
	return out
}

// Mul returns the product p·q, trimmed of leading zeros.
func Mul(p, q Poly) Poly {
	p, q = Trim(p), Trim(q)
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] ^= b
		}
	}
	return out
}

// Divide performs long division of dividend by divisor and returns the
// quotient and remainder, both trimmed. The remainder's degree is
// strictly less than the divisor's and Add(Mul(quotient, divisor),
// remainder) equals the trimmed dividend.
//
// A divisor with no nonzero coefficient fails with ErrInvalidDivisor.
func Divide(dividend, divisor Poly) (quotient, remainder Poly, err error) {
	dividend, divisor = Trim(dividend), Trim(divisor)
	if len(divisor) == 0 {
		return nil, nil, xerrors.Errorf("divide: %w", ErrInvalidDivisor)
	}

	remainder = dividend.Clone()

	steps := len(dividend) - len(divisor) + 1
	if steps <= 0 {
		return Poly{}, remainder, nil
	}

	quotient = make(Poly, steps)
	for i := 0; i < steps; i++ {
		// Leading bit of the aligned window decides the quotient bit.
		if remainder[i] == 0 {
			continue
		}
		quotient[i] = 1
		for j, b := range divisor {
			remainder[i+j] ^= b
		}
	}

	return Trim(quotient), Trim(remainder), nil
}

// Remainder is Divide without the quotient.
func Remainder(dividend, divisor Poly) (Poly, error) {
	_, r, err := Divide(dividend, divisor)
	return r, err
}

// MarshalText encodes p as its string of bits so JSON and XML output stay
// readable.
func (p Poly) MarshalText() ([]byte, error) {
	return []byte(p.Bits()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (p *Poly) UnmarshalText(text []byte) (err error) {
	*p, err = Parse(string(text))
	return
}
