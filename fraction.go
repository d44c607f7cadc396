package tuning

import (
	"fmt"
	"math"
	"math/bits"
)

// Fraction is an exact frequency ratio numerator/denominator * 2^base.
//
// Octave transpositions only ever touch base, so a ratio can be moved by any
// number of octaves without growing the numerator or the denominator and
// without rounding. Fractions are always kept in canonical form: numerator
// and denominator are coprime and odd, every factor of two lives in base.
// Two Fractions therefore represent the same ratio exactly when they are ==.
type Fraction struct {
	numerator   uint64
	denominator uint64
	base        int
}

// maxApproximationDenominator bounds the denominators used when an
// irrational ratio (an equal tempered step) has to be stored as a Fraction.
const maxApproximationDenominator = 1 << 24

// NewFraction returns the canonical Fraction numerator/denominator. A zero
// denominator is rejected with ErrInvalidFraction.
func NewFraction(numerator, denominator uint64) (Fraction, error) {
	if denominator == 0 {
		return Fraction{}, fmt.Errorf("%w: %d/0 has a zero denominator", ErrInvalidFraction, numerator)
	}
	return canonical(numerator, denominator, 0), nil
}

// MustFraction is like NewFraction but panics on a zero denominator. It is
// meant for the static ratio tables.
func MustFraction(numerator, denominator uint64) Fraction {
	f, err := NewFraction(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return f
}

func canonical(numerator, denominator uint64, base int) Fraction {
	if numerator == 0 {
		return Fraction{numerator: 0, denominator: 1}
	}
	g := gcd(numerator, denominator)
	numerator /= g
	denominator /= g
	tz := bits.TrailingZeros64(numerator)
	numerator >>= tz
	base += tz
	tz = bits.TrailingZeros64(denominator)
	denominator >>= tz
	base -= tz
	return Fraction{numerator: numerator, denominator: denominator, base: base}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Numerator returns the odd part of the numerator.
func (f Fraction) Numerator() uint64 { return f.numerator }

// Denominator returns the odd part of the denominator. The zero value of
// Fraction reports 1 so that it reads as the ratio 0.
func (f Fraction) Denominator() uint64 {
	if f.denominator == 0 {
		return 1
	}
	return f.denominator
}

// Base returns the number of octave doublings folded into the ratio. It is
// negative for ratios whose odd parts have been divided by two.
func (f Fraction) Base() int { return f.base }

// Octave returns the ratio transposed by octaves: f * 2^octaves. The result
// is exact for any octave count, negative counts shrink the ratio.
func (f Fraction) Octave(octaves int) Fraction {
	if f.numerator == 0 {
		return f
	}
	f.base += octaves
	return f
}

// Float64 converts the ratio to a float. This is the only place where
// precision is lost, so it should be called as late as possible.
func (f Fraction) Float64() float64 {
	if f.numerator == 0 {
		return 0
	}
	return math.Ldexp(float64(f.numerator)/float64(f.denominator), f.base)
}

// Equal reports whether f and o represent the same ratio.
func (f Fraction) Equal(o Fraction) bool {
	return f.numerator == o.numerator && f.Denominator() == o.Denominator() && f.base == o.base
}

func (f Fraction) String() string {
	if f.base == 0 {
		return fmt.Sprintf("%d/%d", f.numerator, f.Denominator())
	}
	return fmt.Sprintf("%d/%d*2^%d", f.numerator, f.Denominator(), f.base)
}

// approximate returns the Fraction closest to x (x >= 0) among the fractions
// whose odd denominator does not exceed maxDen. It walks the continued
// fraction expansion of x and finishes with the best semiconvergent.
func approximate(x float64, maxDen uint64) Fraction {
	if x <= 0 {
		return Fraction{numerator: 0, denominator: 1}
	}
	// keep x in [1,2): the octave goes straight into base
	mant, exp := math.Frexp(x)
	x = mant * 2
	exp--
	p0, q0, p1, q1 := uint64(0), uint64(1), uint64(1), uint64(0)
	r := x
	for {
		a := math.Floor(r)
		if a*float64(q1)+float64(q0) > float64(maxDen) {
			break
		}
		ai := uint64(a)
		p0, q0, p1, q1 = p1, q1, p0+ai*p1, q0+ai*q1
		rest := r - a
		if rest < 1e-12 {
			return canonical(p1, q1, exp)
		}
		r = 1 / rest
	}
	k := (maxDen - q0) / q1
	ps, qs := p0+k*p1, q0+k*q1
	if math.Abs(x-float64(ps)/float64(qs)) < math.Abs(x-float64(p1)/float64(q1)) {
		return canonical(ps, qs, exp)
	}
	return canonical(p1, q1, exp)
}

// floorDiv and floorMod round towards negative infinity so that indices
// below zero land in the previous octave instead of wrapping around zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return (a%b + b) % b
}
