package tuning

import (
	"fmt"
	"math"
)

// System is one of the supported tuning systems. The set is closed: use
// Systems to enumerate it and ParseSystem to turn an identifier into a
// System.
type System int

const (
	// EqualTemperament divides the octave in 12 equal steps.
	EqualTemperament System = iota
	// JustIntonation uses 5-limit small integer ratios for 12 steps.
	JustIntonation
	// JustIntonation24 adds rational quarter tones between the steps of
	// JustIntonation, for 24 steps per octave.
	JustIntonation24
)

var systemIdentifiers = [...]string{
	EqualTemperament: "EqualTemperament",
	JustIntonation:   "JustIntonation",
	JustIntonation24: "JustIntonation24",
}

var justIntonation12Ratios = [12]Fraction{
	MustFraction(1, 1),
	MustFraction(16, 15),
	MustFraction(9, 8),
	MustFraction(6, 5),
	MustFraction(5, 4),
	MustFraction(4, 3),
	MustFraction(45, 32),
	MustFraction(3, 2),
	MustFraction(8, 5),
	MustFraction(5, 3),
	MustFraction(9, 5),
	MustFraction(15, 8),
}

var justIntonation24Ratios = [24]Fraction{
	MustFraction(1, 1),
	MustFraction(33, 32),
	MustFraction(16, 15),
	MustFraction(11, 10),
	MustFraction(9, 8),
	MustFraction(7, 6),
	MustFraction(6, 5),
	MustFraction(11, 9),
	MustFraction(5, 4),
	MustFraction(9, 7),
	MustFraction(4, 3),
	MustFraction(11, 8),
	MustFraction(45, 32),
	MustFraction(16, 11),
	MustFraction(3, 2),
	MustFraction(14, 9),
	MustFraction(8, 5),
	MustFraction(13, 8),
	MustFraction(5, 3),
	MustFraction(12, 7),
	MustFraction(9, 5),
	MustFraction(11, 6),
	MustFraction(15, 8),
	MustFraction(31, 16),
}

// Systems returns all the supported tuning systems.
func Systems() []System {
	return []System{EqualTemperament, JustIntonation, JustIntonation24}
}

// ParseSystem returns the System with the given identifier. The match is
// exact and case sensitive; anything else fails with ErrUnknownSystem.
func ParseSystem(text string) (System, error) {
	for i, id := range systemIdentifiers {
		if id == text {
			return System(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, text)
}

func (s System) valid() bool {
	return s >= 0 && int(s) < len(systemIdentifiers)
}

// String returns the identifier of the system, which ParseSystem accepts.
func (s System) String() string {
	if !s.valid() {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systemIdentifiers[s]
}

func (s System) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSystem, int(s))
	}
	return []byte(systemIdentifiers[s]), nil
}

func (s *System) UnmarshalText(text []byte) error {
	v, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Size returns the number of steps per octave.
func (s System) Size() int {
	switch s {
	case EqualTemperament, JustIntonation:
		return 12
	case JustIntonation24:
		return 24
	}
	panic(fmt.Sprintf("tuning: invalid %v", s))
}

// ToneName returns the name of the tone at index, e.g. "A4" for index 69 of
// the 12 step systems.
func (s System) ToneName(index int) string {
	switch s {
	case EqualTemperament, JustIntonation:
		return toneName(twelveToneNames[:], index)
	case JustIntonation24:
		return toneName(twentyFourToneNames[:], index)
	}
	panic(fmt.Sprintf("tuning: invalid %v", s))
}

// Fraction returns the ratio of the tone at index relative to index 0. The
// octave part is folded into the base of the fraction, so index k*Size()
// is exactly 2^k.
func (s System) Fraction(index int) Fraction {
	size := s.Size()
	step, octave := floorMod(index, size), floorDiv(index, size)
	switch s {
	case JustIntonation:
		return justIntonation12Ratios[step].Octave(octave)
	case JustIntonation24:
		return justIntonation24Ratios[step].Octave(octave)
	}
	return EqualTempered(index, size)
}

// EqualTempered returns the ratio 2^(index/size) of an equal tempered tuning
// with size steps per octave. The step within the octave is irrational in
// general and stored as its best rational approximation; the whole octaves
// are exact. It panics if size is not positive.
func EqualTempered(index, size int) Fraction {
	if size <= 0 {
		panic(fmt.Sprintf("tuning: equal temperament needs a positive size, got %d", size))
	}
	step, octave := floorMod(index, size), floorDiv(index, size)
	if step == 0 {
		return Fraction{numerator: 1, denominator: 1, base: octave}
	}
	return approximate(math.Exp2(float64(step)/float64(size)), maxApproximationDenominator).Octave(octave)
}
