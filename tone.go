package tuning

import "math"

// Reference pitches. Every tuning system is anchored at CNeg1, the C five
// octaves below middle C, which is tone index 0 in all systems.
const (
	C4    = 261.6256
	C0    = C4 / 16
	CNeg1 = C4 / 32

	A4    = 440.0
	A0    = A4 / 16
	ANeg1 = A4 / 32
)

// Tone is a single pitch of a tuning system. It is an immutable value:
// everything is derived from the system and the index when the Tone is
// created.
type Tone struct {
	Name     string
	fraction Fraction
	index    int
	system   System
}

// NewTone returns the tone at index in the given system. Every index is
// valid; negative indices are tones below the reference pitch CNeg1.
func NewTone(system System, index int) Tone {
	return Tone{
		Name:     system.ToneName(index),
		fraction: system.Fraction(index),
		index:    index,
		system:   system,
	}
}

func (t Tone) Index() int         { return t.index }
func (t Tone) System() System     { return t.system }
func (t Tone) Fraction() Fraction { return t.fraction }
func (t Tone) String() string     { return t.Name }

// Octave returns the zero based octave of the tone: index 0 up to Size()-1
// are octave 0. Note that the names use scientific pitch notation, which is
// one lower: tone 69 is octave 5 and named "A4".
func (t Tone) Octave() int {
	return floorDiv(t.index, t.system.Size())
}

// Frequency returns the frequency of the tone in Hz.
func (t Tone) Frequency() float64 {
	return t.fraction.Float64() * CNeg1
}

// Cents returns the deviation of the tone from the equal tempered tone with
// the same index and the same number of steps per octave, in cents. Equal
// tempered tones have exactly zero deviation.
func (t Tone) Cents() float64 {
	return cents(t.Frequency(), t.index, t.system.Size())
}

func cents(frequency float64, index, size int) float64 {
	reference := EqualTempered(index, size).Float64() * CNeg1
	return 1200 * math.Log2(frequency/reference)
}
