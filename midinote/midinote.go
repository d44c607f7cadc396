// Package midinote maps tones onto MIDI keys, using pitch bend for the part
// of the pitch a twelve tone keyboard cannot express.
package midinote

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuningplayground/tuning"
	"gitlab.com/gomidi/midi/v2"
)

// BendRange is the pitch bend range, in semitones, the receiving synth is
// assumed to use.
const BendRange = 2

// ErrOutOfRange is returned for tones outside the MIDI key range.
var ErrOutOfRange = errors.New("tone outside MIDI key range")

// Pitch is a MIDI key and the pitch bend that moves it to the exact
// frequency of a tone. Bend is centered on zero, in [-8192, 8191].
type Pitch struct {
	Key  uint8
	Bend int16
}

// FromTone returns the nearest MIDI key to the tone. MIDI key 0 is CNeg1.
func FromTone(t tuning.Tone) (Pitch, error) {
	return FromFrequency(t.Frequency())
}

// FromFrequency is like FromTone but takes a frequency in Hz.
func FromFrequency(freq float64) (Pitch, error) {
	if freq <= 0 {
		return Pitch{}, fmt.Errorf("%w: %v Hz", ErrOutOfRange, freq)
	}
	semitones := 12 * math.Log2(freq/tuning.CNeg1)
	key := math.Round(semitones)
	if key < 0 || key > 127 {
		return Pitch{}, fmt.Errorf("%w: %v Hz", ErrOutOfRange, freq)
	}
	bend := math.Round((semitones - key) / BendRange * 8192)
	bend = math.Max(-8192, math.Min(8191, bend))
	return Pitch{Key: uint8(key), Bend: int16(bend)}, nil
}

// Frequency returns the frequency the pitch sounds at.
func (p Pitch) Frequency() float64 {
	return tuning.CNeg1 * math.Exp2((float64(p.Key)+float64(p.Bend)/8192*BendRange)/12)
}

// Messages returns the pitch bend followed by the note on message that
// play the pitch.
func (p Pitch) Messages(channel, velocity uint8) []midi.Message {
	return []midi.Message{
		midi.Pitchbend(channel, p.Bend),
		midi.NoteOn(channel, p.Key, velocity),
	}
}
