package tuning

import "strconv"

var twelveToneNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// "+" marks a quarter tone sharp, so "C#+" sits three quarter tones above C.
var twentyFourToneNames = [24]string{
	"C", "C+", "C#", "C#+", "D", "D+", "D#", "D#+", "E", "E+", "F", "F+",
	"F#", "F#+", "G", "G+", "G#", "G#+", "A", "A+", "A#", "A#+", "B", "B+",
}

// octaveToken renders an octave number in a form that is safe to embed in
// identifiers: negative octaves become "N" followed by the absolute value,
// so octave -1 is "N1".
func octaveToken(octave int) string {
	if octave < 0 {
		return "N" + strconv.Itoa(-octave)
	}
	return strconv.Itoa(octave)
}

// toneName names the tone at index in a tuning with len(names) steps per
// octave. Names use scientific pitch notation: the octave that starts at
// index 0 is octave -1, so index 0 of a 12 step tuning is "CN1" and index 69
// is "A4".
func toneName(names []string, index int) string {
	size := len(names)
	return names[floorMod(index, size)] + octaveToken(floorDiv(index, size)-1)
}
