// Package notation converts tone names into ABC notation.
package notation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/tuningplayground/tuning"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var abcTemplate = template.Must(template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"))

// ErrUnrecognizedNote is returned by ParseABC for notes it cannot read.
var ErrUnrecognizedNote = errors.New("unrecognized ABC note")

var (
	// letter, accidentals and octave token of a tone name, e.g. C#+N1
	toneNamePattern = regexp.MustCompile(`^([A-G])([#b+]*)(N\d+|\d+)$`)
	abcNotePattern  = regexp.MustCompile(`^((?:\^3/2|\^/|\^|_)*)([A-G])(,*)('*)$`)
)

// middleOctave is the octave written without any octave marks.
const middleOctave = 4

type (
	abcNote struct {
		Raw        string // name that could not be parsed, emitted as is
		Accidental string
		Pitch      string
		Up, Down   int
	}

	abcChord struct {
		Length string
		Notes  []abcNote
	}
)

// ABC renders the tone names as a single ABC chord with unit note length
// 1/1, e.g. []string{"C4", "E4", "G4"} becomes "L: 1/1 \n[CEG]". Names that
// are not in the tone name format are copied to the output unchanged.
func ABC(names []string) (string, error) {
	chord := abcChord{Length: "1/1", Notes: make([]abcNote, len(names))}
	for i, name := range names {
		chord.Notes[i] = toABCNote(name)
	}
	var buf bytes.Buffer
	if err := abcTemplate.ExecuteTemplate(&buf, "abc.tmpl", chord); err != nil {
		return "", fmt.Errorf("could not execute ABC template: %w", err)
	}
	return buf.String(), nil
}

// Tones is like ABC but takes the names of the tones.
func Tones(tones []tuning.Tone) (string, error) {
	names := make([]string, len(tones))
	for i, t := range tones {
		names[i] = t.Name
	}
	return ABC(names)
}

func toABCNote(name string) abcNote {
	m := toneNamePattern.FindStringSubmatch(name)
	if m == nil {
		return abcNote{Raw: name}
	}
	octave, err := parseOctaveToken(m[3])
	if err != nil {
		return abcNote{Raw: name}
	}
	note := abcNote{Pitch: m[1], Accidental: abcAccidentals(m[2])}
	// one mark per octave, so octave N1 gets five commas
	if octave > middleOctave {
		note.Up = octave - middleOctave
	} else {
		note.Down = middleOctave - octave
	}
	return note
}

// abcAccidentals translates sharps (#), flats (b) and quarter tone sharps
// (+). A sharp directly followed by a quarter sharp is three quarter tones.
func abcAccidentals(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '#' && i+1 < len(s) && s[i+1] == '+':
			sb.WriteString("^3/2")
			i++
		case s[i] == '#':
			sb.WriteString("^")
		case s[i] == 'b':
			sb.WriteString("_")
		case s[i] == '+':
			sb.WriteString("^/")
		}
	}
	return sb.String()
}

func parseOctaveToken(token string) (int, error) {
	if strings.HasPrefix(token, "N") {
		v, err := strconv.Atoi(token[1:])
		return -v, err
	}
	return strconv.Atoi(token)
}

// ParseABC reads back a single note written by ABC and returns the tone
// name it was made from, e.g. "^/A''" gives "A+6".
func ParseABC(note string) (string, error) {
	m := abcNotePattern.FindStringSubmatch(note)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedNote, note)
	}
	var accidentals strings.Builder
	rest := m[1]
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "^3/2"):
			accidentals.WriteString("#+")
			rest = rest[4:]
		case strings.HasPrefix(rest, "^/"):
			accidentals.WriteString("+")
			rest = rest[2:]
		case strings.HasPrefix(rest, "^"):
			accidentals.WriteString("#")
			rest = rest[1:]
		default:
			accidentals.WriteString("b")
			rest = rest[1:]
		}
	}
	octave := middleOctave - len(m[3]) + len(m[4])
	token := strconv.Itoa(octave)
	if octave < 0 {
		token = "N" + strconv.Itoa(-octave)
	}
	return m[2] + accidentals.String() + token, nil
}
