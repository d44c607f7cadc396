// Package table lists the tones of a tuning system over a range of tone
// indices, together with their deviation from equal temperament.
package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"github.com/tuningplayground/tuning"
	"github.com/viterin/vek"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrEmptyRange is returned when a table would have no rows.
var ErrEmptyRange = errors.New("empty tone range")

type (
	// Row describes one tone.
	Row struct {
		Index     int     `yaml:"index" json:"index"`
		Name      string  `yaml:"name" json:"name"`
		Octave    int     `yaml:"octave" json:"octave"`
		Ratio     string  `yaml:"ratio" json:"ratio"`
		Frequency float64 `yaml:"frequency" json:"frequency"`
		Cents     float64 `yaml:"cents" json:"cents"`
	}

	// Table holds the tones of one tuning for a range of indices. MaxAbsCents
	// and MeanCents summarize how far the tuning strays from equal
	// temperament over that range.
	Table struct {
		System      string  `yaml:"system,omitempty" json:"system,omitempty"`
		Title       string  `yaml:"title" json:"title"`
		Size        int     `yaml:"size" json:"size"`
		Rows        []Row   `yaml:"rows" json:"rows"`
		MaxAbsCents float64 `yaml:"maxAbsCents" json:"maxAbsCents"`
		MeanCents   float64 `yaml:"meanCents" json:"meanCents"`
	}
)

// Title turns a system identifier into words: "JustIntonation24" becomes
// "Just Intonation 24".
func Title(s tuning.System) string {
	var sb strings.Builder
	prev := rune(0)
	for i, r := range s.String() {
		if i > 0 && (unicode.IsUpper(r) || unicode.IsDigit(r) && !unicode.IsDigit(prev)) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	// a Caser is stateful, so every call gets its own
	return cases.Title(language.English).String(strings.ToLower(sb.String()))
}

// Build returns the tones of system with indices in [from, to).
func Build(system tuning.System, from, to int) (*Table, error) {
	if to <= from {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, from, to)
	}
	rows := make([]Row, to-from)
	for i := range rows {
		tone := tuning.NewTone(system, from+i)
		rows[i] = Row{
			Index:     tone.Index(),
			Name:      tone.Name,
			Octave:    tone.Octave(),
			Ratio:     tone.Fraction().String(),
			Frequency: tone.Frequency(),
			Cents:     tone.Cents(),
		}
	}
	t := &Table{System: system.String(), Title: Title(system), Size: system.Size(), Rows: rows}
	t.summarize()
	return t, nil
}

// BuildLegacy lists equal tempered tones named by the legacy single tuning
// naming of config.
func BuildLegacy(config tuning.Config, from, to int) (*Table, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if to <= from {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, from, to)
	}
	rows := make([]Row, to-from)
	for i := range rows {
		tone := config.EqualTemperedTone(from + i)
		rows[i] = Row{
			Index:     tone.Index(),
			Name:      tone.Name(),
			Octave:    tone.Octave(),
			Ratio:     tone.Fraction().String(),
			Frequency: tone.Frequency(),
			Cents:     tone.Cents(),
		}
	}
	t := &Table{
		Title: fmt.Sprintf("Legacy %d/%d", config.OctaveSize, config.StepSize),
		Size:  config.OctaveSize,
		Rows:  rows,
	}
	t.summarize()
	return t, nil
}

// summarize updates the deviation statistics from the Cents column.
func (t *Table) summarize() {
	cents := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		cents[i] = r.Cents
	}
	t.MaxAbsCents = vek.Max(vek.Abs(cents))
	t.MeanCents = vek.Mean(cents)
}

// Compare builds the tables of several systems concurrently, running at
// most workers builds at a time. The tables are returned in the order of
// systems.
func Compare(systems []tuning.System, from, to, workers int) ([]*Table, error) {
	if workers < 1 {
		workers = 1
	}
	tables := make([]*Table, len(systems))
	errs := make([]error, len(systems))
	swg := sizedwaitgroup.New(workers)
	for i, s := range systems {
		swg.Add()
		go func(i int, s tuning.System) {
			defer swg.Done()
			tables[i], errs[i] = Build(s, from, to)
		}(i, s)
	}
	swg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return tables, nil
}

func (t *Table) YAML() ([]byte, error) {
	b, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("could not marshal table as yaml: %w", err)
	}
	return b, nil
}

func (t *Table) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal table as json: %w", err)
	}
	return b, nil
}

// WriteText writes the table as aligned columns for a terminal.
func (t *Table) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s (%d steps per octave)\n", t.Title, t.Size); err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "index\tname\toctave\tratio\tfrequency\tcents\t\n")
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%+.2f\t\n", r.Index, r.Name, r.Octave, r.Ratio, humanize.SIWithDigits(r.Frequency, 3, "Hz"), r.Cents)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "max |cents| %.2f, mean %+.2f\n", t.MaxAbsCents, t.MeanCents); err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}
	return nil
}
