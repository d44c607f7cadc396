package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tuningplayground/tuning"
	"github.com/tuningplayground/tuning/config"
	"github.com/tuningplayground/tuning/keymap"
	"github.com/tuningplayground/tuning/midinote"
	"github.com/tuningplayground/tuning/notation"
	"github.com/tuningplayground/tuning/table"
	"github.com/tuningplayground/tuning/version"
)

// userKeymapFile is merged on top of the selected keymap when it exists in
// the user's configuration directory.
const userKeymapFile = "keymap.yml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "could not load settings: %v\n", err)
		return 1
	}
	logger := log.New(stderr, "tuning-table: ", 0)
	flags := flag.NewFlagSet("tuning-table", flag.ContinueOnError)
	flags.SetOutput(stderr)
	system := settings.System
	flags.TextVar(&system, "s", settings.System, "Tuning system: "+systemList()+".")
	from := flags.Int("from", settings.From, "First tone index of the table.")
	to := flags.Int("to", settings.To, "Tone index after the last one of the table.")
	yamlOut := flags.Bool("y", false, "Output the table as .yml instead of text.")
	jsonOut := flags.Bool("j", false, "Output the table as .json instead of text.")
	abcOut := flags.Bool("abc", false, "Output the tones as an ABC chord instead of a table.")
	keys := flags.String("k", "", "Comma separated keyboard keys; list the tones they play, starting from tone index -from.")
	keymapName := flags.String("keymap", settings.Keymap, "Keyboard layout used by -k: "+strings.Join(keymap.Names(), ", ")+".")
	compare := flags.Bool("c", false, "Build the tables of all tuning systems.")
	workers := flags.Int("w", runtime.NumCPU(), "Number of tables built at the same time with -c.")
	legacy := flags.Bool("l", false, "Name the tones with the legacy octave and step size instead of a tuning system.")
	octaveSize := flags.Int("octave", settings.OctaveSize, "Tone indices per octave for -l.")
	stepSize := flags.Int("step", settings.StepSize, "Tone indices per tone name for -l.")
	versionFlag := flags.Bool("v", false, "Print version.")
	help := flags.Bool("h", false, "Show help.")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Tuning table. Lists the tones of tuning systems with their frequencies and deviation from equal temperament.\nUsage: tuning-table [flags]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String())
		return 0
	}
	if *help {
		flags.Usage()
		return 0
	}
	if *keys != "" {
		if err := playKeys(stdout, logger, system, *keymapName, strings.Split(*keys, ","), *from, *abcOut); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}
	var tables []*table.Table
	switch {
	case *legacy:
		settings.OctaveSize, settings.StepSize = *octaveSize, *stepSize
		if err := settings.Apply(); err != nil {
			fmt.Fprintf(stderr, "invalid legacy configuration: %v\n", err)
			return 1
		}
		t, err := table.BuildLegacy(tuning.CurrentConfig(), *from, *to)
		if err != nil {
			fmt.Fprintf(stderr, "could not build the table: %v\n", err)
			return 1
		}
		tables = append(tables, t)
	case *compare:
		tables, err = table.Compare(tuning.Systems(), *from, *to, *workers)
		if err != nil {
			fmt.Fprintf(stderr, "could not build the tables: %v\n", err)
			return 1
		}
	default:
		t, err := table.Build(system, *from, *to)
		if err != nil {
			fmt.Fprintf(stderr, "could not build the table: %v\n", err)
			return 1
		}
		tables = append(tables, t)
	}
	retval := 0
	for _, t := range tables {
		if err := output(stdout, t, *yamlOut, *jsonOut, *abcOut); err != nil {
			fmt.Fprintf(stderr, "could not output %v: %v\n", t.Title, err)
			retval = 1
		}
	}
	return retval
}

func output(w io.Writer, t *table.Table, yamlOut, jsonOut, abcOut bool) error {
	switch {
	case yamlOut:
		b, err := t.YAML()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case jsonOut:
		b, err := t.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case abcOut:
		names := make([]string, len(t.Rows))
		for i, r := range t.Rows {
			names[i] = r.Name
		}
		abc, err := notation.ABC(names)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, abc)
		return err
	}
	return t.WriteText(w)
}

func playKeys(w io.Writer, logger *log.Logger, system tuning.System, keymapName string, keys []string, from int, abcOut bool) error {
	km, err := keymap.Load(keymapName)
	if err != nil {
		return err
	}
	user, err := loadUserKeymap()
	if err != nil {
		return err
	}
	if user != nil {
		km = km.Merge(user)
	}
	var tones []tuning.Tone
	for _, key := range keys {
		tone, ok := km.Tone(key, system, from)
		if !ok {
			logger.Printf("key %q is not bound in keymap %v", key, km.Name)
			continue
		}
		tones = append(tones, tone)
	}
	if abcOut {
		abc, err := notation.Tones(tones)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, abc)
		return err
	}
	for _, tone := range tones {
		midi := "-"
		if p, err := midinote.FromTone(tone); err == nil {
			midi = fmt.Sprintf("%d%+d", p.Key, p.Bend)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%+.2f\t%s\n", tone.Index(), tone.Name, humanize.SIWithDigits(tone.Frequency(), 3, "Hz"), tone.Cents(), midi); err != nil {
			return err
		}
	}
	return nil
}

// loadUserKeymap returns the user's keymap, or nil if there is none.
func loadUserKeymap() (*keymap.Keymap, error) {
	dir, err := config.Dir()
	if err != nil {
		// without a configuration directory there is no user keymap
		return nil, nil
	}
	k, err := keymap.LoadFile(filepath.Join(dir, userKeymapFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load the user keymap: %w", err)
	}
	return k, nil
}

func systemList() string {
	names := make([]string, len(tuning.Systems()))
	for i, s := range tuning.Systems() {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
