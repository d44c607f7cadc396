// Package keymap maps computer keyboard keys to tone offsets, so that two
// rows of the keyboard can be played like a piano.
package keymap

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/tuningplayground/tuning"
	yamlv2 "gopkg.in/yaml.v2"
	"gopkg.in/yaml.v3"
)

//go:embed keymaps/*.yml
var keymapFS embed.FS

// ErrUnknownKeymap is returned by Load for names without an embedded keymap.
var ErrUnknownKeymap = errors.New("no such keymap")

// Keymap maps key names, as reported by the keyboard layer (e.g. "z", ","),
// to semitone offsets. A negative offset unbinds the key when the keymap is
// merged into another one.
type Keymap struct {
	Name string         `yaml:"name"`
	Keys map[string]int `yaml:"keys"`
}

// Names lists the embedded keymaps.
func Names() []string {
	entries, err := fs.ReadDir(keymapFS, "keymaps")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yml"))
	}
	sort.Strings(names)
	return names
}

// Load returns one of the embedded keymaps, e.g. "us" or "de".
func Load(name string) (*Keymap, error) {
	data, err := keymapFS.ReadFile("keymaps/" + name + ".yml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeymap, name)
	}
	var k Keymap
	if err := yamlv2.UnmarshalStrict(data, &k); err != nil {
		return nil, fmt.Errorf("could not unmarshal keymap %q: %w", name, err)
	}
	if k.Name == "" {
		k.Name = name
	}
	return &k, nil
}

// Decode reads a user keymap. Unknown fields are rejected, so that typos in
// hand written keymaps do not go unnoticed.
func Decode(r io.Reader) (*Keymap, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var k Keymap
	if err := dec.Decode(&k); err != nil {
		return nil, fmt.Errorf("could not decode keymap: %w", err)
	}
	if k.Keys == nil {
		k.Keys = map[string]int{}
	}
	return &k, nil
}

// LoadFile reads a user keymap from a .yml file.
func LoadFile(filename string) (*Keymap, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open keymap: %w", err)
	}
	defer f.Close()
	k, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return k, nil
}

// Lookup returns the offset bound to key. Letters are matched case
// insensitively, so holding shift does not change the tone.
func (k *Keymap) Lookup(key string) (int, bool) {
	if v, ok := k.Keys[key]; ok && v >= 0 {
		return v, true
	}
	if v, ok := k.Keys[strings.ToLower(key)]; ok && v >= 0 {
		return v, true
	}
	return 0, false
}

// Index is like Lookup but returns -1 for unbound keys.
func (k *Keymap) Index(key string) int {
	if v, ok := k.Lookup(key); ok {
		return v
	}
	return -1
}

// Merge returns a copy of k with the bindings of other applied on top of it.
// Keys bound to a negative offset in other are removed.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	ret := &Keymap{Name: k.Name, Keys: make(map[string]int, len(k.Keys))}
	for key, v := range k.Keys {
		ret.Keys[key] = v
	}
	if other == nil {
		return ret
	}
	for key, v := range other.Keys {
		if v < 0 {
			delete(ret.Keys, key)
			continue
		}
		ret.Keys[key] = v
	}
	return ret
}

// Tone returns the tone played by key when the lowest key of the keymap
// plays the tone at index from. Offsets are semitones, so in a 24 step
// system every key moves two steps.
func (k *Keymap) Tone(key string, system tuning.System, from int) (tuning.Tone, bool) {
	offset, ok := k.Lookup(key)
	if !ok {
		return tuning.Tone{}, false
	}
	stepsPerSemitone := system.Size() / 12
	if stepsPerSemitone < 1 {
		stepsPerSemitone = 1
	}
	return tuning.NewTone(system, from+offset*stepsPerSemitone), true
}
