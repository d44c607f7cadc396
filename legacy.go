package tuning

import (
	"fmt"
	"sync"
)

type (
	// Config parameterizes the legacy single tuning naming. OctaveSize is the
	// number of tone indices per octave and StepSize the number of indices
	// that share one of the twelve tone names, so {24, 2} names a quarter tone
	// keyboard with the plain twelve tone names.
	Config struct {
		OctaveSize int `yaml:"octaveSize"`
		StepSize   int `yaml:"stepSize"`
	}

	// LegacyTone is a tone of the legacy single tuning path: the caller
	// supplies the ratio within the octave and the Config decides the name
	// and the octave.
	LegacyTone struct {
		name       string
		fraction   Fraction
		octave     int
		octaveSize int
		index      int
	}
)

var (
	globalMu     sync.RWMutex
	globalConfig = DefaultConfig()
)

// DefaultConfig returns twelve tones per octave, one index per tone name.
func DefaultConfig() Config {
	return Config{OctaveSize: 12, StepSize: 1}
}

func (c Config) Validate() error {
	if c.OctaveSize <= 0 {
		return fmt.Errorf("%w: octave size %d is not positive", ErrInvalidConfig, c.OctaveSize)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("%w: step size %d is not positive", ErrInvalidConfig, c.StepSize)
	}
	return nil
}

// CurrentConfig returns a snapshot of the process wide configuration.
func CurrentConfig() Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetConfig replaces the process wide configuration.
func SetConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = c
	return nil
}

// SetOctaveSize sets the number of tone indices per octave of the process
// wide configuration.
func SetOctaveSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: octave size %d is not positive", ErrInvalidConfig, size)
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.OctaveSize = size
	return nil
}

// SetStepSize sets the number of tone indices per tone name of the process
// wide configuration.
func SetStepSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: step size %d is not positive", ErrInvalidConfig, size)
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.StepSize = size
	return nil
}

// NewLegacyTone creates a tone using the current process wide
// configuration.
func NewLegacyTone(fraction Fraction, index int) LegacyTone {
	return CurrentConfig().NewTone(fraction, index)
}

// ToneName returns the legacy name of the tone at index. It uses the same
// octave convention as System.ToneName: the first octave renders as "N1".
func (c Config) ToneName(index int) string {
	name := twelveToneNames[floorMod(floorDiv(index, c.StepSize), len(twelveToneNames))]
	return name + octaveToken(floorDiv(index, c.OctaveSize)-1)
}

// NewTone creates a legacy tone. fraction is the ratio of the tone within its
// octave; the octave of index is folded into the base of the fraction. The
// Config must be valid.
func (c Config) NewTone(fraction Fraction, index int) LegacyTone {
	octave := floorDiv(index, c.OctaveSize)
	return LegacyTone{
		name:       c.ToneName(index),
		fraction:   fraction.Octave(octave),
		octave:     octave,
		octaveSize: c.OctaveSize,
		index:      index,
	}
}

// EqualTemperedTone returns the legacy tone at index tuned to OctaveSize
// equal steps per octave. The Config must be valid.
func (c Config) EqualTemperedTone(index int) LegacyTone {
	return c.NewTone(EqualTempered(floorMod(index, c.OctaveSize), c.OctaveSize), index)
}

func (t LegacyTone) Name() string       { return t.name }
func (t LegacyTone) Octave() int        { return t.octave }
func (t LegacyTone) OctaveSize() int    { return t.octaveSize }
func (t LegacyTone) Index() int         { return t.index }
func (t LegacyTone) Fraction() Fraction { return t.fraction }

func (t LegacyTone) Frequency() float64 {
	return t.fraction.Float64() * CNeg1
}

// Cents returns the deviation from the equal tempered tone with the same
// index and octave size.
func (t LegacyTone) Cents() float64 {
	return cents(t.Frequency(), t.index, t.octaveSize)
}
