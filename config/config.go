// Package config reads the settings of the command line tools from the
// user's configuration directory and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/tuningplayground/tuning"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the name of the settings file in the user's
// configuration directory.
const SettingsFile = "settings.yml"

// Settings are the defaults of the command line tools. Values in the
// environment override those in the settings file.
type Settings struct {
	System     tuning.System `yaml:"system" env:"TUNING_SYSTEM"`
	OctaveSize int           `yaml:"octaveSize" env:"TUNING_OCTAVE_SIZE"`
	StepSize   int           `yaml:"stepSize" env:"TUNING_STEP_SIZE"`
	Keymap     string        `yaml:"keymap" env:"TUNING_KEYMAP"`
	From       int           `yaml:"from" env:"TUNING_FROM"`
	To         int           `yaml:"to" env:"TUNING_TO"`
}

func Default() Settings {
	c := tuning.DefaultConfig()
	return Settings{
		System:     tuning.EqualTemperament,
		OctaveSize: c.OctaveSize,
		StepSize:   c.StepSize,
		Keymap:     "us",
		From:       0,
		To:         128,
	}
}

// Dir returns the directory where the user's configuration files live.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tuning"), nil
}

// ReadUserFile unmarshals the YAML file name in the user's configuration
// directory into target, which needs to be a pointer. A missing file is
// not an error; exists tells if the file was there.
func ReadUserFile(name string, target any) (exists bool, err error) {
	dir, err := Dir()
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := yaml.Unmarshal(b, target); err != nil {
		return true, fmt.Errorf("could not parse %v: %w", name, err)
	}
	return true, nil
}

// ParseEnv overrides the fields of target that have their environment
// variable set.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the default settings, overridden first by the user's
// settings file and then by the environment.
func Load() (Settings, error) {
	s := Default()
	if _, err := ReadUserFile(SettingsFile, &s); err != nil {
		return s, err
	}
	if err := ParseEnv(&s); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) Config() tuning.Config {
	return tuning.Config{OctaveSize: s.OctaveSize, StepSize: s.StepSize}
}

func (s Settings) Validate() error {
	if _, err := s.System.MarshalText(); err != nil {
		return err
	}
	return s.Config().Validate()
}

// Apply makes the octave and step size the process wide legacy
// configuration.
func (s Settings) Apply() error {
	return tuning.SetConfig(s.Config())
}
