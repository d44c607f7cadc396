package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tuningplayground/tuning"
	"github.com/tuningplayground/tuning/config"
)

// useConfigDir points os.UserConfigDir at a fresh directory and returns the
// directory the settings live in.
func useConfigDir(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)
	t.Setenv("AppData", base)
	dir, err := config.Dir()
	if err != nil {
		t.Fatalf("Dir failed: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	useConfigDir(t)
	s, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s != config.Default() {
		t.Fatalf("got %+v, want the defaults %+v", s, config.Default())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := useConfigDir(t)
	yml := "system: JustIntonation\noctaveSize: 24\nkeymap: de\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TUNING_SYSTEM", "JustIntonation24")
	t.Setenv("TUNING_TO", "48")
	s, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := config.Settings{
		System:     tuning.JustIntonation24,
		OctaveSize: 24,
		StepSize:   1,
		Keymap:     "de",
		From:       0,
		To:         48,
	}
	if s != want {
		t.Fatalf("got %+v, want %+v", s, want)
	}
}

func TestParseEnvError(t *testing.T) {
	useConfigDir(t)
	t.Setenv("TUNING_OCTAVE_SIZE", "not-an-int")
	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestUnknownSystem(t *testing.T) {
	useConfigDir(t)
	t.Setenv("TUNING_SYSTEM", "Pythagorean")
	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "no such tuning system") {
		t.Fatalf("expected an unknown system error, got %v", err)
	}
}

func TestInvalidSizes(t *testing.T) {
	useConfigDir(t)
	t.Setenv("TUNING_STEP_SIZE", "0")
	if _, err := config.Load(); !errors.Is(err, tuning.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestReadUserFile(t *testing.T) {
	dir := useConfigDir(t)
	var target struct{ Name string }
	exists, err := config.ReadUserFile("missing.yml", &target)
	if exists || err != nil {
		t.Fatalf("missing file: exists %v, err %v", exists, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("name: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	exists, err = config.ReadUserFile("broken.yml", &target)
	if !exists || err == nil {
		t.Fatalf("broken file: exists %v, err %v", exists, err)
	}
}

func TestApply(t *testing.T) {
	old := tuning.CurrentConfig()
	t.Cleanup(func() { tuning.SetConfig(old) })
	s := config.Default()
	s.OctaveSize, s.StepSize = 24, 2
	if err := s.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := tuning.CurrentConfig(); got != (tuning.Config{OctaveSize: 24, StepSize: 2}) {
		t.Errorf("CurrentConfig() = %+v after Apply", got)
	}
}
