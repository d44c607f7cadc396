package tuning_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/tuningplayground/tuning"
)

func TestParseSystemRoundTrip(t *testing.T) {
	for _, s := range tuning.Systems() {
		parsed, err := tuning.ParseSystem(s.String())
		if err != nil {
			t.Fatalf("ParseSystem(%q) failed: %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("ParseSystem(%q) = %v, want %v", s.String(), parsed, s)
		}
	}
}

func TestParseSystemUnknown(t *testing.T) {
	for _, text := range []string{"", "equaltemperament", "EQUALTEMPERAMENT", "JustIntonation12", "Just", " JustIntonation", "Pythagorean"} {
		if _, err := tuning.ParseSystem(text); !errors.Is(err, tuning.ErrUnknownSystem) {
			t.Errorf("ParseSystem(%q) error = %v, want ErrUnknownSystem", text, err)
		}
	}
}

func TestSystemSizes(t *testing.T) {
	want := map[tuning.System]int{
		tuning.EqualTemperament: 12,
		tuning.JustIntonation:   12,
		tuning.JustIntonation24: 24,
	}
	for s, size := range want {
		if got := s.Size(); got != size {
			t.Errorf("%v.Size() = %d, want %d", s, got, size)
		}
	}
}

func TestOctaveDoublingIsExact(t *testing.T) {
	for _, s := range tuning.Systems() {
		if got := s.Fraction(s.Size()); !got.Equal(tuning.MustFraction(2, 1)) {
			t.Errorf("%v.Fraction(%d) = %v, want 2/1", s, s.Size(), got)
		}
		for k := 0; k <= 8; k++ {
			f := s.Fraction(k * s.Size())
			if !f.Equal(tuning.MustFraction(1, 1).Octave(k)) {
				t.Errorf("%v.Fraction(%d) = %v, want 2^%d", s, k*s.Size(), f, k)
			}
			if got := f.Float64(); got != math.Ldexp(1, k) {
				t.Errorf("%v.Fraction(%d).Float64() = %v, want %v", s, k*s.Size(), got, math.Ldexp(1, k))
			}
		}
	}
}

func TestFractionsAscendWithinOctave(t *testing.T) {
	for _, s := range tuning.Systems() {
		prev := 0.0
		for i := 0; i <= s.Size(); i++ {
			r := s.Fraction(i).Float64()
			if r <= prev {
				t.Errorf("%v: ratio of step %d (%v) is not above step %d (%v)", s, i, r, i-1, prev)
			}
			prev = r
		}
	}
}

func TestJustIntonationRatios(t *testing.T) {
	tests := []struct {
		system   tuning.System
		index    int
		num, den uint64
	}{
		{tuning.JustIntonation, 4, 5, 4},
		{tuning.JustIntonation, 7, 3, 2},
		{tuning.JustIntonation, 19, 3, 1},
		{tuning.JustIntonation, 11, 15, 8},
		{tuning.JustIntonation24, 8, 5, 4},
		{tuning.JustIntonation24, 1, 33, 32},
		{tuning.JustIntonation24, 47, 31, 8},
	}
	for _, tt := range tests {
		if got := tt.system.Fraction(tt.index); !got.Equal(tuning.MustFraction(tt.num, tt.den)) {
			t.Errorf("%v.Fraction(%d) = %v, want %d/%d", tt.system, tt.index, got, tt.num, tt.den)
		}
	}
}

func TestEqualTemperedApproximation(t *testing.T) {
	for _, size := range []int{12, 19, 24, 31, 53} {
		for i := -size; i <= 2*size; i++ {
			want := math.Exp2(float64(i) / float64(size))
			got := tuning.EqualTempered(i, size).Float64()
			if math.Abs(got-want)/want > 1e-10 {
				t.Errorf("EqualTempered(%d, %d) = %v, want %v", i, size, got, want)
			}
		}
	}
}

func TestToneNames(t *testing.T) {
	tests := []struct {
		system tuning.System
		index  int
		want   string
	}{
		{tuning.EqualTemperament, 0, "CN1"},
		{tuning.EqualTemperament, 11, "BN1"},
		{tuning.EqualTemperament, 12, "C0"},
		{tuning.EqualTemperament, 60, "C4"},
		{tuning.EqualTemperament, 61, "C#4"},
		{tuning.EqualTemperament, 69, "A4"},
		{tuning.EqualTemperament, -1, "BN2"},
		{tuning.JustIntonation, 69, "A4"},
		{tuning.JustIntonation24, 1, "C+N1"},
		{tuning.JustIntonation24, 24, "C0"},
		{tuning.JustIntonation24, 138, "A4"},
		{tuning.JustIntonation24, 139, "A+4"},
	}
	for _, tt := range tests {
		if got := tt.system.ToneName(tt.index); got != tt.want {
			t.Errorf("%v.ToneName(%d) = %q, want %q", tt.system, tt.index, got, tt.want)
		}
	}
}

func TestSystemTextMarshaling(t *testing.T) {
	type doc struct {
		System tuning.System
	}
	b, err := json.Marshal(doc{tuning.JustIntonation24})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"System":"JustIntonation24"}` {
		t.Fatalf("unexpected json: %s", b)
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"System":"JustIntonation"}`), &d); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if d.System != tuning.JustIntonation {
		t.Errorf("unmarshaled %v, want JustIntonation", d.System)
	}
	if err := json.Unmarshal([]byte(`{"System":"justintonation"}`), &d); !errors.Is(err, tuning.ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}
