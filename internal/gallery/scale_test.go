package gallery

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScaleMonotonicAndFloored(t *testing.T) {
	sc := NewScaler(DefaultConfig())
	floor := math.Pow(0.72, 2)
	if !approx(sc.Floor(), floor) {
		t.Fatalf("Floor() = %v, want %v", sc.Floor(), floor)
	}
	prev := math.Inf(1)
	for d := 0.0; d <= 6; d += 0.25 {
		got := sc.Scale(d)
		if got > prev {
			t.Fatalf("Scale(%v) = %v, larger than Scale at smaller distance %v", d, got, prev)
		}
		if d >= 2 && !approx(got, floor) {
			t.Errorf("Scale(%v) = %v, want floor %v", d, got, floor)
		}
		if !approx(sc.Scale(-d), got) {
			t.Errorf("Scale(%v) = %v, want symmetric %v", -d, sc.Scale(-d), got)
		}
		prev = got
	}
	if sc.Scale(0) != 1 {
		t.Errorf("Scale(0) = %v, want 1", sc.Scale(0))
	}
}

func TestScaleSingleStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScaleCount = 1
	sc := NewScaler(cfg)
	for _, d := range []float64{0, 0.5, 1, 10} {
		if got := sc.Scale(d); got != 1 {
			t.Errorf("Scale(%v) = %v, want 1 with a single scale step", d, got)
		}
	}
}

func TestInterpolate(t *testing.T) {
	sc := NewScaler(DefaultConfig())
	tests := []struct {
		name     string
		from, to float64
		t        float64
		want     float64
	}{
		{"start", 0, 1, 0, 1},
		{"end", 0, 1, 1, 0.72},
		{"half", 0, 1, 0.5, 0.86},
		{"toward center", 2, 1, 0.5, (0.5184 + 0.72) / 2},
		{"past floor", 3, 4, 0.5, 0.5184},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sc.Interpolate(tt.from, tt.to, tt.t); !approx(got, tt.want) {
				t.Errorf("Interpolate(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.want)
			}
		})
	}
}

func TestSpacingBetween(t *testing.T) {
	sc := NewScaler(DefaultConfig())
	if got := sc.SpacingBetween(200, 1, 200, 1); !approx(got, 40) {
		t.Errorf("full scale spacing = %v, want 40", got)
	}
	// Each shrunken item pulls its edge in by 28px.
	if got := sc.SpacingBetween(200, 0.72, 200, 0.72); !approx(got, -16) {
		t.Errorf("shrunk spacing = %v, want -16", got)
	}
	if got := sc.SpacingBetween(200, 1, 200, 0.72); !approx(got, 12) {
		t.Errorf("mixed spacing = %v, want 12", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "single scale step", mutate: func(c *Config) { c.ScaleCount = 1 }},
		{name: "even scale count", mutate: func(c *Config) { c.ScaleCount = 4 }, field: "ScaleCount", wantErr: true},
		{name: "zero scale count", mutate: func(c *Config) { c.ScaleCount = 0 }, field: "ScaleCount", wantErr: true},
		{name: "ratio one", mutate: func(c *Config) { c.ScaleRatio = 1 }, field: "ScaleRatio", wantErr: true},
		{name: "ratio zero", mutate: func(c *Config) { c.ScaleRatio = 0 }, field: "ScaleRatio", wantErr: true},
		{name: "ratio NaN", mutate: func(c *Config) { c.ScaleRatio = math.NaN() }, field: "ScaleRatio", wantErr: true},
		{name: "negative spacing", mutate: func(c *Config) { c.ItemSpacing = -1 }, field: "ItemSpacing", wantErr: true},
		{name: "zero spacing", mutate: func(c *Config) { c.ItemSpacing = 0 }},
		{name: "bad orientation", mutate: func(c *Config) { c.Orientation = 7 }, field: "Orientation", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Validate() error = %v, want field %s", err, tt.field)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScaleCount = 2
	_, err := New(cfg, newFakeProvider(1, Size{W: 10, H: 10}), fixedViewport{size: Size{W: 100, H: 100}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"horizontal", Horizontal, false},
		{"", Horizontal, false},
		{"Vertical", Vertical, false},
		{" v ", Vertical, false},
		{"diagonal", Horizontal, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVisualFrame(t *testing.T) {
	it := Item{Frame: Frame{Left: 0, Top: 0, Right: 200, Bottom: 300}, Scale: 0.5}
	got := it.VisualFrame()
	want := Rect{X: 50, Y: 75, W: 100, H: 150}
	if got != want {
		t.Errorf("VisualFrame() = %+v, want %+v", got, want)
	}
}
