package gallery

import "math"

// Config is the immutable per-session layout configuration.
type Config struct {
	// ItemSpacing is the gap in pixels between the visible edges of adjacent items.
	ItemSpacing int
	// ScaleCount is the odd number of items, center included, that shrink
	// before the floor scale is reached.
	ScaleCount int
	// ScaleRatio is the per-step shrink factor, in (0,1).
	ScaleRatio  float64
	Orientation Orientation
	// Infinite disables offset clamping.
	Infinite bool
}

// DefaultConfig returns the stock gallery look: 40px gaps, five scaled items,
// 0.72 shrink per step.
func DefaultConfig() Config {
	return Config{
		ItemSpacing: 40,
		ScaleCount:  5,
		ScaleRatio:  0.72,
		Orientation: Horizontal,
	}
}

// Validate rejects configurations the engine cannot lay out. Nothing is
// corrected silently.
func (c Config) Validate() error {
	if c.ItemSpacing < 0 {
		return &ConfigError{Field: "ItemSpacing", Reason: "must not be negative"}
	}
	if c.ScaleCount < 1 {
		return &ConfigError{Field: "ScaleCount", Reason: "must be at least 1"}
	}
	if c.ScaleCount%2 == 0 {
		return &ConfigError{Field: "ScaleCount", Reason: "must be odd"}
	}
	if math.IsNaN(c.ScaleRatio) || c.ScaleRatio <= 0 || c.ScaleRatio >= 1 {
		return &ConfigError{Field: "ScaleRatio", Reason: "must be in (0,1)"}
	}
	if c.Orientation != Horizontal && c.Orientation != Vertical {
		return &ConfigError{Field: "Orientation", Reason: "must be horizontal or vertical"}
	}
	return nil
}
