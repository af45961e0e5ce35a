// Package snapshot records gallery engine state as YAML so layouts can be
// inspected without a window and compared against golden files.
package snapshot

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/depeter/jellyflow/internal/gallery"
)

// Item is one visible entry. Frame is left, top, right, bottom; Visual is
// x, y, w, h after scaling.
type Item struct {
	Index  int       `yaml:"index"`
	Frame  []int     `yaml:"frame,flow"`
	Scale  float64   `yaml:"scale"`
	Visual []float64 `yaml:"visual,flow"`
}

// State is the engine at one point in time.
type State struct {
	Count    int    `yaml:"count"`
	Viewport []int  `yaml:"viewport,flow"`
	Offset   int    `yaml:"offset"`
	Bounds   []int  `yaml:"bounds,flow"`
	Selected int    `yaml:"selected"`
	Snap     int    `yaml:"snap"`
	Items    []Item `yaml:"items"`
}

// Layout mirrors gallery.Config with YAML names.
type Layout struct {
	ItemSpacing int     `yaml:"item_spacing"`
	ScaleCount  int     `yaml:"scale_count"`
	ScaleRatio  float64 `yaml:"scale_ratio"`
	Orientation string  `yaml:"orientation"`
	Infinite    bool    `yaml:"infinite"`
}

// Step is one scroll request and the state after it.
type Step struct {
	Delta   int   `yaml:"delta"`
	Applied int   `yaml:"applied"`
	State   State `yaml:"state"`
}

// Report is a whole scripted session.
type Report struct {
	Layout  Layout `yaml:"layout"`
	Initial int    `yaml:"initial"`
	Attach  State  `yaml:"attach"`
	Steps   []Step `yaml:"steps,omitempty"`
}

// round keeps encoded floats stable across platforms.
func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func LayoutOf(cfg gallery.Config) Layout {
	return Layout{
		ItemSpacing: cfg.ItemSpacing,
		ScaleCount:  cfg.ScaleCount,
		ScaleRatio:  cfg.ScaleRatio,
		Orientation: cfg.Orientation.String(),
		Infinite:    cfg.Infinite,
	}
}

// Capture reads the engine without changing it.
func Capture(e *gallery.Engine) State {
	vp := e.ViewportSize()
	lo, hi := e.Bounds()
	s := State{
		Count:    e.ItemCount(),
		Viewport: []int{vp.W, vp.H},
		Offset:   e.Offset(),
		Bounds:   []int{lo, hi},
		Selected: e.SelectedIndex(),
		Snap:     e.SnapDistance(),
	}
	for _, it := range e.Visible() {
		f := it.Frame
		v := it.VisualFrame()
		s.Items = append(s.Items, Item{
			Index:  it.Index,
			Frame:  []int{f.Left, f.Top, f.Right, f.Bottom},
			Scale:  round(it.Scale),
			Visual: []float64{round(v.X), round(v.Y), round(v.W), round(v.H)},
		})
	}
	return s
}

// Run attaches a fresh engine over fx at initial, applies deltas in order
// and records the state after each one. trace may be nil.
func Run(cfg gallery.Config, fx *Fixture, initial int, deltas []int, trace func(string, ...any)) (Report, error) {
	var opts []gallery.Option
	if trace != nil {
		opts = append(opts, gallery.WithTrace(trace))
	}
	e, err := gallery.New(cfg, fx, fx, opts...)
	if err != nil {
		return Report{}, err
	}
	defer e.Reset()

	if err := e.Attach(initial); err != nil {
		return Report{}, fmt.Errorf("attach at %d: %w", initial, err)
	}
	r := Report{Layout: LayoutOf(cfg), Initial: initial, Attach: Capture(e)}
	for _, d := range deltas {
		applied, err := e.ApplyScrollDelta(d)
		if err != nil {
			return r, fmt.Errorf("scroll %d: %w", d, err)
		}
		r.Steps = append(r.Steps, Step{Delta: d, Applied: applied, State: Capture(e)})
	}
	return r, nil
}

// Encode writes v as YAML with two-space indentation.
func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// Decode reads a report written by Encode.
func Decode(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return rep, nil
}
