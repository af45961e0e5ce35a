package snapshot

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/depeter/jellyflow/internal/gallery"
)

func wideFixture(count int) *Fixture {
	return &Fixture{
		Count:    count,
		Item:     gallery.Size{W: 200, H: 300},
		Viewport: gallery.Size{W: 1080, H: 400},
	}
}

func TestRunRecordsEachStep(t *testing.T) {
	fx := wideFixture(10)
	rep, err := Run(gallery.DefaultConfig(), fx, 5, []int{450, 80, -5000}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	a := rep.Attach
	if a.Selected != 5 || a.Offset != 0 || a.Snap != 0 {
		t.Errorf("attach selected=%d offset=%d snap=%d, want 5, 0, 0", a.Selected, a.Offset, a.Snap)
	}
	if !reflect.DeepEqual(a.Bounds, []int{-720, 480}) {
		t.Errorf("attach bounds = %v, want [-720 480]", a.Bounds)
	}
	if !reflect.DeepEqual(a.Viewport, []int{1080, 400}) || a.Count != 10 {
		t.Errorf("attach viewport=%v count=%d", a.Viewport, a.Count)
	}
	if len(a.Items) != 7 || a.Items[0].Index != 2 || a.Items[6].Index != 8 {
		t.Fatalf("attach window = %+v, want items 2..8", a.Items)
	}
	center := a.Items[3]
	if !reflect.DeepEqual(center.Frame, []int{440, 50, 640, 350}) || center.Scale != 1 {
		t.Errorf("center item = %+v", center)
	}
	if !reflect.DeepEqual(center.Visual, []float64{440, 50, 200, 300}) {
		t.Errorf("center visual = %v", center.Visual)
	}
	if a.Items[2].Scale != 0.72 || a.Items[1].Scale != 0.5184 {
		t.Errorf("neighbor scales = %v, %v", a.Items[2].Scale, a.Items[1].Scale)
	}

	wantApplied := []int{450, 30, -1200}
	if len(rep.Steps) != len(wantApplied) {
		t.Fatalf("got %d steps, want %d", len(rep.Steps), len(wantApplied))
	}
	for i, w := range wantApplied {
		if rep.Steps[i].Applied != w {
			t.Errorf("step %d applied = %d, want %d", i, rep.Steps[i].Applied, w)
		}
	}
	last := rep.Steps[2].State
	if last.Offset != -720 || last.Selected != 2 {
		t.Errorf("final offset=%d selected=%d, want -720, 2", last.Offset, last.Selected)
	}
	if fx.Live() != 0 {
		t.Errorf("%d handles leaked", fx.Live())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := gallery.DefaultConfig()
	cfg.ScaleCount = 4
	if _, err := Run(cfg, wideFixture(3), 0, nil, nil); err == nil {
		t.Fatal("expected an error for an even scale count")
	}
}

func TestRunEmptyFixture(t *testing.T) {
	rep, err := Run(gallery.DefaultConfig(), wideFixture(0), 0, []int{100}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Attach.Selected != -1 || len(rep.Attach.Items) != 0 {
		t.Errorf("empty attach = %+v", rep.Attach)
	}
	if rep.Steps[0].Applied != 0 {
		t.Errorf("applied = %d on an empty gallery", rep.Steps[0].Applied)
	}
}

func TestRunTraces(t *testing.T) {
	var lines []string
	trace := func(format string, args ...any) { lines = append(lines, format) }
	if _, err := Run(gallery.DefaultConfig(), wideFixture(10), 5, []int{5000}, trace); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(lines, "\n"), "clamped") {
		t.Errorf("trace %q does not report the clamp", lines)
	}
}

func TestEncodeDecodeReport(t *testing.T) {
	cfg := gallery.DefaultConfig()
	cfg.Orientation = gallery.Vertical
	fx := &Fixture{Count: 12, Item: gallery.Size{W: 300, H: 200}, Viewport: gallery.Size{W: 400, H: 1000}}
	rep, err := Run(cfg, fx, 3, []int{240, -60}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, rep); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"orientation: vertical", "initial: 3", "scale_ratio: 0.72", "delta: 240"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded report is missing %q:\n%s", want, out)
		}
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !reflect.DeepEqual(got, rep) {
		t.Errorf("decoded report differs:\n got %+v\nwant %+v", got, rep)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("layout: [1, 2")); err == nil {
		t.Fatal("expected a parse error")
	}
}
