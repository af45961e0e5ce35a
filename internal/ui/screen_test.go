package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stage records its lifecycle and hands over to next on the first Update.
type stage struct {
	name   string
	next   Screen
	err    error
	events *[]string
}

func (s *stage) Update() (Screen, error) {
	*s.events = append(*s.events, s.name+".update")
	return s.next, s.err
}
func (s *stage) Draw(*ebiten.Image) {}
func (s *stage) OnEnter()           { *s.events = append(*s.events, s.name+".enter") }
func (s *stage) OnExit()            { *s.events = append(*s.events, s.name+".exit") }
func (s *stage) Name() string       { return s.name }

type inspected struct {
	stage
}

func (inspected) DebugLines() []string { return []string{fmtLine("offset", 42)} }

func TestScreenManagerHandsOver(t *testing.T) {
	var events []string
	gallery := &stage{name: "gallery", events: &events}
	loading := &stage{name: "loading", next: gallery, events: &events}

	sm := NewScreenManager(loading)
	if err := sm.Update(); err != nil {
		t.Fatal(err)
	}
	if sm.Current() != gallery {
		t.Fatalf("Current() = %v, want the gallery", sm.Current().Name())
	}
	if err := sm.Update(); err != nil {
		t.Fatal(err)
	}
	sm.Close()
	if sm.Current() != nil {
		t.Error("Current() != nil after Close")
	}

	want := []string{"loading.enter", "loading.update", "loading.exit", "gallery.enter", "gallery.update", "gallery.exit"}
	if strings.Join(events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", events, want)
	}
	if err := sm.Update(); err != nil {
		t.Errorf("Update() with no screen = %v", err)
	}
}

func TestScreenManagerKeepsScreenOnError(t *testing.T) {
	var events []string
	boom := errors.New("boom")
	s := &stage{name: "gallery", next: &stage{name: "other", events: &events}, err: boom, events: &events}
	sm := NewScreenManager(s)
	if err := sm.Update(); !errors.Is(err, boom) {
		t.Fatalf("Update() = %v, want boom", err)
	}
	if sm.Current() != s {
		t.Error("the screen changed on an error")
	}
}

func TestScreenManagerDebugLines(t *testing.T) {
	var events []string
	in := &inspected{stage{name: "gallery", events: &events}}
	sm := NewScreenManager(in)
	lines := sm.debugLines(in)
	if len(lines) != 2 {
		t.Fatalf("debugLines() = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "offset") || !strings.HasSuffix(lines[0], " 42") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " 1") {
		t.Errorf("line 1 = %q, want one screen switch", lines[1])
	}
}
