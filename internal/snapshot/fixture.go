package snapshot

import (
	"fmt"

	"github.com/depeter/jellyflow/internal/gallery"
)

// Fixture is a headless collection of Count items of one size. It serves as
// both item provider and viewport, and counts live handles so leaks show up.
type Fixture struct {
	Count    int
	Item     gallery.Size
	Viewport gallery.Size
	Insets   gallery.Insets

	live int
}

func (f *Fixture) ItemCount() int { return f.Count }

func (f *Fixture) Measure(index int) (gallery.Size, error) {
	if index < 0 || index >= f.Count {
		return gallery.Size{}, fmt.Errorf("item %d out of range [0,%d)", index, f.Count)
	}
	return f.Item, nil
}

func (f *Fixture) Materialize(index int) (gallery.Handle, error) {
	if index < 0 || index >= f.Count {
		return nil, fmt.Errorf("item %d out of range [0,%d)", index, f.Count)
	}
	f.live++
	return index, nil
}

func (f *Fixture) Release(gallery.Handle) { f.live-- }

// Live is the number of handles not yet released.
func (f *Fixture) Live() int { return f.live }

func (f *Fixture) Size() gallery.Size      { return f.Viewport }
func (f *Fixture) Padding() gallery.Insets { return f.Insets }
