// Package catalog holds the ordered poster list the gallery scrolls through.
package catalog

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Poster is one gallery entry.
type Poster struct {
	ID          string
	Title       string
	Year        int
	AspectRatio float64 // width/height of the artwork
	ImageURL    string  // empty when there is no artwork to fetch
	Tint        color.RGBA
}

// Source pages posters from somewhere.
type Source interface {
	// Page returns up to limit posters starting at start and the total count.
	Page(ctx context.Context, start, limit int) ([]Poster, int, error)
}

// Catalog is safe for concurrent use. Readers get a consistent view until
// the next Replace.
type Catalog struct {
	mu       sync.RWMutex
	posters  []Poster
	onChange []func()
}

func New() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.posters)
}

// At returns the poster at i. It panics on an out-of-range index like a
// slice would.
func (c *Catalog) At(i int) Poster {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posters[i]
}

// Posters returns a copy of the list.
func (c *Catalog) Posters() []Poster {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Poster(nil), c.posters...)
}

// OnChange registers fn to run after every Replace.
func (c *Catalog) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

// Replace swaps the list and notifies listeners.
func (c *Catalog) Replace(posters []Poster) {
	c.mu.Lock()
	c.posters = append([]Poster(nil), posters...)
	fns := append([]func(){}, c.onChange...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Load fetches every page of src and replaces the list. The first page
// reports the total; the rest are fetched in parallel.
func (c *Catalog) Load(ctx context.Context, src Source, pageSize int) error {
	posters, err := FetchAll(ctx, src, pageSize)
	if err != nil {
		return err
	}
	c.Replace(posters)
	return nil
}

// FetchAll returns every poster of src in order.
func FetchAll(ctx context.Context, src Source, pageSize int) ([]Poster, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	first, total, err := src.Page(ctx, 0, pageSize)
	if err != nil {
		return nil, fmt.Errorf("load page 0: %w", err)
	}
	if total <= len(first) {
		return first, nil
	}

	pages := (total + pageSize - 1) / pageSize
	results := make([][]Poster, pages)
	results[0] = first

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for p := 1; p < pages; p++ {
		g.Go(func() error {
			items, _, err := src.Page(ctx, p*pageSize, pageSize)
			if err != nil {
				return fmt.Errorf("load page %d: %w", p, err)
			}
			results[p] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Poster, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
