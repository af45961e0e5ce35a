package ui

import (
	"context"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/jellyflow/internal/cache"
	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/gallery"
)

// posterHandle is the materialized form of a catalog entry.
type posterHandle struct {
	index  int
	poster catalog.Poster
	tex    *ebiten.Image
}

// GalleryView supplies posters to the gallery engine, describes the screen
// area it lays out into and draws the visible window.
type GalleryView struct {
	ctx     context.Context
	catalog *catalog.Catalog
	cache   *cache.ImageCache // nil when posters have no artwork

	area    image.Rectangle
	pad     gallery.Insets
	posterH int

	live int
}

// NewGalleryView lays posters of height posterH out inside area.
func NewGalleryView(ctx context.Context, cat *catalog.Catalog, imgCache *cache.ImageCache, area image.Rectangle, posterH int) *GalleryView {
	return &GalleryView{
		ctx:     ctx,
		catalog: cat,
		cache:   imgCache,
		area:    area,
		pad:     gallery.Insets{Left: SidePadding, Right: SidePadding},
		posterH: posterH,
	}
}

func (v *GalleryView) ItemCount() int { return v.catalog.Len() }

// Measure scales the poster's aspect ratio to the configured height.
func (v *GalleryView) Measure(index int) (gallery.Size, error) {
	if index < 0 || index >= v.catalog.Len() {
		return gallery.Size{}, fmt.Errorf("poster %d not in catalog", index)
	}
	p := v.catalog.At(index)
	w := int(math.Round(float64(v.posterH) * p.AspectRatio))
	return gallery.Size{W: max(w, 1), H: v.posterH}, nil
}

// Materialize starts the artwork download; the texture is created on the
// first draw after it arrives.
func (v *GalleryView) Materialize(index int) (gallery.Handle, error) {
	if index < 0 || index >= v.catalog.Len() {
		return nil, fmt.Errorf("poster %d not in catalog", index)
	}
	h := &posterHandle{index: index, poster: v.catalog.At(index)}
	if h.poster.ImageURL != "" && v.cache != nil {
		v.cache.LoadAsync(v.ctx, h.poster.ImageURL, func(image.Image) {})
	}
	v.live++
	return h, nil
}

func (v *GalleryView) Release(h gallery.Handle) {
	ph, ok := h.(*posterHandle)
	if !ok {
		return
	}
	if ph.tex != nil {
		ph.tex.Deallocate()
		ph.tex = nil
	}
	v.live--
}

func (v *GalleryView) Size() gallery.Size {
	return gallery.Size{W: v.area.Dx(), H: v.area.Dy()}
}

func (v *GalleryView) Padding() gallery.Insets { return v.pad }

// Area is the screen rectangle the gallery occupies.
func (v *GalleryView) Area() image.Rectangle { return v.area }

// Live is the number of materialized posters.
func (v *GalleryView) Live() int { return v.live }

// Prefetch warms the image cache for posters just outside the window.
func (v *GalleryView) Prefetch(first, last, n int) {
	if v.cache == nil {
		return
	}
	var urls []string
	for i := 1; i <= n; i++ {
		for _, idx := range []int{last + i, first - i} {
			if idx < 0 || idx >= v.catalog.Len() {
				continue
			}
			if u := v.catalog.At(idx).ImageURL; u != "" {
				urls = append(urls, u)
			}
		}
	}
	v.cache.Prefetch(v.ctx, urls)
}

// Draw paints the visible window, smallest posters first so the selected
// one ends up on top.
func (v *GalleryView) Draw(dst *ebiten.Image, items []gallery.Item, selected int, outlines bool) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Scale < items[j].Scale })

	ox, oy := float64(v.area.Min.X), float64(v.area.Min.Y)
	for _, it := range items {
		ph, ok := it.Handle.(*posterHandle)
		if !ok {
			continue
		}
		r := it.VisualFrame()
		x, y := ox+r.X, oy+r.Y

		if ph.tex == nil && ph.poster.ImageURL != "" && v.cache != nil {
			if img := v.cache.Get(ph.poster.ImageURL); img != nil {
				ph.tex = ebiten.NewImageFromImage(img)
			}
		}

		if it.Index == selected {
			vector.DrawFilledRect(dst,
				float32(x-FocusBorder), float32(y-FocusBorder),
				float32(r.W+FocusBorder*2), float32(r.H+FocusBorder*2),
				ColorFocusBorder, false)
		}

		if ph.tex != nil {
			op := &ebiten.DrawImageOptions{}
			b := ph.tex.Bounds()
			op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
			op.GeoM.Translate(x, y)
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(ph.tex, op)
		} else {
			vector.DrawFilledRect(dst, float32(x), float32(y), float32(r.W), float32(r.H), ph.poster.Tint, false)
			title := truncateText(ph.poster.Title, r.W-8, FontSizeSmall)
			DrawTextCentered(dst, title, x+r.W/2, y+r.H/2, FontSizeSmall, ColorText)
		}

		if outlines {
			f := it.Frame
			vector.StrokeRect(dst,
				float32(ox)+float32(f.Left), float32(oy)+float32(f.Top),
				float32(f.Width()), float32(f.Height()),
				1, ColorFrameOutline, false)
		}
	}
}
