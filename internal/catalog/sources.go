package catalog

import (
	"context"
	"fmt"
	"image/color"

	"github.com/depeter/jellyflow/internal/jellyfin"
)

// JellyfinSource pages movies and series from a Jellyfin library.
type JellyfinSource struct {
	Client      *jellyfin.Client
	LibraryID   string
	PosterWidth int
}

func (s *JellyfinSource) Page(ctx context.Context, start, limit int) ([]Poster, int, error) {
	items, total, err := s.Client.GetPosters(ctx, s.LibraryID, start, limit)
	if err != nil {
		return nil, 0, err
	}
	posters := make([]Poster, 0, len(items))
	for i, it := range items {
		p := Poster{
			ID:          it.ID,
			Title:       it.Name,
			Year:        it.Year,
			AspectRatio: it.AspectRatio,
			Tint:        tint(start + i),
		}
		if it.HasPoster() {
			p.ImageURL = s.Client.GetPosterURL(it.ID, s.PosterWidth)
		}
		posters = append(posters, p)
	}
	return posters, total, nil
}

// DemoSource serves count generated posters with no artwork.
type DemoSource struct {
	Count int
}

func (s DemoSource) Page(ctx context.Context, start, limit int) ([]Poster, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	end := min(start+limit, s.Count)
	var posters []Poster
	for i := start; i < end; i++ {
		posters = append(posters, Poster{
			ID:          fmt.Sprintf("demo-%d", i),
			Title:       fmt.Sprintf("Poster %03d", i+1),
			Year:        1970 + i%55,
			AspectRatio: jellyfin.DefaultAspectRatio,
			Tint:        tint(i),
		})
	}
	return posters, s.Count, nil
}

// tint picks a placeholder color from a fixed palette.
func tint(i int) color.RGBA {
	palette := []color.RGBA{
		{R: 0x3d, G: 0x5a, B: 0x80, A: 0xff},
		{R: 0x98, G: 0xc1, B: 0xd9, A: 0xff},
		{R: 0xee, G: 0x6c, B: 0x4d, A: 0xff},
		{R: 0x29, G: 0x3d, B: 0x4a, A: 0xff},
		{R: 0x8e, G: 0x7d, B: 0xbe, A: 0xff},
		{R: 0x6b, G: 0x9e, B: 0x78, A: 0xff},
	}
	return palette[i%len(palette)]
}
