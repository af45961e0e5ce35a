// Package icon draws the window icon: a miniature gallery of five posters
// sized by the same scale curve the app uses.
package icon

import (
	"image"
	"image/color"

	"github.com/depeter/jellyflow/internal/gallery"
)

// Theme colors from the app
var (
	jellyfinBlue = color.RGBA{R: 0x00, G: 0xA4, B: 0xDC, A: 0xFF}
	purpleAccent = color.RGBA{R: 0xAA, G: 0x5C, B: 0xC3, A: 0xFF}
	darkBG       = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
	sideShade    = color.RGBA{R: 0x00, G: 0x78, B: 0xA8, A: 0xFF}
	shadow       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x70}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	fillRect(img, 0, 0, size, size, darkBG)

	sc := gallery.NewScaler(gallery.DefaultConfig())
	posterW := s * 0.26
	posterH := posterW * 1.5
	gap := s * 0.02
	cy := s * 0.5

	// center returns the x of the poster d steps from the middle.
	center := func(d int) float64 {
		o := 0.0
		for k := 0; k < d || k < -d; k++ {
			o += posterW*sc.Scale(float64(k))/2 + gap + posterW*sc.Scale(float64(k+1))/2
		}
		if d < 0 {
			return s*0.5 - o
		}
		return s*0.5 + o
	}

	// Outer posters first so inner shadows fall over them.
	for _, d := range []int{-2, 2, -1, 1, 0} {
		scale := sc.Scale(float64(d))
		w, h := posterW*scale, posterH*scale
		cx := center(d)
		x, y := cx-w/2, cy-h/2

		clr := sideShade
		switch d {
		case 0:
			clr = jellyfinBlue
		case -2, 2:
			clr = purpleAccent
		}
		fillRoundedRect(img, x+s*0.015, y+s*0.02, w, h, s*0.03, shadow)
		fillRoundedRect(img, x, y, w, h, s*0.03, clr)
	}
	return img
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.Color) {
	b := img.Bounds()
	for y := max(y0, b.Min.Y); y < min(y0+h, b.Max.Y); y++ {
		for x := max(x0, b.Min.X); x < min(x0+w, b.Max.X); x++ {
			blendPixel(img, x, y, c)
		}
	}
}

// fillRoundedRect fills the rectangle at (xf, yf) with corners of radius rf.
func fillRoundedRect(img *image.RGBA, xf, yf, wf, hf, rf float64, c color.Color) {
	b := img.Bounds()
	for y := max(int(yf), b.Min.Y); y <= int(yf+hf) && y < b.Max.Y; y++ {
		for x := max(int(xf), b.Min.X); x <= int(xf+wf) && x < b.Max.X; x++ {
			fx, fy := float64(x), float64(y)
			// Distance into the nearest corner square, zero outside one.
			dx := max(xf+rf-fx, fx-(xf+wf-rf), 0)
			dy := max(yf+rf-fy, fy-(yf+hf-rf), 0)
			if dx > 0 && dy > 0 && dx*dx+dy*dy > rf*rf {
				continue
			}
			blendPixel(img, x, y, c)
		}
	}
}

// blendPixel alpha-blends color c onto the existing pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, c color.Color) {
	r0, g0, b0, a0 := c.RGBA()
	if a0 == 0 {
		return
	}
	if a0 == 0xFFFF {
		img.Set(x, y, c)
		return
	}

	existing := img.RGBAAt(x, y)
	inv := 0xFFFF - a0
	// c.RGBA is premultiplied, so only the background is scaled.
	mix := func(src uint32, dst uint8) uint8 {
		return uint8((src + uint32(dst)*257*inv/0xFFFF) >> 8)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: mix(r0, existing.R),
		G: mix(g0, existing.G),
		B: mix(b0, existing.B),
		A: 0xFF,
	})
}
