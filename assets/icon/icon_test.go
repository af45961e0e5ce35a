package icon

import (
	"image"
	"testing"
)

func TestGenerate(t *testing.T) {
	imgs := Generate()
	if len(imgs) != 2 {
		t.Fatalf("Generate() returned %d images, want 2", len(imgs))
	}
	for i, want := range []int{64, 32} {
		b := imgs[i].Bounds()
		if b.Dx() != want || b.Dy() != want {
			t.Errorf("image %d is %dx%d, want %dx%d", i, b.Dx(), b.Dy(), want, want)
		}
		rgba := imgs[i].(*image.RGBA)
		if got := rgba.RGBAAt(want/2, want/2); got != jellyfinBlue {
			t.Errorf("image %d center = %v, want the center poster color", i, got)
		}
		if got := rgba.RGBAAt(0, 0); got != darkBG {
			t.Errorf("image %d corner = %v, want background", i, got)
		}
	}
}
