package colorstats

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSolidBlack(t *testing.T) {
	img := solidImage(70, 70, color.Black)
	if got := Illumination(img); got != 0.0 {
		t.Errorf("Illumination(black) = %v, want 0.0", got)
	}
	if got := Contrast(img); got != 0.0 {
		t.Errorf("Contrast(black) = %v, want 0.0", got)
	}
	if got := Saturation(img); got != 0.0 {
		t.Errorf("Saturation(black) = %v, want 0.0", got)
	}
	top := TopColors(img, 5, 25)
	if len(top) != 1 || top[0] != "#000000=100.0" {
		t.Errorf("TopColors(black) = %v, want [#000000=100.0]", top)
	}
}

func TestSolidWhite(t *testing.T) {
	img := solidImage(70, 70, color.White)
	if got := Illumination(img); got != 100.0 {
		t.Errorf("Illumination(white) = %v, want 100.0", got)
	}
	if got := Saturation(img); got != 0.0 {
		t.Errorf("Saturation(white) = %v, want 0.0", got)
	}
	if got := Contrast(img); got != 0.0 {
		t.Errorf("Contrast(white) = %v, want 0.0", got)
	}
}

func TestPureRed(t *testing.T) {
	img := solidImage(32, 32, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	top := TopColors(img, 5, 25)
	if len(top) != 1 || top[0] != "#ff0000=100.0" {
		t.Errorf("TopColors(red) = %v, want [#ff0000=100.0]", top)
	}
	if got := Saturation(img); got != 100.0 {
		t.Errorf("Saturation(red) = %v, want 100.0", got)
	}
	got := Illumination(img)
	if got < 76.5 || got > 78.5 {
		t.Errorf("Illumination(red) = %v, want ~77", got)
	}
}
