package main

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stewi1014/fractals/views"
)

func TestRasterizeGeometryViews(t *testing.T) {
	s := views.DefaultSettings()
	s.Depth = 2

	for i := 0; i < views.NumViews(); i++ {
		view := views.GetView(i)
		if _, ok := view.(views.GeometryView); !ok {
			continue
		}

		img, err := Rasterize(view, s, 64, 48)
		if err != nil {
			t.Fatalf("%v: %v", view.Name(), err)
		}
		if img.Bounds() != image.Rect(0, 0, 64, 48) {
			t.Fatalf("%v: bounds %v", view.Name(), img.Bounds())
		}
		if !hasLitPixel(img) {
			t.Fatalf("%v: rasterized to an all-black image", view.Name())
		}
	}
}

func TestRasterizeClock(t *testing.T) {
	s := views.DefaultSettings()
	s.Clock.Paused = true
	s.Clock.Time = 3*3600 + 45*60

	img, err := Rasterize(new(views.ClockView), s, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if !hasLitPixel(img) {
		t.Fatal("clock rasterized to an all-black image")
	}
}

func hasLitPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || bl != 0 {
				return true
			}
		}
	}
	return false
}

func TestBufferedImageMatchesSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), A: 0xff})
		}
	}

	buffered := BufferImage(src)
	if err := buffered.Buffer(context.Background()); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if buffered.At(x, y) != src.At(x, y) {
				t.Fatalf("pixel (%v, %v) is %v, want %v", x, y, buffered.At(x, y), src.At(x, y))
			}
		}
	}
}
