package sketchpoint

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRender_BackgroundStaysWhite(t *testing.T) {
	img := Rasterize(Drawing{Width: 50, Height: 50}, DefaultPenRadius)

	probes := []image.Point{{0, 0}, {25, 25}, {49, 49}}
	for _, pt := range probes {
		if img.NRGBAAt(pt.X, pt.Y) != canvasColor {
			t.Errorf("Pixel at %v expected to be white. Got %v", pt, img.NRGBAAt(pt.X, pt.Y))
		}
	}
}

func TestRender_InkCoversSegment(t *testing.T) {
	d := Drawing{
		Width:  60,
		Height: 40,
		Strokes: []Stroke{
			{Points: []Point{{10, 20}, {40, 20}}},
		},
	}
	img := Rasterize(d, 3)

	inked := []image.Point{{10, 20}, {25, 20}, {40, 20}, {25, 22}, {8, 20}}
	for _, pt := range inked {
		if img.NRGBAAt(pt.X, pt.Y) != inkColor {
			t.Errorf("Pixel at %v expected to be inked. Got %v", pt, img.NRGBAAt(pt.X, pt.Y))
		}
	}

	blank := []image.Point{{25, 28}, {50, 20}, {2, 2}}
	for _, pt := range blank {
		if img.NRGBAAt(pt.X, pt.Y) != canvasColor {
			t.Errorf("Pixel at %v expected to stay white. Got %v", pt, img.NRGBAAt(pt.X, pt.Y))
		}
	}
}

func TestRender_TapLeavesNoInk(t *testing.T) {
	d := Drawing{
		Width:  30,
		Height: 30,
		Strokes: []Stroke{
			{Points: []Point{{15, 15}}},
		},
	}
	img := Rasterize(d, DefaultPenRadius)

	if img.NRGBAAt(15, 15) != canvasColor {
		t.Errorf("A tap expected to leave no ink. Got %v", img.NRGBAAt(15, 15))
	}
}

func TestRender_RestingPenPaintsDisc(t *testing.T) {
	// Two coincident points form a zero length segment, which
	// collapses into a single disc of the pen radius.
	d := Drawing{
		Width:  30,
		Height: 30,
		Strokes: []Stroke{
			{Points: []Point{{15, 15}, {15, 15}}},
		},
	}
	img := Rasterize(d, 3)

	if img.NRGBAAt(15, 15) != inkColor {
		t.Errorf("Disc center expected to be inked. Got %v", img.NRGBAAt(15, 15))
	}
	if img.NRGBAAt(15, 18) != inkColor {
		t.Errorf("Disc edge expected to be inked. Got %v", img.NRGBAAt(15, 18))
	}
	if img.NRGBAAt(15, 19) != canvasColor {
		t.Errorf("Pixel outside the disc expected to stay white. Got %v", img.NRGBAAt(15, 19))
	}
}

func TestRender_DistToSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	testCases := []struct {
		name string
		p    Point
		want float64
	}{
		{"projection inside", Point{5, 7}, 7},
		{"beyond the end", Point{15, 0}, 5},
		{"before the start", Point{-3, 4}, 5},
		{"on the segment", Point{2, 0}, 0},
	}

	for _, tc := range testCases {
		if got := distToSegment(tc.p, a, b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: distance expected to be %v. Got %v", tc.name, tc.want, got)
		}
	}

	if got := distToSegment(Point{3, 4}, Point{0, 0}, Point{0, 0}); math.Abs(got-5) > 1e-9 {
		t.Errorf("Degenerate segment distance expected to be 5. Got %v", got)
	}
}

func TestRender_GrayscaleLuminance(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{G: 0xff, A: 0xff})
	src.SetNRGBA(2, 0, color.NRGBA{B: 0xff, A: 0xff})
	src.SetNRGBA(3, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	src.SetNRGBA(4, 0, color.NRGBA{A: 0xff})

	gray := Grayscale(src)

	expected := []uint8{76, 150, 29, 255, 0}
	for i, want := range expected {
		if got := gray.GrayAt(i, 0).Y; got != want {
			t.Errorf("Luminance at %d expected to be %v. Got %v", i, want, got)
		}
	}
}
