package sketchpoint

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/esimov/sketchpoint/utils"
)

// The capture canvas colors: the ink is painted in black over a white background.
var (
	canvasColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	inkColor    = color.NRGBA{A: 0xff}
)

// Rasterize renders the drawing the same way the capture canvas shows it:
// round capped ink strokes painted over a white background. The radius
// argument is the pen radius, i.e. half of the stroke width. Single point
// strokes leave no ink, just like a click without any drag motion leaves
// no trace on the canvas.
func Rasterize(d Drawing, radius float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(canvasColor), image.Point{}, draw.Src)

	for _, s := range d.Strokes {
		for i := 1; i < len(s.Points); i++ {
			strokeSegment(img, s.Points[i-1], s.Points[i], radius, inkColor)
		}
	}
	return img
}

// strokeSegment fills in every pixel laying within radius distance of the
// ab segment, which draws the segment with round caps on both of its ends.
// A zero length segment collapses into a single disc.
func strokeSegment(img *image.NRGBA, a, b Point, radius float64, c color.NRGBA) {
	bounds := img.Bounds()
	minX := utils.Clamp(int(math.Floor(math.Min(a.X, b.X)-radius)), bounds.Min.X, bounds.Max.X-1)
	maxX := utils.Clamp(int(math.Ceil(math.Max(a.X, b.X)+radius)), bounds.Min.X, bounds.Max.X-1)
	minY := utils.Clamp(int(math.Floor(math.Min(a.Y, b.Y)-radius)), bounds.Min.Y, bounds.Max.Y-1)
	maxY := utils.Clamp(int(math.Ceil(math.Max(a.Y, b.Y)+radius)), bounds.Min.Y, bounds.Max.Y-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{X: float64(x), Y: float64(y)}
			if distToSegment(p, a, b) <= radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// distToSegment returns the distance between p and the ab segment by
// projecting p onto the segment and clamping the projection onto its ends.
func distToSegment(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y

	den := abx*abx + aby*aby
	if den == 0 {
		return p.Distance(a)
	}

	t := utils.Clamp(((p.X-a.X)*abx+(p.Y-a.Y)*aby)/den, 0, 1)
	return p.Distance(Point{X: a.X + abx*t, Y: a.Y + aby*t})
}

// Grayscale converts the rasterized drawing to 8-bit grayscale mode,
// which is the format the drawing gets saved to disk in.
func Grayscale(src *image.NRGBA) *image.Gray {
	dx, dy := src.Bounds().Max.X, src.Bounds().Max.Y
	dst := image.NewGray(src.Bounds())

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			r, g, b, _ := src.At(x, y).RGBA()
			lum := float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114
			dst.SetGray(x, y, color.Gray{Y: uint8(lum / 256)})
		}
	}
	return dst
}
