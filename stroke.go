package sketchpoint

import "math"

// Point is a single 2D coordinate expressed in canvas pixel space.
// The origin is the top-left corner of the canvas and the Y axis
// grows downwards, the same orientation the capture canvas uses.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp interpolates linearly between two points:
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Stroke is one continuous pen-down to pen-up motion, stored as the
// ordered sequence of the captured cursor positions. Consecutive
// duplicate points are legal and simply contribute zero length.
type Stroke struct {
	Points []Point `json:"points"`
}

// Length returns the total arc length of the stroke, obtained by summing
// up the Euclidean distances between each pair of consecutive points.
// A stroke with fewer than two points has no measurable length.
func (s Stroke) Length() float64 {
	var length float64
	for i := 1; i < len(s.Points); i++ {
		length += s.Points[i-1].Distance(s.Points[i])
	}
	return length
}

// arcLengths returns the cumulative arc length at each captured point,
// starting with 0 at the first point. The last entry equals Length.
func (s Stroke) arcLengths() []float64 {
	if len(s.Points) == 0 {
		return nil
	}
	cum := make([]float64, len(s.Points))
	for i := 1; i < len(s.Points); i++ {
		cum[i] = cum[i-1] + s.Points[i-1].Distance(s.Points[i])
	}
	return cum
}

// IsDegenerate reports whether the stroke cannot define an arc length:
// either it holds fewer than two points or all of its points coincide.
// Degenerate strokes are skipped over when a drawing is resampled.
func (s Stroke) IsDegenerate() bool {
	return len(s.Points) < 2 || s.Length() == 0
}

// Drawing holds the strokes captured during one drawing session together
// with the dimension of the canvas they were captured on.
type Drawing struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Strokes []Stroke `json:"strokes"`
}

// TotalLength returns the summed arc length of all the non degenerate
// strokes of the drawing.
func (d Drawing) TotalLength() float64 {
	var total float64
	for _, s := range d.Strokes {
		total += s.Length()
	}
	return total
}

// IsEmpty reports whether the drawing holds nothing to resample, which
// is the case when no strokes were captured at all or every captured
// stroke is degenerate.
func (d Drawing) IsEmpty() bool {
	for _, s := range d.Strokes {
		if !s.IsDegenerate() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the drawing which does not share the
// underlying point slices with the receiver.
func (d Drawing) Clone() Drawing {
	clone := Drawing{
		Width:   d.Width,
		Height:  d.Height,
		Strokes: make([]Stroke, len(d.Strokes)),
	}
	for i, s := range d.Strokes {
		pts := make([]Point, len(s.Points))
		copy(pts, s.Points)
		clone.Strokes[i] = Stroke{Points: pts}
	}
	return clone
}
