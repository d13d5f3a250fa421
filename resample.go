package sketchpoint

import (
	"errors"
	"fmt"

	"github.com/esimov/sketchpoint/utils"
)

// ErrEmptyDrawing is returned when a drawing holds nothing to resample:
// either no strokes were captured at all or every captured stroke is
// degenerate (a single click without any drag motion for example).
var ErrEmptyDrawing = errors.New("no drawing detected")

// Resampler converts a captured drawing into a flat list of sample points
// spread evenly along the drawn strokes.
type Resampler interface {
	Resample(d Drawing) ([]Point, error)
}

// allocateCounts splits up the total point budget between the strokes,
// proportionally to each stroke's share of the total arc length. Every
// stroke with a positive length receives at least one point, so the
// realized total may exceed the budget when many short strokes get
// rounded up, or fall below it when the proportional shares truncate.
// Degenerate strokes receive zero points. The total argument must be
// positive: the zero length case is filtered out by the caller.
func allocateCounts(lengths []float64, total float64, budget int) []int {
	counts := make([]int, len(lengths))
	for i, l := range lengths {
		if l <= 0 {
			continue
		}
		counts[i] = utils.Max(1, int(float64(budget)*(l/total)))
	}
	return counts
}

// ResampleStroke places count points along the stroke at evenly spaced
// arc length distances, interpolating linearly between the captured
// points. The first sample always coincides with the first captured
// point and the last sample with the last one; a count of one returns
// the starting point alone. The stroke must have at least two points.
func ResampleStroke(s Stroke, count int) ([]Point, error) {
	if count <= 0 {
		return nil, fmt.Errorf("the sample count must be positive, got %d", count)
	}
	if len(s.Points) < 2 {
		return nil, fmt.Errorf("cannot resample a stroke of %d point(s)", len(s.Points))
	}

	cum := s.arcLengths()
	total := cum[len(cum)-1]

	samples := make([]Point, count)
	samples[0] = s.Points[0]
	if count == 1 {
		return samples, nil
	}

	// The target distances are evenly spaced over [0, total]. Both ends
	// are pinned onto the original endpoints so that rounding errors in
	// the division can never push a sample outside the stroke.
	step := total / float64(count-1)
	seg := 0
	for i := 1; i < count-1; i++ {
		dist := float64(i) * step
		// Advance to the segment containing dist. Zero length segments
		// (consecutive duplicate points) are stepped over, which makes
		// the interpolation continue on their right side.
		for seg < len(cum)-2 && cum[seg+1] <= dist {
			seg++
		}
		segLen := cum[seg+1] - cum[seg]
		if segLen > 0 {
			t := (dist - cum[seg]) / segLen
			samples[i] = s.Points[seg].Lerp(s.Points[seg+1], t)
		} else {
			samples[i] = s.Points[seg+1]
		}
	}
	samples[count-1] = s.Points[len(s.Points)-1]

	return samples, nil
}

// ResampleDrawing distributes the point budget across the strokes of the
// drawing proportionally to their arc lengths, then resamples each non
// degenerate stroke with its allocated share. The samples are returned
// in drawing order: all the points of the first stroke, then all the
// points of the second one and so forth. Degenerate strokes are left out
// of both the budget split and the output. When the drawing holds no
// resampleable stroke at all, ErrEmptyDrawing is returned.
func ResampleDrawing(d Drawing, budget int) ([]Point, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("the point budget must be positive, got %d", budget)
	}

	lengths := make([]float64, len(d.Strokes))
	var total float64
	for i, s := range d.Strokes {
		if len(s.Points) < 2 {
			continue
		}
		lengths[i] = s.Length()
		total += lengths[i]
	}
	if total == 0 {
		return nil, ErrEmptyDrawing
	}

	counts := allocateCounts(lengths, total, budget)

	sampled := make([]Point, 0, budget)
	for i, s := range d.Strokes {
		if counts[i] == 0 {
			continue
		}
		pts, err := ResampleStroke(s, counts[i])
		if err != nil {
			return nil, err
		}
		sampled = append(sampled, pts...)
	}
	return sampled, nil
}
