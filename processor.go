package sketchpoint

import (
	"fmt"
	"image"

	"github.com/esimov/sketchpoint/utils"
)

// The default capture canvas dimension and pen size.
const (
	DefaultWidth     = 500
	DefaultHeight    = 500
	DefaultPenRadius = 3.0
)

// Level selects one of the predefined sampling budgets exposed by the UI.
type Level int

// The sampling levels together with their total point budgets.
const (
	Level1 Level = iota + 1 // 100 points
	Level2                  // 300 points
	Level3                  // 600 points
)

// Points returns the total point budget associated with the level.
// Out of range levels fall back to the budget of the first level.
func (l Level) Points() int {
	switch l {
	case Level2:
		return 300
	case Level3:
		return 600
	default:
		return 100
	}
}

// String implements the Stringer interface, used for the UI labels.
func (l Level) String() string {
	return fmt.Sprintf("Level %d (%d pts)", int(l), l.Points())
}

var _ Resampler = (*Processor)(nil)

// Processor options
type Processor struct {
	Width     int
	Height    int
	Level     Level
	Points    int
	PenRadius float64
	FlipY     bool
	Overlay   bool
	BlendMode string
	Spinner   *utils.Spinner
}

// Result holds the artifacts produced from one processed drawing.
type Result struct {
	// Points are the resampled points, flattened in stroke order.
	Points []Point
	// Raster is the rasterized drawing the way it gets saved to disk.
	Raster *image.Gray
	// Plot is the side by side comparison of the drawing and the points.
	Plot *image.NRGBA
}

// Budget returns the total number of sample points the processor asks
// for. An explicitly set point count takes precedence over the level.
func (p *Processor) Budget() int {
	if p.Points > 0 {
		return p.Points
	}
	return p.Level.Points()
}

// Resample implements the Resampler interface by spreading the
// processor's point budget along the strokes of the drawing.
func (p *Processor) Resample(d Drawing) ([]Point, error) {
	return ResampleDrawing(d, p.Budget())
}

// Process is the main entry point of the sampling pipeline. It converts
// one captured drawing into its three artifacts: the resampled points,
// the rasterized grayscale image and the comparison plot. The drawing is
// only read, never modified, and no I/O happens here: persisting the
// artifacts is left over to the caller.
func (p *Processor) Process(d Drawing) (*Result, error) {
	pts, err := p.Resample(d)
	if err != nil {
		return nil, err
	}

	raster := Grayscale(Rasterize(d, p.penRadius()))
	plot, err := p.RenderPlot(raster, pts, d.Width, d.Height)
	if err != nil {
		return nil, err
	}

	return &Result{
		Points: pts,
		Raster: raster,
		Plot:   plot,
	}, nil
}

// penRadius returns the configured pen radius, falling back to the
// default one when left unset.
func (p *Processor) penRadius() float64 {
	if p.PenRadius > 0 {
		return p.PenRadius
	}
	return DefaultPenRadius
}
