package sketchpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var p *Processor

func init() {
	p = &Processor{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Level:     Level1,
		PenRadius: DefaultPenRadius,
		FlipY:     false,
		Overlay:   false,
	}
}

func TestResample_EvenSpacingOnStraightLine(t *testing.T) {
	assert := assert.New(t)

	s := Stroke{Points: []Point{{0, 0}, {10, 0}}}
	samples, err := ResampleStroke(s, 5)
	assert.NoError(err)

	expected := []Point{{0, 0}, {2.5, 0}, {5, 0}, {7.5, 0}, {10, 0}}
	assert.Len(samples, len(expected))
	for i := range expected {
		assert.InDelta(expected[i].X, samples[i].X, 1e-9)
		assert.InDelta(expected[i].Y, samples[i].Y, 1e-9)
	}
}

func TestResample_PinsBothEndpoints(t *testing.T) {
	assert := assert.New(t)

	s := Stroke{Points: []Point{{3, 7}, {20, 42}, {55, 13}, {81, 64}}}
	samples, err := ResampleStroke(s, 12)
	assert.NoError(err)

	assert.Equal(s.Points[0], samples[0])
	assert.Equal(s.Points[len(s.Points)-1], samples[len(samples)-1])
}

func TestResample_SingleSampleReturnsStartPoint(t *testing.T) {
	assert := assert.New(t)

	s := Stroke{Points: []Point{{4, 4}, {8, 8}}}
	samples, err := ResampleStroke(s, 1)
	assert.NoError(err)
	assert.Equal([]Point{{4, 4}}, samples)
}

func TestResample_SamplesStayOnPolyline(t *testing.T) {
	assert := assert.New(t)

	// An L-shaped stroke: every sample has to sit either on the
	// horizontal or on the vertical leg.
	s := Stroke{Points: []Point{{0, 0}, {10, 0}, {10, 10}}}
	samples, err := ResampleStroke(s, 9)
	assert.NoError(err)

	for _, pt := range samples {
		onHorizontal := pt.Y == 0 && pt.X >= 0 && pt.X <= 10
		onVertical := pt.X == 10 && pt.Y >= 0 && pt.Y <= 10
		assert.True(onHorizontal || onVertical, "sample %v left the polyline", pt)
	}
}

func TestResample_RepeatedPointsDoNotStall(t *testing.T) {
	assert := assert.New(t)

	// The pen resting in place produces coincident points; the
	// zero length segments should be skipped over.
	s := Stroke{Points: []Point{{0, 0}, {5, 0}, {5, 0}, {5, 0}, {10, 0}}}
	samples, err := ResampleStroke(s, 5)
	assert.NoError(err)

	expected := []Point{{0, 0}, {2.5, 0}, {5, 0}, {7.5, 0}, {10, 0}}
	for i := range expected {
		assert.InDelta(expected[i].X, samples[i].X, 1e-9)
		assert.InDelta(expected[i].Y, samples[i].Y, 1e-9)
	}
}

func TestResample_BudgetSplitProportionalToLength(t *testing.T) {
	assert := assert.New(t)

	counts := allocateCounts([]float64{10, 30}, 40, 100)
	assert.Equal([]int{25, 75}, counts)
}

func TestResample_ShortStrokeGetsAtLeastOneSample(t *testing.T) {
	assert := assert.New(t)

	counts := allocateCounts([]float64{1, 1}, 2, 3)
	assert.Equal([]int{1, 1}, counts)

	counts = allocateCounts([]float64{0.01, 99.99}, 100, 50)
	assert.Equal(1, counts[0])
	assert.Equal(49, counts[1])
}

func TestResample_DrawingConcatsStrokesInOrder(t *testing.T) {
	assert := assert.New(t)

	d := Drawing{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Strokes: []Stroke{
			{Points: []Point{{0, 0}, {10, 0}}},
			{Points: []Point{{0, 10}, {30, 10}}},
		},
	}

	samples, err := ResampleDrawing(d, 100)
	assert.NoError(err)
	assert.Len(samples, 100)

	// The first quarter of the budget belongs to the first stroke,
	// the rest to the second one.
	for i, pt := range samples {
		if i < 25 {
			assert.Equal(0.0, pt.Y, "sample %d expected on the first stroke", i)
		} else {
			assert.Equal(10.0, pt.Y, "sample %d expected on the second stroke", i)
		}
	}
}

func TestResample_SkipsDegenerateStrokes(t *testing.T) {
	assert := assert.New(t)

	d := Drawing{
		Strokes: []Stroke{
			{Points: []Point{{5, 5}}},
			{Points: []Point{{0, 0}, {10, 0}}},
			{Points: []Point{{7, 7}, {7, 7}}},
		},
	}

	samples, err := ResampleDrawing(d, 10)
	assert.NoError(err)
	assert.Len(samples, 10)
	for _, pt := range samples {
		assert.Equal(0.0, pt.Y)
	}
}

func TestResample_EmptyDrawingIsRejected(t *testing.T) {
	assert := assert.New(t)

	_, err := ResampleDrawing(Drawing{}, 100)
	assert.ErrorIs(err, ErrEmptyDrawing)

	// A drawing holding nothing but pen taps has no length either.
	dots := Drawing{Strokes: []Stroke{
		{Points: []Point{{1, 1}}},
		{Points: []Point{{2, 2}}},
	}}
	_, err = ResampleDrawing(dots, 100)
	assert.ErrorIs(err, ErrEmptyDrawing)
}

func TestResample_InvalidArguments(t *testing.T) {
	assert := assert.New(t)

	_, err := ResampleDrawing(Drawing{Strokes: []Stroke{{Points: []Point{{0, 0}, {1, 1}}}}}, 0)
	assert.Error(err)

	_, err = ResampleStroke(Stroke{Points: []Point{{0, 0}, {1, 1}}}, 0)
	assert.Error(err)

	_, err = ResampleStroke(Stroke{Points: []Point{{0, 0}}}, 5)
	assert.Error(err)
}

func TestResample_ProcessorUsesLevelBudget(t *testing.T) {
	assert := assert.New(t)

	d := Drawing{Strokes: []Stroke{{Points: []Point{{0, 0}, {100, 0}}}}}

	p.Level = Level2
	p.Points = 0
	samples, err := p.Resample(d)
	assert.NoError(err)
	assert.Len(samples, Level2.Points())

	// An explicit points value takes precedence over the level.
	p.Points = 40
	samples, err = p.Resample(d)
	assert.NoError(err)
	assert.Len(samples, 40)
	p.Points = 0
}
