package sketchpoint

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/esimov/sketchpoint/imop"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// The layout constants of the comparison plot.
const (
	plotMargin    = 12
	plotGap       = 10
	plotLabelBand = 26
	plotDotRadius = 2.5
	fadeOpacity   = 0.3
)

// The titles rendered above the two panels of the comparison plot.
const (
	titleDrawing = "Original Drawing"
	titleSamples = "Sampled Points"
)

// dotColor is the fill color of the sampled point markers.
var dotColor = color.NRGBA{R: 0xff, A: 0xff}

// RenderPlot assembles the side by side comparison of a drawing and its
// resampled points: the rasterized drawing sits on the left panel and
// the sampled points on the right one, rendered as red dot markers.
// With the overlay option the markers get composed over a faded copy of
// the drawing, optionally mixed with the configured blend mode,
// otherwise they sit on a plain white panel. The flip option mirrors
// the points panel vertically.
func (p *Processor) RenderPlot(src image.Image, pts []Point, w, h int) (*image.NRGBA, error) {
	left := imaging.Clone(src)

	scatter := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, pt := range pts {
		drawDisc(scatter, pt, plotDotRadius, dotColor)
	}
	if p.FlipY {
		scatter = imaging.FlipV(scatter)
	}

	right, err := p.renderSamplesPanel(left, scatter, w, h)
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(2*w+2*plotMargin+plotGap, h+2*plotMargin+plotLabelBand, canvasColor)
	canvas = imaging.Paste(canvas, left, image.Pt(plotMargin, plotMargin+plotLabelBand))
	canvas = imaging.Paste(canvas, right, image.Pt(plotMargin+w+plotGap, plotMargin+plotLabelBand))

	drawTitle(canvas, titleDrawing, plotMargin, w)
	drawTitle(canvas, titleSamples, plotMargin+w+plotGap, w)

	return canvas, nil
}

// renderSamplesPanel produces the right panel of the plot out of the
// scatter layer: composed over the faded drawing in overlay mode, laid
// over a blank white panel otherwise.
func (p *Processor) renderSamplesPanel(drawing, scatter *image.NRGBA, w, h int) (*image.NRGBA, error) {
	blank := imaging.New(w, h, canvasColor)
	if !p.Overlay {
		return imaging.Overlay(blank, scatter, image.Pt(0, 0), 1.0), nil
	}

	backdrop := imaging.Overlay(blank, drawing, image.Pt(0, 0), fadeOpacity)

	bl := imop.NewBlend()
	if p.BlendMode != "" {
		if err := bl.Set(p.BlendMode); err != nil {
			return nil, err
		}
	}

	op := imop.InitOp()
	bmp := imop.NewBitmap(image.Rect(0, 0, w, h))
	op.Draw(bmp, scatter, backdrop, bl)

	return bmp.Img, nil
}

// drawDisc fills a disc of the given radius around the center point.
func drawDisc(img *image.NRGBA, center Point, radius float64, c color.NRGBA) {
	strokeSegment(img, center, center, radius, c)
}

// drawTitle renders a panel title centered above the panel starting at x.
func drawTitle(img *image.NRGBA, title string, x, w int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{A: 0xff}),
		Face: basicfont.Face7x13,
	}
	tw := d.MeasureString(title).Ceil()
	d.Dot = fixed.P(x+(w-tw)/2, plotMargin+plotLabelBand-10)
	d.DrawString(title)
}
