package imop

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/sketchpoint/utils"
)

// The supported Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the output image of a composition operation.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap initializes a new output bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes the composition operator with SrcOver as the default
// operation, the same default the image/draw core package applies.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear, Copy, Dst,
			SrcOver, DstOver,
			SrcIn, DstIn,
			SrcOut, DstOut,
			SrcAtop, DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operations.
// An unsupported operation leaves the current one untouched.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes the source image over the backdrop into the bitmap,
// using the active composition operation. When a non nil blend carrying
// an active mode is provided, the source colors are first mixed with the
// backdrop colors and the composition runs over the blended result.
// The three images are expected to share the same dimension.
func (op *Composite) Draw(bitmap *Bitmap, src, backdrop *image.NRGBA, bl *Blend) {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			cs, as := pixColor(src.NRGBAAt(x, y))
			cb, ab := pixColor(backdrop.NRGBAAt(x, y))

			if bl != nil && bl.Get() != "" {
				// The blended color replaces the source color
				// proportionally to the backdrop opacity.
				mixed := bl.apply(cb, cs)
				cs = Color{
					R: (1-ab)*cs.R + ab*mixed.R,
					G: (1-ab)*cs.G + ab*mixed.G,
					B: (1-ab)*cs.B + ab*mixed.B,
				}
			}

			fa, fb := op.fractions(as, ab)
			ao := as*fa + ab*fb

			// The composed channels come out premultiplied by the
			// contribution factors, converted back to straight alpha
			// before getting stored.
			var co Color
			if ao > 0 {
				co = Color{
					R: (as*fa*cs.R + ab*fb*cb.R) / ao,
					G: (as*fa*cs.G + ab*fb*cb.G) / ao,
					B: (as*fa*cs.B + ab*fb*cb.B) / ao,
				}
			}

			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(utils.Clamp(math.Round(co.R), 0, 255)),
				G: uint8(utils.Clamp(math.Round(co.G), 0, 255)),
				B: uint8(utils.Clamp(math.Round(co.B), 0, 255)),
				A: uint8(utils.Clamp(math.Round(ao*255), 0, 255)),
			})
		}
	}
}

// fractions returns the source and backdrop contribution factors of the
// active operation, following the Porter-Duff alpha composition model.
func (op *Composite) fractions(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// pixColor splits up a pixel into its color channels on the 0-255 scale
// and its alpha value normalized into the [0, 1] interval.
func pixColor(c color.NRGBA) (Color, float64) {
	return Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}, float64(c.A) / 255
}
