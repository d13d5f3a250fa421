// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.

// It is mainly used by the comparison plot when the overlay mode is
// activated: the sampled point markers get composed over the faded
// drawing, optionally mixed with one of the supported blend modes.
package imop

import (
	"fmt"
	"math"
	"sort"

	"github.com/esimov/sketchpoint/utils"
)

// The supported separable blend modes.
const (
	Darken     = "darken"
	Lighten    = "lighten"
	Multiply   = "multiply"
	Screen     = "screen"
	Overlay    = "overlay"
	SoftLight  = "soft_light"
	HardLight  = "hard_light"
	ColorDodge = "color_dodge"
	ColorBurn  = "color_burn"
	Difference = "difference"
	Exclusion  = "exclusion"
)

// The supported non-separable blend modes.
const (
	Hue        = "hue"
	Saturation = "saturation"
	ColorMode  = "color"
	Luminosity = "luminosity"
)

// Color represents the color channels of a pixel on the 0-255 scale.
type Color struct {
	R, G, B float64
}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
	modes  []string
}

// NewBlend initializes a new Blend without any active mode.
func NewBlend() *Blend {
	return &Blend{
		modes: []string{
			Darken, Lighten,
			Multiply, Screen, Overlay,
			SoftLight, HardLight,
			ColorDodge, ColorBurn,
			Difference, Exclusion,
			Hue, Saturation, ColorMode, Luminosity,
		},
	}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(o.modes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes the backdrop and source colors with the active blend mode.
func (o *Blend) apply(cb, cs Color) Color {
	switch o.OpType {
	case Hue:
		return o.SetLum(o.SetSat(cs, o.Sat(cb)), o.Lum(cb))
	case Saturation:
		return o.SetLum(o.SetSat(cb, o.Sat(cs)), o.Lum(cb))
	case ColorMode:
		return o.SetLum(cs, o.Lum(cb))
	case Luminosity:
		return o.SetLum(cb, o.Lum(cs))
	}
	return Color{
		R: blendChannel(o.OpType, cb.R, cs.R),
		G: blendChannel(o.OpType, cb.G, cs.G),
		B: blendChannel(o.OpType, cb.B, cs.B),
	}
}

// blendChannel applies a separable blend mode onto a single channel pair,
// cb being the backdrop channel and cs the source one.
func blendChannel(mode string, cb, cs float64) float64 {
	switch mode {
	case Darken:
		return math.Min(cb, cs)
	case Lighten:
		return math.Max(cb, cs)
	case Multiply:
		return cb * cs / 255
	case Screen:
		return cb + cs - cb*cs/255
	case Overlay:
		return blendChannel(HardLight, cs, cb)
	case HardLight:
		if cs <= 127.5 {
			return blendChannel(Multiply, cb, 2*cs)
		}
		return blendChannel(Screen, cb, 2*cs-255)
	case SoftLight:
		cbn, csn := cb/255, cs/255
		if csn <= 0.5 {
			return 255 * (cbn - (1-2*csn)*cbn*(1-cbn))
		}
		var d float64
		if cbn <= 0.25 {
			d = ((16*cbn-12)*cbn + 4) * cbn
		} else {
			d = math.Sqrt(cbn)
		}
		return 255 * (cbn + (2*csn-1)*(d-cbn))
	case ColorDodge:
		if cb == 0 {
			return 0
		}
		if cs == 255 {
			return 255
		}
		return math.Min(255, 255*cb/(255-cs))
	case ColorBurn:
		if cb == 255 {
			return 255
		}
		if cs == 0 {
			return 0
		}
		return 255 - math.Min(255, 255*(255-cb)/cs)
	case Difference:
		return utils.Abs(cb - cs)
	case Exclusion:
		return cb + cs - 2*cb*cs/255
	}
	return cs
}

// Lum returns the luminosity of the color.
func (o *Blend) Lum(c Color) float64 {
	return 0.3*c.R + 0.59*c.G + 0.11*c.B
}

// Sat returns the saturation of the color.
func (o *Blend) Sat(c Color) float64 {
	return math.Max(c.R, math.Max(c.G, c.B)) - math.Min(c.R, math.Min(c.G, c.B))
}

// SetSat sets the saturation of the color while keeping the relative
// order of its channels: the smallest channel drops to zero, the biggest
// one becomes the saturation itself and the middle one is scaled in
// between proportionally.
func (o *Blend) SetSat(c Color, s float64) Color {
	ch := [3]float64{c.R, c.G, c.B}
	idx := []int{0, 1, 2}
	sort.Slice(idx, func(i, j int) bool {
		return ch[idx[i]] < ch[idx[j]]
	})
	lo, mid, hi := idx[0], idx[1], idx[2]

	var out [3]float64
	if ch[hi] > ch[lo] {
		out[mid] = (ch[mid] - ch[lo]) * s / (ch[hi] - ch[lo])
		out[hi] = s
	}
	return Color{R: out[0], G: out[1], B: out[2]}
}

// SetLum shifts the color to the given luminosity, clipping the shifted
// channels back into the displayable range.
func (o *Blend) SetLum(c Color, l float64) Color {
	d := l - o.Lum(c)
	return o.clipColor(Color{R: c.R + d, G: c.G + d, B: c.B + d})
}

// clipColor moves the out of range channels back into the 0-255 range,
// preserving the luminosity of the color.
func (o *Blend) clipColor(c Color) Color {
	l := o.Lum(c)
	min := math.Min(c.R, math.Min(c.G, c.B))
	max := math.Max(c.R, math.Max(c.G, c.B))

	if min < 0 && l != min {
		c = Color{
			R: l + (c.R-l)*l/(l-min),
			G: l + (c.G-l)*l/(l-min),
			B: l + (c.B-l)*l/(l-min),
		}
	}
	if max > 255 && max != l {
		c = Color{
			R: l + (c.R-l)*(255-l)/(max-l),
			G: l + (c.G-l)*(255-l)/(max-l),
			B: l + (c.B-l)*(255-l)/(max-l),
		}
	}
	return Color{
		R: utils.Clamp(c.R, 0, 255),
		G: utils.Clamp(c.G, 0, 255),
		B: utils.Clamp(c.B, 0, 255),
	}
}
