package imop

import (
	"fmt"
	"image/color"

	"github.com/esimov/sheetfab/utils"
)

const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
)

var blendModes = []string{Normal, Darken, Lighten, Multiply, Screen}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend using the normal mode.
func NewBlend() *Blend {
	return &Blend{OpType: Normal}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(blendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	if len(o.OpType) > 0 {
		return o.OpType
	}
	return Normal
}

// Mix blends the source color with the backdrop using the active blend mode,
// then composites the result over the backdrop with the source alpha scaled by opacity.
func (o *Blend) Mix(src, backdrop color.NRGBA, opacity float32) color.NRGBA {
	rs, gs, bs := norm(src.R), norm(src.G), norm(src.B)
	rb, gb, bb := norm(backdrop.R), norm(backdrop.G), norm(backdrop.B)

	var rn, gn, bn float64
	switch o.Get() {
	case Darken:
		rn, gn, bn = utils.Min(rs, rb), utils.Min(gs, gb), utils.Min(bs, bb)
	case Lighten:
		rn, gn, bn = utils.Max(rs, rb), utils.Max(gs, gb), utils.Max(bs, bb)
	case Multiply:
		rn, gn, bn = rs*rb, gs*gb, bs*bb
	case Screen:
		rn = 1 - (1-rs)*(1-rb)
		gn = 1 - (1-gs)*(1-gb)
		bn = 1 - (1-bs)*(1-bb)
	default:
		rn, gn, bn = rs, gs, bs
	}

	blended := color.NRGBA{R: denorm(rn), G: denorm(gn), B: denorm(bn), A: src.A}
	return SrcOver(blended, backdrop, opacity)
}

// SrcOver composites src over dst, with the source alpha scaled by opacity.
func SrcOver(src, dst color.NRGBA, opacity float32) color.NRGBA {
	as := norm(src.A) * utils.Clamp(float64(opacity), 0, 1)
	ab := norm(dst.A)

	an := as + ab*(1-as)
	if an == 0 {
		return color.NRGBA{}
	}
	mix := func(s, b uint8) uint8 {
		return denorm((as*norm(s) + ab*norm(b)*(1-as)) / an)
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: denorm(an),
	}
}

func norm(v uint8) float64 {
	return float64(v) / 255
}

func denorm(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}
