// Package imop implements the color operations used by the sheet transition:
// the ARGB evaluator interpolating the sheet background between the control color
// and the sheet color, and the blend and composite operations needed by hosts
// which cannot alpha blend on their own (like a terminal) to paint the dimming scrim.
package imop

import "image/color"

// ARGB is a color packed as 0xAARRGGBB.
type ARGB uint32

// FromNRGBA packs a non-premultiplied color.
func FromNRGBA(c color.NRGBA) ARGB {
	return ARGB(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// NRGBA unpacks the color.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{
		A: uint8(c >> 24),
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// Evaluate linearly interpolates every channel, alpha included, between start and end.
// The fraction is not clamped, so overshooting curves extrapolate like the channels would.
func Evaluate(fraction float32, start, end ARGB) ARGB {
	channel := func(shift uint) uint32 {
		s := int32((start >> shift) & 0xff)
		e := int32((end >> shift) & 0xff)
		v := s + int32(fraction*float32(e-s))
		return uint32(v&0xff) << shift
	}
	return ARGB(channel(24) | channel(16) | channel(8) | channel(0))
}

// Lerp is Evaluate on unpacked colors.
func Lerp(fraction float32, start, end color.NRGBA) color.NRGBA {
	return Evaluate(fraction, FromNRGBA(start), FromNRGBA(end)).NRGBA()
}
