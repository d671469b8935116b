package imop

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Equal(Normal, op.Get())

	err := op.Set("blend_mode_not_supported")
	assert.Error(err)
	assert.Equal(Normal, op.Get())

	assert.NoError(op.Set(Darken))
	assert.Equal(Darken, op.Get())
	assert.NoError(op.Set(Multiply))
	assert.Equal(Multiply, op.Get())

	var zero Blend
	assert.Equal(Normal, zero.Get())
}

func TestBlend_SrcOver(t *testing.T) {
	assert := assert.New(t)

	black := color.NRGBA{A: 0xff}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	assert.Equal(white, SrcOver(black, white, 0))
	assert.Equal(black, SrcOver(black, white, 1))
	assert.Equal(color.NRGBA{R: 128, G: 128, B: 128, A: 0xff}, SrcOver(black, white, 0.5))

	// Half transparent scrim at full opacity behaves like opacity 0.5.
	scrim := color.NRGBA{A: 0x80}
	mixed := SrcOver(scrim, white, 1)
	assert.InDelta(127, int(mixed.R), 1)
	assert.Equal(uint8(0xff), mixed.A)

	assert.Equal(color.NRGBA{}, SrcOver(color.NRGBA{}, color.NRGBA{}, 1))
}

func TestBlend_Modes(t *testing.T) {
	assert := assert.New(t)

	pink := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orange := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	op := NewBlend()
	assert.Equal(pink, op.Mix(pink, orange, 1))

	op.Set(Darken)
	assert.Equal(color.NRGBA{R: 214, G: 20, B: 17, A: 255}, op.Mix(pink, orange, 1))

	op.Set(Lighten)
	assert.Equal(color.NRGBA{R: 250, G: 121, B: 65, A: 255}, op.Mix(pink, orange, 1))

	op.Set(Multiply)
	assert.Equal(color.NRGBA{R: 210, G: 9, B: 4, A: 255}, op.Mix(pink, orange, 1))

	op.Set(Screen)
	assert.Equal(color.NRGBA{R: 254, G: 132, B: 78, A: 255}, op.Mix(pink, orange, 1))

	// Zero opacity leaves the backdrop untouched whatever the mode.
	assert.Equal(orange, op.Mix(pink, orange, 0))
}
