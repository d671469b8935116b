package giohost

import (
	"image"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/op"
	"github.com/esimov/sheetfab"
	"github.com/esimov/sheetfab/config"
	"github.com/esimov/sheetfab/element"
	"github.com/esimov/sheetfab/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGui_ToStage(t *testing.T) {
	s, err := stage.New(config.Default(), time.Now(), nil)
	require.NoError(t, err)

	g := NewGUI(s, "sheetfab")
	assert.Equal(t, image.Pt(10, 20), g.toStage(f32.Pt(10.6, 20.2)))

	g.scale = 2
	assert.Equal(t, image.Pt(164, 284), g.toStage(f32.Pt(328, 568)))
}

func TestGui_PushTransform(t *testing.T) {
	var ops op.Ops
	b := element.NewBox("box", image.Rect(0, 0, 10, 10))

	pop, ok := pushTransform(&ops, b)
	require.True(t, ok)
	pop()

	b.SetTransform(sheetfab.Transform{Alpha: 1})
	_, ok = pushTransform(&ops, b)
	assert.False(t, ok)

	b.SetTransform(sheetfab.Identity)
	b.SetVisibility(sheetfab.Invisible)
	_, ok = pushTransform(&ops, b)
	assert.False(t, ok)
}

func TestGui_SetIcon(t *testing.T) {
	s, err := stage.New(config.Default(), time.Now(), nil)
	require.NoError(t, err)

	g := NewGUI(s, "sheetfab")
	g.SetIcon(image.NewNRGBA(image.Rect(0, 0, 24, 24)))
	assert.True(t, g.hasIcon)
	assert.Equal(t, image.Pt(24, 24), g.iconOp.Size())
}
