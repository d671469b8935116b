package sheetfab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasing_Endpoints(t *testing.T) {
	for _, name := range CurveNames() {
		curve, err := CurveByName(name)
		assert.NoError(t, err)
		assert.InDelta(t, 0, curve(0), 1e-6, name)
		assert.InDelta(t, 1, curve(1), 1e-6, name)
	}
}

func TestEasing_Monotonic(t *testing.T) {
	for _, name := range CurveNames() {
		curve, _ := CurveByName(name)
		prev := curve(0)
		for i := 1; i <= 100; i++ {
			v := curve(float32(i) / 100)
			assert.GreaterOrEqual(t, v, prev-1e-6, "%s at %d", name, i)
			prev = v
		}
	}
}

func TestEasing_FastOutSlowIn(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(0.5, Linear(0.5), 1e-6)
	assert.InDelta(0.25, Accelerate(0.5), 1e-6)
	assert.InDelta(0.75, Decelerate(0.5), 1e-6)
	assert.InDelta(0.5, AccelerateDecelerate(0.5), 1e-6)

	// Fast out: the curve is well ahead of the linear progress halfway through.
	assert.InDelta(0.775, FastOutSlowIn(0.5), 0.01)
	assert.Equal(float32(0), FastOutSlowIn(-1))
	assert.Equal(float32(1), FastOutSlowIn(2))
}

func TestEasing_UnknownCurve(t *testing.T) {
	_, err := CurveByName("bounce")
	assert.Error(t, err)
	assert.Equal(t, []string{"accelerate", "accelerate-decelerate", "decelerate", "fast-out-slow-in", "linear"}, CurveNames())
}
