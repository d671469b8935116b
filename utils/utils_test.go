package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(-1.5, Min(-1.5, 0.5))
	assert.Equal(3, Abs(-3))
	assert.Equal(float32(0.25), Abs(float32(-0.25)))
}

func TestUtils_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, Clamp(-0.2, 0, 1))
	assert.Equal(1.0, Clamp(1.7, 0, 1))
	assert.Equal(0.4, Clamp(0.4, 0, 1))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{"gio", "term"}, "term"))
	assert.False(t, Contains([]string{"gio", "term"}, "replay"))
}

func TestUtils_DecorateText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ErrorColor+"oops"+DefaultColor, DecorateText("oops", ErrorMessage))

	Plain = true
	defer func() { Plain = false }()
	assert.Equal("oops", DecorateText("oops", ErrorMessage))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("300ms", FormatTime(300*time.Millisecond))
	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 5.00s", FormatTime(125*time.Second))
}
