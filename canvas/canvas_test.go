package canvas

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MinimumSize(t *testing.T) {
	c := New(0, -5)
	w, h := c.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestNewFilled(t *testing.T) {
	c := NewFilled(3, 2, RGB(10, 20, 30))
	assert.Equal(t, Color{R: 10, G: 20, B: 30, A: 255}, c.At(2, 1))
}

func TestCanvas_SetAndAt(t *testing.T) {
	c := New(4, 4)
	c.Set(1, 2, RGB(255, 0, 0))
	assert.Equal(t, Color{R: 255, A: 255}, c.At(1, 2))
}

func TestCanvas_SetOutOfBoundsIgnored(t *testing.T) {
	c := NewFilled(2, 2, RGB(0, 0, 0))
	c.Set(-1, 0, RGB(1, 2, 3))
	c.Set(0, 5, RGB(1, 2, 3))
	assert.Equal(t, Color{A: 255}, c.At(0, 0))
}

func TestCanvas_CopyIsIndependent(t *testing.T) {
	c := New(2, 2)
	cp := c.Copy()
	cp.Set(0, 0, RGB(255, 0, 0))
	assert.NotEqual(t, c.At(0, 0), cp.At(0, 0))
}

func TestCanvas_BlendOpaqueReplaces(t *testing.T) {
	c := NewFilled(1, 1, RGB(0, 0, 0))
	c.Blend(0, 0, RGB(255, 255, 255))
	assert.Equal(t, Color{R: 255, G: 255, B: 255, A: 255}, c.At(0, 0))
}

func TestCanvas_BlendTranslucentMixes(t *testing.T) {
	c := NewFilled(1, 1, RGB(0, 0, 0))
	c.Blend(0, 0, RGBA(255, 255, 255, 128))
	got := c.At(0, 0)
	assert.InDelta(t, 128, int(got.R), 2)
	assert.Equal(t, uint8(255), got.A)
}

func TestCanvas_BlendZeroAlphaIsNoop(t *testing.T) {
	c := NewFilled(1, 1, RGB(9, 9, 9))
	c.Blend(0, 0, RGBA(255, 255, 255, 0))
	assert.Equal(t, Color{R: 9, G: 9, B: 9, A: 255}, c.At(0, 0))
}

func TestCanvas_EncodePNG(t *testing.T) {
	c := NewFilled(5, 4, RGB(1, 2, 3))
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, 5, b.Dx())
	assert.Equal(t, 4, b.Dy())
}

func TestColor_InRange(t *testing.T) {
	assert.True(t, InRange(0, 128, 255))
	assert.False(t, InRange(-1))
	assert.False(t, InRange(256))
}

func TestColor_Lerp(t *testing.T) {
	c := lerp(RGB(0, 0, 0), RGB(255, 255, 255), 0.5)
	assert.InDelta(t, 127, int(c.R), 1)

	assert.Equal(t, RGB(0, 0, 0), lerp(RGB(0, 0, 0), RGB(255, 255, 255), 0))
	assert.Equal(t, RGB(255, 255, 255), lerp(RGB(0, 0, 0), RGB(255, 255, 255), 1))
}

func TestRGBA_Clamps(t *testing.T) {
	c := RGBA(300, -5, 128, 999)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(128), c.B)
	assert.Equal(t, uint8(255), c.A)
}
