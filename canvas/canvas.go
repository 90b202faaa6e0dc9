// Package canvas implements the rendering backend of the pixel
// description language: the RGBA pixel buffer, the drawing context
// holding named colors and regions, and the drawing operations (fill,
// gradient, path, points, transform).
package canvas

import (
	"image"
	"image/png"
	"io"
)

// Canvas is an RGBA pixel buffer with value-semantics copying. Drawing
// operations mutate it in place; Copy produces an independent buffer for
// speculative execution.
type Canvas struct {
	img  *image.NRGBA
	w, h int
}

// New returns a w×h canvas with all pixels transparent black.
func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

// NewFilled returns a w×h canvas with every pixel set to col.
func NewFilled(w, h int, col Color) *Canvas {
	c := New(w, h)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.set(x, y, col)
		}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) { return c.w, c.h }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.h }

// Image exposes the backing image.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Copy returns an independent deep copy.
func (c *Canvas) Copy() *Canvas {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img, w: c.w, h: c.h}
}

// At returns the pixel at (x, y), or the zero Color out of bounds.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return Color{}
	}
	i := c.img.PixOffset(x, y)
	return Color{R: c.img.Pix[i], G: c.img.Pix[i+1], B: c.img.Pix[i+2], A: c.img.Pix[i+3]}
}

// Set writes col at (x, y). Out-of-bounds writes are dropped.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.set(x, y, col)
}

func (c *Canvas) set(x, y int, col Color) {
	i := c.img.PixOffset(x, y)
	c.img.Pix[i] = col.R
	c.img.Pix[i+1] = col.G
	c.img.Pix[i+2] = col.B
	c.img.Pix[i+3] = col.A
}

// Blend composites col over the pixel at (x, y) using its alpha.
// Fully opaque colors take the Set fast path.
func (c *Canvas) Blend(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if col.A == 255 {
		c.set(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}
	cur := c.At(x, y)
	a := float64(col.A) / 255
	ca := float64(cur.A) / 255
	outA := a + ca*(1-a)
	if outA <= 0 {
		c.set(x, y, Color{})
		return
	}
	blend := func(n, o uint8) uint8 {
		v := (float64(n)*a + float64(o)*ca*(1-a)) / outA
		return clampChannel(int(v + 0.5))
	}
	c.set(x, y, Color{
		R: blend(col.R, cur.R),
		G: blend(col.G, cur.G),
		B: blend(col.B, cur.B),
		A: clampChannel(int(outA*255 + 0.5)),
	})
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
