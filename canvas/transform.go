package canvas

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate rotates the region's bounding-box content by angle degrees
// around the box center, resampling bilinearly. The box itself stays
// put; content rotated outside it is clipped.
func (c *Canvas) Rotate(r *Region, angle float64) {
	src := c.extract(r)
	rad := angle * math.Pi / 180
	cx := float64(r.Width()) / 2
	cy := float64(r.Height()) / 2
	cos, sin := math.Cos(rad), math.Sin(rad)
	// rotate about the center: translate, rotate, translate back
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	c.applyAffine(r, src, m)
}

// Scale scales the region's content about the box center, with
// independent horizontal and vertical factors. Factors below 1 shrink,
// above 1 grow; content is clipped to the box.
func (c *Canvas) Scale(r *Region, sx, sy float64) {
	if sx <= 0 || sy <= 0 {
		return
	}
	src := c.extract(r)
	cx := float64(r.Width()) / 2
	cy := float64(r.Height()) / 2
	m := f64.Aff3{
		sx, 0, cx - sx*cx,
		0, sy, cy - sy*cy,
	}
	c.applyAffine(r, src, m)
}

// Translate shifts the region's content by (dx, dy) pixels inside the
// bounding box.
func (c *Canvas) Translate(r *Region, dx, dy int) {
	src := c.extract(r)
	m := f64.Aff3{
		1, 0, float64(dx),
		0, 1, float64(dy),
	}
	c.applyAffine(r, src, m)
}

// FlipH mirrors the region's content horizontally.
func (c *Canvas) FlipH(r *Region) {
	src := c.extract(r)
	w, h := r.Width(), r.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.setInBox(r, x, y, nrgbaAt(src, w-1-x, y))
		}
	}
}

// FlipV mirrors the region's content vertically.
func (c *Canvas) FlipV(r *Region) {
	src := c.extract(r)
	w, h := r.Width(), r.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.setInBox(r, x, y, nrgbaAt(src, x, h-1-y))
		}
	}
}

// extract copies the region's bounding-box pixels into a standalone
// image, transparent where the box hangs off the canvas.
func (c *Canvas) extract(r *Region) *image.NRGBA {
	w, h := r.Width(), r.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	cw, ch := c.Size()
	for y := 0; y < h; y++ {
		cy := r.Y1 + y
		if cy < 0 || cy >= ch {
			continue
		}
		for x := 0; x < w; x++ {
			cx := r.X1 + x
			if cx < 0 || cx >= cw {
				continue
			}
			col := c.At(cx, cy)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = col.R
			out.Pix[i+1] = col.G
			out.Pix[i+2] = col.B
			out.Pix[i+3] = col.A
		}
	}
	return out
}

// applyAffine resamples src through the affine matrix into a scratch
// image and writes the result back into the region's box.
func (c *Canvas) applyAffine(r *Region, src *image.NRGBA, m f64.Aff3) {
	w, h := r.Width(), r.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.setInBox(r, x, y, nrgbaAt(dst, x, y))
		}
	}
}

func (c *Canvas) setInBox(r *Region, rx, ry int, col Color) {
	cx, cy := r.X1+rx, r.Y1+ry
	w, h := c.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	c.Set(cx, cy, col)
}

func nrgbaAt(img *image.NRGBA, x, y int) Color {
	i := img.PixOffset(x, y)
	return Color{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}
