package canvas

import "math"

// GradientKind selects the gradient geometry.
type GradientKind int

const (
	// GradientLinear interpolates along the projection onto the
	// p1->p2 axis.
	GradientLinear GradientKind = iota
	// GradientRadial interpolates by distance from p1, reaching the
	// end color at |p2-p1|.
	GradientRadial
)

// FillGradient paints the region's masked pixels with a color ramp from
// c1 at (x1, y1) to c2 at (x2, y2). Coordinates are canvas-absolute.
func (c *Canvas) FillGradient(r *Region, c1, c2 Color, kind GradientKind, x1, y1, x2, y2 int) int {
	painted := 0
	w, h := c.Size()
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)
	for ry := 0; ry < r.Height(); ry++ {
		cy := r.Y1 + ry
		if cy < 0 || cy >= h {
			continue
		}
		for rx := 0; rx < r.Width(); rx++ {
			cx := r.X1 + rx
			if cx < 0 || cx >= w {
				continue
			}
			if !r.Masked(rx, ry) {
				continue
			}
			var t float64
			if length > 0 {
				px := float64(cx - x1)
				py := float64(cy - y1)
				if kind == GradientRadial {
					t = math.Hypot(px, py) / length
				} else {
					t = (px*dx + py*dy) / (length * length)
				}
			}
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			col := lerp(c1, c2, t)
			if col.A == 255 {
				c.Set(cx, cy, col)
			} else {
				c.Blend(cx, cy, col)
			}
			painted++
		}
	}
	return painted
}
