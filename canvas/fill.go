package canvas

// FillRegion paints every masked pixel of the region with the color,
// clipping to the canvas at paint time. Fully opaque colors are written
// directly, translucent ones are alpha-blended.
func (c *Canvas) FillRegion(r *Region, col Color) int {
	painted := 0
	w, h := c.Size()
	opaque := col.A == 255
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
			if opaque {
				c.Set(cx, cy, col)
			} else {
				c.Blend(cx, cy, col)
			}
			painted++
		}
	}
	return painted
}
