package canvas

import "math"

// PathStyle selects how a polyline is stroked.
type PathStyle int

const (
	// PathSolid strokes every point along the line.
	PathSolid PathStyle = iota
	// PathDashed strokes in alternating on/off runs.
	PathDashed
	// PathWave offsets the line perpendicular to its direction with a
	// sine ripple.
	PathWave
)

// ParsePathStyle maps a style name to its PathStyle; unknown names
// stroke solid.
func ParsePathStyle(name string) PathStyle {
	switch name {
	case "dashed":
		return PathDashed
	case "wave":
		return PathWave
	}
	return PathSolid
}

const (
	dashRun       = 6
	waveAmplitude = 3.0
	waveLength    = 20.0
)

// DrawPath strokes a polyline through the given canvas-absolute points
// with the requested thickness and style. Returns the number of pixels
// touched.
func (c *Canvas) DrawPath(pts [][2]int, col Color, thickness int, style PathStyle) int {
	if len(pts) < 2 {
		return 0
	}
	if thickness < 1 {
		thickness = 1
	}
	painted := 0
	for i := 0; i+1 < len(pts); i++ {
		painted += c.drawSegment(pts[i], pts[i+1], col, thickness, style)
	}
	return painted
}

// drawSegment walks the segment with Bresenham's algorithm, stamping a
// thickness×thickness square at each step.
func (c *Canvas) drawSegment(p0, p1 [2]int, col Color, thickness int, style PathStyle) int {
	x0, y0 := p0[0], p0[1]
	x1, y1 := p1[0], p1[1]
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	segLen := math.Hypot(float64(x1-x0), float64(y1-y0))
	var nx, ny float64
	if segLen > 0 {
		nx = -float64(y1-y0) / segLen
		ny = float64(x1-x0) / segLen
	}

	painted := 0
	errTerm := dx - dy
	step := 0
	x, y := x0, y0
	for {
		draw := true
		px, py := x, y
		switch style {
		case PathDashed:
			draw = (step/dashRun)%2 == 0
		case PathWave:
			offset := waveAmplitude * math.Sin(2*math.Pi*float64(step)/waveLength)
			px = x + int(math.Round(offset*nx))
			py = y + int(math.Round(offset*ny))
		}
		if draw {
			painted += c.stamp(px, py, col, thickness)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x += sx
		}
		if e2 < dx {
			errTerm += dx
			y += sy
		}
		step++
	}
	return painted
}

func (c *Canvas) stamp(cx, cy int, col Color, thickness int) int {
	half := thickness / 2
	painted := 0
	w, h := c.Size()
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			if col.A == 255 {
				c.Set(x, y, col)
			} else {
				c.Blend(x, y, col)
			}
			painted++
		}
	}
	return painted
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
