package canvas

import (
	"math"
	"math/rand"
)

// PointPattern selects how points are scattered inside a region.
type PointPattern int

const (
	// PointsRandom scatters points uniformly at random.
	PointsRandom PointPattern = iota
	// PointsGrid places points on a regular lattice.
	PointsGrid
	// PointsNoise places points on a grid jittered by random offsets.
	PointsNoise
)

// ParsePointPattern maps a pattern name to its PointPattern; unknown
// names scatter at random.
func ParsePointPattern(name string) PointPattern {
	switch name {
	case "grid":
		return PointsGrid
	case "noise":
		return PointsNoise
	}
	return PointsRandom
}

// ScatterPoints paints single-pixel points inside the region's mask.
// Density is the fraction of masked pixels to cover, clamped to [0, 1].
// param tunes the pattern: grid spacing for PointsGrid, jitter radius
// for PointsNoise; zero picks a value from the density. The caller
// supplies the random source so runs can be reproduced.
func (c *Canvas) ScatterPoints(r *Region, col Color, density float64, pattern PointPattern, param float64, rng *rand.Rand) int {
	if density < 0 {
		density = 0
	} else if density > 1 {
		density = 1
	}
	masked := 0
	for ry := 0; ry < r.Height(); ry++ {
		for rx := 0; rx < r.Width(); rx++ {
			if r.Masked(rx, ry) {
				masked++
			}
		}
	}
	target := int(float64(masked) * density)
	if target == 0 {
		return 0
	}

	switch pattern {
	case PointsGrid:
		return c.gridPoints(r, col, target, param, 0, rng)
	case PointsNoise:
		jitter := param
		if jitter <= 0 {
			jitter = math.Max(1, math.Sqrt(float64(r.Width()*r.Height())/float64(target))/2)
		}
		return c.gridPoints(r, col, target, 0, jitter, rng)
	}
	return c.randomPoints(r, col, target, rng)
}

func (c *Canvas) randomPoints(r *Region, col Color, target int, rng *rand.Rand) int {
	painted := 0
	attempts := target * 4
	for i := 0; i < attempts && painted < target; i++ {
		rx := rng.Intn(r.Width())
		ry := rng.Intn(r.Height())
		if c.paintPoint(r, rx, ry, col) {
			painted++
		}
	}
	return painted
}

func (c *Canvas) gridPoints(r *Region, col Color, target int, spacing, jitter float64, rng *rand.Rand) int {
	if spacing <= 0 {
		spacing = math.Sqrt(float64(r.Width()*r.Height()) / float64(target))
	}
	if spacing < 1 {
		spacing = 1
	}
	painted := 0
	for fy := spacing / 2; fy < float64(r.Height()); fy += spacing {
		for fx := spacing / 2; fx < float64(r.Width()); fx += spacing {
			rx, ry := int(fx), int(fy)
			if jitter > 0 {
				rx += int((rng.Float64()*2 - 1) * jitter)
				ry += int((rng.Float64()*2 - 1) * jitter)
			}
			if c.paintPoint(r, rx, ry, col) {
				painted++
			}
		}
	}
	return painted
}

func (c *Canvas) paintPoint(r *Region, rx, ry int, col Color) bool {
	if !r.Masked(rx, ry) {
		return false
	}
	cx, cy := r.X1+rx, r.Y1+ry
	w, h := c.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return false
	}
	if col.A == 255 {
		c.Set(cx, cy, col)
	} else {
		c.Blend(cx, cy, col)
	}
	return true
}
