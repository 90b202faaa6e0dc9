package canvas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidShapes are the predefined region shapes.
var ValidShapes = []string{
	"rect", "ellipse", "triangle", "diamond", "pentagon",
	"hexagon", "star", "cross", "arrow",
}

// Region is a named drawable area: a bounding box plus a boolean mask
// selecting which pixels inside the box belong to the shape.
type Region struct {
	X1, Y1, X2, Y2 int
	Shape          string
	Points         [][2]int // custom polygon vertices, region-local

	mask []bool // row-major, Height()×Width()
}

// Width returns the bounding-box width.
func (r *Region) Width() int { return r.X2 - r.X1 + 1 }

// Height returns the bounding-box height.
func (r *Region) Height() int { return r.Y2 - r.Y1 + 1 }

// Masked reports whether the region-local pixel (x, y) is inside the
// shape.
func (r *Region) Masked(x, y int) bool {
	if x < 0 || y < 0 || x >= r.Width() || y >= r.Height() {
		return false
	}
	return r.mask[y*r.Width()+x]
}

// NewRegion builds a region from corner coordinates and a shape name or
// custom polygon spec ("x1|y1-x2|y2-..."). Corners are reordered so
// x1<=x2 and y1<=y2; an unknown shape name falls back to rect.
func NewRegion(x1, y1, x2, y2 int, shape string) (*Region, error) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	r := &Region{X1: x1, Y1: y1, X2: x2, Y2: y2, Shape: strings.ToLower(shape)}
	if r.Shape == "" {
		r.Shape = "rect"
	}

	if strings.Contains(r.Shape, "-") && strings.Contains(r.Shape, "|") {
		pts, err := ParseCustomPoints(r.Shape, r.Width(), r.Height())
		if err != nil {
			return nil, err
		}
		if len(pts) < 3 {
			return nil, fmt.Errorf("custom shape needs at least 3 points, got %d", len(pts))
		}
		r.Shape = "custom"
		r.Points = pts
	} else if !isValidShape(r.Shape) {
		r.Shape = "rect"
	}

	r.mask = buildMask(r.Shape, r.Width(), r.Height(), r.Points)
	return r, nil
}

func isValidShape(s string) bool {
	for _, v := range ValidShapes {
		if s == v {
			return true
		}
	}
	return false
}

// ParseCustomPoints parses "x1|y1-x2|y2-..." polygon vertices. A
// coordinate pair in [0,1] written with a decimal point is relative to
// the region size; anything else is an absolute region-local pixel.
// Unparseable pairs are skipped.
func ParseCustomPoints(spec string, w, h int) ([][2]int, error) {
	var pts [][2]int
	for _, pair := range strings.Split(spec, "-") {
		if !strings.Contains(pair, "|") {
			continue
		}
		xs, ys, _ := strings.Cut(pair, "|")
		x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if errX != nil || errY != nil {
			continue
		}
		relative := x >= 0 && x <= 1 && y >= 0 && y <= 1 &&
			(strings.Contains(xs, ".") || strings.Contains(ys, "."))
		if relative {
			pts = append(pts, [2]int{int(x * float64(w)), int(y * float64(h))})
		} else {
			pts = append(pts, [2]int{int(x), int(y)})
		}
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no valid points in %q", spec)
	}
	return pts, nil
}

func buildMask(shape string, w, h int, custom [][2]int) []bool {
	mask := make([]bool, w*h)
	switch shape {
	case "rect":
		for i := range mask {
			mask[i] = true
		}
	case "ellipse":
		cx, cy := float64(w)/2, float64(h)/2
		rx, ry := float64(w)/2, float64(h)/2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := (float64(x) - cx) / rx
				dy := (float64(y) - cy) / ry
				mask[y*w+x] = dx*dx+dy*dy <= 1
			}
		}
	case "triangle":
		fillPolygon(mask, w, h, [][2]int{{w / 2, 0}, {0, h - 1}, {w - 1, h - 1}})
	case "diamond":
		fillPolygon(mask, w, h, [][2]int{{w / 2, 0}, {w - 1, h / 2}, {w / 2, h - 1}, {0, h / 2}})
	case "pentagon":
		fillPolygon(mask, w, h, regularPolygon(w, h, 5, -math.Pi/2))
	case "hexagon":
		fillPolygon(mask, w, h, regularPolygon(w, h, 6, 0))
	case "star":
		fillPolygon(mask, w, h, starPolygon(w, h))
	case "cross":
		arm := minInt(w, h) / 3
		cx, cy := w/2, h/2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				horiz := y >= cy-arm/2 && y <= cy+arm/2
				vert := x >= cx-arm/2 && x <= cx+arm/2
				mask[y*w+x] = horiz || vert
			}
		}
	case "arrow":
		cy := h / 2
		headStart := w * 2 / 3
		shaft := h / 4
		headHalf := h / 2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if x < headStart {
					mask[y*w+x] = y >= cy-shaft && y <= cy+shaft
				} else {
					span := float64(headHalf) * (1 - float64(x-headStart)/float64(w-headStart))
					mask[y*w+x] = math.Abs(float64(y-cy)) <= span
				}
			}
		}
	case "custom":
		fillPolygon(mask, w, h, custom)
	default:
		for i := range mask {
			mask[i] = true
		}
	}
	return mask
}

func regularPolygon(w, h, n int, phase float64) [][2]int {
	cx, cy := w/2, h/2
	radius := float64(minInt(cx, cy))
	pts := make([][2]int, n)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + phase
		pts[i] = [2]int{
			cx + int(radius*math.Cos(angle)),
			cy + int(radius*math.Sin(angle)),
		}
	}
	return pts
}

func starPolygon(w, h int) [][2]int {
	cx, cy := w/2, h/2
	outer := float64(minInt(cx, cy))
	inner := outer * 0.4
	pts := make([][2]int, 10)
	for i := 0; i < 10; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := 2*math.Pi*float64(i)/10 - math.Pi/2
		pts[i] = [2]int{
			cx + int(radius*math.Cos(angle)),
			cy + int(radius*math.Sin(angle)),
		}
	}
	return pts
}

func fillPolygon(mask []bool, w, h int, pts [][2]int) {
	if len(pts) < 3 {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pointInPolygon(float64(x), float64(y), pts) {
				mask[y*w+x] = true
			}
		}
	}
}

// pointInPolygon implements the ray-casting test.
func pointInPolygon(x, y float64, pts [][2]int) bool {
	inside := false
	n := len(pts)
	p1x, p1y := float64(pts[0][0]), float64(pts[0][1])
	for i := 1; i <= n; i++ {
		p2x, p2y := float64(pts[i%n][0]), float64(pts[i%n][1])
		if y > math.Min(p1y, p2y) && y <= math.Max(p1y, p2y) && x <= math.Max(p1x, p2x) {
			var xcross float64
			if p1y != p2y {
				xcross = (y-p1y)*(p2x-p1x)/(p2y-p1y) + p1x
			}
			if p1x == p2x || x <= xcross {
				inside = !inside
			}
		}
		p1x, p1y = p2x, p2y
	}
	return inside
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
