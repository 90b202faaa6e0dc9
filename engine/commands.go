package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chsjkfqwjk/pixel-image-generator/canvas"
	"github.com/chsjkfqwjk/pixel-image-generator/expr"
)

var identRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// handleConfig sizes the canvas: config:WIDTH\HEIGHT\R\G\B.
func (e *Engine) handleConfig(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 5 {
		e.fail(lineNum, "config", fmt.Sprintf("want 5 params, got %d", len(params)))
		return surf, false
	}
	vals, ok := e.ints(params, lineNum, "config")
	if !ok {
		return surf, false
	}
	w, h := vals[0], vals[1]
	if w < 1 || h < 1 {
		e.fail(lineNum, "config", fmt.Sprintf("invalid canvas size %dx%d", w, h))
		return surf, false
	}
	if !canvas.InRange(vals[2], vals[3], vals[4]) {
		e.fail(lineNum, "config", "background channel out of range")
		return surf, false
	}
	bg := canvas.RGB(vals[2], vals[3], vals[4])
	e.configured = true
	e.log.Debug().Int("width", w).Int("height", h).Msg("canvas configured")
	return surface{canvas.NewFilled(w, h, bg)}, true
}

// handleColor registers a color: color:ID\R\G\B[\A].
func (e *Engine) handleColor(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 4 && len(params) != 5 {
		e.fail(lineNum, "color", fmt.Sprintf("want 4 or 5 params, got %d", len(params)))
		return surf, false
	}
	id := params[0]
	vals, ok := e.ints(params[1:], lineNum, "color")
	if !ok {
		return surf, false
	}
	if !canvas.InRange(vals...) {
		e.fail(lineNum, "color", "channel out of range")
		return surf, false
	}
	a := 255
	if len(vals) == 4 {
		a = vals[3]
	}
	e.ctx.AddColor(id, canvas.RGBA(vals[0], vals[1], vals[2], a))
	return surf, true
}

// handleRegion registers a region: region:ID\X1|Y1\X2|Y2[\SHAPE].
func (e *Engine) handleRegion(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 3 && len(params) != 4 {
		e.fail(lineNum, "region", fmt.Sprintf("want 3 or 4 params, got %d", len(params)))
		return surf, false
	}
	id := params[0]
	x1, y1, ok := e.pair(params[1], lineNum, "region")
	if !ok {
		return surf, false
	}
	x2, y2, ok := e.pair(params[2], lineNum, "region")
	if !ok {
		return surf, false
	}
	shape := "rect"
	if len(params) == 4 {
		shape = params[3]
	}
	// clamp to the canvas before the mask is built
	w, h := surf.Size()
	x1, y1 = clamp(x1, 0, w-1), clamp(y1, 0, h-1)
	x2, y2 = clamp(x2, 0, w-1), clamp(y2, 0, h-1)
	r, err := canvas.NewRegion(x1, y1, x2, y2, shape)
	if err != nil {
		e.fail(lineNum, "region", err.Error())
		return surf, false
	}
	e.ctx.AddRegion(id, r)
	return surf, true
}

// handleFill paints a region: fill:REGION\COLOR.
func (e *Engine) handleFill(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 2 {
		e.fail(lineNum, "fill", fmt.Sprintf("want 2 params, got %d", len(params)))
		return surf, false
	}
	r, col, ok := e.lookupTarget(params[0], params[1], lineNum, "fill")
	if !ok {
		return surf, false
	}
	surf.FillRegion(r, col)
	return surf, true
}

// handleGradient paints a color ramp:
// gradient:REGION\TYPE\X1|Y1\X2|Y2\COLOR1\COLOR2 with TYPE one of
// linear, radial, conical. Conical is rendered as linear.
func (e *Engine) handleGradient(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 6 {
		e.fail(lineNum, "gradient", fmt.Sprintf("want 6 params, got %d", len(params)))
		return surf, false
	}
	r, found := e.ctx.Region(params[0])
	if !found {
		e.fail(lineNum, "gradient", fmt.Sprintf("unknown region %q", params[0]))
		return surf, false
	}
	kind := canvas.GradientLinear
	switch strings.ToLower(params[1]) {
	case "linear", "conical":
	case "radial":
		kind = canvas.GradientRadial
	default:
		e.fail(lineNum, "gradient", fmt.Sprintf("unknown gradient type %q", params[1]))
		return surf, false
	}
	x1, y1, ok := e.pair(params[2], lineNum, "gradient")
	if !ok {
		return surf, false
	}
	x2, y2, ok := e.pair(params[3], lineNum, "gradient")
	if !ok {
		return surf, false
	}
	c1, found := e.ctx.Color(params[4])
	if !found {
		e.fail(lineNum, "gradient", fmt.Sprintf("unknown color %q", params[4]))
		return surf, false
	}
	c2, found := e.ctx.Color(params[5])
	if !found {
		e.fail(lineNum, "gradient", fmt.Sprintf("unknown color %q", params[5]))
		return surf, false
	}
	surf.FillGradient(r, c1, c2, kind, x1, y1, x2, y2)
	return surf, true
}

// handlePath strokes a polyline: path:PTS\COLOR[\THICKNESS[\STYLE]]
// where PTS is x1|y1-x2|y2-... in canvas coordinates.
func (e *Engine) handlePath(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) < 2 || len(params) > 4 {
		e.fail(lineNum, "path", fmt.Sprintf("want 2 to 4 params, got %d", len(params)))
		return surf, false
	}
	w, h := surf.Size()
	pts, err := canvas.ParseCustomPoints(params[0], w, h)
	if err != nil {
		e.fail(lineNum, "path", err.Error())
		return surf, false
	}
	if len(pts) < 2 {
		e.fail(lineNum, "path", "need at least 2 points")
		return surf, false
	}
	col, found := e.ctx.Color(params[1])
	if !found {
		e.fail(lineNum, "path", fmt.Sprintf("unknown color %q", params[1]))
		return surf, false
	}
	thickness := 1
	if len(params) > 2 {
		thickness, err = strconv.Atoi(strings.TrimSpace(params[2]))
		if err != nil || thickness < 1 {
			e.fail(lineNum, "path", fmt.Sprintf("bad thickness %q", params[2]))
			return surf, false
		}
	}
	style := canvas.PathSolid
	if len(params) > 3 {
		style = canvas.ParsePathStyle(strings.ToLower(params[3]))
	}
	surf.DrawPath(pts, col, thickness, style)
	return surf, true
}

// handlePoints scatters points:
// points:REGION\COLOR\PATTERN\DENSITY[\PARAM], with PARAM tuning the
// pattern (grid spacing, noise jitter).
func (e *Engine) handlePoints(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 4 && len(params) != 5 {
		e.fail(lineNum, "points", fmt.Sprintf("want 4 or 5 params, got %d", len(params)))
		return surf, false
	}
	r, col, ok := e.lookupTarget(params[0], params[1], lineNum, "points")
	if !ok {
		return surf, false
	}
	pattern := strings.ToLower(params[2])
	switch pattern {
	case "random", "grid", "noise":
	default:
		e.fail(lineNum, "points", fmt.Sprintf("unknown pattern %q", pattern))
		return surf, false
	}
	density, err := strconv.ParseFloat(strings.TrimSpace(params[3]), 64)
	if err != nil {
		e.fail(lineNum, "points", fmt.Sprintf("bad density %q", params[3]))
		return surf, false
	}
	patternParam := 0.0
	if len(params) == 5 {
		patternParam, err = strconv.ParseFloat(strings.TrimSpace(params[4]), 64)
		if err != nil {
			e.fail(lineNum, "points", fmt.Sprintf("bad pattern parameter %q", params[4]))
			return surf, false
		}
	}
	surf.ScatterPoints(r, col, density, canvas.ParsePointPattern(pattern), patternParam, e.rng)
	return surf, true
}

// handleTransform reshapes a region's content:
// transform:REGION\ACTION\PARAM with actions rotate (degrees),
// scale (factor or SX|SY), translate (DX|DY), flip
// (horizontal|vertical|both).
func (e *Engine) handleTransform(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 3 {
		e.fail(lineNum, "transform", fmt.Sprintf("want 3 params, got %d", len(params)))
		return surf, false
	}
	r, found := e.ctx.Region(params[0])
	if !found {
		e.fail(lineNum, "transform", fmt.Sprintf("unknown region %q", params[0]))
		return surf, false
	}
	action := strings.ToLower(strings.TrimSpace(params[1]))
	arg := strings.TrimSpace(params[2])
	switch action {
	case "rotate":
		angle, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			e.fail(lineNum, "transform", fmt.Sprintf("bad angle %q", arg))
			return surf, false
		}
		surf.Rotate(r, angle)
	case "scale":
		var sx, sy float64
		var err error
		if strings.Contains(arg, "|") {
			xs, ys, _ := strings.Cut(arg, "|")
			sx, err = strconv.ParseFloat(strings.TrimSpace(xs), 64)
			if err == nil {
				sy, err = strconv.ParseFloat(strings.TrimSpace(ys), 64)
			}
		} else {
			sx, err = strconv.ParseFloat(arg, 64)
			sy = sx
		}
		if err != nil || sx <= 0 || sy <= 0 {
			e.fail(lineNum, "transform", fmt.Sprintf("bad scale %q", arg))
			return surf, false
		}
		surf.Scale(r, sx, sy)
	case "translate":
		dx, dy, ok := e.pair(arg, lineNum, "transform")
		if !ok {
			return surf, false
		}
		surf.Translate(r, dx, dy)
	case "flip":
		switch strings.ToLower(arg) {
		case "horizontal":
			surf.FlipH(r)
		case "vertical":
			surf.FlipV(r)
		case "both":
			surf.FlipH(r)
			surf.FlipV(r)
		default:
			e.fail(lineNum, "transform", fmt.Sprintf("bad flip direction %q", arg))
			return surf, false
		}
	default:
		e.fail(lineNum, "transform", fmt.Sprintf("unknown action %q", action))
		return surf, false
	}
	return surf, true
}

// handleVar binds a global variable: var:NAME\VALUE. Numeric values
// become numbers, anything else stays a string.
func (e *Engine) handleVar(params []string, surf surface, lineNum int) (surface, bool) {
	if len(params) != 2 {
		e.fail(lineNum, "var", fmt.Sprintf("want 2 params, got %d", len(params)))
		return surf, false
	}
	name := strings.TrimSpace(params[0])
	if !identRx.MatchString(name) {
		e.fail(lineNum, "var", fmt.Sprintf("invalid variable name %q", name))
		return surf, false
	}
	e.proc.SetVar(name, expr.ParseScalar(strings.TrimSpace(params[1])))
	return surf, true
}

// lookupTarget resolves the region/color pair most handlers start with.
func (e *Engine) lookupTarget(regionID, colorID string, lineNum int, cmd string) (*canvas.Region, canvas.Color, bool) {
	r, found := e.ctx.Region(regionID)
	if !found {
		e.fail(lineNum, cmd, fmt.Sprintf("unknown region %q", regionID))
		return nil, canvas.Color{}, false
	}
	col, found := e.ctx.Color(colorID)
	if !found {
		e.fail(lineNum, cmd, fmt.Sprintf("unknown color %q", colorID))
		return nil, canvas.Color{}, false
	}
	return r, col, true
}

// pair parses an "X|Y" coordinate pair. Float text is truncated toward
// zero, matching int() conversion elsewhere.
func (e *Engine) pair(s string, lineNum int, cmd string) (int, int, bool) {
	xs, ys, found := strings.Cut(s, "|")
	if !found {
		e.fail(lineNum, cmd, fmt.Sprintf("bad coordinate pair %q, want X|Y", s))
		return 0, 0, false
	}
	x, errX := parseCoord(xs)
	y, errY := parseCoord(ys)
	if errX != nil || errY != nil {
		e.fail(lineNum, cmd, fmt.Sprintf("bad coordinate pair %q", s))
		return 0, 0, false
	}
	return x, y, true
}

func parseCoord(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ints parses each param as an integer, failing the instruction on the
// first bad value.
func (e *Engine) ints(params []string, lineNum int, cmd string) ([]int, bool) {
	out := make([]int, len(params))
	for i, p := range params {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if ferr != nil {
				e.fail(lineNum, cmd, fmt.Sprintf("bad integer %q", p))
				return nil, false
			}
			v = int(f)
		}
		out[i] = v
	}
	return out, true
}
