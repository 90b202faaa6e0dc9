package interp

import (
	"strings"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
	"github.com/chsjkfqwjk/pixel-image-generator/scanner"
)

// SplitInstructions splits comma-separated instruction text into trimmed,
// non-empty instructions. Commas inside quotes or {} spans do not split.
func SplitInstructions(text string) []string {
	var out []string
	for _, piece := range scanner.Split(text, ',') {
		if t := strings.TrimSpace(piece); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitParams splits backslash-delimited parameter text. Backslashes
// inside quotes or {} spans are literal. Interior empty parameters are
// preserved; a trailing empty one is dropped. Any {} span left in a
// parameter is then resolved: ternary expressions through the ternary
// evaluator, everything else through the cached expression evaluator,
// with failed spans kept verbatim.
func SplitParams(text string, vars map[string]expr.Value, cache *expr.Cache) []string {
	pieces := scanner.Split(text, '\\')
	params := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		p := strings.TrimSpace(piece)
		if p == "" && i == len(pieces)-1 {
			continue
		}
		params = append(params, p)
	}
	for i, p := range params {
		if strings.Contains(p, "{") && strings.Contains(p, "}") {
			params[i] = resolveSpans(p, vars, cache)
		}
	}
	return params
}

// resolveSpans rewrites every top-level {} span in param.
func resolveSpans(param string, vars map[string]expr.Value, cache *expr.Cache) string {
	spans := scanner.Spans(param)
	if len(spans) == 0 {
		return param
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(param[last:span[0]])
		last = span[1]

		inner := param[span[0]+1 : span[1]-1]
		if strings.Contains(inner, "?") && strings.Contains(inner, ":") {
			b.WriteString(EvaluateTernary(inner, vars, cache))
			continue
		}
		if v, err := cache.Evaluate(inner, vars); err == nil {
			b.WriteString(v.Text())
		} else {
			b.WriteString(param[span[0]:span[1]])
		}
	}
	b.WriteString(param[last:])
	return b.String()
}
