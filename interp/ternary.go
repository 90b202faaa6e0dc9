package interp

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
	"github.com/chsjkfqwjk/pixel-image-generator/scanner"
)

// EvaluateTernary resolves cond?true:false expression text. The ?/:
// pair is matched at brace-nesting level zero only, so ternaries and
// placeholders inside either branch survive the split. Only the selected
// branch is processed further: nested ternaries recurse, {} placeholders
// resolve through the cache, plain text returns as is. Text with no
// top-level ? returns unchanged; a ? without its : is malformed and also
// returns unchanged, with a diagnostic.
func EvaluateTernary(text string, vars map[string]expr.Value, cache *expr.Cache) string {
	q := scanner.IndexTopLevel(text, '?', 0)
	if q < 0 {
		return text
	}
	colon := scanner.IndexTopLevel(text, ':', q+1)
	if colon < 0 {
		log.Warn().Str("expr", text).Msg("ternary missing ':'")
		return text
	}

	cond := strings.TrimSpace(text[:q])
	truePart := strings.TrimSpace(text[q+1 : colon])
	falsePart := strings.TrimSpace(text[colon+1:])

	branch := falsePart
	if EvaluateCondition(cond, vars) {
		branch = truePart
	}

	if strings.Contains(branch, "?") && strings.Contains(branch, ":") {
		return EvaluateTernary(branch, vars, cache)
	}
	if strings.Contains(branch, "{") && strings.Contains(branch, "}") {
		return cache.SubstituteBraces(branch, vars)
	}
	return branch
}
