package interp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
)

// condAllowed enumerates everything a condition may contain: numbers,
// comparison/logical/arithmetic operators, parentheses, whitespace and
// identifiers. Multi-byte operators come before their prefixes so the
// alternation matches them whole.
var condAllowed = regexp.MustCompile(
	`\d+\.\d+|\d+|==|!=|>=|<=|>|<|\+|-|\*|/|%|\(|\)|\s+|[a-zA-Z_][a-zA-Z0-9_]*`)

var whitespace = regexp.MustCompile(`\s+`)

// sanitizeCondition rebuilds cond from allow-listed tokens only. A
// mismatch with the original text (ignoring whitespace) means something
// was dropped; that is logged as a rejection and processing continues
// with the sanitized remainder.
func sanitizeCondition(cond string) string {
	tokens := condAllowed.FindAllString(cond, -1)
	safe := strings.Join(tokens, "")
	if whitespace.ReplaceAllString(cond, "") != whitespace.ReplaceAllString(safe, "") {
		log.Warn().Str("cond", cond).Str("sanitized", safe).
			Msg("condition contained disallowed tokens")
	}
	return strings.TrimSpace(safe)
}

// EvaluateCondition evaluates a boolean condition under ctx. Every bound
// name is substituted textually (whole tokens only) before parsing, so
// string-valued variables compare by spelling. Any failure yields false.
func EvaluateCondition(cond string, ctx map[string]expr.Value) bool {
	names := make([]string, 0, len(ctx))
	for name := range ctx {
		names = append(names, name)
	}
	sort.Strings(names)
	sub := cond
	for _, name := range names {
		sub = replaceWholeToken(sub, name, ctx[name].Text())
	}

	safe := sanitizeCondition(sub)
	v, err := expr.Evaluator{Bareword: true}.Evaluate(safe, nil)
	if err != nil {
		log.Warn().Str("cond", cond).Err(err).Msg("condition evaluation failed")
		return false
	}
	if !v.IsNumber() {
		// A condition must reduce to a comparison or numeric truth
		// value; a leftover bare word is an unbound name.
		log.Warn().Str("cond", cond).Str("value", v.Text()).
			Msg("condition did not reduce to a boolean")
		return false
	}
	return v.Truthy()
}
