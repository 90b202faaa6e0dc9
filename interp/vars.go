package interp

import (
	"strings"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
	"github.com/chsjkfqwjk/pixel-image-generator/scanner"
)

// BindVariable rewrites every occurrence of a bound name in instruction
// text with the variable's value, in three passes:
//
//  1. bare whole-token occurrences of name become the value text;
//  2. each top-level {expr} span has name replaced inside it, then the
//     span is resolved: ternary expressions go through EvaluateTernary
//     with a context extended by {name: value}, anything else through the
//     cached evaluator; spans that fail to evaluate stay untouched;
//  3. the _{expr} naming idiom gets one more expression-only attempt, so
//     per-iteration identifiers like r_{i}_{j} resolve group by group.
//
// Integral float values render without a decimal point throughout.
func BindVariable(instr, name string, val expr.Value, vars map[string]expr.Value, cache *expr.Cache) string {
	valText := val.Text()
	instr = replaceWholeToken(instr, name, valText)

	ctx := make(map[string]expr.Value, len(vars)+1)
	for n, v := range vars {
		ctx[n] = v
	}
	ctx[name] = val

	instr = resolveBoundSpans(instr, name, valText, ctx, cache, false)
	if strings.Contains(instr, "_{") {
		instr = resolveBoundSpans(instr, name, valText, ctx, cache, true)
	}
	return instr
}

// resolveBoundSpans rewrites top-level {} spans after substituting the
// bound name inside each. With underscoreOnly set, only spans directly
// preceded by '_' are touched and ternary handling is skipped.
func resolveBoundSpans(instr, name, valText string, ctx map[string]expr.Value, cache *expr.Cache, underscoreOnly bool) string {
	spans := scanner.Spans(instr)
	if len(spans) == 0 {
		return instr
	}
	var b strings.Builder
	last := 0
	for _, span := range spans {
		if underscoreOnly && (span[0] == 0 || instr[span[0]-1] != '_') {
			continue
		}
		b.WriteString(instr[last:span[0]])
		last = span[1]

		inner := replaceWholeToken(instr[span[0]+1:span[1]-1], name, valText)
		if !underscoreOnly && strings.Contains(inner, "?") && strings.Contains(inner, ":") {
			b.WriteString(EvaluateTernary(inner, ctx, cache))
			continue
		}
		if v, err := cache.Evaluate(inner, ctx); err == nil {
			b.WriteString(v.Text())
		} else {
			b.WriteString(instr[span[0]:span[1]])
		}
	}
	b.WriteString(instr[last:])
	return b.String()
}

// replaceWholeToken substitutes repl for every occurrence of name in s
// that is not embedded in a longer identifier.
func replaceWholeToken(s, name, repl string) string {
	if name == "" || !strings.Contains(s, name) {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		j := strings.Index(s[i:], name)
		if j < 0 {
			break
		}
		j += i
		end := j + len(name)
		startOK := j == 0 || !isWordByte(s[j-1])
		endOK := end == len(s) || !isWordByte(s[end])
		if startOK && endOK {
			b.WriteString(s[i:j])
			b.WriteString(repl)
			i = end
		} else {
			b.WriteString(s[i : j+1])
			i = j + 1
		}
	}
	b.WriteString(s[i:])
	return b.String()
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
