// Package expr evaluates the restricted arithmetic/relational expression
// language used inside {...} placeholders and if/loop conditions. The
// grammar is closed: numeric literals, identifiers resolved from a caller
// supplied variable map, a fixed function and constant table, arithmetic,
// comparison and logical operators. There is no call syntax beyond the
// function table and no attribute access, so evaluation cannot reach any
// host capability regardless of input.
package expr

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Sentinel errors classifying evaluation failures. Callers recover from
// all of them; nothing here is fatal.
var (
	// ErrSyntax marks text the grammar cannot parse.
	ErrSyntax = errors.New("expression syntax error")
	// ErrEvaluation marks expressions that parse but cannot be computed
	// (unknown identifier, division by zero, bad operand types).
	ErrEvaluation = errors.New("expression evaluation error")
	// ErrSecurity marks constructs the grammar deliberately excludes:
	// attribute access, dunder names, host-access identifiers.
	ErrSecurity = errors.New("expression rejected")
)

// Evaluator evaluates expression text against a variable map.
//
// The zero value is the strict evaluator used for {...} placeholders.
// Bareword changes how unbound identifiers resolve and exists for
// condition evaluation, where `red == red` must fall back to string
// equality after variable substitution.
type Evaluator struct {
	// Bareword resolves identifiers with no binding to their own
	// spelling as a string value instead of failing.
	Bareword bool
}

// Evaluate parses and evaluates text. On any failure it returns the
// neutral zero value together with the classified error; it never panics
// and never executes anything outside the closed grammar.
func (e Evaluator) Evaluate(text string, vars map[string]Value) (Value, error) {
	toks, err := lex(text)
	if err != nil {
		if errors.Is(err, ErrSecurity) {
			log.Warn().Str("expr", text).Err(err).Msg("rejected unsafe expression")
		}
		return Number(0), err
	}
	p := &parser{toks: toks, vars: vars, bareword: e.Bareword}
	v, err := p.parseOr()
	if err != nil {
		return Number(0), err
	}
	if p.peek().kind != tokEOF {
		return Number(0), fmt.Errorf("%w: trailing input at %d", ErrSyntax, p.peek().pos)
	}
	return v, nil
}

// Evaluate evaluates text with the strict evaluator.
func Evaluate(text string, vars map[string]Value) (Value, error) {
	return Evaluator{}.Evaluate(text, vars)
}
