// Package interp implements the control layer of the pixel description
// language: if/loop processing, comma-separated instruction lists,
// variable substitution and ternary/condition evaluation. It owns the
// variable store and the expression cache for one file-processing run.
//
// The package never touches pixels. Every leaf instruction it produces is
// handed to a host-supplied LineExecutor, and the pixel buffer flows
// through as an opaque Surface.
package interp

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
)

// Surface is the pixel buffer threaded through instruction execution.
// The interpreter never inspects its contents; it only clones it for
// loop working copies and reads its dimensions for condition context.
type Surface interface {
	// Clone returns an independent copy for speculative execution.
	Clone() Surface
	// Size returns the current buffer dimensions in pixels.
	Size() (width, height int)
}

// LineExecutor executes one leaf instruction against a surface and
// returns the (possibly replaced) surface plus a success flag. Callers
// must not assume the input surface is preserved.
type LineExecutor func(line string, surf Surface, lineNum int) (Surface, bool)

// Processor is the entry point for advanced syntax. It owns the global
// variable store and the expression cache; both live for one file run and
// are dropped by Reset.
type Processor struct {
	vars  map[string]expr.Value
	cache *expr.Cache
}

// NewProcessor returns a Processor with an empty variable store.
func NewProcessor() *Processor {
	return &Processor{
		vars:  make(map[string]expr.Value),
		cache: expr.NewCache(),
	}
}

// SetVar binds a global variable. var: instructions and the host both go
// through here so the store the core reads is the store the host writes.
func (p *Processor) SetVar(name string, v expr.Value) {
	p.vars[name] = v
}

// Var looks up a global variable.
func (p *Processor) Var(name string) (expr.Value, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// Snapshot returns a copy of the current variable bindings.
func (p *Processor) Snapshot() map[string]expr.Value {
	out := make(map[string]expr.Value, len(p.vars))
	for n, v := range p.vars {
		out[n] = v
	}
	return out
}

// Cache exposes the shared expression cache.
func (p *Processor) Cache() *expr.Cache { return p.cache }

// Reset clears the variable store and the expression cache.
func (p *Processor) Reset() {
	p.vars = make(map[string]expr.Value)
	p.cache.Clear()
}

// SplitParams splits backslash-delimited parameter text under the current
// variable bindings, resolving {} placeholder spans.
func (p *Processor) SplitParams(text string) []string {
	return SplitParams(text, p.vars, p.cache)
}

// RunIf handles if:COND;INSTR[,INSTR...]. The condition context is the
// surface dimensions (width, height) plus all global variables. A false
// condition is a successful no-op, not a failure.
func (p *Processor) RunIf(param string, surf Surface, lineNum int, exec LineExecutor) (Surface, bool) {
	semi := strings.Index(param, ";")
	if semi < 0 {
		log.Warn().Int("line", lineNum).Str("param", param).
			Msg("if: missing ';' between condition and instruction")
		return surf, false
	}
	cond := strings.TrimSpace(param[:semi])
	instr := strings.TrimSpace(param[semi+1:])

	w, h := surf.Size()
	ctx := make(map[string]expr.Value, len(p.vars)+2)
	ctx["width"] = expr.Number(float64(w))
	ctx["height"] = expr.Number(float64(h))
	for n, v := range p.vars {
		ctx[n] = v
	}

	if !EvaluateCondition(cond, ctx) {
		log.Debug().Int("line", lineNum).Str("cond", cond).Msg("condition false, skipping")
		return surf, true
	}

	if strings.Contains(instr, ",") && strings.Contains(instr, ":") {
		return p.RunInstructions(instr, surf, lineNum, exec)
	}
	if strings.Contains(instr, ":") {
		return exec(instr, surf, lineNum)
	}
	log.Warn().Int("line", lineNum).Str("instr", instr).Msg("if: malformed instruction")
	return surf, false
}
