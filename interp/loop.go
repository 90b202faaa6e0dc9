package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
)

// MaxLoopIterations caps loop expansion. It is an unconditional safety
// valve against runaway loops, not a configurable timeout.
const MaxLoopIterations = 1000

// loopEpsilon guards against overshoot from repeated float addition.
const loopEpsilon = 1e-10

// RunLoop handles loop:VAR\START\END\STEP;INSTR[,INSTR...].
//
// The header must produce exactly four fields; start/end/step may contain
// {} expressions resolved under the current bindings. Body instructions
// are classified as in RunInstructions, but the loop runs category-major:
// all iterations of the color group first, then all iterations of the
// region group, then the rest. Each iteration rebinds VAR in a derived
// scope; the parent store is never mutated. Execution happens on a
// private clone of the surface, which is returned even on partial
// failure.
func (p *Processor) RunLoop(param string, surf Surface, lineNum int, exec LineExecutor) (Surface, bool) {
	semi := strings.Index(param, ";")
	if semi < 0 {
		log.Warn().Int("line", lineNum).Str("param", param).
			Msg("loop: missing ';' between header and body")
		return surf, false
	}
	header := strings.TrimSpace(param[:semi])
	body := strings.TrimSpace(param[semi+1:])

	fields := SplitParams(header, p.vars, p.cache)
	if len(fields) != 4 {
		log.Warn().Int("line", lineNum).Int("fields", len(fields)).
			Msg("loop: header needs exactly 4 fields (var, start, end, step)")
		return surf, false
	}
	varName := fields[0]
	if !isAlnum(varName) {
		log.Warn().Int("line", lineNum).Str("var", varName).
			Msg("loop: variable name must be alphanumeric")
		return surf, false
	}
	start, err1 := strconv.ParseFloat(fields[1], 64)
	end, err2 := strconv.ParseFloat(fields[2], 64)
	step, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		log.Warn().Int("line", lineNum).Strs("fields", fields[1:]).
			Msg("loop: start, end and step must be numeric")
		return surf, false
	}
	if step == 0 {
		log.Warn().Int("line", lineNum).Msg("loop: step must not be zero")
		return surf, false
	}
	if (end-start)*step < 0 {
		log.Warn().Int("line", lineNum).Float64("start", start).Float64("end", end).
			Float64("step", step).Msg("loop: step direction inconsistent with range")
		return surf, false
	}

	maxIter := int(math.Ceil(math.Abs((end-start)/step))) + 1
	if maxIter > MaxLoopIterations {
		log.Warn().Int("line", lineNum).Int("requested", maxIter).
			Int("cap", MaxLoopIterations).Msg("loop: iteration count clamped")
		maxIter = MaxLoopIterations
	}

	colors, regions, others := classify(SplitInstructions(body))
	log.Debug().Int("line", lineNum).Str("var", varName).
		Float64("start", start).Float64("end", end).Float64("step", step).
		Int("iterations", maxIter).Msg("loop: starting")

	// Colors before regions before the rest, each group across all
	// iterations, so later groups can reference what earlier groups
	// defined in any iteration.
	working := surf.Clone()
	ok := true
	for _, group := range [][]string{colors, regions, others} {
		var groupOK bool
		working, groupOK = p.runLoopGroup(varName, start, end, step, maxIter, group, working, lineNum, exec)
		ok = ok && groupOK
	}
	return working, ok
}

// runLoopGroup runs every iteration of the loop for one instruction
// group. Iteration failures are recorded but never stop the loop.
func (p *Processor) runLoopGroup(varName string, start, end, step float64, maxIter int, instrs []string, surf Surface, lineNum int, exec LineExecutor) (Surface, bool) {
	if len(instrs) == 0 {
		return surf, true
	}
	ok := true
	current := start
	for count := 0; count < maxIter; count++ {
		if step > 0 && current > end+loopEpsilon {
			break
		}
		if step < 0 && current < end-loopEpsilon {
			break
		}

		// Derived scope: the loop variable never leaks into the
		// parent store.
		scope := make(map[string]expr.Value, len(p.vars)+1)
		for n, v := range p.vars {
			scope[n] = v
		}
		val := expr.Number(current)
		scope[varName] = val

		for _, instr := range instrs {
			bound := BindVariable(instr, varName, val, scope, p.cache)
			var iterOK bool
			surf, iterOK = exec(bound, surf, lineNum)
			if !iterOK {
				log.Warn().Int("line", lineNum).Str("var", varName).
					Float64("value", current).Str("instr", bound).
					Msg("loop: instruction failed")
				ok = false
			}
		}
		current += step
	}
	return surf, ok
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
			return false
		}
	}
	return true
}
