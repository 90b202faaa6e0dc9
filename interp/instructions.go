package interp

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// classify buckets instructions by prefix: color definitions first,
// region definitions second, everything else third. The fixed order lets
// a region reference a color defined later in the same list, and a
// drawing instruction reference both.
func classify(instrs []string) (colors, regions, others []string) {
	for _, instr := range instrs {
		switch {
		case strings.HasPrefix(instr, "color:"):
			colors = append(colors, instr)
		case strings.HasPrefix(instr, "region:"):
			regions = append(regions, instr)
		default:
			others = append(others, instr)
		}
	}
	return colors, regions, others
}

// RunInstructions executes comma-separated instruction text. Elements are
// re-ordered across the whole list (colors, then regions, then others)
// before global variables are substituted and each element is dispatched
// through exec. A malformed element fails without stopping its siblings;
// the overall result is the AND of all element results and the furthest
// progressed surface is always returned.
func (p *Processor) RunInstructions(text string, surf Surface, lineNum int, exec LineExecutor) (Surface, bool) {
	return p.runInstructionList(SplitInstructions(text), surf, lineNum, exec)
}

func (p *Processor) runInstructionList(instrs []string, surf Surface, lineNum int, exec LineExecutor) (Surface, bool) {
	colors, regions, others := classify(instrs)
	ordered := make([]string, 0, len(instrs))
	ordered = append(ordered, colors...)
	ordered = append(ordered, regions...)
	ordered = append(ordered, others...)

	names := make([]string, 0, len(p.vars))
	for name := range p.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	ok := true
	for i, instr := range ordered {
		if !strings.Contains(instr, ":") {
			log.Warn().Int("line", lineNum).Str("instr", instr).
				Msg("instruction missing ':'")
			ok = false
			continue
		}
		for _, name := range names {
			instr = BindVariable(instr, name, p.vars[name], p.vars, p.cache)
		}
		log.Debug().Int("line", lineNum).Int("index", i).Str("instr", instr).
			Msg("dispatching sub-instruction")
		var elemOK bool
		surf, elemOK = exec(instr, surf, lineNum)
		if !elemOK {
			log.Warn().Int("line", lineNum).Str("instr", instr).
				Msg("sub-instruction failed")
			ok = false
		}
	}
	return surf, ok
}
