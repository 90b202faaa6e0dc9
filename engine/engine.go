// Package engine drives file processing: it reads line-oriented image
// descriptions, routes control lines (if, loop) through the interpreter
// and leaf instructions to the drawing command handlers, and writes the
// finished canvas out as PNG.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chsjkfqwjk/pixel-image-generator/canvas"
	"github.com/chsjkfqwjk/pixel-image-generator/interp"
)

// surface adapts *canvas.Canvas to the interpreter's Surface interface.
type surface struct {
	*canvas.Canvas
}

func (s surface) Clone() interp.Surface { return surface{s.Copy()} }

// Stats accumulates per-file processing counters.
type Stats struct {
	Total    int
	Valid    int
	Success  int
	Failed   int
	Advanced int
	Failures []Failure
}

// Failure records one instruction that could not be executed.
type Failure struct {
	Line   int
	Text   string
	Reason string
}

// Engine processes description files. One Engine can process many files
// in sequence; state is reset between files.
type Engine struct {
	proc *interp.Processor
	ctx  *canvas.Context
	rng  *rand.Rand
	log  zerolog.Logger

	stats      Stats
	configured bool
	handlers   map[string]handler
}

type handler func(e *Engine, params []string, surf surface, lineNum int) (surface, bool)

// New returns an Engine seeded from the current time.
func New() *Engine {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an Engine with a fixed random seed so point
// scattering is reproducible.
func NewSeeded(seed int64) *Engine {
	e := &Engine{
		proc: interp.NewProcessor(),
		ctx:  canvas.NewContext(),
		rng:  rand.New(rand.NewSource(seed)),
		log:  log.With().Str("component", "engine").Logger(),
	}
	e.handlers = map[string]handler{
		"config":    (*Engine).handleConfig,
		"color":     (*Engine).handleColor,
		"region":    (*Engine).handleRegion,
		"fill":      (*Engine).handleFill,
		"gradient":  (*Engine).handleGradient,
		"path":      (*Engine).handlePath,
		"points":    (*Engine).handlePoints,
		"transform": (*Engine).handleTransform,
		"var":       (*Engine).handleVar,
	}
	return e
}

// Stats returns the counters from the last processed file.
func (e *Engine) Stats() Stats { return e.stats }

// Processor exposes the interpreter, mainly for tests.
func (e *Engine) Processor() *interp.Processor { return e.proc }

// Context exposes the drawing context, mainly for tests.
func (e *Engine) Context() *canvas.Context { return e.ctx }

// ProcessFile processes one description file and returns the finished
// canvas.
func (e *Engine) ProcessFile(path string) (*canvas.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return e.Process(f, filepath.Base(path))
}

// ProcessSource processes description text held in memory.
func (e *Engine) ProcessSource(src, name string) (*canvas.Canvas, error) {
	return e.Process(strings.NewReader(src), name)
}

// Process reads description lines from r and executes them in order.
// Blank lines and comment lines are skipped; inline comments are
// stripped outside quotes. Interpreter state, drawing context and stats
// reset at the start of every call.
func (e *Engine) Process(r io.Reader, name string) (*canvas.Canvas, error) {
	e.proc.Reset()
	e.ctx.Reset()
	e.stats = Stats{}
	e.configured = false

	surf := surface{canvas.New(1, 1)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		e.stats.Total++
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}
		e.stats.Valid++

		out, ok := e.dispatch(line, surf, lineNum)
		surf = out
		if ok {
			e.stats.Success++
		} else {
			e.stats.Failed++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if !e.configured {
		return nil, fmt.Errorf("%s: no config instruction, canvas was never sized", name)
	}
	e.log.Info().Str("file", name).
		Int("total", e.stats.Total).Int("valid", e.stats.Valid).
		Int("success", e.stats.Success).Int("failed", e.stats.Failed).
		Int("advanced", e.stats.Advanced).
		Msg("file processed")
	return surf.Canvas, nil
}

// dispatch routes one line: control commands go through the
// interpreter, everything else straight to executeLine.
func (e *Engine) dispatch(line string, surf surface, lineNum int) (surface, bool) {
	cmd := commandOf(line)
	switch cmd {
	case "if":
		e.stats.Advanced++
		_, param, _ := strings.Cut(line, ":")
		out, ok := e.proc.RunIf(param, surf, lineNum, e.executeLine)
		return out.(surface), ok
	case "loop":
		e.stats.Advanced++
		_, param, _ := strings.Cut(line, ":")
		out, ok := e.proc.RunLoop(param, surf, lineNum, e.executeLine)
		return out.(surface), ok
	}
	out, ok := e.executeLine(line, surf, lineNum)
	return out.(surface), ok
}

// executeLine is the LineExecutor handed to the interpreter. It parses
// one instruction and runs its command handler. Nested if and loop
// instructions re-enter dispatch, so control constructs compose.
func (e *Engine) executeLine(line string, s interp.Surface, lineNum int) (interp.Surface, bool) {
	surf := s.(surface)
	cmd, param, found := strings.Cut(line, ":")
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	if !found || cmd == "" {
		e.fail(lineNum, line, "missing command prefix")
		return surf, false
	}
	if cmd == "if" || cmd == "loop" {
		out, ok := e.dispatch(line, surf, lineNum)
		return out, ok
	}
	h, ok := e.handlers[cmd]
	if !ok {
		e.fail(lineNum, line, fmt.Sprintf("unknown command %q", cmd))
		return surf, false
	}
	params := e.proc.SplitParams(param)
	out, ok := h(e, params, surf, lineNum)
	return out, ok
}

// fail logs an instruction failure and records it in the stats.
func (e *Engine) fail(lineNum int, text, reason string) {
	e.log.Warn().Int("line", lineNum).Str("instr", text).Msg(reason)
	e.stats.Failures = append(e.stats.Failures, Failure{Line: lineNum, Text: text, Reason: reason})
}

// stripComment trims whitespace and removes # comments. A # inside
// quotes is content, not a comment.
func stripComment(line string) string {
	inQuote := false
	var quoteCh byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuote && ch == quoteCh && (i == 0 || line[i-1] != '\\'):
			inQuote = false
		case !inQuote && (ch == '"' || ch == '\''):
			inQuote = true
			quoteCh = ch
		case !inQuote && ch == '#':
			return strings.TrimSpace(line[:i])
		}
	}
	return strings.TrimSpace(line)
}

func commandOf(line string) string {
	cmd, _, _ := strings.Cut(line, ":")
	return strings.ToLower(strings.TrimSpace(cmd))
}
