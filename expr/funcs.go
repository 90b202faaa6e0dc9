package expr

import (
	"fmt"
	"math"
)

// constants resolvable as bare identifiers. Variables shadow them.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

type function struct {
	minArgs int
	maxArgs int // -1 means unbounded
	call    func(name string, args []float64) (Value, error)
}

func unary(f func(float64) float64) function {
	return function{minArgs: 1, maxArgs: 1, call: func(name string, args []float64) (Value, error) {
		r := f(args[0])
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return Number(0), fmt.Errorf("%w: %s(%v) is not finite", ErrEvaluation, name, args[0])
		}
		return Number(r), nil
	}}
}

// functions is the fixed call table. Nothing outside it is callable.
var functions = map[string]function{
	"abs":   unary(math.Abs),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"sqrt":  unary(math.Sqrt),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"int":   unary(math.Trunc),
	"float": unary(func(f float64) float64 { return f }),
	"max": {minArgs: 1, maxArgs: -1, call: func(_ string, args []float64) (Value, error) {
		m := args[0]
		for _, a := range args[1:] {
			m = math.Max(m, a)
		}
		return Number(m), nil
	}},
	"min": {minArgs: 1, maxArgs: -1, call: func(_ string, args []float64) (Value, error) {
		m := args[0]
		for _, a := range args[1:] {
			m = math.Min(m, a)
		}
		return Number(m), nil
	}},
	"round": {minArgs: 1, maxArgs: 2, call: func(_ string, args []float64) (Value, error) {
		if len(args) == 1 {
			return Number(math.Round(args[0])), nil
		}
		scale := math.Pow(10, math.Trunc(args[1]))
		if scale == 0 || math.IsInf(scale, 0) {
			return Number(0), fmt.Errorf("%w: bad rounding precision %v", ErrEvaluation, args[1])
		}
		return Number(math.Round(args[0]*scale) / scale), nil
	}},
	"pow": {minArgs: 2, maxArgs: 2, call: func(_ string, args []float64) (Value, error) {
		r := math.Pow(args[0], args[1])
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return Number(0), fmt.Errorf("%w: pow(%v, %v) is not finite", ErrEvaluation, args[0], args[1])
		}
		return Number(r), nil
	}},
}
