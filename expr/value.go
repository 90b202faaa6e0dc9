package expr

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the two scalar shapes an expression can produce.
type Kind uint8

const (
	KindNumber Kind = iota
	KindString
)

// Value is a scalar produced by expression evaluation or bound in the
// variable store: a float64 number or a string. Integral numbers render
// without a decimal point so generated instruction text stays clean.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns 1 or 0 as a numeric Value.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric value, or 0 for strings.
func (v Value) Float() float64 {
	if v.kind == KindString {
		return 0
	}
	return v.num
}

// Truthy reports whether the value counts as true in a condition:
// non-zero for numbers, non-empty for strings.
func (v Value) Truthy() bool {
	if v.kind == KindString {
		return v.str != ""
	}
	return v.num != 0
}

// Text renders the value as instruction text. Integral floats drop the
// decimal point: 3.0 becomes "3".
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	if v.num == math.Trunc(v.num) && !math.IsInf(v.num, 0) && math.Abs(v.num) < 1e15 {
		return strconv.FormatInt(int64(v.num), 10)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// ParseScalar converts raw parameter text into a Value: integers and
// floating point literals become numbers, everything else stays a string.
func ParseScalar(s string) Value {
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Number(n)
	}
	return Value{kind: KindString, str: s}
}

// snapshotKey renders an order-independent snapshot of all bindings.
// Two variable maps produce the same key exactly when they are equal,
// which is what makes cached results sound across loop iterations.
func snapshotKey(vars map[string]Value) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		v := vars[name]
		b.WriteString(name)
		if v.kind == KindString {
			b.WriteString("=s:")
		} else {
			b.WriteString("=n:")
		}
		b.WriteString(v.Text())
		b.WriteByte('\x00')
	}
	return b.String()
}
