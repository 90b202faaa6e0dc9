package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(f float64) Value { return Number(f) }

func evalNum(t *testing.T, text string, vars map[string]Value) float64 {
	t.Helper()
	v, err := Evaluate(text, vars)
	require.NoError(t, err)
	require.True(t, v.IsNumber(), "expected numeric result for %q", text)
	return v.Float()
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2", 3},
		{"2*3+4", 10},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"7%3", 1},
		{"2**10", 1024},
		{"2**3**2", 512}, // right associative
		{"-5+3", -2},
		{"--5", 5},
		{"10-2-3", 5},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.InDelta(t, tt.want, evalNum(t, tt.expr, nil), 1e-9)
		})
	}
}

func TestEvaluate_PythonModulo(t *testing.T) {
	// result takes the sign of the divisor
	assert.InDelta(t, 2.0, evalNum(t, "-7%3", nil), 1e-9)
	assert.InDelta(t, -2.0, evalNum(t, "7%-3", nil), 1e-9)
	assert.InDelta(t, 1.0, evalNum(t, "7%3", nil), 1e-9)
}

func TestEvaluate_Variables(t *testing.T) {
	vars := map[string]Value{"x": num(4), "y": num(3)}
	assert.InDelta(t, 19, evalNum(t, "x*y+7", vars), 1e-9)
}

func TestEvaluate_UnknownVariableFails(t *testing.T) {
	_, err := Evaluate("missing+1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvaluate_BarewordMode(t *testing.T) {
	v, err := Evaluator{Bareword: true}.Evaluate("hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", v.Text())
	assert.False(t, v.IsNumber())
}

func TestEvaluate_FunctionsAndConstants(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"abs(-3)", 3},
		{"floor(2.9)", 2},
		{"ceil(2.1)", 3},
		{"sqrt(16)", 4},
		{"int(3.9)", 3},
		{"int(-3.9)", -3},
		{"min(3, 1, 2)", 1},
		{"max(3, 1, 2)", 3},
		{"round(2.567, 2)", 2.57},
		{"round(2.5)", 3},
		{"pow(2, 8)", 256},
		{"pi", 3.141592653589793},
		{"sin(0)", 0},
		{"cos(0)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.InDelta(t, tt.want, evalNum(t, tt.expr, nil), 1e-9)
		})
	}
}

func TestEvaluate_Comparisons(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 > 1", 1},
		{"1 > 2", 0},
		{"2 >= 2", 1},
		{"1 <= 0", 0},
		{"3 == 3", 1},
		{"3 != 3", 0},
		{"1 < 2 and 2 < 3", 1},
		{"1 > 2 or 3 > 2", 1},
		{"not 0", 1},
		{"not 5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.InDelta(t, tt.want, evalNum(t, tt.expr, nil), 1e-9)
		})
	}
}

func TestEvaluate_StringEquality(t *testing.T) {
	e := Evaluator{Bareword: true}
	v, err := e.Evaluate("red == red", nil)
	require.NoError(t, err)
	assert.True(t, v.Truthy())

	v, err = e.Evaluate("red == blue", nil)
	require.NoError(t, err)
	assert.False(t, v.Truthy())
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("1/0", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)

	_, err = Evaluate("1%0", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEvaluate_SecurityRejections(t *testing.T) {
	blocked := []string{
		"__import__",
		"import",
		"os",
		"eval",
		"exec",
		"open(1)",
		"getattr",
		"a.b",
		"x.__class__",
	}
	for _, text := range blocked {
		t.Run(text, func(t *testing.T) {
			v, err := Evaluate(text, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSecurity)
			assert.Equal(t, 0.0, v.Float())
		})
	}
}

func TestEvaluate_SyntaxErrors(t *testing.T) {
	bad := []string{"1+", "(1+2", "1 2", "*3", "==", ""}
	for _, text := range bad {
		t.Run(text, func(t *testing.T) {
			_, err := Evaluate(text, nil)
			require.Error(t, err)
		})
	}
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	// the unknown identifier on the dead side must not fail the whole
	// expression
	v, err := Evaluate("0 and missing", nil)
	require.NoError(t, err)
	assert.False(t, v.Truthy())

	v, err = Evaluate("1 or missing", nil)
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "3", Number(3).Text())
	assert.Equal(t, "-17", Number(-17).Text())
	assert.Equal(t, "2.5", Number(2.5).Text())
	assert.Equal(t, "hi", String("hi").Text())
}

func TestParseScalar(t *testing.T) {
	assert.True(t, ParseScalar("42").IsNumber())
	assert.InDelta(t, 42, ParseScalar("42").Float(), 1e-9)
	assert.True(t, ParseScalar("-1.5").IsNumber())
	assert.False(t, ParseScalar("red").IsNumber())
	assert.Equal(t, "red", ParseScalar("red").Text())
}
