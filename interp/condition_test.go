package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chsjkfqwjk/pixel-image-generator/expr"
)

func TestEvaluateCondition(t *testing.T) {
	ctx := map[string]expr.Value{
		"width":  expr.Number(200),
		"height": expr.Number(100),
		"c":      expr.String("red"),
	}

	tests := []struct {
		name string
		cond string
		want bool
	}{
		{"numeric true", "width > 100", true},
		{"numeric false", "height > 100", false},
		{"equality", "width == 200", true},
		{"arithmetic", "width / 2 == height", true},
		{"logical and", "width > 100 and height > 50", true},
		{"logical or", "width > 500 or height > 50", true},
		{"string equality", "c == red", true},
		{"string inequality", "c == blue", false},
		{"modulo", "width % 3 == 2", true},
		{"parens", "(width + height) * 2 == 600", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, ctx))
		})
	}
}

func TestEvaluateCondition_FailuresAreFalse(t *testing.T) {
	tests := []struct {
		name string
		cond string
	}{
		{"unbound bare word", "hello"},
		{"unbound comparison operand", "nope > 10"},
		{"division by zero", "1 / 0 == 1"},
		{"empty", ""},
		{"garbage", "$$$$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, EvaluateCondition(tt.cond, nil))
		})
	}
}

func TestEvaluateCondition_DisallowedTokensStripped(t *testing.T) {
	// The sanitizer drops everything outside the allow-list before the
	// text reaches the evaluator.
	assert.False(t, EvaluateCondition(`os.system("rm")`, nil))
	assert.False(t, EvaluateCondition("1 == 1; drop", nil))
	assert.True(t, EvaluateCondition("1 == 1", nil))
}

func TestEvaluateCondition_SubstitutionIsWholeToken(t *testing.T) {
	ctx := map[string]expr.Value{"i": expr.Number(5)}
	// "i" must not be replaced inside "abs" or "height".
	assert.True(t, EvaluateCondition("abs(i) == 5", ctx))
	assert.True(t, EvaluateCondition("i + i == 10", ctx))
	ctx["height"] = expr.Number(20)
	assert.True(t, EvaluateCondition("height - i == 15", ctx))
}

func TestEvaluateCondition_CommaNotAllowed(t *testing.T) {
	// The allow-list has no comma, so two-argument calls cannot appear
	// in conditions. The stripped text fails to parse and yields false.
	ctx := map[string]expr.Value{"i": expr.Number(5)}
	assert.False(t, EvaluateCondition("min(i, 10) == 5", ctx))
}
