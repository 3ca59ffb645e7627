package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PlainNumbers(t *testing.T) {
	assert.Equal(t, 10.5, Evaluate("10.5"))
	assert.Equal(t, 7.0, Evaluate("7"))
	assert.Equal(t, 12.0, Evaluate("12."))
	assert.Equal(t, 0.5, Evaluate(".5"))
	assert.Equal(t, 3.74, Evaluate("  3.74  "))
}

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"7.48/2", 3.74},
		{"10 + 5", 15},
		{"(10+5)*2", 30},
		{"2*3+4", 10},
		{"2+3*4", 14},
		{"10-2-3", 5},
		{"1/3", 0.33},
		{"2/3", 0.67},
		{"-5+2", -3},
		{"(4.99 + 5.99) / 2", 5.49},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.input))
		})
	}
}

func TestEvaluate_RejectsNonArithmetic(t *testing.T) {
	// Inputs with characters outside the arithmetic class skip evaluation
	// and fall back to the leading numeric prefix.
	assert.Equal(t, 0.0, Evaluate(`eval("x")`))
	assert.Equal(t, 10.0, Evaluate("10 + alert(1)"))
	assert.Equal(t, 12.5, Evaluate("12.5abc"))
	assert.Equal(t, 0.0, Evaluate("Math.PI"))
	assert.Equal(t, 0.0, Evaluate("abc"))
}

func TestEvaluate_DegradesToZero(t *testing.T) {
	assert.Equal(t, 0.0, Evaluate(""))
	assert.Equal(t, 0.0, Evaluate("   "))
	assert.Equal(t, 0.0, Evaluate("+"))
	assert.Equal(t, 0.0, Evaluate("()"))
	assert.Equal(t, 0.0, Evaluate("(1+2"))
}

func TestEvaluate_DivisionByZeroFallsBack(t *testing.T) {
	// Inf is rejected; the fallback parses the leading number instead.
	assert.Equal(t, 7.48, Evaluate("7.48/0"))
}

func TestEvaluate_MalformedExpressionFallsBack(t *testing.T) {
	// Valid character class but unparseable as an expression: fall back to
	// the numeric prefix.
	assert.Equal(t, 10.0, Evaluate("10+"))
	assert.Equal(t, 5.0, Evaluate("5))"))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, ParseNumber("12.5"))
	assert.Equal(t, 12.5, ParseNumber(" 12.5 oz "))
	assert.Equal(t, -3.0, ParseNumber("-3"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("abc"))
}
