package flowengine

import (
	"testing"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

func TestEvalCalculatorFormula(t *testing.T) {
	t.Run("basic arithmetic with substituted answers", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} * {{q2}} + 10", formTypes.AnswerMap{"q1": float64(3), "q2": float64(4)})
		if result == nil || *result != 22 {
			t.Errorf("expected 22, got %v", result)
		}
	})

	t.Run("division by zero returns nil", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} / 0", formTypes.AnswerMap{"q1": float64(5)})
		if result != nil {
			t.Errorf("expected nil, got %v", *result)
		}
	})

	t.Run("disallowed characters are rejected", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}}; DROP", formTypes.AnswerMap{"q1": float64(1)})
		if result != nil {
			t.Errorf("expected nil for rejected input, got %v", *result)
		}
	})

	t.Run("identifiers in the formula are rejected", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} + pi", formTypes.AnswerMap{"q1": float64(1)})
		if result != nil {
			t.Errorf("expected nil for rejected input, got %v", *result)
		}
	})

	t.Run("numeric string answers parse", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} + 1", formTypes.AnswerMap{"q1": "41"})
		if result == nil || *result != 42 {
			t.Errorf("expected 42, got %v", result)
		}
	})

	t.Run("missing answer coerces to zero", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} + 5", formTypes.AnswerMap{})
		if result == nil || *result != 5 {
			t.Errorf("expected 5, got %v", result)
		}
	})

	t.Run("non-numeric answer coerces to zero", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} + 5", formTypes.AnswerMap{"q1": "hello"})
		if result == nil || *result != 5 {
			t.Errorf("expected 5, got %v", result)
		}
	})

	t.Run("array answer reduces to sum of numeric elements", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}}", formTypes.AnswerMap{"q1": []string{"2", "3", "x"}})
		if result == nil || *result != 5 {
			t.Errorf("expected 5, got %v", result)
		}
	})

	t.Run("array answer without numeric elements reduces to count", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}}", formTypes.AnswerMap{"q1": []string{"a", "b", "c"}})
		if result == nil || *result != 3 {
			t.Errorf("expected 3, got %v", result)
		}
	})

	t.Run("negative answers substitute safely", func(t *testing.T) {
		result := EvalCalculatorFormula("10 - {{q1}}", formTypes.AnswerMap{"q1": float64(-2)})
		if result == nil || *result != 12 {
			t.Errorf("expected 12, got %v", result)
		}
	})

	t.Run("true division for piped values", func(t *testing.T) {
		result := EvalCalculatorFormula("{{q1}} / {{q2}}", formTypes.AnswerMap{"q1": float64(5), "q2": float64(2)})
		if result == nil || *result != 2.5 {
			t.Errorf("expected 2.5, got %v", result)
		}
	})

	t.Run("malformed parentheses return nil", func(t *testing.T) {
		result := EvalCalculatorFormula("({{q1}} + 2", formTypes.AnswerMap{"q1": float64(1)})
		if result != nil {
			t.Errorf("expected nil, got %v", *result)
		}
	})

	t.Run("empty formula returns nil", func(t *testing.T) {
		if result := EvalCalculatorFormula("", formTypes.AnswerMap{}); result != nil {
			t.Errorf("expected nil, got %v", *result)
		}
	})
}

func TestFormatCalculatedValue(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	t.Run("nil renders placeholder", func(t *testing.T) {
		if got := FormatCalculatedValue(nil, CalculatedValueFormat{}); got != "-" {
			t.Errorf("expected placeholder, got %s", got)
		}
	})

	t.Run("default two decimal places", func(t *testing.T) {
		if got := FormatCalculatedValue(floatPtr(22), CalculatedValueFormat{}); got != "22.00" {
			t.Errorf("unexpected format: %s", got)
		}
	})

	t.Run("custom decimal places with prefix and suffix", func(t *testing.T) {
		got := FormatCalculatedValue(floatPtr(19.5), CalculatedValueFormat{
			DecimalPlaces: intPtr(1),
			Prefix:        "$",
			Suffix:        " USD",
		})
		if got != "$19.5 USD" {
			t.Errorf("unexpected format: %s", got)
		}
	})

	t.Run("zero decimal places", func(t *testing.T) {
		got := FormatCalculatedValue(floatPtr(3.7), CalculatedValueFormat{DecimalPlaces: intPtr(0)})
		if got != "4" {
			t.Errorf("unexpected format: %s", got)
		}
	})
}
