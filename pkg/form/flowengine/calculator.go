package flowengine

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// calculatorAllowedChars is the character whitelist a substituted formula
// must satisfy before it is evaluated: digits, whitespace, decimal points and
// the four basic operators with parentheses. Anything else (identifiers,
// quotes, statement separators) rejects the whole formula.
var calculatorAllowedChars = regexp.MustCompile(`^[\d\s+\-*/().]*$`)

// EvalCalculatorFormula substitutes {{questionId}} references in the formula
// with the numeric value of the referenced answer and evaluates the resulting
// arithmetic expression. It returns nil instead of raising on any failure:
// rejected characters, malformed expressions and non-finite results (division
// by zero) all produce no value.
func EvalCalculatorFormula(formula string, answers formTypes.AnswerMap) *float64 {
	substituted := pipeTokenRegexp.ReplaceAllStringFunc(formula, func(token string) string {
		groups := pipeTokenRegexp.FindStringSubmatch(token)
		return formatCalculatorOperand(answers[groups[1]])
	})

	if !calculatorAllowedChars.MatchString(substituted) {
		slog.Debug("calculator formula contains disallowed characters after substitution")
		return nil
	}
	if strings.TrimSpace(substituted) == "" {
		return nil
	}

	program, err := expr.Compile(substituted)
	if err != nil {
		slog.Debug("could not compile calculator formula", slog.String("error", err.Error()))
		return nil
	}
	output, err := expr.Run(program, nil)
	if err != nil {
		slog.Debug("could not run calculator formula", slog.String("error", err.Error()))
		return nil
	}

	var result float64
	switch v := output.(type) {
	case float64:
		result = v
	case int:
		result = float64(v)
	default:
		return nil
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}
	return &result
}

// formatCalculatorOperand renders an answer as a numeric literal. Numeric
// answers and numeric strings pass through, arrays reduce to the sum of
// their coercible elements (or the element count when none parse), anything
// else coerces to 0. The literal always carries a decimal point so the
// expression evaluates with float semantics.
func formatCalculatorOperand(answer interface{}) string {
	if num, ok := formTypes.AnswerAsFloat(answer); ok {
		return floatLiteral(num)
	}

	if items, ok := formTypes.AnswerAsStringSlice(answer); ok {
		sum := 0.0
		parsed := 0
		for _, item := range items {
			if num, ok := formTypes.AnswerAsFloat(item); ok {
				sum += num
				parsed++
			}
		}
		if parsed == 0 {
			return floatLiteral(float64(len(items)))
		}
		return floatLiteral(sum)
	}

	return "0.0"
}

func floatLiteral(v float64) string {
	literal := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	// wrap negatives so substitution cannot form "--" sequences
	if strings.HasPrefix(literal, "-") {
		literal = "(" + literal + ")"
	}
	return literal
}

const noCalculatedValuePlaceholder = "-"

type CalculatedValueFormat struct {
	DecimalPlaces *int   `bson:"decimalPlaces,omitempty" json:"decimalPlaces,omitempty"`
	Prefix        string `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix        string `bson:"suffix,omitempty" json:"suffix,omitempty"`
}

// FormatCalculatedValue renders an evaluated formula result for display. A
// nil value renders as the no-value placeholder; otherwise the number is
// fixed to the configured decimal places (default 2) and wrapped with the
// prefix/suffix strings.
func FormatCalculatedValue(value *float64, format CalculatedValueFormat) string {
	if value == nil {
		return noCalculatedValuePlaceholder
	}

	decimalPlaces := 2
	if format.DecimalPlaces != nil && *format.DecimalPlaces >= 0 {
		decimalPlaces = *format.DecimalPlaces
	}

	return format.Prefix + strconv.FormatFloat(*value, 'f', decimalPlaces, 64) + format.Suffix
}
