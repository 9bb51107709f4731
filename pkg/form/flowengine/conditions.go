package flowengine

import (
	"strings"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// EvalCondition evaluates one logic condition against the answers recorded so
// far. It is total: malformed operands, missing answers and coercion failures
// all degrade to false (or to the defined result for the emptiness
// operators), never to a panic. A question that was not answered yet can only
// satisfy is_empty.
func EvalCondition(condition formTypes.LogicCondition, answers formTypes.AnswerMap) bool {
	answer, hasAnswer := answers[condition.QuestionID]
	isEmpty := !hasAnswer || formTypes.IsAnswerEmpty(answer)

	switch condition.Operator {
	case formTypes.OPERATOR_IS_EMPTY:
		return isEmpty
	case formTypes.OPERATOR_IS_NOT_EMPTY:
		return !isEmpty
	}

	if !hasAnswer {
		return false
	}

	switch condition.Operator {
	case formTypes.OPERATOR_EQUALS:
		return answerEquals(answer, condition.Value)
	case formTypes.OPERATOR_NOT_EQUALS:
		return !answerEquals(answer, condition.Value)
	case formTypes.OPERATOR_CONTAINS:
		return answerContains(answer, condition.Value)
	case formTypes.OPERATOR_NOT_CONTAINS:
		return !answerContains(answer, condition.Value)
	case formTypes.OPERATOR_GREATER_THAN:
		answerNum, okA := formTypes.AnswerAsFloat(answer)
		operandNum, okO := formTypes.AnswerAsFloat(condition.Value)
		return okA && okO && answerNum > operandNum
	case formTypes.OPERATOR_LESS_THAN:
		answerNum, okA := formTypes.AnswerAsFloat(answer)
		operandNum, okO := formTypes.AnswerAsFloat(condition.Value)
		return okA && okO && answerNum < operandNum
	}
	return false
}

// answerEquals compares after normalizing both sides to their string form.
// Array answers are compared through their serialized form, not through
// membership - contains is the membership operator. Values without a string
// form (record answers, missing operands) never compare equal.
func answerEquals(answer interface{}, operand interface{}) bool {
	answerStr, okA := serializeForComparison(answer)
	operandStr, okO := serializeForComparison(operand)
	return okA && okO && answerStr == operandStr
}

// answerContains is a substring check for string answers and a membership
// check for array answers. Record answers check their values.
func answerContains(answer interface{}, operand interface{}) bool {
	needle, ok := serializeForComparison(operand)
	if !ok {
		return false
	}

	if items, ok := formTypes.AnswerAsStringSlice(answer); ok {
		for _, item := range items {
			if item == needle {
				return true
			}
		}
		return false
	}
	if record, ok := formTypes.AnswerAsStringMap(answer); ok {
		for _, item := range record {
			if item == needle {
				return true
			}
		}
		return false
	}
	if s, ok := formTypes.AnswerAsString(answer); ok {
		return strings.Contains(s, needle)
	}
	return false
}

// serializeForComparison produces the canonical string form used by the
// equality operators: scalars through AnswerAsString, arrays comma-joined in
// answer order. Record-shaped values and nil have no canonical string form
// and report false, which degrades the surrounding comparison to false.
func serializeForComparison(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}
	if s, ok := formTypes.AnswerAsString(value); ok {
		return s, true
	}
	if items, ok := formTypes.AnswerAsStringSlice(value); ok {
		return strings.Join(items, ","), true
	}
	return "", false
}
