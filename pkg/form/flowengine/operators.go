package flowengine

import (
	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// OperatorsForQuestionType returns the comparison operators the builder may
// attach to a condition referencing a question of the given type. The
// emptiness operators are valid for every type; value comparisons depend on
// the shape of the answer the type produces.
func OperatorsForQuestionType(qt formTypes.QuestionType) []formTypes.ConditionOperator {
	ops := []formTypes.ConditionOperator{}

	switch qt {
	case formTypes.QUESTION_TYPE_SHORT_TEXT,
		formTypes.QUESTION_TYPE_LONG_TEXT,
		formTypes.QUESTION_TYPE_EMAIL,
		formTypes.QUESTION_TYPE_PHONE,
		formTypes.QUESTION_TYPE_URL:
		ops = append(ops,
			formTypes.OPERATOR_EQUALS,
			formTypes.OPERATOR_NOT_EQUALS,
			formTypes.OPERATOR_CONTAINS,
			formTypes.OPERATOR_NOT_CONTAINS,
		)
	case formTypes.QUESTION_TYPE_NUMBER,
		formTypes.QUESTION_TYPE_RATING,
		formTypes.QUESTION_TYPE_SCALE,
		formTypes.QUESTION_TYPE_SLIDER,
		formTypes.QUESTION_TYPE_NPS:
		ops = append(ops,
			formTypes.OPERATOR_EQUALS,
			formTypes.OPERATOR_NOT_EQUALS,
			formTypes.OPERATOR_GREATER_THAN,
			formTypes.OPERATOR_LESS_THAN,
		)
	case formTypes.QUESTION_TYPE_MULTIPLE_CHOICE,
		formTypes.QUESTION_TYPE_DROPDOWN,
		formTypes.QUESTION_TYPE_YES_NO,
		formTypes.QUESTION_TYPE_DATE:
		ops = append(ops,
			formTypes.OPERATOR_EQUALS,
			formTypes.OPERATOR_NOT_EQUALS,
		)
	case formTypes.QUESTION_TYPE_CHECKBOX,
		formTypes.QUESTION_TYPE_RANKING:
		ops = append(ops,
			formTypes.OPERATOR_CONTAINS,
			formTypes.OPERATOR_NOT_CONTAINS,
		)
	case formTypes.QUESTION_TYPE_ADDRESS,
		formTypes.QUESTION_TYPE_MATRIX,
		formTypes.QUESTION_TYPE_FILE_UPLOAD,
		formTypes.QUESTION_TYPE_SIGNATURE,
		formTypes.QUESTION_TYPE_PAYMENT,
		formTypes.QUESTION_TYPE_CALCULATOR,
		formTypes.QUESTION_TYPE_WELCOME,
		formTypes.QUESTION_TYPE_THANK_YOU:
		// only the emptiness operators below
	}

	ops = append(ops,
		formTypes.OPERATOR_IS_EMPTY,
		formTypes.OPERATOR_IS_NOT_EMPTY,
	)
	return ops
}

// OperatorRequiresValue reports whether a condition with this operator needs
// an operand value. Only the emptiness operators work without one.
func OperatorRequiresValue(op formTypes.ConditionOperator) bool {
	switch op {
	case formTypes.OPERATOR_IS_EMPTY, formTypes.OPERATOR_IS_NOT_EMPTY:
		return false
	}
	return true
}

// IsOperatorValidForQuestionType checks a single operator against the
// catalog. Used by form validation at the load/publish boundary.
func IsOperatorValidForQuestionType(op formTypes.ConditionOperator, qt formTypes.QuestionType) bool {
	for _, candidate := range OperatorsForQuestionType(qt) {
		if candidate == op {
			return true
		}
	}
	return false
}
