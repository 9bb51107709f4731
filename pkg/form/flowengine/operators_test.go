package flowengine

import (
	"testing"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

func containsOperator(ops []formTypes.ConditionOperator, op formTypes.ConditionOperator) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func TestOperatorsForQuestionType(t *testing.T) {
	t.Run("emptiness operators for every type", func(t *testing.T) {
		for _, qt := range formTypes.AllQuestionTypes {
			ops := OperatorsForQuestionType(qt)
			if !containsOperator(ops, formTypes.OPERATOR_IS_EMPTY) || !containsOperator(ops, formTypes.OPERATOR_IS_NOT_EMPTY) {
				t.Errorf("emptiness operators missing for type %s", qt)
			}
		}
	})

	t.Run("free text gets equality and containment", func(t *testing.T) {
		ops := OperatorsForQuestionType(formTypes.QUESTION_TYPE_SHORT_TEXT)
		for _, op := range []formTypes.ConditionOperator{
			formTypes.OPERATOR_EQUALS,
			formTypes.OPERATOR_NOT_EQUALS,
			formTypes.OPERATOR_CONTAINS,
			formTypes.OPERATOR_NOT_CONTAINS,
		} {
			if !containsOperator(ops, op) {
				t.Errorf("expected %s for short text", op)
			}
		}
		if containsOperator(ops, formTypes.OPERATOR_GREATER_THAN) {
			t.Error("greater_than should not be offered for short text")
		}
	})

	t.Run("numeric types get ordering operators", func(t *testing.T) {
		for _, qt := range []formTypes.QuestionType{
			formTypes.QUESTION_TYPE_NUMBER,
			formTypes.QUESTION_TYPE_RATING,
			formTypes.QUESTION_TYPE_SCALE,
			formTypes.QUESTION_TYPE_SLIDER,
			formTypes.QUESTION_TYPE_NPS,
		} {
			ops := OperatorsForQuestionType(qt)
			if !containsOperator(ops, formTypes.OPERATOR_GREATER_THAN) || !containsOperator(ops, formTypes.OPERATOR_LESS_THAN) {
				t.Errorf("ordering operators missing for type %s", qt)
			}
		}
	})

	t.Run("checkbox gets membership but not equality", func(t *testing.T) {
		ops := OperatorsForQuestionType(formTypes.QUESTION_TYPE_CHECKBOX)
		if !containsOperator(ops, formTypes.OPERATOR_CONTAINS) {
			t.Error("contains missing for checkbox")
		}
		if containsOperator(ops, formTypes.OPERATOR_EQUALS) {
			t.Error("equals should not be offered for checkbox")
		}
	})

	t.Run("display types only get emptiness", func(t *testing.T) {
		for _, qt := range []formTypes.QuestionType{
			formTypes.QUESTION_TYPE_WELCOME,
			formTypes.QUESTION_TYPE_THANK_YOU,
			formTypes.QUESTION_TYPE_SIGNATURE,
			formTypes.QUESTION_TYPE_PAYMENT,
		} {
			ops := OperatorsForQuestionType(qt)
			if len(ops) != 2 {
				t.Errorf("expected only emptiness operators for %s, got %v", qt, ops)
			}
		}
	})
}

func TestOperatorRequiresValue(t *testing.T) {
	withValue := []formTypes.ConditionOperator{
		formTypes.OPERATOR_EQUALS,
		formTypes.OPERATOR_NOT_EQUALS,
		formTypes.OPERATOR_CONTAINS,
		formTypes.OPERATOR_NOT_CONTAINS,
		formTypes.OPERATOR_GREATER_THAN,
		formTypes.OPERATOR_LESS_THAN,
	}
	for _, op := range withValue {
		if !OperatorRequiresValue(op) {
			t.Errorf("%s should require a value", op)
		}
	}
	if OperatorRequiresValue(formTypes.OPERATOR_IS_EMPTY) {
		t.Error("is_empty should not require a value")
	}
	if OperatorRequiresValue(formTypes.OPERATOR_IS_NOT_EMPTY) {
		t.Error("is_not_empty should not require a value")
	}
}
