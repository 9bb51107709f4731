package flowengine

import (
	"testing"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

func issueCodes(issues []LogicIssue) map[string]int {
	codes := map[string]int{}
	for _, issue := range issues {
		codes[issue.Code]++
	}
	return codes
}

func TestValidateForm(t *testing.T) {
	t.Run("valid form has no issues", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_NUMBER},
			{ID: "q2", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic:   formTypes.CONDITION_LOGIC_AND,
				Action:           formTypes.LOGIC_ACTION_SHOW,
				JumpToQuestionID: "q3",
				Conditions: []formTypes.LogicCondition{
					{QuestionID: "q1", Operator: formTypes.OPERATOR_GREATER_THAN, Value: 5},
				},
			}},
			{ID: "q3", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
		}}
		if issues := ValidateForm(form); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("forward condition reference is flagged", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic: formTypes.CONDITION_LOGIC_AND,
				Action:         formTypes.LOGIC_ACTION_SHOW,
				Conditions: []formTypes.LogicCondition{
					{QuestionID: "q2", Operator: formTypes.OPERATOR_IS_NOT_EMPTY},
				},
			}},
			{ID: "q2", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_FORWARD_REFERENCE] != 1 {
			t.Errorf("expected forward reference issue, got %v", ValidateForm(form))
		}
	})

	t.Run("unknown condition reference is flagged", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic: formTypes.CONDITION_LOGIC_AND,
				Action:         formTypes.LOGIC_ACTION_SHOW,
				Conditions: []formTypes.LogicCondition{
					{QuestionID: "ghost", Operator: formTypes.OPERATOR_IS_EMPTY},
				},
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_UNKNOWN_REFERENCE] != 1 {
			t.Errorf("expected unknown reference issue, got %v", ValidateForm(form))
		}
	})

	t.Run("operator not in catalog for referenced type", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_CHECKBOX},
			{ID: "q2", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic: formTypes.CONDITION_LOGIC_AND,
				Action:         formTypes.LOGIC_ACTION_SHOW,
				Conditions: []formTypes.LogicCondition{
					{QuestionID: "q1", Operator: formTypes.OPERATOR_GREATER_THAN, Value: 2},
				},
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_INVALID_OPERATOR] != 1 {
			t.Errorf("expected invalid operator issue, got %v", ValidateForm(form))
		}
	})

	t.Run("missing operand for value operator", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
			{ID: "q2", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic: formTypes.CONDITION_LOGIC_AND,
				Action:         formTypes.LOGIC_ACTION_SHOW,
				Conditions: []formTypes.LogicCondition{
					{QuestionID: "q1", Operator: formTypes.OPERATOR_EQUALS},
				},
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_MISSING_OPERAND] != 1 {
			t.Errorf("expected missing operand issue, got %v", ValidateForm(form))
		}
	})

	t.Run("backward jump target is flagged", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
			{ID: "q2", Type: formTypes.QUESTION_TYPE_SHORT_TEXT, Logic: &formTypes.LogicRule{
				ConditionLogic:   formTypes.CONDITION_LOGIC_AND,
				Action:           formTypes.LOGIC_ACTION_SKIP,
				JumpToQuestionID: "q1",
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_INVALID_JUMP_TARGET] != 1 {
			t.Errorf("expected invalid jump target issue, got %v", ValidateForm(form))
		}
	})

	t.Run("duplicate question ids are flagged", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
			{ID: "q1", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_DUPLICATE_QUESTION_ID] != 1 {
			t.Errorf("expected duplicate id issue, got %v", ValidateForm(form))
		}
	})

	t.Run("calculator formula with unknown reference", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_NUMBER},
			{ID: "calc", Type: formTypes.QUESTION_TYPE_CALCULATOR, Properties: formTypes.QuestionProperties{
				Formula: "{{q1}} + {{ghost}}",
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_UNKNOWN_FORMULA_PIPING] != 1 {
			t.Errorf("expected unknown formula reference issue, got %v", ValidateForm(form))
		}
	})

	t.Run("calculator formula with disallowed characters", func(t *testing.T) {
		form := formTypes.Form{Questions: []formTypes.Question{
			{ID: "q1", Type: formTypes.QUESTION_TYPE_NUMBER},
			{ID: "calc", Type: formTypes.QUESTION_TYPE_CALCULATOR, Properties: formTypes.QuestionProperties{
				Formula: "{{q1}}; system()",
			}},
		}}
		if issueCodes(ValidateForm(form))[LOGIC_ISSUE_INVALID_FORMULA] != 1 {
			t.Errorf("expected invalid formula issue, got %v", ValidateForm(form))
		}
	})
}
