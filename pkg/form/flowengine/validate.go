package flowengine

import (
	"fmt"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

const (
	LOGIC_ISSUE_DUPLICATE_QUESTION_ID  = "duplicate_question_id"
	LOGIC_ISSUE_UNKNOWN_REFERENCE      = "unknown_reference"
	LOGIC_ISSUE_FORWARD_REFERENCE      = "forward_reference"
	LOGIC_ISSUE_INVALID_OPERATOR       = "invalid_operator"
	LOGIC_ISSUE_MISSING_OPERAND        = "missing_operand"
	LOGIC_ISSUE_INVALID_JUMP_TARGET    = "invalid_jump_target"
	LOGIC_ISSUE_UNKNOWN_JUMP_TARGET    = "unknown_jump_target"
	LOGIC_ISSUE_INVALID_FORMULA        = "invalid_formula"
	LOGIC_ISSUE_UNKNOWN_FORMULA_PIPING = "unknown_formula_reference"
)

// LogicIssue is a diagnostic produced when validating a form definition at
// the load/publish boundary. Issues do not prevent a session from running -
// the engine degrades around broken edges at evaluation time - but the
// builder should surface them before publishing.
type LogicIssue struct {
	QuestionID  string `json:"questionId"`
	ConditionID string `json:"conditionId,omitempty"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

// ValidateForm checks the structural invariants of the logic configuration:
// condition references must point strictly earlier in the sequence, jump
// targets strictly later, operators must be valid for the referenced
// question's type, and calculator formulas must survive sanitization.
func ValidateForm(form formTypes.Form) []LogicIssue {
	issues := []LogicIssue{}

	seenIDs := map[string]bool{}
	for _, question := range form.Questions {
		if seenIDs[question.ID] {
			issues = append(issues, LogicIssue{
				QuestionID: question.ID,
				Code:       LOGIC_ISSUE_DUPLICATE_QUESTION_ID,
				Message:    fmt.Sprintf("question id %q is used more than once", question.ID),
			})
		}
		seenIDs[question.ID] = true
	}

	for position, question := range form.Questions {
		if question.Logic != nil {
			issues = append(issues, validateLogicRule(form, question, position)...)
		}
		if question.Type == formTypes.QUESTION_TYPE_CALCULATOR {
			issues = append(issues, validateFormula(form, question)...)
		}
	}
	return issues
}

func validateLogicRule(form formTypes.Form, question formTypes.Question, position int) []LogicIssue {
	issues := []LogicIssue{}
	rule := question.Logic

	for _, condition := range rule.Conditions {
		refPosition := form.QuestionIndex(condition.QuestionID)
		if refPosition < 0 {
			issues = append(issues, LogicIssue{
				QuestionID:  question.ID,
				ConditionID: condition.ID,
				Code:        LOGIC_ISSUE_UNKNOWN_REFERENCE,
				Message:     fmt.Sprintf("condition references unknown question %q", condition.QuestionID),
			})
			continue
		}
		if refPosition >= position {
			issues = append(issues, LogicIssue{
				QuestionID:  question.ID,
				ConditionID: condition.ID,
				Code:        LOGIC_ISSUE_FORWARD_REFERENCE,
				Message:     fmt.Sprintf("condition references question %q which is not positioned before %q", condition.QuestionID, question.ID),
			})
		}

		referenced := form.Questions[refPosition]
		if !IsOperatorValidForQuestionType(condition.Operator, referenced.Type) {
			issues = append(issues, LogicIssue{
				QuestionID:  question.ID,
				ConditionID: condition.ID,
				Code:        LOGIC_ISSUE_INVALID_OPERATOR,
				Message:     fmt.Sprintf("operator %q is not valid for question type %q", condition.Operator, referenced.Type),
			})
		}
		if OperatorRequiresValue(condition.Operator) && condition.Value == nil {
			issues = append(issues, LogicIssue{
				QuestionID:  question.ID,
				ConditionID: condition.ID,
				Code:        LOGIC_ISSUE_MISSING_OPERAND,
				Message:     fmt.Sprintf("operator %q requires a comparison value", condition.Operator),
			})
		}
	}

	if rule.JumpToQuestionID != "" {
		target := form.QuestionIndex(rule.JumpToQuestionID)
		if target < 0 {
			issues = append(issues, LogicIssue{
				QuestionID: question.ID,
				Code:       LOGIC_ISSUE_UNKNOWN_JUMP_TARGET,
				Message:    fmt.Sprintf("jump target %q does not exist", rule.JumpToQuestionID),
			})
		} else if target <= position {
			issues = append(issues, LogicIssue{
				QuestionID: question.ID,
				Code:       LOGIC_ISSUE_INVALID_JUMP_TARGET,
				Message:    fmt.Sprintf("jump target %q is not positioned after %q", rule.JumpToQuestionID, question.ID),
			})
		}
	}
	return issues
}

// validateFormula checks that every reference in a calculator formula names
// an existing question and that the formula skeleton (references replaced by
// a number) passes the character whitelist.
func validateFormula(form formTypes.Form, question formTypes.Question) []LogicIssue {
	issues := []LogicIssue{}
	formula := question.Properties.Formula

	for _, groups := range pipeTokenRegexp.FindAllStringSubmatch(formula, -1) {
		if form.QuestionIndex(groups[1]) < 0 {
			issues = append(issues, LogicIssue{
				QuestionID: question.ID,
				Code:       LOGIC_ISSUE_UNKNOWN_FORMULA_PIPING,
				Message:    fmt.Sprintf("formula references unknown question %q", groups[1]),
			})
		}
	}

	skeleton := pipeTokenRegexp.ReplaceAllString(formula, "0.0")
	if !calculatorAllowedChars.MatchString(skeleton) {
		issues = append(issues, LogicIssue{
			QuestionID: question.ID,
			Code:       LOGIC_ISSUE_INVALID_FORMULA,
			Message:    "formula contains characters outside the allowed arithmetic set",
		})
	}
	return issues
}
