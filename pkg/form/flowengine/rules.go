package flowengine

import (
	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// IsQuestionVisible decides whether a question should be shown for the given
// answers. Pure and deterministic: the builder's flow preview may call it
// repeatedly for the same inputs.
//
// The show and skip actions are duals over a single evaluation of the
// condition set - skip negates the combined result instead of re-evaluating
// with flipped operators.
func IsQuestionVisible(question formTypes.Question, answers formTypes.AnswerMap) bool {
	if question.Logic == nil {
		return true
	}

	conditionsMet := evalConditionSet(*question.Logic, answers)

	if question.Logic.Action == formTypes.LOGIC_ACTION_SKIP {
		return !conditionsMet
	}
	return conditionsMet
}

// evalConditionSet combines the rule's conditions with its condition logic.
// AND is vacuously true on an empty list, OR vacuously false.
func evalConditionSet(rule formTypes.LogicRule, answers formTypes.AnswerMap) bool {
	if rule.ConditionLogic == formTypes.CONDITION_LOGIC_OR {
		for _, condition := range rule.Conditions {
			if EvalCondition(condition, answers) {
				return true
			}
		}
		return false
	}

	// default: and
	for _, condition := range rule.Conditions {
		if !EvalCondition(condition, answers) {
			return false
		}
	}
	return true
}
