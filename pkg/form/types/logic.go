package types

type ConditionOperator string

const (
	OPERATOR_EQUALS       ConditionOperator = "equals"
	OPERATOR_NOT_EQUALS   ConditionOperator = "not_equals"
	OPERATOR_CONTAINS     ConditionOperator = "contains"
	OPERATOR_NOT_CONTAINS ConditionOperator = "not_contains"
	OPERATOR_GREATER_THAN ConditionOperator = "greater_than"
	OPERATOR_LESS_THAN    ConditionOperator = "less_than"
	OPERATOR_IS_EMPTY     ConditionOperator = "is_empty"
	OPERATOR_IS_NOT_EMPTY ConditionOperator = "is_not_empty"
)

type ConditionLogic string

const (
	CONDITION_LOGIC_AND ConditionLogic = "and"
	CONDITION_LOGIC_OR  ConditionLogic = "or"
)

type LogicAction string

const (
	LOGIC_ACTION_SHOW LogicAction = "show"
	LOGIC_ACTION_SKIP LogicAction = "skip"
)

// LogicCondition compares the answer of an earlier question against a value.
// Value is ignored for the two emptiness operators. Its shape depends on the
// referenced question's type (scalar for text/number, option value string for
// choice types).
type LogicCondition struct {
	ID         string            `bson:"id" json:"id"`
	QuestionID string            `bson:"questionId" json:"questionId"`
	Operator   ConditionOperator `bson:"operator" json:"operator"`
	Value      interface{}       `bson:"value,omitempty" json:"value,omitempty"`
}

// LogicRule is attached to exactly one question. Conditions are combined
// uniformly with ConditionLogic; the action decides whether a true result
// shows or skips the owning question. JumpToQuestionID may name a question
// strictly later in the sequence to transfer control to when the question is
// not shown.
type LogicRule struct {
	Conditions       []LogicCondition `bson:"conditions" json:"conditions"`
	ConditionLogic   ConditionLogic   `bson:"conditionLogic" json:"conditionLogic"`
	Action           LogicAction      `bson:"action" json:"action"`
	JumpToQuestionID string           `bson:"jumpToQuestionId,omitempty" json:"jumpToQuestionId,omitempty"`
}
