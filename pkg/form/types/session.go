package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SESSION_STATUS_OPEN      = "open"
	SESSION_STATUS_SUBMITTED = "submitted"
)

// TrailEntry records that a question was actually shown to the respondent at
// a given cursor position. The ordered trail is the forward path the
// navigator replays for backward navigation.
type TrailEntry struct {
	QuestionID string `bson:"questionId" json:"questionId"`
	Cursor     int    `bson:"cursor" json:"cursor"`
	ShownAt    int64  `bson:"shownAt,omitempty" json:"shownAt,omitempty"`
}

type ResponseSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID     string             `bson:"sessionID" json:"sessionId"`
	InstanceID    string             `bson:"instanceID" json:"instanceId"`
	FormKey       string             `bson:"formKey" json:"formKey"`
	FormVersionID string             `bson:"formVersionID,omitempty" json:"formVersionId,omitempty"`
	Status        string             `bson:"status" json:"status"`
	Trail         []TrailEntry       `bson:"trail,omitempty" json:"trail,omitempty"`
	Answers       AnswerMap          `bson:"answers,omitempty" json:"answers,omitempty"`
	StartedAt     int64              `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	SubmittedAt   int64              `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
}
