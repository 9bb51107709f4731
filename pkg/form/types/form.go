package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormKey     string             `bson:"formKey,omitempty" json:"formKey,omitempty"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	// Questions define the default traversal order. Positions are significant
	// and immutable during a response session.
	Questions []Question `bson:"questions,omitempty" json:"questions,omitempty"`

	VersionID   string            `bson:"versionID,omitempty" json:"versionId,omitempty"`
	Published   int64             `bson:"published,omitempty" json:"published,omitempty"`
	Unpublished int64             `bson:"unpublished,omitempty" json:"unpublished,omitempty"`
	Metadata    map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CompletionEmail *CompletionEmailSettings `bson:"completionEmail,omitempty" json:"completionEmail,omitempty"`
}

// CompletionEmailSettings describe the confirmation email sent after a
// response session is submitted. Subject and body may contain answer
// references in the same syntax as question titles.
type CompletionEmailSettings struct {
	Enabled             bool   `bson:"enabled" json:"enabled"`
	RecipientQuestionID string `bson:"recipientQuestionID,omitempty" json:"recipientQuestionId,omitempty"`
	Subject             string `bson:"subject,omitempty" json:"subject,omitempty"`
	Body                string `bson:"body,omitempty" json:"body,omitempty"`
}

// QuestionIndex returns the position of a question in the sequence, or -1 if
// the id is unknown.
func (f Form) QuestionIndex(questionID string) int {
	for i, q := range f.Questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

func (f Form) QuestionByID(questionID string) (Question, bool) {
	idx := f.QuestionIndex(questionID)
	if idx < 0 {
		return Question{}, false
	}
	return f.Questions[idx], true
}
