package types

type QuestionType string

// Closed set of question types. The flow engine switches exhaustively over
// these, so adding a type is a single-point change here plus the affected
// switch arms.
const (
	QUESTION_TYPE_SHORT_TEXT      QuestionType = "short_text"
	QUESTION_TYPE_LONG_TEXT       QuestionType = "long_text"
	QUESTION_TYPE_EMAIL           QuestionType = "email"
	QUESTION_TYPE_NUMBER          QuestionType = "number"
	QUESTION_TYPE_PHONE           QuestionType = "phone"
	QUESTION_TYPE_URL             QuestionType = "url"
	QUESTION_TYPE_ADDRESS         QuestionType = "address"
	QUESTION_TYPE_MULTIPLE_CHOICE QuestionType = "multiple_choice"
	QUESTION_TYPE_CHECKBOX        QuestionType = "checkbox"
	QUESTION_TYPE_DROPDOWN        QuestionType = "dropdown"
	QUESTION_TYPE_YES_NO          QuestionType = "yes_no"
	QUESTION_TYPE_RANKING         QuestionType = "ranking"
	QUESTION_TYPE_MATRIX          QuestionType = "matrix"
	QUESTION_TYPE_RATING          QuestionType = "rating"
	QUESTION_TYPE_SCALE           QuestionType = "scale"
	QUESTION_TYPE_SLIDER          QuestionType = "slider"
	QUESTION_TYPE_NPS             QuestionType = "nps"
	QUESTION_TYPE_DATE            QuestionType = "date"
	QUESTION_TYPE_FILE_UPLOAD     QuestionType = "file_upload"
	QUESTION_TYPE_SIGNATURE       QuestionType = "signature"
	QUESTION_TYPE_PAYMENT         QuestionType = "payment"
	QUESTION_TYPE_CALCULATOR      QuestionType = "calculator"
	QUESTION_TYPE_WELCOME         QuestionType = "welcome"
	QUESTION_TYPE_THANK_YOU       QuestionType = "thank_you"
)

var AllQuestionTypes = []QuestionType{
	QUESTION_TYPE_SHORT_TEXT,
	QUESTION_TYPE_LONG_TEXT,
	QUESTION_TYPE_EMAIL,
	QUESTION_TYPE_NUMBER,
	QUESTION_TYPE_PHONE,
	QUESTION_TYPE_URL,
	QUESTION_TYPE_ADDRESS,
	QUESTION_TYPE_MULTIPLE_CHOICE,
	QUESTION_TYPE_CHECKBOX,
	QUESTION_TYPE_DROPDOWN,
	QUESTION_TYPE_YES_NO,
	QUESTION_TYPE_RANKING,
	QUESTION_TYPE_MATRIX,
	QUESTION_TYPE_RATING,
	QUESTION_TYPE_SCALE,
	QUESTION_TYPE_SLIDER,
	QUESTION_TYPE_NPS,
	QUESTION_TYPE_DATE,
	QUESTION_TYPE_FILE_UPLOAD,
	QUESTION_TYPE_SIGNATURE,
	QUESTION_TYPE_PAYMENT,
	QUESTION_TYPE_CALCULATOR,
	QUESTION_TYPE_WELCOME,
	QUESTION_TYPE_THANK_YOU,
}

func (qt QuestionType) IsValid() bool {
	for _, t := range AllQuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

type Option struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

type QuestionProperties struct {
	Options       []Option `bson:"options,omitempty" json:"options,omitempty"`
	Min           *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Step          *float64 `bson:"step,omitempty" json:"step,omitempty"`
	RatingMax     *int     `bson:"ratingMax,omitempty" json:"ratingMax,omitempty"`
	MatrixRows    []Option `bson:"matrixRows,omitempty" json:"matrixRows,omitempty"`
	MatrixColumns []Option `bson:"matrixColumns,omitempty" json:"matrixColumns,omitempty"`

	// Calculator question type only:
	Formula       string `bson:"formula,omitempty" json:"formula,omitempty"`
	DecimalPlaces *int   `bson:"decimalPlaces,omitempty" json:"decimalPlaces,omitempty"`
	Prefix        string `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix        string `bson:"suffix,omitempty" json:"suffix,omitempty"`

	Placeholder string `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
}

type Question struct {
	ID          string             `bson:"id" json:"id"`
	Type        QuestionType       `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Required    bool               `bson:"required,omitempty" json:"required,omitempty"`
	Properties  QuestionProperties `bson:"properties,omitempty" json:"properties,omitempty"`
	Logic       *LogicRule         `bson:"logic,omitempty" json:"logic,omitempty"`
}

// OptionByValue looks up an option of the question by its stored value.
func (q Question) OptionByValue(value string) (Option, bool) {
	for _, o := range q.Properties.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
