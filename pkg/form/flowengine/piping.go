package flowengine

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// pipeTokenRegexp matches {{questionId}} and {{questionId.property}}
// references inside question titles, descriptions and email bodies.
var pipeTokenRegexp = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_-]+)(?:\.([A-Za-z0-9_-]+))?\s*\}\}`)

var dateAnswerLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// RenderPipedText substitutes answer references in the text. Tokens with an
// unknown question id stay verbatim so authoring mistakes remain visible; a
// known question without an answer renders as empty string. Rendering is
// type-aware (option labels for choices, Yes/No, value/max ratings, ...).
func RenderPipedText(text string, form formTypes.Form, answers formTypes.AnswerMap) string {
	return pipeTokenRegexp.ReplaceAllStringFunc(text, func(token string) string {
		groups := pipeTokenRegexp.FindStringSubmatch(token)
		questionID := groups[1]
		property := groups[2]

		question, ok := form.QuestionByID(questionID)
		if !ok {
			return token
		}

		answer, ok := answers[questionID]
		if !ok || answer == nil {
			return ""
		}

		return renderAnswer(question, answer, property)
	})
}

func renderAnswer(question formTypes.Question, answer interface{}, property string) string {
	switch question.Type {
	case formTypes.QUESTION_TYPE_MULTIPLE_CHOICE, formTypes.QUESTION_TYPE_DROPDOWN:
		value, _ := formTypes.AnswerAsString(answer)
		return optionLabel(question, value)
	case formTypes.QUESTION_TYPE_CHECKBOX:
		return renderSelectionList(question, answer)
	case formTypes.QUESTION_TYPE_RANKING:
		return renderRanking(answer)
	case formTypes.QUESTION_TYPE_MATRIX:
		return renderRecord(answer, property, nil)
	case formTypes.QUESTION_TYPE_ADDRESS:
		return renderRecord(answer, property, []string{"street", "city", "state", "zip", "country"})
	case formTypes.QUESTION_TYPE_YES_NO:
		return renderYesNo(answer)
	case formTypes.QUESTION_TYPE_RATING:
		return renderRating(question, answer)
	case formTypes.QUESTION_TYPE_DATE:
		return renderDate(answer)
	}

	if s, ok := formTypes.AnswerAsString(answer); ok {
		return s
	}
	if items, ok := formTypes.AnswerAsStringSlice(answer); ok {
		return strings.Join(items, ", ")
	}
	serialized, err := json.Marshal(answer)
	if err != nil {
		return ""
	}
	return string(serialized)
}

// optionLabel resolves a stored option value to its display label, falling
// back to the raw value when the option list does not contain it (anymore).
func optionLabel(question formTypes.Question, value string) string {
	if option, ok := question.OptionByValue(value); ok {
		return option.Label
	}
	return value
}

func renderSelectionList(question formTypes.Question, answer interface{}) string {
	items, ok := formTypes.AnswerAsStringSlice(answer)
	if !ok {
		value, _ := formTypes.AnswerAsString(answer)
		return optionLabel(question, value)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = optionLabel(question, item)
	}
	return strings.Join(labels, ", ")
}

func renderRanking(answer interface{}) string {
	items, ok := formTypes.AnswerAsStringSlice(answer)
	if !ok {
		value, _ := formTypes.AnswerAsString(answer)
		return value
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(parts, ", ")
}

// renderRecord handles the record-shaped answers (matrix rows, address
// fields). With a property it returns that sub-field; without one it either
// joins the known fields in order (address) or serializes the full record
// (matrix).
func renderRecord(answer interface{}, property string, fieldOrder []string) string {
	record, ok := formTypes.AnswerAsStringMap(answer)
	if !ok {
		value, _ := formTypes.AnswerAsString(answer)
		return value
	}

	if property != "" {
		return record[property]
	}

	if fieldOrder != nil {
		parts := []string{}
		for _, field := range fieldOrder {
			if v := strings.TrimSpace(record[field]); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", ")
	}

	serialized, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	return string(serialized)
}

func renderYesNo(answer interface{}) string {
	switch v := answer.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	}
	value, _ := formTypes.AnswerAsString(answer)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return "Yes"
	}
	return "No"
}

func renderRating(question formTypes.Question, answer interface{}) string {
	max := 5
	if question.Properties.RatingMax != nil {
		max = *question.Properties.RatingMax
	}
	value, _ := formTypes.AnswerAsString(answer)
	return fmt.Sprintf("%s/%d", value, max)
}

func renderDate(answer interface{}) string {
	value, ok := formTypes.AnswerAsString(answer)
	if !ok {
		return ""
	}
	for _, layout := range dateAnswerLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	// unparsable dates stay as entered
	return value
}
