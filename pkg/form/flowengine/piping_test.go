package flowengine

import (
	"testing"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

func TestRenderPipedText(t *testing.T) {
	ratingMax := 10
	form := formTypes.Form{
		Questions: []formTypes.Question{
			{ID: "name", Type: formTypes.QUESTION_TYPE_SHORT_TEXT},
			{ID: "q1", Type: formTypes.QUESTION_TYPE_YES_NO},
			{ID: "fruit", Type: formTypes.QUESTION_TYPE_CHECKBOX, Properties: formTypes.QuestionProperties{
				Options: []formTypes.Option{
					{ID: "o1", Value: "a", Label: "Apple"},
					{ID: "o2", Value: "b", Label: "Banana"},
				},
			}},
			{ID: "color", Type: formTypes.QUESTION_TYPE_DROPDOWN, Properties: formTypes.QuestionProperties{
				Options: []formTypes.Option{
					{ID: "o1", Value: "r", Label: "Red"},
				},
			}},
			{ID: "rank", Type: formTypes.QUESTION_TYPE_RANKING},
			{ID: "addr", Type: formTypes.QUESTION_TYPE_ADDRESS},
			{ID: "grid", Type: formTypes.QUESTION_TYPE_MATRIX},
			{ID: "stars", Type: formTypes.QUESTION_TYPE_RATING, Properties: formTypes.QuestionProperties{RatingMax: &ratingMax}},
			{ID: "score", Type: formTypes.QUESTION_TYPE_NUMBER},
			{ID: "when", Type: formTypes.QUESTION_TYPE_DATE},
		},
	}

	t.Run("plain text answer", func(t *testing.T) {
		got := RenderPipedText("Hello {{name}}!", form, formTypes.AnswerMap{"name": "Ada"})
		if got != "Hello Ada!" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("unknown question id stays verbatim", func(t *testing.T) {
		got := RenderPipedText("Hello {{nope}}!", form, formTypes.AnswerMap{})
		if got != "Hello {{nope}}!" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("known question without answer renders empty", func(t *testing.T) {
		got := RenderPipedText("Hello {{name}}!", form, formTypes.AnswerMap{})
		if got != "Hello !" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("yes_no renders Yes and No", func(t *testing.T) {
		if got := RenderPipedText("{{q1}}", form, formTypes.AnswerMap{"q1": true}); got != "Yes" {
			t.Errorf("expected Yes, got %s", got)
		}
		if got := RenderPipedText("{{q1}}", form, formTypes.AnswerMap{"q1": false}); got != "No" {
			t.Errorf("expected No, got %s", got)
		}
	})

	t.Run("checkbox renders selected option labels", func(t *testing.T) {
		got := RenderPipedText("{{fruit}}", form, formTypes.AnswerMap{"fruit": []string{"a", "b"}})
		if got != "Apple, Banana" {
			t.Errorf("expected 'Apple, Banana', got %s", got)
		}
	})

	t.Run("checkbox falls back to raw value for unknown option", func(t *testing.T) {
		got := RenderPipedText("{{fruit}}", form, formTypes.AnswerMap{"fruit": []string{"a", "x"}})
		if got != "Apple, x" {
			t.Errorf("expected 'Apple, x', got %s", got)
		}
	})

	t.Run("dropdown renders option label", func(t *testing.T) {
		got := RenderPipedText("{{color}}", form, formTypes.AnswerMap{"color": "r"})
		if got != "Red" {
			t.Errorf("expected Red, got %s", got)
		}
	})

	t.Run("ranking renders positions in answer order", func(t *testing.T) {
		got := RenderPipedText("{{rank}}", form, formTypes.AnswerMap{"rank": []string{"tea", "coffee"}})
		if got != "1. tea, 2. coffee" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("address joins non-blank fields", func(t *testing.T) {
		answers := formTypes.AnswerMap{"addr": map[string]string{
			"street": "1 Main St", "city": "Springfield", "state": "", "zip": "12345", "country": "US",
		}}
		got := RenderPipedText("{{addr}}", form, answers)
		if got != "1 Main St, Springfield, 12345, US" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("address property access", func(t *testing.T) {
		answers := formTypes.AnswerMap{"addr": map[string]string{"city": "Springfield"}}
		got := RenderPipedText("{{addr.city}}", form, answers)
		if got != "Springfield" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("matrix property access", func(t *testing.T) {
		answers := formTypes.AnswerMap{"grid": map[string]string{"row1": "agree"}}
		got := RenderPipedText("{{grid.row1}}", form, answers)
		if got != "agree" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("matrix without property serializes the record", func(t *testing.T) {
		answers := formTypes.AnswerMap{"grid": map[string]string{"row1": "agree"}}
		got := RenderPipedText("{{grid}}", form, answers)
		if got != `{"row1":"agree"}` {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("rating renders value over max", func(t *testing.T) {
		got := RenderPipedText("{{stars}}", form, formTypes.AnswerMap{"stars": float64(7)})
		if got != "7/10" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("rating max defaults to 5", func(t *testing.T) {
		withDefault := formTypes.Form{Questions: []formTypes.Question{
			{ID: "stars", Type: formTypes.QUESTION_TYPE_RATING},
		}}
		got := RenderPipedText("{{stars}}", withDefault, formTypes.AnswerMap{"stars": float64(4)})
		if got != "4/5" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("number renders plain", func(t *testing.T) {
		got := RenderPipedText("{{score}} points", form, formTypes.AnswerMap{"score": float64(12.5)})
		if got != "12.5 points" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("date renders formatted", func(t *testing.T) {
		got := RenderPipedText("{{when}}", form, formTypes.AnswerMap{"when": "2026-03-01"})
		if got != "March 1, 2026" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("unparsable date stays as entered", func(t *testing.T) {
		got := RenderPipedText("{{when}}", form, formTypes.AnswerMap{"when": "sometime soon"})
		if got != "sometime soon" {
			t.Errorf("unexpected render: %s", got)
		}
	})

	t.Run("multiple tokens in one text", func(t *testing.T) {
		answers := formTypes.AnswerMap{"name": "Ada", "q1": true}
		got := RenderPipedText("{{name}} said {{q1}}", form, answers)
		if got != "Ada said Yes" {
			t.Errorf("unexpected render: %s", got)
		}
	})
}
