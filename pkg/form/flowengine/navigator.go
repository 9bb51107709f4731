package flowengine

import (
	"log/slog"

	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

// NavResult is the outcome of one navigator step: either the next question to
// render (by id and cursor position) or the end of the form. IgnoredJumps
// lists questions whose jump target was invalid and got skipped over
// sequentially instead - diagnostics for the caller, the traversal itself
// never fails.
type NavResult struct {
	End          bool     `json:"end,omitempty"`
	QuestionID   string   `json:"questionId,omitempty"`
	Cursor       int      `json:"cursor"`
	IgnoredJumps []string `json:"ignoredJumps,omitempty"`
}

// NextQuestion walks the question sequence starting at cursor and returns the
// first visible question, or the end state. Invisible questions advance the
// cursor through their jump target when it points strictly forward, otherwise
// by one. Since every transition strictly increases the cursor the walk
// terminates within len(form.Questions) steps regardless of how the logic
// rules are configured.
func NextQuestion(form formTypes.Form, answers formTypes.AnswerMap, cursor int) NavResult {
	result := NavResult{Cursor: cursor}
	if result.Cursor < 0 {
		result.Cursor = 0
	}

	for result.Cursor < len(form.Questions) {
		question := form.Questions[result.Cursor]

		if IsQuestionVisible(question, answers) {
			result.QuestionID = question.ID
			return result
		}

		result.Cursor = advanceFrom(form, question, result.Cursor, &result)
	}

	result.End = true
	result.QuestionID = ""
	return result
}

// advanceFrom resolves where an invisible question hands control to. Jump
// targets at or before the current position would break the monotonic cursor
// and are ignored, falling through to the next sequential question.
func advanceFrom(form formTypes.Form, question formTypes.Question, cursor int, result *NavResult) int {
	if question.Logic == nil || question.Logic.JumpToQuestionID == "" {
		return cursor + 1
	}

	target := form.QuestionIndex(question.Logic.JumpToQuestionID)
	if target <= cursor {
		slog.Debug("ignoring invalid jump target",
			slog.String("questionID", question.ID),
			slog.String("jumpToQuestionID", question.Logic.JumpToQuestionID),
			slog.Int("cursor", cursor),
		)
		result.IgnoredJumps = append(result.IgnoredJumps, question.ID)
		return cursor + 1
	}
	return target
}

// PreviousQuestion replays the recorded forward trail backwards: it returns
// the nearest trail entry before the current cursor. Visibility is not
// re-derived from the current answers - the trail already captures what the
// respondent actually saw.
func PreviousQuestion(trail []formTypes.TrailEntry, currentCursor int) NavResult {
	for i := len(trail) - 1; i >= 0; i-- {
		if trail[i].Cursor < currentCursor {
			return NavResult{
				QuestionID: trail[i].QuestionID,
				Cursor:     trail[i].Cursor,
			}
		}
	}
	return NavResult{End: true, Cursor: 0}
}

// InvalidateTrailFrom re-validates the recorded trail against the current
// answers after an earlier answer was edited. It returns the longest prefix
// of the trail that is still visible, and the question ids of the discarded
// suffix so the caller can drop their answers. The first question whose
// visibility changed invalidates everything collected after it.
func InvalidateTrailFrom(form formTypes.Form, trail []formTypes.TrailEntry, answers formTypes.AnswerMap) (validTrail []formTypes.TrailEntry, invalidatedQuestionIDs []string) {
	for i, entry := range trail {
		question, ok := form.QuestionByID(entry.QuestionID)
		if !ok || !IsQuestionVisible(question, answers) {
			for _, dropped := range trail[i:] {
				invalidatedQuestionIDs = append(invalidatedQuestionIDs, dropped.QuestionID)
			}
			return trail[:i], invalidatedQuestionIDs
		}
	}
	return trail, nil
}
