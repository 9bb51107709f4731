package messaging

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/formpilot/formpilot-backend/pkg/form/flowengine"
	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
)

const defaultCompletionSubject = "Thank you for your response"

// SendCompletionConfirmation sends the confirmation email configured on the
// form after a response session was submitted. Subject and body may reference
// answers; the references are resolved against the submitted answers before
// sending. Returns without error when the form has no confirmation configured
// or no recipient address can be resolved.
func (sc *SmtpClients) SendCompletionConfirmation(
	form formTypes.Form,
	answers formTypes.AnswerMap,
) error {
	settings := form.CompletionEmail
	if settings == nil || !settings.Enabled {
		return nil
	}

	recipient := resolveRecipient(form, answers, settings.RecipientQuestionID)
	if recipient == "" {
		slog.Debug("no recipient address for completion email", slog.String("formKey", form.FormKey))
		return nil
	}

	subject := strings.TrimSpace(flowengine.RenderPipedText(settings.Subject, form, answers))
	if subject == "" {
		subject = defaultCompletionSubject
	}
	body := flowengine.RenderPipedText(settings.Body, form, answers)
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("<p>Your response to %q has been recorded.</p>", form.Title)
	}

	return sc.SendMail([]string{recipient}, subject, body, nil)
}

func resolveRecipient(form formTypes.Form, answers formTypes.AnswerMap, questionID string) string {
	if questionID != "" {
		if addr, ok := emailAnswer(answers, questionID); ok {
			return addr
		}
		return ""
	}

	// without an explicit recipient question, the first answered email
	// question is used
	for _, q := range form.Questions {
		if q.Type != formTypes.QUESTION_TYPE_EMAIL {
			continue
		}
		if addr, ok := emailAnswer(answers, q.ID); ok {
			return addr
		}
	}
	return ""
}

func emailAnswer(answers formTypes.AnswerMap, questionID string) (string, bool) {
	raw, ok := answers[questionID]
	if !ok {
		return "", false
	}
	addr, ok := formTypes.AnswerAsString(raw)
	if !ok {
		return "", false
	}
	addr = strings.TrimSpace(addr)
	if addr == "" || !strings.Contains(addr, "@") {
		return "", false
	}
	return addr, true
}
