package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "github.com/formpilot/formpilot-backend/pkg/apihelpers/middlewares"
	"github.com/formpilot/formpilot-backend/pkg/form/flowengine"
	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
	jwthandling "github.com/formpilot/formpilot-backend/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddResponseSessionAPI(rg *gin.RouterGroup) {
	sessionGroup := rg.Group("/response-session")

	sessionGroup.POST("/open", mw.RequirePayload(), h.openResponseSession)

	authedGroup := sessionGroup.Group("")
	authedGroup.Use(mw.GetAndValidateRespondentSessionJWT(h.tokenSignKey))
	{
		authedGroup.GET("/question", h.getCurrentQuestion)
		authedGroup.GET("/previous", h.getPreviousQuestion)
		authedGroup.POST("/answer", mw.RequirePayload(), h.submitAnswer)
		authedGroup.POST("/submit", h.submitResponseSession)
	}
}

// openResponseSession starts a new response session on the current published
// version of the form and hands out the session token. The first visible
// question is resolved immediately so the client can render it without a
// second roundtrip.
func (h *HttpEndpoints) openResponseSession(c *gin.Context) {
	var req struct {
		InstanceID string `json:"instanceId"`
		FormKey    string `json:"formKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.InstanceID == "" || req.FormKey == "" {
		slog.Error("missing required fields", slog.String("instanceID", req.InstanceID), slog.String("formKey", req.FormKey))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Warn("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
		return
	}

	form, err := h.formDBConn.GetCurrentFormVersion(req.InstanceID, req.FormKey)
	if err != nil {
		slog.Error("error getting current form version", slog.String("instanceID", req.InstanceID), slog.String("formKey", req.FormKey), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	session := formTypes.ResponseSession{
		SessionID:     uuid.NewString(),
		InstanceID:    req.InstanceID,
		FormKey:       req.FormKey,
		FormVersionID: form.VersionID,
	}

	nav := flowengine.NextQuestion(*form, nil, 0)
	if !nav.End {
		session.Trail = []formTypes.TrailEntry{{
			QuestionID: nav.QuestionID,
			Cursor:     nav.Cursor,
			ShownAt:    time.Now().Unix(),
		}}
	}

	if err := h.formDBConn.CreateResponseSession(req.InstanceID, &session); err != nil {
		slog.Error("error creating response session", slog.String("instanceID", req.InstanceID), slog.String("formKey", req.FormKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating response session"})
		return
	}

	token, err := jwthandling.GenerateNewRespondentSessionToken(
		h.tokenExpiresIn,
		req.InstanceID,
		req.FormKey,
		form.VersionID,
		session.SessionID,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("error generating session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating session token"})
		return
	}

	slog.Info("response session opened", slog.String("instanceID", req.InstanceID), slog.String("formKey", req.FormKey), slog.String("sessionID", session.SessionID))

	resp := gin.H{
		"sessionToken": token,
		"sessionId":    session.SessionID,
		"formTitle":    form.Title,
		"next":         nav,
	}
	if !nav.End {
		question, _ := form.QuestionByID(nav.QuestionID)
		resp["question"] = renderedQuestion(*form, question, nil)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HttpEndpoints) getCurrentQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentSessionClaims)

	session, form, ok := h.loadOpenSessionWithForm(c, token)
	if !ok {
		return
	}

	if len(session.Trail) == 0 {
		c.JSON(http.StatusOK, gin.H{"next": flowengine.NavResult{End: true}})
		return
	}

	current := session.Trail[len(session.Trail)-1]
	question, found := form.QuestionByID(current.QuestionID)
	if !found {
		slog.Error("trail references unknown question", slog.String("sessionID", token.SessionID), slog.String("questionID", current.QuestionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error resolving current question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"next":     flowengine.NavResult{QuestionID: current.QuestionID, Cursor: current.Cursor},
		"question": renderedQuestion(*form, question, session.Answers),
	})
}

// getPreviousQuestion resolves the question shown before the current one by
// replaying the recorded trail. It does not modify the session; editing the
// answer there is what rewinds the trail.
func (h *HttpEndpoints) getPreviousQuestion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentSessionClaims)

	session, form, ok := h.loadOpenSessionWithForm(c, token)
	if !ok {
		return
	}

	currentCursor := 0
	if len(session.Trail) > 0 {
		currentCursor = session.Trail[len(session.Trail)-1].Cursor
	}

	nav := flowengine.PreviousQuestion(session.Trail, currentCursor)
	resp := gin.H{"previous": nav}
	if !nav.End {
		question, found := form.QuestionByID(nav.QuestionID)
		if found {
			resp["question"] = renderedQuestion(*form, question, session.Answers)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// submitAnswer records one answer and advances the session. Answering the
// current question moves the trail forward; editing an earlier answer first
// re-validates the recorded trail and drops every entry from the first
// question that the changed answer hides.
func (h *HttpEndpoints) submitAnswer(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentSessionClaims)

	var req struct {
		QuestionID string      `json:"questionId"`
		Value      interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.QuestionID == "" {
		slog.Error("questionId is required", slog.String("sessionID", token.SessionID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId is required"})
		return
	}

	session, form, ok := h.loadOpenSessionWithForm(c, token)
	if !ok {
		return
	}

	if _, found := form.QuestionByID(req.QuestionID); !found {
		slog.Error("answer for unknown question", slog.String("sessionID", token.SessionID), slog.String("questionID", req.QuestionID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown question"})
		return
	}

	trail, answers, nav, invalidated := advanceAfterAnswer(*form, session.Trail, session.Answers, req.QuestionID, req.Value)

	if err := h.formDBConn.UpdateResponseSessionProgress(token.InstanceID, token.SessionID, answers, trail); err != nil {
		slog.Error("error updating response session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating response session"})
		return
	}

	resp := gin.H{"next": nav}
	if len(invalidated) > 0 {
		resp["invalidatedQuestions"] = invalidated
	}
	if !nav.End {
		question, found := form.QuestionByID(nav.QuestionID)
		if found {
			resp["question"] = renderedQuestion(*form, question, answers)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HttpEndpoints) submitResponseSession(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentSessionClaims)

	session, form, ok := h.loadOpenSessionWithForm(c, token)
	if !ok {
		return
	}

	if err := h.formDBConn.MarkResponseSessionSubmitted(token.InstanceID, token.SessionID); err != nil {
		slog.Error("error submitting response session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error submitting response session"})
		return
	}

	slog.Info("response session submitted", slog.String("instanceID", token.InstanceID), slog.String("formKey", token.FormKey), slog.String("sessionID", token.SessionID))

	if h.smtpClients != nil {
		go func(form formTypes.Form, answers formTypes.AnswerMap) {
			if err := h.smtpClients.SendCompletionConfirmation(form, answers); err != nil {
				slog.Error("error sending completion confirmation", slog.String("formKey", form.FormKey), slog.String("error", err.Error()))
			}
		}(*form, session.Answers)
	}

	c.JSON(http.StatusOK, gin.H{"message": "response submitted"})
}

// advanceAfterAnswer applies one answer to the session state: the value is
// stored, the recorded trail is re-validated against the updated answers, and
// the answers of every question the edit hid are dropped with it before the
// next position is resolved. Answering the current question (or rewinding the
// trail) moves forward; editing an earlier answer that changed no visibility
// leaves the position where it was.
func advanceAfterAnswer(
	form formTypes.Form,
	trail []formTypes.TrailEntry,
	answers formTypes.AnswerMap,
	questionID string,
	value interface{},
) ([]formTypes.TrailEntry, formTypes.AnswerMap, flowengine.NavResult, []string) {
	if answers == nil {
		answers = formTypes.AnswerMap{}
	}
	answers[questionID] = value

	newTrail, invalidated := flowengine.InvalidateTrailFrom(form, trail, answers)
	for _, id := range invalidated {
		if id != questionID {
			delete(answers, id)
		}
	}

	answeredTail := len(newTrail) > 0 && newTrail[len(newTrail)-1].QuestionID == questionID
	trailRewound := len(newTrail) != len(trail)

	var nav flowengine.NavResult
	if answeredTail || trailRewound || len(newTrail) == 0 {
		startCursor := 0
		if len(newTrail) > 0 {
			startCursor = newTrail[len(newTrail)-1].Cursor + 1
		}
		nav = flowengine.NextQuestion(form, answers, startCursor)
		if !nav.End {
			newTrail = append(newTrail, formTypes.TrailEntry{
				QuestionID: nav.QuestionID,
				Cursor:     nav.Cursor,
				ShownAt:    time.Now().Unix(),
			})
		}
	} else {
		current := newTrail[len(newTrail)-1]
		nav = flowengine.NavResult{QuestionID: current.QuestionID, Cursor: current.Cursor}
	}

	return newTrail, answers, nav, invalidated
}

func (h *HttpEndpoints) loadOpenSessionWithForm(c *gin.Context, token *jwthandling.RespondentSessionClaims) (formTypes.ResponseSession, *formTypes.Form, bool) {
	session, err := h.formDBConn.GetResponseSession(token.InstanceID, token.SessionID)
	if err != nil {
		slog.Error("error getting response session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "response session not found"})
		return formTypes.ResponseSession{}, nil, false
	}

	if session.Status != formTypes.SESSION_STATUS_OPEN {
		slog.Warn("response session not open", slog.String("sessionID", token.SessionID), slog.String("status", session.Status))
		c.JSON(http.StatusBadRequest, gin.H{"error": "response session not open"})
		return formTypes.ResponseSession{}, nil, false
	}

	form, err := h.formDBConn.GetFormVersion(token.InstanceID, token.FormKey, token.FormVersionID)
	if err != nil {
		slog.Error("error getting form version for session", slog.String("sessionID", token.SessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error resolving form version"})
		return formTypes.ResponseSession{}, nil, false
	}

	return session, form, true
}

// renderedQuestion prepares a question for display: answer references in
// title and description are resolved, calculator questions additionally carry
// their evaluated and formatted value.
func renderedQuestion(form formTypes.Form, question formTypes.Question, answers formTypes.AnswerMap) gin.H {
	rendered := gin.H{
		"id":       question.ID,
		"type":     question.Type,
		"title":    flowengine.RenderPipedText(question.Title, form, answers),
		"required": question.Required,
	}
	if question.Description != "" {
		rendered["description"] = flowengine.RenderPipedText(question.Description, form, answers)
	}
	if len(question.Properties.Options) > 0 || question.Properties.Formula != "" ||
		question.Properties.Min != nil || question.Properties.Max != nil ||
		question.Properties.RatingMax != nil || len(question.Properties.MatrixRows) > 0 {
		rendered["properties"] = question.Properties
	}

	if question.Type == formTypes.QUESTION_TYPE_CALCULATOR {
		value := flowengine.EvalCalculatorFormula(question.Properties.Formula, answers)
		rendered["calculatedValue"] = flowengine.FormatCalculatedValue(value, flowengine.CalculatedValueFormat{
			DecimalPlaces: question.Properties.DecimalPlaces,
			Prefix:        question.Properties.Prefix,
			Suffix:        question.Properties.Suffix,
		})
	}

	return rendered
}
