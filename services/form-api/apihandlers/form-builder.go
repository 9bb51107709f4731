package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formpilot/formpilot-backend/pkg/apihelpers"
	mw "github.com/formpilot/formpilot-backend/pkg/apihelpers/middlewares"
	"github.com/formpilot/formpilot-backend/pkg/form/flowengine"
	formTypes "github.com/formpilot/formpilot-backend/pkg/form/types"
	"github.com/formpilot/formpilot-backend/pkg/utils"
)

func (h *HttpEndpoints) AddFormBuilderAPI(rg *gin.RouterGroup) {
	builderGroup := rg.Group("/form-builder/:instanceID")
	builderGroup.Use(mw.HasValidAPIKey(h.builderAPIKeys))
	builderGroup.Use(h.requireAllowedInstance())
	{
		builderGroup.GET("/forms", h.getFormKeys)
		builderGroup.POST("/forms/:formKey/versions", mw.RequirePayload(), h.publishNewFormVersion)
		builderGroup.GET("/forms/:formKey/versions", h.getFormVersions)
		builderGroup.GET("/forms/:formKey/versions/:versionID", h.getFormVersion)
		builderGroup.GET("/forms/:formKey/current", h.getCurrentFormVersion)
		builderGroup.POST("/forms/:formKey/unpublish", h.unpublishForm)
		builderGroup.DELETE("/forms/:formKey/versions/:versionID", h.deleteFormVersion)

		builderGroup.POST("/validate", mw.RequirePayload(), h.validateForm)
		builderGroup.POST("/forms/:formKey/logic-preview", mw.RequirePayload(), h.logicPreview)

		builderGroup.GET("/forms/:formKey/response-sessions", h.getResponseSessions)
	}
}

func (h *HttpEndpoints) requireAllowedInstance() gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceID")
		if !h.isInstanceAllowed(instanceID) {
			slog.Warn("instance not allowed", slog.String("instanceID", instanceID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
			return
		}
		c.Next()
	}
}

func (h *HttpEndpoints) getFormKeys(c *gin.Context) {
	instanceID := c.Param("instanceID")
	includeUnpublished := c.DefaultQuery("includeUnpublished", "false") == "true"

	formKeys, err := h.formDBConn.GetFormKeys(instanceID, includeUnpublished)
	if err != nil {
		slog.Error("error getting form keys", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting form keys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"formKeys": formKeys})
}

// publishNewFormVersion stores the submitted form as a new published version.
// Logic issues found during validation do not block publishing, they are
// returned alongside so the builder UI can surface them.
func (h *HttpEndpoints) publishNewFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")

	var form formTypes.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, q := range form.Questions {
		if !q.Type.IsValid() {
			slog.Error("unknown question type", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("questionType", string(q.Type)))
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown question type: " + string(q.Type)})
			return
		}
	}

	oldVersions, err := h.formDBConn.GetFormVersions(instanceID, formKey)
	if err != nil {
		slog.Error("error getting form versions", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting form versions"})
		return
	}

	form.FormKey = formKey
	form.VersionID = utils.GenerateFormVersionID(oldVersions)
	form.Published = time.Now().Unix()
	form.Unpublished = 0

	issues := flowengine.ValidateForm(form)

	if err := h.formDBConn.SaveFormVersion(instanceID, &form); err != nil {
		slog.Error("error saving form version", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving form version"})
		return
	}

	slog.Info("published new form version", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("versionID", form.VersionID))
	c.JSON(http.StatusOK, gin.H{"form": form, "issues": issues})
}

func (h *HttpEndpoints) getFormVersions(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")

	versions, err := h.formDBConn.GetFormVersions(instanceID, formKey)
	if err != nil {
		slog.Error("error getting form versions", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting form versions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

func (h *HttpEndpoints) getFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")
	versionID := c.Param("versionID")

	form, err := h.formDBConn.GetFormVersion(instanceID, formKey, versionID)
	if err != nil {
		slog.Error("error getting form version", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("versionID", versionID), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form version not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) getCurrentFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")

	form, err := h.formDBConn.GetCurrentFormVersion(instanceID, formKey)
	if err != nil {
		slog.Error("error getting current form version", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "no current form version"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *HttpEndpoints) unpublishForm(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")

	if err := h.formDBConn.UnpublishForm(instanceID, formKey); err != nil {
		slog.Error("error unpublishing form", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error unpublishing form"})
		return
	}

	slog.Info("form unpublished", slog.String("instanceID", instanceID), slog.String("formKey", formKey))
	c.JSON(http.StatusOK, gin.H{"message": "form unpublished"})
}

func (h *HttpEndpoints) deleteFormVersion(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")
	versionID := c.Param("versionID")

	if err := h.formDBConn.DeleteFormVersion(instanceID, formKey, versionID); err != nil {
		slog.Error("error deleting form version", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("versionID", versionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting form version"})
		return
	}

	slog.Info("form version deleted", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("versionID", versionID))
	c.JSON(http.StatusOK, gin.H{"message": "form version deleted"})
}

func (h *HttpEndpoints) validateForm(c *gin.Context) {
	var form formTypes.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": flowengine.ValidateForm(form)})
}

// logicPreview evaluates the current form version against a hypothetical
// answer set so the builder can preview the resulting flow: per-question
// visibility plus the navigator step from the given cursor.
func (h *HttpEndpoints) logicPreview(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")

	var req struct {
		VersionID string              `json:"versionId"`
		Answers   formTypes.AnswerMap `json:"answers"`
		Cursor    int                 `json:"cursor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var form *formTypes.Form
	var err error
	if req.VersionID != "" {
		form, err = h.formDBConn.GetFormVersion(instanceID, formKey, req.VersionID)
	} else {
		form, err = h.formDBConn.GetCurrentFormVersion(instanceID, formKey)
	}
	if err != nil {
		slog.Error("error getting form for logic preview", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	visibility := map[string]bool{}
	for _, q := range form.Questions {
		visibility[q.ID] = flowengine.IsQuestionVisible(q, req.Answers)
	}

	c.JSON(http.StatusOK, gin.H{
		"visibility": visibility,
		"next":       flowengine.NextQuestion(*form, req.Answers, req.Cursor),
	})
}

func (h *HttpEndpoints) getResponseSessions(c *gin.Context) {
	instanceID := c.Param("instanceID")
	formKey := c.Param("formKey")
	status := c.DefaultQuery("status", "")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.formDBConn.GetResponseSessionsForForm(instanceID, formKey, status, query.Page, query.Limit)
	if err != nil {
		slog.Error("error getting response sessions", slog.String("instanceID", instanceID), slog.String("formKey", formKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting response sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"page":     query.Page,
		"limit":    query.Limit,
	})
}
