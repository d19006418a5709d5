package translations

import (
	"context"
	"errors"
	"io"
	"net/http"

	"menu-app/internal/api/respond"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      *translation.Service
	settings repos.SettingsRepo
	menu     repos.MenuRepo
	log      *logger.Logger
}

func NewHandler(svc *translation.Service, settingsRepo repos.SettingsRepo, menuRepo repos.MenuRepo, baseLog *logger.Logger) *Handler {
	return &Handler{svc: svc, settings: settingsRepo, menu: menuRepo, log: baseLog.With("handler", "translations")}
}

// GET /admin/translations/:entityType/:entityID
func (h *Handler) ListForEntity(c *gin.Context) {
	ctx := c.Request.Context()
	entityType, entityID := c.Param("entityType"), c.Param("entityID")

	source, err := h.sourceFields(ctx, entityType, entityID)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	rows, err := h.svc.EntityTranslations(ctx, entityType, entityID, source)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": source, "translations": rows})
}

// POST /admin/translations/auto
func (h *Handler) Auto(c *gin.Context) {
	var req AutoTranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	s, err := h.settings.Get(ctx, nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	sourceText := req.SourceText
	if sourceText == "" {
		source, err := h.sourceFields(ctx, req.EntityType, req.EntityID)
		if err != nil {
			respond.Error(c, h.log, err)
			return
		}
		sourceText = source[req.FieldName]
	}

	res, err := h.svc.AutoTranslate(ctx, s.Policy(), translation.AutoTranslateRequest{
		EntityType:     req.EntityType,
		EntityID:       req.EntityID,
		FieldName:      req.FieldName,
		TargetLanguage: req.TargetLanguage,
		SourceText:     sourceText,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	out := AutoTranslateResponse{TranslatedText: res.TranslatedText, Cached: res.Cached}
	if res.Translation != nil {
		out.ID = res.Translation.ID
	}
	c.JSON(http.StatusOK, out)
}

// PUT /admin/translations
func (h *Handler) SaveManual(c *gin.Context) {
	var req ManualTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	s, err := h.settings.Get(ctx, nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	source, err := h.sourceFields(ctx, req.EntityType, req.EntityID)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	row, err := h.svc.SaveManual(ctx, s.Policy(), translation.ManualRequest{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		FieldName:  req.FieldName,
		Language:   req.Language,
		Text:       req.TranslatedText,
		SourceText: source[req.FieldName],
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// DELETE /admin/translations/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteTranslation(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Translation deleted"})
}

// POST /admin/translations/translate-all
func (h *Handler) TranslateAll(c *gin.Context) {
	var req TranslateAllRequest
	// The body is optional; chunked requests carry no Content-Length.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	s, err := h.settings.Get(ctx, nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	res, err := h.svc.TranslateAll(ctx, s.Policy(), translation.TranslateAllOptions{RefreshStale: req.RefreshStale})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// rows written before the interruption are kept; report them
		h.log.Warn("translate-all interrupted", "error", err, "succeeded", res.Succeeded, "failed", res.Failed)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "translate-all interrupted", "result": res})
		return
	}
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
