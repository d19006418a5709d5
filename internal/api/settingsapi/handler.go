package settingsapi

import (
	"context"
	"net/http"
	"strings"

	"menu-app/internal/api/respond"
	"menu-app/internal/domain/settings"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo        repos.SettingsRepo
	invalidator translation.Invalidator
	log         *logger.Logger
}

func NewHandler(repo repos.SettingsRepo, invalidator translation.Invalidator, baseLog *logger.Logger) *Handler {
	return &Handler{repo: repo, invalidator: invalidator, log: baseLog.With("handler", "settings")}
}

// GET /admin/settings
func (h *Handler) Get(c *gin.Context) {
	s, err := h.repo.Get(c.Request.Context(), nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// PUT /admin/settings/languages
func (h *Handler) UpdateLanguages(c *gin.Context) {
	var req LanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd, err := settings.ValidateLanguages(settings.LanguagesUpdate{
		DefaultLanguage: req.DefaultLanguage,
		ActiveLanguages: req.ActiveLanguages,
	})
	if err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	s, err := h.repo.UpdateLanguages(ctx, nil, upd)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	h.log.Info("language policy updated", "default", upd.DefaultLanguage, "active", upd.ActiveLanguages)
	c.JSON(http.StatusOK, toResponse(s))
}

// PUT /admin/settings/translation
func (h *Handler) UpdateTranslation(c *gin.Context) {
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := strings.ToLower(strings.TrimSpace(req.TranslationService))
	if !settings.ValidService(service) {
		respond.BadRequest(c, "translation_service must be google or deepl")
		return
	}

	var apiKey *string
	if req.TranslationAPIKey != nil {
		k := strings.TrimSpace(*req.TranslationAPIKey)
		apiKey = &k
	}

	s, err := h.repo.UpdateTranslation(c.Request.Context(), nil, service, apiKey)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.log.Info("translation provider updated", "service", service, "api_key_changed", apiKey != nil)
	c.JSON(http.StatusOK, toResponse(s))
}

// PUT /admin/settings/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RestaurantName != nil && strings.TrimSpace(*req.RestaurantName) == "" {
		respond.BadRequest(c, "restaurant_name cannot be empty")
		return
	}

	ctx := c.Request.Context()
	s, err := h.repo.UpdateProfile(ctx, nil, repos.ProfileUpdate{
		RestaurantName: req.RestaurantName,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Phone:          req.Phone,
		Email:          req.Email,
		WebsiteURL:     req.WebsiteURL,
		ShowPrices:     req.ShowPrices,
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusOK, toResponse(s))
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.invalidator.Invalidate(ctx); err != nil {
		h.log.Warn("menu cache invalidation failed", "error", err)
	}
}
