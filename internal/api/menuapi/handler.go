// Package menuapi serves the public, unauthenticated menu endpoints.
package menuapi

import (
	"context"
	"net/http"
	"strings"

	"menu-app/internal/api/respond"
	"menu-app/internal/domain/settings"
	"menu-app/internal/menu"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	settings  repos.SettingsRepo
	assembler *menu.Assembler
	log       *logger.Logger
}

func NewHandler(settingsRepo repos.SettingsRepo, assembler *menu.Assembler, baseLog *logger.Logger) *Handler {
	return &Handler{settings: settingsRepo, assembler: assembler, log: baseLog.With("handler", "menu")}
}

// GET /languages
func (h *Handler) Languages(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context(), nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"default_language": s.DefaultLanguage,
		"active_languages": s.Languages(),
	})
}

// GET /menu?lang=xx
func (h *Handler) Menu(c *gin.Context) {
	ctx := c.Request.Context()
	s, lang, ok := h.requestLanguage(ctx, c)
	if !ok {
		return
	}

	cats, err := h.assembler.LocalizedMenu(ctx, s.Policy(), lang)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	if !s.ShowPrices {
		menu.HidePrices(cats)
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "categories": cats})
}

// GET /restaurant?lang=xx
func (h *Handler) Restaurant(c *gin.Context) {
	ctx := c.Request.Context()
	s, lang, ok := h.requestLanguage(ctx, c)
	if !ok {
		return
	}

	out, err := h.assembler.LocalizedRestaurant(ctx, s, lang)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// requestLanguage loads the settings and resolves ?lang against them. An empty
// lang means the default; anything not active is rejected.
func (h *Handler) requestLanguage(ctx context.Context, c *gin.Context) (*settings.RestaurantSettings, string, bool) {
	s, err := h.settings.Get(ctx, nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return nil, "", false
	}

	raw := strings.TrimSpace(c.Query("lang"))
	if raw == "" {
		return s, s.DefaultLanguage, true
	}
	lang, err := settings.NormalizeLanguage(raw)
	if err != nil {
		respond.BadRequest(c, "invalid language")
		return nil, "", false
	}
	if !s.Policy().IsActive(lang) {
		respond.BadRequest(c, "language not active")
		return nil, "", false
	}
	return s, lang, true
}
