package admin

import (
	"net/http"

	"menu-app/internal/api/respond"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type DashboardStats struct {
	Categories         int64    `json:"categories"`
	Items              int64    `json:"items"`
	Translations       int64    `json:"translations"`
	DefaultLanguage    string   `json:"default_language"`
	ActiveLanguages    []string `json:"active_languages"`
	TranslationService string   `json:"translation_service"`
	HasAPIKey          bool     `json:"has_api_key"`
}

type Handler struct {
	menu         repos.MenuRepo
	translations repos.TranslationRepo
	settings     repos.SettingsRepo
	log          *logger.Logger
}

func NewHandler(menuRepo repos.MenuRepo, translations repos.TranslationRepo, settingsRepo repos.SettingsRepo, baseLog *logger.Logger) *Handler {
	return &Handler{menu: menuRepo, translations: translations, settings: settingsRepo, log: baseLog.With("handler", "admin")}
}

// GET /admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	var stats DashboardStats

	s, err := h.settings.Get(ctx, nil)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	stats.DefaultLanguage = s.DefaultLanguage
	stats.ActiveLanguages = s.Languages()
	stats.TranslationService = s.TranslationService
	stats.HasAPIKey = s.HasAPIKey()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Categories, err = h.menu.CountCategories(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.Items, err = h.menu.CountItems(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.Translations, err = h.translations.Count(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		respond.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
