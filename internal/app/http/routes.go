package routes

import (
	adminapi "menu-app/internal/api/admin"
	authapi "menu-app/internal/api/auth"
	"menu-app/internal/api/categories"
	"menu-app/internal/api/items"
	"menu-app/internal/api/menuapi"
	"menu-app/internal/api/settingsapi"
	"menu-app/internal/api/translations"
	"menu-app/internal/app/http/middleware"
	"menu-app/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *authapi.Handler
	Menu         *menuapi.Handler
	Admin        *adminapi.Handler
	Categories   *categories.Handler
	Items        *items.Handler
	Translations *translations.Handler
	Settings     *settingsapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret string, log *logger.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public menu
	r.GET("/languages", h.Menu.Languages)
	r.GET("/menu", h.Menu.Menu)
	r.GET("/restaurant", h.Menu.Restaurant)

	public := r.Group("/auth")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(jwtSecret, log),
		middleware.RequireRole("admin"),
		middleware.SanitizeAndCleanInputMiddleware(),
	)
	admin.GET("/me", h.Auth.Me)
	admin.GET("/dashboard", h.Admin.Dashboard)

	admin.GET("/categories", h.Categories.List)
	admin.POST("/categories", h.Categories.Create)
	admin.POST("/categories/reorder", h.Categories.Reorder)
	admin.GET("/categories/:id", h.Categories.Get)
	admin.PUT("/categories/:id", h.Categories.Update)
	admin.DELETE("/categories/:id", h.Categories.Delete)

	admin.GET("/items", h.Items.List)
	admin.POST("/items", h.Items.Create)
	admin.GET("/items/:id", h.Items.Get)
	admin.PUT("/items/:id", h.Items.Update)
	admin.DELETE("/items/:id", h.Items.Delete)

	admin.GET("/translations/:entityType/:entityID", h.Translations.ListForEntity)
	admin.POST("/translations/auto", h.Translations.Auto)
	admin.POST("/translations/translate-all", h.Translations.TranslateAll)
	admin.PUT("/translations", h.Translations.SaveManual)
	admin.DELETE("/translations/:id", h.Translations.Delete)

	admin.GET("/settings", h.Settings.Get)
	admin.PUT("/settings/languages", h.Settings.UpdateLanguages)
	admin.PUT("/settings/translation", h.Settings.UpdateTranslation)
	admin.PUT("/settings/profile", h.Settings.UpdateProfile)
}
