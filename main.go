package main

import (
	"log"
	"time"

	"menu-app/config"
	"menu-app/database"
	adminapi "menu-app/internal/api/admin"
	authapi "menu-app/internal/api/auth"
	"menu-app/internal/api/categories"
	"menu-app/internal/api/items"
	"menu-app/internal/api/menuapi"
	"menu-app/internal/api/settingsapi"
	"menu-app/internal/api/translations"
	routes "menu-app/internal/app/http"
	"menu-app/internal/app/http/middleware"
	"menu-app/internal/infra/menucache"
	"menu-app/internal/menu"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation"
	"menu-app/internal/translation/provider"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Open(cfg.DBURL, appLog)
	if err != nil {
		appLog.Fatal("database init failed", "error", err)
	}

	userRepo := repos.NewUserRepo(db, appLog)
	menuRepo := repos.NewMenuRepo(db, appLog)
	settingsRepo := repos.NewSettingsRepo(db, appLog)
	translationRepo := repos.NewTranslationRepo(db, appLog)

	cache := menucache.New(cfg.RedisURL, cfg.MenuCacheTTL, appLog)
	defer cache.Close()

	assembler := menu.NewAssembler(menuRepo, translationRepo, cache, appLog)
	registry := provider.NewDefaultRegistry(provider.Endpoints{
		GoogleURL: cfg.GoogleTranslateURL,
		DeepLURL:  cfg.DeepLURL,
	}, cfg.TranslationTimeout)
	translationSvc := translation.NewService(translationRepo, menuRepo, registry, assembler, appLog, translation.Options{
		Timeout:     cfg.TranslationTimeout,
		Concurrency: cfg.TranslateAllConcurrency,
		RPS:         cfg.TranslateRPS,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(appLog))

	// CORS before routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:         authapi.NewHandler(userRepo, cfg.JWTSecret, appLog),
		Menu:         menuapi.NewHandler(settingsRepo, assembler, appLog),
		Admin:        adminapi.NewHandler(menuRepo, translationRepo, settingsRepo, appLog),
		Categories:   categories.NewHandler(menuRepo, translationRepo, assembler, appLog),
		Items:        items.NewHandler(menuRepo, translationRepo, assembler, appLog),
		Translations: translations.NewHandler(translationSvc, settingsRepo, menuRepo, appLog),
		Settings:     settingsapi.NewHandler(settingsRepo, assembler, appLog),
	}, cfg.JWTSecret, appLog)

	appLog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "providers", registry.IDs())
	if err := r.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
