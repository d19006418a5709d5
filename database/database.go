package database

import (
	"fmt"
	"time"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/menu"
	"menu-app/internal/domain/settings"
	"menu-app/internal/domain/users"
	"menu-app/internal/platform/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table owned by the application, in migration order.
func Models() []interface{} {
	return []interface{}{
		// core
		&users.User{},
		&settings.RestaurantSettings{},

		// menu
		&menu.Category{},
		&menu.MenuItem{},

		// translation cache
		&i18n.Translation{},
	}
}

// Config returns the gorm settings shared by production and tests.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string, log *logger.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("connected and migrated", "tables", len(Models()))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
