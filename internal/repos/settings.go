package repos

import (
	"context"
	"errors"

	"menu-app/internal/domain/settings"
	"menu-app/internal/platform/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileUpdate carries the branding fields an admin can edit. Nil means unchanged.
type ProfileUpdate struct {
	RestaurantName *string
	Tagline        *string
	Description    *string
	Phone          *string
	Email          *string
	WebsiteURL     *string
	ShowPrices     *bool
}

type SettingsRepo interface {
	// Get returns the singleton, creating the default row on first use.
	Get(ctx context.Context, tx *gorm.DB) (*settings.RestaurantSettings, error)
	UpdateLanguages(ctx context.Context, tx *gorm.DB, upd settings.LanguagesUpdate) (*settings.RestaurantSettings, error)
	// UpdateTranslation sets the provider. A nil apiKey keeps the stored key.
	UpdateTranslation(ctx context.Context, tx *gorm.DB, service string, apiKey *string) (*settings.RestaurantSettings, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, upd ProfileUpdate) (*settings.RestaurantSettings, error)
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	return &settingsRepo{db: db, log: baseLog.With("repo", "SettingsRepo")}
}

func (r *settingsRepo) Get(ctx context.Context, tx *gorm.DB) (*settings.RestaurantSettings, error) {
	db := pick(tx, r.db).WithContext(ctx)

	var s settings.RestaurantSettings
	err := db.Order("created_at ASC").First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := settings.NewDefault()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		r.log.Info("seeded default restaurant settings", "default_language", seed.DefaultLanguage)
	}
	// another request may have won the insert
	if err := db.Order("created_at ASC").First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) save(ctx context.Context, tx *gorm.DB, fields map[string]interface{}) (*settings.RestaurantSettings, error) {
	cur, err := r.Get(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := pick(tx, r.db).WithContext(ctx).
			Model(&settings.RestaurantSettings{}).
			Where("id = ?", cur.ID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	var out settings.RestaurantSettings
	if err := pick(tx, r.db).WithContext(ctx).Where("id = ?", cur.ID).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *settingsRepo) UpdateLanguages(ctx context.Context, tx *gorm.DB, upd settings.LanguagesUpdate) (*settings.RestaurantSettings, error) {
	var tmp settings.RestaurantSettings
	tmp.SetLanguages(upd.ActiveLanguages)
	return r.save(ctx, tx, map[string]interface{}{
		"default_language": upd.DefaultLanguage,
		"active_languages": tmp.ActiveLanguages,
	})
}

func (r *settingsRepo) UpdateTranslation(ctx context.Context, tx *gorm.DB, service string, apiKey *string) (*settings.RestaurantSettings, error) {
	fields := map[string]interface{}{"translation_service": service}
	if apiKey != nil {
		fields["translation_api_key"] = *apiKey
	}
	return r.save(ctx, tx, fields)
}

func (r *settingsRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, upd ProfileUpdate) (*settings.RestaurantSettings, error) {
	fields := map[string]interface{}{}
	if upd.RestaurantName != nil {
		fields["restaurant_name"] = *upd.RestaurantName
	}
	if upd.Tagline != nil {
		fields["tagline"] = *upd.Tagline
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.WebsiteURL != nil {
		fields["website_url"] = *upd.WebsiteURL
	}
	if upd.ShowPrices != nil {
		fields["show_prices"] = *upd.ShowPrices
	}
	return r.save(ctx, tx, fields)
}
