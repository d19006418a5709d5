package repos

import (
	"context"
	"errors"
	"fmt"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/platform/logger"

	"gorm.io/gorm"
)

// TextUpdate is the set of columns rewritten when a translation is refreshed or overridden.
type TextUpdate struct {
	TranslatedText     string
	IsAutoTranslated   bool
	TranslationService *string
	SourceHash         string
}

type TranslationRepo interface {
	Find(ctx context.Context, tx *gorm.DB, key i18n.Key) (*i18n.Translation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*i18n.Translation, error)
	Insert(ctx context.Context, tx *gorm.DB, t *i18n.Translation) error
	Update(ctx context.Context, tx *gorm.DB, id string, upd TextUpdate) (*i18n.Translation, error)
	// UpdateAuto is Update restricted to machine-translated rows. A row that was
	// deleted or turned manual in the meantime yields ErrNotFound.
	UpdateAuto(ctx context.Context, tx *gorm.DB, id string, upd TextUpdate) (*i18n.Translation, error)
	ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error)
	ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) (int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type translationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTranslationRepo(db *gorm.DB, baseLog *logger.Logger) TranslationRepo {
	repoLog := baseLog.With("repo", "TranslationRepo")
	return &translationRepo{db: db, log: repoLog}
}

// Find returns nil, nil when no row exists for key.
func (r *translationRepo) Find(ctx context.Context, tx *gorm.DB, key i18n.Key) (*i18n.Translation, error) {
	var row i18n.Translation
	err := pick(tx, r.db).WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND field_name = ? AND language = ?",
			key.EntityType, key.EntityID, key.FieldName, key.Language).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *translationRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*i18n.Translation, error) {
	var row i18n.Translation
	err := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates the row. A duplicate tuple yields ErrConflict.
func (r *translationRepo) Insert(ctx context.Context, tx *gorm.DB, t *i18n.Translation) error {
	if err := pick(tx, r.db).WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicateKey(err) {
			r.log.Debug("translation insert conflict",
				"entity_type", t.EntityType, "entity_id", t.EntityID,
				"field", t.FieldName, "lang", t.Language)
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *translationRepo) Update(ctx context.Context, tx *gorm.DB, id string, upd TextUpdate) (*i18n.Translation, error) {
	return r.update(ctx, tx, pick(tx, r.db).WithContext(ctx).Where("id = ?", id), id, upd)
}

func (r *translationRepo) UpdateAuto(ctx context.Context, tx *gorm.DB, id string, upd TextUpdate) (*i18n.Translation, error) {
	scope := pick(tx, r.db).WithContext(ctx).Where("id = ? AND is_auto_translated = ?", id, true)
	return r.update(ctx, tx, scope, id, upd)
}

func (r *translationRepo) update(ctx context.Context, tx, scope *gorm.DB, id string, upd TextUpdate) (*i18n.Translation, error) {
	res := scope.Model(&i18n.Translation{}).
		Updates(map[string]interface{}{
			"translated_text":     upd.TranslatedText,
			"is_auto_translated":  upd.IsAutoTranslated,
			"translation_service": upd.TranslationService,
			"source_hash":         upd.SourceHash,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, tx, id)
}

func (r *translationRepo) ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error) {
	var rows []i18n.Translation
	if err := pick(tx, r.db).WithContext(ctx).
		Where("language = ?", lang).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepo) ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error) {
	var rows []i18n.Translation
	if err := pick(tx, r.db).WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("language ASC, field_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Delete(&i18n.Translation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByEntity removes every translation of one entity. Callers deleting the
// entity itself pass their transaction so both go together.
func (r *translationRepo) DeleteByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) (int64, error) {
	res := pick(tx, r.db).WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&i18n.Translation{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete translations of %s %s: %w", entityType, entityID, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *translationRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := pick(tx, r.db).WithContext(ctx).Model(&i18n.Translation{}).Count(&n).Error
	return n, err
}
