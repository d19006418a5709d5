package repos

import (
	"context"
	"errors"

	"menu-app/internal/domain/menu"
	"menu-app/internal/platform/logger"

	"gorm.io/gorm"
)

type MenuRepo interface {
	ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]menu.Category, error)
	GetCategory(ctx context.Context, tx *gorm.DB, id string) (*menu.Category, error)
	CreateCategory(ctx context.Context, tx *gorm.DB, c *menu.Category) error
	UpdateCategory(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (*menu.Category, error)
	DeleteCategory(ctx context.Context, tx *gorm.DB, id string) error
	ReorderCategories(ctx context.Context, tx *gorm.DB, orderedIDs []string) error
	SlugExists(ctx context.Context, tx *gorm.DB, slug, exceptID string) (bool, error)

	ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]menu.MenuItem, error)
	ListItemsByCategory(ctx context.Context, tx *gorm.DB, categoryID string) ([]menu.MenuItem, error)
	GetItem(ctx context.Context, tx *gorm.DB, id string) (*menu.MenuItem, error)
	CreateItem(ctx context.Context, tx *gorm.DB, m *menu.MenuItem) error
	UpdateItem(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (*menu.MenuItem, error)
	DeleteItem(ctx context.Context, tx *gorm.DB, id string) error

	CountCategories(ctx context.Context, tx *gorm.DB) (int64, error)
	CountItems(ctx context.Context, tx *gorm.DB) (int64, error)

	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type menuRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMenuRepo(db *gorm.DB, baseLog *logger.Logger) MenuRepo {
	return &menuRepo{db: db, log: baseLog.With("repo", "MenuRepo")}
}

func (r *menuRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

/* ---------------- categories ---------------- */

func (r *menuRepo) ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]menu.Category, error) {
	q := pick(tx, r.db).WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []menu.Category
	if err := q.Order("display_order ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *menuRepo) GetCategory(ctx context.Context, tx *gorm.DB, id string) (*menu.Category, error) {
	var c menu.Category
	err := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *menuRepo) CreateCategory(ctx context.Context, tx *gorm.DB, c *menu.Category) error {
	if err := pick(tx, r.db).WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *menuRepo) UpdateCategory(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (*menu.Category, error) {
	if len(fields) > 0 {
		res := pick(tx, r.db).WithContext(ctx).Model(&menu.Category{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			if isDuplicateKey(res.Error) {
				return nil, ErrConflict
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetCategory(ctx, tx, id)
}

func (r *menuRepo) DeleteCategory(ctx context.Context, tx *gorm.DB, id string) error {
	res := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Delete(&menu.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderCategories sets display_order to each id's position in orderedIDs.
func (r *menuRepo) ReorderCategories(ctx context.Context, tx *gorm.DB, orderedIDs []string) error {
	apply := func(db *gorm.DB) error {
		for i, id := range orderedIDs {
			res := db.Model(&menu.Category{}).Where("id = ?", id).Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	}
	if tx != nil {
		return apply(tx.WithContext(ctx))
	}
	return r.db.WithContext(ctx).Transaction(apply)
}

func (r *menuRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug, exceptID string) (bool, error) {
	q := pick(tx, r.db).WithContext(ctx).Model(&menu.Category{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

/* ---------------- items ---------------- */

func (r *menuRepo) ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]menu.MenuItem, error) {
	q := pick(tx, r.db).WithContext(ctx)
	if availableOnly {
		q = q.Where("status = ?", menu.StatusAvailable)
	}
	var out []menu.MenuItem
	if err := q.Order("display_order ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *menuRepo) ListItemsByCategory(ctx context.Context, tx *gorm.DB, categoryID string) ([]menu.MenuItem, error) {
	var out []menu.MenuItem
	if err := pick(tx, r.db).WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("display_order ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *menuRepo) GetItem(ctx context.Context, tx *gorm.DB, id string) (*menu.MenuItem, error) {
	var m menu.MenuItem
	err := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *menuRepo) CreateItem(ctx context.Context, tx *gorm.DB, m *menu.MenuItem) error {
	return pick(tx, r.db).WithContext(ctx).Create(m).Error
}

func (r *menuRepo) UpdateItem(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (*menu.MenuItem, error) {
	if len(fields) > 0 {
		res := pick(tx, r.db).WithContext(ctx).Model(&menu.MenuItem{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetItem(ctx, tx, id)
}

func (r *menuRepo) DeleteItem(ctx context.Context, tx *gorm.DB, id string) error {
	res := pick(tx, r.db).WithContext(ctx).Where("id = ?", id).Delete(&menu.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepo) CountCategories(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := pick(tx, r.db).WithContext(ctx).Model(&menu.Category{}).Count(&n).Error
	return n, err
}

func (r *menuRepo) CountItems(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := pick(tx, r.db).WithContext(ctx).Model(&menu.MenuItem{}).Count(&n).Error
	return n, err
}
