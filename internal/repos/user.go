package repos

import (
	"context"
	"errors"

	"menu-app/internal/domain/users"
	"menu-app/internal/platform/logger"

	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, u *users.User) error
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*users.User, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, u *users.User) error {
	if err := pick(tx, ur.db).WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*users.User, error) {
	var u users.User
	err := pick(tx, ur.db).WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := pick(tx, ur.db).WithContext(ctx).Model(&users.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
