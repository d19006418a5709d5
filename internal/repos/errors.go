package repos

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrConflict is returned when an insert hits a unique constraint.
	ErrConflict = errors.New("record already exists")
	ErrNotFound = errors.New("record not found")
)

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func pick(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
