package i18n

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EntityCategory           = "category"
	EntityMenuItem           = "menu_item"
	EntityRestaurantSettings = "restaurant_settings"

	FieldName        = "name"
	FieldDescription = "description"
	FieldTagline     = "tagline"
)

// Translation is one cached rendering of an entity text field in a non-default language.
type Translation struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	EntityType string `gorm:"type:varchar(50);not null;uniqueIndex:idx_translations_tuple,priority:1" json:"entity_type"`
	EntityID   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_translations_tuple,priority:2" json:"entity_id"`
	FieldName  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_translations_tuple,priority:3" json:"field_name"`
	Language   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_translations_tuple,priority:4;index" json:"language"`

	TranslatedText     string   `gorm:"type:text;not null" json:"translated_text"`
	IsAutoTranslated   bool     `gorm:"not null;default:false" json:"is_auto_translated"`
	TranslationQuality *float64 `json:"translation_quality,omitempty"`
	TranslationService *string  `gorm:"type:varchar(20)" json:"translation_service,omitempty"`

	// sha256 of the default-language text this row was produced from.
	SourceHash string `gorm:"type:varchar(64);not null;default:''" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Translation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *Translation) Key() Key {
	return Key{EntityType: t.EntityType, EntityID: t.EntityID, FieldName: t.FieldName, Language: t.Language}
}

// IsStaleFor reports whether the row was produced from a different source text.
// Rows without a recorded hash are never stale.
func (t *Translation) IsStaleFor(source string) bool {
	return t.SourceHash != "" && t.SourceHash != SourceHash(source)
}

// Key identifies at most one Translation row.
type Key struct {
	EntityType string
	EntityID   string
	FieldName  string
	Language   string
}

var entityFields = map[string][]string{
	EntityCategory:           {FieldName, FieldDescription},
	EntityMenuItem:           {FieldName, FieldDescription},
	EntityRestaurantSettings: {FieldTagline, FieldDescription},
}

func ValidEntityType(entityType string) bool {
	_, ok := entityFields[entityType]
	return ok
}

// ValidField reports whether field is translatable for entityType.
func ValidField(entityType, field string) bool {
	for _, f := range entityFields[entityType] {
		if f == field {
			return true
		}
	}
	return false
}

// Fields returns the translatable fields of entityType.
func Fields(entityType string) []string {
	return append([]string(nil), entityFields[entityType]...)
}

func SourceHash(source string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(source)))
	return hex.EncodeToString(sum[:])
}
