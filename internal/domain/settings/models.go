package settings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ServiceGoogle = "google"
	ServiceDeepL  = "deepl"

	DefaultLanguage = "pt"

	// SingletonID is the primary key of the seeded row, so concurrent seeding
	// collides on the key instead of creating a second row.
	SingletonID = "00000000-0000-0000-0000-000000000001"
)

// RestaurantSettings is a singleton row holding branding and the language policy.
type RestaurantSettings struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	RestaurantName string  `gorm:"type:varchar(255);not null;default:''" json:"restaurant_name"`
	Tagline        *string `gorm:"type:text" json:"tagline,omitempty"`
	Description    *string `gorm:"type:text" json:"description,omitempty"`
	Phone          *string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email          *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	WebsiteURL     *string `gorm:"column:website_url;type:text" json:"website_url,omitempty"`
	ShowPrices     bool    `gorm:"not null;default:true" json:"show_prices"`

	DefaultLanguage    string         `gorm:"type:varchar(10);not null;default:'pt'" json:"default_language"`
	ActiveLanguages    datatypes.JSON `json:"active_languages"`
	TranslationService string         `gorm:"type:varchar(20);not null;default:'google'" json:"translation_service"`
	TranslationAPIKey  *string        `gorm:"column:translation_api_key;type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *RestaurantSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// NewDefault returns the settings seeded on first use.
func NewDefault() *RestaurantSettings {
	s := &RestaurantSettings{
		ID:                 SingletonID,
		DefaultLanguage:    DefaultLanguage,
		TranslationService: ServiceGoogle,
		ShowPrices:         true,
	}
	s.SetLanguages([]string{DefaultLanguage})
	return s
}

// Languages decodes the active_languages column. A malformed value yields nil.
func (s *RestaurantSettings) Languages() []string {
	if len(s.ActiveLanguages) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(s.ActiveLanguages, &out); err != nil {
		return nil
	}
	return out
}

func (s *RestaurantSettings) SetLanguages(langs []string) {
	b, _ := json.Marshal(langs)
	s.ActiveLanguages = datatypes.JSON(b)
}

func (s *RestaurantSettings) HasAPIKey() bool {
	return s.TranslationAPIKey != nil && *s.TranslationAPIKey != ""
}

// Policy snapshots the language policy for one request.
func (s *RestaurantSettings) Policy() LanguagePolicy {
	p := LanguagePolicy{
		DefaultLanguage:    s.DefaultLanguage,
		ActiveLanguages:    s.Languages(),
		TranslationService: s.TranslationService,
	}
	if s.TranslationAPIKey != nil {
		p.TranslationAPIKey = *s.TranslationAPIKey
	}
	return p
}

func (s *RestaurantSettings) TaglineText() string {
	if s.Tagline == nil {
		return ""
	}
	return *s.Tagline
}

func (s *RestaurantSettings) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}
