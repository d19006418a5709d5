package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusSeasonal    = "seasonal"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusSeasonal:
		return true
	}
	return false
}

type MenuItem struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CategoryID string `gorm:"type:uuid;not null;index:idx_menu_items_category_order,priority:1" json:"category_id"`

	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    *string         `gorm:"column:image_url;type:text" json:"image_url,omitempty"`

	Status       string `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	IsFeatured   bool   `gorm:"not null;default:false" json:"is_featured"`
	DisplayOrder int    `gorm:"not null;default:0;index:idx_menu_items_category_order,priority:2" json:"display_order"`

	PreparationTime *int    `json:"preparation_time,omitempty"`
	Calories        *int    `json:"calories,omitempty"`
	PortionSize     *string `gorm:"type:varchar(50)" json:"portion_size,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = StatusAvailable
	}
	return nil
}

func (m *MenuItem) DescriptionText() string {
	if m.Description == nil {
		return ""
	}
	return *m.Description
}
