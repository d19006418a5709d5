package menu

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Icon        *string `gorm:"type:varchar(50)" json:"icon,omitempty"`
	ImageURL    *string `gorm:"column:image_url;type:text" json:"image_url,omitempty"`

	DisplayOrder int  `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DescriptionText returns the description or "" when unset.
func (c *Category) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
