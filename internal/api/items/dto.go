package items

import "github.com/shopspring/decimal"

type CreateItemRequest struct {
	CategoryID      string           `json:"category_id" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	ImageURL        *string          `json:"image_url"`
	Status          string           `json:"status"`
	IsFeatured      bool             `json:"is_featured"`
	DisplayOrder    *int             `json:"display_order"`
	PreparationTime *int             `json:"preparation_time"`
	Calories        *int             `json:"calories"`
	PortionSize     *string          `json:"portion_size"`
}

type UpdateItemRequest struct {
	CategoryID      *string          `json:"category_id"`
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	ImageURL        *string          `json:"image_url"`
	Status          *string          `json:"status"`
	IsFeatured      *bool            `json:"is_featured"`
	DisplayOrder    *int             `json:"display_order"`
	PreparationTime *int             `json:"preparation_time"`
	Calories        *int             `json:"calories"`
	PortionSize     *string          `json:"portion_size"`
}
