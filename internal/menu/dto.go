package menu

import "github.com/shopspring/decimal"

type LocalizedItem struct {
	ID              string           `json:"id"`
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	Status          string           `json:"status"`
	IsFeatured      bool             `json:"is_featured"`
	DisplayOrder    int              `json:"display_order"`
	PreparationTime *int             `json:"preparation_time,omitempty"`
	Calories        *int             `json:"calories,omitempty"`
	PortionSize     *string          `json:"portion_size,omitempty"`
}

type LocalizedCategory struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Icon         *string         `json:"icon,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	DisplayOrder int             `json:"display_order"`
	Items        []LocalizedItem `json:"items"`
}

type LocalizedRestaurant struct {
	Language        string   `json:"language"`
	DefaultLanguage string   `json:"default_language"`
	ActiveLanguages []string `json:"active_languages"`
	RestaurantName  string   `json:"restaurant_name"`
	Tagline         *string  `json:"tagline"`
	Description     *string  `json:"description"`
	Phone           *string  `json:"phone,omitempty"`
	Email           *string  `json:"email,omitempty"`
	WebsiteURL      *string  `json:"website_url,omitempty"`
	ShowPrices      bool     `json:"show_prices"`
}

// HidePrices clears every item price in place.
func HidePrices(cats []LocalizedCategory) {
	for i := range cats {
		for j := range cats[i].Items {
			cats[i].Items[j].Price = nil
		}
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
