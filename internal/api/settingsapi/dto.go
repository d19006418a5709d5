package settingsapi

import "menu-app/internal/domain/settings"

type LanguagesRequest struct {
	DefaultLanguage string   `json:"default_language" binding:"required"`
	ActiveLanguages []string `json:"active_languages" binding:"required"`
}

type TranslationRequest struct {
	TranslationService string `json:"translation_service" binding:"required"`
	// Nil keeps the stored key, "" clears it.
	TranslationAPIKey *string `json:"translation_api_key"`
}

type ProfileRequest struct {
	RestaurantName *string `json:"restaurant_name"`
	Tagline        *string `json:"tagline"`
	Description    *string `json:"description"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	WebsiteURL     *string `json:"website_url"`
	ShowPrices     *bool   `json:"show_prices"`
}

// SettingsResponse never carries the API key itself.
type SettingsResponse struct {
	*settings.RestaurantSettings
	ActiveLanguages []string `json:"active_languages"`
	HasAPIKey       bool     `json:"has_api_key"`
}

func toResponse(s *settings.RestaurantSettings) SettingsResponse {
	return SettingsResponse{RestaurantSettings: s, ActiveLanguages: s.Languages(), HasAPIKey: s.HasAPIKey()}
}
