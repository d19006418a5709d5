package translations

type AutoTranslateRequest struct {
	EntityType     string `json:"entity_type" binding:"required"`
	EntityID       string `json:"entity_id" binding:"required"`
	FieldName      string `json:"field_name" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	// Optional. When empty the entity's current default-language text is used.
	SourceText string `json:"source_text"`
}

type AutoTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	Cached         bool   `json:"cached"`
	ID             string `json:"id,omitempty"`
}

type ManualTranslationRequest struct {
	EntityType     string `json:"entity_type" binding:"required"`
	EntityID       string `json:"entity_id" binding:"required"`
	FieldName      string `json:"field_name" binding:"required"`
	Language       string `json:"language" binding:"required"`
	TranslatedText string `json:"translated_text"`
}

type TranslateAllRequest struct {
	RefreshStale bool `json:"refresh_stale"`
}
