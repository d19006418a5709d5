package translation

import "menu-app/internal/domain/i18n"

// Index is an in-memory lookup over a set of cached translations.
// It never performs I/O; a zero Index resolves everything to the default text.
type Index struct {
	rows map[i18n.Key]string
}

func NewIndex(rows []i18n.Translation) Index {
	m := make(map[i18n.Key]string, len(rows))
	for i := range rows {
		m[rows[i].Key()] = rows[i].TranslatedText
	}
	return Index{rows: m}
}

// Resolve returns the cached text for the field in lang, or defaultText.
func (ix Index) Resolve(entityType, entityID, field, lang, defaultText string) string {
	if text, ok := ix.rows[i18n.Key{EntityType: entityType, EntityID: entityID, FieldName: field, Language: lang}]; ok {
		return text
	}
	return defaultText
}
