package translation

import (
	"testing"

	"menu-app/internal/domain/i18n"

	"github.com/stretchr/testify/assert"
)

func TestIndex_Resolve(t *testing.T) {
	ix := NewIndex([]i18n.Translation{
		{EntityType: i18n.EntityCategory, EntityID: "c1", FieldName: i18n.FieldName, Language: "en", TranslatedText: "Starters"},
		{EntityType: i18n.EntityMenuItem, EntityID: "i1", FieldName: i18n.FieldDescription, Language: "en", TranslatedText: "Creamy"},
	})

	tests := []struct {
		name                         string
		entity, id, field, lang, def string
		want                         string
	}{
		{"hit", i18n.EntityCategory, "c1", i18n.FieldName, "en", "Entradas", "Starters"},
		{"other language falls back", i18n.EntityCategory, "c1", i18n.FieldName, "es", "Entradas", "Entradas"},
		{"other field falls back", i18n.EntityCategory, "c1", i18n.FieldDescription, "en", "Frias", "Frias"},
		{"other entity type falls back", i18n.EntityMenuItem, "c1", i18n.FieldName, "en", "Sopa", "Sopa"},
		{"empty default stays empty", i18n.EntityMenuItem, "i2", i18n.FieldDescription, "en", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.Resolve(tt.entity, tt.id, tt.field, tt.lang, tt.def))
		})
	}
}

func TestIndex_Zero(t *testing.T) {
	var ix Index
	assert.Equal(t, "Entradas", ix.Resolve(i18n.EntityCategory, "c1", i18n.FieldName, "en", "Entradas"))
}
