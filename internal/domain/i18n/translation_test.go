package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidField(t *testing.T) {
	tests := []struct {
		entity, field string
		want          bool
	}{
		{EntityCategory, FieldName, true},
		{EntityCategory, FieldDescription, true},
		{EntityCategory, FieldTagline, false},
		{EntityMenuItem, FieldName, true},
		{EntityRestaurantSettings, FieldTagline, true},
		{EntityRestaurantSettings, FieldName, false},
		{"dish", FieldName, false},
	}
	for _, tt := range tests {
		t.Run(tt.entity+"/"+tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidField(tt.entity, tt.field))
		})
	}
}

func TestIsStaleFor(t *testing.T) {
	row := Translation{SourceHash: SourceHash("Sopa do dia")}
	assert.False(t, row.IsStaleFor("Sopa do dia"))
	assert.False(t, row.IsStaleFor("  Sopa do dia "))
	assert.True(t, row.IsStaleFor("Sopa de legumes"))

	legacy := Translation{}
	assert.False(t, legacy.IsStaleFor("anything"))
}

func TestFieldsReturnsCopy(t *testing.T) {
	f := Fields(EntityMenuItem)
	f[0] = "mutated"
	assert.Equal(t, FieldName, Fields(EntityMenuItem)[0])
}
