package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetLanguages(t *testing.T) {
	p := LanguagePolicy{DefaultLanguage: "pt", ActiveLanguages: []string{"pt", "en", "es"}}
	assert.Equal(t, []string{"en", "es"}, p.TargetLanguages())

	only := LanguagePolicy{DefaultLanguage: "pt", ActiveLanguages: []string{"pt"}}
	assert.Empty(t, only.TargetLanguages())
}

func TestPolicyChecks(t *testing.T) {
	p := LanguagePolicy{DefaultLanguage: "pt", ActiveLanguages: []string{"pt", "en"}, TranslationAPIKey: "  "}
	assert.True(t, p.IsDefault("PT"))
	assert.True(t, p.IsActive("en"))
	assert.False(t, p.IsActive("fr"))
	assert.False(t, p.HasCredential())
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"pt", "pt", false},
		{"EN", "en", false},
		{"pt_BR", "pt-BR", false},
		{"", "", true},
		{"not a language", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeLanguage(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateLanguages(t *testing.T) {
	got, err := ValidateLanguages(LanguagesUpdate{DefaultLanguage: "PT", ActiveLanguages: []string{"pt", "en", "EN"}})
	require.NoError(t, err)
	assert.Equal(t, "pt", got.DefaultLanguage)
	assert.Equal(t, []string{"pt", "en"}, got.ActiveLanguages)

	_, err = ValidateLanguages(LanguagesUpdate{DefaultLanguage: "pt"})
	assert.Error(t, err, "empty active set")

	_, err = ValidateLanguages(LanguagesUpdate{DefaultLanguage: "pt", ActiveLanguages: []string{"en"}})
	assert.Error(t, err, "default must stay active")
}

func TestSettingsPolicy(t *testing.T) {
	s := NewDefault()
	key := "k"
	s.TranslationAPIKey = &key
	s.SetLanguages([]string{"pt", "en"})

	p := s.Policy()
	assert.Equal(t, "pt", p.DefaultLanguage)
	assert.Equal(t, []string{"pt", "en"}, p.ActiveLanguages)
	assert.Equal(t, ServiceGoogle, p.TranslationService)
	assert.True(t, p.HasCredential())
}
