package settings

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LanguagePolicy is the per-request view of the language settings.
type LanguagePolicy struct {
	DefaultLanguage    string
	ActiveLanguages    []string
	TranslationService string
	TranslationAPIKey  string
}

func (p LanguagePolicy) IsDefault(lang string) bool {
	return strings.EqualFold(lang, p.DefaultLanguage)
}

func (p LanguagePolicy) IsActive(lang string) bool {
	for _, l := range p.ActiveLanguages {
		if strings.EqualFold(l, lang) {
			return true
		}
	}
	return false
}

// TargetLanguages returns the active languages minus the default, in order.
func (p LanguagePolicy) TargetLanguages() []string {
	out := make([]string, 0, len(p.ActiveLanguages))
	for _, l := range p.ActiveLanguages {
		if !p.IsDefault(l) {
			out = append(out, l)
		}
	}
	return out
}

func (p LanguagePolicy) HasCredential() bool {
	return strings.TrimSpace(p.TranslationAPIKey) != ""
}

// NormalizeLanguage parses a language tag and returns its canonical short code.
// "PT", "pt-BR" and "en_US" become "pt", "pt-BR" and "en-US".
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// LanguagesUpdate is an admin request to change the language policy.
type LanguagesUpdate struct {
	DefaultLanguage string
	ActiveLanguages []string
}

// ValidateLanguages normalizes the update. At least one language must be
// active and the default must be one of them.
func ValidateLanguages(upd LanguagesUpdate) (LanguagesUpdate, error) {
	def, err := NormalizeLanguage(upd.DefaultLanguage)
	if err != nil {
		return LanguagesUpdate{}, err
	}

	seen := make(map[string]bool, len(upd.ActiveLanguages))
	active := make([]string, 0, len(upd.ActiveLanguages))
	for _, l := range upd.ActiveLanguages {
		n, err := NormalizeLanguage(l)
		if err != nil {
			return LanguagesUpdate{}, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		active = append(active, n)
	}

	if len(active) == 0 {
		return LanguagesUpdate{}, fmt.Errorf("at least one active language is required")
	}
	if !seen[def] {
		return LanguagesUpdate{}, fmt.Errorf("cannot deactivate the default language %q", def)
	}
	return LanguagesUpdate{DefaultLanguage: def, ActiveLanguages: active}, nil
}

func ValidService(s string) bool {
	return s == ServiceGoogle || s == ServiceDeepL
}
