package settingsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menu-app/internal/platform/dbtest"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.n++
	return nil
}

type view struct {
	DefaultLanguage    string   `json:"default_language"`
	ActiveLanguages    []string `json:"active_languages"`
	TranslationService string   `json:"translation_service"`
	HasAPIKey          bool     `json:"has_api_key"`
	RestaurantName     string   `json:"restaurant_name"`
	ShowPrices         bool     `json:"show_prices"`
}

func setup(t *testing.T) (*gin.Engine, repos.SettingsRepo, *countingInvalidator) {
	gin.SetMode(gin.TestMode)
	repo := repos.NewSettingsRepo(dbtest.Open(t), logger.Nop())
	inv := &countingInvalidator{}
	h := NewHandler(repo, inv, logger.Nop())

	r := gin.New()
	r.GET("/admin/settings", h.Get)
	r.PUT("/admin/settings/languages", h.UpdateLanguages)
	r.PUT("/admin/settings/translation", h.UpdateTranslation)
	r.PUT("/admin/settings/profile", h.UpdateProfile)
	return r, repo, inv
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) view {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v view
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestGet_SeedsDefaults(t *testing.T) {
	r, _, _ := setup(t)
	v := decode(t, do(r, http.MethodGet, "/admin/settings", ""))
	assert.Equal(t, "pt", v.DefaultLanguage)
	assert.Equal(t, []string{"pt"}, v.ActiveLanguages)
	assert.Equal(t, "google", v.TranslationService)
	assert.False(t, v.HasAPIKey)
	assert.True(t, v.ShowPrices)
}

func TestUpdateLanguages(t *testing.T) {
	r, _, inv := setup(t)

	v := decode(t, do(r, http.MethodPut, "/admin/settings/languages", `{"default_language":"pt","active_languages":["pt","EN","en","pt_BR"]}`))
	assert.Equal(t, []string{"pt", "en", "pt-BR"}, v.ActiveLanguages)
	assert.Equal(t, 1, inv.n)

	w := do(r, http.MethodPut, "/admin/settings/languages", `{"default_language":"pt","active_languages":["en"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot deactivate the default language")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/admin/settings/languages", `{"default_language":"pt","active_languages":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/admin/settings/languages", `{"default_language":"pt","active_languages":["pt","not a tag!"]}`).Code)
	assert.Equal(t, 1, inv.n)
}

func TestUpdateTranslation_KeepsKeyWhenOmitted(t *testing.T) {
	r, repo, _ := setup(t)

	v := decode(t, do(r, http.MethodPut, "/admin/settings/translation", `{"translation_service":"deepl","translation_api_key":"secret-key"}`))
	assert.Equal(t, "deepl", v.TranslationService)
	assert.True(t, v.HasAPIKey)

	w := do(r, http.MethodPut, "/admin/settings/translation", `{"translation_service":"Google"}`)
	v = decode(t, w)
	assert.Equal(t, "google", v.TranslationService)
	assert.True(t, v.HasAPIKey)
	assert.NotContains(t, w.Body.String(), "secret-key")

	s, err := repo.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", s.Policy().TranslationAPIKey)

	v = decode(t, do(r, http.MethodPut, "/admin/settings/translation", `{"translation_service":"google","translation_api_key":""}`))
	assert.False(t, v.HasAPIKey)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/admin/settings/translation", `{"translation_service":"bing"}`).Code)
}

func TestUpdateProfile(t *testing.T) {
	r, _, inv := setup(t)

	v := decode(t, do(r, http.MethodPut, "/admin/settings/profile", `{"restaurant_name":"Tasca do Zé","show_prices":false}`))
	assert.Equal(t, "Tasca do Zé", v.RestaurantName)
	assert.False(t, v.ShowPrices)
	assert.Equal(t, 1, inv.n)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/admin/settings/profile", `{"restaurant_name":"  "}`).Code)
}
