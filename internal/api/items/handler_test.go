package items

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/menu"
	"menu-app/internal/platform/dbtest"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	r            *gin.Engine
	menu         repos.MenuRepo
	translations repos.TranslationRepo
	category     menu.Category
}

func setup(t *testing.T) fixture {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	f := fixture{
		menu:         repos.NewMenuRepo(db, logger.Nop()),
		translations: repos.NewTranslationRepo(db, logger.Nop()),
		category:     menu.Category{Name: "Pratos", Slug: "pratos", IsActive: true},
	}
	require.NoError(t, f.menu.CreateCategory(context.Background(), nil, &f.category))

	// nil invalidator: the handler skips cache invalidation
	h := NewHandler(f.menu, f.translations, nil, logger.Nop())
	r := gin.New()
	r.GET("/admin/items", h.List)
	r.POST("/admin/items", h.Create)
	r.GET("/admin/items/:id", h.Get)
	r.PUT("/admin/items/:id", h.Update)
	r.DELETE("/admin/items/:id", h.Delete)
	f.r = r
	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.r.ServeHTTP(w, req)
	return w
}

func decodeItem(t *testing.T, w *httptest.ResponseRecorder) menu.MenuItem {
	t.Helper()
	var it menu.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	return it
}

func TestCreate(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPost, "/admin/items", `{"category_id":"`+f.category.ID+`","name":"Bacalhau","price":12.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decodeItem(t, w)
	assert.Equal(t, menu.StatusAvailable, first.Status)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 0, first.DisplayOrder)

	w = f.do(http.MethodPost, "/admin/items", `{"category_id":"`+f.category.ID+`","name":"Polvo","price":"18.999","status":"unavailable"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decodeItem(t, w)
	assert.Equal(t, menu.StatusUnavailable, second.Status)
	assert.True(t, second.Price.Equal(decimal.RequireFromString("19.00")))
	assert.Equal(t, 1, second.DisplayOrder)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	cat := f.category.ID

	cases := map[string]struct {
		body string
		code int
	}{
		"missing price":    {`{"category_id":"` + cat + `","name":"X"}`, http.StatusBadRequest},
		"negative price":   {`{"category_id":"` + cat + `","name":"X","price":-1}`, http.StatusBadRequest},
		"bad status":       {`{"category_id":"` + cat + `","name":"X","price":1,"status":"gone"}`, http.StatusBadRequest},
		"blank name":       {`{"category_id":"` + cat + `","name":"  ","price":1}`, http.StatusBadRequest},
		"unknown category": {`{"category_id":"nope","name":"X","price":1}`, http.StatusNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.code, f.do(http.MethodPost, "/admin/items", tc.body).Code)
		})
	}
}

func TestUpdateAndList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := menu.Category{Name: "Vinhos", Slug: "vinhos", IsActive: true}
	require.NoError(t, f.menu.CreateCategory(ctx, nil, &other))

	item := menu.MenuItem{CategoryID: f.category.ID, Name: "Sopa", Price: decimal.RequireFromString("3")}
	require.NoError(t, f.menu.CreateItem(ctx, nil, &item))

	w := f.do(http.MethodPut, "/admin/items/"+item.ID, `{"price":"3.75","status":"seasonal","category_id":"`+other.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeItem(t, w)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3.75")))
	assert.Equal(t, menu.StatusSeasonal, got.Status)
	assert.Equal(t, other.ID, got.CategoryID)

	w = f.do(http.MethodGet, "/admin/items?category_id="+other.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []menu.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, item.ID, list[0].ID)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPut, "/admin/items/"+item.ID, `{"price":-2}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPut, "/admin/items/"+item.ID, `{"category_id":"nope"}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/admin/items/nope", "").Code)
}

func TestDelete_RemovesTranslations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	item := menu.MenuItem{CategoryID: f.category.ID, Name: "Arroz", Price: decimal.RequireFromString("9")}
	require.NoError(t, f.menu.CreateItem(ctx, nil, &item))
	require.NoError(t, f.translations.Insert(ctx, nil, &i18n.Translation{
		EntityType: i18n.EntityMenuItem, EntityID: item.ID, FieldName: i18n.FieldName, Language: "en", TranslatedText: "Rice",
	}))

	require.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/admin/items/"+item.ID, "").Code)

	rows, err := f.translations.ListByEntity(ctx, nil, i18n.EntityMenuItem, item.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/admin/items/"+item.ID, "").Code)
}
