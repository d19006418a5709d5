package menu

import (
	"context"
	"testing"
	"time"

	"menu-app/internal/domain/i18n"
	domain "menu-app/internal/domain/menu"
	"menu-app/internal/domain/settings"
	"menu-app/internal/infra/menucache"
	"menu-app/internal/platform/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCatalog struct {
	cats  []domain.Category
	items []domain.MenuItem
	calls int

	// afterList runs once the categories have been read.
	afterList func()
}

func (f *fakeCatalog) ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]domain.Category, error) {
	f.calls++
	var out []domain.Category
	for _, c := range f.cats {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	if f.afterList != nil {
		f.afterList()
	}
	return out, nil
}

func (f *fakeCatalog) ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for _, m := range f.items {
		if !availableOnly || m.Status == domain.StatusAvailable {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTranslations struct {
	rows []i18n.Translation
}

func (f *fakeTranslations) ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error) {
	var out []i18n.Translation
	for _, r := range f.rows {
		if r.Language == lang {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTranslations) ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error) {
	var out []i18n.Translation
	for _, r := range f.rows {
		if r.EntityType == entityType && r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func str(s string) *string { return &s }

var policy = settings.LanguagePolicy{DefaultLanguage: "pt", ActiveLanguages: []string{"pt", "en"}}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		cats: []domain.Category{
			{ID: "c1", Slug: "entradas", Name: "Entradas", DisplayOrder: 0, IsActive: true},
			{ID: "c2", Slug: "vazia", Name: "Vazia", DisplayOrder: 1, IsActive: true},
			{ID: "c3", Slug: "sobremesas", Name: "Sobremesas", Description: str("Doces"), DisplayOrder: 2, IsActive: true},
			{ID: "c4", Slug: "oculta", Name: "Oculta", DisplayOrder: 3, IsActive: false},
		},
		items: []domain.MenuItem{
			{ID: "i1", CategoryID: "c1", Name: "Pão", Price: decimal.RequireFromString("1.50"), Status: domain.StatusAvailable, DisplayOrder: 0},
			{ID: "i2", CategoryID: "c1", Name: "Azeitonas", Description: str("Temperadas"), Price: decimal.RequireFromString("2"), Status: domain.StatusAvailable, DisplayOrder: 1},
			{ID: "i3", CategoryID: "c2", Name: "Esgotado", Status: domain.StatusUnavailable},
			{ID: "i4", CategoryID: "c3", Name: "Pudim", Status: domain.StatusAvailable},
			{ID: "i5", CategoryID: "c4", Name: "Segredo", Status: domain.StatusAvailable},
		},
	}
}

func TestLocalizedMenu_ResolvesAndGroups(t *testing.T) {
	tr := &fakeTranslations{rows: []i18n.Translation{
		{EntityType: i18n.EntityCategory, EntityID: "c1", FieldName: i18n.FieldName, Language: "en", TranslatedText: "Starters"},
		{EntityType: i18n.EntityMenuItem, EntityID: "i1", FieldName: i18n.FieldName, Language: "en", TranslatedText: "Bread"},
		{EntityType: i18n.EntityMenuItem, EntityID: "i2", FieldName: i18n.FieldName, Language: "es", TranslatedText: "Aceitunas"},
	}}
	a := NewAssembler(sampleCatalog(), tr, nil, logger.Nop())

	got, err := a.LocalizedMenu(context.Background(), policy, "en")
	require.NoError(t, err)

	require.Len(t, got, 2, "empty and inactive categories are dropped")
	assert.Equal(t, "Starters", got[0].Name)
	assert.Nil(t, got[0].Description)
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "Bread", got[0].Items[0].Name)
	// no en row: falls back to the default text
	assert.Equal(t, "Azeitonas", got[0].Items[1].Name)
	assert.Equal(t, "Temperadas", *got[0].Items[1].Description)

	assert.Equal(t, "Sobremesas", got[1].Name)
	assert.Equal(t, "Doces", *got[1].Description)
}

func TestLocalizedMenu_EmptyDescriptionStaysEmpty(t *testing.T) {
	tr := &fakeTranslations{rows: []i18n.Translation{
		{EntityType: i18n.EntityMenuItem, EntityID: "i4", FieldName: i18n.FieldName, Language: "en", TranslatedText: "Flan"},
	}}
	a := NewAssembler(sampleCatalog(), tr, nil, logger.Nop())

	got, err := a.LocalizedMenu(context.Background(), policy, "en")
	require.NoError(t, err)

	item := got[1].Items[0]
	assert.Equal(t, "Flan", item.Name)
	assert.Nil(t, item.Description)
}

func TestLocalizedMenu_DefaultLanguageIgnoresRows(t *testing.T) {
	tr := &fakeTranslations{rows: []i18n.Translation{
		{EntityType: i18n.EntityCategory, EntityID: "c1", FieldName: i18n.FieldName, Language: "pt", TranslatedText: "Leftover"},
	}}
	a := NewAssembler(sampleCatalog(), tr, nil, logger.Nop())

	got, err := a.LocalizedMenu(context.Background(), policy, "pt")
	require.NoError(t, err)
	assert.Equal(t, "Entradas", got[0].Name)
}

func TestLocalizedMenu_Cached(t *testing.T) {
	cat := sampleCatalog()
	cache := menucache.NewMemory(time.Minute)
	a := NewAssembler(cat, &fakeTranslations{}, cache, logger.Nop())
	ctx := context.Background()

	first, err := a.LocalizedMenu(ctx, policy, "en")
	require.NoError(t, err)
	second, err := a.LocalizedMenu(ctx, policy, "en")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, first[0].Items[0].Price.Equal(*second[0].Items[0].Price))
	assert.Equal(t, 1, cat.calls)

	require.NoError(t, a.Invalidate(ctx))
	_, err = a.LocalizedMenu(ctx, policy, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, cat.calls)
}

func TestLocalizedMenu_InvalidateDuringBuildIsNotCached(t *testing.T) {
	cat := sampleCatalog()
	a := NewAssembler(cat, &fakeTranslations{}, menucache.NewMemory(time.Minute), logger.Nop())
	ctx := context.Background()

	// A write lands and invalidates after this request has read the old rows.
	cat.afterList = func() {
		cat.afterList = nil
		cat.cats[0].Name = "Petiscos"
		require.NoError(t, a.Invalidate(ctx))
	}

	stale, err := a.LocalizedMenu(ctx, policy, "pt")
	require.NoError(t, err)
	assert.Equal(t, "Entradas", stale[0].Name)

	fresh, err := a.LocalizedMenu(ctx, policy, "pt")
	require.NoError(t, err)
	assert.Equal(t, "Petiscos", fresh[0].Name)
	assert.Equal(t, 2, cat.calls)
}

func TestHidePrices(t *testing.T) {
	a := NewAssembler(sampleCatalog(), &fakeTranslations{}, nil, logger.Nop())
	got, err := a.LocalizedMenu(context.Background(), policy, "pt")
	require.NoError(t, err)
	require.NotNil(t, got[0].Items[0].Price)

	HidePrices(got)
	for _, c := range got {
		for _, it := range c.Items {
			assert.Nil(t, it.Price)
		}
	}
}

func TestLocalizedRestaurant(t *testing.T) {
	s := settings.NewDefault()
	s.ID = "s1"
	s.RestaurantName = "Tasca"
	s.Tagline = str("Comida caseira")
	s.SetLanguages([]string{"pt", "en"})

	tr := &fakeTranslations{rows: []i18n.Translation{
		{EntityType: i18n.EntityRestaurantSettings, EntityID: "s1", FieldName: i18n.FieldTagline, Language: "en", TranslatedText: "Home cooking"},
	}}
	a := NewAssembler(sampleCatalog(), tr, nil, logger.Nop())

	en, err := a.LocalizedRestaurant(context.Background(), s, "en")
	require.NoError(t, err)
	assert.Equal(t, "Home cooking", *en.Tagline)
	assert.Nil(t, en.Description)
	assert.Equal(t, []string{"pt", "en"}, en.ActiveLanguages)

	pt, err := a.LocalizedRestaurant(context.Background(), s, "pt")
	require.NoError(t, err)
	assert.Equal(t, "Comida caseira", *pt.Tagline)
}
