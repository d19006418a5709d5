// Package menu builds the public, language-resolved views of the menu.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"menu-app/internal/domain/i18n"
	domain "menu-app/internal/domain/menu"
	"menu-app/internal/domain/settings"
	"menu-app/internal/infra/menucache"
	"menu-app/internal/platform/logger"
	"menu-app/internal/translation"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Catalog interface {
	ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]domain.Category, error)
	ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]domain.MenuItem, error)
}

type Translations interface {
	ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error)
	ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error)
}

// Assembler is read-only over categories, items and translations.
type Assembler struct {
	catalog      Catalog
	translations Translations
	cache        menucache.Cache
	log          *logger.Logger

	// generation is bumped by Invalidate; a build started under an older
	// generation must not stay in the cache.
	generation atomic.Uint64
}

func NewAssembler(catalog Catalog, translations Translations, cache menucache.Cache, baseLog *logger.Logger) *Assembler {
	if cache == nil {
		cache = menucache.Noop{}
	}
	return &Assembler{
		catalog:      catalog,
		translations: translations,
		cache:        cache,
		log:          baseLog.With("component", "MenuAssembler"),
	}
}

// LocalizedMenu returns active categories with their available items, every
// name and description resolved into lang. Categories without items are left out.
// The caller is responsible for checking that lang is active.
func (a *Assembler) LocalizedMenu(ctx context.Context, policy settings.LanguagePolicy, lang string) ([]LocalizedCategory, error) {
	if raw, err := a.cache.Get(ctx, lang); err == nil {
		var cached []LocalizedCategory
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, menucache.ErrCacheMiss) {
		a.log.Warn("menu cache read failed", "lang", lang, "error", err)
	}

	gen := a.generation.Load()

	var (
		cats  []domain.Category
		items []domain.MenuItem
		rows  []i18n.Translation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cats, err = a.catalog.ListCategories(gctx, nil, true)
		return err
	})
	g.Go(func() (err error) {
		items, err = a.catalog.ListItems(gctx, nil, true)
		return err
	})
	if !policy.IsDefault(lang) {
		g.Go(func() (err error) {
			rows, err = a.translations.ListByLanguage(gctx, nil, lang)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	out := Build(cats, items, translation.NewIndex(rows), lang)

	a.store(ctx, lang, gen, out)
	return out, nil
}

// store caches out unless an Invalidate happened since gen was read. The
// second check covers an Invalidate that lands between the first check and Set.
func (a *Assembler) store(ctx context.Context, lang string, gen uint64, out []LocalizedCategory) {
	if a.generation.Load() != gen {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, lang, raw); err != nil {
		a.log.Warn("menu cache write failed", "lang", lang, "error", err)
		return
	}
	if a.generation.Load() != gen {
		if err := a.cache.Invalidate(ctx); err != nil {
			a.log.Warn("menu cache invalidation failed", "error", err)
		}
	}
}

// Build groups items under their categories in display order and resolves
// every text field through ix.
func Build(cats []domain.Category, items []domain.MenuItem, ix translation.Index, lang string) []LocalizedCategory {
	byCat := make(map[string][]LocalizedItem, len(cats))
	for _, m := range items {
		price := m.Price
		byCat[m.CategoryID] = append(byCat[m.CategoryID], LocalizedItem{
			ID:              m.ID,
			CategoryID:      m.CategoryID,
			Name:            ix.Resolve(i18n.EntityMenuItem, m.ID, i18n.FieldName, lang, m.Name),
			Description:     nonEmpty(ix.Resolve(i18n.EntityMenuItem, m.ID, i18n.FieldDescription, lang, m.DescriptionText())),
			Price:           &price,
			ImageURL:        m.ImageURL,
			Status:          m.Status,
			IsFeatured:      m.IsFeatured,
			DisplayOrder:    m.DisplayOrder,
			PreparationTime: m.PreparationTime,
			Calories:        m.Calories,
			PortionSize:     m.PortionSize,
		})
	}

	out := make([]LocalizedCategory, 0, len(cats))
	for _, c := range cats {
		catItems := byCat[c.ID]
		if len(catItems) == 0 {
			continue
		}
		out = append(out, LocalizedCategory{
			ID:           c.ID,
			Slug:         c.Slug,
			Name:         ix.Resolve(i18n.EntityCategory, c.ID, i18n.FieldName, lang, c.Name),
			Description:  nonEmpty(ix.Resolve(i18n.EntityCategory, c.ID, i18n.FieldDescription, lang, c.DescriptionText())),
			Icon:         c.Icon,
			ImageURL:     c.ImageURL,
			DisplayOrder: c.DisplayOrder,
			Items:        catItems,
		})
	}
	return out
}

// LocalizedRestaurant resolves the settings tagline and description into lang.
func (a *Assembler) LocalizedRestaurant(ctx context.Context, s *settings.RestaurantSettings, lang string) (LocalizedRestaurant, error) {
	policy := s.Policy()

	var ix translation.Index
	if !policy.IsDefault(lang) {
		rows, err := a.translations.ListByEntity(ctx, nil, i18n.EntityRestaurantSettings, s.ID)
		if err != nil {
			return LocalizedRestaurant{}, fmt.Errorf("load restaurant translations: %w", err)
		}
		ix = translation.NewIndex(rows)
	}

	return LocalizedRestaurant{
		Language:        lang,
		DefaultLanguage: policy.DefaultLanguage,
		ActiveLanguages: policy.ActiveLanguages,
		RestaurantName:  s.RestaurantName,
		Tagline:         nonEmpty(ix.Resolve(i18n.EntityRestaurantSettings, s.ID, i18n.FieldTagline, lang, s.TaglineText())),
		Description:     nonEmpty(ix.Resolve(i18n.EntityRestaurantSettings, s.ID, i18n.FieldDescription, lang, s.DescriptionText())),
		Phone:           s.Phone,
		Email:           s.Email,
		WebsiteURL:      s.WebsiteURL,
		ShowPrices:      s.ShowPrices,
	}, nil
}

// Invalidate drops every cached menu.
func (a *Assembler) Invalidate(ctx context.Context) error {
	a.generation.Add(1)
	return a.cache.Invalidate(ctx)
}
