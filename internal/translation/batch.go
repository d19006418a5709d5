package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/settings"
	"menu-app/internal/repos"

	"golang.org/x/sync/errgroup"
)

type TranslateAllOptions struct {
	// RefreshStale re-translates auto rows whose source text changed. Manual rows are kept.
	RefreshStale bool
}

type FieldFailure struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	FieldName  string `json:"field_name"`
	Language   string `json:"language"`
	Error      string `json:"error"`
}

type BatchResult struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Refreshed int            `json:"refreshed"`
	Failures  []FieldFailure `json:"failures,omitempty"`
}

// sourceField is one non-empty default-language field of a category or item.
type sourceField struct {
	entityType string
	entityID   string
	field      string
	text       string
}

type batchJob struct {
	sourceField
	lang  string
	stale *i18n.Translation
}

// TranslateAll fills in every missing name and description translation for
// every category and item in every active non-default language.
func (s *Service) TranslateAll(ctx context.Context, policy settings.LanguagePolicy, opts TranslateAllOptions) (BatchResult, error) {
	if _, err := s.resolveProvider(policy); err != nil {
		return BatchResult{}, err
	}

	fields, err := s.sourceFields(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	var jobs []batchJob
	for _, lang := range policy.TargetLanguages() {
		rows, err := s.store.ListByLanguage(ctx, nil, lang)
		if err != nil {
			return BatchResult{}, fmt.Errorf("list %s translations: %w", lang, err)
		}
		cached := make(map[i18n.Key]*i18n.Translation, len(rows))
		for i := range rows {
			cached[rows[i].Key()] = &rows[i]
		}

		for _, f := range fields {
			key := i18n.Key{EntityType: f.entityType, EntityID: f.entityID, FieldName: f.field, Language: lang}
			row, ok := cached[key]
			switch {
			case !ok:
				jobs = append(jobs, batchJob{sourceField: f, lang: lang})
			case opts.RefreshStale && row.IsAutoTranslated && row.IsStaleFor(f.text):
				jobs = append(jobs, batchJob{sourceField: f, lang: lang, stale: row})
			default:
				res.Skipped++
			}
		}
	}

	var (
		succeeded, failed, skipped, refreshed atomic.Int64
		mu                                    sync.Mutex
		failures                              []FieldFailure
	)
	fail := func(j batchJob, err error) {
		failed.Add(1)
		mu.Lock()
		failures = append(failures, FieldFailure{
			EntityType: j.entityType, EntityID: j.entityID, FieldName: j.field, Language: j.lang, Error: err.Error(),
		})
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				fail(j, err)
				return nil
			}
			if j.stale != nil {
				switch err := s.refresh(ctx, policy, j.stale, j.text); {
				case errors.Is(err, repos.ErrNotFound):
					// turned manual or deleted since the pass loaded it
					skipped.Add(1)
				case err != nil:
					fail(j, err)
				default:
					refreshed.Add(1)
				}
				return nil
			}
			r, err := s.AutoTranslate(ctx, policy, AutoTranslateRequest{
				EntityType:     j.entityType,
				EntityID:       j.entityID,
				FieldName:      j.field,
				TargetLanguage: j.lang,
				SourceText:     j.text,
			})
			switch {
			case err != nil:
				fail(j, err)
			case r.Cached:
				skipped.Add(1)
			default:
				succeeded.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Succeeded = int(succeeded.Load())
	res.Failed = int(failed.Load())
	res.Skipped += int(skipped.Load())
	res.Refreshed = int(refreshed.Load())
	res.Failures = failures

	s.log.Info("translate-all finished",
		"languages", policy.TargetLanguages(), "succeeded", res.Succeeded, "failed", res.Failed,
		"skipped", res.Skipped, "refreshed", res.Refreshed)

	return res, ctx.Err()
}

func (s *Service) refresh(ctx context.Context, policy settings.LanguagePolicy, row *i18n.Translation, source string) error {
	p, err := s.resolveProvider(policy)
	if err != nil {
		return err
	}
	text, err := s.callProvider(ctx, p, policy, strings.TrimSpace(source), row.Language)
	if err != nil {
		return err
	}
	svc := p.ID()
	if _, err := s.store.UpdateAuto(ctx, nil, row.ID, repos.TextUpdate{
		TranslatedText:     text,
		IsAutoTranslated:   true,
		TranslationService: &svc,
		SourceHash:         i18n.SourceHash(source),
	}); err != nil {
		return fmt.Errorf("refresh translation: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) sourceFields(ctx context.Context) ([]sourceField, error) {
	cats, err := s.source.ListCategories(ctx, nil, false)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	items, err := s.source.ListItems(ctx, nil, false)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var out []sourceField
	add := func(entityType, id, field, text string) {
		if strings.TrimSpace(text) != "" {
			out = append(out, sourceField{entityType: entityType, entityID: id, field: field, text: text})
		}
	}
	for _, c := range cats {
		add(i18n.EntityCategory, c.ID, i18n.FieldName, c.Name)
		add(i18n.EntityCategory, c.ID, i18n.FieldDescription, c.DescriptionText())
	}
	for _, m := range items {
		add(i18n.EntityMenuItem, m.ID, i18n.FieldName, m.Name)
		add(i18n.EntityMenuItem, m.ID, i18n.FieldDescription, m.DescriptionText())
	}
	return out, nil
}
