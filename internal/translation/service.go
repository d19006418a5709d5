package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/menu"
	"menu-app/internal/domain/settings"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation/provider"

	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Store is the translation persistence the service needs.
type Store interface {
	Find(ctx context.Context, tx *gorm.DB, key i18n.Key) (*i18n.Translation, error)
	Insert(ctx context.Context, tx *gorm.DB, t *i18n.Translation) error
	Update(ctx context.Context, tx *gorm.DB, id string, upd repos.TextUpdate) (*i18n.Translation, error)
	UpdateAuto(ctx context.Context, tx *gorm.DB, id string, upd repos.TextUpdate) (*i18n.Translation, error)
	ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error)
	ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

// EntitySource lists the entities a batch pass walks.
type EntitySource interface {
	ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]menu.Category, error)
	ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]menu.MenuItem, error)
}

type Providers interface {
	Get(id string) (provider.Provider, bool)
}

// Invalidator drops derived views after a translation write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Options struct {
	Timeout     time.Duration
	Concurrency int
	// RPS paces provider calls made by TranslateAll.
	RPS float64
}

// Service is the only writer of translation rows.
type Service struct {
	store       Store
	source      EntitySource
	providers   Providers
	invalidator Invalidator
	log         *logger.Logger

	timeout     time.Duration
	concurrency int
	limiter     *rate.Limiter
}

func NewService(store Store, source EntitySource, providers Providers, invalidator Invalidator, baseLog *logger.Logger, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	return &Service{
		store:       store,
		source:      source,
		providers:   providers,
		invalidator: invalidator,
		log:         baseLog.With("service", "TranslationService"),
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		limiter:     rate.NewLimiter(limit, 1),
	}
}

type AutoTranslateRequest struct {
	EntityType     string
	EntityID       string
	FieldName      string
	TargetLanguage string
	SourceText     string
}

type Result struct {
	TranslatedText string
	Cached         bool
	Translation    *i18n.Translation
}

// AutoTranslate returns the cached translation for the tuple or produces one
// through the configured provider and stores it.
func (s *Service) AutoTranslate(ctx context.Context, policy settings.LanguagePolicy, req AutoTranslateRequest) (Result, error) {
	source := strings.TrimSpace(req.SourceText)
	if source == "" {
		return Result{}, ErrEmptySource
	}
	key, err := buildKey(policy, req.EntityType, req.EntityID, req.FieldName, req.TargetLanguage)
	if err != nil {
		return Result{}, err
	}

	existing, err := s.store.Find(ctx, nil, key)
	if err != nil {
		return Result{}, fmt.Errorf("lookup translation: %w", err)
	}
	if existing != nil {
		return cachedResult(existing), nil
	}

	p, err := s.resolveProvider(policy)
	if err != nil {
		return Result{}, err
	}
	text, err := s.callProvider(ctx, p, policy, source, key.Language)
	if err != nil {
		return Result{}, err
	}

	svc := p.ID()
	row := &i18n.Translation{
		EntityType:         key.EntityType,
		EntityID:           key.EntityID,
		FieldName:          key.FieldName,
		Language:           key.Language,
		TranslatedText:     text,
		IsAutoTranslated:   true,
		TranslationService: &svc,
		SourceHash:         i18n.SourceHash(source),
	}
	if err := s.store.Insert(ctx, nil, row); err != nil {
		if !errors.Is(err, repos.ErrConflict) {
			return Result{}, fmt.Errorf("save translation: %w", err)
		}
		winner, ferr := s.store.Find(ctx, nil, key)
		if ferr != nil {
			return Result{}, fmt.Errorf("lookup translation after conflict: %w", ferr)
		}
		if winner == nil {
			return Result{}, fmt.Errorf("save translation: %w", err)
		}
		s.log.Debug("translation cached by concurrent writer",
			"entity_type", key.EntityType, "entity_id", key.EntityID, "field", key.FieldName, "lang", key.Language)
		return cachedResult(winner), nil
	}

	s.invalidate(ctx)
	s.log.Info("auto-translated field",
		"entity_type", key.EntityType, "entity_id", key.EntityID, "field", key.FieldName,
		"lang", key.Language, "provider", svc)
	return Result{TranslatedText: text, Cached: false, Translation: row}, nil
}

type ManualRequest struct {
	EntityType string
	EntityID   string
	FieldName  string
	Language   string
	Text       string
	// SourceText is the default-language text the admin translated from, if known.
	SourceText string
}

// SaveManual sets the translation text by hand. The row loses its auto flag
// and provider, and wins over any later auto-translate for the same tuple.
func (s *Service) SaveManual(ctx context.Context, policy settings.LanguagePolicy, req ManualRequest) (*i18n.Translation, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "translation text is empty"}
	}
	key, err := buildKey(policy, req.EntityType, req.EntityID, req.FieldName, req.Language)
	if err != nil {
		return nil, err
	}

	upd := repos.TextUpdate{TranslatedText: text}
	if src := strings.TrimSpace(req.SourceText); src != "" {
		upd.SourceHash = i18n.SourceHash(src)
	}

	existing, err := s.store.Find(ctx, nil, key)
	if err != nil {
		return nil, fmt.Errorf("lookup translation: %w", err)
	}

	var saved *i18n.Translation
	if existing != nil {
		saved, err = s.store.Update(ctx, nil, existing.ID, upd)
	} else {
		row := &i18n.Translation{
			EntityType:     key.EntityType,
			EntityID:       key.EntityID,
			FieldName:      key.FieldName,
			Language:       key.Language,
			TranslatedText: text,
			SourceHash:     upd.SourceHash,
		}
		err = s.store.Insert(ctx, nil, row)
		saved = row
		if errors.Is(err, repos.ErrConflict) {
			// Lost the insert race; overwrite whatever got there first.
			existing, err = s.store.Find(ctx, nil, key)
			if err == nil && existing != nil {
				saved, err = s.store.Update(ctx, nil, existing.ID, upd)
			} else if err == nil {
				err = repos.ErrConflict
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("save manual translation: %w", err)
	}

	s.invalidate(ctx)
	return saved, nil
}

func (s *Service) DeleteTranslation(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// EntityTranslation is a stored row plus whether its source text has since changed.
type EntityTranslation struct {
	i18n.Translation
	Stale bool `json:"stale"`
}

// EntityTranslations lists every translation of one entity. currentSource maps
// field name to the entity's current default-language text.
func (s *Service) EntityTranslations(ctx context.Context, entityType, entityID string, currentSource map[string]string) ([]EntityTranslation, error) {
	if !i18n.ValidEntityType(entityType) {
		return nil, &ValidationError{Field: "entity_type", Reason: fmt.Sprintf("unknown entity type %q", entityType)}
	}
	rows, err := s.store.ListByEntity(ctx, nil, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	out := make([]EntityTranslation, 0, len(rows))
	for _, r := range rows {
		src, ok := currentSource[r.FieldName]
		out = append(out, EntityTranslation{Translation: r, Stale: ok && r.IsStaleFor(src)})
	}
	return out, nil
}

func (s *Service) resolveProvider(policy settings.LanguagePolicy) (provider.Provider, error) {
	if !policy.HasCredential() {
		return nil, &ConfigurationError{Reason: "no API key configured"}
	}
	p, ok := s.providers.Get(policy.TranslationService)
	if !ok {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown translation service %q", policy.TranslationService)}
	}
	return p, nil
}

func (s *Service) callProvider(ctx context.Context, p provider.Provider, policy settings.LanguagePolicy, source, lang string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := p.Translate(callCtx, source, lang, policy.TranslationAPIKey)
	if err != nil {
		s.log.Warn("provider call failed", "provider", p.ID(), "lang", lang, "error", err)
		return "", &ServiceError{Provider: p.ID(), Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Provider: p.ID(), Err: &provider.Error{Provider: p.ID(), Message: "empty translation returned"}}
	}
	return text, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.log.Warn("menu cache invalidation failed", "error", err)
	}
}

func buildKey(policy settings.LanguagePolicy, entityType, entityID, field, lang string) (i18n.Key, error) {
	if !i18n.ValidEntityType(entityType) {
		return i18n.Key{}, &ValidationError{Field: "entity_type", Reason: fmt.Sprintf("unknown entity type %q", entityType)}
	}
	if !i18n.ValidField(entityType, field) {
		return i18n.Key{}, &ValidationError{Field: "field_name", Reason: fmt.Sprintf("%q is not translatable for %s", field, entityType)}
	}
	if strings.TrimSpace(entityID) == "" {
		return i18n.Key{}, &ValidationError{Field: "entity_id", Reason: "entity id is empty"}
	}
	code, err := settings.NormalizeLanguage(lang)
	if err != nil {
		return i18n.Key{}, &ValidationError{Field: "language", Reason: err.Error()}
	}
	if policy.IsDefault(code) {
		return i18n.Key{}, &ValidationError{Field: "language", Reason: "the default language is not translated"}
	}
	return i18n.Key{EntityType: entityType, EntityID: entityID, FieldName: field, Language: code}, nil
}

func cachedResult(t *i18n.Translation) Result {
	return Result{TranslatedText: t.TranslatedText, Cached: true, Translation: t}
}
