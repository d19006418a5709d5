package translation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/menu"
	"menu-app/internal/repos"
	"menu-app/internal/translation/provider"

	"gorm.io/gorm"
)

// memStore is an in-memory Store with the same uniqueness rule as the table.
type memStore struct {
	mu      sync.Mutex
	rows    map[i18n.Key]*i18n.Translation
	nextID  int
	inserts int
	updates int

	// beforeInsert runs inside Insert before the uniqueness check.
	beforeInsert func(t *i18n.Translation)
}

func newMemStore() *memStore {
	return &memStore{rows: map[i18n.Key]*i18n.Translation{}}
}

func (m *memStore) Find(ctx context.Context, tx *gorm.DB, key i18n.Key) (*i18n.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[key]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) Insert(ctx context.Context, tx *gorm.DB, t *i18n.Translation) error {
	if m.beforeInsert != nil {
		m.beforeInsert(t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[t.Key()]; ok {
		return repos.ErrConflict
	}
	m.nextID++
	t.ID = fmt.Sprintf("t-%d", m.nextID)
	cp := *t
	m.rows[t.Key()] = &cp
	m.inserts++
	return nil
}

func (m *memStore) Update(ctx context.Context, tx *gorm.DB, id string, upd repos.TextUpdate) (*i18n.Translation, error) {
	return m.update(id, false, upd)
}

func (m *memStore) UpdateAuto(ctx context.Context, tx *gorm.DB, id string, upd repos.TextUpdate) (*i18n.Translation, error) {
	return m.update(id, true, upd)
}

func (m *memStore) update(id string, autoOnly bool, upd repos.TextUpdate) (*i18n.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID != id || (autoOnly && !r.IsAutoTranslated) {
			continue
		}
		r.TranslatedText = upd.TranslatedText
		r.IsAutoTranslated = upd.IsAutoTranslated
		r.TranslationService = upd.TranslationService
		r.SourceHash = upd.SourceHash
		m.updates++
		cp := *r
		return &cp, nil
	}
	return nil, repos.ErrNotFound
}

func (m *memStore) ListByLanguage(ctx context.Context, tx *gorm.DB, lang string) ([]i18n.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []i18n.Translation
	for _, r := range m.rows {
		if r.Language == lang {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) ListByEntity(ctx context.Context, tx *gorm.DB, entityType, entityID string) ([]i18n.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []i18n.Translation
	for _, r := range m.rows {
		if r.EntityType == entityType && r.EntityID == entityID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, r := range m.rows {
		if r.ID == id {
			delete(m.rows, k)
			return nil
		}
	}
	return repos.ErrNotFound
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// stubProvider answers from a fixed dictionary and counts calls.
type stubProvider struct {
	id    string
	calls atomic.Int64
	fn    func(ctx context.Context, text, lang string) (string, error)
}

func (p *stubProvider) ID() string { return p.id }

func (p *stubProvider) Translate(ctx context.Context, text, lang, credential string) (string, error) {
	p.calls.Add(1)
	return p.fn(ctx, text, lang)
}

func echoProvider() *stubProvider {
	return &stubProvider{id: provider.Google, fn: func(_ context.Context, text, lang string) (string, error) {
		return fmt.Sprintf("%s[%s]", text, lang), nil
	}}
}

type fakeSource struct {
	cats  []menu.Category
	items []menu.MenuItem
}

func (f *fakeSource) ListCategories(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]menu.Category, error) {
	return f.cats, nil
}

func (f *fakeSource) ListItems(ctx context.Context, tx *gorm.DB, availableOnly bool) ([]menu.MenuItem, error) {
	return f.items, nil
}

type countingInvalidator struct{ n atomic.Int64 }

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.n.Add(1)
	return nil
}

func strPtr(s string) *string { return &s }
