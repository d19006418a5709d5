package provider

import (
	"net/http"
	"sort"
	"time"
)

// Registry maps a translation service id to its adapter.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(ps ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(ps))}
	for _, p := range ps {
		r.providers[p.ID()] = p
	}
	return r
}

// Endpoints holds the base URLs of the built-in adapters.
type Endpoints struct {
	GoogleURL string
	DeepLURL  string
}

// NewDefaultRegistry wires the Google and DeepL adapters on a shared client.
// Per-call deadlines come from the caller's context; timeout is a backstop.
func NewDefaultRegistry(ep Endpoints, timeout time.Duration) *Registry {
	client := &http.Client{Timeout: timeout}
	return NewRegistry(
		NewGoogle(ep.GoogleURL, client),
		NewDeepL(ep.DeepLURL, client),
	)
}

func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
