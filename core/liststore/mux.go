package liststore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"asset-lists/core/assetlist"
)

const schemeSeparator = "://"

// Mux routes locators to backends by scheme. "s3://a/b.assetlist" goes to the s3 backend
// as "a/b.assetlist"; locators without a scheme go to the default backend.
type Mux struct {
	backends map[string]assetlist.Store
	fallback string
}

// NewMux creates a mux whose unqualified locators go to the backend named fallback.
func NewMux(fallback string) *Mux {
	return &Mux{backends: make(map[string]assetlist.Store), fallback: fallback}
}

// Handle registers store under scheme, replacing any previous registration.
func (m *Mux) Handle(scheme string, store assetlist.Store) {
	m.backends[strings.ToLower(scheme)] = store
}

// Backends returns the registered schemes, sorted.
func (m *Mux) Backends() []string {
	out := make([]string, 0, len(m.backends))
	for name := range m.backends {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *Mux) route(locator string) (assetlist.Store, string, error) {
	scheme, rest := m.fallback, locator
	if i := strings.Index(locator, schemeSeparator); i > 0 {
		scheme, rest = strings.ToLower(locator[:i]), locator[i+len(schemeSeparator):]
	}
	store, ok := m.backends[scheme]
	if !ok {
		return nil, "", fmt.Errorf("%w: no list backend registered for %q (locator %s)",
			assetlist.ErrInvalidLocator, scheme, locator)
	}
	return store, rest, nil
}

// CheckLocator implements assetlist.LocatorChecker. Backends that cannot check
// locators accept them.
func (m *Mux) CheckLocator(locator string) error {
	store, rest, err := m.route(locator)
	if err != nil {
		return err
	}
	if checker, ok := store.(assetlist.LocatorChecker); ok {
		return checker.CheckLocator(rest)
	}
	return nil
}

// Load implements assetlist.Store.
func (m *Mux) Load(ctx context.Context, locator string) (*assetlist.List, error) {
	store, rest, err := m.route(locator)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx, rest)
}

// Save implements assetlist.Store.
func (m *Mux) Save(ctx context.Context, locator string, list *assetlist.List) error {
	store, rest, err := m.route(locator)
	if err != nil {
		return err
	}
	return store.Save(ctx, rest, list)
}

// Locators lists every backend that supports enumeration. Locators of non default
// backends carry their scheme.
func (m *Mux) Locators(ctx context.Context) ([]string, error) {
	var out []string
	for _, scheme := range m.Backends() {
		lister, ok := m.backends[scheme].(assetlist.Lister)
		if !ok {
			continue
		}
		names, err := lister.Locators(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", scheme, err)
		}
		for _, name := range names {
			if scheme != m.fallback {
				name = scheme + schemeSeparator + name
			}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}
