package assetlist

import (
	"context"
	"errors"
)

var (
	// ErrListNotFound is returned by stores when a locator does not name an existing list.
	ErrListNotFound = errors.New("asset list not found")
	// ErrInvalidLocator is returned by stores for locators they refuse to address.
	ErrInvalidLocator = errors.New("invalid list locator")
)

// Store loads and saves lists by locator.
type Store interface {
	// Load reads the list stored under locator.
	Load(ctx context.Context, locator string) (*List, error)
	// Save writes list under locator, replacing any previous content.
	Save(ctx context.Context, locator string, list *List) error
}

// LocatorChecker is implemented by stores that can reject a locator without touching it.
type LocatorChecker interface {
	// CheckLocator returns an error wrapping ErrInvalidLocator when locator is unusable.
	CheckLocator(locator string) error
}

// Lister is implemented by stores that can enumerate the lists they hold.
type Lister interface {
	// Locators returns the locators of every stored list, sorted.
	Locators(ctx context.Context) ([]string, error)
}
