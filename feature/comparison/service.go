package comparison

import (
	"context"
	"errors"
	"time"

	"asset-lists/core/assetlist"
	engine "asset-lists/core/comparison"

	"go.uber.org/zap"
)

// ErrListingUnsupported is returned when the configured store cannot enumerate lists.
var ErrListingUnsupported = errors.New("list store does not support listing")

// Service runs comparison definitions against a list store.
type Service struct {
	store   assetlist.Store
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a new comparison service. A zero timeout leaves runs unbounded.
func NewService(store assetlist.Store, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

// Run builds a fresh pipeline from def and executes it.
func (s *Service) Run(ctx context.Context, def *engine.Definition) (*engine.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	c := engine.New(s.store, s.logger)
	if err := def.Apply(c); err != nil {
		return &engine.Result{}, err
	}
	return c.CompareAndSaveResults(ctx, def.First, def.Second)
}

// GetList loads a single list.
func (s *Service) GetList(ctx context.Context, locator string) (*assetlist.List, error) {
	return s.store.Load(ctx, locator)
}

// Locators enumerates stored lists when the store supports it.
func (s *Service) Locators(ctx context.Context) ([]string, error) {
	lister, ok := s.store.(assetlist.Lister)
	if !ok {
		return nil, ErrListingUnsupported
	}
	return lister.Locators(ctx)
}
