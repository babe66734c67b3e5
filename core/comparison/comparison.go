package comparison

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"asset-lists/core/assetlist"
	"asset-lists/core/pattern"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Comparison is an ordered set of comparison steps bound to a list store.
// It holds configuration only; every call keeps its intermediate lists to itself, so
// concurrent calls on one Comparison are safe.
type Comparison struct {
	mu     sync.RWMutex
	steps  []Step
	store  assetlist.Store
	logger *zap.Logger
}

// New creates an empty comparison that loads and saves lists through store.
func New(store assetlist.Store, logger *zap.Logger) *Comparison {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparison{store: store, logger: logger}
}

// AddComparisonStep appends a step. Validation happens when the comparison runs.
func (c *Comparison) AddComparisonStep(step Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, step.clone())
}

// Steps returns a copy of the configured steps.
func (c *Comparison) Steps() []Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Step, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.clone()
	}
	return out
}

// CompareAndSaveResults runs every step against the given identifiers.
//
// On failure the returned Result lists the steps that completed before the failing one,
// and the error is a *StepError naming the failing step.
func (c *Comparison) CompareAndSaveResults(ctx context.Context, first, second []string) (*Result, error) {
	plan, err := buildPlan(c.Steps(), first, second)
	if err == nil {
		if checker, ok := c.store.(assetlist.LocatorChecker); ok {
			err = checkLocators(plan, checker)
		}
	}
	if err != nil {
		c.logger.Warn("Comparison rejected", zap.Error(err))
		return &Result{}, err
	}

	result := &Result{Steps: make([]StepResult, 0, len(plan))}
	outputs := make([]*assetlist.List, len(plan))

	for _, p := range plan {
		l := c.logger.With(
			zap.Int("step", p.index+1),
			zap.String("type", p.step.Type.String()),
			zap.String("output", p.step.Output),
		)

		if err := ctx.Err(); err != nil {
			return result, c.fail(l, p, PhaseResolving, ErrIO, err)
		}

		l.Debug("Resolving comparison inputs")
		firstSet, secondSet, err := c.resolveInputs(ctx, p, outputs)
		if err != nil {
			return result, c.fail(l, p, PhaseResolving, ErrIO, err)
		}

		l.Debug("Executing comparison",
			zap.Int("first_count", firstSet.Len()),
			zap.Int("second_count", secondSet.Len()),
		)
		out, err := apply(p.step.Type, firstSet, secondSet, p.matcher)
		if err != nil {
			kind := ErrConfiguration
			if errors.Is(err, pattern.ErrInvalidPattern) {
				kind = ErrPattern
			}
			return result, c.fail(l, p, PhaseExecuting, kind, err)
		}

		persisted := false
		if !IsToken(p.step.Output) {
			l.Debug("Persisting comparison output")
			if err := c.store.Save(ctx, p.step.Output, out); err != nil {
				return result, c.fail(l, p, PhasePersisting, ErrIO, err)
			}
			persisted = true
		}

		outputs[p.index] = out
		result.Output = out
		result.Steps = append(result.Steps, StepResult{
			Index:     p.index,
			Type:      p.step.Type.String(),
			Output:    p.step.Output,
			Count:     out.Len(),
			Persisted: persisted,
		})
		l.Info("Comparison step completed", zap.Int("count", out.Len()), zap.Bool("persisted", persisted))
	}

	return result, nil
}

func (c *Comparison) fail(l *zap.Logger, p plannedStep, phase Phase, kind, err error) error {
	stepErr := &StepError{
		Index:  p.index,
		Type:   p.step.Type,
		Output: p.step.Output,
		Phase:  phase,
		Kind:   kind,
		Err:    err,
	}
	l.Error("Comparison step failed", zap.String("phase", string(phase)), zap.Error(err))
	return stepErr
}

// resolveInputs loads the first and second input groups concurrently.
func (c *Comparison) resolveInputs(ctx context.Context, p plannedStep, outputs []*assetlist.List) (*assetlist.List, *assetlist.List, error) {
	var firstSet, secondSet *assetlist.List

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		firstSet, err = c.loadGroup(gctx, p.first, outputs)
		return err
	})
	if len(p.second) > 0 {
		g.Go(func() error {
			var err error
			secondSet, err = c.loadGroup(gctx, p.second, outputs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return firstSet, secondSet, nil
}

// loadGroup resolves refs left to right, merging with Union semantics (later wins).
func (c *Comparison) loadGroup(ctx context.Context, refs []ref, outputs []*assetlist.List) (*assetlist.List, error) {
	var merged *assetlist.List
	for _, r := range refs {
		list, err := c.load(ctx, r, outputs)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = list
			continue
		}
		merged = UnionLists(merged, list)
	}
	return merged, nil
}

func (c *Comparison) load(ctx context.Context, r ref, outputs []*assetlist.List) (*assetlist.List, error) {
	if r.isStep() {
		list := outputs[r.step]
		if list == nil {
			return nil, fmt.Errorf("%w: %s is not available", ErrTokenResolution, r)
		}
		return list, nil
	}
	list, err := c.store.Load(ctx, r.locator)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.locator, err)
	}
	return list, nil
}
