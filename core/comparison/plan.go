package comparison

import (
	"errors"
	"fmt"
	"strings"

	"asset-lists/core/assetlist"
	"asset-lists/core/pattern"
)

// plannedStep is a step with its inputs bound to locators or earlier step outputs.
type plannedStep struct {
	index   int
	step    Step
	first   []ref
	second  []ref
	matcher *pattern.Matcher
}

// buildPlan validates the steps and assigns the caller's identifiers to them.
// It performs no I/O.
func buildPlan(steps []Step, first, second []string) ([]plannedStep, error) {
	if len(steps) == 0 {
		return nil, &StepError{Index: -1, Phase: PhasePlanning, Kind: ErrConfiguration, Err: errNoSteps}
	}

	var (
		plan     = make([]plannedStep, 0, len(steps))
		produced = make(map[string]int)
		fi, si   int
	)

	for i, step := range steps {
		p := plannedStep{index: i, step: step}

		if err := validateStep(i, step); err != nil {
			return nil, err
		}
		if _, exists := produced[step.Output]; exists {
			return nil, planErr(i, step, ErrConfiguration, "token %s is already bound", step.Output)
		}

		if step.Type == FilePattern {
			m, err := pattern.Compile(step.Pattern, step.PatternType)
			if err != nil {
				return nil, planErr(i, step, ErrPattern, "%w", err)
			}
			p.matcher = m
		}

		// First input: explicit override, next caller identifier, or the previous output.
		var firstIDs []string
		switch {
		case len(step.First) > 0:
			firstIDs = step.First
		case fi < len(first):
			firstIDs = []string{first[fi]}
			fi++
		case i > 0:
			p.first = []ref{stepRef(i - 1)}
		default:
			return nil, planErr(i, step, ErrConfiguration, "no first input list")
		}
		if firstIDs != nil {
			refs, err := bindRefs(i, step, firstIDs, produced)
			if err != nil {
				return nil, err
			}
			p.first = refs
		}

		if step.Type.IsBinary() {
			var secondIDs []string
			switch {
			case len(step.Second) > 0:
				secondIDs = step.Second
			case si < len(second):
				secondIDs = []string{second[si]}
				si++
			default:
				return nil, planErr(i, step, ErrConfiguration, "%s requires a second input list", step.Type)
			}
			refs, err := bindRefs(i, step, secondIDs, produced)
			if err != nil {
				return nil, err
			}
			p.second = refs
		}

		if IsToken(step.Output) {
			produced[step.Output] = i
		}
		plan = append(plan, p)
	}

	if fi < len(first) {
		return nil, &StepError{Index: -1, Phase: PhasePlanning, Kind: ErrConfiguration,
			Err: unusedErr("first", first[fi:])}
	}
	if si < len(second) {
		return nil, &StepError{Index: -1, Phase: PhasePlanning, Kind: ErrConfiguration,
			Err: unusedErr("second", second[si:])}
	}

	return plan, nil
}

// checkLocators lets the store refuse persistent identifiers before anything is loaded
// or saved.
func checkLocators(plan []plannedStep, checker assetlist.LocatorChecker) error {
	for _, p := range plan {
		for _, group := range [][]ref{p.first, p.second} {
			for _, r := range group {
				if r.isStep() {
					continue
				}
				if err := checker.CheckLocator(r.locator); err != nil {
					return planErr(p.index, p.step, ErrConfiguration, "input %w", err)
				}
			}
		}
		if !IsToken(p.step.Output) {
			if err := checker.CheckLocator(p.step.Output); err != nil {
				return planErr(p.index, p.step, ErrConfiguration, "output %w", err)
			}
		}
	}
	return nil
}

func validateStep(i int, step Step) error {
	if !step.Type.valid() {
		return planErr(i, step, ErrConfiguration, "unknown comparison type")
	}
	if strings.TrimSpace(step.Output) == "" {
		return planErr(i, step, ErrConfiguration, "missing output")
	}
	if step.Output == TokenPrefix {
		return planErr(i, step, ErrConfiguration, "token output needs a name after %q", TokenPrefix)
	}
	if step.Type == FilePattern && len(step.Second) > 0 {
		return planErr(i, step, ErrConfiguration, "filepattern does not take a second input list")
	}
	return nil
}

// bindRefs converts identifiers to refs. Tokens must name the output of an earlier step.
func bindRefs(i int, step Step, ids []string, produced map[string]int) ([]ref, error) {
	refs := make([]ref, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, planErr(i, step, ErrConfiguration, "empty input identifier")
		}
		if !IsToken(id) {
			refs = append(refs, pathRef(id))
			continue
		}
		producer, ok := produced[id]
		if !ok {
			return nil, planErr(i, step, ErrTokenResolution, "token %s is not produced by an earlier step", id)
		}
		refs = append(refs, stepRef(producer))
	}

	return refs, nil
}

var errNoSteps = errors.New("no comparison steps configured")

func unusedErr(side string, ids []string) error {
	return fmt.Errorf("%d unused %s input identifier(s): %s", len(ids), side, strings.Join(ids, ", "))
}
