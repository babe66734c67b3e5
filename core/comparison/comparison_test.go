package comparison

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"asset-lists/core/assetlist"
	"asset-lists/core/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runSingle(t *testing.T, f *fixture, step Step, first, second []string) *Result {
	t.Helper()
	c := New(f.store, zap.NewNop())
	c.AddComparisonStep(step)
	res, err := c.CompareAndSaveResults(context.Background(), first, second)
	require.NoError(t, err)
	return res
}

func TestCompareAndSaveResults_SingleStep(t *testing.T) {
	tests := []struct {
		name   string
		step   Step
		second []string
		want   []int
	}{
		{"delta", NewStep(Delta, resultFile), []string{secondFile}, []int{2, 4, 5}},
		{"union", NewStep(Union, resultFile), []string{secondFile}, []int{0, 1, 2, 3, 4, 5}},
		{"intersection", NewStep(Intersection, resultFile), []string{secondFile}, []int{1, 2, 3, 4}},
		{"complement", NewStep(Complement, resultFile), []string{secondFile}, []int{5}},
		{"wildcard all", NewFilePatternStep(resultFile, "Asset*.txt", pattern.Wildcard), nil, []int{0, 1, 2, 3, 4}},
		{"wildcard none", NewFilePatternStep(resultFile, "Foo*.txt", pattern.Wildcard), nil, []int{}},
		{"regex", NewFilePatternStep(resultFile, "Asset[0-3].txt", pattern.Regex), nil, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			res := runSingle(t, f, tt.step, []string{firstFile}, tt.second)

			require.True(t, f.store.saved(resultFile))
			saved := f.store.lists[resultFile]
			assert.Equal(t, f.idSet(tt.want...), idsOf(saved))
			require.Len(t, res.Steps, 1)
			assert.Equal(t, len(tt.want), res.Steps[0].Count)
			assert.True(t, res.Steps[0].Persisted)
			assert.Same(t, saved, res.Output)
		})
	}
}

func TestCompareAndSaveResults_DeltaRecordsCarryNewHash(t *testing.T) {
	f := newFixture()

	runSingle(t, f, NewStep(Delta, resultFile), []string{firstFile}, []string{secondFile})

	got, ok := f.store.lists[resultFile].Get(f.ids[2])
	require.True(t, ok)
	want, _ := f.second.Get(f.ids[2])
	assert.Equal(t, want.Hash, got.Hash)
}

func TestCompareAndSaveResults_Chained(t *testing.T) {
	t.Run("delta then filepattern", func(t *testing.T) {
		f := newFixture()
		c := New(f.store, nil)
		c.AddComparisonStep(NewStep(Delta, "$1"))
		c.AddComparisonStep(NewFilePatternStep(resultFile, "Asset[0-3].txt", pattern.Regex))

		res, err := c.CompareAndSaveResults(context.Background(),
			[]string{firstFile, "$1"}, []string{secondFile})
		require.NoError(t, err)

		assert.Equal(t, f.idSet(2), idsOf(f.store.lists[resultFile]))
		assert.Equal(t, []string{resultFile}, f.store.saves, "tokens are never persisted")
		require.Len(t, res.Steps, 2)
		assert.False(t, res.Steps[0].Persisted)
		assert.Equal(t, 3, res.Steps[0].Count)
	})

	t.Run("filepattern then delta", func(t *testing.T) {
		f := newFixture()
		c := New(f.store, nil)
		c.AddComparisonStep(NewFilePatternStep("$1", "Asset*.txt", pattern.Wildcard))
		c.AddComparisonStep(NewStep(Delta, resultFile))

		_, err := c.CompareAndSaveResults(context.Background(),
			[]string{firstFile, "$1"}, []string{secondFile})
		require.NoError(t, err)

		assert.Equal(t, f.idSet(2, 4, 5), idsOf(f.store.lists[resultFile]))
	})

	t.Run("delta union filepattern", func(t *testing.T) {
		f := newFixture()
		c := New(f.store, nil)
		c.AddComparisonStep(NewStep(Delta, "$1"))
		c.AddComparisonStep(NewStep(Union, "$2"))
		c.AddComparisonStep(NewFilePatternStep(resultFile, "Asset[4-5].txt", pattern.Regex))

		res, err := c.CompareAndSaveResults(context.Background(),
			[]string{firstFile, firstFile, "$2"}, []string{secondFile, "$1"})
		require.NoError(t, err)

		assert.Equal(t, f.idSet(4, 5), idsOf(f.store.lists[resultFile]))
		require.Len(t, res.Steps, 3)
		assert.Equal(t, 6, res.Steps[1].Count)
	})

	t.Run("implicit chaining from previous output", func(t *testing.T) {
		f := newFixture()
		c := New(f.store, nil)
		c.AddComparisonStep(NewStep(Union, "$all"))
		c.AddComparisonStep(NewFilePatternStep(resultFile, "asset5.*", pattern.Wildcard))

		_, err := c.CompareAndSaveResults(context.Background(),
			[]string{firstFile}, []string{secondFile})
		require.NoError(t, err)

		assert.Equal(t, f.idSet(5), idsOf(f.store.lists[resultFile]))
	})
}

func TestCompareAndSaveResults_OverrideGroups(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	step := NewStep(Complement, resultFile)
	step.First = []string{firstFile, secondFile}
	step.Second = []string{secondFile}
	c.AddComparisonStep(step)

	_, err := c.CompareAndSaveResults(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, f.store.lists[resultFile].Len())
}

func TestCompareAndSaveResults_IntermediateStepsPersistWhenNamed(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, "delta.assetlist"))
	c.AddComparisonStep(NewFilePatternStep(resultFile, "*", pattern.Wildcard))

	_, err := c.CompareAndSaveResults(context.Background(), []string{firstFile}, []string{secondFile})
	require.NoError(t, err)

	assert.Equal(t, []string{"delta.assetlist", resultFile}, f.store.saves)
}

func TestCompareAndSaveResults_PlanningFailuresWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		steps  []Step
		first  []string
		second []string
		kind   error
		index  int
	}{
		{
			name:  "no steps",
			first: []string{firstFile},
			kind:  ErrConfiguration,
			index: -1,
		},
		{
			name:   "filepattern with a second list",
			steps:  []Step{NewFilePatternStep(resultFile, "*", pattern.Wildcard)},
			first:  []string{firstFile},
			second: []string{secondFile},
			kind:   ErrConfiguration,
			index:  -1,
		},
		{
			name:  "binary step missing second",
			steps: []Step{NewStep(Delta, resultFile)},
			first: []string{firstFile},
			kind:  ErrConfiguration,
			index: 0,
		},
		{
			name:  "first step missing first",
			steps: []Step{NewFilePatternStep(resultFile, "*", pattern.Wildcard)},
			kind:  ErrConfiguration,
			index: 0,
		},
		{
			name:  "missing output",
			steps: []Step{NewFilePatternStep("", "*", pattern.Wildcard)},
			first: []string{firstFile},
			kind:  ErrConfiguration,
			index: 0,
		},
		{
			name: "unbound token",
			steps: []Step{
				NewStep(Delta, resultFile),
			},
			first:  []string{"$missing"},
			second: []string{secondFile},
			kind:   ErrTokenResolution,
			index:  0,
		},
		{
			name: "token used before it is produced",
			steps: []Step{
				NewStep(Delta, "first.assetlist"),
				NewStep(Union, "$1"),
			},
			first:  []string{"$1", firstFile},
			second: []string{secondFile, secondFile},
			kind:   ErrTokenResolution,
			index:  0,
		},
		{
			name: "token bound twice",
			steps: []Step{
				NewStep(Delta, "$1"),
				NewStep(Union, "$1"),
			},
			first:  []string{firstFile, firstFile},
			second: []string{secondFile, secondFile},
			kind:   ErrConfiguration,
			index:  1,
		},
		{
			name: "malformed regex after a valid step",
			steps: []Step{
				NewStep(Delta, "delta.assetlist"),
				NewFilePatternStep(resultFile, "Asset[0-3.txt", pattern.Regex),
			},
			first:  []string{firstFile},
			second: []string{secondFile},
			kind:   ErrPattern,
			index:  1,
		},
		{
			name:   "unknown type",
			steps:  []Step{{Type: ComparisonType(42), Output: resultFile}},
			first:  []string{firstFile},
			second: []string{secondFile},
			kind:   ErrConfiguration,
			index:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			c := New(f.store, nil)
			for _, s := range tt.steps {
				c.AddComparisonStep(s)
			}

			res, err := c.CompareAndSaveResults(context.Background(), tt.first, tt.second)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tt.index, stepErr.Index)
			assert.Equal(t, PhasePlanning, stepErr.Phase)
			assert.Empty(t, f.store.saves)
			assert.Empty(t, res.Steps)
		})
	}
}

func TestCompareAndSaveResults_MissingInputIsIOError(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, resultFile))

	_, err := c.CompareAndSaveResults(context.Background(), []string{"nope.assetlist"}, []string{secondFile})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, assetlist.ErrListNotFound)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, PhaseResolving, stepErr.Phase)
	assert.Empty(t, f.store.saves)
}

func TestCompareAndSaveResults_RejectedLocatorsWriteNothing(t *testing.T) {
	tests := []struct {
		name   string
		bad    string
		first  []string
		output string
		index  int
	}{
		{"output of a later step", "../escape.assetlist", []string{firstFile}, "../escape.assetlist", 1},
		{"input of the first step", "/etc/passwd", []string{"/etc/passwd"}, resultFile, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			store := checkingStore{memStore: f.store, rejected: map[string]bool{tt.bad: true}}
			c := New(store, nil)
			c.AddComparisonStep(NewStep(Delta, "delta.assetlist"))
			c.AddComparisonStep(NewFilePatternStep(tt.output, "*", pattern.Wildcard))

			res, err := c.CompareAndSaveResults(context.Background(), tt.first, []string{secondFile})

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, assetlist.ErrInvalidLocator)
			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, PhasePlanning, stepErr.Phase)
			assert.Equal(t, tt.index, stepErr.Index)
			assert.Empty(t, f.store.saves)
			assert.Empty(t, res.Steps)
		})
	}
}

func TestCompareAndSaveResults_SaveFailureKeepsEarlierOutputs(t *testing.T) {
	f := newFixture()
	boom := errors.New("disk full")
	f.store.saveErrs[resultFile] = boom

	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, "delta.assetlist"))
	c.AddComparisonStep(NewFilePatternStep(resultFile, "*", pattern.Wildcard))

	res, err := c.CompareAndSaveResults(context.Background(), []string{firstFile}, []string{secondFile})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, boom)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, PhasePersisting, stepErr.Phase)
	assert.Equal(t, resultFile, stepErr.Output)

	assert.True(t, f.store.saved("delta.assetlist"))
	require.Len(t, res.Steps, 1)
	assert.Equal(t, "delta.assetlist", res.Steps[0].Output)
}

func TestCompareAndSaveResults_CancelledContext(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, resultFile))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CompareAndSaveResults(ctx, []string{firstFile}, []string{secondFile})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.store.saves)
}

func TestCompareAndSaveResults_Idempotent(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, "$1"))
	c.AddComparisonStep(NewStep(Union, resultFile))

	encode := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, assetlist.Encode(&buf, f.store.lists[resultFile], assetlist.FormatXML))
		return buf.Bytes()
	}

	_, err := c.CompareAndSaveResults(context.Background(), []string{firstFile, firstFile}, []string{secondFile, "$1"})
	require.NoError(t, err)
	first := encode()

	_, err = c.CompareAndSaveResults(context.Background(), []string{firstFile, firstFile}, []string{secondFile, "$1"})
	require.NoError(t, err)

	assert.Equal(t, first, encode())
}

func TestCompareAndSaveResults_ConcurrentCalls(t *testing.T) {
	f := newFixture()
	c := New(f.store, nil)
	c.AddComparisonStep(NewStep(Delta, "$d"))
	c.AddComparisonStep(NewFilePatternStep("$out", "asset[45]\\..*", pattern.Regex))

	var wg sync.WaitGroup
	counts := make([]int, 16)
	errs := make([]error, 16)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.CompareAndSaveResults(context.Background(), []string{firstFile}, []string{secondFile})
			errs[i] = err
			if err == nil {
				counts[i] = res.Output.Len()
			}
		}(i)
	}
	wg.Wait()

	for i := range counts {
		require.NoError(t, errs[i])
		assert.Equal(t, 2, counts[i])
	}
	assert.Empty(t, f.store.saves)
}

func TestAddComparisonStep_CopiesInput(t *testing.T) {
	c := New(newMemStore(), nil)
	step := NewStep(Union, resultFile)
	step.First = []string{firstFile}
	c.AddComparisonStep(step)

	step.First[0] = "changed"

	assert.Equal(t, []string{firstFile}, c.Steps()[0].First)
}
