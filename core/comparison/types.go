package comparison

import (
	"fmt"
	"strings"

	"asset-lists/core/assetlist"
	"asset-lists/core/pattern"
)

// ComparisonType selects the operator a step applies.
type ComparisonType int

const (
	Delta ComparisonType = iota
	Union
	Intersection
	Complement
	FilePattern
)

var comparisonTypeNames = map[ComparisonType]string{
	Delta:        "delta",
	Union:        "union",
	Intersection: "intersection",
	Complement:   "complement",
	FilePattern:  "filepattern",
}

func (t ComparisonType) String() string {
	if name, ok := comparisonTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("comparison(%d)", int(t))
}

// IsBinary reports whether the operator needs a second input.
func (t ComparisonType) IsBinary() bool {
	return t != FilePattern
}

func (t ComparisonType) valid() bool {
	_, ok := comparisonTypeNames[t]
	return ok
}

// ParseComparisonType parses a type name case-insensitively.
func ParseComparisonType(s string) (ComparisonType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "", "-", "").Replace(name)
	for t, n := range comparisonTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown comparison type %q", ErrConfiguration, s)
}

// Step configures one comparison.
type Step struct {
	// Type is the operator to apply.
	Type ComparisonType
	// Output is a store locator, or a "$" token kept in memory for later steps.
	Output string
	// Pattern is the FilePattern expression.
	Pattern string
	// PatternType selects wildcard or regex interpretation of Pattern.
	PatternType pattern.Kind
	// First overrides the first input. Several identifiers are merged with Union semantics.
	First []string
	// Second overrides the second input. Several identifiers are merged with Union semantics.
	Second []string
}

// NewStep creates a step for a binary operator.
func NewStep(t ComparisonType, output string) Step {
	return Step{Type: t, Output: output}
}

// NewFilePatternStep creates a FilePattern step.
func NewFilePatternStep(output, expr string, kind pattern.Kind) Step {
	return Step{Type: FilePattern, Output: output, Pattern: expr, PatternType: kind}
}

func (s Step) clone() Step {
	s.First = append([]string(nil), s.First...)
	s.Second = append([]string(nil), s.Second...)
	return s
}

// TokenPrefix marks an identifier as a symbolic token.
const TokenPrefix = "$"

// IsToken reports whether identifier names an in-memory step output.
func IsToken(identifier string) bool {
	return strings.HasPrefix(identifier, TokenPrefix)
}

// ref is a resolved input reference: a store locator or the output of an earlier step.
type ref struct {
	locator string
	step    int
}

func pathRef(locator string) ref { return ref{locator: locator, step: -1} }
func stepRef(index int) ref      { return ref{step: index} }

func (r ref) isStep() bool { return r.step >= 0 }

func (r ref) String() string {
	if r.isStep() {
		return fmt.Sprintf("step %d output", r.step+1)
	}
	return r.locator
}

// StepResult describes one executed step.
type StepResult struct {
	// Index is the zero-based step index.
	Index int `json:"index"`
	// Type is the applied operator.
	Type string `json:"type"`
	// Output is the step's output identifier.
	Output string `json:"output"`
	// Count is the number of records produced.
	Count int `json:"count"`
	// Persisted is true when the output was written to the store.
	Persisted bool `json:"persisted"`
}

// Result summarises a comparison call.
type Result struct {
	// Steps lists every step that completed, in order.
	Steps []StepResult `json:"steps"`
	// Output is the list produced by the last completed step.
	Output *assetlist.List `json:"-"`
}
