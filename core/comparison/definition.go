package comparison

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asset-lists/core/pattern"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// StepDefinition is the serialized form of a Step.
type StepDefinition struct {
	Type        string   `json:"type" yaml:"type" toml:"type"`
	Output      string   `json:"output" yaml:"output" toml:"output"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	PatternType string   `json:"pattern_type,omitempty" yaml:"pattern_type,omitempty" toml:"pattern_type,omitempty"`
	First       []string `json:"first,omitempty" yaml:"first,omitempty" toml:"first,omitempty"`
	Second      []string `json:"second,omitempty" yaml:"second,omitempty" toml:"second,omitempty"`
}

// Definition describes a whole comparison call: the steps and the caller's input lists.
type Definition struct {
	Steps  []StepDefinition `json:"steps" yaml:"steps" toml:"steps"`
	First  []string         `json:"first" yaml:"first" toml:"first"`
	Second []string         `json:"second,omitempty" yaml:"second,omitempty" toml:"second,omitempty"`
}

// BuildSteps converts the step definitions. Errors wrap ErrConfiguration.
func (d *Definition) BuildSteps() ([]Step, error) {
	steps := make([]Step, 0, len(d.Steps))
	for i, sd := range d.Steps {
		t, err := ParseComparisonType(sd.Type)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		kind, err := pattern.ParseKind(sd.PatternType)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w: %v", i+1, ErrConfiguration, err)
		}
		steps = append(steps, Step{
			Type:        t,
			Output:      sd.Output,
			Pattern:     sd.Pattern,
			PatternType: kind,
			First:       sd.First,
			Second:      sd.Second,
		})
	}
	return steps, nil
}

// Apply appends the definition's steps to c.
func (d *Definition) Apply(c *Comparison) error {
	steps, err := d.BuildSteps()
	if err != nil {
		return err
	}
	for _, s := range steps {
		c.AddComparisonStep(s)
	}
	return nil
}

// ParseDefinition decodes a definition. format is "yaml", "toml" or "json".
func ParseDefinition(data []byte, format string) (*Definition, error) {
	var def Definition
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &def)
	case "toml":
		err = toml.Unmarshal(data, &def)
	case "json":
		err = json.Unmarshal(data, &def)
	default:
		return nil, fmt.Errorf("%w: unsupported definition format %q", ErrConfiguration, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s definition: %v", ErrConfiguration, format, err)
	}
	return &def, nil
}

// LoadDefinition reads a definition file, choosing the decoder from its extension.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}
	return ParseDefinition(data, strings.TrimPrefix(filepath.Ext(path), "."))
}
