package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"asset-lists/core/comparison"
	"asset-lists/core/pattern"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareFlags holds the single-step form of the compare command.
type compareFlags struct {
	definition  string
	stepType    string
	output      string
	pattern     string
	patternType string
	first       []string
	second      []string
	jsonOutput  bool
}

var compareOpts compareFlags

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run a comparison pipeline",
	Long: `Runs a single comparison step given by flags, or a whole pipeline from a YAML, TOML
or JSON definition file. Outputs starting with "$" are kept in memory for later steps;
every other output is saved through the configured list store.

  asset-lists compare --type delta --first old.assetlist --second new.assetlist --output changed.assetlist
  asset-lists compare --definition pipeline.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := compareOpts.toDefinition()
		if err != nil {
			return err
		}

		env, err := loadEnvironment(true)
		if err != nil {
			return err
		}
		defer env.log.Sync()

		c := comparison.New(env.store, env.log)
		if err := def.Apply(c); err != nil {
			return err
		}

		res, runErr := c.CompareAndSaveResults(cmd.Context(), def.First, def.Second)

		if compareOpts.jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		} else {
			renderResult(cmd.OutOrStdout(), res, runErr)
		}

		if runErr != nil {
			return runErr
		}
		env.log.Debug("Comparison finished", zap.Int("steps", len(res.Steps)), zap.Int("records", res.Output.Len()))
		return nil
	},
}

// toDefinition builds the definition from the file or from the single-step flags.
func (f compareFlags) toDefinition() (*comparison.Definition, error) {
	if f.definition != "" {
		if f.stepType != "" || f.output != "" || f.pattern != "" {
			return nil, errors.New("--definition cannot be combined with --type, --output or --pattern")
		}
		def, err := comparison.LoadDefinition(f.definition)
		if err != nil {
			return nil, err
		}
		// Flags extend the definition's own input lists.
		def.First = append(def.First, f.first...)
		def.Second = append(def.Second, f.second...)
		return def, nil
	}

	if f.stepType == "" || f.output == "" {
		return nil, errors.New("either --definition or both --type and --output are required")
	}
	if _, err := pattern.ParseKind(f.patternType); err != nil {
		return nil, err
	}

	return &comparison.Definition{
		Steps: []comparison.StepDefinition{{
			Type:        f.stepType,
			Output:      f.output,
			Pattern:     f.pattern,
			PatternType: f.patternType,
		}},
		First:  f.first,
		Second: f.second,
	}, nil
}

func init() {
	RootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringVarP(&compareOpts.definition, "definition", "d", "", "Pipeline definition file (.yaml, .toml, .json)")
	flags.StringVarP(&compareOpts.stepType, "type", "t", "", "Comparison type: delta, union, intersection, complement, filepattern")
	flags.StringVarP(&compareOpts.output, "output", "o", "", "Output locator")
	flags.StringVarP(&compareOpts.pattern, "pattern", "p", "", "File pattern for filepattern steps")
	flags.StringVar(&compareOpts.patternType, "pattern-type", "wildcard", "Pattern type: wildcard or regex")
	flags.StringSliceVarP(&compareOpts.first, "first", "f", nil, "First input list locators, in step order")
	flags.StringSliceVarP(&compareOpts.second, "second", "s", nil, "Second input list locators, in step order")
	flags.BoolVar(&compareOpts.jsonOutput, "json", false, "Print the result as JSON")
}
