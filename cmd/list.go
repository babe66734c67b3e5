package cmd

import (
	"fmt"
	"path/filepath"

	"asset-lists/core/assetlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Inspect and generate asset lists",
}

var showLimit int

// listShowCmd prints a stored list.
var listShowCmd = &cobra.Command{
	Use:   "show <locator>",
	Short: "Print the records of a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(true)
		if err != nil {
			return err
		}
		defer env.log.Sync()

		list, err := env.store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderList(cmd.OutOrStdout(), args[0], list, showLimit)
		return nil
	},
}

// listLsCmd prints the stored list locators.
var listLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored asset lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(true)
		if err != nil {
			return err
		}
		defer env.log.Sync()

		locators, err := env.store.Locators(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range locators {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

// listGenerateCmd scans a directory into a list.
var listGenerateCmd = &cobra.Command{
	Use:   "generate <directory> <output-locator>",
	Short: "Scan a directory and save its files as an asset list",
	Long: `Walks a directory, hashing every file with SHA-1 and deriving a stable asset id from
its lowercase relative path, then saves the result through the list store.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(true)
		if err != nil {
			return err
		}
		defer env.log.Sync()

		dir, output := filepath.Clean(args[0]), args[1]
		env.log.Info("Scanning directory", zap.String("dir", dir))

		list, err := assetlist.ScanDirectory(dir)
		if err != nil {
			return err
		}
		if err := env.store.Save(cmd.Context(), output, list); err != nil {
			return err
		}

		env.log.Info("Asset list saved", zap.String("output", output), zap.Int("records", list.Len()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listShowCmd, listLsCmd, listGenerateCmd)

	listShowCmd.Flags().IntVarP(&showLimit, "limit", "n", 50, "Maximum records to print, 0 for all")
}
