package cmd

import (
	"fmt"
	"os"

	"asset-lists/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-lists",
	Short: "Asset File Info List comparison tool",
	Long: `asset-lists compares and filters asset file info lists: delta, union,
intersection, complement and file pattern steps chained into a pipeline.
Lists live on disk, in S3/MinIO or in a SQL database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output with development timestamps reads better on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
