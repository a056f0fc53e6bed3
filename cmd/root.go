package cmd

import (
	"fmt"
	"os"

	"aadhaar-records/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "aadhaar-records",
	Short: "Aadhaar Records Pipeline",
	Long: `Aadhaar Records reconciles the enrolment, demographic and biometric datasets
into a single keyed table and serves read-only analytics over the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads well in a terminal.
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
