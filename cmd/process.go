package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aadhaar-records/core/config"
	"aadhaar-records/core/database"
	"aadhaar-records/core/logger"
	"aadhaar-records/core/pipeline"
	"aadhaar-records/core/storage"
	"aadhaar-records/feature/records"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// processCmd runs the reconciliation pipeline once.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the reconciled records artifact",
	Long: `Loads the enrolment, demographic and biometric datasets, merges them on
(date, state, district, pincode), assigns record identifiers and writes the result.

Examples:
  # Use configured directories
  process

  # Override inputs and output
  process --enrolment ./in/enrol --output ./out/processed_records.csv

  # Also publish to object storage and mirror into the database
  process --publish-storage --mirror-db`,
	RunE: runProcess,
}

func init() {
	addProcessFlags(processCmd)
	RootCmd.AddCommand(processCmd)
}

func addProcessFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("enrolment", "", "Directory holding the enrolment files")
	f.String("demographic", "", "Directory holding the demographic files")
	f.String("biometric", "", "Directory holding the biometric files")
	f.String("output", "", "Path of the CSV artifact")
	f.Int("workers", 0, "Workers used to assign record identifiers")
	f.Bool("publish-storage", false, "Upload the artifact to object storage")
	f.Bool("mirror-db", false, "Replace the mirror table in the database")
}

// applyProcessFlags overrides cfg with the flags set on the command line.
func applyProcessFlags(cmd *cobra.Command, cfg *pipeline.Config) error {
	f := cmd.Flags()
	var err error

	if f.Changed("enrolment") {
		cfg.EnrolmentDir, err = f.GetString("enrolment")
	}
	if err == nil && f.Changed("demographic") {
		cfg.DemographicDir, err = f.GetString("demographic")
	}
	if err == nil && f.Changed("biometric") {
		cfg.BiometricDir, err = f.GetString("biometric")
	}
	if err == nil && f.Changed("output") {
		cfg.OutputFile, err = f.GetString("output")
	}
	if err == nil && f.Changed("workers") {
		cfg.Workers, err = f.GetInt("workers")
	}
	if err == nil && f.Changed("publish-storage") {
		cfg.PublishStorage, err = f.GetBool("publish-storage")
	}
	if err == nil && f.Changed("mirror-db") {
		cfg.MirrorDatabase, err = f.GetBool("mirror-db")
	}
	if err != nil {
		return err
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyProcessFlags(cmd, &cfg.Pipeline); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	var mirrors []records.Sink

	if cfg.Pipeline.PublishStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		mirrors = append(mirrors, records.NewStorageSink(client, cfg.Storage.Bucket, cfg.Pipeline.ObjectName, l))
	}

	if cfg.Pipeline.MirrorDatabase {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		mirrors = append(mirrors, records.NewDatabaseSink(db, cfg.Pipeline.MirrorTable, l))
	}

	m := records.NewMaterializer(l, records.NewFileSink(cfg.Pipeline.OutputFile), mirrors...)
	result, err := records.NewPipeline(cfg.Pipeline, m, l).Run(ctx)
	if err != nil {
		return err
	}

	l.Info("Data saved",
		zap.String("output", result.Output),
		zap.Int("rows", result.Rows),
		zap.Duration("duration", result.Duration),
	)
	return nil
}
