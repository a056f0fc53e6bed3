package records

import (
	"context"
	"fmt"
	"time"

	"aadhaar-records/core/pipeline"
	"aadhaar-records/core/reconcile"
	"aadhaar-records/core/table"

	"go.uber.org/zap"
)

// MergeKeys are the columns the three datasets are aligned on.
var MergeKeys = []string{"date", "state", "district", "pincode"}

const (
	SourceEnrolment   = "enrolment"
	SourceDemographic = "demographic"
	SourceBiometric   = "biometric"
)

// Result describes a completed run.
type Result struct {
	// Rows is the number of reconciled records written.
	Rows int `json:"rows"`
	// Columns is the header of the artifact.
	Columns []string `json:"columns"`
	// Sample is the first record, if any.
	Sample map[string]string `json:"sample,omitempty"`
	// Output is the primary artifact path.
	Output string `json:"output"`
	// Loads reports each source directory scan.
	Loads []*table.LoadReport `json:"loads"`
	// Reconcile reports the join stages.
	Reconcile *reconcile.Report `json:"reconcile"`
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// Pipeline loads, reconciles, identifies and materializes the datasets.
type Pipeline struct {
	cfg          pipeline.Config
	materializer *Materializer
	logger       *zap.Logger
}

// NewPipeline creates a pipeline for cfg writing through materializer.
func NewPipeline(cfg pipeline.Config, materializer *Materializer, logger *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, materializer: materializer, logger: logger}
}

// Run executes one full rebuild of the artifact.
// An empty enrolment source is fatal and nothing is written.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	p.logger.Info("Starting data processing")

	enrolment, enrolReport := table.ReadDir(p.cfg.EnrolmentDir, p.logger.With(zap.String("source", SourceEnrolment)))
	demographic, demoReport := table.ReadDir(p.cfg.DemographicDir, p.logger.With(zap.String("source", SourceDemographic)))
	biometric, bioReport := table.ReadDir(p.cfg.BiometricDir, p.logger.With(zap.String("source", SourceBiometric)))

	merged, report, err := reconcile.ReconcileAll(&reconcile.Spec{
		Keys: MergeKeys,
		Sources: []reconcile.Source{
			{Name: SourceEnrolment, Table: enrolment},
			{Name: SourceDemographic, Suffix: "_demo", Table: demographic},
			{Name: SourceBiometric, Suffix: "_bio", Table: biometric},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	for _, stage := range report.Stages {
		p.logger.Info("Merged source",
			zap.String("source", stage.Source),
			zap.Int("left_rows", stage.LeftRows),
			zap.Int("right_rows", stage.RightRows),
			zap.Int("matched", stage.Matched),
			zap.Int("rows", stage.Rows),
		)
	}
	for _, name := range report.Skipped {
		p.logger.Info("Skipped empty source", zap.String("source", name))
	}
	p.logger.Debug("Filled numeric columns",
		zap.Strings("columns", report.NumericColumns),
		zap.Int("cells", report.FilledCells),
	)

	if err := AssignRecordIDs(ctx, merged, p.cfg.Workers); err != nil {
		return nil, err
	}

	if err := p.materializer.Materialize(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save output: %w", err)
	}

	return &Result{
		Rows:      merged.Len(),
		Columns:   merged.Columns,
		Sample:    Sample(merged),
		Output:    p.cfg.OutputFile,
		Loads:     []*table.LoadReport{enrolReport, demoReport, bioReport},
		Reconcile: report,
		Duration:  time.Since(start),
	}, nil
}
