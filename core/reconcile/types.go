package reconcile

import (
	"errors"

	"aadhaar-records/core/table"
)

// ErrAnchorEmpty is returned when the anchor source contributes no rows.
// Reconciliation stops before any output is produced.
var ErrAnchorEmpty = errors.New("anchor source is empty")

// ErrNoSources is returned when a Spec lists no sources at all.
var ErrNoSources = errors.New("no sources to reconcile")

// Source is one input of a reconciliation.
type Source struct {
	// Name identifies the source in logs and reports (e.g. "enrolment").
	Name string

	// Suffix is appended to this source's column names that collide with
	// columns already in the running result (e.g. "_demo").
	// The anchor's suffix is never used.
	Suffix string

	// Table holds the loaded rows. A nil or empty table is skipped,
	// except for the anchor.
	Table *table.Table
}

// Spec defines a reconciliation: the merge keys and the ordered sources.
// The first source is the anchor and must not be empty.
type Spec struct {
	// Keys are the columns rows are aligned on.
	Keys []string

	// Sources are joined left to right onto the anchor.
	Sources []Source
}

// StageReport describes one join step.
type StageReport struct {
	// Source is the name of the source joined in this step.
	Source string `json:"source"`

	// LeftRows is the running result size before the join.
	LeftRows int `json:"left_rows"`

	// RightRows is the size of the joined source.
	RightRows int `json:"right_rows"`

	// Matched counts right rows that found at least one partner.
	Matched int `json:"matched"`

	// Rows is the running result size after the join.
	Rows int `json:"rows"`

	// Renamed maps colliding source columns to their suffixed names.
	Renamed map[string]string `json:"renamed,omitempty"`
}

// Report summarizes a reconciliation for logging.
type Report struct {
	// Anchor is the name of the anchor source.
	Anchor string `json:"anchor"`

	// Stages lists the joins that ran, in order.
	Stages []StageReport `json:"stages"`

	// Skipped lists optional sources that were empty.
	Skipped []string `json:"skipped"`

	// NumericColumns lists the columns classified numeric after all joins.
	NumericColumns []string `json:"numeric_columns"`

	// FilledCells counts missing numeric cells set to zero.
	FilledCells int `json:"filled_cells"`

	// Rows is the size of the reconciled table.
	Rows int `json:"rows"`
}
