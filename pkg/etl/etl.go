package etl

import (
	"context"
	"iter"
)

// Stage identifies where in the pipeline an event occurred.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageLoad      Stage = "load"
)

// Action tells the pipeline what to do after an error.
type Action string

const (
	ActionFail Action = "fail" // Stop pipeline and return error
	ActionSkip Action = "skip" // Skip this record and continue
)

// Job defines the core ETL operations. This is the only required interface to
// implement.
//
// The type parameters are:
//   - S: source record type (extracted from the data source)
//   - T: target record type (loaded to the destination)
//
// Records flow through the stages strictly in extraction order. Each record is
// transformed exactly once, buffered, and loaded in batches.
type Job[S, T any] interface {
	// Extract yields records from the source. Yielding an error surfaces it
	// to the pipeline's error handling for the extract stage.
	Extract(ctx context.Context) iter.Seq2[S, error]

	// Transform converts one source record into one target record.
	Transform(ctx context.Context, src S) (T, error)

	// Load writes a batch of records to the destination.
	// Should be idempotent (conflict-tolerant insert or upsert) so that
	// re-running the job does not duplicate rows.
	Load(ctx context.Context, batch []T) error
}
