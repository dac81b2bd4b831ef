package etl

import "context"

// Filter excludes records before transformation. Implement this interface when
// you need to skip records based on their content without incurring the cost of
// transformation.
//
// Filter runs in the extract stage, so filtered records never reach the
// transform or load stages.
//
// Use Filter when you have:
//   - Malformed or placeholder source entries that should be ignored
//   - Records outside a target range
//   - Any condition that can be evaluated from the source record alone
type Filter[S any] interface {
	// Include returns true if the record should be processed.
	// Returning false skips the record before it reaches the transform stage.
	Include(src S) bool
}

// ErrorHandler customizes error handling per pipeline stage. Without an
// ErrorHandler, the pipeline stops on the first error in any stage.
//
// Implement this interface when you want to:
//   - Log errors and continue processing (return ActionSkip)
//   - Apply different strategies per stage (e.g., skip transform errors,
//     fail on extract and load errors)
//
// Skipped errors still increment Stats.Errors. The err parameter passed to
// Stopper.Stop only contains the fatal error that caused the pipeline to fail
// (i.e., when OnError returned ActionFail or when no ErrorHandler is present).
type ErrorHandler interface {
	// OnError is called when an error occurs during any stage.
	// Return ActionSkip to continue processing, ActionFail to stop the pipeline.
	OnError(ctx context.Context, stage Stage, err error) Action
}

// Starter is called before pipeline execution begins. Implement this interface
// when you need to perform setup work or enrich the context before extraction
// starts.
//
// The context returned by Start is propagated to all pipeline stages and to
// Stopper.Stop.
//
// Start is called exactly once, before the first call to Extract.
type Starter interface {
	// Start is called before extraction begins.
	// The returned context is used for the entire pipeline.
	Start(ctx context.Context) context.Context
}

// Stopper is called after pipeline execution completes, regardless of whether
// the pipeline succeeded or failed. Implement this interface for cleanup,
// final logging, or metrics reporting.
//
// The err parameter is the same error value returned by Run: the unrecoverable
// error that caused Run to fail (no ErrorHandler, or ErrorHandler returned
// ActionFail). Errors handled with ActionSkip do not appear in err, even though
// they increment Stats.Errors while the pipeline continues processing.
//
// Stop is called exactly once, after the pipeline Run method returns.
type Stopper interface {
	// Stop is called exactly once, after the pipeline Run method returns.
	Stop(ctx context.Context, stats *Stats, err error)
}

// ReportInterval controls how often progress is reported, measured in records
// loaded. This interface can be implemented independently of ProgressReporter
// when you want to set the interval via the job struct rather than the builder.
//
// The value can be overridden at runtime via WithReportInterval, which takes
// precedence over this interface. If neither is set, DefaultReportInterval is
// used.
type ReportInterval interface {
	// ReportInterval returns how often to call OnProgress (in records loaded).
	ReportInterval() int
}

// ProgressReporter receives periodic progress updates during pipeline
// execution. OnProgress is called each time the cumulative loaded count
// crosses a ReportInterval boundary.
type ProgressReporter interface {
	ReportInterval

	// OnProgress is called periodically during execution.
	OnProgress(ctx context.Context, stats *Stats)
}

// LoadBatchSize controls the number of records batched together before calling
// Load. Implement this interface to set the batch size from the job struct
// rather than the pipeline builder.
//
// The value can be overridden at runtime via WithLoadBatchSize, which takes
// precedence. If neither is set, DefaultLoadBatchSize is used.
//
// This value is used as the default batch size when no custom Batcher is
// implemented. When a custom Batcher is present, the buffer is still flushed
// at this size, but the Batcher decides how the buffer splits into batches.
type LoadBatchSize interface {
	// LoadBatchSize returns the number of records to batch before loading.
	LoadBatchSize() int
}
