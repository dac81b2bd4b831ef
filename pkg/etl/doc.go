// Package etl provides a small Extract-Transform-Load pipeline engine for
// single-pass batch jobs.
//
// The package uses an interface-based API where your job type implements only
// the interfaces it needs. The pipeline auto-detects implemented interfaces
// and configures itself accordingly. Runtime configuration overrides are also
// available via method chaining.
//
// # Quick Start
//
// Implement the required Job interface:
//
//	type MyJob struct {
//	    db *pgxpool.Pool
//	}
//
//	func (j *MyJob) Extract(ctx context.Context) iter.Seq2[Source, error] {
//	    return func(yield func(Source, error) bool) {
//	        rows, err := j.fetch(ctx)
//	        if err != nil {
//	            yield(Source{}, err)
//	            return
//	        }
//	        for _, r := range rows {
//	            if !yield(r, nil) {
//	                return
//	            }
//	        }
//	    }
//	}
//
//	func (j *MyJob) Transform(ctx context.Context, src Source) (Target, error) {
//	    return Target{ID: src.ID, Name: strings.ToUpper(src.Name)}, nil
//	}
//
//	func (j *MyJob) Load(ctx context.Context, batch []Target) error {
//	    return j.insertBatch(ctx, batch)
//	}
//
//	// Run the pipeline
//	err := etl.New[Source, Target](&MyJob{db: db}).Run(ctx)
//
// # Optional Interfaces
//
// The pipeline auto-detects optional interfaces. Just implement what you need:
//
//   - [Filter]: drop source records before transformation
//   - [ErrorHandler]: decide per stage whether an error skips or fails
//   - [Starter] / [Stopper]: run lifecycle hooks around the pass
//   - [ProgressReporter]: periodic progress callbacks while loading
//   - [Batcher] / [LoadBatchSize]: control how the load buffer splits
//
// # Execution Model
//
// The pipeline makes one sequential pass over the source. Each record is
// extracted, optionally filtered, transformed, and buffered; the buffer is
// batched and loaded whenever it reaches the load batch size, and flushed
// once the source is exhausted. Load should be idempotent (conflict-tolerant
// insert or upsert) so that re-running a job does not duplicate rows.
package etl
