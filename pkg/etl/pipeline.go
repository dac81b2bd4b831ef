package etl

import (
	"context"
	"fmt"
)

// Default configuration values.
const (
	DefaultLoadBatchSize  = 100
	DefaultReportInterval = 1000
)

// Pipeline orchestrates the ETL process. Execution is a single sequential
// pass: extract, filter, transform, buffer, batch, load. There is no worker
// fan-out; records are processed and loaded strictly in extraction order.
type Pipeline[S, T any] struct {
	job Job[S, T]

	// Configuration overrides (nil means use interface value or default)
	batchSize      *int
	reportInterval *int

	// Optional capabilities (detected from job interfaces)
	filter              Filter[S]
	errHandler          ErrorHandler
	progress            ProgressReporter
	starter             Starter
	stopper             Stopper
	batcher             Batcher[T]
	loadBatchSizeIface  LoadBatchSize
	reportIntervalIface ReportInterval
}

// New creates a new Pipeline for the given job.
// The job must implement Job[S, T]. Optional interfaces are auto-detected.
func New[S, T any](job Job[S, T]) *Pipeline[S, T] {
	p := &Pipeline[S, T]{
		job: job,
	}

	// Auto-detect optional interfaces
	if f, ok := any(job).(Filter[S]); ok {
		p.filter = f
	}
	if h, ok := any(job).(ErrorHandler); ok {
		p.errHandler = h
	}
	if t, ok := any(job).(ProgressReporter); ok {
		p.progress = t
	}
	if s, ok := any(job).(Starter); ok {
		p.starter = s
	}
	if s, ok := any(job).(Stopper); ok {
		p.stopper = s
	}
	if b, ok := any(job).(Batcher[T]); ok {
		p.batcher = b
	}
	if s, ok := any(job).(LoadBatchSize); ok {
		p.loadBatchSizeIface = s
	}
	if r, ok := any(job).(ReportInterval); ok {
		p.reportIntervalIface = r
	}

	return p
}

// WithLoadBatchSize overrides the number of records to batch before loading.
// Priority: this method > LoadBatchSize interface > DefaultLoadBatchSize.
// Values less than 1 are ignored.
func (p *Pipeline[S, T]) WithLoadBatchSize(n int) *Pipeline[S, T] {
	if n >= 1 {
		p.batchSize = &n
	}
	return p
}

// WithReportInterval overrides how often to report progress (in records).
// Priority: this method > ProgressReporter interface > DefaultReportInterval.
// Values less than 1 are ignored.
func (p *Pipeline[S, T]) WithReportInterval(n int) *Pipeline[S, T] {
	if n >= 1 {
		p.reportInterval = &n
	}
	return p
}

// Run executes the pipeline and returns the first unrecoverable error, or nil
// when the source is exhausted and every buffered batch has been loaded.
func (p *Pipeline[S, T]) Run(ctx context.Context) error {
	stats := &Stats{}

	if p.starter != nil {
		ctx = p.starter.Start(ctx)
	}

	err := p.run(ctx, stats)

	if p.stopper != nil {
		p.stopper.Stop(ctx, stats, err)
	}

	return err
}

func (p *Pipeline[S, T]) run(ctx context.Context, stats *Stats) error {
	batcher := p.resolveBatcher()
	batchSize := p.resolveLoadBatchSize()
	reportEvery := int64(p.resolveReportInterval())

	var pending []T

	loadBatch := func(batch []T) error {
		if err := p.job.Load(ctx, batch); err != nil {
			stats.incErrors(1)
			if p.errHandler != nil && p.errHandler.OnError(ctx, StageLoad, err) == ActionSkip {
				return nil
			}
			return fmt.Errorf("load: %w", err)
		}

		newLoaded := stats.incLoaded(int64(len(batch)))
		prevLoaded := newLoaded - int64(len(batch))

		// Report progress when crossing a reportEvery threshold
		if p.progress != nil && newLoaded/reportEvery > prevLoaded/reportEvery {
			p.progress.OnProgress(ctx, stats)
		}
		return nil
	}

	flush := func() error {
		for _, batch := range batcher.Batch(pending) {
			if len(batch) == 0 {
				continue
			}
			if err := loadBatch(batch); err != nil {
				return err
			}
		}
		pending = nil
		return nil
	}

	for record, err := range p.job.Extract(ctx) {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		if err != nil {
			stats.incErrors(1)
			if p.errHandler != nil && p.errHandler.OnError(ctx, StageExtract, err) == ActionSkip {
				continue
			}
			return fmt.Errorf("extract: %w", err)
		}

		stats.incExtracted(1)

		if p.filter != nil && !p.filter.Include(record) {
			stats.incFiltered(1)
			continue
		}

		result, err := p.job.Transform(ctx, record)
		if err != nil {
			stats.incErrors(1)
			if p.errHandler != nil && p.errHandler.OnError(ctx, StageTransform, err) == ActionSkip {
				continue
			}
			return fmt.Errorf("transform: %w", err)
		}

		stats.incTransformed(1)
		pending = append(pending, result)

		if len(pending) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if len(pending) > 0 {
		return flush()
	}
	return nil
}

// resolveLoadBatchSize returns the effective load batch size.
// Priority: WithLoadBatchSize > LoadBatchSize interface > DefaultLoadBatchSize.
func (p *Pipeline[S, T]) resolveLoadBatchSize() int {
	if p.batchSize != nil {
		return *p.batchSize
	}
	if p.loadBatchSizeIface != nil {
		return p.loadBatchSizeIface.LoadBatchSize()
	}
	return DefaultLoadBatchSize
}

// resolveReportInterval returns the effective report interval.
// Priority: WithReportInterval > ReportInterval interface > DefaultReportInterval.
func (p *Pipeline[S, T]) resolveReportInterval() int {
	if p.reportInterval != nil {
		return *p.reportInterval
	}
	if p.reportIntervalIface != nil {
		return p.reportIntervalIface.ReportInterval()
	}
	return DefaultReportInterval
}

// resolveBatcher returns the effective batcher.
// Uses the job's Batcher if implemented, otherwise falls back to SizeBatcher
// with the resolved load batch size.
func (p *Pipeline[S, T]) resolveBatcher() Batcher[T] {
	if p.batcher != nil {
		return p.batcher
	}
	return SizeBatcher[T](p.resolveLoadBatchSize())
}
