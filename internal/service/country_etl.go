package service

import (
	"context"
	"iter"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"countries-etl/internal/domain"
	"countries-etl/internal/restcountries"
	"countries-etl/pkg/etl"
)

// maxInsertParams caps a single load batch by PostgreSQL's limit of 65535
// bind parameters per statement.
const maxInsertParams = 65535

// Fetcher retrieves the raw country set from the API.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]restcountries.Country, error)
}

// RowWriter persists flattened rows. InsertRows returns how many rows were
// actually inserted; rows skipped by the uniqueness constraint are not
// counted and are not an error.
type RowWriter interface {
	InsertRows(ctx context.Context, rows []domain.CountryRow) (int64, error)
}

// Options tune a CountryETL run.
type Options struct {
	// SnapshotPath is where the raw merged country set is cached after a
	// live fetch. Empty disables snapshotting.
	SnapshotPath string
	// UseSnapshot reads the snapshot instead of calling the API when the
	// snapshot file exists.
	UseSnapshot bool
	// BatchSize is the number of rows buffered per insert batch.
	BatchSize int
}

// CountryETL is the countries pipeline job: it extracts country documents
// from the REST Countries API (or a local snapshot), flattens each document
// into a table row, and loads the rows with conflict-skip semantics.
//
// Error policy per stage: extract and load errors are fatal for the run,
// while a transform error degrades to a skipped record. Duplicate rows never
// surface as load errors; the insert statement skips them.
type CountryETL struct {
	fetcher Fetcher
	writer  RowWriter
	log     *zap.Logger
	opts    Options

	startedAt time.Time
	inserted  atomic.Int64
	skipped   atomic.Int64
}

var (
	_ etl.Job[restcountries.Country, domain.CountryRow] = (*CountryETL)(nil)
	_ etl.Filter[restcountries.Country]                 = (*CountryETL)(nil)
	_ etl.ErrorHandler                                  = (*CountryETL)(nil)
	_ etl.Starter                                       = (*CountryETL)(nil)
	_ etl.Stopper                                       = (*CountryETL)(nil)
	_ etl.ProgressReporter                              = (*CountryETL)(nil)
	_ etl.Batcher[domain.CountryRow]                    = (*CountryETL)(nil)
	_ etl.LoadBatchSize                                 = (*CountryETL)(nil)
)

// NewCountryETL builds the job. A zero Options.BatchSize falls back to the
// pipeline default.
func NewCountryETL(fetcher Fetcher, writer RowWriter, log *zap.Logger, opts Options) *CountryETL {
	return &CountryETL{
		fetcher: fetcher,
		writer:  writer,
		log:     log,
		opts:    opts,
	}
}

// Run executes the job through the pipeline engine.
func (j *CountryETL) Run(ctx context.Context) error {
	return etl.New[restcountries.Country, domain.CountryRow](j).Run(ctx)
}

// Inserted returns the number of rows the database actually accepted.
func (j *CountryETL) Inserted() int64 { return j.inserted.Load() }

// Skipped returns the number of rows skipped by the uniqueness constraint.
func (j *CountryETL) Skipped() int64 { return j.skipped.Load() }

// Extract yields one raw country document at a time. The whole set is
// resolved up front (snapshot or two merged API calls); any failure there is
// yielded once and aborts the run.
func (j *CountryETL) Extract(ctx context.Context) iter.Seq2[restcountries.Country, error] {
	return func(yield func(restcountries.Country, error) bool) {
		countries, err := j.countries(ctx)
		if err != nil {
			yield(restcountries.Country{}, err)
			return
		}
		for _, c := range countries {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// countries resolves the raw document set, preferring the local snapshot
// when configured and present.
func (j *CountryETL) countries(ctx context.Context) ([]restcountries.Country, error) {
	if j.opts.UseSnapshot && j.opts.SnapshotPath != "" {
		countries, err := restcountries.LoadSnapshot(j.opts.SnapshotPath)
		switch {
		case err == nil:
			j.log.Info("loaded countries from snapshot",
				zap.String("path", j.opts.SnapshotPath),
				zap.Int("count", len(countries)))
			return countries, nil
		case os.IsNotExist(err):
			j.log.Info("snapshot not found, fetching from API",
				zap.String("path", j.opts.SnapshotPath))
		default:
			return nil, err
		}
	}

	countries, err := j.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	j.log.Info("fetched countries from API", zap.Int("count", len(countries)))

	if j.opts.SnapshotPath != "" {
		if err := restcountries.SaveSnapshot(j.opts.SnapshotPath, countries); err != nil {
			// The snapshot is a convenience cache; a failed write must not
			// abort the run.
			j.log.Warn("failed to save snapshot", zap.Error(err))
		} else {
			j.log.Info("saved snapshot", zap.String("path", j.opts.SnapshotPath))
		}
	}
	return countries, nil
}

// Include drops documents with no common name; they cannot satisfy the
// uniqueness key and are placeholder entries on the API side.
func (j *CountryETL) Include(c restcountries.Country) bool {
	return c.Name.Common != ""
}

// Transform flattens one document into a table row.
func (j *CountryETL) Transform(_ context.Context, c restcountries.Country) (domain.CountryRow, error) {
	return Flatten(c), nil
}

// Load writes one batch. Constraint conflicts are counted as skips by the
// writer, never returned as errors.
func (j *CountryETL) Load(ctx context.Context, batch []domain.CountryRow) error {
	inserted, err := j.writer.InsertRows(ctx, batch)
	if err != nil {
		return err
	}
	j.inserted.Add(inserted)
	j.skipped.Add(int64(len(batch)) - inserted)
	return nil
}

// OnError keeps the run alive only for transform-stage errors; a failed
// extract or load aborts the batch.
func (j *CountryETL) OnError(_ context.Context, stage etl.Stage, err error) etl.Action {
	if stage == etl.StageTransform {
		j.log.Warn("skipping country", zap.String("stage", string(stage)), zap.Error(err))
		return etl.ActionSkip
	}
	j.log.Error("pipeline stage failed", zap.String("stage", string(stage)), zap.Error(err))
	return etl.ActionFail
}

// Start records the run start for elapsed-time reporting.
func (j *CountryETL) Start(ctx context.Context) context.Context {
	j.startedAt = time.Now()
	j.log.Info("countries ETL starting",
		zap.Bool("use_snapshot", j.opts.UseSnapshot),
		zap.String("snapshot_path", j.opts.SnapshotPath))
	return ctx
}

// Stop logs the final outcome.
func (j *CountryETL) Stop(_ context.Context, stats *etl.Stats, err error) {
	elapsed := time.Since(j.startedAt)
	if err != nil {
		j.log.Error("countries ETL failed",
			zap.Error(err),
			zap.Object("stats", stats),
			zap.Duration("elapsed", elapsed))
		return
	}
	j.log.Info("countries ETL complete",
		zap.Object("stats", stats),
		zap.Int64("inserted", j.Inserted()),
		zap.Int64("skipped", j.Skipped()),
		zap.Duration("elapsed", elapsed))
}

// ReportInterval reports progress every 100 loaded rows; the full data set
// is only a few hundred countries.
func (j *CountryETL) ReportInterval() int { return 100 }

// OnProgress logs a heartbeat while loading.
func (j *CountryETL) OnProgress(_ context.Context, stats *etl.Stats) {
	j.log.Info("progress", zap.Object("stats", stats))
}

// LoadBatchSize buffers this many rows before an insert batch.
func (j *CountryETL) LoadBatchSize() int {
	if j.opts.BatchSize > 0 {
		return j.opts.BatchSize
	}
	return etl.DefaultLoadBatchSize
}

// Batch caps each insert batch by statement parameter count.
func (j *CountryETL) Batch(items []domain.CountryRow) [][]domain.CountryRow {
	return etl.WeightedBatcher(
		func(domain.CountryRow) int { return domain.NumColumns },
		maxInsertParams,
	).Batch(items)
}
