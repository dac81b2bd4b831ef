package etl_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"countries-etl/pkg/etl"
)

// =============================================================================
// Test Helpers
// =============================================================================

// testRecord is a simple source record for testing.
type testRecord struct {
	ID    int
	Value string
}

// testOutput is a simple target record for testing.
type testOutput struct {
	ID      int
	Doubled string
}

func yieldAll(records []testRecord) iter.Seq2[testRecord, error] {
	return func(yield func(testRecord, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// =============================================================================
// Minimal Job Implementation
// =============================================================================

// minimalJob implements only the required Job interface.
type minimalJob struct {
	records []testRecord
	loaded  [][]testOutput
}

var _ etl.Job[testRecord, testOutput] = (*minimalJob)(nil)

func (j *minimalJob) Extract(_ context.Context) iter.Seq2[testRecord, error] {
	return yieldAll(j.records)
}

func (j *minimalJob) Transform(_ context.Context, src testRecord) (testOutput, error) {
	return testOutput{ID: src.ID, Doubled: src.Value + src.Value}, nil
}

func (j *minimalJob) Load(_ context.Context, batch []testOutput) error {
	j.loaded = append(j.loaded, batch)
	return nil
}

// =============================================================================
// Full-Featured Job Implementation
// =============================================================================

// fullJob implements the optional capability interfaces.
type fullJob struct {
	records         []testRecord
	loaded          [][]testOutput
	started         bool
	stopped         bool
	stopErr         error
	errorsCaught    int
	errorAction     etl.Action
	filterPredicate func(testRecord) bool
	transformErrOn  int
	loadErr         error
	extractErr      error
}

var (
	_ etl.Job[testRecord, testOutput] = (*fullJob)(nil)
	_ etl.Filter[testRecord]          = (*fullJob)(nil)
	_ etl.ErrorHandler                = (*fullJob)(nil)
	_ etl.LoadBatchSize               = (*fullJob)(nil)
	_ etl.Starter                     = (*fullJob)(nil)
	_ etl.Stopper                     = (*fullJob)(nil)
)

func (j *fullJob) Extract(_ context.Context) iter.Seq2[testRecord, error] {
	return func(yield func(testRecord, error) bool) {
		for _, r := range j.records {
			if !yield(r, nil) {
				return
			}
		}
		if j.extractErr != nil {
			yield(testRecord{}, j.extractErr)
		}
	}
}

func (j *fullJob) Transform(_ context.Context, src testRecord) (testOutput, error) {
	if j.transformErrOn != 0 && src.ID == j.transformErrOn {
		return testOutput{}, errors.New("bad record")
	}
	return testOutput{ID: src.ID, Doubled: src.Value + src.Value}, nil
}

func (j *fullJob) Load(_ context.Context, batch []testOutput) error {
	if j.loadErr != nil {
		return j.loadErr
	}
	j.loaded = append(j.loaded, batch)
	return nil
}

func (j *fullJob) Include(src testRecord) bool {
	if j.filterPredicate != nil {
		return j.filterPredicate(src)
	}
	return true
}

func (j *fullJob) OnError(_ context.Context, _ etl.Stage, _ error) etl.Action {
	j.errorsCaught++
	if j.errorAction != "" {
		return j.errorAction
	}
	return etl.ActionSkip
}

func (j *fullJob) LoadBatchSize() int { return 50 }

func (j *fullJob) Start(ctx context.Context) context.Context {
	j.started = true
	return ctx
}

func (j *fullJob) Stop(_ context.Context, _ *etl.Stats, err error) {
	j.stopped = true
	j.stopErr = err
}

func (j *fullJob) loadedCount() int {
	total := 0
	for _, batch := range j.loaded {
		total += len(batch)
	}
	return total
}

// =============================================================================
// Pipeline Tests
// =============================================================================

func TestPipeline_MinimalJob(t *testing.T) {
	job := &minimalJob{
		records: []testRecord{
			{ID: 1, Value: "a"},
			{ID: 2, Value: "b"},
			{ID: 3, Value: "c"},
		},
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)

	total := 0
	for _, batch := range job.loaded {
		total += len(batch)
	}
	require.Equal(t, 3, total)
}

func TestPipeline_EmptyJob(t *testing.T) {
	job := &minimalJob{records: []testRecord{}}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, job.loaded)
}

func TestPipeline_PreservesExtractionOrder(t *testing.T) {
	job := &minimalJob{
		records: []testRecord{
			{ID: 3, Value: "c"},
			{ID: 1, Value: "a"},
			{ID: 2, Value: "b"},
		},
	}

	err := etl.New[testRecord, testOutput](job).WithLoadBatchSize(2).Run(context.Background())
	require.NoError(t, err)

	var ids []int
	for _, batch := range job.loaded {
		for _, out := range batch {
			ids = append(ids, out.ID)
		}
	}
	require.Equal(t, []int{3, 1, 2}, ids)
}

func TestPipeline_BatchSize(t *testing.T) {
	job := &minimalJob{
		records: []testRecord{
			{ID: 1, Value: "a"},
			{ID: 2, Value: "b"},
			{ID: 3, Value: "c"},
			{ID: 4, Value: "d"},
			{ID: 5, Value: "e"},
		},
	}

	err := etl.New[testRecord, testOutput](job).WithLoadBatchSize(2).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, job.loaded, 3)
	require.Len(t, job.loaded[0], 2)
	require.Len(t, job.loaded[1], 2)
	require.Len(t, job.loaded[2], 1)
}

func TestPipeline_WithFilter(t *testing.T) {
	job := &fullJob{
		records: []testRecord{
			{ID: 1, Value: "a"},
			{ID: 2, Value: "b"},
			{ID: 3, Value: "c"},
		},
		filterPredicate: func(r testRecord) bool {
			return r.ID%2 == 1 // Only odd IDs
		},
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, job.loadedCount())
}

func TestPipeline_StarterStopper(t *testing.T) {
	job := &fullJob{
		records: []testRecord{{ID: 1, Value: "a"}},
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)
	require.True(t, job.started, "Starter should be called")
	require.True(t, job.stopped, "Stopper should be called")
	require.NoError(t, job.stopErr)
}

func TestPipeline_TransformErrorSkipped(t *testing.T) {
	job := &fullJob{
		records: []testRecord{
			{ID: 1, Value: "a"},
			{ID: 2, Value: "b"},
			{ID: 3, Value: "c"},
		},
		transformErrOn: 2,
		errorAction:    etl.ActionSkip,
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, job.errorsCaught)
	require.Equal(t, 2, job.loadedCount())
}

func TestPipeline_TransformErrorFailsWithoutHandler(t *testing.T) {
	job := &minimalJob{records: []testRecord{{ID: 1, Value: "a"}}}
	failing := &transformFailJob{minimalJob: job}

	err := etl.New[testRecord, testOutput](failing).Run(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "transform")
	require.Empty(t, job.loaded)
}

// transformFailJob wraps minimalJob with an always-failing Transform.
type transformFailJob struct {
	*minimalJob
}

func (j *transformFailJob) Transform(_ context.Context, _ testRecord) (testOutput, error) {
	return testOutput{}, errors.New("boom")
}

func TestPipeline_ExtractErrorFails(t *testing.T) {
	extractErr := errors.New("source unreachable")
	job := &fullJob{
		records:     []testRecord{{ID: 1, Value: "a"}},
		extractErr:  extractErr,
		errorAction: etl.ActionFail,
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, extractErr)
	require.True(t, job.stopped)
	require.Equal(t, err, job.stopErr)
}

func TestPipeline_LoadErrorFails(t *testing.T) {
	loadErr := errors.New("connection lost")
	job := &fullJob{
		records:     []testRecord{{ID: 1, Value: "a"}},
		loadErr:     loadErr,
		errorAction: etl.ActionFail,
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, loadErr)
	require.Empty(t, job.loaded)
}

func TestPipeline_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := &minimalJob{
		records: []testRecord{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}},
	}

	err := etl.New[testRecord, testOutput](job).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, job.loaded)
}

// =============================================================================
// Progress Reporting
// =============================================================================

type progressJob struct {
	minimalJob
	reports int
}

var _ etl.ProgressReporter = (*progressJob)(nil)

func (j *progressJob) ReportInterval() int { return 2 }

func (j *progressJob) OnProgress(_ context.Context, stats *etl.Stats) {
	j.reports++
	_ = stats.Loaded()
}

func TestPipeline_ProgressReporting(t *testing.T) {
	job := &progressJob{
		minimalJob: minimalJob{
			records: []testRecord{
				{ID: 1, Value: "a"},
				{ID: 2, Value: "b"},
				{ID: 3, Value: "c"},
				{ID: 4, Value: "d"},
			},
		},
	}

	err := etl.New[testRecord, testOutput](job).WithLoadBatchSize(1).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, job.reports, "should report at 2 and 4 loaded")
}

// =============================================================================
// Custom Batcher
// =============================================================================

type batcherJob struct {
	minimalJob
	batchCalls int
}

var _ etl.Batcher[testOutput] = (*batcherJob)(nil)

func (j *batcherJob) Batch(items []testOutput) [][]testOutput {
	j.batchCalls++
	return etl.SizeBatcher[testOutput](1).Batch(items)
}

func TestPipeline_CustomBatcher(t *testing.T) {
	job := &batcherJob{
		minimalJob: minimalJob{
			records: []testRecord{
				{ID: 1, Value: "a"},
				{ID: 2, Value: "b"},
				{ID: 3, Value: "c"},
			},
		},
	}

	err := etl.New[testRecord, testOutput](job).Run(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, job.batchCalls, 1)
	require.Len(t, job.loaded, 3, "custom batcher should split into single-item batches")
}
