package etl

import (
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// Stats provides pipeline statistics. Counter fields use atomic operations so
// a ProgressReporter can read a consistent snapshot while the run advances.
type Stats struct {
	extracted   atomic.Int64
	filtered    atomic.Int64
	transformed atomic.Int64
	loaded      atomic.Int64
	errors      atomic.Int64
}

// Extracted returns the number of records extracted.
func (s *Stats) Extracted() int64 { return s.extracted.Load() }

// Filtered returns the number of records filtered out before transformation.
func (s *Stats) Filtered() int64 { return s.filtered.Load() }

// Transformed returns the number of records transformed.
func (s *Stats) Transformed() int64 { return s.transformed.Load() }

// Loaded returns the number of records loaded.
func (s *Stats) Loaded() int64 { return s.loaded.Load() }

// Errors returns the number of errors encountered, including errors that an
// ErrorHandler chose to skip.
func (s *Stats) Errors() int64 { return s.errors.Load() }

// MarshalLogObject implements zapcore.ObjectMarshaler so a *Stats can be
// logged as a structured field via zap.Object("stats", stats).
func (s *Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("extracted", s.Extracted())
	enc.AddInt64("filtered", s.Filtered())
	enc.AddInt64("transformed", s.Transformed())
	enc.AddInt64("loaded", s.Loaded())
	enc.AddInt64("errors", s.Errors())
	return nil
}

// Internal increment methods. incLoaded returns the new value after
// incrementing, which keeps progress-interval tracking race-free.
func (s *Stats) incExtracted(n int64) int64   { return s.extracted.Add(n) }
func (s *Stats) incFiltered(n int64) int64    { return s.filtered.Add(n) }
func (s *Stats) incTransformed(n int64) int64 { return s.transformed.Add(n) }
func (s *Stats) incLoaded(n int64) int64      { return s.loaded.Add(n) }
func (s *Stats) incErrors(n int64) int64      { return s.errors.Add(n) }
