package simmat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDense is called after each dense matrix computation.
	// metric names the computed association ("cosine", "covariance",
	// "correlation"), duration is the total time taken, err is nil if
	// successful.
	RecordDense(metric string, rows, cols int, duration time.Duration, err error)

	// RecordSparse is called after each sparse cosine computation.
	RecordSparse(rows, cols, nnz int, duration time.Duration, err error)

	// RecordVectorPair is called after each vector-pair computation.
	RecordVectorPair(n int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDense(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSparse(int, int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordVectorPair(int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DenseCount       atomic.Int64
	DenseErrors      atomic.Int64
	DenseTotalNanos  atomic.Int64
	SparseCount      atomic.Int64
	SparseErrors     atomic.Int64
	SparseTotalNanos atomic.Int64
	PairCount        atomic.Int64
	PairErrors       atomic.Int64
}

// RecordDense implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDense(_ string, _, _ int, duration time.Duration, err error) {
	b.DenseCount.Add(1)
	b.DenseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DenseErrors.Add(1)
	}
}

// RecordSparse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSparse(_, _, _ int, duration time.Duration, err error) {
	b.SparseCount.Add(1)
	b.SparseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SparseErrors.Add(1)
	}
}

// RecordVectorPair implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVectorPair(_ int, _ time.Duration, err error) {
	b.PairCount.Add(1)
	if err != nil {
		b.PairErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DenseCount:      b.DenseCount.Load(),
		DenseErrors:     b.DenseErrors.Load(),
		DenseAvgNanos:   avg(b.DenseTotalNanos.Load(), b.DenseCount.Load()),
		SparseCount:     b.SparseCount.Load(),
		SparseErrors:    b.SparseErrors.Load(),
		SparseAvgNanos:  avg(b.SparseTotalNanos.Load(), b.SparseCount.Load()),
		VectorPairCount: b.PairCount.Load(),
		PairErrors:      b.PairErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DenseCount      int64
	DenseErrors     int64
	DenseAvgNanos   int64
	SparseCount     int64
	SparseErrors    int64
	SparseAvgNanos  int64
	VectorPairCount int64
	PairErrors      int64
}
