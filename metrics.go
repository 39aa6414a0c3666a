package kddgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// metric.PrometheusCollector implements it for Prometheus.
type MetricsCollector interface {
	// RecordCluster is called after each clustering run over rows feature
	// vectors into k clusters. err is nil if successful.
	RecordCluster(rows, k int, duration time.Duration, err error)

	// RecordDifference is called after each difference analysis over
	// assemblies groups.
	RecordDifference(assemblies int, duration time.Duration, err error)

	// RecordPartition is called after each source is partitioned into groups.
	RecordPartition(groups int, duration time.Duration, err error)

	// RecordPublish is called after each result publication.
	RecordPublish(kind string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCluster(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDifference(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordPartition(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordPublish(string, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ClusterCount         atomic.Int64
	ClusterErrors        atomic.Int64
	ClusterTotalNanos    atomic.Int64
	ClusteredVectors     atomic.Int64
	DifferenceCount      atomic.Int64
	DifferenceErrors     atomic.Int64
	DifferenceTotalNanos atomic.Int64
	AssembliesAnalyzed   atomic.Int64
	PartitionCount       atomic.Int64
	PartitionErrors      atomic.Int64
	PublishCount         atomic.Int64
	PublishErrors        atomic.Int64
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(rows, _ int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClusterErrors.Add(1)
		return
	}
	b.ClusteredVectors.Add(int64(rows))
}

// RecordDifference implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDifference(assemblies int, duration time.Duration, err error) {
	b.DifferenceCount.Add(1)
	b.DifferenceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DifferenceErrors.Add(1)
		return
	}
	b.AssembliesAnalyzed.Add(int64(assemblies))
}

// RecordPartition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPartition(_ int, _ time.Duration, err error) {
	b.PartitionCount.Add(1)
	if err != nil {
		b.PartitionErrors.Add(1)
	}
}

// RecordPublish implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPublish(_ string, _ time.Duration, err error) {
	b.PublishCount.Add(1)
	if err != nil {
		b.PublishErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ClusterCount:       b.ClusterCount.Load(),
		ClusterErrors:      b.ClusterErrors.Load(),
		ClusterAvgNanos:    avg(b.ClusterTotalNanos.Load(), b.ClusterCount.Load()),
		ClusteredVectors:   b.ClusteredVectors.Load(),
		DifferenceCount:    b.DifferenceCount.Load(),
		DifferenceErrors:   b.DifferenceErrors.Load(),
		DifferenceAvgNanos: avg(b.DifferenceTotalNanos.Load(), b.DifferenceCount.Load()),
		AssembliesAnalyzed: b.AssembliesAnalyzed.Load(),
		PartitionCount:     b.PartitionCount.Load(),
		PartitionErrors:    b.PartitionErrors.Load(),
		PublishCount:       b.PublishCount.Load(),
		PublishErrors:      b.PublishErrors.Load(),
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
	ClusterCount       int64
	ClusterErrors      int64
	ClusterAvgNanos    int64
	ClusteredVectors   int64
	DifferenceCount    int64
	DifferenceErrors   int64
	DifferenceAvgNanos int64
	AssembliesAnalyzed int64
	PartitionCount     int64
	PartitionErrors    int64
	PublishCount       int64
	PublishErrors      int64
}
