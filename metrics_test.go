package kddgo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var b BasicMetricsCollector
	boom := errors.New("boom")

	b.RecordCluster(10, 2, 2*time.Millisecond, nil)
	b.RecordCluster(10, 2, 4*time.Millisecond, boom)
	b.RecordDifference(49, time.Millisecond, nil)
	b.RecordPartition(49, time.Millisecond, nil)
	b.RecordPartition(0, time.Millisecond, boom)
	b.RecordPublish("cluster", time.Millisecond, nil)

	s := b.GetStats()
	assert.Equal(t, int64(2), s.ClusterCount)
	assert.Equal(t, int64(1), s.ClusterErrors)
	assert.Equal(t, int64(10), s.ClusteredVectors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), s.ClusterAvgNanos)
	assert.Equal(t, int64(49), s.AssembliesAnalyzed)
	assert.Equal(t, int64(2), s.PartitionCount)
	assert.Equal(t, int64(1), s.PartitionErrors)
	assert.Equal(t, int64(1), s.PublishCount)
	assert.Zero(t, s.PublishErrors)

	var empty BasicMetricsCollector
	assert.Zero(t, empty.GetStats().DifferenceAvgNanos)

	var _ MetricsCollector = NoopMetricsCollector{}
}
