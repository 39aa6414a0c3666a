// Package metric exports kddgo operation metrics to Prometheus.
package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

type options struct {
	namespace string
	buckets   []float64
}

// Option configures a PrometheusCollector.
type Option func(*options)

// WithNamespace sets the metric name prefix. Default: "kdd".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithBuckets sets the latency histogram buckets in seconds.
// Default: prometheus.DefBuckets.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		o.buckets = b
	}
}

// PrometheusCollector records clustering, difference, partition and publish
// operations as Prometheus metrics. It satisfies kddgo.MetricsCollector.
type PrometheusCollector struct {
	latency    *prometheus.HistogramVec
	operations *prometheus.CounterVec
	vectors    prometheus.Counter
	clusters   prometheus.Histogram
	assemblies prometheus.Counter
	groups     prometheus.Counter
	published  *prometheus.CounterVec
}

// NewPrometheusCollector creates the collector and registers its metrics on
// reg. A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, optFns ...Option) (*PrometheusCollector, error) {
	opts := options{namespace: "kdd", buckets: prometheus.DefBuckets}
	for _, fn := range optFns {
		fn(&opts)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of kdd operations",
			Buckets:   opts.buckets,
		}, []string{"op", "status"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.namespace,
			Name:      "operations_total",
			Help:      "Total kdd operations",
		}, []string{"op", "status"}),
		vectors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.namespace,
			Name:      "clustered_vectors_total",
			Help:      "Total feature vectors clustered",
		}),
		clusters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: opts.namespace,
			Name:      "clusters_per_run",
			Help:      "Number of clusters requested per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		assemblies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.namespace,
			Name:      "assemblies_analyzed_total",
			Help:      "Total assemblies compared by difference analysis",
		}),
		groups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.namespace,
			Name:      "partition_groups_total",
			Help:      "Total groups produced by partitioning",
		}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.namespace,
			Name:      "results_published_total",
			Help:      "Total results published",
		}, []string{"kind"}),
	}

	var errs []error
	for _, col := range []prometheus.Collector{
		c.latency, c.operations, c.vectors, c.clusters, c.assemblies, c.groups, c.published,
	} {
		if err := reg.Register(col); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *PrometheusCollector) observe(op string, d time.Duration, err error) {
	s := status(err)
	c.latency.WithLabelValues(op, s).Observe(d.Seconds())
	c.operations.WithLabelValues(op, s).Inc()
}

// RecordCluster records one k-means run over rows vectors into k clusters.
func (c *PrometheusCollector) RecordCluster(rows, k int, d time.Duration, err error) {
	c.observe("cluster", d, err)
	if err != nil {
		return
	}
	c.vectors.Add(float64(rows))
	c.clusters.Observe(float64(k))
}

// RecordDifference records one difference analysis over assemblies groups.
func (c *PrometheusCollector) RecordDifference(assemblies int, d time.Duration, err error) {
	c.observe("difference", d, err)
	if err == nil {
		c.assemblies.Add(float64(assemblies))
	}
}

// RecordPartition records one partitioning into groups groups.
func (c *PrometheusCollector) RecordPartition(groups int, d time.Duration, err error) {
	c.observe("partition", d, err)
	if err == nil {
		c.groups.Add(float64(groups))
	}
}

// RecordPublish records one result publication of the given kind.
func (c *PrometheusCollector) RecordPublish(kind string, d time.Duration, err error) {
	c.observe("publish", d, err)
	if err == nil {
		c.published.WithLabelValues(kind).Inc()
	}
}
