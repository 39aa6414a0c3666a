package kddgo

import (
	"log/slog"

	"github.com/hupe1980/kddgo/resource"
	"github.com/hupe1980/kddgo/result"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	store            *result.Store
	controller       *resource.Controller
	seed             *int64
	workers          int
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example:
//
//	metrics := &kddgo.BasicMetricsCollector{}
//	eng := kddgo.New(kddgo.WithMetricsCollector(metrics))
//	// ... run analyses ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
//
// Example:
//
//	logger := kddgo.NewJSONLogger(slog.LevelInfo)
//	eng := kddgo.New(kddgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResultStore publishes every successful run to s. Without a store, runs
// return zero handles.
func WithResultStore(s *result.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithResourceController bounds concurrent runs and their memory.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithSeed makes clustering reproducible. Each run starts from the same seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithWorkers sets the number of goroutines used by the k-means assignment step.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(optFns []Option) options {
	opts := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.metricsCollector == nil {
		opts.metricsCollector = NoopMetricsCollector{}
	}
	if opts.logger == nil {
		opts.logger = NoopLogger()
	}
	return opts
}
