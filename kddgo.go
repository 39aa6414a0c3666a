package kddgo

import (
	"context"
	"time"

	"github.com/hupe1980/kddgo/difference"
	"github.com/hupe1980/kddgo/kmeans"
	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/partition"
	"github.com/hupe1980/kddgo/resource"
	"github.com/hupe1980/kddgo/result"
	"github.com/hupe1980/kddgo/source"
)

// bytesPerReading is the in-memory size of one reading.
const bytesPerReading = 8

// Engine runs clustering and difference analyses. It is safe for concurrent
// use; concurrency is bounded by the resource controller, if any.
type Engine struct {
	metrics    MetricsCollector
	logger     *Logger
	store      *result.Store
	controller *resource.Controller
	seed       *int64
	workers    int
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	opts := applyOptions(optFns)
	return &Engine{
		metrics:    opts.metricsCollector,
		logger:     opts.logger,
		store:      opts.store,
		controller: opts.controller,
		seed:       opts.seed,
		workers:    opts.workers,
	}
}

// acquire reserves a run slot and memory for readings values. The returned
// release func must be called when the run ends.
func (e *Engine) acquire(ctx context.Context, readings int) (func(), error) {
	if err := e.controller.AcquireRun(ctx); err != nil {
		return nil, err
	}
	bytes := int64(readings) * bytesPerReading
	if err := e.controller.AcquireMemory(ctx, bytes); err != nil {
		e.controller.ReleaseRun()
		return nil, err
	}
	return func() {
		e.controller.ReleaseMemory(bytes)
		e.controller.ReleaseRun()
	}, nil
}

// Cluster runs k-means over the rows of data with the given properties (see
// the kmeans Prop* keys). The returned handle is zero when no result store
// is configured.
func (e *Engine) Cluster(ctx context.Context, data *matrix.Matrix, props map[string]string) (*kmeans.Engine, result.Handle, error) {
	if data == nil {
		return nil, result.Handle{}, kmeans.ErrNilData
	}

	// The engine keeps a copy of data plus one column vector per row.
	release, err := e.acquire(ctx, 2*data.Len())
	if err != nil {
		return nil, result.Handle{}, err
	}
	defer release()

	start := time.Now()
	km, err := e.cluster(ctx, data, props)
	duration := time.Since(start)
	err = translateError(err)
	k := 0
	if err == nil {
		k = km.NumberOfClusters()
	}
	e.metrics.RecordCluster(data.Rows(), k, duration, err)
	e.logger.LogCluster(ctx, data.Rows(), k, duration, err)
	if err != nil {
		return nil, result.Handle{}, err
	}

	h, err := e.publish(ctx, result.KindCluster, km.Report())
	if err != nil {
		return km, result.Handle{}, err
	}
	return km, h, nil
}

func (e *Engine) cluster(ctx context.Context, data *matrix.Matrix, props map[string]string) (*kmeans.Engine, error) {
	opts := []kmeans.Option{
		kmeans.WithProperties(props),
		kmeans.WithLogger(e.logger.Logger),
		kmeans.WithWorkers(e.workers),
	}
	if e.seed != nil {
		opts = append(opts, kmeans.WithSeed(*e.seed))
	}

	km, err := kmeans.New(data, opts...)
	if err != nil {
		return nil, err
	}
	if err := km.Cluster(ctx); err != nil {
		return nil, err
	}
	return km, nil
}

// ClusterSource builds the data matrix from src ("Number of Rows", "Number of
// Columns" and "Data") and clusters it.
func (e *Engine) ClusterSource(ctx context.Context, src source.Source, props map[string]string) (*kmeans.Engine, result.Handle, error) {
	data, err := matrix.FromSource(src)
	if err != nil {
		err = translateError(err)
		e.logger.LogCluster(ctx, 0, 0, 0, err)
		return nil, result.Handle{}, err
	}
	return e.Cluster(ctx, data, props)
}

// Difference partitions both sources into rows×cols pin matrices and compares
// them with the given properties (see the difference Prop* keys). The
// returned handle is zero when no result store is configured.
func (e *Engine) Difference(ctx context.Context, loaded, reference source.Source, rows, cols int, props map[string]string) (*difference.Result, result.Handle, error) {
	ld, err := e.partition(ctx, "loaded", loaded, rows, cols)
	if err != nil {
		return nil, result.Handle{}, err
	}
	rd, err := e.partition(ctx, "reference", reference, rows, cols)
	if err != nil {
		return nil, result.Handle{}, err
	}

	// Both inputs plus the pin differences.
	readings := 0
	for g := 0; g < ld.Groups(); g++ {
		readings += ld.Layers(g) * rows * cols
	}
	release, err := e.acquire(ctx, 3*readings)
	if err != nil {
		return nil, result.Handle{}, err
	}
	defer release()

	start := time.Now()
	a, res, err := e.difference(ctx, ld, rd, props)
	duration := time.Since(start)
	err = translateError(err)
	var maxAbs float64
	if err == nil {
		maxAbs = res.MaxAbs()
	}
	e.metrics.RecordDifference(ld.Groups(), duration, err)
	e.logger.LogDifference(ctx, ld.Groups(), maxAbs, duration, err)
	if err != nil {
		return nil, result.Handle{}, err
	}

	if e.store == nil {
		return res, result.Handle{}, nil
	}
	start = time.Now()
	h, err := a.Publish(ctx, e.store)
	e.metrics.RecordPublish(string(result.KindDifference), time.Since(start), err)
	e.logger.LogPublish(ctx, result.KindDifference, h, err)
	if err != nil {
		return res, result.Handle{}, err
	}
	return res, h, nil
}

func (e *Engine) difference(ctx context.Context, loaded, reference *partition.Dataset, props map[string]string) (*difference.Analyzer, *difference.Result, error) {
	a, err := difference.New(loaded, reference,
		difference.WithProperties(props),
		difference.WithLogger(e.logger.Logger),
	)
	if err != nil {
		return nil, nil, err
	}
	res, err := a.Execute(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a, res, nil
}

func (e *Engine) partition(ctx context.Context, role string, src source.Source, rows, cols int) (*partition.Dataset, error) {
	start := time.Now()
	d, err := partition.FromSource(src, rows, cols)
	err = translateError(err)
	groups, layers := 0, 0
	if err == nil {
		groups, layers = d.Groups(), d.Layers(0)
	}
	e.metrics.RecordPartition(groups, time.Since(start), err)
	e.logger.LogPartition(ctx, role, groups, layers, err)
	return d, err
}

func (e *Engine) publish(ctx context.Context, kind result.Kind, v any) (result.Handle, error) {
	if e.store == nil {
		return result.Handle{}, nil
	}
	start := time.Now()
	h, err := e.store.Publish(ctx, kind, v)
	e.metrics.RecordPublish(string(kind), time.Since(start), err)
	e.logger.LogPublish(ctx, kind, h, err)
	return h, err
}

// ClusterReport loads a published clustering report.
func (e *Engine) ClusterReport(ctx context.Context, h result.Handle) (kmeans.Report, error) {
	var rep kmeans.Report
	if err := e.resolve(ctx, h, &rep); err != nil {
		return kmeans.Report{}, err
	}
	return rep, nil
}

// DifferenceReport loads a published difference report.
func (e *Engine) DifferenceReport(ctx context.Context, h result.Handle) (*difference.Report, error) {
	var rep difference.Report
	if err := e.resolve(ctx, h, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (e *Engine) resolve(ctx context.Context, h result.Handle, v any) error {
	if e.store == nil {
		return ErrNoResultStore
	}
	return translateError(e.store.Resolve(ctx, h, v))
}
