package kmeans

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/kddgo/cluster"
	"github.com/hupe1980/kddgo/distance"
	"github.com/hupe1980/kddgo/matrix"
	"golang.org/x/sync/errgroup"
)

// ErrNilData is returned by New when no data matrix is given.
var ErrNilData = errors.New("kmeans: nil data matrix")

// Engine clusters the feature vectors of one data matrix.
type Engine struct {
	data    *matrix.Matrix   // one feature vector per row
	vectors []*matrix.Matrix // rows of data as dim×1 vectors
	cfg     config

	seed    *int64
	rng     *rand.Rand
	workers int
	logger  *slog.Logger

	clusters    []*cluster.Cluster
	assignments []int
	clustered   bool
}

// New returns an engine over data. The data matrix is copied; later changes to
// it do not affect the engine. No clustering happens until Cluster is called
// or a property is set.
func New(data *matrix.Matrix, optFns ...Option) (*Engine, error) {
	if data == nil {
		return nil, ErrNilData
	}

	opts := options{workers: 1}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := defaultConfig()
	for k, v := range opts.properties {
		var err error
		if cfg, err = cfg.apply(k, v); err != nil {
			return nil, err
		}
	}

	d := data.Clone()
	if opts.axis == AxisColumns {
		d.Transpose()
	}

	e := &Engine{
		data:    d,
		cfg:     cfg,
		seed:    opts.seed,
		rng:     opts.rng,
		workers: max(opts.workers, 1),
		logger:  opts.logger,
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}
	if e.logger == nil {
		e.logger = discardLogger()
	}

	e.vectors = make([]*matrix.Matrix, d.Rows())
	for i := range e.vectors {
		v, _ := d.Row(i)
		v.Transpose()
		e.vectors[i] = v
	}

	return e, nil
}

// Properties returns a copy of the current configuration.
func (e *Engine) Properties() map[string]string {
	return e.cfg.properties()
}

// SetProperty updates one property and recomputes the clustering. It returns
// false, leaving the engine untouched, for unrecognized keys or invalid values.
func (e *Engine) SetProperty(key, value string) bool {
	cfg, err := e.cfg.apply(key, value)
	if err != nil {
		e.logger.Debug("rejected property", "key", key, "value", value, "error", err)
		return false
	}
	e.cfg = cfg
	if err := e.Cluster(context.Background()); err != nil {
		e.logger.Error("clustering failed", "error", err)
	}
	return true
}

// Cluster runs exactly "Number of Iterations" passes of Lloyd's algorithm and
// replaces any previous result. On error the engine reports not clustered.
func (e *Engine) Cluster(ctx context.Context) error {
	e.clustered = false
	e.clusters = nil
	e.assignments = nil

	distFunc, err := distance.Provider(e.cfg.metric)
	if err != nil {
		return err
	}

	rng := e.rng
	if e.seed != nil {
		rng = rand.New(rand.NewSource(*e.seed)) // nolint gosec
	}

	k, n := e.cfg.k, len(e.vectors)
	mins, maxs := e.data.ColumnBounds()

	clusters := make([]*cluster.Cluster, k)
	for i := range clusters {
		clusters[i] = cluster.New(i)
		clusters[i].SetMean(cluster.RandomMeanBounded(rng, mins, maxs))
	}

	assignments := make([]int, n)
	means := make([][]float64, k)
	populated := bitset.New(uint(k))

	for iter := 0; iter < e.cfg.iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for j, c := range clusters {
			c.Reset()
			means[j] = c.Mean().Raw()
		}

		if err := e.assign(ctx, assignments, means, distFunc); err != nil {
			return err
		}

		populated.ClearAll()
		for i, j := range assignments {
			clusters[j].AddMember(uint32(i), e.vectors[i])
			populated.Set(uint(j))
		}

		for j, c := range clusters {
			if !populated.Test(uint(j)) {
				continue
			}
			if mean, ok := c.TrueMean(); ok {
				c.SetMean(mean)
			}
		}

		e.logger.Debug("kmeans pass completed",
			"iteration", iter,
			"populated", populated.Count(),
			"k", k,
		)
	}

	e.clusters = clusters
	e.assignments = assignments
	e.clustered = true

	e.logger.Info("kmeans clustering completed",
		"k", k,
		"iterations", e.cfg.iterations,
		"vectors", n,
		"metric", e.cfg.metric.String(),
	)
	return nil
}

// assign writes the nearest mean of every vector into out. With more than one
// worker the rows are split into contiguous chunks; each row is still decided
// independently, so the outcome does not depend on the worker count.
func (e *Engine) assign(ctx context.Context, out []int, means [][]float64, distFunc distance.Func) error {
	nearest := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vec := e.data.RowView(i)
			best := 0
			minDist := math.Inf(1)
			for j, mean := range means {
				if d := distFunc(vec, mean); d < minDist {
					minDist = d
					best = j
				}
			}
			out[i] = best
		}
	}

	n := len(out)
	if e.workers <= 1 || n < 2*e.workers {
		nearest(0, n)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + e.workers - 1) / e.workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nearest(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

// IsClustered reports whether a completed clustering is available.
func (e *Engine) IsClustered() bool { return e.clustered }

// NumberOfClusters returns k for a completed clustering and 0 otherwise.
func (e *Engine) NumberOfClusters() int {
	if !e.clustered {
		return 0
	}
	return len(e.clusters)
}

// NumberOfClusterElements returns the member count of cluster i, or 0 when i
// is out of range or no clustering is available.
func (e *Engine) NumberOfClusterElements(i int) int {
	if !e.clustered || i < 0 || i >= len(e.clusters) {
		return 0
	}
	return e.clusters[i].Len()
}

// Clusters returns the clusters of the last completed run.
func (e *Engine) Clusters() []*cluster.Cluster {
	if !e.clustered {
		return nil
	}
	out := make([]*cluster.Cluster, len(e.clusters))
	copy(out, e.clusters)
	return out
}

// Assignments returns the cluster index of every feature vector.
func (e *Engine) Assignments() []int {
	if !e.clustered {
		return nil
	}
	out := make([]int, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// Means returns copies of the final cluster means.
func (e *Engine) Means() []*matrix.Matrix {
	if !e.clustered {
		return nil
	}
	out := make([]*matrix.Matrix, len(e.clusters))
	for i, c := range e.clusters {
		out[i] = c.Mean().Clone()
	}
	return out
}
