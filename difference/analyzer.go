package difference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/kddgo/matrix"
	"github.com/hupe1980/kddgo/partition"
	"github.com/hupe1980/kddgo/result"
)

var (
	// ErrNilDataset is returned by New when either dataset is missing.
	ErrNilDataset = errors.New("difference: nil dataset")
	// ErrNotExecuted is returned by Publish before a successful Execute.
	ErrNotExecuted = errors.New("difference: analyzer has not been executed")
	// ErrStructureMismatch is returned by Execute when the datasets differ in
	// group count, layer count or matrix shape.
	ErrStructureMismatch = partition.ErrStructureMismatch
)

// StructureError locates the first structural difference.
type StructureError = partition.StructureError

// Publisher stores a finished report and returns its handle.
// *result.Store implements it.
type Publisher interface {
	Publish(ctx context.Context, kind result.Kind, v any) (result.Handle, error)
}

// Analyzer compares a loaded dataset against a reference dataset.
type Analyzer struct {
	loaded, reference *partition.Dataset
	cfg               config
	logger            *slog.Logger
	last              *Result
}

// New returns an analyzer over the two datasets. Their structure is checked by
// Execute, not here.
func New(loaded, reference *partition.Dataset, optFns ...Option) (*Analyzer, error) {
	if loaded == nil || reference == nil {
		return nil, ErrNilDataset
	}

	var opts options
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

	logger := opts.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Analyzer{loaded: loaded, reference: reference, cfg: cfg, logger: logger}, nil
}

// Properties returns a copy of the current property values.
func (a *Analyzer) Properties() map[string]string {
	return a.cfg.properties()
}

// SetProperty sets one property. An unknown key or a value outside the
// allowed set returns false and leaves the analyzer unchanged. A successful
// change discards the previous result.
func (a *Analyzer) SetProperty(key, value string) bool {
	cfg, err := a.cfg.apply(key, value)
	if err != nil {
		a.logger.Debug("property rejected", "key", key, "value", value, "error", err)
		return false
	}
	if cfg != a.cfg {
		a.cfg = cfg
		a.last = nil
	}
	return true
}

// Execute computes the differences. It fails with ErrStructureMismatch before
// doing any work if the datasets are not structurally identical, and with
// ctx.Err() if ctx is done between groups.
func (a *Analyzer) Execute(ctx context.Context) (*Result, error) {
	if err := a.loaded.SameStructure(a.reference); err != nil {
		a.logger.Error("structure mismatch", "error", err)
		return nil, err
	}

	rows, cols := a.loaded.Shape()
	res := &Result{
		properties: a.cfg.properties(),
		rows:       rows,
		cols:       cols,
		axialOn:    a.cfg.axial,
		radialOn:   a.cfg.radial,
		pinOn:      a.cfg.pin,
	}

	weight := a.weights(rows, cols)

	pins := make([][]*matrix.Matrix, a.loaded.Groups())
	for g := range pins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		layers := a.loaded.Group(g)
		pins[g] = make([]*matrix.Matrix, len(layers))
		for l, m := range layers {
			ref, _ := a.reference.At(g, l)
			d, err := a.diff(m, ref)
			if err != nil {
				return nil, fmt.Errorf("difference: group %d layer %d: %w", g, l, err)
			}
			pins[g][l] = d
		}
	}

	var err error
	if res.pin, err = partition.New(pins); err != nil {
		return nil, err
	}
	res.weights = weight

	if a.cfg.axial {
		res.axial = make([][]float64, len(pins))
		for g, layers := range pins {
			res.axial[g] = make([]float64, len(layers))
			for l, d := range layers {
				res.axial[g][l] = weightedSum(d, weight)
			}
		}
	}

	if a.cfg.radial {
		res.radial = make([]*matrix.Matrix, len(pins))
		for g, layers := range pins {
			sum, _ := matrix.New(rows, cols)
			for _, d := range layers {
				w := d.Clone()
				w.MulElements(weight)
				sum.Add(w)
			}
			res.radial[g] = sum
		}
	}

	a.last = res
	a.logger.Debug("difference computed",
		"groups", res.pin.Groups(),
		"type", a.cfg.kind,
		"max_abs", res.MaxAbs(),
	)
	return res, nil
}

// Result returns the result of the last successful Execute.
func (a *Analyzer) Result() (*Result, bool) {
	return a.last, a.last != nil
}

// Publish stores the report of the last result through p.
func (a *Analyzer) Publish(ctx context.Context, p Publisher) (result.Handle, error) {
	if a.last == nil {
		return result.Handle{}, ErrNotExecuted
	}
	h, err := p.Publish(ctx, result.KindDifference, a.last.Report())
	if err != nil {
		a.logger.Error("publish failed", "error", err)
		return result.Handle{}, err
	}
	a.logger.Info("difference published", "handle", h.String())
	return h, nil
}

func (a *Analyzer) diff(loaded, ref *matrix.Matrix) (*matrix.Matrix, error) {
	d := loaded.Clone()
	if !d.Subtract(ref) {
		return nil, matrix.ErrShapeMismatch
	}
	if a.cfg.kind == Relative {
		// Cells with a zero reference are zeroed first; ScaleByUncertainty
		// leaves them untouched.
		for i, r := range ref.Raw() {
			if r == 0 {
				d.Set(i/d.Cols(), i%d.Cols(), 0)
			}
		}
		d.ScaleByUncertainty(ref)
	}
	return d, nil
}

// weights returns the per-pin weight matrix for the configured symmetry.
// Full symmetry is the only one supported and weights every pin with 1.0.
func (a *Analyzer) weights(rows, cols int) *matrix.Matrix {
	w, _ := matrix.New(rows, cols)
	w.Fill(1.0)
	return w
}

func weightedSum(d, w *matrix.Matrix) float64 {
	p := d.Clone()
	p.MulElements(w)
	return p.Sum()
}
