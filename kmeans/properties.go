package kmeans

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/kddgo/distance"
)

// Property keys.
const (
	PropClusters               = "Number of Clusters"
	PropIterations             = "Number of Iterations"
	PropVisualizationDimension = "Visualization Dimension"
	PropDistanceMeasure        = "Distance Measure"
)

// ErrInvalidProperty is returned by New for an unrecognized key or invalid value.
var ErrInvalidProperty = errors.New("kmeans: invalid property")

type config struct {
	k          int
	iterations int
	visDim     int
	metric     distance.Metric
}

func defaultConfig() config {
	return config{k: 2, iterations: 10, visDim: 2, metric: distance.Euclidean}
}

// apply returns a copy of c with key set to value.
func (c config) apply(key, value string) (config, error) {
	switch key {
	case PropClusters:
		n, err := positive(key, value)
		if err != nil {
			return c, err
		}
		c.k = n
	case PropIterations:
		n, err := positive(key, value)
		if err != nil {
			return c, err
		}
		c.iterations = n
	case PropVisualizationDimension:
		n, err := positive(key, value)
		if err != nil {
			return c, err
		}
		c.visDim = n
	case PropDistanceMeasure:
		m, err := distance.ParseMetric(value)
		if err != nil {
			return c, fmt.Errorf("%w: %w", ErrInvalidProperty, err)
		}
		c.metric = m
	default:
		return c, fmt.Errorf("%w: unknown key %q", ErrInvalidProperty, key)
	}
	return c, nil
}

func (c config) properties() map[string]string {
	return map[string]string{
		PropClusters:               strconv.Itoa(c.k),
		PropIterations:             strconv.Itoa(c.iterations),
		PropVisualizationDimension: strconv.Itoa(c.visDim),
		PropDistanceMeasure:        c.metric.String(),
	}
}

func positive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q must be a positive integer, got %q", ErrInvalidProperty, key, value)
	}
	return n, nil
}
