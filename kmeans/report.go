package kmeans

// Report is the serializable summary of a clustering run.
type Report struct {
	Clustered   bool              `json:"clustered"`
	Properties  map[string]string `json:"properties"`
	Sizes       []int             `json:"sizes"`
	Means       [][]float64       `json:"means"`
	Assignments []int             `json:"assignments"`
}

// Report summarizes the current state. Before clustering only Properties is set.
func (e *Engine) Report() Report {
	r := Report{
		Clustered:  e.clustered,
		Properties: e.Properties(),
	}
	if !e.clustered {
		return r
	}
	r.Sizes = make([]int, len(e.clusters))
	r.Means = make([][]float64, len(e.clusters))
	for i, c := range e.clusters {
		r.Sizes[i] = c.Len()
		r.Means[i] = c.Mean().Raw()
	}
	r.Assignments = e.Assignments()
	return r
}
