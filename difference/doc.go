// Package difference compares a loaded partitioned dataset against a
// reference dataset of identical structure.
//
// An Analyzer computes the elementwise pin difference for every
// (group, layer) matrix pair and, when enabled, the derived axial profile
// (weighted layer sums per group) and radial map (weighted difference summed
// over the layers of a group).
//
//	a, err := difference.New(loaded, reference)
//	if err != nil { ... }
//	a.SetProperty(difference.PropDifferenceType, difference.Relative)
//	res, err := a.Execute(ctx)
//	if errors.Is(err, difference.ErrStructureMismatch) { ... }
//	fmt.Print(res.Report())
package difference
