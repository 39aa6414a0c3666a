// Package matrix provides the dense, resizable float64 matrix used throughout
// kddgo.
//
// Matrix stores its elements row-major in a single slice. Index access never
// panics: At reports absent values with a false second return and Set reports
// out-of-range writes with false. Elementwise arithmetic (Add, Subtract,
// ScaleByUncertainty) checks shapes before touching any element, so a failed
// call leaves the receiver exactly as it was.
//
// A Matrix is not safe for concurrent mutation. Callers that share one across
// goroutines must serialize every mutating call.
package matrix
