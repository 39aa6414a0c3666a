package matrix

import (
	"encoding/json"
	"fmt"
)

type wireMatrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// MarshalJSON encodes the matrix as {"rows":r,"cols":c,"data":[...]}.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	data := m.data
	if data == nil {
		data = []float64{}
	}
	return json.Marshal(wireMatrix{Rows: m.rows, Cols: m.cols, Data: data})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var w wireMatrix
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Rows < 0 || w.Cols < 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadShape, w.Rows, w.Cols)
	}
	if len(w.Data) != w.Rows*w.Cols {
		return &ShapeError{Rows: w.Rows, Cols: w.Cols, Elements: len(w.Data)}
	}
	m.rows, m.cols, m.data = w.Rows, w.Cols, w.Data
	return nil
}
