package matrix

// AddRow appends a zero-filled row and returns the new row count.
func (m *Matrix) AddRow() int {
	m.data = append(m.data, make([]float64, m.cols)...)
	m.rows++
	return m.rows
}

// AddColumn appends a zero-filled column and returns the new column count.
func (m *Matrix) AddColumn() int {
	cols := m.cols + 1
	data := make([]float64, m.rows*cols)
	for i := 0; i < m.rows; i++ {
		copy(data[i*cols:i*cols+m.cols], m.data[i*m.cols:(i+1)*m.cols])
	}
	m.data = data
	m.cols = cols
	return m.cols
}

// DeleteRow removes the last row. It returns false when there are no rows.
func (m *Matrix) DeleteRow() bool {
	if m.rows == 0 {
		return false
	}
	m.rows--
	m.data = m.data[:m.rows*m.cols]
	return true
}

// DeleteColumn removes the last column. It returns false when there are no
// columns.
func (m *Matrix) DeleteColumn() bool {
	if m.cols == 0 {
		return false
	}
	cols := m.cols - 1
	data := make([]float64, m.rows*cols)
	for i := 0; i < m.rows; i++ {
		copy(data[i*cols:(i+1)*cols], m.data[i*m.cols:i*m.cols+cols])
	}
	m.data = data
	m.cols = cols
	return true
}
