package matrix

// Add adds o to m elementwise. It returns false and leaves m untouched when
// the shapes differ.
func (m *Matrix) Add(o *Matrix) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range o.data {
		m.data[i] += v
	}
	return true
}

// Subtract subtracts o from m elementwise. It returns false and leaves m
// untouched when the shapes differ.
func (m *Matrix) Subtract(o *Matrix) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range o.data {
		m.data[i] -= v
	}
	return true
}

// ScaleByUncertainty divides every element of m by the matching element of
// u. Cells whose divisor is zero are left unchanged. It returns false and
// leaves m untouched when the shapes differ.
func (m *Matrix) ScaleByUncertainty(u *Matrix) bool {
	if !m.SameShape(u) {
		return false
	}
	for i, d := range u.data {
		if d == 0 {
			continue
		}
		m.data[i] /= d
	}
	return true
}

// MulElements multiplies m by o elementwise. It returns false and leaves m
// untouched when the shapes differ.
func (m *Matrix) MulElements(o *Matrix) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range o.data {
		m.data[i] *= v
	}
	return true
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Scale multiplies every element by f.
func (m *Matrix) Scale(f float64) {
	for i := range m.data {
		m.data[i] *= f
	}
}

// RowNormalize divides every element by the sum of its row. Rows summing to
// zero are left unchanged.
func (m *Matrix) RowNormalize() {
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for j := range row {
			row[j] /= sum
		}
	}
}

// ColumnNormalize divides every element by the sum of its column. Columns
// summing to zero are left unchanged.
func (m *Matrix) ColumnNormalize() {
	sums := make([]float64, m.cols)
	for i := 0; i < m.rows; i++ {
		for j, v := range m.data[i*m.cols : (i+1)*m.cols] {
			sums[j] += v
		}
	}
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, s := range sums {
			if s != 0 {
				row[j] /= s
			}
		}
	}
}

// Transpose swaps rows and columns in place.
func (m *Matrix) Transpose() {
	if m.rows > 1 && m.cols > 1 {
		t := make([]float64, len(m.data))
		for i := 0; i < m.rows; i++ {
			for j := 0; j < m.cols; j++ {
				t[j*m.rows+i] = m.data[i*m.cols+j]
			}
		}
		m.data = t
	}
	// Vectors keep their element order; only the shape flips.
	m.rows, m.cols = m.cols, m.rows
}
