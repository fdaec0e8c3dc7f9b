// Copyright 2026 go-tlapack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tlap

import (
	"fmt"
	"strings"
)

// Dense is a plain row-major in-memory matrix. It implements both the
// read and the write capability; views returned by the slicing methods
// alias the receiver's backing storage.
type Dense[T Scalar] struct {
	data   []T
	rows   int
	cols   int
	stride int // distance in elements between vertically adjacent elements
}

// NewDense creates a zero-initialized rows-by-cols matrix.
// Panics if rows or cols is negative.
func NewDense[T Scalar](rows, cols int) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic("tlap: negative matrix dimension")
	}
	return &Dense[T]{
		data:   make([]T, rows*cols),
		rows:   rows,
		cols:   cols,
		stride: cols,
	}
}

// WrapDense creates a rows-by-cols matrix over caller-owned memory with
// leading dimension ld. The matrix aliases buf; the caller keeps
// ownership of the slice.
func WrapDense[T Scalar](buf []T, rows, cols, ld int) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic("tlap: negative matrix dimension")
	}
	if ld < cols {
		panic("tlap: leading dimension smaller than column count")
	}
	if rows > 0 && len(buf) < (rows-1)*ld+cols {
		panic("tlap: buffer too short for matrix extents")
	}
	return &Dense[T]{data: buf, rows: rows, cols: cols, stride: ld}
}

// NRows returns the number of rows.
func (m *Dense[T]) NRows() int { return m.rows }

// NCols returns the number of columns.
func (m *Dense[T]) NCols() int { return m.cols }

// Size returns the total number of elements.
func (m *Dense[T]) Size() int { return m.rows * m.cols }

func (m *Dense[T]) index(i, j int) int {
	if i < 0 || i >= m.rows {
		panic("tlap: row index out of bounds")
	}
	if j < 0 || j >= m.cols {
		panic("tlap: column index out of bounds")
	}
	return i*m.stride + j
}

// At returns the element at row i, column j.
func (m *Dense[T]) At(i, j int) T {
	return m.data[m.index(i, j)]
}

// Set stores v at row i, column j.
func (m *Dense[T]) Set(i, j int, v T) {
	m.data[m.index(i, j)] = v
}

// VecAt returns element i of a vector-shaped matrix.
func (m *Dense[T]) VecAt(i int) T {
	if m.rows > 1 && m.cols > 1 {
		panic("tlap: matrix is not a vector")
	}
	if m.rows > 1 {
		return m.At(i, 0)
	}
	return m.At(0, i)
}

// VecSet stores v at element i of a vector-shaped matrix.
func (m *Dense[T]) VecSet(i int, v T) {
	if m.rows > 1 && m.cols > 1 {
		panic("tlap: matrix is not a vector")
	}
	if m.rows > 1 {
		m.Set(i, 0, v)
		return
	}
	m.Set(0, i, v)
}

func (m *Dense[T]) slice(rows, cols Range) *Dense[T] {
	if rows.Start < 0 || rows.Start > rows.End || rows.End > m.rows {
		panic("tlap: row range out of bounds")
	}
	if cols.Start < 0 || cols.Start > cols.End || cols.End > m.cols {
		panic("tlap: column range out of bounds")
	}
	if rows.Len() == 0 || cols.Len() == 0 {
		return &Dense[T]{rows: rows.Len(), cols: cols.Len(), stride: m.stride}
	}
	return &Dense[T]{
		data:   m.data[rows.Start*m.stride+cols.Start:],
		rows:   rows.Len(),
		cols:   cols.Len(),
		stride: m.stride,
	}
}

// Slice returns the read view covering the given row and column ranges.
func (m *Dense[T]) Slice(rows, cols Range) Matrix[T] { return m.slice(rows, cols) }

// SliceMut returns the mutable view covering the given ranges.
func (m *Dense[T]) SliceMut(rows, cols Range) MutMatrix[T] { return m.slice(rows, cols) }

// Row returns the 1-by-NCols view of row i.
func (m *Dense[T]) Row(i int) Matrix[T] { return m.slice(Range{i, i + 1}, Range{0, m.cols}) }

// Col returns the NRows-by-1 view of column j.
func (m *Dense[T]) Col(j int) Matrix[T] { return m.slice(Range{0, m.rows}, Range{j, j + 1}) }

// Rows returns the view of the row range r spanning all columns.
func (m *Dense[T]) Rows(r Range) Matrix[T] { return m.slice(r, Range{0, m.cols}) }

// Cols returns the view of the column range c spanning all rows.
func (m *Dense[T]) Cols(c Range) Matrix[T] { return m.slice(Range{0, m.rows}, c) }

// RowMut returns the mutable view of row i.
func (m *Dense[T]) RowMut(i int) MutMatrix[T] { return m.slice(Range{i, i + 1}, Range{0, m.cols}) }

// ColMut returns the mutable view of column j.
func (m *Dense[T]) ColMut(j int) MutMatrix[T] { return m.slice(Range{0, m.rows}, Range{j, j + 1}) }

// RowsMut returns the mutable view of the row range r.
func (m *Dense[T]) RowsMut(r Range) MutMatrix[T] { return m.slice(r, Range{0, m.cols}) }

// ColsMut returns the mutable view of the column range c.
func (m *Dense[T]) ColsMut(c Range) MutMatrix[T] { return m.slice(Range{0, m.rows}, c) }

// String renders small matrices for debugging.
func (m *Dense[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dense(%d x %d)", m.rows, m.cols)
	if m.cols > 10 {
		return b.String()
	}
	for i := 0; i < m.rows; i++ {
		b.WriteByte('\n')
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&b, " %v", m.At(i, j))
		}
	}
	return b.String()
}

var (
	_ Matrix[float64]       = (*Dense[float64])(nil)
	_ MutMatrix[float64]    = (*Dense[float64])(nil)
	_ MutMatrix[complex128] = (*Dense[complex128])(nil)
)
