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

// Floats is a constraint for real floating-point element types.
type Floats interface {
	~float32 | ~float64
}

// Complexes is a constraint for complex element types.
type Complexes interface {
	~complex64 | ~complex128
}

// Scalar is a constraint for all element types supported by the matrix
// capability and the level-1/level-2 kernels.
type Scalar interface {
	Floats | Complexes
}

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Matrix is the read capability over a two-dimensional array of T.
//
// Views returned by Row, Col, Rows, Cols and Slice satisfy Matrix
// recursively and alias the receiver's elements.
type Matrix[T Scalar] interface {
	// NRows returns the number of rows.
	NRows() int
	// NCols returns the number of columns.
	NCols() int
	// Size returns NRows()*NCols().
	Size() int

	// At returns the element at row i, column j.
	At(i, j int) T
	// VecAt returns element i of a vector-shaped matrix (a matrix with
	// a single row or a single column). Panics if the matrix is not
	// vector-shaped.
	VecAt(i int) T

	// Row returns the 1-by-NCols() view of row i.
	Row(i int) Matrix[T]
	// Col returns the NRows()-by-1 view of column j.
	Col(j int) Matrix[T]
	// Rows returns the view of the row range r spanning all columns.
	Rows(r Range) Matrix[T]
	// Cols returns the view of the column range c spanning all rows.
	Cols(c Range) Matrix[T]
	// Slice returns the view covering the given row and column ranges.
	Slice(rows, cols Range) Matrix[T]
}

// MutMatrix is the write capability. It embeds the read capability and
// adds element writes plus mutable views.
type MutMatrix[T Scalar] interface {
	Matrix[T]

	// Set stores v at row i, column j.
	Set(i, j int, v T)
	// VecSet stores v at element i of a vector-shaped matrix. Panics if
	// the matrix is not vector-shaped.
	VecSet(i int, v T)

	// RowMut, ColMut, RowsMut, ColsMut and SliceMut are the mutable
	// counterparts of the read-capability views.
	RowMut(i int) MutMatrix[T]
	ColMut(j int) MutMatrix[T]
	RowsMut(r Range) MutMatrix[T]
	ColsMut(c Range) MutMatrix[T]
	SliceMut(rows, cols Range) MutMatrix[T]
}
