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

package tile

import (
	"fmt"
	"strings"

	"github.com/ajroetker/go-tlapack/tlap"
	"github.com/ajroetker/go-tlapack/tlap/sched"
)

// Matrix is a view over a runtime-registered dense matrix. The root view
// (from Register) owns the handle's registration; derived views (from
// Tiles, ConstTiles and the slicing methods) alias the same handle and
// are bounded by the root's lifetime. A view is either mutable or
// read-only, fixed at construction.
type Matrix[T tlap.Scalar] struct {
	rt      *sched.Runtime
	handle  *sched.Handle
	owner   bool
	mutable bool

	ix, iy int // first tile covered by the view, per axis
	nx, ny int // view extent in tiles, per axis
}

// Register wraps caller-owned row-major storage as a runtime matrix of
// rows-by-cols elements with leading dimension ld. The caller keeps
// ownership of buf; the returned root view owns the registration and
// must eventually call Unregister.
func Register[T tlap.Scalar](rt *sched.Runtime, buf []T, rows, cols, ld int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("tile: negative matrix dimension")
	}
	if ld < cols {
		panic("tile: leading dimension smaller than column count")
	}
	if rows > 0 && cols > 0 && len(buf) < (rows-1)*ld+cols {
		panic("tile: buffer too short for matrix extents")
	}
	h := rt.Register(&block[T]{buf: buf, rows: rows, cols: cols, ld: ld})
	return &Matrix[T]{rt: rt, handle: h, owner: true, mutable: true, nx: 1, ny: 1}
}

// Unregister releases the runtime bookkeeping for the root view. The
// matrix must be unpartitioned; Unpartition first if a grid was created.
// Derived views must not be used afterwards.
func (A *Matrix[T]) Unregister() {
	if !A.owner {
		panic("tile: unregister of a derived view")
	}
	A.rt.Unregister(A.handle)
}

// CreateGrid partitions the matrix into nx-by-ny tiles: rows are split
// into nx bands, then each band's columns into ny bands. Every tile is
// NBlockRows-by-NBlockCols except the trailing tile on each axis, which
// takes the (possibly smaller) remainder. Partitioning an already
// partitioned matrix is a contract violation, as is a grid whose
// trailing tile would be empty.
func (A *Matrix[T]) CreateGrid(nx, ny int) {
	if !A.owner {
		panic("tile: grid creation on a derived view")
	}
	if A.handle.IsPartitioned() {
		panic("tile: matrix already partitioned")
	}
	if nx <= 0 || ny <= 0 {
		panic("tile: number of tiles must be positive")
	}
	b := A.rootBlock()
	if (nx-1)*chunk(b.rows, nx) >= b.rows || (ny-1)*chunk(b.cols, ny) >= b.cols {
		panic("tile: grid leaves an empty trailing tile")
	}
	A.handle.MapBlocks(nx, ny, rowBlockFilter[T], colBlockFilter[T])
	A.nx, A.ny = nx, ny
}

// Unpartition collapses the tile grid, restoring the unpartitioned
// state. Every entry proxy must have been closed first.
func (A *Matrix[T]) Unpartition() {
	if !A.owner {
		panic("tile: unpartition of a derived view")
	}
	A.handle.Unpartition()
	A.nx, A.ny = 1, 1
}

// IsPartitioned reports whether a tile grid exists.
func (A *Matrix[T]) IsPartitioned() bool { return A.handle.IsPartitioned() }

// GridRows returns the number of tiles the view spans vertically.
func (A *Matrix[T]) GridRows() int { return A.nx }

// GridCols returns the number of tiles the view spans horizontally.
func (A *Matrix[T]) GridCols() int { return A.ny }

// Mutable reports whether the view carries the write capability.
func (A *Matrix[T]) Mutable() bool { return A.mutable }

// Wait blocks until every task submitted against the matrix's runtime
// has completed.
func (A *Matrix[T]) Wait() { A.rt.Wait() }

func (A *Matrix[T]) rootBlock() *block[T] { return A.handle.Data().(*block[T]) }

func blockOf[T tlap.Scalar](h *sched.Handle) *block[T] { return h.Data().(*block[T]) }

// NBlockRows returns the nominal tile height: the height of tile row 0,
// or the full matrix height when unpartitioned.
func (A *Matrix[T]) NBlockRows() int {
	h := A.handle
	if h.IsPartitioned() {
		h = h.Child(0)
	}
	return blockOf[T](h).rows
}

// NBlockCols returns the nominal tile width: the width of tile column 0,
// or the full matrix width when unpartitioned.
func (A *Matrix[T]) NBlockCols() int {
	h := A.handle
	if h.IsPartitioned() {
		h = h.Child(0)
		if h.IsPartitioned() {
			h = h.Child(0)
		}
	}
	return blockOf[T](h).cols
}

// NRows returns the number of rows the view covers. For views ending at
// the matrix's trailing edge this accounts for the smaller remainder
// tile; otherwise it is the tile count times the nominal tile height.
func (A *Matrix[T]) NRows() int {
	numX := A.handle.NumChildren()
	if numX <= 1 {
		return A.rootBlock().rows
	}
	nb := blockOf[T](A.handle.Child(0)).rows
	if A.ix+A.nx < numX {
		return A.nx * nb
	}
	return (A.nx-1)*nb + blockOf[T](A.handle.Child(numX-1)).rows
}

// NCols returns the number of columns the view covers, with the same
// trailing-edge rule as NRows.
func (A *Matrix[T]) NCols() int {
	if !A.handle.IsPartitioned() {
		return A.rootBlock().cols
	}
	x0 := A.handle.Child(0)
	numY := x0.NumChildren()
	if numY <= 1 {
		return blockOf[T](x0).cols
	}
	nb := blockOf[T](x0.Child(0)).cols
	if A.iy+A.ny < numY {
		return A.ny * nb
	}
	return (A.ny-1)*nb + blockOf[T](x0.Child(numY-1)).cols
}

// Size returns NRows()*NCols().
func (A *Matrix[T]) Size() int { return A.NRows() * A.NCols() }

// tiles builds a derived view of nx-by-ny tiles starting at tile
// (ix, iy) of this view. Offsets compose, so sub-tiling a sub-view is
// the same as addressing the combined offsets directly.
func (A *Matrix[T]) tiles(ix, iy, nx, ny int, mutable bool) *Matrix[T] {
	if !A.handle.IsPartitioned() {
		panic("tile: matrix is not partitioned")
	}
	if nx < 0 || ny < 0 {
		panic("tile: number of tiles must be positive or zero")
	}
	if ix < 0 || ix+nx > A.nx || iy < 0 || iy+ny > A.ny {
		panic("tile: sub-view out of bounds")
	}
	return &Matrix[T]{
		rt:      A.rt,
		handle:  A.handle,
		mutable: mutable,
		ix:      A.ix + ix,
		iy:      A.iy + iy,
		nx:      nx,
		ny:      ny,
	}
}

// Tiles returns the mutable derived view covering nx-by-ny tiles
// starting at tile (ix, iy) of this view.
func (A *Matrix[T]) Tiles(ix, iy, nx, ny int) *Matrix[T] {
	if !A.mutable {
		panic("tile: mutable sub-view of a read-only view")
	}
	return A.tiles(ix, iy, nx, ny, true)
}

// ConstTiles returns the read-only derived view covering nx-by-ny tiles
// starting at tile (ix, iy) of this view.
func (A *Matrix[T]) ConstTiles(ix, iy, nx, ny int) *Matrix[T] {
	return A.tiles(ix, iy, nx, ny, false)
}

// tileHandle resolves element (i, j) of the view to the leaf handle
// holding it and the element's position within that leaf.
func (A *Matrix[T]) tileHandle(i, j int) (*sched.Handle, int, int) {
	if i < 0 || i >= A.NRows() {
		panic("tile: row index out of bounds")
	}
	if j < 0 || j >= A.NCols() {
		panic("tile: column index out of bounds")
	}
	if !A.handle.IsPartitioned() {
		return A.handle, i, j
	}
	mb := A.NBlockRows()
	nb := A.NBlockCols()
	return A.handle.Sub(A.ix+i/mb, A.iy+j/nb), i % mb, j % nb
}

// At reads element (i, j) synchronously. The read isolates the element
// in a singleton partition, acquires it for reading (waiting out any
// queued writers on the same element), copies the value and releases
// the partition.
func (A *Matrix[T]) At(i, j int) T {
	th, pi, pj := A.tileHandle(i, j)
	sub := th.PickVariable(pi, pj, pickVariableFilter[T](pi, pj))
	A.rt.Acquire(sub, sched.ModeR)
	v := sub.Data().(*variable[T]).get()
	A.rt.Release(sub)
	th.CleanPlan(sub)
	return v
}

// VecAt reads element i of a vector-shaped view.
func (A *Matrix[T]) VecAt(i int) T {
	if A.NRows() > 1 && A.NCols() > 1 {
		panic("tile: matrix is not a vector")
	}
	if A.NRows() > 1 {
		return A.At(i, 0)
	}
	return A.At(0, i)
}

// Set queues an asynchronous assignment of v to element (i, j) and
// returns immediately.
func (A *Matrix[T]) Set(i, j int, v T) {
	A.Entry(i, j).Assign(v)
}

// VecSet queues an asynchronous assignment to element i of a
// vector-shaped view.
func (A *Matrix[T]) VecSet(i int, v T) {
	if A.NRows() > 1 && A.NCols() > 1 {
		panic("tile: matrix is not a vector")
	}
	if A.NRows() > 1 {
		A.Set(i, 0, v)
		return
	}
	A.Set(0, i, v)
}

// sliceView converts half-open element ranges to a tile-range view.
// Range bounds must be multiples of the tile extent on their axis,
// except that an end bound equal to the matrix's true edge admits the
// trailing partial tile.
func (A *Matrix[T]) sliceView(rows, cols tlap.Range, mutable bool) *Matrix[T] {
	m, n := A.NRows(), A.NCols()
	if rows.Start < 0 || rows.Start > rows.End || rows.End > m {
		panic("tile: row range out of bounds")
	}
	if cols.Start < 0 || cols.Start > cols.End || cols.End > n {
		panic("tile: column range out of bounds")
	}
	mb := A.NBlockRows()
	nb := A.NBlockCols()
	if rows.Start%mb != 0 || (rows.End%mb != 0 && rows.End != m) {
		panic("tile: row range not aligned to the tile grid")
	}
	if cols.Start%nb != 0 || (cols.End%nb != 0 && cols.End != n) {
		panic("tile: column range not aligned to the tile grid")
	}
	ix := rows.Start / mb
	iy := cols.Start / nb
	nx := 0
	if rows.Len() > 0 {
		nx = (rows.End+mb-1)/mb - ix
	}
	ny := 0
	if cols.Len() > 0 {
		ny = (cols.End+nb-1)/nb - iy
	}
	return A.tiles(ix, iy, nx, ny, mutable)
}

// Slice returns the read view covering the given element ranges.
func (A *Matrix[T]) Slice(rows, cols tlap.Range) tlap.Matrix[T] {
	return A.sliceView(rows, cols, false)
}

// SliceMut returns the mutable view covering the given element ranges.
func (A *Matrix[T]) SliceMut(rows, cols tlap.Range) tlap.MutMatrix[T] {
	if !A.mutable {
		panic("tile: mutable slice of a read-only view")
	}
	return A.sliceView(rows, cols, true)
}

// Row returns the read view of element row i. The row must start a tile
// band: i has to be a multiple of NBlockRows.
func (A *Matrix[T]) Row(i int) tlap.Matrix[T] {
	return A.Slice(tlap.Range{Start: i, End: i + 1}, tlap.Range{Start: 0, End: A.NCols()})
}

// Col returns the read view of element column j. The column must start
// a tile band: j has to be a multiple of NBlockCols.
func (A *Matrix[T]) Col(j int) tlap.Matrix[T] {
	return A.Slice(tlap.Range{Start: 0, End: A.NRows()}, tlap.Range{Start: j, End: j + 1})
}

// Rows returns the read view of the row range r spanning all columns.
func (A *Matrix[T]) Rows(r tlap.Range) tlap.Matrix[T] {
	return A.Slice(r, tlap.Range{Start: 0, End: A.NCols()})
}

// Cols returns the read view of the column range c spanning all rows.
func (A *Matrix[T]) Cols(c tlap.Range) tlap.Matrix[T] {
	return A.Slice(tlap.Range{Start: 0, End: A.NRows()}, c)
}

// RowMut returns the mutable view of element row i.
func (A *Matrix[T]) RowMut(i int) tlap.MutMatrix[T] {
	return A.SliceMut(tlap.Range{Start: i, End: i + 1}, tlap.Range{Start: 0, End: A.NCols()})
}

// ColMut returns the mutable view of element column j.
func (A *Matrix[T]) ColMut(j int) tlap.MutMatrix[T] {
	return A.SliceMut(tlap.Range{Start: 0, End: A.NRows()}, tlap.Range{Start: j, End: j + 1})
}

// RowsMut returns the mutable view of the row range r.
func (A *Matrix[T]) RowsMut(r tlap.Range) tlap.MutMatrix[T] {
	return A.SliceMut(r, tlap.Range{Start: 0, End: A.NCols()})
}

// ColsMut returns the mutable view of the column range c.
func (A *Matrix[T]) ColsMut(c tlap.Range) tlap.MutMatrix[T] {
	return A.SliceMut(tlap.Range{Start: 0, End: A.NRows()}, c)
}

// String renders small matrices for debugging. It reads elements
// synchronously, so it quiesces outstanding writes to them.
func (A *Matrix[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tile.Matrix(%d x %d)", A.NRows(), A.NCols())
	if A.NCols() > 10 {
		return b.String()
	}
	for i := 0; i < A.NRows(); i++ {
		b.WriteByte('\n')
		for j := 0; j < A.NCols(); j++ {
			fmt.Fprintf(&b, " %v", A.At(i, j))
		}
	}
	return b.String()
}

var (
	_ tlap.Matrix[float64]    = (*Matrix[float64])(nil)
	_ tlap.MutMatrix[float64] = (*Matrix[float64])(nil)
)
