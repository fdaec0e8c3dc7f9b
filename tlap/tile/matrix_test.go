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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tlapack/tlap"
	"github.com/ajroetker/go-tlapack/tlap/sched"
)

// newTestMatrix registers a rows-by-cols matrix over fresh storage and
// returns it with its backing buffer.
func newTestMatrix(t *testing.T, rt *sched.Runtime, rows, cols int) (*Matrix[float64], []float64) {
	t.Helper()
	buf := make([]float64, rows*cols)
	A := Register(rt, buf, rows, cols, cols)
	return A, buf
}

func TestRegisterShape(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 3, 5)
	defer A.Unregister()

	assert.Equal(t, 3, A.NRows())
	assert.Equal(t, 5, A.NCols())
	assert.Equal(t, 15, A.Size())
	assert.Equal(t, 3, A.NBlockRows())
	assert.Equal(t, 5, A.NBlockCols())
	assert.False(t, A.IsPartitioned())
	assert.True(t, A.Mutable())
}

func TestEvenGrid(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 6)
	defer A.Unregister()

	A.CreateGrid(2, 3)
	defer A.Unpartition()

	assert.True(t, A.IsPartitioned())
	assert.Equal(t, 2, A.GridRows())
	assert.Equal(t, 3, A.GridCols())
	assert.Equal(t, 2, A.NBlockRows())
	assert.Equal(t, 2, A.NBlockCols())
	assert.Equal(t, 4, A.NRows())
	assert.Equal(t, 6, A.NCols())
}

func TestRaggedGrid(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	// 5 rows over 2 tile rows: tiles of height 3 and a trailing tile of
	// height 2.
	A, _ := newTestMatrix(t, rt, 5, 4)
	defer A.Unregister()

	A.CreateGrid(2, 2)
	defer A.Unpartition()

	assert.Equal(t, 3, A.NBlockRows())
	assert.Equal(t, 2, A.NBlockCols())
	assert.Equal(t, 5, A.NRows())
	assert.Equal(t, 4, A.NCols())

	top := A.Tiles(0, 0, 1, 2)
	bottom := A.Tiles(1, 0, 1, 2)
	assert.Equal(t, 3, top.NRows())
	assert.Equal(t, 2, bottom.NRows())
	assert.Equal(t, 4, top.NCols())
	assert.Equal(t, 4, bottom.NCols())
}

func TestEmptyTrailingTilePanics(t *testing.T) {
	rt := sched.New(sched.WithWorkers(1))
	defer rt.Shutdown()

	// 4 rows over 3 tile rows would give tiles of 2, 2 and 0 rows.
	A, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()

	assert.Panics(t, func() { A.CreateGrid(3, 1) })
}

func TestSetAtRoundTrip(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)
	defer A.Unpartition()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			A.Set(i, j, float64(10*i+j))
		}
	}
	// At is synchronous, no explicit Wait needed.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, float64(10*i+j), A.At(i, j))
		}
	}
}

func TestAtOnUnpartitionedMatrix(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 2, 3)
	defer A.Unregister()

	A.Set(1, 2, 6.5)
	assert.Equal(t, 6.5, A.At(1, 2))
}

func TestEntryArithmetic(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)
	defer A.Unpartition()

	// Queue a chain of updates against one element; the runtime must
	// apply them in submission order.
	A.Entry(1, 2).Assign(1)
	A.Entry(1, 2).Add(2)
	assert.Equal(t, 3.0, A.At(1, 2))

	A.Entry(1, 2).Sub(5)
	A.Entry(1, 2).Mul(-4)
	A.Entry(1, 2).Div(2)
	assert.Equal(t, 4.0, A.At(1, 2))
}

func TestEntryToEntry(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 4)
	B, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	defer B.Unregister()
	A.CreateGrid(2, 2)
	B.CreateGrid(2, 2)
	defer A.Unpartition()
	defer B.Unpartition()

	A.Set(0, 0, 10)
	B.Set(3, 3, 4)

	// Element-to-element update across matrices.
	B.Entry(3, 3).AddEntry(A.Entry(0, 0))
	assert.Equal(t, 14.0, B.At(3, 3))
	assert.Equal(t, 10.0, A.At(0, 0))
}

func TestEntryValueAndClose(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 2, 2)
	defer A.Unregister()

	A.Set(0, 1, 8)
	e := A.Entry(0, 1)
	assert.Equal(t, 8.0, e.Value())
	assert.Equal(t, 8.0, e.Value(), "Value must not consume the entry")
	e.Close()
	e.Close() // idempotent
	assert.Panics(t, func() { e.Value() })
}

func TestEntrySingleUse(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 2, 2)
	defer A.Unregister()

	e := A.Entry(0, 0)
	e.Assign(1)
	assert.Panics(t, func() { e.Add(1) })
	A.Wait()
}

func TestReadOnlyViewRejectsWrites(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)
	defer A.Unpartition()

	A.Set(2, 2, 5)
	R := A.ConstTiles(1, 1, 1, 1)
	assert.False(t, R.Mutable())
	assert.Equal(t, 5.0, R.At(0, 0))
	assert.Panics(t, func() { R.Entry(0, 0) })
	assert.Panics(t, func() { R.Tiles(0, 0, 1, 1) })
	assert.Panics(t, func() { R.SliceMut(tlap.Range{End: 1}, tlap.Range{End: 1}) })
}

func TestTilesCompose(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 6, 6)
	defer A.Unregister()
	A.CreateGrid(3, 3)
	defer A.Unpartition()

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			A.Set(i, j, float64(10*i+j))
		}
	}

	// Sub-tiling a sub-view addresses the same tiles as tiling the root
	// with combined offsets.
	outer := A.Tiles(1, 1, 2, 2)
	inner := outer.Tiles(1, 1, 1, 1)
	direct := A.Tiles(2, 2, 1, 1)

	require.Equal(t, direct.NRows(), inner.NRows())
	require.Equal(t, direct.NCols(), inner.NCols())
	for i := 0; i < inner.NRows(); i++ {
		for j := 0; j < inner.NCols(); j++ {
			assert.Equal(t, direct.At(i, j), inner.At(i, j))
		}
	}

	// Writes through the nested view land in the root matrix.
	inner.Set(0, 0, -1)
	assert.Equal(t, -1.0, A.At(4, 4))
}

func TestSliceAlignment(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 6, 6)
	defer A.Unregister()
	A.CreateGrid(3, 3)
	defer A.Unpartition()

	// Aligned ranges are fine.
	S := A.Slice(tlap.Range{Start: 2, End: 6}, tlap.Range{Start: 0, End: 2})
	assert.Equal(t, 4, S.NRows())
	assert.Equal(t, 2, S.NCols())

	tests := []struct {
		name       string
		rows, cols tlap.Range
	}{
		{"row start off grid", tlap.Range{Start: 1, End: 4}, tlap.Range{Start: 0, End: 2}},
		{"row end off grid", tlap.Range{Start: 0, End: 3}, tlap.Range{Start: 0, End: 2}},
		{"col start off grid", tlap.Range{Start: 0, End: 2}, tlap.Range{Start: 3, End: 6}},
		{"col end off grid", tlap.Range{Start: 0, End: 2}, tlap.Range{Start: 0, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { A.Slice(tt.rows, tt.cols) })
		})
	}
}

func TestSliceTrailingEdge(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	// 5 rows over 2 tile rows: tile heights 3 and 2. A range ending at
	// the true edge admits the partial trailing tile; 3..5 is aligned
	// even though 5 is not a multiple of 3.
	A, _ := newTestMatrix(t, rt, 5, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)
	defer A.Unpartition()

	S := A.Slice(tlap.Range{Start: 3, End: 5}, tlap.Range{Start: 0, End: 4})
	assert.Equal(t, 2, S.NRows())
	assert.Equal(t, 4, S.NCols())

	// 3..4 stops inside the trailing tile and is rejected.
	assert.Panics(t, func() {
		A.Slice(tlap.Range{Start: 3, End: 4}, tlap.Range{Start: 0, End: 4})
	})
}

func TestRowColViews(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	// Block size 1 so every row and column starts a tile band.
	A, _ := newTestMatrix(t, rt, 3, 3)
	defer A.Unregister()
	A.CreateGrid(3, 3)
	defer A.Unpartition()

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A.Set(i, j, float64(i*3+j))
		}
	}

	r := A.Row(1)
	require.Equal(t, 1, r.NRows())
	require.Equal(t, 3, r.NCols())
	for j := 0; j < 3; j++ {
		assert.Equal(t, A.At(1, j), r.VecAt(j))
	}

	c := A.ColMut(2)
	c.VecSet(0, 42)
	assert.Equal(t, 42.0, A.At(0, 2))
}

func TestDisjointWritesConcurrently(t *testing.T) {
	rt := sched.New(sched.WithWorkers(8))
	defer rt.Shutdown()

	const n = 8
	A, _ := newTestMatrix(t, rt, n, n)
	defer A.Unregister()
	A.CreateGrid(4, 4)
	defer A.Unpartition()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, 1)
			A.Entry(i, j).Add(float64(i*n + j))
		}
	}
	A.Wait()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, float64(i*n+j+1), A.At(i, j))
		}
	}
}

func TestVecAtVecSet(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	buf := make([]float64, 4)
	v := Register(rt, buf, 4, 1, 1)
	defer v.Unregister()

	for i := 0; i < 4; i++ {
		v.VecSet(i, float64(i))
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(i), v.VecAt(i))
	}

	A, _ := newTestMatrix(t, rt, 2, 2)
	defer A.Unregister()
	assert.Panics(t, func() { A.VecAt(0) })
}

func TestUnpartitionWithOpenEntryPanics(t *testing.T) {
	rt := sched.New(sched.WithWorkers(2))
	defer rt.Shutdown()

	A, _ := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)

	e := A.Entry(0, 0)
	assert.Panics(t, func() { A.Unpartition() })
	e.Close()
	A.Unpartition()
}

func TestStorageVisibleAfterWait(t *testing.T) {
	rt := sched.New(sched.WithWorkers(4))
	defer rt.Shutdown()

	A, buf := newTestMatrix(t, rt, 4, 4)
	defer A.Unregister()
	A.CreateGrid(2, 2)
	defer A.Unpartition()

	A.Set(3, 1, 2.5)
	A.Wait()
	assert.Equal(t, 2.5, buf[3*4+1])
}
