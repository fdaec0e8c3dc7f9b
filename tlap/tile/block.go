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

import "github.com/ajroetker/go-tlapack/tlap"

// block is the payload registered with the runtime for a dense
// sub-matrix: a window into caller-owned row-major storage.
type block[T tlap.Scalar] struct {
	buf  []T
	off  int // flat index of element (0,0)
	rows int
	cols int
	ld   int // distance between vertically adjacent elements
}

func (b *block[T]) index(i, j int) int { return b.off + i*b.ld + j }

// chunk returns the nominal band size when n indices are split into
// nparts bands: every band takes chunk(n, nparts) indices except the
// trailing one, which takes the (possibly smaller) remainder.
func chunk(n, nparts int) int { return (n + nparts - 1) / nparts }

// rowBlockFilter derives row band i of nparts from a block payload.
func rowBlockFilter[T tlap.Scalar](parent any, i, nparts int) any {
	b := parent.(*block[T])
	bs := chunk(b.rows, nparts)
	r0 := i * bs
	return &block[T]{
		buf:  b.buf,
		off:  b.off + r0*b.ld,
		rows: min(bs, b.rows-r0),
		cols: b.cols,
		ld:   b.ld,
	}
}

// colBlockFilter derives column band i of nparts from a block payload.
func colBlockFilter[T tlap.Scalar](parent any, i, nparts int) any {
	b := parent.(*block[T])
	bs := chunk(b.cols, nparts)
	c0 := i * bs
	return &block[T]{
		buf:  b.buf,
		off:  b.off + c0,
		rows: b.rows,
		cols: min(bs, b.cols-c0),
		ld:   b.ld,
	}
}

// variable is the payload of a singleton element partition.
type variable[T tlap.Scalar] struct {
	buf []T
	off int
}

func (v *variable[T]) get() T  { return v.buf[v.off] }
func (v *variable[T]) set(x T) { v.buf[v.off] = x }

// pickVariableFilter builds the payload isolating element (i, j) of a
// leaf tile.
func pickVariableFilter[T tlap.Scalar](i, j int) func(parent any) any {
	return func(parent any) any {
		b := parent.(*block[T])
		return &variable[T]{buf: b.buf, off: b.index(i, j)}
	}
}
