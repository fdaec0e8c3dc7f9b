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

// Package tlap defines the matrix capability consumed by the numeric
// kernels in this module, together with the element-type constraints and
// a plain in-memory Dense implementation.
//
// The capability is split in two interfaces: Matrix is the read side
// (extents, element access, row/column/rectangular views) and MutMatrix
// adds element writes and mutable views. Which side a caller holds is
// decided at construction time, not by runtime downcasts. Every view
// returned by a capability method satisfies the same capability, so an
// algorithm written once against these interfaces runs unmodified over
// Dense and over the asynchronous tiled implementation in tile.
//
// Basic usage:
//
//	a := tlap.NewDense[float64](4, 4)
//	a.Set(0, 0, 3.0)
//	b := a.SliceMut(tlap.Range{0, 2}, tlap.Range{0, 2})
//	_ = b.At(0, 0) // 3.0
package tlap
