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

// Package tile provides a dense matrix backed by the sched runtime,
// partitioned into a two-level grid of tiles. Element reads are
// synchronous; element writes are asynchronous tasks ordered by the
// runtime's per-handle dependency tracker, so writes to the same element
// serialize while writes to disjoint elements may run concurrently.
//
// A Matrix registered with Register owns its handle (the root view);
// CreateGrid partitions it once into nx-by-ny tiles. Slicing and tile
// addressing produce derived views that alias the root and must not
// outlive it. The Matrix satisfies the tlap capability interfaces, so
// kernels written against tlap.Matrix/tlap.MutMatrix run over tiled
// storage unchanged.
//
//	buf := make([]float64, 16)
//	a := tile.Register(rt, buf, 4, 4, 4)
//	a.CreateGrid(2, 2)
//	a.Set(0, 0, 1.0)      // asynchronous
//	a.Entry(0, 0).Add(2.0) // asynchronous
//	_ = a.At(0, 0)         // synchronous: waits for the two writes, reads 3.0
//	a.Unpartition()
//	a.Unregister()
//
// Slice bounds must lie on tile boundaries, except that a bound equal to
// the true matrix edge may cut a trailing partial tile. Misaligned
// bounds, regridding a partitioned matrix, and writes through read-only
// views are contract violations and panic.
package tile
