// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

// Package blas provides scalar BLAS kernels over the tlap matrix
// capability: plane rotations (Rot, Lartg), level-1 vector operations
// (Scal, Swap, Iamax) and symmetric/hermitian rank-2 updates (Syr2,
// Her2). Vector arguments are vector-shaped matrices (a single row or a
// single column), so rows and columns of any capability implementation
// can be passed directly.
//
// The kernels are sequential; when run over a tile.Matrix they inherit
// its access semantics (synchronous reads, asynchronous ordered writes)
// without further changes.
package blas
