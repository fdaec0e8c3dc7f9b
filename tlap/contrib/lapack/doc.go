// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

// Package lapack provides higher-level factorization kernels built on the
// primitives in contrib/blas. The routines accept any tlap.Matrix
// implementation, so the same code runs over in-memory dense storage and
// over tiled matrices scheduled by the runtime.
//
// The centerpiece is SvdQR, an implicit zero-shift QR iteration computing
// the singular value decomposition of a bidiagonal matrix, in the style of
// Demmel and Kahan's "Accurate singular values of bidiagonal matrices".
package lapack
