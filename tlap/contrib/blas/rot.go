// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package blas

import "github.com/ajroetker/go-tlapack/tlap"

// Rot applies the plane rotation with cosine c and sine s to the vector
// pair (x, y):
//
//	x_i <- c*x_i + s*y_i
//	y_i <- c*y_i - s*x_i
func Rot[T tlap.Floats](x, y tlap.MutMatrix[T], c, s T) {
	n := vecLen[T](x)
	if vecLen[T](y) != n {
		panic("blas: vector lengths differ")
	}
	for i := 0; i < n; i++ {
		xi, yi := x.VecAt(i), y.VecAt(i)
		x.VecSet(i, c*xi+s*yi)
		y.VecSet(i, c*yi-s*xi)
	}
}

// Lartg generates a plane rotation zeroing the second component of the
// vector (f, g):
//
//	[  c  s ] [ f ]   [ r ]
//	[ -s  c ] [ g ] = [ 0 ]
//
// with c >= 0 and c*c + s*s = 1. The magnitude of r is hypot(f, g) and
// its sign follows f.
func Lartg[T tlap.Floats](f, g T) (c, s, r T) {
	switch {
	case g == 0:
		return 1, 0, f
	case f == 0:
		return 0, 1, g
	default:
		r = tlap.Copysign(tlap.Hypot(f, g), f)
		return f / r, g / r, r
	}
}
