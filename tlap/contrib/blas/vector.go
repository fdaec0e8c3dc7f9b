// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package blas

import "github.com/ajroetker/go-tlapack/tlap"

// vecLen returns the element count of a vector-shaped matrix.
func vecLen[T tlap.Scalar](x tlap.Matrix[T]) int {
	if x.NRows() > 1 && x.NCols() > 1 {
		panic("blas: matrix is not a vector")
	}
	return x.Size()
}

// Scal scales the vector x by alpha.
func Scal[T tlap.Scalar](alpha T, x tlap.MutMatrix[T]) {
	n := vecLen[T](x)
	for i := 0; i < n; i++ {
		x.VecSet(i, alpha*x.VecAt(i))
	}
}

// Swap exchanges the elements of the vectors x and y.
func Swap[T tlap.Scalar](x, y tlap.MutMatrix[T]) {
	n := vecLen[T](x)
	if vecLen[T](y) != n {
		panic("blas: vector lengths differ")
	}
	for i := 0; i < n; i++ {
		xi, yi := x.VecAt(i), y.VecAt(i)
		x.VecSet(i, yi)
		y.VecSet(i, xi)
	}
}

// Iamax returns the index of the first element of x with the largest
// level-1 magnitude (|re|+|im| for complex types). Returns -1 for an
// empty vector.
func Iamax[T tlap.Scalar](x tlap.Matrix[T]) int {
	n := vecLen[T](x)
	if n == 0 {
		return -1
	}
	best := 0
	bestMag := tlap.Abs1(x.VecAt(0))
	for i := 1; i < n; i++ {
		if mag := tlap.Abs1(x.VecAt(i)); mag > bestMag {
			best, bestMag = i, mag
		}
	}
	return best
}
