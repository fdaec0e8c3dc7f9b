// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package blas

import "github.com/ajroetker/go-tlapack/tlap"

// checkRank2 validates the shared preconditions of Syr2 and Her2 and
// returns the matrix order.
func checkRank2[T tlap.Scalar](uplo Uplo, x, y tlap.Matrix[T], a tlap.Matrix[T]) int {
	if uplo != Upper && uplo != Lower {
		panic("blas: invalid triangle")
	}
	n := a.NRows()
	if a.NCols() != n {
		panic("blas: matrix is not square")
	}
	if vecLen[T](x) != n || vecLen[T](y) != n {
		panic("blas: vector length does not match matrix order")
	}
	return n
}

// Syr2 performs the symmetric rank-2 update
//
//	A = alpha*x*yᵀ + alpha*y*xᵀ + A
//
// touching only the triangle of A selected by uplo. Zero elements of x
// and y are not skipped, so NaNs in the operands propagate into A.
func Syr2[T tlap.Scalar](uplo Uplo, alpha T, x, y tlap.Matrix[T], a tlap.MutMatrix[T]) {
	n := checkRank2[T](uplo, x, y, a)
	if n == 0 || alpha == 0 {
		return
	}
	if uplo == Upper {
		for j := 0; j < n; j++ {
			tmp1 := alpha * y.VecAt(j)
			tmp2 := alpha * x.VecAt(j)
			for i := 0; i <= j; i++ {
				a.Set(i, j, a.At(i, j)+x.VecAt(i)*tmp1+y.VecAt(i)*tmp2)
			}
		}
		return
	}
	for j := 0; j < n; j++ {
		tmp1 := alpha * y.VecAt(j)
		tmp2 := alpha * x.VecAt(j)
		for i := j; i < n; i++ {
			a.Set(i, j, a.At(i, j)+x.VecAt(i)*tmp1+y.VecAt(i)*tmp2)
		}
	}
}

// Her2 performs the hermitian rank-2 update
//
//	A = alpha*x*yᴴ + conj(alpha)*y*xᴴ + A
//
// touching only the triangle of A selected by uplo. Imaginary parts of
// the diagonal are assumed zero on entry and forced to zero on exit.
func Her2[T tlap.Scalar](uplo Uplo, alpha T, x, y tlap.Matrix[T], a tlap.MutMatrix[T]) {
	n := checkRank2[T](uplo, x, y, a)
	if n == 0 || alpha == 0 {
		return
	}
	if uplo == Upper {
		for j := 0; j < n; j++ {
			tmp1 := alpha * tlap.Conj(y.VecAt(j))
			tmp2 := tlap.Conj(alpha * x.VecAt(j))
			for i := 0; i < j; i++ {
				a.Set(i, j, a.At(i, j)+x.VecAt(i)*tmp1+y.VecAt(i)*tmp2)
			}
			a.Set(j, j, tlap.Real(a.At(j, j))+tlap.Real(x.VecAt(j)*tmp1+y.VecAt(j)*tmp2))
		}
		return
	}
	for j := 0; j < n; j++ {
		tmp1 := alpha * tlap.Conj(y.VecAt(j))
		tmp2 := tlap.Conj(alpha * x.VecAt(j))
		a.Set(j, j, tlap.Real(a.At(j, j))+tlap.Real(x.VecAt(j)*tmp1+y.VecAt(j)*tmp2))
		for i := j + 1; i < n; i++ {
			a.Set(i, j, a.At(i, j)+x.VecAt(i)*tmp1+y.VecAt(i)*tmp2)
		}
	}
}
