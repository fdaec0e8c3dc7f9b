// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package blas

import "gonum.org/v1/gonum/blas"

// Uplo selects which triangle of a matrix an operation references.
// It aliases the gonum convention so the two ecosystems interoperate.
type Uplo = blas.Uplo

const (
	// Upper references the upper triangle.
	Upper = blas.Upper
	// Lower references the lower triangle.
	Lower = blas.Lower
)
