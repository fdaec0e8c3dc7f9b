// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package lapack

import "github.com/ajroetker/go-tlapack/tlap"

// SingularValues22 computes the singular values of the 2x2 triangular
// matrix
//
//	[ f  g ]
//	[ 0  h ]
//
// returning ssmin <= ssmax. The values are accurate to a few ulps except
// on the edge of overflow or underflow, in the style of LAPACK's dlas2.
func SingularValues22[T tlap.Floats](f, g, h T) (ssmin, ssmax T) {
	fa := tlap.Abs(f)
	ga := tlap.Abs(g)
	ha := tlap.Abs(h)
	fhmn, fhmx := fa, ha
	if fhmn > fhmx {
		fhmn, fhmx = fhmx, fhmn
	}
	if fhmn == 0 {
		if fhmx == 0 {
			return 0, ga
		}
		mn, mx := fhmx, ga
		if mn > mx {
			mn, mx = mx, mn
		}
		r := mn / mx
		return 0, mx * tlap.Sqrt(1+r*r)
	}
	if ga < fhmx {
		as := 1 + fhmn/fhmx
		at := (fhmx - fhmn) / fhmx
		au := ga / fhmx
		au *= au
		c := 2 / (tlap.Sqrt(as*as+au) + tlap.Sqrt(at*at+au))
		return fhmn * c, fhmx / c
	}
	au := fhmx / ga
	if au == 0 {
		// fhmx and ga are so far apart that fhmn*fhmx/ga cannot
		// underflow to a wrong answer.
		return fhmn * fhmx / ga, ga
	}
	as := 1 + fhmn/fhmx
	at := (fhmx - fhmn) / fhmx
	c := 1 / (tlap.Sqrt(1+(as*au)*(as*au)) + tlap.Sqrt(1+(at*au)*(at*au)))
	ssmin = fhmn * c * au
	ssmin += ssmin
	ssmax = ga / (c + c)
	return ssmin, ssmax
}
