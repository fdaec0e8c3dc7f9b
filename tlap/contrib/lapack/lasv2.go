// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package lapack

import "github.com/ajroetker/go-tlapack/tlap"

// Svd22 computes the full singular value decomposition of the 2x2
// triangular matrix
//
//	[ f  g ]    [ csl  snl ] [ ssmax   0   ] [ csr  snr ]^T
//	[ 0  h ]  = [-snl  csl ] [   0   ssmin ] [-snr  csr ]
//
// with |ssmin| <= |ssmax|, in the style of LAPACK's dlasv2. The signs of
// the singular values may be negative; callers wanting nonnegative values
// should negate the corresponding singular vector.
func Svd22[T tlap.Floats](f, g, h T) (ssmin, ssmax, csl, snl, csr, snr T) {
	var clt, slt, crt, srt T

	ft, ht, gt := f, h, g
	fa, ha, ga := tlap.Abs(f), tlap.Abs(h), tlap.Abs(g)

	// pmax points to the entry of largest magnitude: 1 for f, 2 for g,
	// 3 for h. It drives the sign correction at the end.
	pmax := 1
	swapped := ha > fa
	if swapped {
		pmax = 3
		ft, ht = ht, ft
		fa, ha = ha, fa
	}

	switch {
	case ga == 0:
		// Already diagonal.
		ssmin, ssmax = ha, fa
		clt, crt = 1, 1
	case ga > fa && fa/ga < tlap.Ulp[T]():
		// Very large ga, the matrix is numerically a multiple of
		// [0 1; 0 0].
		pmax = 2
		ssmax = ga
		if ha > 1 {
			ssmin = fa / (ga / ha)
		} else {
			ssmin = (fa / ga) * ha
		}
		clt, slt = 1, ht/gt
		srt, crt = 1, ft/gt
	default:
		if ga > fa {
			pmax = 2
		}
		d := fa - ha
		var l T
		if d == fa {
			// ha underflowed relative to fa.
			l = 1
		} else {
			l = d / fa
		}
		m := gt / ft
		t := 2 - l
		mm := m * m
		tt := t * t
		s := tlap.Sqrt(tt + mm)
		var r T
		if l == 0 {
			r = tlap.Abs(m)
		} else {
			r = tlap.Sqrt(l*l + mm)
		}
		a := (s + r) / 2
		ssmin = ha / a
		ssmax = fa * a
		if mm == 0 {
			// m underflowed; compute t as in the exact case.
			if l == 0 {
				t = tlap.Copysign(2, ft) * tlap.Sign(gt)
			} else {
				t = gt/tlap.Copysign(d, ft) + m/t
			}
		} else {
			t = (m/(s+t) + m/(r+l)) * (1 + a)
		}
		l = tlap.Sqrt(t*t + 4)
		crt = 2 / l
		srt = t / l
		clt = (crt + srt*m) / a
		slt = (ht / ft) * srt / a
	}

	if swapped {
		csl, snl = srt, crt
		csr, snr = slt, clt
	} else {
		csl, snl = clt, slt
		csr, snr = crt, srt
	}

	var tsign T
	switch pmax {
	case 1:
		tsign = tlap.Sign(csr) * tlap.Sign(csl) * tlap.Sign(f)
	case 2:
		tsign = tlap.Sign(snr) * tlap.Sign(csl) * tlap.Sign(g)
	case 3:
		tsign = tlap.Sign(snr) * tlap.Sign(snl) * tlap.Sign(h)
	}
	ssmax = tlap.Copysign(ssmax, tsign)
	ssmin = tlap.Copysign(ssmin, tsign*tlap.Sign(f)*tlap.Sign(h))
	return ssmin, ssmax, csl, snl, csr, snr
}
