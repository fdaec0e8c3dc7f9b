// Copyright 2026 The go-tlapack Authors. SPDX-License-Identifier: Apache-2.0

package lapack

import (
	"github.com/ajroetker/go-tlapack/tlap"
	"github.com/ajroetker/go-tlapack/tlap/contrib/blas"
)

// SvdQR computes the singular values and, optionally, the left and right
// singular vectors of an n-by-n bidiagonal matrix B using the implicit
// zero-shift QR algorithm of Demmel and Kahan. The SVD of B has the form
//
//	B = Q * S * Pᵀ
//
// where S is the diagonal matrix of singular values. If singular vectors
// are requested the routine accumulates the rotations into the given
// matrices, returning U*Q in place of u and Pᵀ*Vt in place of vt, so that
// combined with a bidiagonal reduction A = U*B*Vt the outputs form the
// SVD of A.
//
// On entry d holds the n diagonal elements of B and e its n-1
// off-diagonal elements; uplo says whether B is upper or lower
// bidiagonal. On successful return d holds the singular values in
// decreasing order. u must have n columns and vt must have n rows; either
// may be nil when the corresponding vectors are not wanted.
//
// SvdQR returns 0 on success. A nonzero return k means the iteration
// failed to converge and d[:k] has not been reduced to singular values.
func SvdQR[T tlap.Floats](uplo blas.Uplo, wantU, wantVt bool, d, e []T, u, vt tlap.MutMatrix[T]) int {
	if uplo != blas.Upper && uplo != blas.Lower {
		panic("lapack: illegal uplo")
	}
	n := len(d)
	if len(e) != max(n-1, 0) {
		panic("lapack: off-diagonal length mismatch")
	}
	if wantU && u.NCols() != n {
		panic("lapack: u has wrong number of columns")
	}
	if wantVt && vt.NRows() != n {
		panic("lapack: vt has wrong number of rows")
	}

	eps := tlap.Ulp[T]()
	tol := 10 * eps

	if n == 0 {
		return 0
	}

	// A lower bidiagonal matrix is rotated to upper bidiagonal first, so
	// the sweeps below only have to handle one shape.
	if uplo == blas.Lower {
		for i := 0; i < n-1; i++ {
			c, s, r := blas.Lartg(d[i], e[i])
			d[i] = r
			e[i] = s * d[i+1]
			d[i+1] = c * d[i+1]
			if wantU {
				blas.Rot(u.ColMut(i), u.ColMut(i+1), c, s)
			}
		}
	}

	itmax := 30 * n

	// istart and istop delimit the active block.
	istart := 0
	istop := n

	for iter := 0; ; iter++ {
		if iter == itmax {
			return istop
		}
		if istop <= 1 {
			break
		}

		// Deflate negligible off-diagonals to find the active block.
		for i := istop - 1; i > istart; i-- {
			if tlap.Abs(e[i-1]) <= tol*tlap.Abs(d[i]) {
				e[i-1] = 0
				istart = i
				break
			}
		}

		if istart == istop-1 {
			// A singular value has split off.
			istop--
			istart = 0
			continue
		}

		if istart+1 == istop-1 {
			// A 2x2 block has split off, solve it directly.
			sigmn, sigmx, csl, snl, csr, snr := Svd22(d[istart], e[istart], d[istart+1])
			d[istart] = sigmx
			d[istart+1] = sigmn
			e[istart] = 0
			if wantU {
				blas.Rot(u.ColMut(istart), u.ColMut(istart+1), csl, snl)
			}
			if wantVt {
				blas.Rot(vt.RowMut(istart), vt.RowMut(istart+1), csr, snr)
			}
			istop -= 2
			istart = 0
			continue
		}

		// Compute the shift from the trailing 2x2 block, then discard it
		// if shifting would ruin the relative accuracy of the small
		// singular values.
		sstart := tlap.Abs(d[istart])
		shift, _ := SingularValues22(d[istop-2], e[istop-2], d[istop-1])
		if sstart > 0 && (shift/sstart)*(shift/sstart) < eps {
			shift = 0
		}

		if shift == 0 {
			// Zero-shift QR sweep. Rotations are chained without ever
			// forming the intermediate bulge explicitly.
			cs, sn := T(1), T(0)
			oldcs, oldsn := T(1), T(0)
			for i := istart; i < istop-1; i++ {
				var r T
				cs, sn, r = blas.Lartg(d[i]*cs, e[i])
				if i > istart {
					e[i-1] = oldsn * r
				}
				oldcs, oldsn, d[i] = blas.Lartg(oldcs*r, d[i+1]*sn)
				if wantU {
					blas.Rot(u.ColMut(i), u.ColMut(i+1), oldcs, oldsn)
				}
				if wantVt {
					blas.Rot(vt.RowMut(i), vt.RowMut(i+1), cs, sn)
				}
			}
			h := d[istop-1] * cs
			d[istop-1] = h * oldcs
			e[istop-2] = h * oldsn
		} else {
			// Shifted QR sweep, chasing the bulge down the band.
			f := (tlap.Abs(d[istart]) - shift) * (tlap.Sign(d[istart]) + shift/d[istart])
			g := e[istart]
			for i := istart; i < istop-1; i++ {
				csr, snr, r := blas.Lartg(f, g)
				if i > istart {
					e[i-1] = r
				}
				f = csr*d[i] + snr*e[i]
				e[i] = csr*e[i] - snr*d[i]
				g = snr * d[i+1]
				d[i+1] = csr * d[i+1]

				var csl, snl T
				csl, snl, d[i] = blas.Lartg(f, g)
				f = csl*e[i] + snl*d[i+1]
				d[i+1] = csl*d[i+1] - snl*e[i]
				if i+1 < istop-1 {
					g = snl * e[i+1]
					e[i+1] = csl * e[i+1]
				}

				if wantU {
					blas.Rot(u.ColMut(i), u.ColMut(i+1), csl, snl)
				}
				if wantVt {
					blas.Rot(vt.RowMut(i), vt.RowMut(i+1), csr, snr)
				}
			}
			e[istop-2] = f
		}
	}

	// Make the converged singular values positive.
	for i := 0; i < n; i++ {
		if d[i] < 0 {
			d[i] = -d[i]
			if wantVt {
				blas.Scal(T(-1), vt.RowMut(i))
			}
		}
	}

	// Selection sort into decreasing order, moving the vectors along.
	for i := 0; i < n-1; i++ {
		imax := i + iamaxSlice(d[i:])
		if imax != i {
			d[imax], d[i] = d[i], d[imax]
			if wantU {
				blas.Swap(u.ColMut(imax), u.ColMut(i))
			}
			if wantVt {
				blas.Swap(vt.RowMut(imax), vt.RowMut(i))
			}
		}
	}

	return 0
}

func iamaxSlice[T tlap.Floats](d []T) int {
	imax := 0
	for i := 1; i < len(d); i++ {
		if tlap.Abs(d[i]) > tlap.Abs(d[imax]) {
			imax = i
		}
	}
	return imax
}
