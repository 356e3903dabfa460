// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hermitian

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// clusterRelTol groups the real embedding's doubled eigenvalues back
// into the complex eigenvalues they came from. Eigenvalues closer
// than this, relative to the largest absolute eigenvalue, are treated as one
// cluster.
const clusterRelTol = 1e-9

// deflateTol is the norm below which a candidate vector is treated as
// linearly dependent on the basis already extracted, during the
// complex Gram-Schmidt step.
const deflateTol = 1e-8

// Solver diagonalizes complex Hermitian matrices.
type Solver struct{}

// Solve factorizes the Hermitian matrix d (only the stored values are
// read; d need not be pre-symmetrized, though dynmat.Builder already
// symmetrizes by default). It returns n real eigenvalues in ascending
// order and an n x n matrix whose columns are the corresponding
// orthonormal complex eigenvectors.
//
// Solve reduces the n x n complex Hermitian eigenproblem to a 2n x 2n
// real symmetric one: writing d = A + iB with A symmetric and B
// antisymmetric, the real symmetric matrix
//
//	M = [ A  -B ]
//	    [ B   A ]
//
// has every eigenvalue of d with doubled multiplicity, and if (x, y)
// is a real eigenvector of M for eigenvalue lambda then so is
// (-y, x), with x+iy a complex eigenvector of d for the same lambda.
// Solve diagonalizes M with mat.EigenSym (lapack64.Syev) and recovers
// the complex eigenvectors of d from clusters of M's real eigenpairs
// by complex Gram-Schmidt.
func (Solver) Solve(d mat.CMatrix) (values []float64, vectors *mat.CDense, err error) {
	n, nc := d.Dims()
	if n != nc {
		panic("hermitian: matrix is not square")
	}

	// M = [[A, -B], [B, A]], with d = A + iB (A symmetric, B
	// antisymmetric). The top-left and bottom-right blocks are each
	// individually symmetric, so only their upper triangle needs
	// setting. The top-right block is not internally symmetric, but
	// SetSym(i, n+j, ...) for every (i, j) pair also plants the
	// mirrored bottom-left entry at (n+j, i), which is exactly the
	// value required there.
	m := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a := real(d.At(i, j))
			m.SetSym(i, j, a)
			m.SetSym(n+i, n+j, a)
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b := imag(d.At(i, j))
			m.SetSym(i, n+j, -b)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(m, true); !ok {
		return nil, nil, ErrDidNotConverge
	}
	w := eig.Values(nil)
	var v mat.Dense
	v.EigenvectorsSym(&eig)

	values = make([]float64, n)
	data := make([]complex128, n*n)
	scale := 0.0
	for _, lambda := range w {
		if math.Abs(lambda) > scale {
			scale = math.Abs(lambda)
		}
	}
	tol := clusterRelTol * scale
	if tol == 0 {
		tol = clusterRelTol
	}

	outCol := 0
	for i := 0; i < 2*n; {
		j := i + 1
		for j < 2*n && w[j]-w[i] <= tol {
			j++
		}
		clusterSize := j - i
		mult := clusterSize / 2

		zs := make([][]complex128, clusterSize)
		for idx := 0; idx < clusterSize; idx++ {
			col := i + idx
			z := make([]complex128, n)
			for r := 0; r < n; r++ {
				z[r] = complex(v.At(r, col), v.At(n+r, col))
			}
			zs[idx] = z
		}

		basis := make([][]complex128, 0, mult)
		for _, z := range zs {
			if len(basis) == mult {
				break
			}
			zc := append([]complex128(nil), z...)
			for _, b := range basis {
				var dot complex128
				for r := range zc {
					dot += cmplx.Conj(b[r]) * zc[r]
				}
				for r := range zc {
					zc[r] -= dot * b[r]
				}
			}
			norm := 0.0
			for _, c := range zc {
				norm += real(c)*real(c) + imag(c)*imag(c)
			}
			norm = math.Sqrt(norm)
			if norm < deflateTol {
				continue
			}
			inv := complex(1/norm, 0)
			for r := range zc {
				zc[r] *= inv
			}
			basis = append(basis, zc)
		}
		if len(basis) != mult {
			return nil, nil, ErrDidNotConverge
		}

		for k := 0; k < mult; k++ {
			values[outCol] = w[i]
			for r := 0; r < n; r++ {
				data[r*n+outCol] = basis[k][r]
			}
			outCol++
		}
		i = j
	}

	return values, mat.NewCDense(n, n, data), nil
}
