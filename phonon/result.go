// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phonon

import "gonum.org/v1/gonum/spatial/r3"

// Result holds the frequencies and polarization vectors produced by
// Evaluate, indexed by q-point in the order the q-points were given.
type Result struct {
	QPoints []r3.Vec

	// Frequencies[q][branch] is the signed root sign(lambda) *
	// sqrt(|lambda|) of the branch-th eigenvalue at q-point q,
	// sorted ascending by eigenvalue within each row. Negative values
	// mark imaginary modes.
	Frequencies [][]float64

	// Eigenvectors[q][branch][atom] is the 3-component complex
	// displacement of atom for the given branch at q-point q.
	// Eigenvectors are unit-normalized per mode; the gauge is
	// solver-defined.
	Eigenvectors [][][][3]complex128
}

// NBranches returns 3*n_ions, the number of phonon branches per
// q-point.
func (r *Result) NBranches() int {
	if len(r.Frequencies) == 0 {
		return 0
	}
	return len(r.Frequencies[0])
}
