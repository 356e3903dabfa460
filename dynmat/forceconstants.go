// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynmat

import "fmt"

// ForceConstants is the real force-constant tensor of shape
// (n_cells, 3*n_ions, 3*n_ions), C-contiguous, in hartree/bohr^2.
// Index (c, 3*i+alpha, 3*j+beta) is the alpha,beta Cartesian
// component of the force between atom i in the reference cell and
// atom j in cell c.
type ForceConstants struct {
	nCells int
	n      int // 3 * n_ions
	data   []float64
}

// NewForceConstants validates and wraps a flat, C-contiguous force
// constant tensor. data must have length nCells*n*n.
func NewForceConstants(nCells, n int, data []float64) (*ForceConstants, error) {
	want := nCells * n * n
	if len(data) != want {
		return nil, fmt.Errorf("dynmat: force constants has length %d, want %d (nCells=%d, n=%d)", len(data), want, nCells, n)
	}
	return &ForceConstants{nCells: nCells, n: n, data: data}, nil
}

// NCells returns the number of cells in the supercell.
func (fc *ForceConstants) NCells() int { return fc.nCells }

// N returns 3*n_ions, the size of each per-cell force-constant block.
func (fc *ForceConstants) N() int { return fc.n }

// At returns the (row, col) element of the force-constant matrix for
// cell c.
func (fc *ForceConstants) At(c, row, col int) float64 {
	return fc.data[(c*fc.n+row)*fc.n+col]
}
