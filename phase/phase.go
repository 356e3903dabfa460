// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Precomputed holds the geometry-dependent part of the phase
// calculation: the integer lattice offset sc_matrix^T . offsets[k]
// for every enumerated image offset. It depends only on the geometry
// and the image table, not on q, so it is computed once per geometry
// and reused for every q-point.
type Precomputed struct {
	offsetBase  [][3]float64 // sc_matrix^T * offsets[k]
	cellOrigins [][3]int
	nCells      int
	nOffsets    int
}

// Precompute builds the geometry-dependent phase base for the given
// supercell matrix, enumerated offsets, and cell origins.
func Precompute(scMatrix [3][3]int, offsets [][3]int32, cellOrigins [][3]int) *Precomputed {
	base := make([][3]float64, len(offsets))
	for k, off := range offsets {
		for row := 0; row < 3; row++ {
			var v float64
			for col := 0; col < 3; col++ {
				// scMatrix^T[row][col] == scMatrix[col][row]
				v += float64(scMatrix[col][row]) * float64(off[col])
			}
			base[k][row] = v
		}
	}
	return &Precomputed{
		offsetBase:  base,
		cellOrigins: cellOrigins,
		nCells:      len(cellOrigins),
		nOffsets:    len(offsets),
	}
}

// Table is the per-q-point phase table, phase[c][k] = exp(2*pi*i *
// q.(sc_matrix^T.offsets[k] + cell_origins[c])).
type Table struct {
	nOffsets int
	data     []complex128 // flat, row c, column k
}

// At returns the phase for cell c and offset index k.
func (t *Table) At(c, k int) complex128 { return t.data[c*t.nOffsets+k] }

// Compute builds the phase table for q-point q (fractional
// reciprocal coordinates of the primitive cell). It is fully
// recomputed per q-point; no cross-q memoization is required since
// the per-offset cost is a single addition plus a cosine/sine pair.
func (p *Precomputed) Compute(q r3.Vec) *Table {
	data := make([]complex128, p.nCells*p.nOffsets)
	for c, origin := range p.cellOrigins {
		ox, oy, oz := float64(origin[0]), float64(origin[1]), float64(origin[2])
		for k, b := range p.offsetBase {
			rx, ry, rz := b[0]+ox, b[1]+oy, b[2]+oz
			angle := 2 * math.Pi * (q.X*rx + q.Y*ry + q.Z*rz)
			s, c2 := math.Sincos(angle)
			data[c*p.nOffsets+k] = complex(c2, s)
		}
	}
	return &Table{nOffsets: p.nOffsets, data: data}
}
