// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import "gonum.org/v1/gonum/spatial/r3"

// Geometry holds the primitive cell, supercell matrix, cell origins,
// and ion positions/masses needed to Fourier-interpolate force
// constants. A Geometry is immutable once constructed by New.
//
// All lengths are in bohr, all masses in atomic mass units.
type Geometry struct {
	cellVectors [3]r3.Vec // rows are the primitive lattice vectors, Cartesian
	scMatrix    [3][3]int
	cellOrigins [][3]int // n_cells x 3
	ionFrac     []r3.Vec // n_ions, fractional coordinates in [0, 1)
	ionMass     []float64

	nCells int
}

// New validates and constructs a Geometry. It returns an error rather
// than panicking because the inputs originate outside this package
// (typically decoded from a force-constant file by the caller).
func New(cellVectors [3]r3.Vec, scMatrix [3][3]int, cellOrigins [][3]int, ionFrac []r3.Vec, ionMass []float64) (*Geometry, error) {
	det := det3(scMatrix)
	if det == 0 {
		return nil, ErrSingularSupercell
	}
	nCells := det
	if nCells < 0 {
		nCells = -nCells
	}
	if len(cellOrigins) != nCells {
		return nil, ErrShapeMismatch{Field: "cell_origins", Got: len(cellOrigins), Expected: nCells}
	}
	if len(ionFrac) != len(ionMass) {
		return nil, ErrShapeMismatch{Field: "ion_mass", Got: len(ionMass), Expected: len(ionFrac)}
	}
	for i, m := range ionMass {
		if m <= 0 {
			return nil, ErrNegativeMass{Ion: i, Mass: m}
		}
	}

	g := &Geometry{
		cellVectors: cellVectors,
		scMatrix:    scMatrix,
		cellOrigins: append([][3]int(nil), cellOrigins...),
		ionFrac:     append([]r3.Vec(nil), ionFrac...),
		ionMass:     append([]float64(nil), ionMass...),
		nCells:      nCells,
	}
	return g, nil
}

// NIons returns the number of ions in the primitive cell.
func (g *Geometry) NIons() int { return len(g.ionFrac) }

// NCells returns the number of primitive cells in the supercell,
// |det(sc_matrix)|.
func (g *Geometry) NCells() int { return g.nCells }

// SCMatrix returns the integer supercell matrix.
func (g *Geometry) SCMatrix() [3][3]int { return g.scMatrix }

// CellOrigin returns the integer offset, within the supercell, of
// primitive cell c.
func (g *Geometry) CellOrigin(c int) [3]int { return g.cellOrigins[c] }

// Mass returns the mass of primitive-cell ion i, in atomic mass units.
func (g *Geometry) Mass(i int) float64 { return g.ionMass[i] }

// ToCartesian converts fractional primitive-cell coordinates to
// Cartesian coordinates: fractional · cell_vectors.
func (g *Geometry) ToCartesian(frac r3.Vec) r3.Vec {
	return g.cellVectors[0].Scale(frac.X).
		Add(g.cellVectors[1].Scale(frac.Y)).
		Add(g.cellVectors[2].Scale(frac.Z))
}

// SupercellVectors returns the Cartesian supercell lattice vectors,
// sc_matrix · cell_vectors, as rows.
func (g *Geometry) SupercellVectors() [3]r3.Vec {
	var s [3]r3.Vec
	for i := 0; i < 3; i++ {
		v := r3.Vec{X: 0, Y: 0, Z: 0}
		for k := 0; k < 3; k++ {
			if g.scMatrix[i][k] == 0 {
				continue
			}
			v = v.Add(g.cellVectors[k].Scale(float64(g.scMatrix[i][k])))
		}
		s[i] = v
	}
	return s
}

// IonCartesian returns the Cartesian position of primitive-cell ion i
// in cell 0.
func (g *Geometry) IonCartesian(i int) r3.Vec {
	return g.ToCartesian(g.ionFrac[i])
}

// SupercellIonCartesian returns the Cartesian position of ion j of
// primitive cell c, i.e. the atom at fractional position ionFrac[j]
// translated by the integer cell origin cellOrigins[c], expressed in
// the primitive lattice.
func (g *Geometry) SupercellIonCartesian(c, j int) r3.Vec {
	o := g.cellOrigins[c]
	frac := r3.Vec{
		X: g.ionFrac[j].X + float64(o[0]),
		Y: g.ionFrac[j].Y + float64(o[1]),
		Z: g.ionFrac[j].Z + float64(o[2]),
	}
	return g.ToCartesian(frac)
}

func det3(m [3][3]int) int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

