// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynmat

import (
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jess-farmer/Euphonic/images"
	"github.com/jess-farmer/Euphonic/lattice"
	"github.com/jess-farmer/Euphonic/phase"
)

func oneAtomCubic(t *testing.T, n int) *lattice.Geometry {
	t.Helper()
	cell := [3]r3.Vec{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	sc := [3][3]int{{n, 0, 0}, {0, n, 0}, {0, 0, n}}
	var origins [][3]int
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				origins = append(origins, [3]int{x, y, z})
			}
		}
	}
	g, err := lattice.New(cell, sc, origins, []r3.Vec{{0, 0, 0}}, []float64{1})
	if err != nil {
		t.Fatalf("lattice.New: %v", err)
	}
	return g
}

func identityForceConstants(nCells, n int, k float64) *ForceConstants {
	data := make([]float64, nCells*n*n)
	// Force constants only on the reference cell's diagonal, matching
	// a trivial onsite-only model: FC = identity * k in cell 0.
	for d := 0; d < n; d++ {
		data[d*n+d] = k
	}
	fc, err := NewForceConstants(nCells, n, data)
	if err != nil {
		panic(err)
	}
	return fc
}

func TestBuildIsHermitian(t *testing.T) {
	g := oneAtomCubic(t, 3)
	table, err := images.Enumerate(g, images.DefaultLim)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	fc := identityForceConstants(g.NCells(), 3*g.NIons(), 2.0)

	pc := phase.Precompute(g.SCMatrix(), table.Offsets(), allOrigins(g))
	pt := pc.Compute(r3.Vec{0.1, 0.2, -0.3})

	b := NewBuilder(Options{MassWeight: true, EnforceHermitian: true})
	d, err := b.Build(fc, pt, table, massesOf(g))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n, _ := d.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cmplx.Abs(d.At(i, j)-cmplx.Conj(d.At(j, i))) > 1e-10 {
				t.Fatalf("D not Hermitian at (%d,%d): %v vs conj(%v)", i, j, d.At(i, j), d.At(j, i))
			}
		}
	}
}

func TestBuildGammaPointIdentityForceConstants(t *testing.T) {
	g := oneAtomCubic(t, 3)
	table, err := images.Enumerate(g, images.DefaultLim)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	fc := identityForceConstants(g.NCells(), 3, 5.0)

	pc := phase.Precompute(g.SCMatrix(), table.Offsets(), allOrigins(g))
	pt := pc.Compute(r3.Vec{0, 0, 0})

	b := NewBuilder(Options{MassWeight: true, EnforceHermitian: true})
	d, err := b.Build(fc, pt, table, massesOf(g))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < 3; i++ {
		got := d.At(i, i)
		if cmplx.Abs(got-complex(5, 0)) > 1e-9 {
			t.Errorf("D[%d,%d] = %v, want 5", i, i, got)
		}
	}
}

// TestCumulantNormalization checks property 6: replacing counts[i,J]
// by a positive integer multiple, with the image list replicated the
// same number of times, leaves D(q) unchanged.
func TestCumulantNormalization(t *testing.T) {
	offsets := [][3]int32{{0, 0, 0}, {1, 0, 0}}
	origins := [][3]int{{0, 0, 0}}
	nIons, nCells := 1, 1

	base := images.NewTable(1, offsets, [][]int32{{0, 1}}, nIons, nIons*nCells)
	replicated := images.NewTable(1, offsets, [][]int32{{0, 1, 0, 1, 0, 1}}, nIons, nIons*nCells)

	sc := [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	pc := phase.Precompute(sc, offsets, origins)
	pt := pc.Compute(r3.Vec{0.3, 0.0, 0.0})

	fc := identityForceConstants(nCells, 3, 7.0)
	b := NewBuilder(Options{MassWeight: false, EnforceHermitian: false})

	dBase, err := b.Build(fc, pt, base, []float64{1})
	if err != nil {
		t.Fatalf("Build base: %v", err)
	}
	dRep, err := b.Build(fc, pt, replicated, []float64{1})
	if err != nil {
		t.Fatalf("Build replicated: %v", err)
	}

	n, _ := dBase.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if cmplx.Abs(dBase.At(i, j)-dRep.At(i, j)) > 1e-12 {
				t.Errorf("D[%d,%d] changed under replication: %v vs %v", i, j, dBase.At(i, j), dRep.At(i, j))
			}
		}
	}
}

func allOrigins(g *lattice.Geometry) [][3]int {
	origins := make([][3]int, g.NCells())
	for c := range origins {
		origins[c] = g.CellOrigin(c)
	}
	return origins
}

func massesOf(g *lattice.Geometry) []float64 {
	m := make([]float64, g.NIons())
	for i := range m {
		m[i] = g.Mass(i)
	}
	return m
}
