// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phase

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestComputeGammaPointIsUnity(t *testing.T) {
	sc := [3][3]int{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	offsets := [][3]int32{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}}
	origins := [][3]int{{0, 0, 0}, {1, 0, 0}}

	p := Precompute(sc, offsets, origins)
	table := p.Compute(r3.Vec{0, 0, 0})

	for c := 0; c < len(origins); c++ {
		for k := range offsets {
			got := table.At(c, k)
			if cmplx.Abs(got-1) > 1e-12 {
				t.Errorf("At(%d,%d) = %v, want 1", c, k, got)
			}
		}
	}
}

func TestComputeUnitModulus(t *testing.T) {
	sc := [3][3]int{{3, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	offsets := [][3]int32{{0, 0, 0}, {1, 0, 0}, {2, -1, 0}}
	origins := [][3]int{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}

	p := Precompute(sc, offsets, origins)
	table := p.Compute(r3.Vec{0.3, 0.1, -0.2})

	for c := 0; c < len(origins); c++ {
		for k := range offsets {
			got := cmplx.Abs(table.At(c, k))
			if math.Abs(got-1) > 1e-12 {
				t.Errorf("|At(%d,%d)| = %v, want 1", c, k, got)
			}
		}
	}
}

func TestComputeMatchesDirectFormula(t *testing.T) {
	sc := [3][3]int{{1, 0, 0}, {0, 2, 0}, {0, 0, 1}}
	offsets := [][3]int32{{1, -1, 0}}
	origins := [][3]int{{0, 1, 0}}
	q := r3.Vec{0.25, 0.5, 0.0}

	p := Precompute(sc, offsets, origins)
	table := p.Compute(q)

	// R = sc_matrix^T . offset + origin
	var r [3]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row] += float64(sc[col][row]) * float64(offsets[0][col])
		}
	}
	r[0] += float64(origins[0][0])
	r[1] += float64(origins[0][1])
	r[2] += float64(origins[0][2])

	angle := 2 * math.Pi * (q.X*r[0] + q.Y*r[1] + q.Z*r[2])
	want := cmplx.Rect(1, angle)

	got := table.At(0, 0)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("At(0,0) = %v, want %v", got, want)
	}
}
