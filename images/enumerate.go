// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package images

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jess-farmer/Euphonic/lattice"
)

// DefaultLim is the default supercell image search radius.
const DefaultLim = 2

// tieBreakEps is the slack applied to the Wigner-Seitz boundary test
// so that boundary-equivalent images are kept despite floating-point
// rounding. Its sign and magnitude must be identical across platforms
// to reproduce the reference tie-breaks.
const tieBreakEps = 1e-3

// maxLimGrowth bounds how many times Enumerate will grow lim to
// recover from an empty image set before giving up.
const maxLimGrowth = 4

// wsGenerators are the 13 non-trivial Wigner-Seitz generator vectors
// of the super-supercell, in fractional supercell coordinates. Only
// these 13 (not the full 26 of a general Wigner-Seitz cell) are used;
// this suffices for supercells whose metric is not too skew and must
// be kept fixed to reproduce reference image selection bit-for-bit.
var wsGenerators = [13][3]int{
	{0, 0, 1}, {0, 1, 0}, {0, 1, 1}, {0, 1, -1},
	{1, 0, 0}, {1, 0, 1}, {1, 0, -1},
	{1, 1, 0}, {1, 1, 1}, {1, 1, -1},
	{1, -1, 0}, {1, -1, 1}, {1, -1, -1},
}

// Table is the per-pair image table produced by Enumerate. For each
// (primitive atom i, supercell atom J) pair it records the offsets,
// indexing into Offsets, that are equidistant from i under the
// Wigner-Seitz construction of the super-supercell.
//
// Table stores images as a compact per-pair slice rather than a dense
// (n_ions, n_ions*n_cells, (2*lim+1)^3) array: for most geometries
// only a handful of the (2*lim+1)^3 candidate offsets are ever
// selected per pair.
type Table struct {
	lim     int
	offsets [][3]int32
	images  [][]int32 // flat index i*nSC+J
	nIons   int
	nSC     int
}

// NewTable constructs a Table from already-computed image data, for
// callers that cache or serialize image tables produced by Enumerate
// instead of recomputing them. imgs must have length nIons*nSC, with
// imgs[i*nSC+J] holding the offset indices selected for (i, J).
func NewTable(lim int, offsets [][3]int32, imgs [][]int32, nIons, nSC int) *Table {
	if len(imgs) != nIons*nSC {
		panic("images: imgs has wrong length for nIons*nSC")
	}
	return &Table{
		lim:     lim,
		offsets: offsets,
		images:  imgs,
		nIons:   nIons,
		nSC:     nSC,
	}
}

// Lim returns the search radius the table was built with.
func (t *Table) Lim() int { return t.lim }

// Offsets returns the shared list of (2*lim+1)^3 integer offset
// triplets, in row-major lexical order over [-lim, lim]^3.
func (t *Table) Offsets() [][3]int32 { return t.offsets }

// Images returns the offsets (indices into Offsets) selected for
// primitive atom i versus supercell atom J = c*n_ions + j.
func (t *Table) Images(i, J int) []int32 { return t.images[i*t.nSC+J] }

// Counts returns the number of selected images for (i, J).
func (t *Table) Counts(i, J int) int { return len(t.images[i*t.nSC+J]) }

// Enumerate builds the image table for geom at search radius lim. If
// lim <= 0, DefaultLim is used. If some (i, J) pair has no selected
// image at the requested radius, Enumerate grows lim and retries up
// to maxLimGrowth times before returning an UnderflowError.
func Enumerate(geom *lattice.Geometry, lim int) (*Table, error) {
	if lim <= 0 {
		lim = DefaultLim
	}
	var lastErr error
	for attempt := 0; attempt <= maxLimGrowth; attempt++ {
		t, err := enumerateAt(geom, lim+attempt)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func enumerateAt(geom *lattice.Geometry, lim int) (*Table, error) {
	s := geom.SupercellVectors()

	generators := make([]r3.Vec, len(wsGenerators))
	invSq := make([]float64, len(wsGenerators))
	for k, g := range wsGenerators {
		v := combine(s, g)
		generators[k] = v
		invSq[k] = 1 / dot(v, v)
	}

	offsets := buildOffsets(lim)

	nIons := geom.NIons()
	nCells := geom.NCells()
	nSC := nIons * nCells

	offsetCart := make([]r3.Vec, len(offsets))
	for k, off := range offsets {
		offsetCart[k] = applyRows(s, [3]int{int(off[0]), int(off[1]), int(off[2])})
	}

	t := &Table{
		lim:     lim,
		offsets: offsets,
		images:  make([][]int32, nIons*nSC),
		nIons:   nIons,
		nSC:     nSC,
	}

	for i := 0; i < nIons; i++ {
		cartI := geom.IonCartesian(i)
		for J := 0; J < nSC; J++ {
			c, j := J/nIons, J%nIons
			cartJ := geom.SupercellIonCartesian(c, j)
			base := cartI.Sub(cartJ)

			var selected []int32
			for k, offCart := range offsetCart {
				dist := base.Sub(offCart)
				max := 0.0
				for w, gen := range generators {
					v := math.Abs(dot(dist, gen)) * invSq[w]
					if v > max {
						max = v
					}
				}
				if max <= 0.5+tieBreakEps {
					selected = append(selected, int32(k))
				}
			}
			if len(selected) == 0 {
				return nil, UnderflowError{Atom: i, Supercell: J, Lim: lim}
			}
			t.images[i*nSC+J] = selected
		}
	}
	return t, nil
}

// buildOffsets enumerates the (2*lim+1)^3 integer triplets in the box
// [-lim, lim]^3, in row-major lexical order (x outermost, z
// innermost), matching the reference enumeration order.
func buildOffsets(lim int) [][3]int32 {
	n := 2*lim + 1
	offsets := make([][3]int32, 0, n*n*n)
	for x := -lim; x <= lim; x++ {
		for y := -lim; y <= lim; y++ {
			for z := -lim; z <= lim; z++ {
				offsets = append(offsets, [3]int32{int32(x), int32(y), int32(z)})
			}
		}
	}
	return offsets
}

// combine forms off[0]*s[0] + off[1]*s[1] + off[2]*s[2], i.e. the
// Cartesian vector for integer coordinates off in the basis s. This
// is the row-combination convention the Wigner-Seitz generator
// vectors use (equivalent to sᵀ·off).
func combine(s [3]r3.Vec, off [3]int) r3.Vec {
	v := r3.Vec{X: 0, Y: 0, Z: 0}
	for k := 0; k < 3; k++ {
		if off[k] == 0 {
			continue
		}
		v = v.Add(s[k].Scale(float64(off[k])))
	}
	return v
}

// applyRows forms s·off under the ordinary matrix-vector convention,
// row p of the result being the dot product of off with row p of s.
// This is the convention the original implementation uses for
// supercell image offsets (sc_image_r @ transpose(sc_vecs)), distinct
// from combine's row-combination form; for a non-symmetric supercell
// matrix the two differ; applyRows is Cartesian coordinates for
// offsetCart, combine is Cartesian coordinates for the Wigner-Seitz
// generators.
func applyRows(s [3]r3.Vec, off [3]int) r3.Vec {
	o := r3.Vec{X: float64(off[0]), Y: float64(off[1]), Z: float64(off[2])}
	return r3.Vec{X: dot(s[0], o), Y: dot(s[1], o), Z: dot(s[2], o)}
}

func dot(a, b r3.Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}
