// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynmat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jess-farmer/Euphonic/images"
	"github.com/jess-farmer/Euphonic/phase"
)

// Options configures dynamical matrix assembly.
type Options struct {
	// MassWeight divides each 3x3 block by sqrt(m_i * m_j). Set this
	// to false if the caller's force constants are already
	// mass-weighted.
	MassWeight bool
	// EnforceHermitian symmetrizes D <- (D + D^H)/2 before returning,
	// which keeps rounding noise from propagating to spurious
	// imaginary eigenvalues at diagonalization time.
	EnforceHermitian bool
}

// Builder assembles dynamical matrices with a fixed set of Options.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder configured with opts.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build assembles the Hermitian dynamical matrix at the q-point whose
// phase table is pt, using fc, the shared image table, and ion
// masses. masses must have length n_ions = fc.N()/3.
func (b *Builder) Build(fc *ForceConstants, pt *phase.Table, table *images.Table, masses []float64) (*mat.CDense, error) {
	n := fc.N()
	nIons := n / 3
	if n%3 != 0 {
		return nil, fmt.Errorf("dynmat: force constants size %d is not a multiple of 3", n)
	}
	if len(masses) != nIons {
		return nil, fmt.Errorf("dynmat: got %d masses, want %d", len(masses), nIons)
	}

	data := make([]complex128, n*n)
	nSC := nIons * fc.NCells()
	for i := 0; i < nIons; i++ {
		for J := 0; J < nSC; J++ {
			c, j := J/nIons, J%nIons
			imgs := table.Images(i, J)
			if len(imgs) == 0 {
				return nil, fmt.Errorf("dynmat: no images for atom pair (%d, %d)", i, J)
			}
			var term complex128
			for _, k := range imgs {
				term += pt.At(c, int(k))
			}
			term /= complex(float64(len(imgs)), 0)

			for a := 0; a < 3; a++ {
				row := 3*i + a
				for beta := 0; beta < 3; beta++ {
					col := 3*j + beta
					data[row*n+col] += term * complex(fc.At(c, row, col), 0)
				}
			}
		}
	}

	if b.opts.MassWeight {
		for i := 0; i < nIons; i++ {
			for j := 0; j < nIons; j++ {
				invSqrtMass := complex(1/math.Sqrt(masses[i]*masses[j]), 0)
				for a := 0; a < 3; a++ {
					row := 3*i + a
					for beta := 0; beta < 3; beta++ {
						col := 3*j + beta
						data[row*n+col] *= invSqrtMass
					}
				}
			}
		}
	}

	d := mat.NewCDense(n, n, data)
	if !b.opts.EnforceHermitian {
		return d, nil
	}

	var sym mat.CDense
	sym.Add(d, d.H())
	sym.Scale(0.5, &sym)
	return &sym, nil
}
