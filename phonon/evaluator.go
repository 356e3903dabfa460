// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phonon

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jess-farmer/Euphonic/dynmat"
	"github.com/jess-farmer/Euphonic/hermitian"
	"github.com/jess-farmer/Euphonic/images"
	"github.com/jess-farmer/Euphonic/lattice"
	"github.com/jess-farmer/Euphonic/phase"
)

// Evaluator computes phonon frequencies and eigenvectors at arbitrary
// q-points for a fixed geometry and force constants. Geometry and
// force constants are immutable once an Evaluator is built; the image
// table is computed once, on the first call to Evaluate, and reused
// by every subsequent call.
type Evaluator struct {
	geom   *lattice.Geometry
	fc     *dynmat.ForceConstants
	opts   Options
	masses []float64
	solver hermitian.Solver

	once        sync.Once
	table       *images.Table
	tableErr    error
	precomputed *phase.Precomputed
	builder     *dynmat.Builder
}

// New validates geom and fc against each other and returns an
// Evaluator. fc must describe 3*geom.NIons() degrees of freedom per
// cell and geom.NCells() cells.
func New(geom *lattice.Geometry, fc *dynmat.ForceConstants, opts Options) (*Evaluator, error) {
	want := 3 * geom.NIons()
	if fc.N() != want {
		return nil, ShapeError{Got: fc.N(), Expected: want}
	}
	if fc.NCells() != geom.NCells() {
		return nil, ShapeError{Got: fc.NCells(), Expected: geom.NCells()}
	}

	masses := make([]float64, geom.NIons())
	for i := range masses {
		masses[i] = geom.Mass(i)
	}

	return &Evaluator{
		geom:   geom,
		fc:     fc,
		opts:   opts.normalize(),
		masses: masses,
	}, nil
}

// ensureTable builds the image table, phase precomputation, and
// dynamical matrix builder on first use. Later calls to Evaluate
// reuse this state, since geometry is immutable.
func (e *Evaluator) ensureTable() error {
	e.once.Do(func() {
		table, err := images.Enumerate(e.geom, e.opts.ImageSearchRadius)
		if err != nil {
			e.tableErr = err
			return
		}
		if e.opts.Logger != nil && table.Lim() != e.opts.ImageSearchRadius {
			e.opts.Logger.Printf("phonon: grew image search radius from %d to %d to find images for every atom pair", e.opts.ImageSearchRadius, table.Lim())
		}
		e.table = table

		origins := make([][3]int, e.geom.NCells())
		for c := range origins {
			origins[c] = e.geom.CellOrigin(c)
		}
		e.precomputed = phase.Precompute(e.geom.SCMatrix(), table.Offsets(), origins)
		e.builder = dynmat.NewBuilder(dynmat.Options{
			MassWeight:       e.opts.MassWeight,
			EnforceHermitian: e.opts.EnforceHermitian,
		})
	})
	return e.tableErr
}

// Evaluate computes frequencies and eigenvectors at every q-point in
// qpoints (fractional reciprocal coordinates of the primitive cell).
// Per-q-point work is independent and is dispatched across
// Options.Workers goroutines; a numerical failure at any single
// q-point fails the whole call so the output shape stays predictable.
func (e *Evaluator) Evaluate(qpoints []r3.Vec) (*Result, error) {
	if err := e.ensureTable(); err != nil {
		return nil, err
	}

	result := &Result{
		QPoints:      append([]r3.Vec(nil), qpoints...),
		Frequencies:  make([][]float64, len(qpoints)),
		Eigenvectors: make([][][][3]complex128, len(qpoints)),
	}
	if len(qpoints) == 0 {
		return result, nil
	}

	workers := e.opts.Workers
	if workers > len(qpoints) {
		workers = len(qpoints)
	}
	if workers <= 1 {
		for q, qpt := range qpoints {
			if err := e.evaluateOne(q, qpt, result); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	jobs := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			failed := false
			for q := range jobs {
				if failed {
					continue
				}
				if err := e.evaluateOne(q, qpoints[q], result); err != nil {
					errs <- err
					failed = true
				}
			}
		}()
	}
	for q := range qpoints {
		jobs <- q
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err, ok := <-errs; ok {
		return nil, err
	}
	return result, nil
}

// evaluateOne assembles and diagonalizes the dynamical matrix for a
// single q-point, writing its row of the output arrays. It touches
// only the disjoint qIndex row of result, so concurrent calls across
// distinct qIndex values are safe.
func (e *Evaluator) evaluateOne(qIndex int, q r3.Vec, result *Result) error {
	pt := e.precomputed.Compute(q)
	d, err := e.builder.Build(e.fc, pt, e.table, e.masses)
	if err != nil {
		return err
	}

	values, vecs, err := e.solver.Solve(d)
	if err != nil {
		return &NumericalFailureError{QIndex: qIndex, Err: err}
	}

	n := len(values)
	nIons := n / 3
	freqs := make([]float64, n)
	branches := make([][][3]complex128, n)
	for branch, lambda := range values {
		sign := 1.0
		if lambda < 0 {
			sign = -1.0
		}
		freqs[branch] = sign * math.Sqrt(math.Abs(lambda))

		atoms := make([][3]complex128, nIons)
		for a := 0; a < nIons; a++ {
			for c := 0; c < 3; c++ {
				atoms[a][c] = vecs.At(3*a+c, branch)
			}
		}
		branches[branch] = atoms
	}

	result.Frequencies[qIndex] = freqs
	result.Eigenvectors[qIndex] = branches
	return nil
}
