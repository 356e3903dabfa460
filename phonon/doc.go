// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phonon is the orchestrator of the phonon Fourier
// interpolation core: given a lattice.Geometry and its force
// constants, Evaluator lazily builds the image table once and then,
// for each requested q-point, assembles and diagonalizes the
// dynamical matrix to produce frequencies and polarization vectors.
package phonon // import "github.com/jess-farmer/Euphonic/phonon"
