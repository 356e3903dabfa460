// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phonon

import (
	"log"
	"runtime"

	"github.com/jess-farmer/Euphonic/images"
)

// Options configures an Evaluator. The zero value is not valid;
// use DefaultOptions and override individual fields.
type Options struct {
	// ImageSearchRadius is the supercell image search radius lim
	// passed to images.Enumerate. Non-positive values fall back to
	// images.DefaultLim.
	ImageSearchRadius int

	// MassWeight mass-weights the dynamical matrix. Set to false if
	// the caller's force constants are already mass-weighted.
	MassWeight bool

	// EnforceHermitian symmetrizes the dynamical matrix before
	// diagonalization.
	EnforceHermitian bool

	// Workers bounds how many q-points are processed concurrently.
	// Non-positive values fall back to runtime.GOMAXPROCS(0).
	Workers int

	// Logger, if non-nil, receives a line whenever the image search
	// radius must be grown past ImageSearchRadius to recover from an
	// empty image set for some atom pair.
	Logger *log.Logger
}

// DefaultOptions returns the recognized defaults: image search
// radius 2, mass weighting and Hermitian enforcement both on, and
// Workers set to the number of available processors.
func DefaultOptions() Options {
	return Options{
		ImageSearchRadius: images.DefaultLim,
		MassWeight:        true,
		EnforceHermitian:  true,
		Workers:           runtime.GOMAXPROCS(0),
	}
}

func (o Options) normalize() Options {
	if o.ImageSearchRadius <= 0 {
		o.ImageSearchRadius = images.DefaultLim
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}
