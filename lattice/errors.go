// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lattice

import (
	"errors"
	"fmt"
)

// ErrSingularSupercell signifies that the supercell matrix has zero
// determinant, so it does not define a valid tiling of the primitive
// cell.
var ErrSingularSupercell = errors.New("lattice: supercell matrix is singular")

// ErrNegativeMass signifies an ion mass that is not strictly positive.
type ErrNegativeMass struct {
	Ion  int
	Mass float64
}

func (e ErrNegativeMass) Error() string {
	return fmt.Sprintf("lattice: ion %d has non-positive mass %g", e.Ion, e.Mass)
}

// ErrShapeMismatch signifies that two array-like inputs that should
// agree in length do not.
type ErrShapeMismatch struct {
	Field    string
	Got      int
	Expected int
}

func (e ErrShapeMismatch) Error() string {
	return fmt.Sprintf("lattice: %s has length %d, expected %d", e.Field, e.Got, e.Expected)
}
