// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package images

import "fmt"

// UnderflowError signifies that no periodic image was selected for a
// given (primitive atom, supercell atom) pair at the search radius in
// use. The geometry is inconsistent with lim, or lim is too small.
type UnderflowError struct {
	Atom      int // primitive-cell atom index i
	Supercell int // supercell atom index J = c*n_ions + j
	Lim       int
}

func (e UnderflowError) Error() string {
	return fmt.Sprintf("images: no image selected for atom pair (%d, %d) at search radius %d", e.Atom, e.Supercell, e.Lim)
}
