// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lattice holds the immutable geometric state of a
// force-constant supercell: primitive cell vectors, the integer
// supercell matrix, cell origins within the supercell, and fractional
// ion positions and masses. It provides the Cartesian conversions
// that the image enumerator is built on.
package lattice // import "github.com/jess-farmer/Euphonic/lattice"
