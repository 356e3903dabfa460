// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package images enumerates, for every (primitive atom, supercell
// atom) pair, the periodic images that lie on or inside the
// Wigner-Seitz cell of the super-supercell. The resulting table controls which
// force-constant contributions the dynamical matrix builder sums.
package images // import "github.com/jess-farmer/Euphonic/images"
