// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hermitian

import "errors"

// ErrDidNotConverge signifies that the underlying LAPACK routine
// failed to converge.
var ErrDidNotConverge = errors.New("hermitian: eigenvalue decomposition did not converge")
