// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hermitian diagonalizes complex Hermitian matrices, returning
// real eigenvalues in ascending order and an orthonormal matrix of
// complex eigenvectors.
//
// gonum's mat package does not expose a complex Hermitian
// eigensolver, only mat.EigenSym for real symmetric matrices backed
// by lapack64.Syev. Solver reduces the complex Hermitian problem to a
// real symmetric one of twice the size and recovers the complex
// eigenvectors from the real ones, so the diagonalization itself is
// still done by lapack64.Syev.
package hermitian // import "github.com/jess-farmer/Euphonic/hermitian"
