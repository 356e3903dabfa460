// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dynmat assembles the 3N x 3N Hermitian dynamical matrix at
// a q-point from force constants, a phase.Table, and an image table,
// applying the cumulant average and optional mass weighting.
package dynmat // import "github.com/jess-farmer/Euphonic/dynmat"
