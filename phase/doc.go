// Copyright ©2024 The Euphonic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phase computes the Bloch phase factors exp(2*pi*i*q.R) used
// to weight force constants when assembling the dynamical matrix at a
// given q-point.
package phase // import "github.com/jess-farmer/Euphonic/phase"
