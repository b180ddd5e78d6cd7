// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sketch implements the sketch store, linker, and nonlinear
// least-squares solver: the top-level container that owns parameters,
// entities and constraints, and the Gauss-Newton solve that drives every
// live constraint's residual to zero.
package sketch

// Parameter is a single mutable scalar. It is the only payload type the
// parameter table holds; its value is the only state the solver ever
// writes.
type Parameter struct {
	Value float64
}
