// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

// Config carries the ambient solver settings a host may tune. Solve's own
// tolerance and max-steps arguments stay explicit per call; Config holds
// the settings that are genuinely ambient rather than per-call.
type Config struct {
	// Verbose, when true, reports the Gaussian-elimination small-pivot
	// row-skip policy as a diagnostic line instead of staying silent
	// about it.
	Verbose bool

	// RollbackOnFailure restores every live parameter to its pre-Solve
	// value when a solve does not converge. Default false, so that a
	// non-converged solve's last iterate stays observable to the caller
	// instead of being silently discarded.
	RollbackOnFailure bool

	// PivotEps is the small-pivot threshold ε below which a
	// Gaussian-elimination row is skipped rather than aborting the step.
	PivotEps float64
}

// DefaultConfig returns conservative defaults: silent, no rollback,
// ε = 1e-10.
func DefaultConfig() Config {
	return Config{
		Verbose:           false,
		RollbackOnFailure: false,
		PivotEps:          1e-10,
	}
}
