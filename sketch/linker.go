// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/sketch/expr"
	"github.com/cpmech/sketch/handle"
)

// relink flattens the live constraints and parameters into the dense
// ordered vectors the solver consumes, and rebuilds each live
// constraint's symbolic partial-derivative row. Solve always calls
// relink first whenever linkOutdated is set.
func (s *Sketch) relink() {

	// 1. release all solver-owned scratch from the previous relink.
	s.constraints.Each(func(_ handle.Handle, c *Constraint) {
		c.freeSolverRow()
	})
	s.normal = nil
	s.itrmSol = nil

	// 2-3. snapshot live constraints and live parameters in slot order.
	// This ordering is stable for the duration of one solve; it can only
	// change across solves that add or remove parameters/constraints.
	liveConstraints := make([]handle.Handle, 0, s.constraints.Len())
	s.constraints.Each(func(h handle.Handle, _ *Constraint) {
		liveConstraints = append(liveConstraints, h)
	})
	liveParams := make([]handle.Handle, 0, s.params.Len())
	s.params.Each(func(h handle.Handle, _ *Parameter) {
		liveParams = append(liveParams, h)
	})

	m := len(liveConstraints)
	n := len(liveParams)

	// 4. for each live constraint, resolve indexed leaves to direct
	// handles and differentiate the resolved clone w.r.t. every live
	// parameter.
	for _, ch := range liveConstraints {
		c, _ := s.constraints.Get(ch)
		resolver := constraintResolver{sk: s, c: c}
		c.resolved = expr.Resolve(c.Eq, resolver)
		c.dervs = make([]*expr.Node, n)
		c.dervVals = nil // populated by Solve's Jacobian pass, step by step
		for j, ph := range liveParams {
			c.dervs[j] = expr.Derivative(c.resolved, ph, true)
		}
	}

	// 5. allocate dense scratch.
	s.normal = newDenseMatrix(m)
	s.itrmSol = make([]float64, m)

	// 6.
	s.liveConstraints = liveConstraints
	s.liveParams = liveParams
	s.linkOutdated = false
}
