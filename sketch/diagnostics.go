// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/sketch/handle"
)

// NamedValue labels a parameter handle for diagnostic printing.
type NamedValue struct {
	N string
	H handle.Handle
}

// ReportResidual prints the current value of every constraint's residual
// and, for each name in labels, its current parameter value. It does not
// affect Solve; it exists
// purely so a host can narrate a non-converged solve.
func (s *Sketch) ReportResidual(labels []NamedValue) {
	if s.linkOutdated {
		io.Pfyel("sketch: ReportResidual called while link is outdated; relink first\n")
		return
	}
	for i, ch := range s.liveConstraints {
		c, ok := s.constraints.Get(ch)
		if !ok {
			continue
		}
		io.Pf("  residual[%d] = %v\n", i, c.residual)
	}
	for _, nv := range labels {
		v, ok := s.ParamValue(nv.H)
		if !ok {
			io.Pfred("  %s = <stale>\n", nv.N)
			continue
		}
		io.Pf("  %s = %v\n", nv.N, v)
	}
}
