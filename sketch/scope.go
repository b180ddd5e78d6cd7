// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/sketch/handle"
)

// constraintScope implements expr.Scope for one (sketch, constraint)
// pair: it resolves the constraint's indexed leaves against its own
// Ents/Pars slot arrays — constraint-scoped evaluation.
type constraintScope struct {
	sk *Sketch
	c  *Constraint
}

func (s constraintScope) ParamValue(h handle.Handle) (float64, bool) {
	return s.sk.ParamValue(h)
}

func (s constraintScope) Param(idx uint16) (float64, bool) {
	if int(idx) >= s.c.ParCount {
		return 0, false
	}
	return s.sk.ParamValue(s.c.Pars[idx])
}

func (s constraintScope) PointX(idx uint16) (float64, bool) {
	pt, ok := s.resolvePoint(idx)
	if !ok {
		return 0, false
	}
	return s.sk.ParamValue(pt.X)
}

func (s constraintScope) PointY(idx uint16) (float64, bool) {
	pt, ok := s.resolvePoint(idx)
	if !ok {
		return 0, false
	}
	return s.sk.ParamValue(pt.Y)
}

func (s constraintScope) CircleR(idx uint16) (float64, bool) {
	if int(idx) >= s.c.EntCount {
		return 0, false
	}
	circ, ok := s.sk.circleOf(s.c.Ents[idx])
	if !ok {
		return 0, false
	}
	return s.sk.ParamValue(circ.R)
}

func (s constraintScope) resolvePoint(idx uint16) (*Entity, bool) {
	if int(idx) >= s.c.EntCount {
		return nil, false
	}
	return s.sk.pointOf(s.c.Ents[idx])
}

// constraintResolver implements expr.HandleResolver for one (sketch,
// constraint) pair: it expands indexed leaves into the direct parameter
// handles they currently name, for use by expr.Resolve just before
// differentiation.
type constraintResolver struct {
	sk *Sketch
	c  *Constraint
}

func (r constraintResolver) ParamHandle(idx uint16) (handle.Handle, bool) {
	if int(idx) >= r.c.ParCount {
		return handle.Handle{}, false
	}
	h := r.c.Pars[idx]
	if !r.sk.params.Alive(h) {
		return handle.Handle{}, false
	}
	return h, true
}

func (r constraintResolver) PointXHandle(idx uint16) (handle.Handle, bool) {
	pt, ok := r.resolvePoint(idx)
	if !ok {
		return handle.Handle{}, false
	}
	return pt.X, true
}

func (r constraintResolver) PointYHandle(idx uint16) (handle.Handle, bool) {
	pt, ok := r.resolvePoint(idx)
	if !ok {
		return handle.Handle{}, false
	}
	return pt.Y, true
}

func (r constraintResolver) CircleRHandle(idx uint16) (handle.Handle, bool) {
	if int(idx) >= r.c.EntCount {
		return handle.Handle{}, false
	}
	circ, ok := r.sk.circleOf(r.c.Ents[idx])
	if !ok {
		return handle.Handle{}, false
	}
	return circ.R, true
}

func (r constraintResolver) resolvePoint(idx uint16) (*Entity, bool) {
	if int(idx) >= r.c.EntCount {
		return nil, false
	}
	return r.sk.pointOf(r.c.Ents[idx])
}
