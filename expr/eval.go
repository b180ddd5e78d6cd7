// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/handle"
)

// ParamSource resolves a direct parameter handle to its current scalar
// value. A sketch implements this directly against its parameter table.
type ParamSource interface {
	ParamValue(h handle.Handle) (float64, bool)
}

// Scope additionally resolves the indexed leaves of an expression against
// the slot arrays of one particular constraint. Out-of-range indices,
// stale handles, or entity-type mismatches must be reported as (0,
// false); Eval turns that into a silent zero for the subtree, never an
// error.
type Scope interface {
	ParamSource
	Param(idx uint16) (float64, bool)
	PointX(idx uint16) (float64, bool)
	PointY(idx uint16) (float64, bool)
	CircleR(idx uint16) (float64, bool)
}

// env is the unified resolution environment Eval walks against. freeEnv
// implements it for free evaluation; any Scope implements it directly for
// constraint-scoped evaluation.
type env interface {
	ParamValue(h handle.Handle) (float64, bool)
	Param(idx uint16) (float64, bool)
	PointX(idx uint16) (float64, bool)
	PointY(idx uint16) (float64, bool)
	CircleR(idx uint16) (float64, bool)
}

// freeEnv adapts a bare ParamSource into env: every indexed leaf is
// unconditionally unresolved under free evaluation.
type freeEnv struct {
	params ParamSource
}

func (e freeEnv) ParamValue(h handle.Handle) (float64, bool) { return e.params.ParamValue(h) }
func (e freeEnv) Param(uint16) (float64, bool)               { return 0, false }
func (e freeEnv) PointX(uint16) (float64, bool)               { return 0, false }
func (e freeEnv) PointY(uint16) (float64, bool)               { return 0, false }
func (e freeEnv) CircleR(uint16) (float64, bool)              { return 0, false }

// EvalFree evaluates n resolving only Const and ParamDirect leaves;
// indexed leaves (ParamIdx, PointX, PointY, CircleR, ExtrParam) evaluate
// to 0.
func EvalFree(n *Node, params ParamSource) float64 {
	return eval(n, freeEnv{params})
}

// EvalScoped evaluates n resolving Const and ParamDirect leaves as
// EvalFree does, plus the indexed leaves against scope. A stale handle,
// out-of-range index, or entity-type mismatch resolves that subtree to 0
// rather than failing the whole evaluation.
func EvalScoped(n *Node, scope Scope) float64 {
	return eval(n, scope)
}

func eval(n *Node, e env) float64 {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindConst:
		return n.Const
	case KindParamDirect:
		v, ok := e.ParamValue(n.Param)
		if !ok {
			return 0
		}
		return v
	case KindParamIdx:
		v, ok := e.Param(n.Index)
		if !ok {
			return 0
		}
		return v
	case KindPointX:
		v, ok := e.PointX(n.Index)
		if !ok {
			return 0
		}
		return v
	case KindPointY:
		v, ok := e.PointY(n.Index)
		if !ok {
			return 0
		}
		return v
	case KindCircleR:
		v, ok := e.CircleR(n.Index)
		if !ok {
			return 0
		}
		return v
	case KindExtrParam:
		return 0
	case KindBorrowed:
		return eval(n.A, e)
	case KindSin:
		return math.Sin(eval(n.A, e))
	case KindCos:
		return math.Cos(eval(n.A, e))
	case KindAsin:
		return math.Asin(eval(n.A, e))
	case KindAcos:
		return math.Acos(eval(n.A, e))
	case KindSqrt:
		return math.Sqrt(eval(n.A, e))
	case KindSqr:
		v := eval(n.A, e)
		return v * v
	case KindAdd:
		return eval(n.A, e) + eval(n.B, e)
	case KindSub:
		return eval(n.A, e) - eval(n.B, e)
	case KindMul:
		return eval(n.A, e) * eval(n.B, e)
	case KindDiv:
		return eval(n.A, e) / eval(n.B, e) // deliberately unguarded against a zero divisor
	}
	chk.Panic("expr: unknown node kind %d during evaluation", n.Kind)
	return 0
}
