// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/handle"
)

// mapParams is a trivial ParamSource backed by a map, for tests.
type mapParams map[handle.Handle]float64

func (m mapParams) ParamValue(h handle.Handle) (float64, bool) {
	v, ok := m[h]
	return v, ok
}

func Test_eval_free_basic(tst *testing.T) {

	chk.PrintTitle("eval_free_basic")

	p := handle.Handle{Idx: 0, Gen: 1}
	params := mapParams{p: 3.0}

	e := NewAdd(NewParamDirect(p), NewMul(NewConst(2), NewConst(5)))
	chk.Scalar(tst, "3+2*5", 1e-15, EvalFree(e, params), 13.0)

	// indexed leaves evaluate to 0 under free evaluation.
	chk.Scalar(tst, "ParamIdx free", 1e-15, EvalFree(NewParamIdx(0), params), 0)
	chk.Scalar(tst, "PointX free", 1e-15, EvalFree(NewPointX(0), params), 0)
}

// scopeStub implements Scope for a single synthetic constraint with one
// parameter slot and one point (two parameter slots for x,y).
type scopeStub struct {
	params  mapParams
	parSlot []handle.Handle
	px, py  handle.Handle
	haveXY  bool
}

func (s scopeStub) ParamValue(h handle.Handle) (float64, bool) { return s.params.ParamValue(h) }

func (s scopeStub) Param(idx uint16) (float64, bool) {
	if int(idx) >= len(s.parSlot) {
		return 0, false
	}
	return s.params.ParamValue(s.parSlot[idx])
}

func (s scopeStub) PointX(idx uint16) (float64, bool) {
	if idx != 0 || !s.haveXY {
		return 0, false
	}
	return s.params.ParamValue(s.px)
}

func (s scopeStub) PointY(idx uint16) (float64, bool) {
	if idx != 0 || !s.haveXY {
		return 0, false
	}
	return s.params.ParamValue(s.py)
}

func (s scopeStub) CircleR(uint16) (float64, bool) { return 0, false }

func Test_eval_scoped_resolves_indices(tst *testing.T) {

	chk.PrintTitle("eval_scoped_resolves_indices")

	px := handle.Handle{Idx: 1, Gen: 1}
	py := handle.Handle{Idx: 2, Gen: 1}
	params := mapParams{px: 4.0, py: 3.0}
	s := scopeStub{params: params, px: px, py: py, haveXY: true}

	// distance^2 of point 0 from the origin.
	e := NewAdd(NewSqr(NewPointX(0)), NewSqr(NewPointY(0)))
	chk.Scalar(tst, "4^2+3^2", 1e-15, EvalScoped(e, s), 25.0)

	// an out-of-range index is a silent zero, not a panic.
	chk.Scalar(tst, "Param(5) oob", 1e-15, EvalScoped(NewParamIdx(5), s), 0)
}

func Test_derivative_linear_rule(tst *testing.T) {

	chk.PrintTitle("derivative_linear_rule")

	p := handle.Handle{Idx: 0, Gen: 1}
	q := handle.Handle{Idx: 1, Gen: 1}
	params := mapParams{p: 2.0, q: 5.0}

	a := NewMul(NewConst(3), NewParamDirect(p))
	b := NewMul(NewConst(4), NewParamDirect(q))
	sum := NewAdd(a, b)

	dSum := Derivative(sum, p, true)
	dA := Derivative(a, p, true)
	dB := Derivative(b, p, true)
	chk.Scalar(tst, "d(a+b)/dp == da/dp+db/dp", 1e-12,
		EvalFree(dSum, params), EvalFree(dA, params)+EvalFree(dB, params))
}

// centralDiff approximates d(fcn)/dx at x via a central finite difference.
func centralDiff(fcn func(float64) float64, x, h float64) float64 {
	return (fcn(x+h) - fcn(x-h)) / (2 * h)
}

func Test_derivative_matches_finite_difference(tst *testing.T) {

	chk.PrintTitle("derivative_matches_finite_difference")

	p := handle.Handle{Idx: 0, Gen: 1}
	q := handle.Handle{Idx: 1, Gen: 1}

	// f(p,q) = sqrt(p*p + q*q) - 5, differentiate w.r.t. p at p=3, q=4.
	expr := NewSub(
		NewSqrt(NewAdd(NewSqr(NewParamDirect(p)), NewSqr(NewParamDirect(q)))),
		NewConst(5),
	)
	deriv := Derivative(expr, p, true)

	qVal := 4.0
	fcn := func(x float64) float64 {
		params := mapParams{p: x, q: qVal}
		return EvalFree(expr, params)
	}
	dAna := EvalFree(deriv, mapParams{p: 3.0, q: qVal})
	dNum := centralDiff(fcn, 3.0, 1e-4)
	chk.Scalar(tst, "d/dp sqrt(p^2+q^2)-5", 1e-6, dAna, dNum)
}

func Test_free_stops_at_borrowed_marker(tst *testing.T) {

	chk.PrintTitle("free_stops_at_borrowed_marker")

	shared := NewConst(7)
	wrapper := borrow(shared)
	Free(wrapper)
	if shared.Kind != KindConst || shared.Const != 7 {
		tst.Fatal("Free must not touch the node a borrowed marker points at")
	}
}

func Test_resolve_expands_indexed_leaves(tst *testing.T) {

	chk.PrintTitle("resolve_expands_indexed_leaves")

	hp := handle.Handle{Idx: 9, Gen: 1}
	stub := resolverStub{param: hp}

	resolved := Resolve(NewParamIdx(0), stub)
	if resolved.Kind != KindParamDirect || resolved.Param != hp {
		tst.Fatalf("Resolve did not expand ParamIdx to ParamDirect(%v): got %+v", hp, resolved)
	}

	resolved2 := Resolve(NewParamIdx(1), stub) // index 1 is unresolvable in the stub
	if resolved2.Kind != KindConst || resolved2.Const != 0 {
		tst.Fatalf("Resolve of an unresolvable index must yield Const(0), got %+v", resolved2)
	}
}

type resolverStub struct {
	param handle.Handle
}

func (r resolverStub) ParamHandle(idx uint16) (handle.Handle, bool) {
	if idx == 0 {
		return r.param, true
	}
	return handle.Handle{}, false
}
func (r resolverStub) PointXHandle(uint16) (handle.Handle, bool)   { return handle.Handle{}, false }
func (r resolverStub) PointYHandle(uint16) (handle.Handle, bool)   { return handle.Handle{}, false }
func (r resolverStub) CircleRHandle(uint16) (handle.Handle, bool)  { return handle.Handle{}, false }
