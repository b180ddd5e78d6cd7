// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/handle"
)

// HandleResolver expands the indexed leaves of a constraint's equation
// tree into the direct parameter handles they name, so that Derivative
// never has to differentiate with respect to an unresolvable index. The
// sketch linker implements this against one constraint's slot arrays at
// relink time.
type HandleResolver interface {
	ParamHandle(idx uint16) (handle.Handle, bool)
	PointXHandle(idx uint16) (handle.Handle, bool)
	PointYHandle(idx uint16) (handle.Handle, bool)
	CircleRHandle(idx uint16) (handle.Handle, bool)
}

// Resolve returns a new tree, structurally identical to n, in which every
// ParamIdx/PointX/PointY/CircleR leaf has been replaced by a ParamDirect
// leaf naming the handle r resolves it to. A leaf r cannot resolve (out of
// range, stale, or wrong entity type) becomes Const(0), matching the
// silent-zero policy used everywhere else expression evaluation meets a
// broken reference. The result owns every node in it; it is independent
// of n and must be freed (or discarded, letting the garbage collector
// reclaim it) on its own.
func Resolve(n *Node, r HandleResolver) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindConst:
		return NewConst(n.Const)
	case KindParamDirect:
		return NewParamDirect(n.Param)
	case KindParamIdx:
		h, ok := r.ParamHandle(n.Index)
		if !ok {
			return NewConst(0)
		}
		return NewParamDirect(h)
	case KindPointX:
		h, ok := r.PointXHandle(n.Index)
		if !ok {
			return NewConst(0)
		}
		return NewParamDirect(h)
	case KindPointY:
		h, ok := r.PointYHandle(n.Index)
		if !ok {
			return NewConst(0)
		}
		return NewParamDirect(h)
	case KindCircleR:
		h, ok := r.CircleRHandle(n.Index)
		if !ok {
			return NewConst(0)
		}
		return NewParamDirect(h)
	case KindExtrParam:
		return NewConst(0)
	case KindBorrowed:
		// Authored equations never carry a Borrowed marker, but resolve
		// through it transparently for robustness against misuse.
		return Resolve(n.A, r)
	case KindSin, KindCos, KindAsin, KindAcos, KindSqrt, KindSqr:
		return &Node{Kind: n.Kind, A: Resolve(n.A, r)}
	case KindAdd, KindSub, KindMul, KindDiv:
		return &Node{Kind: n.Kind, A: Resolve(n.A, r), B: Resolve(n.B, r)}
	}
	chk.Panic("expr: unknown node kind %d during resolve", n.Kind)
	return nil
}

// Derivative returns a newly allocated tree computing ∂n/∂wrt. n must
// already have had its indexed leaves expanded by Resolve: a
// ParamIdx/PointX/PointY/CircleR/ExtrParam leaf
// surviving into Derivative conservatively differentiates to 0, since by
// that point the target parameter can no longer be identified.
//
// When protect is true, every operand reused verbatim in the result (the
// "a" in da·b + a·db, etc.) is wrapped in a borrowed-operand marker so
// that Free-ing the derivative tree never frees nodes n still owns.
func Derivative(n *Node, wrt handle.Handle, protect bool) *Node {
	if n == nil {
		return NewConst(0)
	}
	switch n.Kind {
	case KindConst:
		return NewConst(0)
	case KindParamDirect:
		if n.Param == wrt {
			return NewConst(1)
		}
		return NewConst(0)
	case KindParamIdx, KindPointX, KindPointY, KindCircleR, KindExtrParam:
		return NewConst(0)
	case KindBorrowed:
		return Derivative(n.A, wrt, protect)
	case KindAdd:
		return NewAdd(Derivative(n.A, wrt, protect), Derivative(n.B, wrt, protect))
	case KindSub:
		return NewSub(Derivative(n.A, wrt, protect), Derivative(n.B, wrt, protect))
	case KindMul:
		da := Derivative(n.A, wrt, protect)
		db := Derivative(n.B, wrt, protect)
		aOp := operand(n.A, protect)
		bOp := operand(n.B, protect)
		return NewAdd(NewMul(da, bOp), NewMul(aOp, db))
	case KindDiv:
		da := Derivative(n.A, wrt, protect)
		db := Derivative(n.B, wrt, protect)
		num := NewSub(NewMul(da, operand(n.B, protect)), NewMul(operand(n.A, protect), db))
		den := NewMul(operand(n.B, protect), operand(n.B, protect))
		return NewDiv(num, den)
	case KindSin:
		da := Derivative(n.A, wrt, protect)
		return NewMul(da, NewCos(operand(n.A, protect)))
	case KindCos:
		da := Derivative(n.A, wrt, protect)
		return NewMul(NewConst(-1), NewMul(NewSin(operand(n.A, protect)), da))
	case KindAsin:
		da := Derivative(n.A, wrt, protect)
		aOp := operand(n.A, protect)
		return NewDiv(da, NewSqrt(NewSub(NewConst(1), NewSqr(aOp))))
	case KindAcos:
		da := Derivative(n.A, wrt, protect)
		aOp := operand(n.A, protect)
		return NewMul(NewConst(-1), NewDiv(da, NewSqrt(NewSub(NewConst(1), NewSqr(aOp)))))
	case KindSqrt:
		da := Derivative(n.A, wrt, protect)
		aOp := operand(n.A, protect)
		return NewDiv(da, NewMul(NewConst(2), NewSqrt(aOp)))
	case KindSqr:
		da := Derivative(n.A, wrt, protect)
		aOp := operand(n.A, protect)
		return NewMul(NewConst(2), NewMul(aOp, da))
	}
	chk.Panic("expr: unknown node kind %d during differentiation", n.Kind)
	return nil
}

// operand returns a read-only reference to n suitable for reuse inside a
// derivative tree: borrowed when protect is set, shared bare otherwise.
func operand(n *Node, protect bool) *Node {
	if protect {
		return borrow(n)
	}
	return n
}
