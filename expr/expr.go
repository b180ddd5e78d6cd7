// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements the symbolic expression algebra over sketch
// parameters: construction, evaluation (free and constraint-scoped), and
// analytic differentiation.
package expr

import "github.com/cpmech/sketch/handle"

// Kind discriminates the variant an expression Node carries.
type Kind uint8

const (
	// Leaves.
	KindConst Kind = iota
	KindParamDirect
	KindParamIdx
	KindPointX
	KindPointY
	KindCircleR
	KindExtrParam // reserved leaf kind; always evaluates to 0

	// Unary operators.
	KindSin
	KindCos
	KindAsin
	KindAcos
	KindSqrt
	KindSqr

	// Binary operators.
	KindAdd
	KindSub
	KindMul
	KindDiv

	// KindBorrowed wraps a child it does not own ("operand protection").
	// It is transparent to Eval and Derivative; only Free treats it
	// specially.
	KindBorrowed
)

// Node is an immutable-by-convention tagged tree. Callers should treat a
// constructed Node as read-only; the only legitimate mutation path is
// Free, which severs pointers for garbage collection.
type Node struct {
	Kind  Kind
	Const float64       // valid when Kind == KindConst
	Param handle.Handle  // valid when Kind == KindParamDirect
	Index uint16         // valid when Kind is one of the indexed leaves
	A, B  *Node          // children; unary uses A only, Borrowed uses A only
}

// NewConst returns a constant leaf.
func NewConst(v float64) *Node { return &Node{Kind: KindConst, Const: v} }

// NewParamDirect returns a leaf that evaluates to the current value of the
// parameter named by h, resolved against the sketch directly (not through
// a constraint's slot arrays).
func NewParamDirect(h handle.Handle) *Node { return &Node{Kind: KindParamDirect, Param: h} }

// NewParamIdx returns a leaf that resolves, under constraint-scoped
// evaluation, to sketch.Param(constraint.Pars[i]).
func NewParamIdx(i uint16) *Node { return &Node{Kind: KindParamIdx, Index: i} }

// NewPointX returns a leaf that resolves to the x-parameter of the Point
// entity at constraint.Ents[i].
func NewPointX(i uint16) *Node { return &Node{Kind: KindPointX, Index: i} }

// NewPointY is the y-parameter counterpart of NewPointX.
func NewPointY(i uint16) *Node { return &Node{Kind: KindPointY, Index: i} }

// NewCircleR returns a leaf that resolves to the radius parameter of the
// Circle entity at constraint.Ents[i].
func NewCircleR(i uint16) *Node { return &Node{Kind: KindCircleR, Index: i} }

// NewExtrParam returns the reserved, always-zero leaf.
func NewExtrParam(i uint16) *Node { return &Node{Kind: KindExtrParam, Index: i} }

// NewSin, NewCos, NewAsin, NewAcos, NewSqrt and NewSqr build the unary
// trigonometric/algebraic nodes.
func NewSin(a *Node) *Node  { return &Node{Kind: KindSin, A: a} }
func NewCos(a *Node) *Node  { return &Node{Kind: KindCos, A: a} }
func NewAsin(a *Node) *Node { return &Node{Kind: KindAsin, A: a} }
func NewAcos(a *Node) *Node { return &Node{Kind: KindAcos, A: a} }
func NewSqrt(a *Node) *Node { return &Node{Kind: KindSqrt, A: a} }
func NewSqr(a *Node) *Node  { return &Node{Kind: KindSqr, A: a} }

// NewAdd, NewSub, NewMul and NewDiv build the binary nodes. NewDiv does not
// guard against a zero divisor: the solver is expected to pivot around it.
func NewAdd(a, b *Node) *Node { return &Node{Kind: KindAdd, A: a, B: b} }
func NewSub(a, b *Node) *Node { return &Node{Kind: KindSub, A: a, B: b} }
func NewMul(a, b *Node) *Node { return &Node{Kind: KindMul, A: a, B: b} }
func NewDiv(a, b *Node) *Node { return &Node{Kind: KindDiv, A: a, B: b} }

// borrow wraps n in a non-owning marker; freeing the marker releases only
// the wrapper, never n itself.
func borrow(n *Node) *Node { return &Node{Kind: KindBorrowed, A: n} }

// Free releases n and, recursively, every node it owns. It stops at a
// KindBorrowed marker: only the marker itself is released, not the subtree
// it points at, since that subtree belongs to some other still-live tree
// (in the sketch linker, the constraint's resolved clone of its eq).
func Free(n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindBorrowed {
		n.A = nil
		return
	}
	Free(n.A)
	Free(n.B)
	n.A, n.B = nil, nil
}
