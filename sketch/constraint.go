// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/sketch/expr"
	"github.com/cpmech/sketch/handle"
)

// MaxSlots bounds how many entity or parameter handles a single
// constraint may index: a fixed-capacity ordered array of up to 16
// entity handles and 16 parameter handles.
const MaxSlots = 16

// ConstraintKind discriminates constraint variants. Only General is
// required by the core; the enum exists so a host can extend it without
// an ABI break.
type ConstraintKind uint8

const (
	// General is the one constraint kind the core requires: an arbitrary
	// expression tree whose root must evaluate to zero. Named constraints
	// (horizontal, parallel, tangent, ...) are host-side sugar built from
	// General plus the expr factories.
	General ConstraintKind = iota

	numConstraintKinds // sentinel; Kind must be < this to be valid
)

// Constraint binds an owned expression tree to concrete entity/parameter
// slots by indirection, so the same Eq template can be reused, with
// different Ents/Pars, across many constraint instances.
type Constraint struct {
	Kind ConstraintKind
	Eq   *expr.Node // owned; freed on constraint delete or sketch destroy, never by a relink

	Ents     [MaxSlots]handle.Handle
	EntCount int
	Pars     [MaxSlots]handle.Handle
	ParCount int

	// Solver-private row, rebuilt by the linker at relink time. resolved
	// is a private expanded clone of Eq (indexed leaves replaced by
	// direct-handle leaves); dervs borrows from resolved, one tree per
	// live parameter, and must be freed before resolved is. dervVals holds
	// the last Jacobian row Solve evaluated from dervs (aliases a row of
	// its working matrix), so a host can inspect the partials a solve
	// last converged or stalled with; nil until Solve's first Jacobian
	// pass after a relink.
	residual float64
	resolved *expr.Node
	dervs    []*expr.Node
	dervVals []float64
}

// AddEnt appends h to the constraint's entity slot array. It reports
// false without modifying the constraint if the array is already full.
func (c *Constraint) AddEnt(h handle.Handle) (idx uint16, ok bool) {
	if c.EntCount >= MaxSlots {
		return 0, false
	}
	c.Ents[c.EntCount] = h
	idx = uint16(c.EntCount)
	c.EntCount++
	return idx, true
}

// AddPar appends h to the constraint's parameter slot array. It reports
// false without modifying the constraint if the array is already full.
func (c *Constraint) AddPar(h handle.Handle) (idx uint16, ok bool) {
	if c.ParCount >= MaxSlots {
		return 0, false
	}
	c.Pars[c.ParCount] = h
	idx = uint16(c.ParCount)
	c.ParCount++
	return idx, true
}

// freeSolverRow releases the derivative trees and the resolved clone they
// borrow from, in that order: derivative trees must be freed before the
// tree they borrow from. Eq itself is never touched; it is owned by the
// constraint, not by the linker.
func (c *Constraint) freeSolverRow() {
	for _, d := range c.dervs {
		expr.Free(d)
	}
	c.dervs = nil
	c.dervVals = nil
	expr.Free(c.resolved)
	c.resolved = nil
}
