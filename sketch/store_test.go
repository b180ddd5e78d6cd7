// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/expr"
)

func Test_add_parameter_marks_outdated(tst *testing.T) {

	chk.PrintTitle("add_parameter_marks_outdated")

	sk := New(0, 0, 0)
	sk.linkOutdated = false // pretend a relink already happened
	h := sk.AddParameter(3.5)
	if !h.IsValid() {
		tst.Fatal("AddParameter returned the invalid sentinel")
	}
	if !sk.LinkOutdated() {
		tst.Fatal("adding a parameter must set link_outdated")
	}
	p, ok := sk.GetParameterConst(h)
	if !ok || p.Value != 3.5 {
		tst.Fatalf("GetParameterConst: ok=%v p=%v", ok, p)
	}
}

func Test_delete_parameter_does_not_cascade(tst *testing.T) {

	chk.PrintTitle("delete_parameter_does_not_cascade")

	sk := New(0, 0, 0)
	x := sk.AddParameter(1)
	y := sk.AddParameter(2)
	eq := expr.NewSub(expr.NewParamDirect(x), expr.NewConst(1))
	ch, err := sk.AddConstraint(General, eq, nil, nil)
	if err != nil || !ch.IsValid() {
		tst.Fatalf("AddConstraint failed: %v", err)
	}

	sk.DeleteParameter(x)
	if sk.Solve(1e-9, 0) {
		// fine either way numerically, but the important thing is it must
		// not panic; exercise residual evaluation explicitly too.
	}
	c, ok := sk.GetConstraint(ch)
	if !ok {
		tst.Fatal("constraint must still exist after its parameter is deleted")
	}
	r := expr.EvalScoped(c.Eq, constraintScope{sk: sk, c: c})
	chk.Scalar(tst, "dangling subtree", 1e-15, r, -1) // 0 - 1, since x evaluates to 0
	_ = y
}

func Test_add_entity_validates_referential_shape(tst *testing.T) {

	chk.PrintTitle("add_entity_validates_referential_shape")

	sk := New(0, 0, 0)
	x := sk.AddParameter(0)
	y := sk.AddParameter(0)
	pt, err := sk.AddEntity(NewPoint(x, y))
	if err != nil || !pt.IsValid() {
		tst.Fatalf("Point creation failed: %v", err)
	}

	r := sk.AddParameter(1)
	circ, err := sk.AddEntity(NewCircle(pt, r))
	if err != nil || !circ.IsValid() {
		tst.Fatalf("Circle over a Point must succeed: %v", err)
	}

	_, err = sk.AddEntity(NewCircle(r, r)) // r is a Parameter handle, not an Entity
	if err == nil {
		tst.Fatal("Circle centred on a non-Point entity must fail validation")
	}

	_, err = sk.AddEntity(NewLine(pt, circ))
	if err == nil {
		tst.Fatal("Line with a Circle endpoint must fail validation")
	}
}

func Test_stale_handle_is_never_alive_again(tst *testing.T) {

	chk.PrintTitle("stale_handle_is_never_alive_again")

	sk := New(0, 0, 0)
	x := sk.AddParameter(1)
	sk.DeleteParameter(x)
	if _, ok := sk.GetParameterConst(x); ok {
		tst.Fatal("stale handle must not resolve")
	}
	x2 := sk.AddParameter(2)
	if x2.Gen <= x.Gen {
		tst.Fatalf("reused slot must carry a strictly greater generation: old=%d new=%d", x.Gen, x2.Gen)
	}
}

func Test_destroy_frees_constraint_eq_and_row(tst *testing.T) {

	chk.PrintTitle("destroy_frees_constraint_eq_and_row")

	sk := New(0, 0, 0)
	x := sk.AddParameter(1)
	eq := expr.NewSub(expr.NewParamDirect(x), expr.NewConst(1))
	ch, _ := sk.AddConstraint(General, eq, nil, nil)
	sk.Solve(1e-9, 5) // force a relink so dervs/resolved are populated
	c, _ := sk.GetConstraint(ch)
	resolved, dervs := c.resolved, c.dervs
	if resolved == nil || len(dervs) != 1 {
		tst.Fatal("relink must populate the constraint's resolved clone and derivative row")
	}
	if ok := sk.DeleteConstraint(ch); !ok {
		tst.Fatal("DeleteConstraint on a live handle must return true")
	}
	if _, ok := sk.GetConstraint(ch); ok {
		tst.Fatal("constraint must be gone after DeleteConstraint")
	}
	if eq.A != nil || eq.B != nil {
		tst.Fatal("DeleteConstraint must free the constraint's eq tree")
	}
	if resolved.A != nil || dervs[0].A != nil {
		tst.Fatal("DeleteConstraint must free the constraint's solver row")
	}
}
