// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/expr"
	"github.com/cpmech/sketch/handle"
)

func Test_relink_builds_dense_vectors_in_slot_order(tst *testing.T) {

	chk.PrintTitle("relink_builds_dense_vectors_in_slot_order")

	sk := New(0, 0, 0)
	a := sk.AddParameter(1)
	b := sk.AddParameter(2)
	c := sk.AddParameter(3)

	eq1 := expr.NewSub(expr.NewParamDirect(a), expr.NewConst(1))
	eq2 := expr.NewSub(expr.NewParamDirect(b), expr.NewConst(2))
	ch1, _ := sk.AddConstraint(General, eq1, nil, nil)
	ch2, _ := sk.AddConstraint(General, eq2, nil, nil)

	sk.relink()

	if len(sk.liveParams) != 3 {
		tst.Fatalf("liveParams len = %d, want 3", len(sk.liveParams))
	}
	if sk.liveParams[0] != a || sk.liveParams[1] != b || sk.liveParams[2] != c {
		tst.Fatal("liveParams must be in slot-index order")
	}
	if sk.liveConstraints[0] != ch1 || sk.liveConstraints[1] != ch2 {
		tst.Fatal("liveConstraints must be in slot-index order")
	}

	c1, _ := sk.GetConstraint(ch1)
	if len(c1.dervs) != 3 {
		tst.Fatalf("constraint 1 must carry one derivative per live parameter, got %d", len(c1.dervs))
	}
	// d(a-1)/da == 1, d(a-1)/db == 0.
	chk.Scalar(tst, "d(a-1)/da", 1e-15, expr.EvalFree(c1.dervs[0], sk), 1)
	chk.Scalar(tst, "d(a-1)/db", 1e-15, expr.EvalFree(c1.dervs[1], sk), 0)
}

func Test_relink_expands_indexed_leaves_before_differentiating(tst *testing.T) {

	chk.PrintTitle("relink_expands_indexed_leaves_before_differentiating")

	sk := New(0, 0, 0)
	x := sk.AddParameter(3)
	target := sk.AddParameter(5)

	// eq uses an indexed ParamIdx(0) leaf bound to x via the constraint's
	// Pars array, instead of a direct handle; differentiating w.r.t. x
	// must still yield 1, which requires the link-time index expansion —
	// a derivative built straight off the unresolved ParamIdx leaf would
	// conservatively be 0.
	eq := expr.NewSub(expr.NewParamIdx(0), expr.NewParamDirect(target))
	ch, err := sk.AddConstraint(General, eq, nil, []handle.Handle{x})
	if err != nil {
		tst.Fatalf("AddConstraint failed: %v", err)
	}

	sk.relink()
	c, _ := sk.GetConstraint(ch)

	var dxIdx int
	for j, ph := range sk.liveParams {
		if ph == x {
			dxIdx = j
		}
	}
	chk.Scalar(tst, "d(ParamIdx(x)-target)/dx", 1e-15, expr.EvalFree(c.dervs[dxIdx], sk), 1)
}
