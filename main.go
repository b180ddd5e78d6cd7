// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// command sketch-demo builds a handful of the worked examples from the
// constraint solver's specification and solves them, printing the
// converged state. It takes no flags and reads no files: sketch
// serialization and a CLI proper are host concerns, out of scope for
// this core (see SPEC_FULL.md §1).
package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/sketch/expr"
	"github.com/cpmech/sketch/sketch"
)

func main() {
	io.Pf("\n--- coincident points ---------------------------------\n")
	demoCoincidentPoints()

	io.Pf("\n--- fixed distance ---------------------------------------\n")
	demoFixedDistance()

	io.Pf("\n--- horizontal line --------------------------------------\n")
	demoHorizontalLine()
}

// demoCoincidentPoints constrains two points to share a position.
func demoCoincidentPoints() {
	sk := sketch.New(4, 2, 2)
	defer sk.Destroy()

	x1 := sk.AddParameter(0)
	y1 := sk.AddParameter(0)
	x2 := sk.AddParameter(10)
	y2 := sk.AddParameter(0)

	eqX := expr.NewSub(expr.NewParamDirect(x1), expr.NewParamDirect(x2))
	eqY := expr.NewSub(expr.NewParamDirect(y1), expr.NewParamDirect(y2))
	sk.AddConstraint(sketch.General, eqX, nil, nil)
	sk.AddConstraint(sketch.General, eqY, nil, nil)

	ok := sk.Solve(1e-6, 32)
	px1, _ := sk.GetParameterConst(x1)
	py1, _ := sk.GetParameterConst(y1)
	px2, _ := sk.GetParameterConst(x2)
	py2, _ := sk.GetParameterConst(y2)
	io.Pf("converged=%v  p1=(%.6f,%.6f)  p2=(%.6f,%.6f)\n", ok, px1.Value, py1.Value, px2.Value, py2.Value)
}

// demoFixedDistance holds two points a fixed distance apart.
func demoFixedDistance() {
	sk := sketch.New(4, 2, 1)
	defer sk.Destroy()

	x1 := sk.AddParameter(0)
	y1 := sk.AddParameter(0)
	x2 := sk.AddParameter(1)
	y2 := sk.AddParameter(0)

	dx := expr.NewSub(expr.NewParamDirect(x2), expr.NewParamDirect(x1))
	dy := expr.NewSub(expr.NewParamDirect(y2), expr.NewParamDirect(y1))
	dist := expr.NewSqrt(expr.NewAdd(expr.NewSqr(dx), expr.NewSqr(dy)))
	eq := expr.NewSub(dist, expr.NewConst(5))
	sk.AddConstraint(sketch.General, eq, nil, nil)

	ok := sk.Solve(1e-6, 32)
	px1, _ := sk.GetParameterConst(x1)
	py1, _ := sk.GetParameterConst(y1)
	px2, _ := sk.GetParameterConst(x2)
	py2, _ := sk.GetParameterConst(y2)
	io.Pf("converged=%v  p1=(%.6f,%.6f)  p2=(%.6f,%.6f)\n", ok, px1.Value, py1.Value, px2.Value, py2.Value)
}

// demoHorizontalLine forces two points to share a y coordinate.
func demoHorizontalLine() {
	sk := sketch.New(4, 2, 1)
	defer sk.Destroy()

	x1 := sk.AddParameter(0)
	y1 := sk.AddParameter(0)
	x2 := sk.AddParameter(10)
	y2 := sk.AddParameter(3)

	eq := expr.NewSub(expr.NewParamDirect(y1), expr.NewParamDirect(y2))
	sk.AddConstraint(sketch.General, eq, nil, nil)

	ok := sk.Solve(1e-6, 32)
	px1, _ := sk.GetParameterConst(x1)
	py1, _ := sk.GetParameterConst(y1)
	px2, _ := sk.GetParameterConst(x2)
	py2, _ := sk.GetParameterConst(y2)
	io.Pf("converged=%v  p1=(%.6f,%.6f)  p2=(%.6f,%.6f)\n", ok, px1.Value, py1.Value, px2.Value, py2.Value)
}
