// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import "github.com/cpmech/sketch/handle"

// EntityKind discriminates the four geometric shapes an Entity may be.
type EntityKind uint8

const (
	KindPoint EntityKind = iota
	KindLine
	KindCircle
	KindArc
)

// String names an EntityKind for diagnostics.
func (k EntityKind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindCircle:
		return "Circle"
	case KindArc:
		return "Arc"
	}
	return "Unknown"
}

// Entity is a tagged variant over the four geometric shapes a sketch can
// hold: Point, Line, Circle, Arc. Only the fields relevant to Kind are
// meaningful; the rest are zero.
// Entities refer to parameters and other entities by handle, never by
// direct ownership, so the same Point may be shared by many Lines.
type Entity struct {
	Kind EntityKind

	// Point
	X, Y handle.Handle // parameter handles

	// Line
	P1, P2 handle.Handle // entity handles, must resolve to Point

	// Circle
	C handle.Handle // entity handle, must resolve to Point
	R handle.Handle // parameter handle

	// Arc (P1, P2 shared with Line; P3 is Arc-only)
	P3 handle.Handle // entity handle, must resolve to Point
}

// NewPoint returns a Point entity definition referencing parameters x, y.
func NewPoint(x, y handle.Handle) Entity {
	return Entity{Kind: KindPoint, X: x, Y: y}
}

// NewLine returns a Line entity definition referencing endpoint entities
// p1, p2 (each expected to resolve to a Point).
func NewLine(p1, p2 handle.Handle) Entity {
	return Entity{Kind: KindLine, P1: p1, P2: p2}
}

// NewCircle returns a Circle entity definition with centre entity c
// (expected to resolve to a Point) and radius parameter r.
func NewCircle(c, r handle.Handle) Entity {
	return Entity{Kind: KindCircle, C: c, R: r}
}

// NewArc returns an Arc entity definition over three point entities.
func NewArc(p1, p2, p3 handle.Handle) Entity {
	return Entity{Kind: KindArc, P1: p1, P2: p2, P3: p3}
}
