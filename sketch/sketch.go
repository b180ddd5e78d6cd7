// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/sketch/expr"
	"github.com/cpmech/sketch/handle"
)

// Sketch is the top-level container: three generational tables
// (parameters, entities, constraints), a dirty flag, and the solver's
// scratch state.
type Sketch struct {
	Cfg Config

	params      *handle.Table[Parameter]
	entities    *handle.Table[Entity]
	constraints *handle.Table[Constraint]

	linkOutdated bool

	// Solver scratch, trustworthy only while !linkOutdated. Rebuilt from
	// scratch by relink.
	liveConstraints []handle.Handle
	liveParams      []handle.Handle
	normal          *denseMatrix
	itrmSol         []float64
}

// New constructs an empty Sketch with initial table capacities sized for
// nParams parameters, nEntities entities and nConstraints constraints.
// Zero is an acceptable capacity for any of the three; the tables grow on
// demand.
func New(nParams, nEntities, nConstraints int) *Sketch {
	return &Sketch{
		Cfg:          DefaultConfig(),
		params:       handle.New[Parameter](nParams),
		entities:     handle.New[Entity](nEntities),
		constraints:  handle.New[Constraint](nConstraints),
		linkOutdated: true,
	}
}

// Destroy releases every resource the sketch owns, including each
// constraint's Eq tree and its derivative matrix. After
// Destroy the Sketch must not be used again.
func (s *Sketch) Destroy() {
	s.constraints.Each(func(_ handle.Handle, c *Constraint) {
		c.freeSolverRow()
		expr.Free(c.Eq)
		c.Eq = nil
	})
	s.params = handle.New[Parameter](0)
	s.entities = handle.New[Entity](0)
	s.constraints = handle.New[Constraint](0)
	s.liveConstraints = nil
	s.liveParams = nil
	s.normal = nil
	s.itrmSol = nil
	s.linkOutdated = true
}

// LinkOutdated reports whether the solver's dense scratch view must be
// rebuilt before it can be trusted.
func (s *Sketch) LinkOutdated() bool { return s.linkOutdated }

// --- Parameters -------------------------------------------------------

// AddParameter creates a new free scalar parameter with initial value v
// and returns its handle, or the invalid sentinel on allocation failure.
func (s *Sketch) AddParameter(v float64) handle.Handle {
	h := s.params.Create(Parameter{Value: v})
	if h.IsValid() {
		s.linkOutdated = true
	}
	return h
}

// DeleteParameter destroys the parameter named by h. Deletion never
// cascades: any constraint or entity still
// referencing h keeps the (now stale) handle, and evaluation of that
// subtree silently yields 0.
func (s *Sketch) DeleteParameter(h handle.Handle) bool {
	ok := s.params.Destroy(h)
	if ok {
		s.linkOutdated = true
	}
	return ok
}

// GetParameter returns a mutable pointer to h's Parameter, or (nil,
// false) if h is stale.
func (s *Sketch) GetParameter(h handle.Handle) (*Parameter, bool) {
	return s.params.Get(h)
}

// GetParameterConst is the read-only counterpart of GetParameter.
func (s *Sketch) GetParameterConst(h handle.Handle) (Parameter, bool) {
	return s.params.GetConst(h)
}

// ParamValue implements expr.ParamSource: it resolves a direct parameter
// handle to its current value, or (0, false) if h is stale.
func (s *Sketch) ParamValue(h handle.Handle) (float64, bool) {
	p, ok := s.params.Get(h)
	if !ok {
		return 0, false
	}
	return p.Value, true
}

// --- Entities -----------------------------------------------------------

// AddEntity validates def against the referential shape a sketch
// requires (a Line's endpoints, a Circle's centre, and an Arc's three
// points must each resolve to a live Point) and, if valid, creates it. It
// returns the invalid sentinel and a non-nil error if validation fails.
func (s *Sketch) AddEntity(def Entity) (handle.Handle, error) {
	switch def.Kind {
	case KindPoint:
		// no referential requirement beyond the parameter handles being
		// whatever the caller supplied; a stale X/Y simply evaluates to 0
		// later.
	case KindLine:
		if !s.isPoint(def.P1) || !s.isPoint(def.P2) {
			return handle.Invalid, chk.Err("sketch: Line requires p1 and p2 to resolve to a Point")
		}
	case KindCircle:
		if !s.isPoint(def.C) {
			return handle.Invalid, chk.Err("sketch: Circle requires c to resolve to a Point")
		}
	case KindArc:
		if !s.isPoint(def.P1) || !s.isPoint(def.P2) || !s.isPoint(def.P3) {
			return handle.Invalid, chk.Err("sketch: Arc requires p1, p2 and p3 to resolve to a Point")
		}
	default:
		return handle.Invalid, chk.Err("sketch: unknown entity kind %v", def.Kind)
	}
	h := s.entities.Create(def)
	if h.IsValid() {
		s.linkOutdated = true
	}
	return h, nil
}

// DeleteEntity destroys the entity named by h. As with parameters,
// deletion never cascades; any Line/Circle/Arc/constraint still
// referencing h keeps a stale handle.
func (s *Sketch) DeleteEntity(h handle.Handle) bool {
	ok := s.entities.Destroy(h)
	if ok {
		s.linkOutdated = true
	}
	return ok
}

// GetEntity returns a mutable pointer to h's Entity, or (nil, false) if h
// is stale.
func (s *Sketch) GetEntity(h handle.Handle) (*Entity, bool) {
	return s.entities.Get(h)
}

// GetEntityConst is the read-only counterpart of GetEntity.
func (s *Sketch) GetEntityConst(h handle.Handle) (Entity, bool) {
	return s.entities.GetConst(h)
}

func (s *Sketch) isPoint(h handle.Handle) bool {
	_, ok := s.pointOf(h)
	return ok
}

func (s *Sketch) pointOf(h handle.Handle) (*Entity, bool) {
	e, ok := s.entities.Get(h)
	if !ok || e.Kind != KindPoint {
		return nil, false
	}
	return e, true
}

func (s *Sketch) circleOf(h handle.Handle) (*Entity, bool) {
	e, ok := s.entities.Get(h)
	if !ok || e.Kind != KindCircle {
		return nil, false
	}
	return e, true
}

// --- Constraints --------------------------------------------------------

// AddConstraint validates and creates a constraint: eq must be non-nil
// and kind must be a recognised ConstraintKind. ents and pars
// become the constraint's ordered slot arrays; both must fit within
// MaxSlots entries.
func (s *Sketch) AddConstraint(kind ConstraintKind, eq *expr.Node, ents, pars []handle.Handle) (handle.Handle, error) {
	if eq == nil {
		return handle.Invalid, chk.Err("sketch: constraint requires a non-null eq")
	}
	if kind >= numConstraintKinds {
		return handle.Invalid, chk.Err("sketch: constraint kind %v out of range", kind)
	}
	if len(ents) > MaxSlots {
		return handle.Invalid, chk.Err("sketch: constraint entity count %d exceeds MaxSlots=%d", len(ents), MaxSlots)
	}
	if len(pars) > MaxSlots {
		return handle.Invalid, chk.Err("sketch: constraint parameter count %d exceeds MaxSlots=%d", len(pars), MaxSlots)
	}
	c := Constraint{Kind: kind, Eq: eq}
	for _, e := range ents {
		c.AddEnt(e)
	}
	for _, p := range pars {
		c.AddPar(p)
	}
	h := s.constraints.Create(c)
	if h.IsValid() {
		s.linkOutdated = true
	} else {
		expr.Free(eq) // creation failed: nobody else will ever own eq
	}
	return h, nil
}

// DeleteConstraint destroys the constraint named by h, freeing its
// derivative matrix and its owned Eq tree.
func (s *Sketch) DeleteConstraint(h handle.Handle) bool {
	c, ok := s.constraints.Get(h)
	if !ok {
		return false
	}
	c.freeSolverRow()
	expr.Free(c.Eq)
	c.Eq = nil
	s.constraints.Destroy(h)
	s.linkOutdated = true
	return true
}

// GetConstraint returns a mutable pointer to h's Constraint, or (nil,
// false) if h is stale.
func (s *Sketch) GetConstraint(h handle.Handle) (*Constraint, bool) {
	return s.constraints.Get(h)
}

// NumParameters, NumEntities and NumConstraints report the current live
// counts in each table.
func (s *Sketch) NumParameters() int  { return s.params.Len() }
func (s *Sketch) NumEntities() int    { return s.entities.Len() }
func (s *Sketch) NumConstraints() int { return s.constraints.Len() }
