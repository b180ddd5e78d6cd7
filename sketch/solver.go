// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/sketch/expr"
)

// Solve relinks the sketch if it is dirty, then runs the Gauss-Newton
// loop: evaluate residuals, evaluate the symbolic Jacobian,
// assemble and solve the normal equations by pivoted Gaussian
// elimination, and apply the correction. It returns true iff every live
// constraint's residual is within tol in absolute value, stopping at the
// first iteration (up to and including maxSteps) where that holds.
// maxSteps == 0 means "test convergence only, do not step."
//
// Parameters are mutated in place regardless of the outcome, unless
// s.Cfg.RollbackOnFailure is set, in which case a non-converged solve
// restores every live parameter to its value when Solve was called.
func (s *Sketch) Solve(tol float64, maxSteps int) bool {

	if s.linkOutdated {
		s.relink()
	}

	m := len(s.liveConstraints)
	n := len(s.liveParams)
	if m == 0 || n == 0 {
		return true // an empty system is vacuously satisfied
	}

	var snapshot []float64
	if s.Cfg.RollbackOnFailure {
		snapshot = make([]float64, n)
		for j, ph := range s.liveParams {
			snapshot[j], _ = s.ParamValue(ph)
		}
	}

	jac := la.MatAlloc(m, n)
	residuals := make([]float64, m)
	delta := make([]float64, n)

	converged := false
	for step := 0; ; step++ {

		// 1. residuals.
		maxAbs := 0.0
		for i, ch := range s.liveConstraints {
			c, _ := s.constraints.Get(ch)
			c.residual = expr.EvalScoped(c.Eq, constraintScope{sk: s, c: c})
			residuals[i] = c.residual
			if a := math.Abs(c.residual); a > maxAbs {
				maxAbs = a
			}
		}
		if s.Cfg.Verbose {
			io.Pf("sketch: step %d residual: max|r|=%.3e, |r|=%.3e\n", step, maxAbs, la.VecNorm(residuals))
		}
		if maxAbs <= tol {
			converged = true
			break
		}
		if step >= maxSteps {
			converged = false
			break
		}

		// 2. Jacobian, one row per live constraint; each row is also kept on
		// the constraint itself so a host can inspect the partials a solve
		// last converged (or stalled) with.
		for i, ch := range s.liveConstraints {
			c, _ := s.constraints.Get(ch)
			for j := range s.liveParams {
				jac[i][j] = expr.EvalFree(c.dervs[j], s)
			}
			c.dervVals = jac[i]
		}

		// 3. normal matrix N = J·Jᵀ, rhs = r.
		rhs := append([]float64(nil), residuals...)
		for r := 0; r < m; r++ {
			for c := 0; c < m; c++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					a, b := jac[r][k], jac[c][k]
					if a == 0 || b == 0 {
						continue // exact-zero skip, not an epsilon test
					}
					sum += a * b
				}
				s.normal.set(r, c, sum)
			}
		}

		// 4. Gaussian elimination with partial pivoting.
		eps := s.Cfg.PivotEps
		if eps == 0 {
			eps = DefaultConfig().PivotEps
		}
		for k := 0; k < m; k++ {
			p := k
			best := math.Abs(s.normal.at(k, k))
			for cand := k + 1; cand < m; cand++ {
				if v := math.Abs(s.normal.at(cand, k)); v > best {
					best = v
					p = cand
				}
			}
			if best < eps {
				if s.Cfg.Verbose {
					io.Pfyel("sketch: small pivot at row %d (|N|=%.3e < %.3e), skipping\n", k, best, eps)
				}
				continue // deliberate best-effort policy for rank-deficient systems
			}
			s.normal.swapRows(k, p)
			rhs[k], rhs[p] = rhs[p], rhs[k]
			for t := k + 1; t < m; t++ {
				coeff := s.normal.at(t, k) / s.normal.at(k, k)
				if coeff == 0 {
					continue
				}
				for c := k; c < m; c++ {
					s.normal.set(t, c, s.normal.at(t, c)-coeff*s.normal.at(k, c))
				}
				rhs[t] -= coeff * rhs[k]
			}
		}

		// 5. back substitution.
		y := s.itrmSol
		for k := m - 1; k >= 0; k-- {
			if math.Abs(s.normal.at(k, k)) < eps {
				y[k] = 0
				continue
			}
			sum := 0.0
			for l := k + 1; l < m; l++ {
				sum += y[l] * s.normal.at(k, l)
			}
			y[k] = (rhs[k] - sum) / s.normal.at(k, k)
		}

		// 6. parameter update: Δ = Jᵀ·y; param_j -= Δ_j.
		for j := range delta {
			delta[j] = 0
		}
		la.MatTrVecMulAdd(delta, 1.0, jac, y)
		for j, ph := range s.liveParams {
			p, _ := s.params.Get(ph)
			p.Value -= delta[j]
		}
	}

	if !converged && s.Cfg.RollbackOnFailure {
		for j, ph := range s.liveParams {
			p, _ := s.params.Get(ph)
			p.Value = snapshot[j]
		}
	}
	return converged
}
