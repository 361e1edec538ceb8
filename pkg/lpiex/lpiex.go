// Copyright the go-exactlp authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lpiex provides an interface to linear-programming solvers which
// operate in exact rational arithmetic, together with a reference pure-Go
// backend.  Exact solves are orders of magnitude slower than floating-point
// ones and are intended for sparing certification calls, not for every node
// of a branch-and-bound search.
package lpiex

import (
	"errors"
	"fmt"

	"github.com/exactopt/go-exactlp/pkg/rational"
)

// ErrNumerical signals that the backend failed to complete an exact solve.
// Such a failure is fatal to the certification attempt; results are never
// silently approximated.
var ErrNumerical = errors.New("lpiex: solver failure")

// Status describes the outcome of an exact LP solve.
type Status uint8

const (
	// StatusOptimal indicates an optimal solution was found, with exact
	// primal and dual values available.
	StatusOptimal Status = iota
	// StatusInfeasible indicates the LP has no feasible point.
	StatusInfeasible
	// StatusUnbounded indicates the LP objective is unbounded below.
	StatusUnbounded
	// StatusError indicates the solve failed; the accompanying error carries
	// the reason.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}

// Bound is one side of a column or row range.  Whether an infinite bound
// means minus or plus infinity depends on which side it sits: lower bounds
// and left-hand sides extend to minus infinity, upper bounds and right-hand
// sides to plus infinity.
type Bound struct {
	// Infinite indicates no finite bound on this side.
	Infinite bool
	// Value of the bound, meaningful only when finite.
	Value rational.Rational
}

// Finite constructs a finite bound.
func Finite(val rational.Rational) Bound {
	return Bound{false, val}
}

// Unbounded constructs an infinite bound.
func Unbounded() Bound {
	return Bound{Infinite: true}
}

// Problem is an exact rational LP in the form
//
//	minimize    obj · x
//	subject to  lhs ≤ A·x ≤ rhs
//	            lb ≤ x ≤ ub
//
// where A is given in compressed sparse row form: row i owns the entries
// Ind[Beg[i] : Beg[i]+Len[i]] and Val[Beg[i] : Beg[i]+Len[i]].  Explicit
// zero entries are permitted.  Callers solving a maximization problem negate
// the objective.
type Problem struct {
	// Obj holds one objective coefficient per column.
	Obj []rational.Rational
	// Lb and Ub hold the column bounds.
	Lb, Ub []Bound
	// Lhs and Rhs hold the row sides.
	Lhs, Rhs []Bound
	// Beg, Len and Ind describe the sparsity pattern of A.
	Beg, Len, Ind []int
	// Val holds the nonzero (and possibly some zero) entries of A.
	Val []rational.Rational
}

// NumCols returns the number of columns (variables).
func (p *Problem) NumCols() int {
	return len(p.Obj)
}

// NumRows returns the number of rows (constraints).
func (p *Problem) NumRows() int {
	return len(p.Lhs)
}

// Validate applies internal consistency checks to the problem data.
func (p *Problem) Validate() error {
	n, m := p.NumCols(), p.NumRows()
	//
	if len(p.Lb) != n || len(p.Ub) != n {
		return fmt.Errorf("lpiex: %d columns but %d/%d bounds", n, len(p.Lb), len(p.Ub))
	}
	if len(p.Rhs) != m {
		return fmt.Errorf("lpiex: %d left-hand sides but %d right-hand sides", m, len(p.Rhs))
	}
	if len(p.Beg) != m || len(p.Len) != m {
		return fmt.Errorf("lpiex: %d rows but %d/%d matrix offsets", m, len(p.Beg), len(p.Len))
	}
	if len(p.Ind) != len(p.Val) {
		return fmt.Errorf("lpiex: %d indices but %d values", len(p.Ind), len(p.Val))
	}
	//
	for i := 0; i < m; i++ {
		if p.Beg[i] < 0 || p.Len[i] < 0 || p.Beg[i]+p.Len[i] > len(p.Val) {
			return fmt.Errorf("lpiex: row %d spans [%d,%d) outside %d entries",
				i, p.Beg[i], p.Beg[i]+p.Len[i], len(p.Val))
		}
	}
	//
	for k, ind := range p.Ind {
		if ind < 0 || ind >= n {
			return fmt.Errorf("lpiex: entry %d references column %d of %d", k, ind, n)
		}
	}
	// Done
	return nil
}

// Result carries the outcome of an exact solve.  Objval, Primal and Dual are
// populated only for StatusOptimal.
type Result struct {
	// Status of the solve.
	Status Status
	// Objval is the exact optimal objective value.
	Objval rational.Rational
	// Primal holds one exact value per column.
	Primal []rational.Rational
	// Dual holds one exact multiplier per row, following the convention
	// obj = Aᵀ·dual + bound multipliers, so a binding left-hand side yields
	// a nonnegative dual and a binding right-hand side a nonpositive one.
	Dual []rational.Rational
}

// IsOptimal returns true if the solve found an optimal solution.
func (r *Result) IsOptimal() bool {
	return r.Status == StatusOptimal
}

// Solver abstracts an LP solver operating in exact rational arithmetic.
// Solve is a long-running blocking call with no internal cancellation;
// wall-clock limits are the caller's responsibility.  A non-nil error means
// the solve failed and nothing about the problem may be concluded.
type Solver interface {
	// Solve the given problem with its own column bounds.
	Solve(prob *Problem) (*Result, error)
	// SolveWithBounds solves the given problem under node-local column bound
	// overrides.  Either override slice may be nil to keep the problem's own
	// bounds on that side.
	SolveWithBounds(prob *Problem, lb, ub []Bound) (*Result, error)
}
