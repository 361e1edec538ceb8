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
package exactlp

import (
	"fmt"

	"github.com/exactopt/go-exactlp/pkg/rational"
	"github.com/exactopt/go-exactlp/pkg/solex"
	log "github.com/sirupsen/logrus"
)

// State tracks the lifecycle of a constraint instance.  The constraint is a
// passive data holder plus query surface: it accumulates and serves exact
// facts while active, and releases its data when freed.
type State uint8

const (
	// StateCreated means the constraint holds validated data but solving
	// has not begun.
	StateCreated State = iota
	// StateActive means the constraint is serving queries during solving.
	StateActive
	// StateFreed means the data arrays have been released; any further
	// operation is a programmer error.
	StateFreed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateActive:
		return "active"
	default:
		return "freed"
	}
}

// Constraint is an exactlp constraint instance: the single owner of the
// exact problem data and of the exact solution store for one problem.  All
// methods are driven synchronously by the (external) search driver; nothing
// here is safe for concurrent mutation.
type Constraint struct {
	name  string
	data  *ProblemData
	flags Flags
	store *solex.Store
	state State
}

// CreateConstraint builds and validates an exactlp constraint from the full
// exact problem data plus the constraint-role flags.  The data is deep
// copied, so the constraint owns it exclusively.  Malformed sparse-matrix
// data aborts construction with an error wrapping ErrInconsistentData.
func CreateConstraint(name string, data *ProblemData, flags Flags) (*Constraint, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: missing problem data", ErrInconsistentData)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	//
	log.Debugf("exactlp constraint %q: %d vars, %d rows, %d nonzeros (%s)",
		name, data.NumVars(), data.NumRows(), data.NumNonz(), data.ObjSense)
	//
	return &Constraint{
		name:  name,
		data:  data.clone(),
		flags: flags,
		store: solex.NewStore(),
	}, nil
}

// Name returns the name of this constraint.
func (p *Constraint) Name() string {
	return p.name
}

// Flags returns the constraint-role configuration.
func (p *Constraint) Flags() Flags {
	return p.flags
}

// State returns the lifecycle state of this constraint.
func (p *Constraint) State() State {
	return p.state
}

// Activate marks the beginning of solving.
func (p *Constraint) Activate() {
	p.ensureLive()
	p.state = StateActive
}

// Free releases the problem data and solution store.  Any operation on a
// freed constraint panics.
func (p *Constraint) Free() {
	p.ensureLive()
	p.store.Clear()
	p.data = nil
	p.store = nil
	p.state = StateFreed
}

// ensureLive guards every operation against use after free.
func (p *Constraint) ensureLive() {
	if p.state == StateFreed {
		panic("exactlp: constraint used after free")
	}
}

// Data exposes the exact problem data for read-only use.
func (p *Constraint) Data() *ProblemData {
	p.ensureLive()
	//
	return p.data
}

// IsPosInfinity determines whether an exact value is treated as plus
// infinity by this constraint.
func (p *Constraint) IsPosInfinity(val rational.Rational) bool {
	p.ensureLive()
	//
	return p.data.IsPosInfinity(val)
}

// IsNegInfinity determines whether an exact value is treated as minus
// infinity by this constraint.
func (p *Constraint) IsNegInfinity(val rational.Rational) bool {
	p.ensureLive()
	//
	return p.data.IsNegInfinity(val)
}

// Float64Relax converts an exact value into a float64 in the given rounding
// direction, mapping sentinel-encoded infinities onto the floating-point
// infinities regardless of the mode.  This is the conversion an external
// driver uses to build a floating-point relaxation of the exact data.
func (p *Constraint) Float64Relax(val rational.Rational, mode rational.RoundingMode) float64 {
	p.ensureLive()
	//
	return p.data.Float64Relax(val, mode)
}

// Float64Approx converts an exact value into the nearest float64, mapping
// sentinel-encoded infinities onto the floating-point infinities.
func (p *Constraint) Float64Approx(val rational.Rational) float64 {
	p.ensureLive()
	//
	return p.data.Float64Approx(val)
}

// VarObj returns the exact objective coefficient of a variable.
func (p *Constraint) VarObj(index int) rational.Rational {
	p.ensureLive()
	//
	return p.data.Obj[index]
}

// VarLbGlobal returns the exact global lower bound of a variable with
// respect to this constraint's data, not the floating relaxation's possibly
// tightened local bounds.
func (p *Constraint) VarLbGlobal(index int) rational.Rational {
	p.ensureLive()
	//
	return p.data.Lb[index]
}

// VarUbGlobal returns the exact global upper bound of a variable with
// respect to this constraint's data.
func (p *Constraint) VarUbGlobal(index int) rational.Rational {
	p.ensureLive()
	//
	return p.data.Ub[index]
}

// NSols returns the number of feasible exact primal solutions stored.
func (p *Constraint) NSols() int {
	p.ensureLive()
	//
	return p.store.Count()
}

// BestSol returns the best feasible exact primal solution found so far, or
// nil if none has been found.
func (p *Constraint) BestSol() *solex.Solution {
	p.ensureLive()
	//
	return p.store.Best()
}

// BestSolObj returns the exact objective value of the best solution with
// respect to the original problem.  The second result is false when no
// solution has been found yet.
func (p *Constraint) BestSolObj() (rational.Rational, bool) {
	p.ensureLive()
	//
	best := p.store.Best()
	if best == nil {
		return rational.Rational{}, false
	}
	//
	return best.ObjOrig(), true
}

// TryAddSol offers a candidate assignment to the solution store.  The
// candidate is checked for exact feasibility first and rejected on any
// violation; a feasible candidate is accepted iff it improves on the
// incumbent.  An error is reported only for malformed input.
func (p *Constraint) TryAddSol(values []rational.Rational) (bool, error) {
	p.ensureLive()
	//
	if len(values) != p.data.NumVars() {
		return false, fmt.Errorf("%w: %d values for %d variables", ErrInconsistentData, len(values), p.data.NumVars())
	}
	//
	sol := p.newSolution(values)
	if !p.CheckSol(sol, false) {
		return false, nil
	}
	//
	return p.store.Insert(sol), nil
}

// newSolution builds an exact solution from an assignment, computing both
// objective values exactly.
func (p *Constraint) newSolution(values []rational.Rational) *solex.Solution {
	trans := rational.Zero()
	for j, val := range values {
		trans = trans.Add(p.data.Obj[j].Mul(val))
	}
	//
	return solex.NewSolution(values, trans, p.origObjval(trans))
}
