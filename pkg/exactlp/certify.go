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

	"github.com/exactopt/go-exactlp/pkg/lpiex"
	"github.com/exactopt/go-exactlp/pkg/rational"
	"github.com/exactopt/go-exactlp/pkg/util"
	log "github.com/sirupsen/logrus"
)

// LPRelaxation builds the exact LP over this constraint's data, restricted
// to the given node-local bounds.  Either bound slice may be nil to keep the
// global bounds on that side; local bounds use the same sentinel convention
// as the problem data.  Unbounded sides become explicitly infinite bounds in
// the LP.
func (p *Constraint) LPRelaxation(localLb, localUb []rational.Rational) (*lpiex.Problem, error) {
	p.ensureLive()
	//
	data := p.data
	n := data.NumVars()
	//
	lb, ub := data.Lb, data.Ub
	if localLb != nil {
		if len(localLb) != n {
			return nil, fmt.Errorf("%w: %d local lower bounds for %d variables", ErrInconsistentData, len(localLb), n)
		}
		lb = localLb
	}
	if localUb != nil {
		if len(localUb) != n {
			return nil, fmt.Errorf("%w: %d local upper bounds for %d variables", ErrInconsistentData, len(localUb), n)
		}
		ub = localUb
	}
	//
	prob := &lpiex.Problem{
		Obj: append([]rational.Rational(nil), data.Obj...),
		Lb:  make([]lpiex.Bound, n),
		Ub:  make([]lpiex.Bound, n),
		Lhs: make([]lpiex.Bound, data.NumRows()),
		Rhs: make([]lpiex.Bound, data.NumRows()),
		Beg: append([]int(nil), data.Beg...),
		Len: append([]int(nil), data.Len...),
		Ind: append([]int(nil), data.Ind...),
		Val: append([]rational.Rational(nil), data.Val...),
	}
	//
	for j := 0; j < n; j++ {
		prob.Lb[j] = p.lowerBound(lb[j])
		prob.Ub[j] = p.upperBound(ub[j])
	}
	for i := 0; i < data.NumRows(); i++ {
		prob.Lhs[i] = p.lowerBound(data.Lhs[i])
		prob.Rhs[i] = p.upperBound(data.Rhs[i])
	}
	// Done
	return prob, nil
}

// lowerBound maps a sentinel-encoded lower bound or left-hand side onto an
// explicit LP bound.
func (p *Constraint) lowerBound(val rational.Rational) lpiex.Bound {
	if p.data.IsNegInfinity(val) {
		return lpiex.Unbounded()
	}
	//
	return lpiex.Finite(val)
}

// upperBound maps a sentinel-encoded upper bound or right-hand side onto an
// explicit LP bound.
func (p *Constraint) upperBound(val rational.Rational) lpiex.Bound {
	if p.data.IsPosInfinity(val) {
		return lpiex.Unbounded()
	}
	//
	return lpiex.Finite(val)
}

// CertifyNodeBound re-solves the LP relaxation at a branch-and-bound node in
// exact rational arithmetic, restricted to the node's local bounds.  This is
// invoked sparingly, when the floating-point relaxation is insufficiently
// safe: the call blocks for as long as the exact solve takes, and a solver
// failure is fatal to the certification attempt.
func (p *Constraint) CertifyNodeBound(solver lpiex.Solver, localLb, localUb []rational.Rational) (*lpiex.Result, error) {
	prob, err := p.LPRelaxation(localLb, localUb)
	if err != nil {
		return nil, err
	}
	//
	stats := util.NewPerfStats()
	res, err := solver.Solve(prob)
	stats.Log("exact LP certification")
	//
	if err != nil {
		return nil, err
	}
	//
	return res, nil
}

// SolveExact solves the root LP relaxation exactly and, when an optimal
// solution is found, feeds it through the exact feasibility check into the
// solution store.  The LP optimum is only stored when it happens to satisfy
// the integrality requirements as well; otherwise it still certifies the
// exact dual bound.
func (p *Constraint) SolveExact(solver lpiex.Solver) (*lpiex.Result, error) {
	res, err := p.CertifyNodeBound(solver, nil, nil)
	if err != nil {
		return nil, err
	}
	//
	if res.IsOptimal() {
		accepted, err := p.TryAddSol(res.Primal)
		if err != nil {
			return nil, err
		}
		//
		if accepted {
			log.Debugf("exact LP optimum %s accepted as incumbent", res.Objval)
		}
	}
	//
	return res, nil
}
