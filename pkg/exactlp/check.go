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

// CheckSol re-verifies a solution against the exact problem data: every
// variable must lie within its exact global bounds and satisfy its
// integrality requirement, and every row's activity must lie within the
// exact row sides.  All comparisons are exact, so a violation by the
// smallest representable rational epsilon is detected.  Infeasibility is a
// normal result, not an error; with printReason set, the first violation of
// each kind is reported.
func (p *Constraint) CheckSol(sol *solex.Solution, printReason bool) bool {
	p.ensureLive()
	//
	data := p.data
	if sol.NumVars() != data.NumVars() {
		if printReason {
			log.Infof("solution has %d values but problem has %d variables", sol.NumVars(), data.NumVars())
		}
		//
		return false
	}
	//
	feasible := true
	// Variable bounds and integrality.
	for j := 0; j < data.NumVars(); j++ {
		val := sol.Value(j)
		//
		if !data.IsNegInfinity(data.Lb[j]) && val.Cmp(data.Lb[j]) < 0 {
			feasible = false
			//
			if printReason {
				log.Infof("variable <%s>: value %s violates lower bound %s",
					data.varName(j), val, data.Lb[j])
			}
		}
		if !data.IsPosInfinity(data.Ub[j]) && val.Cmp(data.Ub[j]) > 0 {
			feasible = false
			//
			if printReason {
				log.Infof("variable <%s>: value %s violates upper bound %s",
					data.varName(j), val, data.Ub[j])
			}
		}
		if data.isIntegral(j) && !val.IsInt() {
			feasible = false
			//
			if printReason {
				log.Infof("variable <%s>: value %s violates integrality", data.varName(j), val)
			}
		}
	}
	// Row activities against the exact sides.
	for i := 0; i < data.NumRows(); i++ {
		activity := p.rowActivity(sol, i)
		//
		if !data.IsNegInfinity(data.Lhs[i]) && activity.Cmp(data.Lhs[i]) < 0 {
			feasible = false
			//
			if printReason {
				log.Infof("row %d: activity %s violates left hand side %s", i, activity, data.Lhs[i])
			}
		}
		if !data.IsPosInfinity(data.Rhs[i]) && activity.Cmp(data.Rhs[i]) > 0 {
			feasible = false
			//
			if printReason {
				log.Infof("row %d: activity %s violates right hand side %s", i, activity, data.Rhs[i])
			}
		}
	}
	//
	return feasible
}

// CheckBestSol re-verifies the best solution found so far in exact
// arithmetic, without touching the store.  It is used to double check the
// incumbent in order to validate the presolving process: a violation here
// signals a soundness bug upstream, which is why the result is reported to
// the caller rather than acted upon.  An error is reported only when no
// solution exists to check.
func (p *Constraint) CheckBestSol(printReason bool) (bool, error) {
	p.ensureLive()
	//
	best := p.store.Best()
	if best == nil {
		return false, fmt.Errorf("exactlp: no solution to check")
	}
	//
	return p.CheckSol(best, printReason), nil
}

// rowActivity computes the exact activity of row i under the given solution.
func (p *Constraint) rowActivity(sol *solex.Solution, i int) rational.Rational {
	data := p.data
	activity := rational.Zero()
	//
	for k := data.Beg[i]; k < data.Beg[i]+data.Len[i]; k++ {
		if data.Val[k].IsZero() {
			continue
		}
		//
		activity = activity.Add(data.Val[k].Mul(sol.Value(data.Ind[k])))
	}
	//
	return activity
}
