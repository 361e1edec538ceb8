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
	"math"

	"github.com/exactopt/go-exactlp/pkg/rational"
	"github.com/exactopt/go-exactlp/pkg/solex"
)

// objFactor returns the exact factor objsense * objscale of the objective
// transform.
func (p *ProblemData) objFactor() rational.Rational {
	factor := rational.FromInt64(int64(p.ObjSense))
	if p.ObjNeedsScaling {
		factor = factor.Mul(p.ObjScale)
	}
	//
	return factor
}

// objOffset returns the exact offset of the objective transform.
func (p *ProblemData) objOffset() rational.Rational {
	if p.ObjNeedsScaling {
		return p.ObjOffset
	}
	//
	return rational.Zero()
}

// origObjval maps an exact internal (transformed-space) objective value onto
// the original problem space: external = objsense * objscale * (internal +
// objoffset).  The computation is exact, so no rounding direction arises.
func (p *Constraint) origObjval(internal rational.Rational) rational.Rational {
	return p.data.objFactor().Mul(internal.Add(p.data.objOffset()))
}

// SolTransObj returns the exact objective value of a solution in transformed
// space.
func (p *Constraint) SolTransObj(sol *solex.Solution) rational.Rational {
	p.ensureLive()
	//
	return sol.ObjTrans()
}

// SolOrigObj returns the exact objective value of a solution with respect to
// the original problem.
func (p *Constraint) SolOrigObj(sol *solex.Solution) rational.Rational {
	p.ensureLive()
	//
	return sol.ObjOrig()
}

// ExternSafeObjval returns a safe external value of the given internal
// objective value: a lower approximation of its exact external image when
// lowerbound is set, and an upper approximation otherwise.  Callers state
// the side the external value must be valid on; for the usual minimisation
// setup a valid internal lower bound yields a valid external lower bound.
// The scale-and-shift transform is applied
// in exact rational arithmetic and rounded exactly once, in the direction
// that preserves the bound's validity; the rounding direction is forced
// internally and cannot be perturbed by ambient floating-point state.
//
// Every bound reported outward or used to prune the search tree must pass
// through this conversion, so that floating-point relaxation error can never
// invalidate a pruning decision or a reported gap.
func (p *Constraint) ExternSafeObjval(objval float64, lowerbound bool) float64 {
	p.ensureLive()
	//
	factor := p.data.objFactor()
	// Infinite internal values map straight through the transform's sign.
	if math.IsInf(objval, 0) {
		if factor.Sign() < 0 {
			return -objval
		}
		//
		return objval
	}
	// The float is adopted exactly; only the final conversion rounds.
	internal, err := rational.FromFloat64(objval)
	if err != nil {
		// NaN: no bound can be derived from it, so fail loudly rather than
		// fabricate a certificate.
		panic("exactlp: objective value is NaN")
	}
	//
	external := factor.Mul(internal.Add(p.data.objOffset()))
	//
	if lowerbound {
		return rational.Float64Relax(external, rational.RoundDown)
	}
	//
	return rational.Float64Relax(external, rational.RoundUp)
}
