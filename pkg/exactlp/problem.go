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
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/exactopt/go-exactlp/pkg/rational"
)

// DefaultInfinity is the default magnitude of the infinity sentinel: exact
// values at or beyond it are treated as unbounded.  The convention keeps
// unbounded sides expressible inside plain rational arrays while staying far
// outside the range of any meaningful problem datum.
var DefaultInfinity = mustRational("1e15")

// ProblemData is the exact rational description of the LP relaxation owned
// by an exactlp constraint.  The objective is in transformed (minimisation)
// space; ObjSense, ObjScale and ObjOffset map objective values back onto the
// original problem.  The constraint matrix is stored in compressed sparse
// row form and may contain explicit zero entries for alignment with the
// floating-point relaxation.
//
// Unbounded variable bounds and row sides are expressed through the
// per-problem infinity sentinel rather than a process-wide constant, so
// independent problems can use different sentinels safely.
type ProblemData struct {
	// Obj holds one exact objective coefficient per variable.
	Obj []rational.Rational
	// Lb and Ub hold the exact global variable bounds.
	Lb, Ub []rational.Rational
	// VarNames holds one name per variable, used for solution output.
	VarNames []string
	// Integral marks the variables carrying an integrality requirement.
	Integral *bitset.BitSet
	// Lhs and Rhs hold the exact row sides.
	Lhs, Rhs []rational.Rational
	// Beg, Len and Ind describe the sparsity pattern of the matrix: row i
	// owns entries Ind[Beg[i] : Beg[i]+Len[i]].
	Beg, Len, Ind []int
	// Val holds the exact matrix entries.
	Val []rational.Rational
	// ObjSense is the optimisation direction of the original problem.
	ObjSense ObjSense
	// ObjNeedsScaling notes that original objective values are not exactly
	// floating-point representable, so external objective values must be
	// built through the scale-and-shift transform below.
	ObjNeedsScaling bool
	// ObjScale and ObjOffset define the transform
	// external = objsense * objscale * (internal + objoffset).
	ObjScale, ObjOffset rational.Rational
	// Infinity is the sentinel magnitude; zero value selects
	// DefaultInfinity.
	Infinity rational.Rational
}

// NumVars returns the number of variables.
func (p *ProblemData) NumVars() int {
	return len(p.Obj)
}

// NumRows returns the number of rows.
func (p *ProblemData) NumRows() int {
	return len(p.Lhs)
}

// NumNonz returns the number of stored matrix entries.
func (p *ProblemData) NumNonz() int {
	return len(p.Val)
}

// infinity returns the effective sentinel magnitude.
func (p *ProblemData) infinity() rational.Rational {
	if p.Infinity.IsZero() {
		return DefaultInfinity
	}
	//
	return p.Infinity
}

// PosInfinityValue returns the exact value treated as plus infinity by this
// problem.
func (p *ProblemData) PosInfinityValue() rational.Rational {
	return p.infinity()
}

// NegInfinityValue returns the exact value treated as minus infinity by this
// problem.
func (p *ProblemData) NegInfinityValue() rational.Rational {
	return p.infinity().Neg()
}

// IsPosInfinity determines whether an exact value is treated as plus
// infinity under this problem's sentinel convention.  The comparison is
// exact, never tolerance based.
func (p *ProblemData) IsPosInfinity(val rational.Rational) bool {
	return val.Cmp(p.infinity()) >= 0
}

// IsNegInfinity determines whether an exact value is treated as minus
// infinity under this problem's sentinel convention.
func (p *ProblemData) IsNegInfinity(val rational.Rational) bool {
	return val.Cmp(p.infinity().Neg()) <= 0
}

// Float64Relax converts an exact value into a float64 in the given rounding
// direction, under this problem's sentinel convention: sentinel-encoded
// infinities map onto the floating-point infinities regardless of the mode,
// finite values round directionally as rational.Float64Relax does.
func (p *ProblemData) Float64Relax(val rational.Rational, mode rational.RoundingMode) float64 {
	if p.IsPosInfinity(val) {
		return math.Inf(1)
	}
	if p.IsNegInfinity(val) {
		return math.Inf(-1)
	}
	//
	return rational.Float64Relax(val, mode)
}

// Float64Approx converts an exact value into the nearest float64 under this
// problem's sentinel convention.  Display and heuristic use only; certified
// bounds go through Float64Relax.
func (p *ProblemData) Float64Approx(val rational.Rational) float64 {
	if p.IsPosInfinity(val) {
		return math.Inf(1)
	}
	if p.IsNegInfinity(val) {
		return math.Inf(-1)
	}
	//
	return rational.Float64Approx(val)
}

// validate applies the construction-time consistency checks.  Any failure
// aborts construction with ErrInconsistentData.
func (p *ProblemData) validate() error {
	n, m, nnonz := p.NumVars(), p.NumRows(), p.NumNonz()
	//
	if len(p.Lb) != n || len(p.Ub) != n {
		return fmt.Errorf("%w: %d variables but %d/%d bounds", ErrInconsistentData, n, len(p.Lb), len(p.Ub))
	}
	if len(p.VarNames) != 0 && len(p.VarNames) != n {
		return fmt.Errorf("%w: %d variables but %d names", ErrInconsistentData, n, len(p.VarNames))
	}
	if len(p.Rhs) != m {
		return fmt.Errorf("%w: %d left-hand sides but %d right-hand sides", ErrInconsistentData, m, len(p.Rhs))
	}
	if len(p.Beg) != m || len(p.Len) != m {
		return fmt.Errorf("%w: %d rows but %d/%d matrix offsets", ErrInconsistentData, m, len(p.Beg), len(p.Len))
	}
	if len(p.Ind) != nnonz {
		return fmt.Errorf("%w: %d indices but %d values", ErrInconsistentData, len(p.Ind), nnonz)
	}
	if p.ObjSense != Minimize && p.ObjSense != Maximize {
		return fmt.Errorf("%w: objective sense %d", ErrInconsistentData, p.ObjSense)
	}
	if p.infinity().Sign() <= 0 {
		return fmt.Errorf("%w: infinity sentinel %s is not positive", ErrInconsistentData, p.Infinity)
	}
	if p.ObjNeedsScaling && p.ObjScale.Sign() <= 0 {
		return fmt.Errorf("%w: objective scale %s is not positive", ErrInconsistentData, p.ObjScale)
	}
	//
	for i := 0; i < m; i++ {
		if p.Beg[i] < 0 || p.Len[i] < 0 || p.Beg[i]+p.Len[i] > nnonz {
			return fmt.Errorf("%w: row %d spans [%d,%d) outside %d entries",
				ErrInconsistentData, i, p.Beg[i], p.Beg[i]+p.Len[i], nnonz)
		}
	}
	//
	for k, ind := range p.Ind {
		if ind < 0 || ind >= n {
			return fmt.Errorf("%w: entry %d references variable %d of %d", ErrInconsistentData, k, ind, n)
		}
	}
	// Done
	return nil
}

// clone produces a deep copy of the problem data, so the constraint owns its
// data exclusively.  Rational values are immutable and shared as-is.
func (p *ProblemData) clone() *ProblemData {
	q := *p
	q.Obj = append([]rational.Rational(nil), p.Obj...)
	q.Lb = append([]rational.Rational(nil), p.Lb...)
	q.Ub = append([]rational.Rational(nil), p.Ub...)
	q.VarNames = append([]string(nil), p.VarNames...)
	q.Lhs = append([]rational.Rational(nil), p.Lhs...)
	q.Rhs = append([]rational.Rational(nil), p.Rhs...)
	q.Beg = append([]int(nil), p.Beg...)
	q.Len = append([]int(nil), p.Len...)
	q.Ind = append([]int(nil), p.Ind...)
	q.Val = append([]rational.Rational(nil), p.Val...)
	//
	if p.Integral != nil {
		q.Integral = p.Integral.Clone()
	}
	//
	return &q
}

// varName returns the name of the given variable, falling back on a
// positional name when none was supplied.
func (p *ProblemData) varName(index int) string {
	if index < len(p.VarNames) {
		return p.VarNames[index]
	}
	//
	return fmt.Sprintf("x%d", index)
}

// isIntegral determines whether the given variable carries an integrality
// requirement.
func (p *ProblemData) isIntegral(index int) bool {
	return p.Integral != nil && p.Integral.Test(uint(index))
}

// mustRational parses a rational literal known to be well formed.
func mustRational(s string) rational.Rational {
	val, err := rational.FromString(s)
	if err != nil {
		panic(err)
	}
	//
	return val
}
