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
package lpiex

import (
	"fmt"
	"math/big"

	"github.com/exactopt/go-exactlp/pkg/rational"
)

// DefaultMaxPivots bounds the total number of simplex pivots across both
// phases.  Bland's rule guarantees termination, so the limit only guards
// against unexpectedly large problems being fed into an exact solver.
const DefaultMaxPivots = 1 << 20

// Simplex is the reference exact backend: a dense two-phase tableau simplex
// over big.Rat using Bland's smallest-index rule.  Every pivot is exact, so
// there is no degeneracy cycling risk and no numerical tolerance anywhere.
// It implements the Solver interface and is intended for the small LPs
// arising from certification calls.
type Simplex struct {
	// MaxPivots bounds the number of pivots; zero selects DefaultMaxPivots.
	MaxPivots int
}

// NewSimplex constructs a reference exact solver with default limits.
func NewSimplex() *Simplex {
	return &Simplex{}
}

// Solve the given problem with its own column bounds.
func (p *Simplex) Solve(prob *Problem) (*Result, error) {
	return p.SolveWithBounds(prob, nil, nil)
}

// SolveWithBounds solves the given problem under node-local column bound
// overrides.  Either override slice may be nil to keep the problem's own
// bounds on that side.
func (p *Simplex) SolveWithBounds(prob *Problem, lb, ub []Bound) (*Result, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	//
	n := prob.NumCols()
	//
	if lb == nil {
		lb = prob.Lb
	}
	if ub == nil {
		ub = prob.Ub
	}
	if len(lb) != n || len(ub) != n {
		return nil, fmt.Errorf("lpiex: %d columns but %d/%d bound overrides", n, len(lb), len(ub))
	}
	// Trivially inverted bounds or sides mean infeasibility without a solve.
	for j := 0; j < n; j++ {
		if !lb[j].Infinite && !ub[j].Infinite && lb[j].Value.Cmp(ub[j].Value) > 0 {
			return &Result{Status: StatusInfeasible}, nil
		}
	}
	for i := 0; i < prob.NumRows(); i++ {
		if !prob.Lhs[i].Infinite && !prob.Rhs[i].Infinite &&
			prob.Lhs[i].Value.Cmp(prob.Rhs[i].Value) > 0 {
			return &Result{Status: StatusInfeasible}, nil
		}
	}
	//
	t := newTableau(prob, lb, ub)
	//
	limit := p.MaxPivots
	if limit == 0 {
		limit = DefaultMaxPivots
	}
	//
	return t.run(limit)
}

// colRef records how an original column maps onto the nonnegative variables
// of the standard-form problem: x = shift + y[pos] when negated is false,
// x = shift - y[pos] when negated is true, and x = y[pos] - y[neg] for free
// columns (neg >= 0, shift zero).
type colRef struct {
	pos     int
	neg     int
	shift   *big.Rat
	negated bool
}

// tableau is a standard-form simplex tableau: minimize cost over Ay = b,
// y >= 0, b >= 0, with one artificial column per row.  Column order is
// structural variables, then slacks, then artificials; the final column of
// each row holds b.  The objective row holds reduced costs, with its final
// entry the negated objective value.
type tableau struct {
	prob *Problem
	// column transforms, one per original column.
	cols []colRef
	// phase-2 costs of the structural columns.
	cost []*big.Rat
	// rows of the tableau, each ncols+1 wide.
	rows [][]*big.Rat
	// basis column of each row.
	basis []int
	// objective row, ncols+1 wide.
	obj []*big.Rat
	// first artificial column.
	artStart int
	// total number of columns (excluding the b column).
	ncols int
	// origin of each row: the original row it derives from, or -1 for a
	// bound row.
	rowOrig []int
	// multiplier taking the original row vector to this row's structural
	// part; needed to fold duals back onto the original rows.
	rowSign []int
}

// buildRow is an intermediate inequality/equality over the standard-form
// variables, prior to slack and artificial columns being attached.
type buildRow struct {
	coef []*big.Rat
	rhs  *big.Rat
	eq   bool
	orig int
	sign int
}

func newTableau(prob *Problem, lb, ub []Bound) *tableau {
	n := prob.NumCols()
	t := &tableau{prob: prob, cols: make([]colRef, n)}
	//
	type ubRow struct {
		y     int
		width *big.Rat
	}
	//
	var (
		ny     int
		ubRows []ubRow
	)
	// Map every column onto nonnegative standard-form variables.
	for j := 0; j < n; j++ {
		switch {
		case !lb[j].Infinite:
			t.cols[j] = colRef{pos: ny, neg: -1, shift: lb[j].Value.BigRat()}
			// A finite upper bound on a shifted column becomes an explicit
			// row, keeping the core loop free of bounded-variable logic.
			if !ub[j].Infinite {
				width := ub[j].Value.Sub(lb[j].Value)
				ubRows = append(ubRows, ubRow{ny, width.BigRat()})
			}
			ny++
		case !ub[j].Infinite:
			t.cols[j] = colRef{pos: ny, neg: -1, shift: ub[j].Value.BigRat(), negated: true}
			ny++
		default:
			t.cols[j] = colRef{pos: ny, neg: ny + 1, shift: new(big.Rat)}
			ny += 2
		}
	}
	// Phase-2 costs follow the column transforms.
	t.cost = make([]*big.Rat, ny)
	for k := range t.cost {
		t.cost[k] = new(big.Rat)
	}
	for j := 0; j < n; j++ {
		c := prob.Obj[j].BigRat()
		ref := t.cols[j]
		//
		if ref.negated {
			t.cost[ref.pos].Sub(t.cost[ref.pos], c)
		} else {
			t.cost[ref.pos].Add(t.cost[ref.pos], c)
			if ref.neg >= 0 {
				t.cost[ref.neg].Sub(t.cost[ref.neg], c)
			}
		}
	}
	//
	var build []buildRow
	// Express every original row over the standard-form variables.  The
	// constant term induced by column shifts moves onto the sides.
	for i := 0; i < prob.NumRows(); i++ {
		coef := make([]*big.Rat, ny)
		for k := range coef {
			coef[k] = new(big.Rat)
		}
		shiftSum := new(big.Rat)
		//
		for k := prob.Beg[i]; k < prob.Beg[i]+prob.Len[i]; k++ {
			a := prob.Val[k].BigRat()
			if a.Sign() == 0 {
				continue
			}
			ref := t.cols[prob.Ind[k]]
			term := new(big.Rat).Mul(a, ref.shift)
			shiftSum.Add(shiftSum, term)
			//
			if ref.negated {
				coef[ref.pos].Sub(coef[ref.pos], a)
			} else {
				coef[ref.pos].Add(coef[ref.pos], a)
				if ref.neg >= 0 {
					coef[ref.neg].Sub(coef[ref.neg], a)
				}
			}
		}
		//
		lhsF, rhsF := !prob.Lhs[i].Infinite, !prob.Rhs[i].Infinite
		//
		switch {
		case lhsF && rhsF && prob.Lhs[i].Value.Equal(prob.Rhs[i].Value):
			rhs := new(big.Rat).Sub(prob.Rhs[i].Value.BigRat(), shiftSum)
			build = append(build, buildRow{coef, rhs, true, i, 1})
		default:
			if rhsF {
				rhs := new(big.Rat).Sub(prob.Rhs[i].Value.BigRat(), shiftSum)
				build = append(build, buildRow{coef, rhs, false, i, 1})
			}
			if lhsF {
				neg := make([]*big.Rat, ny)
				for k := range neg {
					neg[k] = new(big.Rat).Neg(coef[k])
				}
				rhs := new(big.Rat).Sub(shiftSum, prob.Lhs[i].Value.BigRat())
				build = append(build, buildRow{neg, rhs, false, i, -1})
			}
		}
	}
	// Upper-bound rows become plain inequality rows over the standard-form
	// variables; they carry no dual of their own.
	for _, row := range ubRows {
		coef := make([]*big.Rat, ny)
		for k := range coef {
			coef[k] = new(big.Rat)
		}
		coef[row.y].SetInt64(1)
		build = append(build, buildRow{coef, row.width, false, -1, 0})
	}
	//
	t.assemble(build, ny)
	//
	return t
}

// assemble lays the intermediate rows out as an equality-form tableau with
// slack and artificial columns, normalising every right-hand side to be
// nonnegative.
func (t *tableau) assemble(build []buildRow, ny int) {
	m := len(build)
	nslack := 0
	//
	for _, row := range build {
		if !row.eq {
			nslack++
		}
	}
	//
	t.artStart = ny + nslack
	t.ncols = t.artStart + m
	t.rows = make([][]*big.Rat, m)
	t.basis = make([]int, m)
	t.rowOrig = make([]int, m)
	t.rowSign = make([]int, m)
	//
	slack := ny
	for i, row := range build {
		cells := make([]*big.Rat, t.ncols+1)
		for k := range cells {
			cells[k] = new(big.Rat)
		}
		for k, v := range row.coef {
			cells[k].Set(v)
		}
		if !row.eq {
			cells[slack].SetInt64(1)
			slack++
		}
		cells[t.ncols].Set(row.rhs)
		//
		sign := row.sign
		if cells[t.ncols].Sign() < 0 {
			for k := 0; k <= t.ncols; k++ {
				cells[k].Neg(cells[k])
			}
			sign = -sign
		}
		cells[t.artStart+i].SetInt64(1)
		//
		t.rows[i] = cells
		t.basis[i] = t.artStart + i
		t.rowOrig[i] = row.orig
		t.rowSign[i] = sign
	}
}

// run executes both simplex phases and extracts the result.
func (t *tableau) run(limit int) (*Result, error) {
	// Phase 1: minimise the sum of artificials to find a feasible basis.
	phase1 := make([]*big.Rat, t.ncols)
	for j := range phase1 {
		phase1[j] = new(big.Rat)
		if j >= t.artStart {
			phase1[j].SetInt64(1)
		}
	}
	t.priceOut(phase1)
	//
	pivots, unbounded, err := t.iterate(limit)
	if err != nil {
		return nil, err
	}
	if unbounded {
		// The phase-1 objective is bounded below by zero, so this cannot
		// happen on consistent data.
		return nil, fmt.Errorf("%w: unbounded feasibility phase", ErrNumerical)
	}
	// Residual infeasibility means no feasible point exists.
	if t.objValue().Sign() > 0 {
		return &Result{Status: StatusInfeasible}, nil
	}
	t.evictArtificials()
	// Phase 2: minimise the true cost from the feasible basis.
	phase2 := make([]*big.Rat, t.ncols)
	for j := range phase2 {
		phase2[j] = new(big.Rat)
		if j < len(t.cost) {
			phase2[j].Set(t.cost[j])
		}
	}
	t.priceOut(phase2)
	//
	_, unbounded, err = t.iterate(limit - pivots)
	if err != nil {
		return nil, err
	}
	if unbounded {
		return &Result{Status: StatusUnbounded}, nil
	}
	//
	return t.extract(), nil
}

// priceOut recomputes the objective row for the given costs against the
// current basis.
func (t *tableau) priceOut(costs []*big.Rat) {
	obj := make([]*big.Rat, t.ncols+1)
	for j := range obj {
		obj[j] = new(big.Rat)
		if j < t.ncols {
			obj[j].Set(costs[j])
		}
	}
	term := new(big.Rat)
	for i, row := range t.rows {
		cb := costs[t.basis[i]]
		if cb.Sign() == 0 {
			continue
		}
		for j := 0; j <= t.ncols; j++ {
			term.Mul(cb, row[j])
			obj[j].Sub(obj[j], term)
		}
	}
	//
	t.obj = obj
}

// objValue returns the current objective value (the objective row stores its
// negation).
func (t *tableau) objValue() *big.Rat {
	return new(big.Rat).Neg(t.obj[t.ncols])
}

// iterate pivots until optimality, unboundedness or the pivot budget runs
// out.  Artificial columns never enter the basis.
func (t *tableau) iterate(limit int) (int, bool, error) {
	pivots := 0
	//
	for {
		enter := t.entering()
		if enter < 0 {
			// Optimal
			return pivots, false, nil
		}
		leave := t.leaving(enter)
		if leave < 0 {
			return pivots, true, nil
		}
		if pivots >= limit {
			return pivots, false, fmt.Errorf("%w: pivot limit exceeded", ErrNumerical)
		}
		t.pivot(leave, enter)
		pivots++
	}
}

// entering selects the lowest-index non-artificial column with negative
// reduced cost (Bland's rule), or -1 at optimality.
func (t *tableau) entering() int {
	for j := 0; j < t.artStart; j++ {
		if t.obj[j].Sign() < 0 {
			return j
		}
	}
	//
	return -1
}

// leaving applies the exact ratio test for the entering column, breaking
// ties on the lowest basis column index (Bland's rule).  A result of -1
// signals an unbounded ray.
func (t *tableau) leaving(enter int) int {
	var (
		best    = -1
		ratio   *big.Rat
		current = new(big.Rat)
	)
	//
	for i, row := range t.rows {
		if row[enter].Sign() <= 0 {
			continue
		}
		current.Quo(row[t.ncols], row[enter])
		//
		switch {
		case best < 0 || current.Cmp(ratio) < 0:
			best = i
			ratio = new(big.Rat).Set(current)
		case current.Cmp(ratio) == 0 && t.basis[i] < t.basis[best]:
			best = i
		}
	}
	//
	return best
}

// pivot brings column enter into the basis on row leave, eliminating the
// column from all other rows and the objective row.
func (t *tableau) pivot(leave, enter int) {
	row := t.rows[leave]
	inv := new(big.Rat).Inv(row[enter])
	//
	for j := 0; j <= t.ncols; j++ {
		row[j].Mul(row[j], inv)
	}
	//
	term := new(big.Rat)
	eliminate := func(target []*big.Rat) {
		factor := new(big.Rat).Set(target[enter])
		if factor.Sign() == 0 {
			return
		}
		for j := 0; j <= t.ncols; j++ {
			term.Mul(factor, row[j])
			target[j].Sub(target[j], term)
		}
	}
	//
	for i, other := range t.rows {
		if i != leave {
			eliminate(other)
		}
	}
	eliminate(t.obj)
	//
	t.basis[leave] = enter
}

// evictArtificials pivots zero-valued artificials out of the feasible basis
// where possible.  A row with no structural entry left is redundant and
// stays inert with its artificial basic at zero.
func (t *tableau) evictArtificials() {
	for i := range t.rows {
		if t.basis[i] < t.artStart {
			continue
		}
		for j := 0; j < t.artStart; j++ {
			if t.rows[i][j].Sign() != 0 {
				t.pivot(i, j)
				break
			}
		}
	}
}

// extract recovers the exact primal point, objective value and row duals
// from an optimal tableau.
func (t *tableau) extract() *Result {
	n := t.prob.NumCols()
	// Standard-form variable values: basic variables take their row's
	// right-hand side, nonbasic variables are zero.
	y := make([]*big.Rat, t.ncols)
	for j := range y {
		y[j] = new(big.Rat)
	}
	for i, col := range t.basis {
		y[col].Set(t.rows[i][t.ncols])
	}
	// Undo the column transforms.
	primal := make([]rational.Rational, n)
	for j := 0; j < n; j++ {
		ref := t.cols[j]
		val := new(big.Rat).Set(ref.shift)
		//
		if ref.negated {
			val.Sub(val, y[ref.pos])
		} else {
			val.Add(val, y[ref.pos])
			if ref.neg >= 0 {
				val.Sub(val, y[ref.neg])
			}
		}
		//
		primal[j] = rational.FromBigRat(val)
	}
	// The objective is recomputed from the primal point, which keeps it
	// independent of tableau bookkeeping.
	objval := rational.Zero()
	for j := 0; j < n; j++ {
		objval = objval.Add(t.prob.Obj[j].Mul(primal[j]))
	}
	// Row duals: the reduced cost of artificial k is the negated multiplier
	// of equality row k, which folds back onto the original rows via each
	// row's sign.
	dual := make([]rational.Rational, t.prob.NumRows())
	for i := range t.rows {
		orig := t.rowOrig[i]
		if orig < 0 {
			continue
		}
		u := new(big.Rat).Neg(t.obj[t.artStart+i])
		if t.rowSign[i] < 0 {
			u.Neg(u)
		}
		dual[orig] = dual[orig].Add(rational.FromBigRat(u))
	}
	//
	return &Result{
		Status: StatusOptimal,
		Objval: objval,
		Primal: primal,
		Dual:   dual,
	}
}
