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
package rational

import (
	"math"
	"math/big"
)

// RoundingMode determines the direction in which a rational value is rounded
// when converted into a float64.  Directional modes are the basis of safe
// bounding: rounding toward negative infinity yields a valid lower
// approximation, rounding toward positive infinity a valid upper one.
type RoundingMode uint8

const (
	// RoundNearest rounds to the nearest float64 (ties to even).  Suitable
	// for display and heuristics only, never for certified bounds.
	RoundNearest RoundingMode = iota
	// RoundDown rounds toward negative infinity.
	RoundDown
	// RoundUp rounds toward positive infinity.
	RoundUp
)

func (m RoundingMode) String() string {
	switch m {
	case RoundNearest:
		return "nearest"
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	default:
		return "unknown"
	}
}

// bigMode maps a RoundingMode onto the corresponding big.Float mode.
func (m RoundingMode) bigMode() big.RoundingMode {
	switch m {
	case RoundDown:
		return big.ToNegativeInf
	case RoundUp:
		return big.ToPositiveInf
	default:
		return big.ToNearestEven
	}
}

// IsFloat64Representable determines whether a rational value converts to a
// float64 without any rounding error, i.e. the conversion round-trips
// exactly.
func IsFloat64Representable(p Rational) bool {
	val := Float64Approx(p)
	if math.IsInf(val, 0) {
		return false
	}
	// Convert back and compare exactly.
	back := new(big.Rat).SetFloat64(val)
	//
	return back != nil && back.Cmp(p.ref()) == 0
}

// Float64Approx converts a rational value into the nearest float64.  The
// result carries no directional guarantee and must not be used to derive
// certified bounds; use Float64Relax for those.
func Float64Approx(p Rational) float64 {
	val, _ := p.ref().Float64()
	//
	return val
}

// Float64Relax converts a rational value into a float64 using the given
// rounding mode.  For RoundDown the result is guaranteed to be less than or
// equal to the true value, for RoundUp greater than or equal, so the result
// is a valid relaxation of the true value for the intended bound direction.
// Overflow saturates at the largest finite float64 of the safe side, never
// at an infinity that would tighten the bound.  The direction is enforced
// internally and does not depend on any ambient floating-point state.
func Float64Relax(p Rational, mode RoundingMode) float64 {
	f := new(big.Float).SetPrec(53).SetMode(mode.bigMode()).SetRat(p.ref())
	val, _ := f.Float64()
	//
	switch mode {
	case RoundDown:
		if math.IsInf(val, 1) {
			// Rounding down may never overflow to +Inf.
			val = math.MaxFloat64
		}
		for !math.IsInf(val, -1) && overshoots(p.ref(), val) {
			val = math.Nextafter(val, math.Inf(-1))
		}
	case RoundUp:
		if math.IsInf(val, -1) {
			val = -math.MaxFloat64
		}
		for !math.IsInf(val, 1) && undershoots(p.ref(), val) {
			val = math.Nextafter(val, math.Inf(1))
		}
	}
	//
	return val
}

// overshoots reports whether the exact value of val lies strictly above p,
// i.e. val is invalid as a lower approximation of p.
func overshoots(p *big.Rat, val float64) bool {
	back := new(big.Rat).SetFloat64(val)
	// A nil conversion means val is infinite, which the caller has already
	// excluded.
	return back != nil && back.Cmp(p) > 0
}

// undershoots reports whether the exact value of val lies strictly below p,
// i.e. val is invalid as an upper approximation of p.
func undershoots(p *big.Rat, val float64) bool {
	back := new(big.Rat).SetFloat64(val)
	//
	return back != nil && back.Cmp(p) < 0
}
