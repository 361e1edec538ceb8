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
	"fmt"
	"math"
	"math/big"
)

// Rational is an immutable arbitrary-precision rational value.  The zero
// value represents 0.  All operations produce a fresh value and never mutate
// their operands, so values can be shared freely across problem data and
// solutions.  The underlying representation is kept in lowest terms with a
// strictly positive denominator.
type Rational struct {
	// value of this rational, or nil to represent 0.
	rat *big.Rat
}

// zeroRat backs the zero value of Rational.  It is shared and must never be
// mutated.
var zeroRat = new(big.Rat)

// New constructs the rational num/den.  This will panic if den is zero.
func New(num, den int64) Rational {
	if den == 0 {
		panic("rational: zero denominator")
	}
	//
	return Rational{big.NewRat(num, den)}
}

// FromInt64 constructs the rational val/1.
func FromInt64(val int64) Rational {
	return Rational{new(big.Rat).SetInt64(val)}
}

// FromBigRat constructs a rational from a big.Rat.  The argument is cloned,
// so subsequent mutation of it does not affect the returned value.
func FromBigRat(val *big.Rat) Rational {
	return Rational{new(big.Rat).Set(val)}
}

// FromFloat64 constructs the exact rational value of a finite float64.  An
// error is reported for NaN or an infinity, since neither has a rational
// value.
func FromFloat64(val float64) (Rational, error) {
	r := new(big.Rat).SetFloat64(val)
	if r == nil {
		return Rational{}, fmt.Errorf("rational: no exact value for %v", val)
	}
	//
	return Rational{r}, nil
}

// FromString parses a rational from a string, accepting both fraction
// ("3/4") and decimal ("0.75", "1e-3") notation.
func FromString(s string) (Rational, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, fmt.Errorf("rational: malformed value %q", s)
	}
	//
	return Rational{r}, nil
}

// Zero constructs the rational 0.
func Zero() Rational {
	return Rational{}
}

// One constructs the rational 1.
func One() Rational {
	return FromInt64(1)
}

// ref returns the underlying big.Rat, mapping the zero value onto a shared
// constant.  Callers must not mutate the result.
func (p Rational) ref() *big.Rat {
	if p.rat == nil {
		return zeroRat
	}
	//
	return p.rat
}

// Add computes p + q.
func (p Rational) Add(q Rational) Rational {
	return Rational{new(big.Rat).Add(p.ref(), q.ref())}
}

// Sub computes p - q.
func (p Rational) Sub(q Rational) Rational {
	return Rational{new(big.Rat).Sub(p.ref(), q.ref())}
}

// Mul computes p * q.
func (p Rational) Mul(q Rational) Rational {
	return Rational{new(big.Rat).Mul(p.ref(), q.ref())}
}

// Div computes p / q.  This will panic if q is zero.
func (p Rational) Div(q Rational) Rational {
	if q.IsZero() {
		panic("rational: division by zero")
	}
	//
	return Rational{new(big.Rat).Quo(p.ref(), q.ref())}
}

// Neg computes -p.
func (p Rational) Neg() Rational {
	return Rational{new(big.Rat).Neg(p.ref())}
}

// Abs computes |p|.
func (p Rational) Abs() Rational {
	return Rational{new(big.Rat).Abs(p.ref())}
}

// Cmp returns 1 if p > q, 0 if p = q and -1 if p < q.  Comparison is exact,
// never tolerance based.
func (p Rational) Cmp(q Rational) int {
	return p.ref().Cmp(q.ref())
}

// Equal determines whether two rationals hold exactly the same value.
func (p Rational) Equal(q Rational) bool {
	return p.Cmp(q) == 0
}

// Sign returns 1 if p > 0, 0 if p = 0 and -1 if p < 0.
func (p Rational) Sign() int {
	return p.ref().Sign()
}

// IsZero determines whether this value is zero (or not).
func (p Rational) IsZero() bool {
	return p.ref().Sign() == 0
}

// IsInt determines whether this value is an integer, i.e. has denominator
// one in lowest terms.
func (p Rational) IsInt() bool {
	return p.ref().IsInt()
}

// Num returns the numerator of this value in lowest terms.  The result is a
// clone and can be mutated freely.
func (p Rational) Num() *big.Int {
	return new(big.Int).Set(p.ref().Num())
}

// Denom returns the (strictly positive) denominator of this value in lowest
// terms.  The result is a clone and can be mutated freely.
func (p Rational) Denom() *big.Int {
	return new(big.Int).Set(p.ref().Denom())
}

// BigRat returns a clone of the underlying big.Rat.
func (p Rational) BigRat() *big.Rat {
	return new(big.Rat).Set(p.ref())
}

// String renders this value as an integer literal when the denominator is
// one, and as a fraction "p/q" otherwise.
func (p Rational) String() string {
	if p.IsInt() {
		return p.ref().Num().String()
	}
	//
	return p.ref().String()
}

// Decimal renders this value as a decimal string.  For values which are
// exactly representable as a float64 the rendering is lossless (parsing it
// back as a float64 recovers the identical value); other values are rendered
// with a high-precision decimal expansion.
func (p Rational) Decimal() string {
	if IsFloat64Representable(p) {
		return strconvFloat(Float64Approx(p))
	}
	// Fall back on a high-precision decimal expansion.
	return p.ref().FloatString(17)
}

// strconvFloat renders a float64 with the minimal number of digits that
// survive a round trip.
func strconvFloat(val float64) string {
	if val == math.Trunc(val) && math.Abs(val) < 1e15 {
		return fmt.Sprintf("%.0f", val)
	}
	//
	return fmt.Sprintf("%g", val)
}
