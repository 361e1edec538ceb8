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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var v Rational
	//
	assert.True(t, v.IsZero())
	assert.True(t, v.IsInt())
	assert.Equal(t, 0, v.Sign())
	assert.Equal(t, "0", v.String())
	assert.True(t, v.Equal(Zero()))
	// The zero value must be safe to operate on.
	assert.True(t, v.Add(One()).Equal(One()))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		compute  func() Rational
		expected Rational
	}{
		{"add", func() Rational { return New(1, 2).Add(New(1, 3)) }, New(5, 6)},
		{"sub", func() Rational { return New(3, 4).Sub(New(1, 2)) }, New(1, 4)},
		{"mul", func() Rational { return New(2, 3).Mul(New(3, 4)) }, New(1, 2)},
		{"div", func() Rational { return New(3, 4).Div(New(2, 3)) }, New(9, 8)},
		{"neg", func() Rational { return New(5, 7).Neg() }, New(-5, 7)},
		{"abs", func() Rational { return New(-5, 7).Abs() }, New(5, 7)},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.compute().Equal(tt.expected))
		})
	}
}

func TestImmutability(t *testing.T) {
	a := New(1, 2)
	b := New(1, 3)
	_ = a.Add(b)
	_ = a.Neg()
	// Operands must be unchanged after use.
	assert.True(t, a.Equal(New(1, 2)))
	assert.True(t, b.Equal(New(1, 3)))
}

func TestPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
	assert.Panics(t, func() { One().Div(Zero()) })
}

func TestFromFloat64(t *testing.T) {
	v, err := FromFloat64(0.5)
	require.NoError(t, err)
	assert.True(t, v.Equal(New(1, 2)))
	// 0.1 is not exactly 1/10 in binary.
	v, err = FromFloat64(0.1)
	require.NoError(t, err)
	assert.False(t, v.Equal(New(1, 10)))
	// No rational value exists for non-finite inputs.
	_, err = FromFloat64(math.Inf(1))
	assert.Error(t, err)
	_, err = FromFloat64(math.NaN())
	assert.Error(t, err)
}

func TestFromString(t *testing.T) {
	v, err := FromString("3/4")
	require.NoError(t, err)
	assert.True(t, v.Equal(New(3, 4)))
	//
	v, err = FromString("0.75")
	require.NoError(t, err)
	assert.True(t, v.Equal(New(3, 4)))
	//
	_, err = FromString("not-a-number")
	assert.Error(t, err)
}

func TestLowestTerms(t *testing.T) {
	v := New(6, 8)
	assert.Equal(t, "3", v.Num().String())
	assert.Equal(t, "4", v.Denom().String())
	// Negative values keep the denominator positive.
	v = New(6, -8)
	assert.Equal(t, "-3", v.Num().String())
	assert.Equal(t, "4", v.Denom().String())
}

func TestIsInt(t *testing.T) {
	assert.True(t, New(4, 2).IsInt())
	assert.False(t, New(1, 2).IsInt())
	assert.True(t, FromInt64(-7).IsInt())
}

func TestString(t *testing.T) {
	assert.Equal(t, "5", FromInt64(5).String())
	assert.Equal(t, "1/2", New(1, 2).String())
	assert.Equal(t, "-3/4", New(3, -4).String())
}

func TestDecimalLossless(t *testing.T) {
	// Float-representable values must survive the render-parse round trip
	// exactly.
	for _, v := range []Rational{Zero(), One(), New(1, 2), New(-3, 8), FromInt64(42), New(4503599627370497, 4)} {
		back, err := strconv.ParseFloat(v.Decimal(), 64)
		require.NoError(t, err, "value %s", v)
		exact, err := FromFloat64(back)
		require.NoError(t, err)
		assert.True(t, exact.Equal(v), "value %s rendered as %q", v, v.Decimal())
	}
	// Non-representable values fall back on a decimal expansion.
	assert.Equal(t, "0.33333333333333333", New(1, 3).Decimal())
}

func TestBigRatClone(t *testing.T) {
	raw := big.NewRat(1, 2)
	v := FromBigRat(raw)
	raw.SetInt64(99)
	// Mutating the source must not affect the rational.
	assert.True(t, v.Equal(New(1, 2)))
	// ... and mutating an extracted clone must not either.
	v.BigRat().SetInt64(42)
	assert.True(t, v.Equal(New(1, 2)))
}
