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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/exactopt/go-exactlp/pkg/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaledData builds a problem whose objective transform is
// external = 3 * (internal + 1/7), i.e. one that is not exactly
// representable in floating point.
func scaledData() *ProblemData {
	data := twoVarData()
	data.ObjNeedsScaling = true
	data.ObjScale = rational.FromInt64(3)
	data.ObjOffset = rational.New(1, 7)
	//
	return data
}

func TestExternSafeObjvalIdentity(t *testing.T) {
	cons := mustCreate(t, twoVarData())
	// Without scaling the transform is the identity, and representable
	// values pass through unchanged in both directions.
	assert.Equal(t, 5.0, cons.ExternSafeObjval(5.0, true))
	assert.Equal(t, 5.0, cons.ExternSafeObjval(5.0, false))
	assert.Equal(t, -0.5, cons.ExternSafeObjval(-0.5, true))
}

func TestExternSafeObjvalDirections(t *testing.T) {
	cons := mustCreate(t, scaledData())
	// 3 * (1 + 1/7) = 24/7 has no exact floating-point representation, so
	// the two directions must straddle it by exactly one ulp.
	lo := cons.ExternSafeObjval(1.0, true)
	hi := cons.ExternSafeObjval(1.0, false)
	assert.Less(t, lo, hi)
	assert.Equal(t, hi, math.Nextafter(lo, math.Inf(1)))
	//
	exact := rational.FromInt64(3).Mul(rational.One().Add(rational.New(1, 7)))
	loRat, err := rational.FromFloat64(lo)
	require.NoError(t, err)
	hiRat, err := rational.FromFloat64(hi)
	require.NoError(t, err)
	assert.True(t, loRat.Cmp(exact) <= 0)
	assert.True(t, hiRat.Cmp(exact) >= 0)
}

func TestExternSafeObjvalInfinite(t *testing.T) {
	cons := mustCreate(t, twoVarData())
	assert.True(t, math.IsInf(cons.ExternSafeObjval(math.Inf(1), false), 1))
	assert.True(t, math.IsInf(cons.ExternSafeObjval(math.Inf(-1), true), -1))
	// A maximisation transform flips the sign of infinite values.
	data := twoVarData()
	data.ObjSense = Maximize
	maxCons := mustCreate(t, data)
	assert.True(t, math.IsInf(maxCons.ExternSafeObjval(math.Inf(1), true), -1))
}

func TestExternSafeObjvalNaN(t *testing.T) {
	cons := mustCreate(t, twoVarData())
	// No certificate can be derived from NaN.
	assert.Panics(t, func() { cons.ExternSafeObjval(math.NaN(), true) })
}

// A safe lower bound may never exceed the exact external image, and a safe
// upper bound may never fall below it, whatever internal value arrives.
func TestExternSafeObjvalProperty(t *testing.T) {
	cons := mustCreate(t, scaledData())
	factor := rational.FromInt64(3)
	offset := rational.New(1, 7)
	//
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)
	properties.Property("down <= exact external <= up", prop.ForAll(
		func(objval float64) bool {
			if math.IsNaN(objval) || math.IsInf(objval, 0) {
				return true
			}
			internal, err := rational.FromFloat64(objval)
			if err != nil {
				return false
			}
			exact := factor.Mul(internal.Add(offset))
			//
			lo := cons.ExternSafeObjval(objval, true)
			hi := cons.ExternSafeObjval(objval, false)
			//
			if !math.IsInf(lo, -1) {
				loRat, err := rational.FromFloat64(lo)
				if err != nil || loRat.Cmp(exact) > 0 {
					return false
				}
			}
			if !math.IsInf(hi, 1) {
				hiRat, err := rational.FromFloat64(hi)
				if err != nil || hiRat.Cmp(exact) < 0 {
					return false
				}
			}
			//
			return lo <= hi
		},
		gen.Float64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSolObjValues(t *testing.T) {
	cons := mustCreate(t, scaledData())
	accepted, err := cons.TryAddSol([]rational.Rational{rational.FromInt64(2), rational.FromInt64(3)})
	require.NoError(t, err)
	require.True(t, accepted)
	//
	sol := cons.BestSol()
	require.NotNil(t, sol)
	// Transformed objective: 2 + 3 = 5; original: 3 * (5 + 1/7) = 108/7.
	assert.True(t, cons.SolTransObj(sol).Equal(rational.FromInt64(5)))
	assert.True(t, cons.SolOrigObj(sol).Equal(rational.New(108, 7)))
	//
	obj, ok := cons.BestSolObj()
	require.True(t, ok)
	assert.True(t, obj.Equal(rational.New(108, 7)))
}
