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
package solex

import (
	"bytes"
	"testing"

	"github.com/exactopt/go-exactlp/pkg/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solWithObj(obj int64) *Solution {
	val := rational.FromInt64(obj)
	return NewSolution([]rational.Rational{val}, val, val)
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Best())
	assert.Equal(t, 0, store.Count())
}

func TestStoreImprovingSequence(t *testing.T) {
	store := NewStore()
	// Strictly improving insertions are all accepted, and the most recent
	// one is always the incumbent.
	for _, obj := range []int64{10, 7, 3, -1} {
		sol := solWithObj(obj)
		assert.True(t, store.Insert(sol))
		assert.Same(t, sol, store.Best())
	}
	//
	assert.Equal(t, 4, store.Count())
}

func TestStoreRejectsDominated(t *testing.T) {
	store := NewStore()
	best := solWithObj(5)
	require.True(t, store.Insert(best))
	// A worse candidate is rejected and leaves the store unchanged.
	assert.False(t, store.Insert(solWithObj(8)))
	assert.Same(t, best, store.Best())
	assert.Equal(t, 1, store.Count())
	// ... as is one of equal objective.
	assert.False(t, store.Insert(solWithObj(5)))
	assert.Equal(t, 1, store.Count())
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	require.True(t, store.Insert(solWithObj(1)))
	store.Clear()
	assert.Nil(t, store.Best())
	assert.Equal(t, 0, store.Count())
}

func TestSolutionImmutable(t *testing.T) {
	values := []rational.Rational{rational.One(), rational.New(1, 2)}
	sol := NewSolution(values, rational.Zero(), rational.Zero())
	// Mutating the source slice must not affect the solution.
	values[0] = rational.FromInt64(99)
	assert.True(t, sol.Value(0).Equal(rational.One()))
	assert.Equal(t, 2, sol.NumVars())
}

func TestSolutionObjectives(t *testing.T) {
	sol := NewSolution(nil, rational.New(7, 2), rational.FromInt64(-7))
	assert.True(t, sol.ObjTrans().Equal(rational.New(7, 2)))
	assert.True(t, sol.ObjOrig().Equal(rational.FromInt64(-7)))
}

func TestFprint(t *testing.T) {
	sol := NewSolution(
		[]rational.Rational{rational.New(1, 2), rational.Zero(), rational.FromInt64(3)},
		rational.Zero(), rational.Zero(),
	)
	names := []string{"x", "y", "z"}
	//
	var buf bytes.Buffer
	require.NoError(t, sol.Fprint(&buf, names, false))
	assert.Equal(t, "x 1/2\nz 3\n", buf.String())
	// With zeros included, every variable appears.
	buf.Reset()
	require.NoError(t, sol.Fprint(&buf, names, true))
	assert.Equal(t, "x 1/2\ny 0\nz 3\n", buf.String())
}

func TestFprintFallbackNames(t *testing.T) {
	sol := NewSolution([]rational.Rational{rational.One(), rational.One()}, rational.Zero(), rational.Zero())
	//
	var buf bytes.Buffer
	require.NoError(t, sol.Fprint(&buf, []string{"a"}, false))
	assert.Equal(t, "a 1\nx1 1\n", buf.String())
}
