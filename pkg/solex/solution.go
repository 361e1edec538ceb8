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

// Package solex provides the repository of feasible exact rational primal
// solutions found during solving.  Solutions are immutable once created and
// owned by the store until solving ends.
package solex

import (
	"fmt"
	"io"

	"github.com/exactopt/go-exactlp/pkg/rational"
)

// Solution is a feasible exact primal solution: one exact rational value per
// problem variable, together with its exact objective value in transformed
// space (always minimisation) and in original problem space.  A Solution is
// immutable after creation.
type Solution struct {
	values   []rational.Rational
	objTrans rational.Rational
	objOrig  rational.Rational
}

// NewSolution constructs a solution over the given variable values.  The
// slice is cloned, so the caller remains free to reuse it.
func NewSolution(values []rational.Rational, objTrans, objOrig rational.Rational) *Solution {
	vals := make([]rational.Rational, len(values))
	copy(vals, values)
	//
	return &Solution{vals, objTrans, objOrig}
}

// NumVars returns the number of variable values held by this solution.
func (p *Solution) NumVars() int {
	return len(p.values)
}

// Value returns the exact value of the given variable.
func (p *Solution) Value(index int) rational.Rational {
	return p.values[index]
}

// ObjTrans returns the exact objective value in transformed space.
func (p *Solution) ObjTrans() rational.Rational {
	return p.objTrans
}

// ObjOrig returns the exact objective value in original problem space.
func (p *Solution) ObjOrig() rational.Rational {
	return p.objOrig
}

// Fprint writes the solution's variable assignments to the given stream, one
// newline-terminated "<varname> <value>" line per variable.  Zero-valued
// variables are skipped unless printZeros is set.  Variables beyond the
// given names receive positional names.
func (p *Solution) Fprint(w io.Writer, names []string, printZeros bool) error {
	for i, val := range p.values {
		if val.IsZero() && !printZeros {
			continue
		}
		//
		name := fmt.Sprintf("x%d", i)
		if i < len(names) {
			name = names[i]
		}
		//
		if _, err := fmt.Fprintf(w, "%s %s\n", name, val.String()); err != nil {
			return err
		}
	}
	// Done
	return nil
}
