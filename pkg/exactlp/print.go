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
	"io"
	"os"

	"github.com/exactopt/go-exactlp/pkg/solex"
)

// errNoSolution is reported by the best-solution printing operations when no
// solution has been found yet.
var errNoSolution = fmt.Errorf("exactlp: no solution available")

// PrintSol writes a solution in original problem space to the given stream:
// the exact original objective value followed by one "<varname> <value>"
// line per variable.  Zero-valued variables are skipped unless printZeros is
// set.  A nil writer selects standard output.
func (p *Constraint) PrintSol(sol *solex.Solution, w io.Writer, printZeros bool) error {
	p.ensureLive()
	w = orStdout(w)
	//
	if _, err := fmt.Fprintf(w, "objective value: %s\n", sol.ObjOrig()); err != nil {
		return err
	}
	//
	return sol.Fprint(w, p.data.VarNames, printZeros)
}

// PrintTransSol writes a solution in transformed problem space to the given
// stream.  A nil writer selects standard output.
func (p *Constraint) PrintTransSol(sol *solex.Solution, w io.Writer, printZeros bool) error {
	p.ensureLive()
	w = orStdout(w)
	//
	if _, err := fmt.Fprintf(w, "objective value: %s\n", sol.ObjTrans()); err != nil {
		return err
	}
	//
	return sol.Fprint(w, p.data.VarNames, printZeros)
}

// PrintBestSol writes the best solution found so far in original problem
// space.  An error is reported when no solution exists.
func (p *Constraint) PrintBestSol(w io.Writer, printZeros bool) error {
	p.ensureLive()
	//
	best := p.store.Best()
	if best == nil {
		return errNoSolution
	}
	//
	return p.PrintSol(best, w, printZeros)
}

// PrintBestTransSol writes the best solution found so far in transformed
// problem space.  An error is reported when no solution exists.
func (p *Constraint) PrintBestTransSol(w io.Writer, printZeros bool) error {
	p.ensureLive()
	//
	best := p.store.Best()
	if best == nil {
		return errNoSolution
	}
	//
	return p.PrintTransSol(best, w, printZeros)
}

// PrintBestSolVar writes the value of a single variable in the best solution
// found so far as one "<varname> <value>" line.
func (p *Constraint) PrintBestSolVar(index int, w io.Writer) error {
	p.ensureLive()
	//
	best := p.store.Best()
	if best == nil {
		return errNoSolution
	}
	w = orStdout(w)
	//
	_, err := fmt.Fprintf(w, "%s %s\n", p.data.varName(index), best.Value(index))
	//
	return err
}

// orStdout maps a nil writer onto standard output.
func orStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	//
	return w
}
