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

// Package exactlp implements the constraint handler at the centre of the
// exact-arithmetic solving core.  A single constraint instance owns the
// exact rational description of the whole LP relaxation (objective, bounds,
// matrix, sides), certifies floating-point relaxation results by safe
// directional rounding, re-verifies candidate solutions in exact arithmetic,
// and feeds validated solutions into an exact solution store.  The generic
// branch-and-bound search driver calls into this handler synchronously; no
// operation here spawns concurrent work.
package exactlp

import (
	"errors"
)

// ErrInconsistentData signals malformed problem data at construction: the
// sparse-matrix arrays disagree with each other or with the declared
// dimensions.  Construction aborts and no partial constraint is usable.
var ErrInconsistentData = errors.New("exactlp: inconsistent problem data")

// ObjSense gives the optimisation direction of the original problem.  The
// handler's internal data is always in minimisation space; the sense is
// applied when mapping values back to the original problem.
type ObjSense int8

const (
	// Minimize indicates the original objective is minimised.
	Minimize ObjSense = 1
	// Maximize indicates the original objective is maximised.
	Maximize ObjSense = -1
)

func (s ObjSense) String() string {
	if s == Maximize {
		return "maximize"
	}
	//
	return "minimize"
}

// Flags carries the constraint-role configuration consumed by the generic
// search framework.  Every field is pass-through configuration, not
// algorithmic: the framework reads them to decide how the constraint takes
// part in the solving process.
type Flags struct {
	// Initial indicates the LP relaxation of the constraint belongs in the
	// initial LP.  Usually true; false makes it a lazy constraint.
	Initial bool
	// Separate indicates the constraint should be separated during LP
	// processing.
	Separate bool
	// Enforce indicates the constraint is enforced during node processing.
	Enforce bool
	// Check indicates candidate solutions are checked against the
	// constraint for feasibility.
	Check bool
	// Propagate indicates the constraint is propagated during node
	// processing.
	Propagate bool
	// Local indicates the constraint is valid only locally at its node.
	Local bool
	// Modifiable indicates the constraint may be modified during solving,
	// e.g. by column generation.
	Modifiable bool
	// Dynamic indicates the constraint is subject to aging.
	Dynamic bool
	// Removable indicates the constraint's relaxation may be removed from
	// the LP again.
	Removable bool
	// StickingAtNode indicates the constraint must not be moved to a more
	// global node.
	StickingAtNode bool
}

// DefaultFlags returns the usual configuration of an exactlp constraint:
// part of the initial LP, separated, enforced and checked.
func DefaultFlags() Flags {
	return Flags{
		Initial:  true,
		Separate: true,
		Enforce:  true,
		Check:    true,
	}
}
