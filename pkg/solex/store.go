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
	log "github.com/sirupsen/logrus"
)

// Store is an ordered, best-first collection of exact primal solutions.  A
// candidate is accepted only when it strictly improves on the incumbent (in
// transformed space, where smaller is better), so dominated solutions are
// never retained and the head of the store is always the incumbent.  Entries
// are never removed individually; teardown is bulk at the end of solving.
// The store is mutated only by the single solving thread.
type Store struct {
	sols []*Solution
}

// NewStore constructs an empty solution store.
func NewStore() *Store {
	return &Store{}
}

// Insert offers a candidate solution to the store.  It is accepted iff the
// store is empty or the candidate's transformed objective strictly improves
// on the incumbent's; dominated candidates are rejected and the store is
// left unchanged.
func (p *Store) Insert(sol *Solution) bool {
	if best := p.Best(); best != nil && sol.ObjTrans().Cmp(best.ObjTrans()) >= 0 {
		return false
	}
	//
	p.sols = append([]*Solution{sol}, p.sols...)
	log.Debugf("new incumbent with objective %s (%d stored)", sol.ObjTrans(), len(p.sols))
	//
	return true
}

// Best returns the incumbent, or nil if no solution has been found yet.
func (p *Store) Best() *Solution {
	if len(p.sols) == 0 {
		return nil
	}
	//
	return p.sols[0]
}

// Count returns the number of solutions held.
func (p *Store) Count() int {
	return len(p.sols)
}

// Clear releases all solutions at the end of solving.
func (p *Store) Clear() {
	p.sols = nil
}
