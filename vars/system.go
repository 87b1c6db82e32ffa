// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import "github.com/cpmech/gosl/la"

// System holds one global solution vector shared by all threads; e.g. the auxiliary
// system where save-in variables write kernel contributions.
//
//  Writes into Solution are not synchronised here; callers serialise them.
type System struct {
	Name     string    // system name; e.g. "aux"
	Solution la.Vector // [neq] global solution
}

// NewSystem returns a new system with neq zeroed entries
func NewSystem(name string, neq int) *System {
	return &System{Name: name, Solution: la.NewVector(neq)}
}

// AddVector adds local values into Solution at the given equation numbers
func (o *System) AddVector(vals []float64, eqs []int) {
	for i, I := range eqs {
		o.Solution[I] += vals[i]
	}
}

// Reset zeroes the global solution
func (o *System) Reset() {
	o.Solution.Fill(0)
}
