// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import "github.com/cpmech/gosl/chk"

// Scalar implements a 0-D (lumped) unknown such as a global Lagrange multiplier.
// Order is the number of components; e.g. 1 for a single scalar.
type Scalar struct {
	Meta
	Order int                  // number of components
	sln   [NumStates][]float64 // values per state
}

// NewScalar returns a new scalar variable
func NewScalar(name string, num int, kind Kind, order int) (o *Scalar) {
	o = new(Scalar)
	o.VarName = name
	o.Num = num
	o.VarKind = kind
	o.Order = order
	for s := 0; s < int(NumStates); s++ {
		o.sln[s] = make([]float64, order)
	}
	return
}

// Clone returns a deep copy
func (o *Scalar) Clone() *Scalar {
	c := NewScalar(o.VarName, o.Num, o.VarKind, o.Order)
	for s := 0; s < int(NumStates); s++ {
		copy(c.sln[s], o.sln[s])
	}
	return c
}

// Sln returns the components for state s
func (o *Scalar) Sln(s State) []float64 { return o.sln[s] }

// Set sets the components for state s
func (o *Scalar) Set(s State, vals ...float64) (err error) {
	if len(vals) != o.Order {
		return chk.Err("scalar variable %q has order %d; %d values given", o.VarName, o.Order, len(vals))
	}
	copy(o.sln[s], vals)
	return
}
