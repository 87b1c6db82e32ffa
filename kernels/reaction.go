// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gocouple/asm"
	"github.com/cpmech/gocouple/coupling"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gosl/fun/dbf"
)

// Reaction implements the term
//
//   R_i = ∫ λ u ψ_i dΩ
//
type Reaction struct {
	ValueBased
	NoContribution
	Lambda float64 // λ coefficient; "lambda" in prms
}

// register kernel
func init() {
	allocators["reaction"] = func() Kernel { return new(Reaction) }
}

// Init initialises the kernel
func (o *Reaction) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.Lambda = prms.Prm("lambda", 1)
	return
}

// PrecomputeQpResidual returns λ u
func (o *Reaction) PrecomputeQpResidual(qp int) float64 {
	return o.Lambda * o.U[qp]
}

// PrecomputeQpJacobian returns λ φ_j; zero for explicit schemes since u is the old value
func (o *Reaction) PrecomputeQpJacobian(qp, j int) float64 {
	if !o.IsImplicit() {
		return 0
	}
	return o.Lambda * o.Trial[j][qp]
}

// BodyForce implements the source term
//
//   R_i = -∫ f(t, x) ψ_i dΩ
//
//  f is the function Func with FuncPrms in the parameters; e.g. xpoly1 with a0 gives f = a0 x.
//  Without Func, f is the constant "value" in prms.
type BodyForce struct {
	ValueBased
	NoContribution
	Fcn dbf.T // f(t, x)

	// auxiliary
	prob coupling.Problem // gives the time
	x    []float64        // real coordinates of the current ip
}

// register kernel
func init() {
	allocators["body-force"] = func() Kernel { return new(BodyForce) }
}

// Init initialises the kernel
func (o *BodyForce) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.Fcn, err = newFunction(prms, prms.Prm("value", 1))
	if err != nil {
		return
	}
	o.prob = prob
	o.x = make([]float64, 3)
	return
}

// PrecomputeQpResidual returns -f(t, x) @ ip
func (o *BodyForce) PrecomputeQpResidual(qp int) float64 {
	o.x[0] = o.Asm.Xip()[qp]
	return -o.Fcn.F(o.prob.Time(), o.x)
}
