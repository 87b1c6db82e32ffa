// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gocouple/asm"
	"github.com/cpmech/gocouple/coupling"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// CoupledForce implements a source proportional to the variable coupled as "v"
//
//   R_i = -∫ σ v ψ_i dΩ
//
type CoupledForce struct {
	ValueBased
	Sigma float64 // σ coefficient; "sigma" in prms

	// coupling
	v    vars.Value // v @ ips
	vnum int        // number of v; -1 if v is not a nonlinear variable
}

// register kernel
func init() {
	allocators["coupled-force"] = func() Kernel { return new(CoupledForce) }
}

// Init initialises the kernel
func (o *CoupledForce) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.Sigma = prms.Prm("sigma", 1)
	o.v, err = o.Coupleable.Value("v", 0)
	if err != nil {
		return
	}
	o.vnum, err = nonlinearNumber(o.Coupleable, "v")
	return
}

// PrecomputeQpResidual returns -σ v
func (o *CoupledForce) PrecomputeQpResidual(qp int) float64 {
	return -o.Sigma * o.v[qp]
}

// PrecomputeQpJacobian returns zero; the residual does not depend on u
func (o *CoupledForce) PrecomputeQpJacobian(qp, j int) float64 {
	return 0
}

// ComputeQpOffDiagJacobian returns -σ φ_j ψ_i if jvar is v; zero for explicit schemes since v
// is the old value
func (o *CoupledForce) ComputeQpOffDiagJacobian(qp, i, j, jvar int) float64 {
	if jvar == o.vnum && o.IsImplicit() {
		return -o.Sigma * o.Trial[j][qp] * o.Test[i][qp]
	}
	return 0
}

// ScalarForce implements a uniform source given by the scalar (0-D) variables coupled as "s"
//
//   R_i = -∫ σ (Σ_c s_c) ψ_i dΩ
//
//  If s is not supplied, its default value is used.
type ScalarForce struct {
	ValueBased
	NoContribution
	Sigma float64 // σ coefficient; "sigma" in prms

	// coupling
	s [][]float64 // [ncomp] components of s; old values for explicit schemes
}

// register kernel
func init() {
	allocators["scalar-force"] = func() Kernel { return new(ScalarForce) }
}

// Init initialises the kernel
func (o *ScalarForce) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.Sigma = prms.Prm("sigma", 1)
	ncomp := max(o.ScalarComponents("s"), 1)
	o.s = make([][]float64, ncomp)
	for c := 0; c < ncomp; c++ {
		if o.s[c], err = o.ScalarValue("s", c); err != nil {
			return
		}
	}
	return
}

// PrecomputeQpResidual returns -σ Σ_c s_c
func (o *ScalarForce) PrecomputeQpResidual(qp int) (res float64) {
	for _, s := range o.s {
		res += floats.Sum(s)
	}
	return -o.Sigma * res
}

// TimeDerivative implements the rate of the kernel variable
//
//   R_i = ∫ (du/dt) ψ_i dΩ
//
type TimeDerivative struct {
	ValueBased
	NoContribution
	udot    vars.Value // du/dt @ ips
	duDotDu vars.Value // d(du/dt)/du @ ips
}

// register kernel
func init() {
	allocators["time-derivative"] = func() Kernel { return new(TimeDerivative) }
}

// Init initialises the kernel
func (o *TimeDerivative) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if !prob.IsTransient() {
		return chk.Err("kernel %q: time derivatives require a transient problem", prms.Name)
	}
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.udot = o.Var.Dot(vars.Element)
	o.duDotDu = o.Var.DuDotDu()
	return
}

// PrecomputeQpResidual returns du/dt
func (o *TimeDerivative) PrecomputeQpResidual(qp int) float64 {
	return o.udot[qp]
}

// PrecomputeQpJacobian returns φ_j d(du/dt)/du
func (o *TimeDerivative) PrecomputeQpJacobian(qp, j int) float64 {
	return o.Trial[j][qp] * o.duDotDu[qp]
}

// CoupledTimeDerivative implements the rate of the variable coupled as "v"
//
//   R_i = ∫ (dv/dt) ψ_i dΩ
//
type CoupledTimeDerivative struct {
	ValueBased
	vdot    vars.Value // dv/dt @ ips
	dvDotDv vars.Value // d(dv/dt)/dv @ ips
	vnum    int        // number of v; -1 if v is not a nonlinear variable
}

// register kernel
func init() {
	allocators["coupled-time-derivative"] = func() Kernel { return new(CoupledTimeDerivative) }
}

// Init initialises the kernel
func (o *CoupledTimeDerivative) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.Fcns = o
	o.vdot, err = o.Coupleable.Dot("v", 0)
	if err != nil {
		return
	}
	o.dvDotDv, err = o.Coupleable.DotDu("v", 0)
	if err != nil {
		return
	}
	o.vnum, err = nonlinearNumber(o.Coupleable, "v")
	return
}

// PrecomputeQpResidual returns dv/dt
func (o *CoupledTimeDerivative) PrecomputeQpResidual(qp int) float64 {
	return o.vdot[qp]
}

// PrecomputeQpJacobian returns zero; the residual does not depend on u
func (o *CoupledTimeDerivative) PrecomputeQpJacobian(qp, j int) float64 {
	return 0
}

// ComputeQpOffDiagJacobian returns φ_j ψ_i d(dv/dt)/dv if jvar is v
func (o *CoupledTimeDerivative) ComputeQpOffDiagJacobian(qp, i, j, jvar int) float64 {
	if jvar == o.vnum {
		return o.Trial[j][qp] * o.Test[i][qp] * o.dvDotDv[qp]
	}
	return 0
}

// nonlinearNumber returns the number of the nonlinear variable coupled as name or -1
func nonlinearNumber(c *coupling.Coupleable, name string) (num int, err error) {
	id, err := c.Coupled(name, 0)
	if err != nil {
		return -1, err
	}
	if id.Kind != coupling.IdNonlinear {
		return -1, nil
	}
	return id.Num, nil
}
