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
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Diffusion implements the term
//
//   R_i = ∫ k ∇u · ∇ψ_i dΩ
//
type Diffusion struct {
	Base
	K float64 // k coefficient; "k" in prms

	// scratchpad
	gradTest [][]vars.Vec // [ntest][nqp] gradients of test functions
	localRe  la.Vector    // [ntest] local residual
	diag     la.Vector    // [ntest] diagonal of local Jacobian
}

// register kernel
func init() {
	allocators["diffusion"] = func() Kernel { return new(Diffusion) }
}

// Init initialises the kernel
func (o *Diffusion) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {
	if err = o.Base.Init(prms, prob, reg, a, tid); err != nil {
		return
	}
	o.K = prms.Prm("k", 1)
	return
}

// ComputeResidual adds Σ_qp k ∇u(qp) · ∇ψ_i(qp) JxW(qp) coord(qp) to the element residual block
func (o *Diffusion) ComputeResidual() (err error) {

	// element data
	num, err := o.prepare()
	if err != nil {
		return
	}
	re, err := o.Asm.ResidualBlock(num)
	if err != nil {
		return
	}

	// local residual
	if len(o.localRe) != len(re) {
		o.localRe = la.NewVector(len(re))
	} else {
		o.localRe.Fill(0)
	}
	jxw, coord := o.Asm.JxW(), o.Asm.Coord()
	for qp := 0; qp < o.Asm.NumPoints(); qp++ {
		c := o.K * jxw[qp] * coord[qp]
		for i := range o.gradTest {
			o.localRe[i] += c * floats.Dot(o.GradU[qp][:], o.gradTest[i][qp][:])
		}
	}
	floats.Add(re, o.localRe)

	// save-in
	if len(o.SaveIn) > 0 {
		return o.scatter(o.SaveIn, o.localRe)
	}
	return
}

// ComputeJacobian adds Σ_qp k ∇φ_j(qp) · ∇ψ_i(qp) JxW(qp) coord(qp) to the diagonal Jacobian
// block; nothing is added for explicit schemes since ∇u is the old gradient
func (o *Diffusion) ComputeJacobian() (err error) {

	// element data
	num, err := o.prepare()
	if err != nil {
		return
	}
	ke, err := o.Asm.JacobianBlock(num, num)
	if err != nil {
		return
	}
	if !o.IsImplicit() {
		return
	}

	// add to block
	jxw, coord := o.Asm.JxW(), o.Asm.Coord()
	n := len(o.gradTest)
	if len(o.diag) != n {
		o.diag = la.NewVector(n)
	} else {
		o.diag.Fill(0)
	}
	for qp := 0; qp < o.Asm.NumPoints(); qp++ {
		c := o.K * jxw[qp] * coord[qp]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := c * floats.Dot(o.gradTest[j][qp][:], o.gradTest[i][qp][:])
				ke.Add(i, j, v)
				if i == j {
					o.diag[i] += v
				}
			}
		}
	}

	// diagonal save-in
	if len(o.DiagSaveIn) > 0 {
		return o.scatter(o.DiagSaveIn, o.diag)
	}
	return
}

// ComputeOffDiagJacobian computes the diagonal block if jvar is Var; other variables do not
// contribute
func (o *Diffusion) ComputeOffDiagJacobian(jvar vars.Variable) (err error) {
	if jvar.Kind() != vars.Nonlinear {
		return chk.Err("kernel %q: cannot compute the Jacobian w.r.t %s variable %q", o.Name(), jvar.Kind(), jvar.Name())
	}
	if jvar.Number() == o.Var.Number() {
		return o.ComputeJacobian()
	}
	return
}

// prepare fetches the gradients of the test functions of the current element
func (o *Diffusion) prepare() (num int, err error) {
	num = o.Var.Number()
	o.gradTest, err = o.Asm.GradPhi(num)
	if err != nil {
		return
	}
	if o.gradTest == nil {
		return 0, chk.Err("kernel %q: gradients of test functions of %q are not available", o.Name(), o.Var.Name())
	}
	return
}
