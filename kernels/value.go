// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// QpFunctions defines the scalar contributions computed by a value-based kernel @ one ip.
// The i and j indices select the test and trial functions in Base.Test and Base.Trial.
type QpFunctions interface {
	PrecomputeQpResidual(qp int) float64                 // residual value; multiplied by test functions
	PrecomputeQpJacobian(qp, j int) float64              // d(residual value)/du_j; multiplied by test functions
	ComputeQpOffDiagJacobian(qp, i, j, jvar int) float64 // complete off-diagonal term w.r.t variable jvar
}

// NoContribution implements QpFunctions with zero contributions
type NoContribution struct{}

// PrecomputeQpResidual returns zero
func (NoContribution) PrecomputeQpResidual(qp int) float64 { return 0 }

// PrecomputeQpJacobian returns zero
func (NoContribution) PrecomputeQpJacobian(qp, j int) float64 { return 0 }

// ComputeQpOffDiagJacobian returns zero
func (NoContribution) ComputeQpOffDiagJacobian(qp, i, j, jvar int) float64 { return 0 }

// ValueBased implements the assembly loop of kernels whose residual is a precomputed scalar
// @ each ip times the test functions
type ValueBased struct {
	Base
	Fcns QpFunctions // quadrature-point functions; set by the concrete kernel

	// scratchpad
	localRe la.Vector  // [ntest] local residual
	localKe *la.Matrix // [ntest][ntrial] local Jacobian
	diag    la.Vector  // [ntest] diagonal of local Jacobian
}

// ComputeResidual adds Σ_qp value(qp) JxW(qp) coord(qp) test(i,qp) to the element residual block
func (o *ValueBased) ComputeResidual() (err error) {

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
		value := o.Fcns.PrecomputeQpResidual(qp) * jxw[qp] * coord[qp]
		for i := range o.Test {
			o.localRe[i] += value * o.Test[i][qp]
		}
	}
	floats.Add(re, o.localRe)

	// save-in
	if len(o.SaveIn) > 0 {
		return o.scatter(o.SaveIn, o.localRe)
	}
	return
}

// ComputeJacobian adds Σ_qp value(qp,j) JxW(qp) coord(qp) test(i,qp) to the diagonal Jacobian block
func (o *ValueBased) ComputeJacobian() (err error) {

	// element data
	num, err := o.prepare()
	if err != nil {
		return
	}
	ke, err := o.Asm.JacobianBlock(num, num)
	if err != nil {
		return
	}
	o.Trial = o.Test
	m, n := ke.M, ke.N

	// local Jacobian
	if o.localKe == nil || o.localKe.M != m || o.localKe.N != n {
		o.localKe = la.NewMatrix(m, n)
	} else {
		o.localKe.Fill(0)
	}
	jxw, coord := o.Asm.JxW(), o.Asm.Coord()
	for qp := 0; qp < o.Asm.NumPoints(); qp++ {
		for j := 0; j < n; j++ {
			value := o.Fcns.PrecomputeQpJacobian(qp, j) * jxw[qp] * coord[qp]
			for i := 0; i < m; i++ {
				o.localKe.Add(i, j, value*o.Test[i][qp])
			}
		}
	}
	floats.Add(ke.Data, o.localKe.Data)

	// diagonal save-in
	if len(o.DiagSaveIn) > 0 {
		if len(o.diag) != m {
			o.diag = la.NewVector(m)
		}
		for i := 0; i < m; i++ {
			o.diag[i] = o.localKe.Get(i, i)
		}
		return o.scatter(o.DiagSaveIn, o.diag)
	}
	return
}

// ComputeOffDiagJacobian adds Σ_qp JxW(qp) coord(qp) offdiag(qp,i,j) to the Jacobian block
// (Var, jvar); the diagonal path is used if jvar is Var
func (o *ValueBased) ComputeOffDiagJacobian(jvar vars.Variable) (err error) {

	// diagonal
	if jvar.Kind() != vars.Nonlinear {
		return chk.Err("kernel %q: cannot compute the Jacobian w.r.t %s variable %q", o.Name(), jvar.Kind(), jvar.Name())
	}
	jnum := jvar.Number()
	if jnum == o.Var.Number() {
		return o.ComputeJacobian()
	}

	// element data
	num, err := o.prepare()
	if err != nil {
		return
	}
	ke, err := o.Asm.JacobianBlock(num, jnum)
	if err != nil {
		return
	}
	o.Trial, err = o.Asm.Phi(jnum)
	if err != nil {
		return
	}

	// add directly to block
	jxw, coord := o.Asm.JxW(), o.Asm.Coord()
	for j := range o.Trial {
		for qp := 0; qp < o.Asm.NumPoints(); qp++ {
			for i := range o.Test {
				ke.Add(i, j, jxw[qp]*coord[qp]*o.Fcns.ComputeQpOffDiagJacobian(qp, i, j, jnum))
			}
		}
	}
	return
}

// prepare fetches the test functions of the current element
func (o *ValueBased) prepare() (num int, err error) {
	if o.Fcns == nil {
		return 0, chk.Err("kernel %q has no quadrature-point functions", o.Name())
	}
	num = o.Var.Number()
	o.Test, err = o.Asm.Phi(num)
	return
}
