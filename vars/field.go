// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import "github.com/cpmech/gosl/chk"

// Field implements a scalar field variable (e.g. temperature, pressure).
//
//  Arrays are allocated once with maxQps (or maxDofs) entries and overwritten in place
//  whenever a new element is visited; slices returned by the getters may hence be kept.
//  Only the first nqp entries are meaningful for the active element.
type Field struct {
	Meta

	// shared data
	Sys *System // [optional] system holding the global solution vector of this variable

	// sizes
	MaxQps  int // capacity of quadrature-point arrays
	MaxDofs int // capacity of nodal arrays

	// per context and state
	sln    [NumContexts][NumStates]Value     // u @ ips
	grad   [NumContexts][NumStates]Gradient  // ∇u @ ips
	second [NumContexts][NumStates]Second    // ∇∇u @ ips; zero since Reinit takes no second derivatives of shape functions
	nodal  [NumContexts][NumStates]Value     // u @ nodes
	dofs   [NumContexts][NumStates][]float64 // raw element DOFs

	// time derivatives
	dot          [NumContexts]Value    // du/dt @ ips
	gradDot      [NumContexts]Gradient // ∇(du/dt) @ ips
	nodalDot     [NumContexts]Value    // du/dt @ nodes
	duDotDu      Value                 // d(du/dt)/du @ ips
	nodalDuDotDu Value                 // d(du/dt)/du @ nodes

	// element data
	dofIndices []int // global equation numbers of this variable in the active element
}

// NewField returns a new scalar field variable
func NewField(name string, num int, kind Kind, nodal bool, maxQps, maxDofs int) (o *Field) {
	o = new(Field)
	o.VarName = name
	o.Num = num
	o.VarKind = kind
	o.Nodal = nodal
	o.MaxQps = maxQps
	o.MaxDofs = maxDofs
	for c := 0; c < int(NumContexts); c++ {
		for s := 0; s < int(NumStates); s++ {
			o.sln[c][s] = make(Value, maxQps)
			o.grad[c][s] = make(Gradient, maxQps)
			o.second[c][s] = make(Second, maxQps)
			o.nodal[c][s] = make(Value, maxDofs)
			o.dofs[c][s] = make([]float64, 0, maxDofs)
		}
		o.dot[c] = make(Value, maxQps)
		o.gradDot[c] = make(Gradient, maxQps)
		o.nodalDot[c] = make(Value, maxDofs)
	}
	o.duDotDu = make(Value, maxQps)
	o.nodalDuDotDu = make(Value, maxDofs)
	return
}

// Clone returns a deep copy sharing only the System; used to give each thread its own handle
func (o *Field) Clone() *Field {
	c := NewField(o.VarName, o.Num, o.VarKind, o.Nodal, o.MaxQps, o.MaxDofs)
	c.Sys = o.Sys
	for ctx := 0; ctx < int(NumContexts); ctx++ {
		for s := 0; s < int(NumStates); s++ {
			copy(c.sln[ctx][s], o.sln[ctx][s])
			copy(c.grad[ctx][s], o.grad[ctx][s])
			copy(c.second[ctx][s], o.second[ctx][s])
			copy(c.nodal[ctx][s], o.nodal[ctx][s])
			c.dofs[ctx][s] = append(c.dofs[ctx][s], o.dofs[ctx][s]...)
		}
		copy(c.dot[ctx], o.dot[ctx])
		copy(c.gradDot[ctx], o.gradDot[ctx])
		copy(c.nodalDot[ctx], o.nodalDot[ctx])
	}
	copy(c.duDotDu, o.duDotDu)
	copy(c.nodalDuDotDu, o.nodalDuDotDu)
	c.dofIndices = append(c.dofIndices, o.dofIndices...)
	return c
}

// getters //////////////////////////////////////////////////////////////////////////////////////////

// Sln returns u @ ips
func (o *Field) Sln(ctx Context, s State) Value { return o.sln[ctx][s] }

// GradSln returns ∇u @ ips
func (o *Field) GradSln(ctx Context, s State) Gradient { return o.grad[ctx][s] }

// SecondSln returns ∇∇u @ ips
func (o *Field) SecondSln(ctx Context, s State) Second { return o.second[ctx][s] }

// NodalValue returns u @ nodes
func (o *Field) NodalValue(ctx Context, s State) Value { return o.nodal[ctx][s] }

// SolutionDoFs returns the raw DOFs of the active element
func (o *Field) SolutionDoFs(ctx Context, s State) []float64 { return o.dofs[ctx][s] }

// Dot returns du/dt @ ips
func (o *Field) Dot(ctx Context) Value { return o.dot[ctx] }

// GradDot returns ∇(du/dt) @ ips
func (o *Field) GradDot(ctx Context) Gradient { return o.gradDot[ctx] }

// NodalDot returns du/dt @ nodes
func (o *Field) NodalDot(ctx Context) Value { return o.nodalDot[ctx] }

// DuDotDu returns d(du/dt)/du @ ips
func (o *Field) DuDotDu() Value { return o.duDotDu }

// NodalDuDotDu returns d(du/dt)/du @ nodes
func (o *Field) NodalDuDotDu() Value { return o.nodalDuDotDu }

// DofIndices returns the global equation numbers of this variable in the active element
func (o *Field) DofIndices() []int { return o.dofIndices }

// SetDofIndices sets the global equation numbers of this variable in the active element
func (o *Field) SetDofIndices(eqs []int) {
	o.dofIndices = append(o.dofIndices[:0], eqs...)
}

// reinitialisation /////////////////////////////////////////////////////////////////////////////////

// Reinit interpolates u and ∇u @ ips from element DOFs
//  Input:
//   ctx  -- element or neighbor
//   s    -- time state the DOFs belong to
//   dofs -- [ndofs] DOF values of the element
//   phi  -- [ndofs][nqp] shape functions @ ips
//   dphi -- [ndofs][nqp] gradients of shape functions @ ips; may be nil
func (o *Field) Reinit(ctx Context, s State, dofs []float64, phi [][]float64, dphi [][]Vec) (err error) {
	nqp, err := o.checkSizes(dofs, phi, dphi)
	if err != nil {
		return
	}
	o.dofs[ctx][s] = append(o.dofs[ctx][s][:0], dofs...)
	interp(o.sln[ctx][s], o.grad[ctx][s], dofs, phi, dphi, nqp)
	copy(o.nodal[ctx][s], dofs)
	return
}

// ReinitDot interpolates du/dt and ∇(du/dt) @ ips from element rates
//  Input:
//   ctx     -- element or neighbor
//   rates   -- [ndofs] du/dt @ DOFs
//   duDotDu -- d(du/dt)/du of the time integrator; e.g. 1/Δt for backward Euler
//   phi     -- [ndofs][nqp] shape functions @ ips
//   dphi    -- [ndofs][nqp] gradients of shape functions @ ips; may be nil
func (o *Field) ReinitDot(ctx Context, rates []float64, duDotDu float64, phi [][]float64, dphi [][]Vec) (err error) {
	nqp, err := o.checkSizes(rates, phi, dphi)
	if err != nil {
		return
	}
	interp(o.dot[ctx], o.gradDot[ctx], rates, phi, dphi, nqp)
	copy(o.nodalDot[ctx], rates)
	for i := 0; i < nqp; i++ {
		o.duDotDu[i] = duDotDu
	}
	for i := 0; i < len(rates); i++ {
		o.nodalDuDotDu[i] = duDotDu
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// checkSizes checks the layout of dofs and shape functions and returns nqp
func (o *Field) checkSizes(dofs []float64, phi [][]float64, dphi [][]Vec) (nqp int, err error) {
	if len(dofs) != len(phi) {
		return 0, chk.Err("variable %q: number of DOFs (%d) and shape functions (%d) differ", o.VarName, len(dofs), len(phi))
	}
	if len(dofs) > o.MaxDofs {
		return 0, chk.Err("variable %q: %d DOFs exceed capacity %d", o.VarName, len(dofs), o.MaxDofs)
	}
	if len(phi) > 0 {
		nqp = len(phi[0])
	}
	if nqp > o.MaxQps {
		return 0, chk.Err("variable %q: %d ips exceed capacity %d", o.VarName, nqp, o.MaxQps)
	}
	if dphi != nil && len(dphi) != len(phi) {
		return 0, chk.Err("variable %q: number of shape functions (%d) and gradients (%d) differ", o.VarName, len(phi), len(dphi))
	}
	return
}

// interp computes Σ dofs[m] φ[m][qp] and Σ dofs[m] ∇φ[m][qp]
func interp(val Value, grad Gradient, dofs []float64, phi [][]float64, dphi [][]Vec, nqp int) {
	for qp := 0; qp < nqp; qp++ {
		val[qp] = 0
		grad[qp] = Vec{}
		for m, d := range dofs {
			val[qp] += d * phi[m][qp]
			if dphi != nil {
				for k := 0; k < 3; k++ {
					grad[qp][k] += d * dphi[m][qp][k]
				}
			}
		}
	}
}
