// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import "github.com/cpmech/gosl/chk"

// VectorField implements a vector-valued field variable (e.g. Nédélec electric field).
// Vector fields are not required to be continuous at nodes and have no nodal arrays.
type VectorField struct {
	Meta

	// sizes
	MaxQps  int // capacity of quadrature-point arrays
	MaxDofs int // capacity of DOF arrays

	// per context and state
	sln  [NumContexts][NumStates]VectorValue // u @ ips
	curl [NumContexts][NumStates]Curl        // ∇×u @ ips
	dofs [NumContexts][NumStates][]float64   // raw element DOFs

	// time derivatives
	dot [NumContexts]VectorValue // du/dt @ ips
}

// NewVectorField returns a new vector field variable
func NewVectorField(name string, num int, kind Kind, maxQps, maxDofs int) (o *VectorField) {
	o = new(VectorField)
	o.VarName = name
	o.Num = num
	o.VarKind = kind
	o.MaxQps = maxQps
	o.MaxDofs = maxDofs
	for c := 0; c < int(NumContexts); c++ {
		for s := 0; s < int(NumStates); s++ {
			o.sln[c][s] = make(VectorValue, maxQps)
			o.curl[c][s] = make(Curl, maxQps)
			o.dofs[c][s] = make([]float64, 0, maxDofs)
		}
		o.dot[c] = make(VectorValue, maxQps)
	}
	return
}

// Clone returns a deep copy
func (o *VectorField) Clone() *VectorField {
	c := NewVectorField(o.VarName, o.Num, o.VarKind, o.MaxQps, o.MaxDofs)
	c.Nodal = o.Nodal
	for ctx := 0; ctx < int(NumContexts); ctx++ {
		for s := 0; s < int(NumStates); s++ {
			copy(c.sln[ctx][s], o.sln[ctx][s])
			copy(c.curl[ctx][s], o.curl[ctx][s])
			c.dofs[ctx][s] = append(c.dofs[ctx][s], o.dofs[ctx][s]...)
		}
		copy(c.dot[ctx], o.dot[ctx])
	}
	return c
}

// Sln returns u @ ips
func (o *VectorField) Sln(ctx Context, s State) VectorValue { return o.sln[ctx][s] }

// CurlSln returns ∇×u @ ips
func (o *VectorField) CurlSln(ctx Context, s State) Curl { return o.curl[ctx][s] }

// SolutionDoFs returns the raw DOFs of the active element
func (o *VectorField) SolutionDoFs(ctx Context, s State) []float64 { return o.dofs[ctx][s] }

// Dot returns du/dt @ ips
func (o *VectorField) Dot(ctx Context) VectorValue { return o.dot[ctx] }

// Reinit interpolates u and ∇×u @ ips from element DOFs
//  Input:
//   phi  -- [ndofs][nqp] vector shape functions @ ips
//   cphi -- [ndofs][nqp] curls of vector shape functions @ ips; may be nil
func (o *VectorField) Reinit(ctx Context, s State, dofs []float64, phi, cphi [][]Vec) (err error) {
	if len(dofs) != len(phi) || (cphi != nil && len(cphi) != len(phi)) {
		return chk.Err("variable %q: DOFs and shape functions have inconsistent sizes", o.VarName)
	}
	if len(dofs) > o.MaxDofs {
		return chk.Err("variable %q: %d DOFs exceed capacity %d", o.VarName, len(dofs), o.MaxDofs)
	}
	nqp := 0
	if len(phi) > 0 {
		nqp = len(phi[0])
	}
	if nqp > o.MaxQps {
		return chk.Err("variable %q: %d ips exceed capacity %d", o.VarName, nqp, o.MaxQps)
	}
	o.dofs[ctx][s] = append(o.dofs[ctx][s][:0], dofs...)
	for qp := 0; qp < nqp; qp++ {
		o.sln[ctx][s][qp] = Vec{}
		o.curl[ctx][s][qp] = Vec{}
		for m, d := range dofs {
			for k := 0; k < 3; k++ {
				o.sln[ctx][s][qp][k] += d * phi[m][qp][k]
				if cphi != nil {
					o.curl[ctx][s][qp][k] += d * cphi[m][qp][k]
				}
			}
		}
	}
	return
}

// ReinitDot interpolates du/dt @ ips from element rates
//  Input:
//   rates -- [ndofs] du/dt @ DOFs
//   phi   -- [ndofs][nqp] vector shape functions @ ips
func (o *VectorField) ReinitDot(ctx Context, rates []float64, phi [][]Vec) (err error) {
	if len(rates) != len(phi) {
		return chk.Err("variable %q: number of rates (%d) and shape functions (%d) differ", o.VarName, len(rates), len(phi))
	}
	nqp := 0
	if len(phi) > 0 {
		nqp = len(phi[0])
	}
	if nqp > o.MaxQps {
		return chk.Err("variable %q: %d ips exceed capacity %d", o.VarName, nqp, o.MaxQps)
	}
	for qp := 0; qp < nqp; qp++ {
		o.dot[ctx][qp] = Vec{}
		for m, r := range rates {
			for k := 0; k < 3; k++ {
				o.dot[ctx][qp][k] += r * phi[m][qp][k]
			}
		}
	}
	return
}
