// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package asm implements the per-thread element assembly buffers: quadrature data, test and
// trial functions, location arrays and the element blocks of the residual and Jacobian
package asm

import (
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// varData holds the element data of one variable
type varData struct {
	epoch int          // element counter when this data was set
	phi   [][]float64  // [ndofs][nqp] test/trial functions @ ips
	dphi  [][]vars.Vec // [ndofs][nqp] gradients of test/trial functions @ ips
	umap  []int        // [ndofs] location array (global equations)
	re    la.Vector    // [ndofs] residual block
}

// jacBlock holds one element block of the Jacobian
type jacBlock struct {
	epoch int        // element counter when this block was zeroed
	ke    *la.Matrix // [ndofs(ivar)][ndofs(jvar)]
}

// Assembly holds the element data of one thread. It is never shared across threads.
//
//  Usage for each element:
//   1. Reinit(jxw, coord, xip)
//   2. SetVariable(num, phi, dphi, umap) for each variable
//   3. kernels accumulate into ResidualBlock and JacobianBlock
//   4. AddResidual and AddJacobian fold the blocks into global structures
type Assembly struct {
	Neq int // number of global equations

	// quadrature
	jxw   []float64 // [nqp] weights times determinant of Jacobian
	coord []float64 // [nqp] coordinate system factors
	xip   []float64 // [nqp] real coordinates of ips

	// variables and blocks
	epoch  int                  // element counter
	vars   map[int]*varData     // variable number => data
	active []int                // variables set for the current element; in order
	blocks map[[2]int]*jacBlock // (ivar, jvar) => block
	used   [][2]int             // blocks touched in the current element; in order
}

// NewAssembly returns a new assembly structure for neq global equations
func NewAssembly(neq int) (o *Assembly) {
	o = new(Assembly)
	o.Neq = neq
	o.vars = make(map[int]*varData)
	o.blocks = make(map[[2]int]*jacBlock)
	return
}

// Reinit starts a new element
//  Input:
//   jxw   -- [nqp] integration weights times determinant of Jacobian
//   coord -- [nqp] coordinate system factors; e.g. 2πr for axisymmetric problems
//   xip   -- [nqp] real coordinates of ips
func (o *Assembly) Reinit(jxw, coord, xip []float64) (err error) {
	if len(jxw) != len(coord) {
		return chk.Err("assembly: number of weights (%d) and coordinate factors (%d) differ", len(jxw), len(coord))
	}
	if len(jxw) != len(xip) {
		return chk.Err("assembly: number of weights (%d) and ip coordinates (%d) differ", len(jxw), len(xip))
	}
	o.epoch++
	o.jxw = append(o.jxw[:0], jxw...)
	o.coord = append(o.coord[:0], coord...)
	o.xip = append(o.xip[:0], xip...)
	o.active = o.active[:0]
	o.used = o.used[:0]
	return
}

// SetVariable sets the test/trial functions and location array of variable num
//  Input:
//   num  -- variable number
//   phi  -- [ndofs][nqp] test functions @ ips
//   dphi -- [ndofs][nqp] gradients of test functions; may be nil
//   umap -- [ndofs] global equations
func (o *Assembly) SetVariable(num int, phi [][]float64, dphi [][]vars.Vec, umap []int) (err error) {
	if len(phi) != len(umap) {
		return chk.Err("assembly: variable %d has %d test functions but %d equations", num, len(phi), len(umap))
	}
	if dphi != nil && len(dphi) != len(phi) {
		return chk.Err("assembly: variable %d has %d test functions but %d gradients", num, len(phi), len(dphi))
	}
	nqp := len(o.jxw)
	for m := range phi {
		if len(phi[m]) != nqp {
			return chk.Err("assembly: test function %d of variable %d has %d values; %d ips are required", m, num, len(phi[m]), nqp)
		}
		if dphi != nil && len(dphi[m]) != nqp {
			return chk.Err("assembly: gradient %d of variable %d has %d values; %d ips are required", m, num, len(dphi[m]), nqp)
		}
	}
	for _, I := range umap {
		if I < 0 || I >= o.Neq {
			return chk.Err("assembly: equation %d of variable %d is outside [0, %d)", I, num, o.Neq)
		}
	}
	d, ok := o.vars[num]
	if !ok {
		d = new(varData)
		o.vars[num] = d
	}
	if d.epoch == o.epoch {
		return chk.Err("assembly: variable %d was set twice in the same element", num)
	}
	d.epoch = o.epoch
	d.phi = phi
	d.dphi = dphi
	d.umap = append(d.umap[:0], umap...)
	if len(d.re) != len(umap) {
		d.re = la.NewVector(len(umap))
	} else {
		d.re.Fill(0)
	}
	o.active = append(o.active, num)
	return
}

// getters //////////////////////////////////////////////////////////////////////////////////////////

// NumPoints returns the number of integration points of the current element
func (o *Assembly) NumPoints() int { return len(o.jxw) }

// JxW returns the integration weights times the determinant of the Jacobian
func (o *Assembly) JxW() []float64 { return o.jxw }

// Coord returns the coordinate system factors
func (o *Assembly) Coord() []float64 { return o.coord }

// Xip returns the real coordinates of ips
func (o *Assembly) Xip() []float64 { return o.xip }

// Phi returns the test functions of variable num
func (o *Assembly) Phi(num int) ([][]float64, error) {
	d, err := o.get(num)
	if err != nil {
		return nil, err
	}
	return d.phi, nil
}

// GradPhi returns the gradients of test functions of variable num; nil if not given
func (o *Assembly) GradPhi(num int) ([][]vars.Vec, error) {
	d, err := o.get(num)
	if err != nil {
		return nil, err
	}
	return d.dphi, nil
}

// DofIndices returns the location array of variable num
func (o *Assembly) DofIndices(num int) ([]int, error) {
	d, err := o.get(num)
	if err != nil {
		return nil, err
	}
	return d.umap, nil
}

// ResidualBlock returns the element residual block of variable ivar; zeroed by SetVariable
func (o *Assembly) ResidualBlock(ivar int) (la.Vector, error) {
	d, err := o.get(ivar)
	if err != nil {
		return nil, err
	}
	return d.re, nil
}

// JacobianBlock returns the element Jacobian block (ivar, jvar); zeroed on first access in each element
func (o *Assembly) JacobianBlock(ivar, jvar int) (*la.Matrix, error) {
	di, err := o.get(ivar)
	if err != nil {
		return nil, err
	}
	dj, err := o.get(jvar)
	if err != nil {
		return nil, err
	}
	key := [2]int{ivar, jvar}
	b, ok := o.blocks[key]
	if !ok {
		b = new(jacBlock)
		o.blocks[key] = b
	}
	if b.epoch != o.epoch {
		m, n := len(di.umap), len(dj.umap)
		if b.ke == nil || b.ke.M != m || b.ke.N != n {
			b.ke = la.NewMatrix(m, n)
		} else {
			b.ke.Fill(0)
		}
		b.epoch = o.epoch
		o.used = append(o.used, key)
	}
	return b.ke, nil
}

// folding //////////////////////////////////////////////////////////////////////////////////////////

// Putter adds one entry to a sparse matrix; implemented by *la.Triplet and *Entries
type Putter interface {
	Put(i, j int, x float64)
}

// AddResidual adds the residual blocks of the current element to the global vector fb
func (o *Assembly) AddResidual(fb []float64) (err error) {
	if len(fb) != o.Neq {
		return chk.Err("assembly: global vector has %d entries; %d are required", len(fb), o.Neq)
	}
	for _, num := range o.active {
		d := o.vars[num]
		for i, I := range d.umap {
			fb[I] += d.re[i]
		}
	}
	return
}

// AddJacobian adds the Jacobian blocks of the current element to the global matrix Kb
func (o *Assembly) AddJacobian(Kb Putter) {
	for _, key := range o.used {
		b := o.blocks[key]
		di, dj := o.vars[key[0]], o.vars[key[1]]
		for i, I := range di.umap {
			for j, J := range dj.umap {
				Kb.Put(I, J, b.ke.Get(i, j))
			}
		}
	}
}

// Nnz returns the number of entries AddJacobian puts for the current element
func (o *Assembly) Nnz() (nnz int) {
	for _, key := range o.used {
		nnz += len(o.vars[key[0]].umap) * len(o.vars[key[1]].umap)
	}
	return
}

// get returns the data of a variable set for the current element
func (o *Assembly) get(num int) (*varData, error) {
	d, ok := o.vars[num]
	if !ok || d.epoch != o.epoch {
		return nil, chk.Err("assembly: variable %d is not registered in the current element", num)
	}
	return d, nil
}
