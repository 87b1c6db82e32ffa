// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements 1D Lagrange shape functions and Gauss integration points used to
// build test functions and integration weights
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc is the shape functions callback
//  Output:
//   S    -- [nverts] shape functions
//   dSdR -- [nverts][gndim] derivatives of shape functions w.r.t natural coordinates
//  Input:
//   r      -- natural coordinates
//   derivs -- compute derivatives
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "lin2"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; space dimension
	Nverts    int         // number of vertices in cell
	NatCoords [][]float64 // natural coordinates of vertices [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: dx/dR
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
}

// factory holds the prototypes of all shapes
var factory = map[string]*Shape{
	"lin2": {
		Type:      "lin2",
		Func:      FuncLin2,
		Gndim:     1,
		Nverts:    2,
		NatCoords: [][]float64{{-1, 1}},
	},
	"lin3": {
		Type:      "lin3",
		Func:      FuncLin3,
		Gndim:     1,
		Nverts:    3,
		NatCoords: [][]float64{{-1, 1, 0}},
	},
}

// Get returns a new shape structure; nil is returned if geoType is not available
func Get(geoType string) *Shape {
	p, ok := factory[geoType]
	if !ok {
		return nil
	}
	var o Shape
	o.Type = p.Type
	o.Func = p.Func
	o.Gndim = p.Gndim
	o.Nverts = p.Nverts
	o.NatCoords = p.NatCoords
	o.S = make([]float64, o.Nverts)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	return &o
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   X[gndim][nverts] -- coordinates of each vertex
//   r                -- natural coordinates
//   derivs           -- also compute derivatives
func (o *Shape) CalcAtIp(X [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// Jacobian: dx/dR
	o.J = 0
	for m := 0; m < o.Nverts; m++ {
		o.J += o.DSdR[m][0] * X[0][m]
	}
	if o.J < 1e-14 {
		return chk.Err("%s: Jacobian is invalid; J = %g. check the order of vertices", o.Type, o.J)
	}

	// G: dSdx
	for m := 0; m < o.Nverts; m++ {
		o.G[m][0] = o.DSdR[m][0] / o.J
	}
	return
}

// IpRealCoords returns the real coordinates (x) of an integration point
func (o *Shape) IpRealCoords(x []float64, X [][]float64, ip Ipoint) {
	o.Func(o.S, o.DSdR, ip[:], false)
	for i := 0; i < o.Gndim; i++ {
		x[i] = 0
		for m := 0; m < o.Nverts; m++ {
			x[i] += o.S[m] * X[i][m]
		}
	}
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements
//
//   -1     0    +1
//    0-----------1-->r
func FuncLin2(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncLin3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin3
// elements
//
//   -1     0    +1
//    0-----2-----1-->r
func FuncLin3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (r*r - r)
	S[1] = 0.5 * (r*r + r)
	S[2] = 1.0 - r*r
	if !derivs {
		return
	}
	dSdR[0][0] = r - 0.5
	dSdR[1][0] = r + 0.5
	dSdR[2][0] = -2.0 * r
}
