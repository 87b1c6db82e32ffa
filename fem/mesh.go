// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/shp"
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Element holds the geometry and integration data of one element
type Element struct {
	Id    int          // element id
	Verts []int        // vertices
	X     [][]float64  // matrix of nodal coordinates [ndim][nverts]
	Ips   []shp.Ipoint // integration points
	Xip   []float64    // [nip] real coordinates of integration points
	JxW   []float64    // [nip] weights times determinant of Jacobian
	Coord []float64    // [nip] coordinate system factors

	// functions of nodal (nodal continuous) variables
	Phi  [][]float64  // [nverts][nip] shape functions @ ips
	Dphi [][]vars.Vec // [nverts][nip] gradients of shape functions @ ips

	// functions of elemental (constant per element) variables
	Phi0  [][]float64  // [1][nip] ones
	Dphi0 [][]vars.Vec // [1][nip] zeros
}

// CoordFactor returns the factor multiplying integrals @ radius r
//  xyz        -- 1
//  rz         -- 2πr
//  rspherical -- 4πr²
func CoordFactor(coord string, r float64) (res float64, err error) {
	switch coord {
	case inp.CoordXYZ:
		return 1, nil
	case inp.CoordRZ:
		return 2 * math.Pi * r, nil
	case inp.CoordRSpherical:
		return 4 * math.Pi * r * r, nil
	}
	return 0, chk.Err("coordinate system %q is not available", coord)
}

// Mesh1D generates lin2 elements with uniform sizes
//  Output:
//   elems  -- all elements
//   nverts -- number of vertices
func Mesh1D(md inp.MeshData, coord string) (elems []*Element, nverts int, err error) {

	// shape and integration points
	shape := shp.Get("lin2")
	ips, err := shp.GaussLegendre(md.Nip)
	if err != nil {
		return
	}
	if md.Nelem < 1 || md.Xmax <= md.Xmin {
		return nil, 0, chk.Err("cannot generate mesh with nelem=%d in [%g, %g]", md.Nelem, md.Xmin, md.Xmax)
	}

	// vertices
	xv := utl.LinSpace(md.Xmin, md.Xmax, md.Nelem+1)
	nverts = len(xv)

	// elements
	nip := len(ips)
	x := []float64{0}
	elems = make([]*Element, md.Nelem)
	for e := 0; e < md.Nelem; e++ {
		o := new(Element)
		o.Id = e
		o.Verts = []int{e, e + 1}
		o.X = [][]float64{{xv[e], xv[e+1]}}
		o.Ips = ips
		o.Xip = make([]float64, nip)
		o.JxW = make([]float64, nip)
		o.Coord = make([]float64, nip)
		o.Phi = utl.Alloc(shape.Nverts, nip)
		o.Dphi = make([][]vars.Vec, shape.Nverts)
		for m := 0; m < shape.Nverts; m++ {
			o.Dphi[m] = make([]vars.Vec, nip)
		}
		o.Phi0 = utl.Alloc(1, nip)
		o.Dphi0 = [][]vars.Vec{make([]vars.Vec, nip)}
		for idx, ip := range ips {
			err = shape.CalcAtIp(o.X, ip[:], true)
			if err != nil {
				return nil, 0, chk.Err("element %d: %v", e, err)
			}
			for m := 0; m < shape.Nverts; m++ {
				o.Phi[m][idx] = shape.S[m]
				o.Dphi[m][idx][0] = shape.G[m][0]
			}
			o.Phi0[0][idx] = 1
			o.JxW[idx] = shape.J * ip.W()
			shape.IpRealCoords(x, o.X, ip)
			o.Xip[idx] = x[0]
			o.Coord[idx], err = CoordFactor(coord, x[0])
			if err != nil {
				return
			}
		}
		elems[e] = o
	}
	return
}
