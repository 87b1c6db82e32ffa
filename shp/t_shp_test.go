// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. lin2 and lin3")

	for _, name := range []string{"lin2", "lin3"} {
		shape := Get(name)
		if shape == nil {
			tst.Errorf("cannot get %s\n", name)
			return
		}
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		for _, r := range utl.LinSpace(-1, 1, 5) {
			CheckDSdR(tst, shape, []float64{r, 0, 0}, 1e-8, chk.Verbose)
		}
	}
	if Get("qua4") != nil {
		tst.Errorf("qua4 is not available\n")
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. CalcAtIp")

	shape := Get("lin2")
	X := [][]float64{{1, 3}}
	err := shape.CalcAtIp(X, []float64{0, 0, 0}, true)
	if err != nil {
		tst.Errorf("CalcAtIp failed: %v\n", err)
		return
	}
	chk.Float64(tst, "J", 1e-15, shape.J, 1)
	chk.Float64(tst, "G0", 1e-15, shape.G[0][0], -0.5)
	chk.Float64(tst, "G1", 1e-15, shape.G[1][0], 0.5)

	x := []float64{0}
	shape.IpRealCoords(x, X, Ipoint{0.5, 0, 0, 1})
	chk.Float64(tst, "x", 1e-15, x[0], 2.5)

	// inverted element
	err = shape.CalcAtIp([][]float64{{3, 1}}, []float64{0, 0, 0}, true)
	if err == nil {
		tst.Errorf("inverted element should fail\n")
	}
}

func Test_ips01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips01. Gauss-Legendre")

	for n := 1; n <= 8; n++ {
		ips, err := GaussLegendre(n)
		if err != nil {
			tst.Errorf("GaussLegendre failed: %v\n", err)
			return
		}
		chk.Int(tst, "nip", len(ips), n)

		// ∫ x^(2n-2) dx on [-1,1] = 2/(2n-1)
		p := float64(2*n - 2)
		res := 0.0
		for _, ip := range ips {
			res += math.Pow(ip[0], p) * ip.W()
		}
		chk.Float64(tst, "∫x^p", 1e-13, res, 2.0/(p+1.0))
	}

	ips, err := GaussLegendre(2)
	if err != nil {
		tst.Errorf("GaussLegendre failed: %v\n", err)
		return
	}
	a := 1.0 / math.Sqrt(3.0)
	chk.Array(tst, "x", 1e-14, []float64{ips[0][0], ips[1][0]}, []float64{-a, a})
	chk.Array(tst, "w", 1e-14, []float64{ips[0].W(), ips[1].W()}, []float64{1, 1})

	if _, err := GaussLegendre(0); err == nil {
		tst.Errorf("zero points should fail\n")
	}
}
