// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes and add up to 1.0 elsewhere
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// partition of unity
	r[0] = 0.3
	shape.Func(shape.S, shape.DSdR, r, false)
	sum := 0.0
	for m := 0; m < shape.Nverts; m++ {
		sum += shape.S[m]
	}
	errS += math.Abs(sum - 1.0)

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures with central differences
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)
	ana := make([]float64, shape.Nverts)
	for m := 0; m < shape.Nverts; m++ {
		ana[m] = shape.DSdR[m][0]
	}

	// numerical
	h := 1e-4
	sp := make([]float64, shape.Nverts)
	sm := make([]float64, shape.Nverts)
	x := []float64{r[0] + h, 0, 0}
	shape.Func(sp, nil, x, false)
	x[0] = r[0] - h
	shape.Func(sm, nil, x, false)
	for m := 0; m < shape.Nverts; m++ {
		num := (sp[m] - sm[m]) / (2.0 * h)
		if verbose {
			io.Pforan("dS%d/dR: ana = %v  num = %v\n", m, ana[m], num)
		}
		chk.Float64(tst, io.Sf("dS%d/dR", m), tol, ana[m], num)
	}
}
