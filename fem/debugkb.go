// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// CheckJacobian compares Kb with central finite differences of Fb @ the current solution.
// The solution and the auxiliary system are restored upon exit.
//  Input:
//   step -- step of finite differences; 1e-6 if step < 1e-14
//  Output:
//   numerical -- [ny][ny] numerical Jacobian
//   maxdiff   -- max |Kb_ij - numerical_ij|
func (o *Domain) CheckJacobian(ctx context.Context, step float64) (numerical [][]float64, maxdiff float64, err error) {

	// analytical
	if err = o.ComputeJacobian(ctx); err != nil {
		return
	}
	Kana := o.Kb.ToDense()

	// backup and restore upon exit
	ybkp := append([]float64{}, o.Y...)
	abkp := append([]float64{}, o.Aux.Solution...)
	defer func() {
		copy(o.Y, ybkp)
		copy(o.Aux.Solution, abkp)
	}()

	// numerical
	if step < 1e-14 {
		step = 1e-6
	}
	Knum := mat.NewDense(o.Ny, o.Ny, nil)
	fd.Jacobian(Knum, func(r, y []float64) {
		if err != nil {
			return
		}
		copy(o.Y, y)
		if err = o.ComputeResidual(ctx); err != nil {
			return
		}
		copy(r, o.Fb)
	}, ybkp, &fd.JacobianSettings{Formula: fd.Central, Step: step})
	if err != nil {
		return
	}

	// compare
	numerical = make([][]float64, o.Ny)
	for i := 0; i < o.Ny; i++ {
		numerical[i] = make([]float64, o.Ny)
		for j := 0; j < o.Ny; j++ {
			numerical[i][j] = Knum.At(i, j)
			maxdiff = math.Max(maxdiff, math.Abs(Kana.Get(i, j)-numerical[i][j]))
		}
	}
	if o.ShowMsg {
		io.Pf(">> Jacobian check: max |Kana - Knum| = %g\n", maxdiff)
	}
	return
}
