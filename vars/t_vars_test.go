// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_field01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field01. interpolation from DOFs")

	u := NewField("u", 0, Nonlinear, true, 2, 2)

	// lin2 element @ two ips
	phi := [][]float64{
		{0.75, 0.25},
		{0.25, 0.75},
	}
	dphi := [][]Vec{
		{{-0.5, 0, 0}, {-0.5, 0, 0}},
		{{0.5, 0, 0}, {0.5, 0, 0}},
	}
	err := u.Reinit(Element, Current, []float64{2, 6}, phi, dphi)
	if err != nil {
		tst.Errorf("Reinit failed: %v\n", err)
		return
	}
	chk.Array(tst, "u", 1e-15, u.Sln(Element, Current), []float64{3, 5})
	chk.Float64(tst, "∇u[0]", 1e-15, u.GradSln(Element, Current)[0][0], 2)
	chk.Float64(tst, "∇u[1]", 1e-15, u.GradSln(Element, Current)[1][0], 2)
	chk.Array(tst, "nodal", 1e-15, u.NodalValue(Element, Current), []float64{2, 6})
	chk.Array(tst, "dofs", 1e-15, u.SolutionDoFs(Element, Current), []float64{2, 6})

	// other states and contexts are untouched
	chk.Array(tst, "uOld", 1e-15, u.Sln(Element, Old), []float64{0, 0})
	chk.Array(tst, "uNeigh", 1e-15, u.Sln(Neighbor, Current), []float64{0, 0})

	// rates
	err = u.ReinitDot(Element, []float64{1, 1}, 10, phi, nil)
	if err != nil {
		tst.Errorf("ReinitDot failed: %v\n", err)
		return
	}
	chk.Array(tst, "dot", 1e-15, u.Dot(Element), []float64{1, 1})
	chk.Array(tst, "duDotDu", 1e-15, u.DuDotDu(), []float64{10, 10})
	chk.Array(tst, "nodalDuDotDu", 1e-15, u.NodalDuDotDu(), []float64{10, 10})

	// slices are stable across reinit
	sln := u.Sln(Element, Current)
	err = u.Reinit(Element, Current, []float64{0, 4}, phi, dphi)
	if err != nil {
		tst.Errorf("Reinit failed: %v\n", err)
		return
	}
	chk.Array(tst, "u (kept slice)", 1e-15, sln, []float64{1, 3})

	// wrong sizes
	err = u.Reinit(Element, Current, []float64{1, 2, 3}, phi, dphi)
	if err == nil {
		tst.Errorf("Reinit should have failed with inconsistent sizes\n")
	}
}

func Test_field02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field02. clones")

	u := NewField("u", 3, Auxiliary, false, 1, 1)
	u.Sys = NewSystem("aux", 4)
	u.SetDofIndices([]int{2})
	u.Reinit(Element, Old, []float64{7}, [][]float64{{1}}, nil)

	c := u.Clone()
	chk.Array(tst, "clone old", 1e-15, c.Sln(Element, Old), []float64{7})
	chk.Ints(tst, "clone dofs", c.DofIndices(), []int{2})
	if c.Sys != u.Sys {
		tst.Errorf("clone must share the system\n")
	}

	c.Reinit(Element, Old, []float64{-1}, [][]float64{{1}}, nil)
	chk.Array(tst, "original old", 1e-15, u.Sln(Element, Old), []float64{7})

	u.Sys.AddVector([]float64{1.5}, u.DofIndices())
	c.Sys.AddVector([]float64{1.5}, c.DofIndices())
	chk.Array(tst, "aux solution", 1e-15, u.Sys.Solution, []float64{0, 0, 3, 0})
	u.Sys.Reset()
	chk.Array(tst, "aux solution (reset)", 1e-15, u.Sys.Solution, []float64{0, 0, 0, 0})
}

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01")

	reg := NewRegistry(3)
	for _, v := range []Variable{
		NewField("u", 0, Nonlinear, true, 2, 2),
		NewField("w", 0, Auxiliary, false, 2, 2),
		NewVectorField("E", 1, Nonlinear, 2, 2),
		NewScalar("lam", 2, Nonlinear, 1),
	} {
		err := reg.Add(v)
		if err != nil {
			tst.Errorf("Add failed: %v\n", err)
			return
		}
	}
	if err := reg.Add(NewScalar("u", 9, Nonlinear, 1)); err == nil {
		tst.Errorf("duplicated name should fail\n")
	}

	if !reg.HasVariable("u") || !reg.HasVariable("E") || reg.HasVariable("lam") {
		tst.Errorf("HasVariable is incorrect\n")
	}
	if !reg.HasScalarVariable("lam") || reg.HasScalarVariable("u") {
		tst.Errorf("HasScalarVariable is incorrect\n")
	}

	// each thread has its own handle
	u0, _ := reg.Field(0, "u")
	u2, _ := reg.Field(2, "u")
	if u0 == u2 {
		tst.Errorf("threads must not share handles\n")
	}
	if _, err := reg.Field(0, "E"); err == nil {
		tst.Errorf("vector field is not a scalar field\n")
	}
	if _, err := reg.Variable(3, "u"); err == nil {
		tst.Errorf("thread 3 does not exist\n")
	}
	if _, err := reg.ScalarVariable(1, "none"); err == nil {
		tst.Errorf("unknown scalar should fail\n")
	}

	fields := reg.Fields(1)
	chk.Int(tst, "nfields", len(fields), 2)
	chk.String(tst, fields[0].Name(), "u")
	chk.String(tst, fields[1].Name(), "w")
}

func Test_vector01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vector01. values and rates of vector fields")

	E := NewVectorField("E", 0, Nonlinear, 2, 2)
	phi := [][]Vec{
		{{0.5, 0, 0}, {0.25, 0, 0}},
		{{0, 0.5, 0}, {0, 0.75, 0}},
	}
	if err := E.Reinit(Element, Current, []float64{2, 4}, phi, nil); err != nil {
		tst.Errorf("Reinit failed: %v\n", err)
		return
	}
	chk.Array(tst, "E @ ip 1", 1e-15, E.Sln(Element, Current)[1][:], []float64{0.5, 3, 0})

	if err := E.ReinitDot(Element, []float64{-2, 8}, phi); err != nil {
		tst.Errorf("ReinitDot failed: %v\n", err)
		return
	}
	chk.Array(tst, "Ė @ ip 0", 1e-15, E.Dot(Element)[0][:], []float64{-1, 4, 0})
	chk.Array(tst, "Ė @ ip 1", 1e-15, E.Dot(Element)[1][:], []float64{-0.5, 6, 0})
	chk.Array(tst, "Ė @ ip 0 (neighbor)", 1e-15, E.Dot(Neighbor)[0][:], []float64{0, 0, 0})

	c := E.Clone()
	chk.Array(tst, "clone Ė @ ip 1", 1e-15, c.Dot(Element)[1][:], []float64{-0.5, 6, 0})

	if err := E.ReinitDot(Element, []float64{1}, phi); err == nil {
		tst.Errorf("ReinitDot should have failed with inconsistent sizes\n")
	}
}
