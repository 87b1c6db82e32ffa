// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01")

	var p Params
	p.Name = "force"
	p.Couple("w").Couple("v", "temp", "conc")
	chk.Strings(tst, "names", p.CoupledNames(), []string{"v", "w"})
	if !p.HasCoupledValue("w") || p.HasCoupledValue("x") {
		tst.Errorf("HasCoupledValue is incorrect\n")
	}
	if !p.IsImplicit() {
		tst.Errorf("implicit must be the default\n")
	}
	explicit := false
	p.Implicit = &explicit
	if p.IsImplicit() {
		tst.Errorf("implicit flag was not read\n")
	}
	chk.Float64(tst, "default w", 1e-15, p.DefaultCoupledValue("w"), 0)
	p.Defaults = map[string]float64{"w": 2.5}
	chk.Float64(tst, "default w", 1e-15, p.DefaultCoupledValue("w"), 2.5)
	chk.Float64(tst, "prm", 1e-15, p.Prm("lambda", 3), 3)
	chk.String(tst, p.String(), "force")
}

const yamlProblem = `
desc: reaction with coupled force
transient: true
coord: rz
time: 0.5
mesh: {nelem: 4, xmin: 1, xmax: 2}
variables:
  - {name: u, value: 1}
  - {name: v, value: 2, old: 1}
  - {name: r, aux: true}
kernels:
  - type: reaction
    variable: u
    prms: {lambda: 2}
    savein: [r]
  - name: force
    type: coupled-force
    variable: u
    implicit: false
    coupled: {v: [v], w: []}
  - name: src
    type: body-force
    variable: u
    func: xpoly1
    funcprms: [{n: a0, v: 2}, {n: a1, v: 0}, {n: a2, v: 0}]
`

const jsonProblem = `{
  "desc": "bad",
  "variables": [{"name": "u"}],
  "kernels": [{"type": "reaction", "variable": "nope"}]
}`

func Test_problem01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("problem01. yaml")

	fn := filepath.Join(tst.TempDir(), "problem.yaml")
	if err := os.WriteFile(fn, []byte(yamlProblem), 0644); err != nil {
		tst.Errorf("cannot write file: %v\n", err)
		return
	}
	prob, err := ReadProblem(fn)
	if err != nil {
		tst.Errorf("ReadProblem failed: %v\n", err)
		return
	}
	if !prob.Transient {
		tst.Errorf("transient flag was not read\n")
	}
	chk.String(tst, prob.Coord, CoordRZ)
	chk.Int(tst, "nelem", prob.Mesh.Nelem, 4)
	chk.Int(tst, "nip", prob.Mesh.Nip, 2)
	chk.Int(tst, "threads", prob.Threads, 1)
	chk.Float64(tst, "xmax", 1e-15, prob.Mesh.Xmax, 2)
	chk.Int(tst, "nvars", len(prob.Variables), 3)
	chk.String(tst, prob.Variables[2].Family, FamilyLagrange)
	chk.Float64(tst, "v old", 1e-15, prob.Variables[1].Old, 1)

	k0, k1 := prob.Kernels[0], prob.Kernels[1]
	chk.String(tst, k0.Name, "kernel0")
	chk.Strings(tst, "savein", k0.SaveIn, []string{"r"})
	chk.Float64(tst, "lambda", 1e-15, k0.Prm("lambda", 0), 2)
	if !k0.IsImplicit() || k1.IsImplicit() {
		tst.Errorf("implicit flags are incorrect\n")
	}
	chk.Strings(tst, "coupled names", k1.CoupledNames(), []string{"v", "w"})
	chk.Int(tst, "len(w)", len(k1.Coupled["w"]), 0)
	chk.Float64(tst, "time", 1e-15, prob.Time, 0.5)

	k2 := prob.Kernels[2]
	chk.String(tst, k2.Func, "xpoly1")
	chk.Int(tst, "nfuncprms", len(k2.FuncPrms), 3)
	chk.Float64(tst, "a0", 1e-15, k2.FuncPrms.GetValue("a0"), 2)
}

func Test_problem02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("problem02. json and failures")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "problem.json")
	if err := os.WriteFile(fn, []byte(jsonProblem), 0644); err != nil {
		tst.Errorf("cannot write file: %v\n", err)
		return
	}
	if _, err := ReadProblem(fn); err == nil {
		tst.Errorf("unknown kernel variable should fail\n")
	}
	if _, err := ReadProblem(filepath.Join(dir, "problem.txt")); err == nil {
		tst.Errorf("missing file should fail\n")
	}

	p := Problem{Coord: "polar"}
	if err := p.Validate(); err == nil {
		tst.Errorf("invalid coordinate system should fail\n")
	}
	p = Problem{Variables: []*VarData{{Name: "u", Family: "spline"}}}
	p.SetDefault()
	if err := p.Validate(); err == nil {
		tst.Errorf("invalid family should fail\n")
	}
}

func Test_problem03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("problem03. missing and unreadable files")

	dir := tst.TempDir()
	o, err := ReadProblem(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(tst, err, "cannot read problem file")
	require.ErrorContains(tst, err, "missing.yaml")
	require.Nil(tst, o)

	// a directory cannot be read either
	_, err = ReadProblem(dir)
	require.ErrorContains(tst, err, "cannot read problem file")

	// bad contents
	fn := filepath.Join(dir, "bad.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte("variables: {"), 0644))
	_, err = ReadProblem(fn)
	require.ErrorContains(tst, err, "cannot unmarshal")
}
