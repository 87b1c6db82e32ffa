// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"math"
	"testing"

	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/floats"
)

// newProblem returns a problem with nelem elements in [0, 1] and two ips per element
func newProblem(nelem, nthreads int, variables []*inp.VarData, kernels ...*inp.Params) *inp.Problem {
	sim := &inp.Problem{
		Desc:      "test",
		Threads:   nthreads,
		Mesh:      inp.MeshData{Nelem: nelem, Xmin: 0, Xmax: 1, Nip: 2},
		Variables: variables,
		Kernels:   kernels,
	}
	sim.SetDefault()
	return sim
}

// sumRows returns the sum of all entries of the rows eqs of the Jacobian
func sumRows(dom *Domain, eqs []int) (res float64) {
	K := dom.Kb.ToDense()
	for _, i := range eqs {
		for j := 0; j < dom.Ny; j++ {
			res += K.Get(i, j)
		}
	}
	return
}

// auxNodal returns the values of a nodal auxiliary variable @ vertices
func auxNodal(dom *Domain, name string) (res []float64) {
	res = make([]float64, dom.Nverts)
	d := dom.dofs[name]
	for _, e := range dom.Elems {
		for m, I := range d.eqs[e.Id] {
			res[e.Verts[m]] = dom.Aux.Solution[I]
		}
	}
	return
}

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. coordinate systems")

	md := inp.MeshData{Nelem: 2, Xmin: 0, Xmax: 2, Nip: 2}
	integral := func(coord string) (res float64) {
		elems, nverts, err := Mesh1D(md, coord)
		require.NoError(tst, err)
		chk.Int(tst, "nverts", nverts, 3)
		for _, e := range elems {
			res += floats.Dot(e.JxW, e.Coord)
		}
		return
	}
	chk.Float64(tst, "∫ dx", 1e-14, integral(inp.CoordXYZ), 2)
	chk.Float64(tst, "∫ 2πr dr", 1e-14, integral(inp.CoordRZ), 4*math.Pi)
	chk.Float64(tst, "∫ 4πr² dr", 1e-14, integral(inp.CoordRSpherical), 4*math.Pi*8.0/3.0)

	elems, _, err := Mesh1D(md, inp.CoordXYZ)
	require.NoError(tst, err)
	chk.Array(tst, "x @ ips of element 1", 1e-14, elems[1].Xip, []float64{1.5 - 0.5/math.Sqrt(3), 1.5 + 0.5/math.Sqrt(3)})
	chk.Float64(tst, "Σ φ @ ip 0", 1e-14, elems[0].Phi[0][0]+elems[0].Phi[1][0], 1)
	chk.Array(tst, "dφ/dx @ ip 0", 1e-14, []float64{elems[0].Dphi[0][0][0], elems[0].Dphi[1][0][0]}, []float64{-1, 1})

	_, _, err = Mesh1D(md, "polar")
	require.Error(tst, err)
	_, _, err = Mesh1D(inp.MeshData{Nelem: 2, Xmin: 0, Xmax: 1, Nip: 0}, inp.CoordXYZ)
	require.Error(tst, err)
}

func Test_domain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain01. reaction and body force")

	sim := newProblem(4, 1,
		[]*inp.VarData{{Name: "u", Value: 1}},
		&inp.Params{Name: "react", Type: "reaction", Variable: "u", Prms: map[string]float64{"lambda": 2}},
		&inp.Params{Name: "src", Type: "body-force", Variable: "u", Prms: map[string]float64{"value": 3}},
	)
	dom, err := NewDomain(sim, nil, chk.Verbose)
	require.NoError(tst, err)
	chk.Int(tst, "Ny", dom.Ny, 5)
	chk.Int(tst, "NnzKb", dom.NnzKb, 16)

	ctx := context.Background()
	require.NoError(tst, dom.ComputeResidual(ctx))
	chk.Array(tst, "Fb", 1e-14, dom.Fb, []float64{-0.125, -0.25, -0.25, -0.25, -0.125})

	require.NoError(tst, dom.ComputeJacobian(ctx))
	a, b := 1.0/6.0, 1.0/12.0
	chk.Deep2(tst, "Kb", 1e-14, dom.Kb.ToDense().GetDeep2(), [][]float64{
		{a, b, 0, 0, 0},
		{b, 2 * a, b, 0, 0},
		{0, b, 2 * a, b, 0},
		{0, 0, b, 2 * a, b},
		{0, 0, 0, b, a},
	})

	// new solution
	require.Error(tst, dom.SetSolution([]float64{1}))
	require.NoError(tst, dom.SetSolution([]float64{1.5, 1.5, 1.5, 1.5, 1.5}))
	require.NoError(tst, dom.ComputeResidual(ctx))
	chk.Float64(tst, "Σ Fb", 1e-14, floats.Sum(dom.Fb), 0)
}

func Test_domain02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain02. threads")

	defer goleak.VerifyNone(tst)

	run := func(nthreads int) (fb []float64, kb [][]float64) {
		sim := newProblem(5, nthreads,
			[]*inp.VarData{
				{Name: "u", Value: 1},
				{Name: "v", Family: inp.FamilyMonomial, Value: 2},
			},
			&inp.Params{Name: "uu", Type: "reaction", Variable: "u"},
			(&inp.Params{Name: "uv", Type: "coupled-force", Variable: "u", Prms: map[string]float64{"sigma": 3}}).Couple("v", "v"),
			&inp.Params{Name: "vv", Type: "reaction", Variable: "v", Prms: map[string]float64{"lambda": 4}},
			(&inp.Params{Name: "vu", Type: "coupled-force", Variable: "v"}).Couple("v", "u"),
		)
		sim.Coord = inp.CoordRZ
		dom, err := NewDomain(sim, nil, false)
		require.NoError(tst, err)
		y := make([]float64, dom.Ny)
		for i := range y {
			y[i] = 1 + float64(i*i)/10
		}
		require.NoError(tst, dom.SetSolution(y))
		ctx := context.Background()
		require.NoError(tst, dom.ComputeResidual(ctx))
		require.NoError(tst, dom.ComputeJacobian(ctx))
		return append([]float64{}, dom.Fb...), dom.Kb.ToDense().GetDeep2()
	}

	fb1, kb1 := run(1)
	for _, nthreads := range []int{2, 3, 8} {
		io.Pforan("nthreads = %d\n", nthreads)
		fb, kb := run(nthreads)
		chk.Array(tst, "Fb", 1e-14, fb, fb1)
		chk.Deep2(tst, "Kb", 1e-14, kb, kb1)
	}

	// the off-diagonal blocks are filled
	sim := newProblem(1, 1,
		[]*inp.VarData{{Name: "u"}, {Name: "v", Family: inp.FamilyMonomial}},
		(&inp.Params{Name: "uv", Type: "coupled-force", Variable: "u"}).Couple("v", "v"),
	)
	dom, err := NewDomain(sim, nil, false)
	require.NoError(tst, err)
	chk.Int(tst, "NnzKb", dom.NnzKb, 4+2)
	require.NoError(tst, dom.ComputeJacobian(context.Background()))
	chk.Deep2(tst, "Kb", 1e-14, dom.Kb.ToDense().GetDeep2(), [][]float64{
		{0, 0, -0.5},
		{0, 0, -0.5},
		{0, 0, 0},
	})
}

func Test_domain03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain03. save-in")

	defer goleak.VerifyNone(tst)

	sim := newProblem(6, 3,
		[]*inp.VarData{
			{Name: "u", Value: 2},
			{Name: "r", Aux: true},
			{Name: "d", Aux: true},
		},
		&inp.Params{Name: "react", Type: "reaction", Variable: "u", SaveIn: []string{"r"}, DiagSaveIn: []string{"d"}},
		&inp.Params{Name: "src", Type: "body-force", Variable: "u"},
	)
	dom, err := NewDomain(sim, nil, false)
	require.NoError(tst, err)
	chk.Int(tst, "Naux", dom.Naux, 14)

	// residual twice; save-in targets are reset before each pass
	ctx := context.Background()
	h := 1.0 / 6.0
	for i := 0; i < 2; i++ {
		require.NoError(tst, dom.ComputeResidual(ctx))
		chk.Array(tst, "r", 1e-14, auxNodal(dom, "r"), []float64{h, 2 * h, 2 * h, 2 * h, 2 * h, 2 * h, h})
		chk.Array(tst, "d", 1e-14, auxNodal(dom, "d"), make([]float64, 7))
		chk.Float64(tst, "Σ Fb", 1e-14, floats.Sum(dom.Fb), 1)
	}

	// Jacobian diagonal
	require.NoError(tst, dom.ComputeJacobian(ctx))
	K := dom.Kb.ToDense()
	diag := make([]float64, dom.Ny)
	for i := range diag {
		diag[i] = K.Get(i, i)
	}
	chk.Array(tst, "d", 1e-14, auxNodal(dom, "d"), diag)
	chk.Array(tst, "r", 1e-14, auxNodal(dom, "r"), []float64{h, 2 * h, 2 * h, 2 * h, 2 * h, 2 * h, h})
}

func Test_domain04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain04. transient and explicit")

	ctx := context.Background()

	// rates
	sim := newProblem(3, 2,
		[]*inp.VarData{{Name: "u", Value: 1}, {Name: "v", Value: 2}},
		&inp.Params{Name: "dudt", Type: "time-derivative", Variable: "u"},
		(&inp.Params{Name: "dvdt", Type: "coupled-time-derivative", Variable: "u"}).Couple("v", "v"),
	)
	sim.Transient = true
	sim.Dt = 0.5
	dom, err := NewDomain(sim, nil, false)
	require.NoError(tst, err)
	require.NoError(tst, dom.ComputeResidual(ctx))
	require.NoError(tst, dom.ComputeJacobian(ctx))
	ueqs := []int{0, 2, 4, 6}
	veqs := []int{1, 3, 5, 7}
	chk.Float64(tst, "Σ R_u", 1e-14, floatsAt(dom.Fb, ueqs), 6)
	chk.Float64(tst, "Σ R_v", 1e-14, floatsAt(dom.Fb, veqs), 0)
	chk.Float64(tst, "Σ K_u", 1e-14, sumRows(dom, ueqs), 2+2)
	chk.Float64(tst, "Σ K_v", 1e-14, sumRows(dom, veqs), 0)

	// steady problems reject rates
	sim.Kernels = sim.Kernels[1:]
	sim.Transient = false
	_, err = NewDomain(sim, nil, false)
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "steady executioner")

	// explicit scheme uses old values
	explicit := false
	sim = newProblem(3, 1,
		[]*inp.VarData{{Name: "u", Value: 1, Old: 3}},
		&inp.Params{Name: "react", Type: "reaction", Variable: "u", Implicit: &explicit, Prms: map[string]float64{"lambda": 2}},
	)
	sim.Transient = true
	dom, err = NewDomain(sim, nil, false)
	require.NoError(tst, err)
	require.NoError(tst, dom.ComputeResidual(ctx))
	chk.Float64(tst, "Σ Fb", 1e-14, floats.Sum(dom.Fb), 6)

	// new step
	require.NoError(tst, dom.SetSolution([]float64{5, 5, 5, 5}))
	dom.Advance()
	chk.Array(tst, "Yold", 1e-14, dom.Yold, []float64{5, 5, 5, 5})
	chk.Array(tst, "Yolder", 1e-14, dom.Yolder, []float64{3, 3, 3, 3})
	chk.Float64(tst, "time", 1e-15, dom.Pb.Time(), 1)
	require.NoError(tst, dom.ComputeResidual(ctx))
	chk.Float64(tst, "Σ Fb", 1e-14, floats.Sum(dom.Fb), 10)
}

func Test_domain05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain05. errors")

	defer goleak.VerifyNone(tst)

	// unknown kernel and coupled variable
	_, err := NewDomain(newProblem(2, 1, []*inp.VarData{{Name: "u"}},
		&inp.Params{Name: "k", Type: "nonexistent", Variable: "u"}), nil, false)
	require.Error(tst, err)
	_, err = NewDomain(newProblem(2, 1, []*inp.VarData{{Name: "u"}},
		(&inp.Params{Name: "k", Type: "coupled-force", Variable: "u"}).Couple("v", "unknown")), nil, false)
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "was never found")

	// cancelled context
	dom, err := NewDomain(newProblem(8, 4, []*inp.VarData{{Name: "u"}},
		&inp.Params{Name: "react", Type: "reaction", Variable: "u"}), nil, false)
	require.NoError(tst, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(tst, dom.ComputeResidual(ctx), context.Canceled)
	require.ErrorIs(tst, dom.ComputeJacobian(ctx), context.Canceled)
}

func Test_domain06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain06. diffusion, functions of x and scalar sources")

	defer goleak.VerifyNone(tst)

	sim := newProblem(4, 2,
		[]*inp.VarData{{Name: "u", Value: 1}, {Name: "s", Family: inp.FamilyScalar, Value: 2}},
		&inp.Params{Name: "diff", Type: "diffusion", Variable: "u"},
		&inp.Params{Name: "src", Type: "body-force", Variable: "u", Func: "xpoly1", FuncPrms: dbf.Params{
			{N: "a0", V: 2}, {N: "a1", V: 0}, {N: "a2", V: 0},
		}},
	)
	dom, err := NewDomain(sim, nil, false)
	require.NoError(tst, err)

	// uniform u: only -∫ 2x φ_i dx remains
	ctx := context.Background()
	require.NoError(tst, dom.ComputeResidual(ctx))
	h := 0.25
	chk.Array(tst, "Fb", 1e-14, dom.Fb, []float64{-h * h / 3, -0.125, -0.25, -0.375, -(2*h*h/3 + (1-h)*h)})

	// stiffness
	require.NoError(tst, dom.ComputeJacobian(ctx))
	K := dom.Kb.ToDense()
	chk.Float64(tst, "K[0][0]", 1e-14, K.Get(0, 0), 4)
	chk.Float64(tst, "K[0][1]", 1e-14, K.Get(0, 1), -4)
	chk.Float64(tst, "K[2][2]", 1e-14, K.Get(2, 2), 8)
	chk.Float64(tst, "Σ K", 1e-14, sumRows(dom, []int{0, 1, 2, 3, 4}), 0)

	// u = x²
	y := make([]float64, dom.Ny)
	for i := range y {
		x := float64(i) * h
		y[i] = x * x
	}
	require.NoError(tst, dom.SetSolution(y))
	_, maxdiff, err := dom.CheckJacobian(ctx, 0)
	require.NoError(tst, err)
	require.Less(tst, maxdiff, 1e-7)

	// scalar source
	sim.Kernels = []*inp.Params{
		(&inp.Params{Name: "sf", Type: "scalar-force", Variable: "u"}).Couple("s", "s"),
	}
	sim.SetDefault()
	dom, err = NewDomain(sim, nil, false)
	require.NoError(tst, err)
	require.NoError(tst, dom.ComputeResidual(ctx))
	chk.Float64(tst, "Σ Fb", 1e-14, floats.Sum(dom.Fb), -2)
}

func Test_domain07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain07. neighbor couplings and save-in sizes")

	// element loops have no neighbor data
	_, err := NewDomain(newProblem(2, 1, []*inp.VarData{{Name: "u"}, {Name: "v"}},
		(&inp.Params{Name: "uv", Type: "coupled-force", Variable: "u", Neighbor: true}).Couple("v", "v")), nil, false)
	require.ErrorContains(tst, err, "neighbor couplings require a face loop")

	// lagrange residuals cannot be saved in monomial variables
	dom, err := NewDomain(newProblem(2, 1,
		[]*inp.VarData{{Name: "u", Value: 1}, {Name: "m", Aux: true, Family: inp.FamilyMonomial}},
		&inp.Params{Name: "react", Type: "reaction", Variable: "u", SaveIn: []string{"m"}}), nil, false)
	require.NoError(tst, err)
	require.ErrorContains(tst, dom.ComputeResidual(context.Background()), `save-in variable "m" has 1 DOFs in this element; 2 are required`)
}

// floatsAt returns the sum of v @ idx
func floatsAt(v []float64, idx []int) (res float64) {
	for _, i := range idx {
		res += v[i]
	}
	return
}
