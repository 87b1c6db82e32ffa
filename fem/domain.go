// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the element loop computing global residuals and Jacobians from kernels
package fem

import (
	"context"

	"github.com/cpmech/gocouple/asm"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/kernels"
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// dofMap holds the equation numbers of one field variable
type dofMap struct {
	data  *inp.VarData
	nodal bool
	eqs   [][]int // [nelem][ndofs] equations in Y (nonlinear) or in Aux (auxiliary)
}

// Domain holds the mesh, variables and kernels of a problem in addition to the global
// residual vector and Jacobian matrix
type Domain struct {

	// init: auxiliary variables
	Sim     *inp.Problem // input data
	Verbose bool         // verbose
	ShowMsg bool         // show messages
	Log     *zap.Logger  // logger

	// mesh and problem
	Pb     *Problem   // problem flags seen by kernels
	Elems  []*Element // all elements
	Nverts int        // number of vertices

	// variables
	Reg    *vars.Registry     // variables; one handle per thread
	Aux    *vars.System       // auxiliary system; holds values of auxiliary fields and save-in results
	dofs   map[string]*dofMap // field variable name => equation numbers
	fields [][]*vars.Field    // [nthreads][nfields] field handles of each thread

	// kernels and threads
	Nthreads int                // number of threads
	Kernels  [][]kernels.Kernel // [nthreads][nkernels] kernels of each thread
	offdiag  [][]vars.Variable  // [nkernels] coupled nonlinear variables other than the kernel variable
	asms     []*asm.Assembly    // [nthreads] element data
	ranges   [][2]int           // [nthreads] first and one-past-last elements of each thread
	fbs      []la.Vector        // [nthreads] residual of each thread
	ents     []*asm.Entries     // [nthreads] Jacobian entries of each thread
	work     [][]float64        // [nthreads] gathered element DOFs

	// dimensions
	Ny    int // number of nonlinear equations
	Naux  int // number of auxiliary equations
	NnzKb int // number of nonzeros in Kb matrix

	// solution: nonlinear system
	Y      la.Vector // current solution
	Yold   la.Vector // solution @ previous step
	Yolder la.Vector // solution two steps back
	Yprev  la.Vector // solution @ previous nonlinear iteration
	Dydt   la.Vector // rates dy/dt = (y - yold)/Δt; backward Euler

	// solution: auxiliary system
	auxCur   la.Vector // snapshot of Aux.Solution taken before each pass
	auxOld   la.Vector // auxiliary values @ previous step
	auxOlder la.Vector // auxiliary values two steps back

	// global residual and Jacobian
	Fb la.Vector   // residual R
	Kb *la.Triplet // Jacobian dR/dy
}

// NewDomain returns a new domain ready for residual and Jacobian computations
//  Input:
//   sim     -- problem data; defaults must be set and validated already
//   log     -- logger; may be nil
//   verbose -- show messages
func NewDomain(sim *inp.Problem, log *zap.Logger, verbose bool) (o *Domain, err error) {

	// auxiliary
	o = new(Domain)
	o.Sim = sim
	o.Verbose = verbose
	o.ShowMsg = verbose
	o.Log = log
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	o.Nthreads = sim.Threads
	if o.Nthreads < 1 {
		o.Nthreads = 1
	}

	// mesh
	o.Elems, o.Nverts, err = Mesh1D(sim.Mesh, sim.Coord)
	if err != nil {
		return nil, chk.Err("cannot generate mesh:\n%v", err)
	}
	o.Pb = NewProblem(sim.Transient, sim.Dt, len(o.Elems[0].Ips))
	o.Pb.T = sim.Time

	// variables
	if err = o.setVariables(); err != nil {
		return nil, err
	}

	// threads
	o.asms = make([]*asm.Assembly, o.Nthreads)
	o.fbs = make([]la.Vector, o.Nthreads)
	o.ents = make([]*asm.Entries, o.Nthreads)
	o.work = make([][]float64, o.Nthreads)
	o.fields = make([][]*vars.Field, o.Nthreads)
	o.ranges = make([][2]int, o.Nthreads)
	nelem := len(o.Elems)
	size := (nelem + o.Nthreads - 1) / o.Nthreads
	for tid := 0; tid < o.Nthreads; tid++ {
		o.asms[tid] = asm.NewAssembly(o.Ny)
		o.fbs[tid] = la.NewVector(o.Ny)
		o.ents[tid] = new(asm.Entries)
		o.work[tid] = make([]float64, 0, 2)
		o.fields[tid] = o.Reg.Fields(tid)
		o.ranges[tid] = [2]int{min(tid*size, nelem), min((tid+1)*size, nelem)}
	}

	// kernels
	o.Kernels = make([][]kernels.Kernel, o.Nthreads)
	for tid := 0; tid < o.Nthreads; tid++ {
		o.Kernels[tid] = make([]kernels.Kernel, len(sim.Kernels))
		for i, prms := range sim.Kernels {
			if prms.Neighbor {
				return nil, chk.Err("kernel %q: neighbor couplings require a face loop; elements have no neighbor data", prms.Name)
			}
			o.Kernels[tid][i], err = kernels.New(prms, o.Pb, o.Reg, o.asms[tid], tid)
			if err != nil {
				return nil, chk.Err("cannot allocate kernel %q:\n%v", prms.Name, err)
			}
		}
	}
	o.setOffDiag()

	// Jacobian
	for _, e := range o.Elems {
		o.NnzKb += o.elemNnz(e)
	}
	o.Fb = la.NewVector(o.Ny)
	o.Kb = new(la.Triplet)
	o.Kb.Init(o.Ny, o.Ny, o.NnzKb)

	// message
	if o.ShowMsg {
		io.Pf(">> Number of elements   = %d\n", nelem)
		io.Pf(">> Number of threads    = %d\n", o.Nthreads)
		io.Pf(">> Number of equations  = %d (aux = %d)\n", o.Ny, o.Naux)
		io.Pf(">> Number of nonzeros   = %d\n", o.NnzKb)
	}
	o.Log.Info("domain ready",
		zap.Int("elements", nelem),
		zap.Int("threads", o.Nthreads),
		zap.Int("equations", o.Ny),
		zap.Int("aux", o.Naux),
		zap.Int("nnz", o.NnzKb))
	return
}

// ComputeResidual computes Fb with all kernels; save-in variables receive their shares
func (o *Domain) ComputeResidual(ctx context.Context) (err error) {
	o.startPass(false)
	if err = o.run(ctx, false); err != nil {
		return
	}
	o.Fb.Fill(0)
	for _, fb := range o.fbs {
		floats.Add(o.Fb, fb)
	}
	return
}

// ComputeJacobian computes Kb with all kernels, including off-diagonal blocks of coupled
// nonlinear variables; diagonal save-in variables receive their shares
func (o *Domain) ComputeJacobian(ctx context.Context) (err error) {
	o.startPass(true)
	if err = o.run(ctx, true); err != nil {
		return
	}
	o.Kb.Start()
	for _, ents := range o.ents {
		ents.Replay(o.Kb)
	}
	return
}

// SetSolution sets the current solution; the previous nonlinear iterate keeps the old one
func (o *Domain) SetSolution(y []float64) (err error) {
	if len(y) != o.Ny {
		return chk.Err("solution must have %d entries; %d given", o.Ny, len(y))
	}
	if o.Pb.PreviousNewtonIteration() {
		copy(o.Yprev, o.Y)
	}
	copy(o.Y, y)
	return
}

// Advance shifts the history of all variables to start a new time step; the time of transient
// problems is incremented by Δt
func (o *Domain) Advance() {
	if o.Pb.IsTransient() {
		o.Pb.T += o.Pb.Dt
	}
	copy(o.Yolder, o.Yold)
	copy(o.Yold, o.Y)
	copy(o.Yprev, o.Y)
	copy(o.auxOlder, o.auxOld)
	copy(o.auxOld, o.Aux.Solution)
}

// set up /////////////////////////////////////////////////////////////////////////////////////////

// setVariables adds all variables to the registry and numbers the equations.
// Nodal equations come first, vertex by vertex; elemental equations follow, element by element.
func (o *Domain) setVariables() (err error) {

	// registry and auxiliary system
	o.Reg = vars.NewRegistry(o.Nthreads)
	o.Aux = vars.NewSystem("aux", 0)
	o.dofs = make(map[string]*dofMap)
	nqp := o.Pb.MaxQps()

	// fields and scalars
	var nums [2]int // next number of each kind
	var nodal, elemental [2][]*dofMap
	var scalars []*vars.Scalar
	var sdata []*inp.VarData
	for _, v := range o.Sim.Variables {
		kind := vars.Nonlinear
		if v.Aux {
			kind = vars.Auxiliary
		}
		if v.Family == inp.FamilyScalar {
			scalars = append(scalars, vars.NewScalar(v.Name, nums[kind], kind, 1))
			sdata = append(sdata, v)
			nums[kind]++
			continue
		}
		d := &dofMap{data: v, nodal: v.Family == inp.FamilyLagrange, eqs: make([][]int, len(o.Elems))}
		f := vars.NewField(v.Name, nums[kind], kind, d.nodal, nqp, 2)
		if kind == vars.Auxiliary {
			f.Sys = o.Aux
		}
		nums[kind]++
		if d.nodal {
			nodal[kind] = append(nodal[kind], d)
		} else {
			elemental[kind] = append(elemental[kind], d)
		}
		o.dofs[v.Name] = d
		if err = o.Reg.Add(f); err != nil {
			return
		}
	}
	for i, s := range scalars {
		for st := vars.Current; st < vars.NumStates; st++ {
			val := sdata[i].Value
			switch st {
			case vars.Old:
				val = sdata[i].Old
			case vars.Older:
				val = sdata[i].Older
			}
			if err = s.Set(st, val); err != nil {
				return
			}
		}
		if err = o.Reg.Add(s); err != nil {
			return
		}
	}

	// equation numbers
	var neq [2]int
	for kind := 0; kind < 2; kind++ {
		vert2eq := make([][]int, len(nodal[kind]))
		for k := range nodal[kind] {
			vert2eq[k] = make([]int, o.Nverts)
		}
		for vid := 0; vid < o.Nverts; vid++ {
			for k := range nodal[kind] {
				vert2eq[k][vid] = neq[kind]
				neq[kind]++
			}
		}
		for k, d := range nodal[kind] {
			for _, e := range o.Elems {
				d.eqs[e.Id] = []int{vert2eq[k][e.Verts[0]], vert2eq[k][e.Verts[1]]}
			}
		}
		for _, e := range o.Elems {
			for _, d := range elemental[kind] {
				d.eqs[e.Id] = []int{neq[kind]}
				neq[kind]++
			}
		}
	}
	o.Ny, o.Naux = neq[vars.Nonlinear], neq[vars.Auxiliary]

	// initial values
	o.Y = la.NewVector(o.Ny)
	o.Yold = la.NewVector(o.Ny)
	o.Yolder = la.NewVector(o.Ny)
	o.Yprev = la.NewVector(o.Ny)
	o.Dydt = la.NewVector(o.Ny)
	o.Aux.Solution = la.NewVector(o.Naux)
	o.auxCur = la.NewVector(o.Naux)
	o.auxOld = la.NewVector(o.Naux)
	o.auxOlder = la.NewVector(o.Naux)
	for _, d := range o.dofs {
		v := d.data
		for _, eqs := range d.eqs {
			for _, I := range eqs {
				if v.Aux {
					o.Aux.Solution[I], o.auxOld[I], o.auxOlder[I] = v.Value, v.Old, v.Older
					continue
				}
				o.Y[I], o.Yold[I], o.Yolder[I], o.Yprev[I] = v.Value, v.Old, v.Older, v.Value
			}
		}
	}
	return
}

// setOffDiag collects, for each kernel, the nonlinear field variables it is coupled to
func (o *Domain) setOffDiag() {
	o.offdiag = make([][]vars.Variable, len(o.Sim.Kernels))
	for i, k := range o.Kernels[0] {
		own := k.Variable().Number()
		seen := map[int]bool{own: true}
		for _, v := range k.Couplings().CoupledVars() {
			f, ok := v.(*vars.Field)
			if !ok || f.Kind() != vars.Nonlinear || seen[f.Number()] {
				continue
			}
			seen[f.Number()] = true
			o.offdiag[i] = append(o.offdiag[i], f)
		}
	}
}

// elemNnz returns the number of Jacobian entries put by one element
func (o *Domain) elemNnz(e *Element) (nnz int) {
	ndofs := func(num int) int {
		for _, f := range o.fields[0] {
			if f.Kind() == vars.Nonlinear && f.Number() == num {
				return len(o.dofs[f.Name()].eqs[e.Id])
			}
		}
		return 0
	}
	blocks := make(map[[2]int]bool)
	for i, k := range o.Kernels[0] {
		inum := k.Variable().Number()
		blocks[[2]int{inum, inum}] = true
		for _, v := range o.offdiag[i] {
			blocks[[2]int{inum, v.Number()}] = true
		}
	}
	for key := range blocks {
		nnz += ndofs(key[0]) * ndofs(key[1])
	}
	return
}

// element loop ///////////////////////////////////////////////////////////////////////////////////

// startPass computes the rates, takes the snapshot of auxiliary values and zeroes the
// save-in targets of this pass
func (o *Domain) startPass(jacobian bool) {
	if o.Pb.IsTransient() {
		floats.SubTo(o.Dydt, o.Y, o.Yold)
		floats.Scale(1/o.Pb.Dt, o.Dydt)
	}
	copy(o.auxCur, o.Aux.Solution)
	for _, k := range o.Kernels[0] {
		res, diag := k.SaveInVars()
		targets := res
		if jacobian {
			targets = diag
		}
		for _, f := range targets {
			for _, eqs := range o.dofs[f.Name()].eqs {
				for _, I := range eqs {
					o.Aux.Solution[I] = 0
				}
			}
		}
	}
}

// run runs the element loop of all threads
func (o *Domain) run(ctx context.Context, jacobian bool) (err error) {
	g, gctx := errgroup.WithContext(ctx)
	for tid := 0; tid < o.Nthreads; tid++ {
		g.Go(func() error { return o.assemble(gctx, tid, jacobian) })
	}
	return g.Wait()
}

// assemble computes the contributions of the elements of thread tid
func (o *Domain) assemble(ctx context.Context, tid int, jacobian bool) (err error) {
	a := o.asms[tid]
	o.fbs[tid].Fill(0)
	o.ents[tid].Reset()
	first, last := o.ranges[tid][0], o.ranges[tid][1]
	for _, e := range o.Elems[first:last] {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = o.reinit(tid, e); err != nil {
			return chk.Err("element %d: %v", e.Id, err)
		}
		for i, k := range o.Kernels[tid] {
			if !jacobian {
				if err = k.ComputeResidual(); err != nil {
					return chk.Err("element %d: residual of kernel %q failed:\n%v", e.Id, o.Sim.Kernels[i].Name, err)
				}
				continue
			}
			if err = k.ComputeJacobian(); err != nil {
				return chk.Err("element %d: Jacobian of kernel %q failed:\n%v", e.Id, o.Sim.Kernels[i].Name, err)
			}
			for _, v := range o.offdiag[i] {
				jvar, e2 := o.Reg.Variable(tid, v.Name())
				if e2 != nil {
					return e2
				}
				if err = k.ComputeOffDiagJacobian(jvar); err != nil {
					return chk.Err("element %d: off-diagonal Jacobian of kernel %q w.r.t %q failed:\n%v", e.Id, o.Sim.Kernels[i].Name, v.Name(), err)
				}
			}
		}
		if jacobian {
			a.AddJacobian(o.ents[tid])
			continue
		}
		if err = a.AddResidual(o.fbs[tid]); err != nil {
			return
		}
	}
	o.Log.Debug("element loop finished",
		zap.Int("thread", tid),
		zap.Int("first", first),
		zap.Int("last", last),
		zap.Bool("jacobian", jacobian))
	return
}

// reinit computes the values of all fields of thread tid @ the ips of element e
func (o *Domain) reinit(tid int, e *Element) (err error) {
	a := o.asms[tid]
	if err = a.Reinit(e.JxW, e.Coord, e.Xip); err != nil {
		return
	}
	transient := o.Pb.IsTransient()
	for _, f := range o.fields[tid] {
		d := o.dofs[f.Name()]
		eqs := d.eqs[e.Id]
		phi, dphi := e.Phi, e.Dphi
		if !d.nodal {
			phi, dphi = e.Phi0, e.Dphi0
		}
		states := [vars.NumStates]la.Vector{o.Y, o.Yold, o.Yolder, o.Yprev}
		if f.Kind() == vars.Auxiliary {
			states = [vars.NumStates]la.Vector{o.auxCur, o.auxOld, o.auxOlder, o.auxCur}
		}
		for s, sol := range states {
			if err = f.Reinit(vars.Element, vars.State(s), o.gather(tid, sol, eqs), phi, dphi); err != nil {
				return
			}
		}
		f.SetDofIndices(eqs)
		if f.Kind() != vars.Nonlinear {
			continue
		}
		if transient {
			if err = f.ReinitDot(vars.Element, o.gather(tid, o.Dydt, eqs), 1/o.Pb.Dt, phi, dphi); err != nil {
				return
			}
		}
		if err = a.SetVariable(f.Number(), phi, dphi, eqs); err != nil {
			return
		}
	}
	return
}

// gather collects the entries eqs of a global vector into the workspace of thread tid
func (o *Domain) gather(tid int, sol la.Vector, eqs []int) []float64 {
	w := o.work[tid][:0]
	for _, I := range eqs {
		w = append(w, sol[I])
	}
	o.work[tid] = w
	return w
}
