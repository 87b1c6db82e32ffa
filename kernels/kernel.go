// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernels implements objects contributing residual and Jacobian terms of one equation
// at quadrature points
package kernels

import (
	"sync"

	"github.com/cpmech/gocouple/asm"
	"github.com/cpmech/gocouple/coupling"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/vars"
	"github.com/cpmech/gosl/chk"
)

// saveInLock serialises writes into the systems of save-in variables
var saveInLock sync.Mutex

// Registry defines the variable lookups used by kernels; implemented by *vars.Registry
type Registry interface {
	coupling.Registry
	Field(tid int, name string) (*vars.Field, error)
}

// Kernel defines what all kernels must implement
type Kernel interface {

	// initialisation
	Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) // resolves variables and couplings

	// data
	Variable() *vars.Field                 // variable of this equation
	Couplings() *coupling.Coupleable       // couplings to other variables
	SaveInVars() (res, diag []*vars.Field) // auxiliary variables receiving the residual and Jacobian diagonal

	// called for each element
	ComputeResidual() (err error)                          // adds the residual to the element block
	ComputeJacobian() (err error)                          // adds the diagonal Jacobian to the element block
	ComputeOffDiagJacobian(jvar vars.Variable) (err error) // adds the Jacobian w.r.t jvar to the element block
}

// Base holds the data shared by all kernels
type Base struct {
	*coupling.Coupleable

	// input
	Prms *inp.Params   // parameters
	Var  *vars.Field   // variable of this equation
	Asm  *asm.Assembly // element data of this thread

	// save-in
	SaveIn     []*vars.Field // auxiliary fields receiving the residual
	DiagSaveIn []*vars.Field // auxiliary fields receiving the Jacobian diagonal

	// values of Var @ ips; old values for explicit schemes
	U     vars.Value    // u @ ips
	GradU vars.Gradient // ∇u @ ips

	// functions of the current element
	Test  [][]float64 // [ntest][nqp] test functions of Var
	Trial [][]float64 // [ntrial][nqp] trial functions of Var or of the perturbation variable
}

// Init resolves the variable, the couplings and the save-in targets of the kernel
func (o *Base) Init(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (err error) {

	// couplings
	o.Prms = prms
	o.Asm = a
	o.Coupleable, err = coupling.New(prms, prob, reg, tid, false)
	if err != nil {
		return
	}

	// variable
	o.Var, err = reg.Field(tid, prms.Variable)
	if err != nil {
		return chk.Err("kernel %q: cannot find its variable:\n%v", prms.Name, err)
	}
	if o.Var.Kind() != vars.Nonlinear {
		return chk.Err("kernel %q: variable %q must be nonlinear", prms.Name, prms.Variable)
	}
	s := vars.Current
	if !o.IsImplicit() {
		s = vars.Old
	}
	o.U = o.Var.Sln(vars.Element, s)
	o.GradU = o.Var.GradSln(vars.Element, s)

	// save-in
	o.SaveIn, err = o.auxFields(reg, tid, prms.SaveIn, "savein")
	if err != nil {
		return
	}
	o.DiagSaveIn, err = o.auxFields(reg, tid, prms.DiagSaveIn, "diagsavein")
	return
}

// Variable returns the variable of this equation
func (o *Base) Variable() *vars.Field { return o.Var }

// Couplings returns the couplings to other variables
func (o *Base) Couplings() *coupling.Coupleable { return o.Coupleable }

// SaveInVars returns the save-in targets
func (o *Base) SaveInVars() (res, diag []*vars.Field) { return o.SaveIn, o.DiagSaveIn }

// auxFields returns the auxiliary fields named names
func (o *Base) auxFields(reg Registry, tid int, names []string, key string) (res []*vars.Field, err error) {
	for _, name := range names {
		v, e := reg.Field(tid, name)
		if e != nil {
			return nil, chk.Err("kernel %q: cannot find %s variable:\n%v", o.Prms.Name, key, e)
		}
		if v.Kind() != vars.Auxiliary {
			return nil, chk.Err("kernel %q: %s variable %q must be auxiliary", o.Prms.Name, key, name)
		}
		if v.Sys == nil {
			return nil, chk.Err("kernel %q: %s variable %q has no system", o.Prms.Name, key, name)
		}
		res = append(res, v)
	}
	return
}

// scatter adds vals to the systems of the save-in variables
func (o *Base) scatter(targets []*vars.Field, vals []float64) (err error) {
	for _, v := range targets {
		if len(v.DofIndices()) != len(vals) {
			return chk.Err("kernel %q: save-in variable %q has %d DOFs in this element; %d are required", o.Name(), v.Name(), len(v.DofIndices()), len(vals))
		}
	}
	saveInLock.Lock()
	defer saveInLock.Unlock()
	for _, v := range targets {
		v.Sys.AddVector(vals, v.DofIndices())
	}
	return
}
