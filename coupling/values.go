// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import "github.com/cpmech/gocouple/vars"

// standardVar runs the checks shared by the accessors of scalar fields. f is nil if name is an
// optional coupling that was not supplied; callers then return a default.
func (o *Coupleable) standardVar(name string, comp int, r request, nodalMissing string) (f *vars.Field, s vars.State, err error) {
	if err = o.CheckVar(name); err != nil {
		return
	}
	ok, err := o.IsCoupled(name, 0)
	if err != nil || !ok {
		return
	}
	if nodalMissing != "" && o.nodal {
		return nil, 0, o.errConfig(name, "'%s' of '%s': nodal variables do not have %s", r.fn, name, nodalMissing)
	}
	if f, err = o.StandardVar(name, comp); err != nil {
		return
	}
	s, err = o.resolve(name, r)
	return
}

// values ///////////////////////////////////////////////////////////////////////////////////////////

// Value returns u @ ips; or u @ nodes if the owner is nodal
func (o *Coupleable) Value(name string, comp int) (vars.Value, error) {
	return o.value(name, comp, request{"Value", vars.Current, false})
}

// ValueOld returns u @ ips of the previous time step
func (o *Coupleable) ValueOld(name string, comp int) (vars.Value, error) {
	return o.value(name, comp, request{"ValueOld", vars.Old, false})
}

// ValueOlder returns u @ ips of two time steps back
func (o *Coupleable) ValueOlder(name string, comp int) (vars.Value, error) {
	return o.value(name, comp, request{"ValueOlder", vars.Older, false})
}

// ValuePreviousNL returns u @ ips of the previous nonlinear iterate
func (o *Coupleable) ValuePreviousNL(name string, comp int) (vars.Value, error) {
	return o.value(name, comp, request{"ValuePreviousNL", vars.PreviousNL, false})
}

func (o *Coupleable) value(name string, comp int, r request) (vars.Value, error) {
	f, s, err := o.standardVar(name, comp, r, "")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.getDefaultValue(name), nil
	}
	if o.nodal {
		return f.NodalValue(o.ctx(), s), nil
	}
	return f.Sln(o.ctx(), s), nil
}

// Dot returns du/dt @ ips; or @ nodes if the owner is nodal
func (o *Coupleable) Dot(name string, comp int) (vars.Value, error) {
	f, _, err := o.standardVar(name, comp, request{"Dot", vars.Current, true}, "")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.valueZero, nil
	}
	if o.nodal {
		return f.NodalDot(o.ctx()), nil
	}
	return f.Dot(o.ctx()), nil
}

// DotDu returns d(du/dt)/du @ ips; or @ nodes if the owner is nodal
func (o *Coupleable) DotDu(name string, comp int) (vars.Value, error) {
	f, _, err := o.standardVar(name, comp, request{"DotDu", vars.Current, true}, "")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.valueZero, nil
	}
	if o.nodal {
		return f.NodalDuDotDu(), nil
	}
	return f.DuDotDu(), nil
}

// gradients ////////////////////////////////////////////////////////////////////////////////////////

// Gradient returns ∇u @ ips
func (o *Coupleable) Gradient(name string, comp int) (vars.Gradient, error) {
	return o.gradient(name, comp, request{"Gradient", vars.Current, false})
}

// GradientOld returns ∇u @ ips of the previous time step
func (o *Coupleable) GradientOld(name string, comp int) (vars.Gradient, error) {
	return o.gradient(name, comp, request{"GradientOld", vars.Old, false})
}

// GradientOlder returns ∇u @ ips of two time steps back
func (o *Coupleable) GradientOlder(name string, comp int) (vars.Gradient, error) {
	return o.gradient(name, comp, request{"GradientOlder", vars.Older, false})
}

// GradientPreviousNL returns ∇u @ ips of the previous nonlinear iterate
func (o *Coupleable) GradientPreviousNL(name string, comp int) (vars.Gradient, error) {
	return o.gradient(name, comp, request{"GradientPreviousNL", vars.PreviousNL, false})
}

func (o *Coupleable) gradient(name string, comp int, r request) (vars.Gradient, error) {
	f, s, err := o.standardVar(name, comp, r, "gradients")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.gradZero, nil
	}
	return f.GradSln(o.ctx(), s), nil
}

// GradientDot returns ∇(du/dt) @ ips
func (o *Coupleable) GradientDot(name string, comp int) (vars.Gradient, error) {
	f, _, err := o.standardVar(name, comp, request{"GradientDot", vars.Current, true}, "gradients")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.gradZero, nil
	}
	return f.GradDot(o.ctx()), nil
}

// second derivatives ///////////////////////////////////////////////////////////////////////////////

// Second returns ∇∇u @ ips
func (o *Coupleable) Second(name string, comp int) (vars.Second, error) {
	return o.second(name, comp, request{"Second", vars.Current, false})
}

// SecondOld returns ∇∇u @ ips of the previous time step
func (o *Coupleable) SecondOld(name string, comp int) (vars.Second, error) {
	return o.second(name, comp, request{"SecondOld", vars.Old, false})
}

// SecondOlder returns ∇∇u @ ips of two time steps back
func (o *Coupleable) SecondOlder(name string, comp int) (vars.Second, error) {
	return o.second(name, comp, request{"SecondOlder", vars.Older, false})
}

// SecondPreviousNL returns ∇∇u @ ips of the previous nonlinear iterate
func (o *Coupleable) SecondPreviousNL(name string, comp int) (vars.Second, error) {
	return o.second(name, comp, request{"SecondPreviousNL", vars.PreviousNL, false})
}

func (o *Coupleable) second(name string, comp int, r request) (vars.Second, error) {
	f, s, err := o.standardVar(name, comp, r, "second derivatives")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.secondZero, nil
	}
	return f.SecondSln(o.ctx(), s), nil
}

// nodal values /////////////////////////////////////////////////////////////////////////////////////

// NodalValue returns u @ nodes
func (o *Coupleable) NodalValue(name string, comp int) (vars.Value, error) {
	return o.nodalValue(name, comp, request{"NodalValue", vars.Current, false})
}

// NodalValueOld returns u @ nodes of the previous time step
func (o *Coupleable) NodalValueOld(name string, comp int) (vars.Value, error) {
	return o.nodalValue(name, comp, request{"NodalValueOld", vars.Old, false})
}

// NodalValueOlder returns u @ nodes of two time steps back
func (o *Coupleable) NodalValueOlder(name string, comp int) (vars.Value, error) {
	return o.nodalValue(name, comp, request{"NodalValueOlder", vars.Older, false})
}

// NodalValuePreviousNL returns u @ nodes of the previous nonlinear iterate
func (o *Coupleable) NodalValuePreviousNL(name string, comp int) (vars.Value, error) {
	return o.nodalValue(name, comp, request{"NodalValuePreviousNL", vars.PreviousNL, false})
}

func (o *Coupleable) nodalValue(name string, comp int, r request) (vars.Value, error) {
	f, s, err := o.standardVar(name, comp, r, "")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.getDefaultValue(name), nil
	}
	if !f.IsNodal() {
		return nil, o.errConfig(name, "'%s': coupled variable '%s' is not nodal", r.fn, f.Name())
	}
	return f.NodalValue(o.ctx(), s), nil
}

// NodalDot returns du/dt @ nodes
func (o *Coupleable) NodalDot(name string, comp int) (vars.Value, error) {
	f, _, err := o.standardVar(name, comp, request{"NodalDot", vars.Current, true}, "")
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.valueZero, nil
	}
	if !f.IsNodal() {
		return nil, o.errConfig(name, "'NodalDot': coupled variable '%s' is not nodal", f.Name())
	}
	return f.NodalDot(o.ctx()), nil
}

// degrees of freedom ///////////////////////////////////////////////////////////////////////////////

// SolutionDoFs returns the raw DOFs of the coupled variable in the active element
func (o *Coupleable) SolutionDoFs(name string, comp int) ([]float64, error) {
	return o.solutionDoFs(name, comp, request{"SolutionDoFs", vars.Current, false})
}

// SolutionDoFsOld returns the raw DOFs of the previous time step
func (o *Coupleable) SolutionDoFsOld(name string, comp int) ([]float64, error) {
	return o.solutionDoFs(name, comp, request{"SolutionDoFsOld", vars.Old, false})
}

// SolutionDoFsOlder returns the raw DOFs of two time steps back
func (o *Coupleable) SolutionDoFsOlder(name string, comp int) ([]float64, error) {
	return o.solutionDoFs(name, comp, request{"SolutionDoFsOlder", vars.Older, false})
}

// solutionDoFs has no default: the coupling must be supplied
func (o *Coupleable) solutionDoFs(name string, comp int, r request) ([]float64, error) {
	if err := o.CheckVar(name); err != nil {
		return nil, err
	}
	ok, err := o.IsCoupled(name, comp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, o.errConfig(name, "invalid variable name '%s' for '%s'", name, r.fn)
	}
	if o.nodal {
		return nil, o.errConfig(name, "'%s' of '%s' is not available for nodal objects", r.fn, name)
	}
	v, err := o.FieldVar(name, comp)
	if err != nil {
		return nil, err
	}
	s, err := o.resolve(name, r)
	if err != nil {
		return nil, err
	}
	switch w := v.(type) {
	case *vars.Field:
		return w.SolutionDoFs(o.ctx(), s), nil
	case *vars.VectorField:
		return w.SolutionDoFs(o.ctx(), s), nil
	}
	return nil, o.errInternal(name, "unknown variable type %T of '%s'", v, v.Name())
}
