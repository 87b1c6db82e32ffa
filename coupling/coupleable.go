// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coupling implements the resolver that lets kernels read the values of other
// variables by the names declared in their parameters
package coupling

import (
	"math"
	"strings"

	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gocouple/vars"
)

// Problem defines what the resolver needs from the owning problem
type Problem interface {
	IsTransient() bool                        // transient (otherwise steady) executioner
	Time() float64                            // current time
	NeedsPreviousNewtonIteration(needed bool) // flags that previous nonlinear iterates must be kept
	MaxQps() int                              // maximum number of quadrature points per element
}

// Registry defines the variable lookups used during construction; implemented by *vars.Registry
type Registry interface {
	HasVariable(name string) bool
	HasScalarVariable(name string) bool
	Variable(tid int, name string) (vars.Variable, error)
	ScalarVariable(tid int, name string) (*vars.Scalar, error)
}

// IdKind tells how a coupled id is numbered
type IdKind int

const (
	IdNonlinear  IdKind = iota // Num is the number of a nonlinear variable
	IdAuxiliary                // Num is the number of an auxiliary variable
	IdUnsupplied               // Num is the slot of an optional coupling that was not supplied
)

// Id identifies a coupled variable (or the placeholder of an unsupplied coupling)
type Id struct {
	Kind IdKind
	Num  int
}

// Packed returns the id in a single unsigned range: nonlinear numbers are kept and the other
// kinds count down from MaxUint32
func (o Id) Packed() uint32 {
	if o.Kind == IdNonlinear {
		return uint32(o.Num)
	}
	return math.MaxUint32 - uint32(o.Num)
}

// Coupleable holds the couplings of one object (e.g. a kernel) for one thread
type Coupleable struct {

	// callback
	OnCoupled func(name string, old bool) // [optional] called after each successful resolution

	// input
	prms *inp.Params // parameters of the owner
	name string      // owner name
	prob Problem     // owning problem
	tid  int         // thread id

	// flags
	nodal    bool // owner computes at nodes
	implicit bool // implicit time scheme
	neighbor bool // read the neighbor element

	// couplings
	fields  map[string][]vars.Variable // name => field variables (*vars.Field or *vars.VectorField)
	scalars map[string][]*vars.Scalar  // name => scalar (0-D) variables
	slots   map[string]int             // name => slot of unsupplied coupling
	allVars []vars.Variable            // all coupled field variables, in declaration order

	// defaults
	maxQps        int                         // size of default arrays
	valueZero     vars.Value                  // zero values
	gradZero      vars.Gradient               // zero gradients
	secondZero    vars.Second                 // zero second derivatives
	vectorZero    vars.VectorValue            // zero vector values
	curlZero      vars.Curl                   // zero curls
	defaultValue  map[string]vars.Value       // name => constant default
	defaultVector map[string]vars.VectorValue // name => zero vector default
	defaultScalar map[string][]float64        // name => constant scalar default
}

// New resolves the couplings declared in prms and returns a new resolver for thread tid
//  Input:
//   prms  -- parameters of the owner; Coupled holds name => variable names
//   prob  -- owning problem
//   reg   -- variable registry
//   tid   -- thread id
//   nodal -- owner computes at nodes
func New(prms *inp.Params, prob Problem, reg Registry, tid int, nodal bool) (o *Coupleable, err error) {

	// input
	o = new(Coupleable)
	o.prms = prms
	o.name = prms.Name
	o.prob = prob
	o.tid = tid
	o.nodal = nodal
	o.implicit = prms.IsImplicit()
	o.neighbor = prms.Neighbor

	// couplings
	o.fields = make(map[string][]vars.Variable)
	o.scalars = make(map[string][]*vars.Scalar)
	o.slots = make(map[string]int)
	nslots := 0
	for _, name := range prms.CoupledNames() {
		varNames := prms.Coupled[name]
		if len(varNames) == 0 {
			o.slots[name] = nslots
			nslots++
			continue
		}
		for _, vname := range varNames {
			switch {
			case reg.HasVariable(vname):
				v, e := reg.Variable(tid, vname)
				if e != nil {
					return nil, o.errInternal(name, "cannot get variable '%s' of coupling '%s':\n%v", vname, name, e)
				}
				switch v.(type) {
				case *vars.Field, *vars.VectorField:
				default:
					return nil, o.errInternal(name, "unknown variable type %T of '%s' coupled as '%s'", v, vname, name)
				}
				o.fields[name] = append(o.fields[name], v)
				o.allVars = append(o.allVars, v)
			case reg.HasScalarVariable(vname):
				v, e := reg.ScalarVariable(tid, vname)
				if e != nil {
					return nil, o.errInternal(name, "cannot get scalar variable '%s' of coupling '%s':\n%v", vname, name, e)
				}
				o.scalars[name] = append(o.scalars[name], v)
			default:
				return nil, o.errConfig(name, "coupled variable '%s' of coupling '%s' was never found", vname, name)
			}
		}
	}

	// defaults
	o.maxQps = prob.MaxQps()
	o.valueZero = make(vars.Value, o.maxQps)
	o.gradZero = make(vars.Gradient, o.maxQps)
	o.secondZero = make(vars.Second, o.maxQps)
	o.vectorZero = make(vars.VectorValue, o.maxQps)
	o.curlZero = make(vars.Curl, o.maxQps)
	o.defaultValue = make(map[string]vars.Value)
	o.defaultVector = make(map[string]vars.VectorValue)
	o.defaultScalar = make(map[string][]float64)
	return
}

// flags and data ///////////////////////////////////////////////////////////////////////////////////

// Name returns the name of the owner
func (o *Coupleable) Name() string { return o.name }

// Tid returns the thread id
func (o *Coupleable) Tid() int { return o.tid }

// IsNodal tells whether the owner computes at nodes
func (o *Coupleable) IsNodal() bool { return o.nodal }

// IsImplicit tells whether the time scheme is implicit
func (o *Coupleable) IsImplicit() bool { return o.implicit }

// IsNeighbor tells whether values are read from the neighbor element
func (o *Coupleable) IsNeighbor() bool { return o.neighbor }

// MaxQps returns the size of the default arrays
func (o *Coupleable) MaxQps() int { return o.maxQps }

// CoupledVars returns all coupled field variables in declaration order
func (o *Coupleable) CoupledVars() []vars.Variable { return o.allVars }

// queries //////////////////////////////////////////////////////////////////////////////////////////

// IsCoupled tells whether name was supplied with a variable at component comp.
// It fails only if name was never declared.
func (o *Coupleable) IsCoupled(name string, comp int) (ok bool, err error) {
	if vs, found := o.fields[name]; found {
		return comp >= 0 && comp < len(vs), nil
	}
	if !o.prms.HasCoupledValue(name) {
		return false, o.errConfig(name, "coupled variable '%s' was never added to this object's parameters", name)
	}
	return
}

// Components returns the number of field variables coupled as name
func (o *Coupleable) Components(name string) int {
	return len(o.fields[name])
}

// ScalarComponents returns the number of scalar variables coupled as name
func (o *Coupleable) ScalarComponents(name string) int {
	return len(o.scalars[name])
}

// CheckVar fails if name, requested as a field, was coupled to scalar variables
func (o *Coupleable) CheckVar(name string) (err error) {
	ss, ok := o.scalars[name]
	if !ok || len(ss) == 0 {
		return
	}
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name()
	}
	return o.errConfig(name, "trying to couple a scalar variable where field variable is expected, '%s = %s'", name, strings.Join(names, " "))
}

// FieldVar returns the field variable coupled as name at component comp
func (o *Coupleable) FieldVar(name string, comp int) (v vars.Variable, err error) {
	vs, ok := o.fields[name]
	if !ok {
		if _, isScalar := o.scalars[name]; isScalar {
			return nil, o.errConfig(name, "trying to couple a scalar variable where field variable is expected, '%s'", name)
		}
		return nil, o.errConfig(name, "coupled field variable '%s' was never found", name)
	}
	if comp < 0 || comp >= len(vs) {
		return nil, o.errConfig(name, "trying to get a non-existent component %d of variable '%s'", comp, name)
	}
	v = vs[comp]
	if o.nodal && !v.IsNodal() {
		return nil, o.errConfig(name, "you cannot couple an elemental variable '%s' to a nodal variable", v.Name())
	}
	return
}

// StandardVar returns the scalar field coupled as name at component comp
func (o *Coupleable) StandardVar(name string, comp int) (f *vars.Field, err error) {
	v, err := o.FieldVar(name, comp)
	if err != nil {
		return
	}
	f, ok := v.(*vars.Field)
	if !ok {
		return nil, o.errConfig(name, "variable '%s' coupled as '%s' is not a standard (scalar) field", v.Name(), name)
	}
	return
}

// VectorVar returns the vector field coupled as name at component comp
func (o *Coupleable) VectorVar(name string, comp int) (f *vars.VectorField, err error) {
	v, err := o.FieldVar(name, comp)
	if err != nil {
		return
	}
	f, ok := v.(*vars.VectorField)
	if !ok {
		return nil, o.errConfig(name, "variable '%s' coupled as '%s' is not a vector field", v.Name(), name)
	}
	return
}

// ScalarVar returns the scalar (0-D) variable coupled as name at component comp
func (o *Coupleable) ScalarVar(name string, comp int) (s *vars.Scalar, err error) {
	if _, ok := o.fields[name]; ok {
		return nil, o.errConfig(name, "trying to couple a field variable where scalar variable is expected, '%s'", name)
	}
	ss, ok := o.scalars[name]
	if !ok {
		return nil, o.errConfig(name, "coupled scalar variable '%s' was never found", name)
	}
	if comp < 0 || comp >= len(ss) {
		return nil, o.errConfig(name, "trying to get a non-existent component %d of scalar variable '%s'", comp, name)
	}
	return ss[comp], nil
}

// Coupled returns the id of the variable coupled as name at component comp; unsupplied
// optional couplings return their slot
func (o *Coupleable) Coupled(name string, comp int) (id Id, err error) {
	if err = o.CheckVar(name); err != nil {
		return
	}
	ok, err := o.IsCoupled(name, 0)
	if err != nil {
		return
	}
	if !ok {
		slot, found := o.slots[name]
		if !found {
			return id, o.errConfig(name, "coupling '%s' has neither variables nor slot", name)
		}
		return Id{IdUnsupplied, slot}, nil
	}
	v, err := o.FieldVar(name, comp)
	if err != nil {
		return
	}
	switch v.Kind() {
	case vars.Nonlinear:
		return Id{IdNonlinear, v.Number()}, nil
	case vars.Auxiliary:
		return Id{IdAuxiliary, v.Number()}, nil
	}
	return id, o.errInternal(name, "unknown variable kind %v of '%s'", v.Kind(), v.Name())
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// request holds the options of one accessor call
type request struct {
	fn    string     // accessor name; used in messages
	state vars.State // requested state
	rate  bool       // time derivative
}

// ctx returns the evaluation context
func (o *Coupleable) ctx() vars.Context {
	if o.neighbor {
		return vars.Neighbor
	}
	return vars.Element
}

// resolve checks the time state of a request, applies the explicit-scheme shift and flags the
// problem if previous nonlinear iterates are read; the hook is called on success
func (o *Coupleable) resolve(name string, r request) (s vars.State, err error) {
	if (r.rate || r.state.IsHistory()) && !o.prob.IsTransient() {
		return 0, o.errState(name, "calling '%s' on variable '%s' when using a steady executioner is not allowed; this accessor is only available for transient executioners", r.fn, name)
	}
	s = r.state
	switch {
	case r.rate:
		s = vars.Current
	case s == vars.PreviousNL:
		o.prob.NeedsPreviousNewtonIteration(true)
	case !o.implicit:
		switch s {
		case vars.Current:
			s = vars.Old
		case vars.Old:
			s = vars.Older
		default:
			return 0, o.errState(name, "'%s' of variable '%s': older values not available for explicit schemes", r.fn, name)
		}
	}
	if o.OnCoupled != nil {
		o.OnCoupled(name, r.state.IsHistory())
	}
	return
}

// getDefaultValue returns the constant default of an unsupplied coupling
func (o *Coupleable) getDefaultValue(name string) vars.Value {
	v, ok := o.defaultValue[name]
	if !ok {
		v = make(vars.Value, o.maxQps)
		c := o.prms.DefaultCoupledValue(name)
		for i := range v {
			v[i] = c
		}
		o.defaultValue[name] = v
	}
	return v
}

// getDefaultVector returns the zero vector default of an unsupplied coupling
func (o *Coupleable) getDefaultVector(name string) vars.VectorValue {
	v, ok := o.defaultVector[name]
	if !ok {
		v = make(vars.VectorValue, o.maxQps)
		o.defaultVector[name] = v
	}
	return v
}

// getDefaultScalar returns the constant default of an unsupplied scalar coupling
func (o *Coupleable) getDefaultScalar(name string) []float64 {
	v, ok := o.defaultScalar[name]
	if !ok {
		v = []float64{o.prms.DefaultCoupledValue(name)}
		o.defaultScalar[name] = v
	}
	return v
}
