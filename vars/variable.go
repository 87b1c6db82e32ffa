// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vars implements the variable handles read by kernels: scalar fields, vector fields
// and scalar (0-D) unknowns with their values at quadrature points and nodes
package vars

// Vec holds the three components of a gradient or vector value @ one point
type Vec [3]float64

// Ten holds a second-order tensor @ one point; e.g. the Hessian of a scalar field
type Ten [3][3]float64

// Value holds one scalar per quadrature point (or per node)
type Value []float64

// Gradient holds one gradient per quadrature point
type Gradient []Vec

// Second holds one matrix of second derivatives per quadrature point
type Second []Ten

// VectorValue holds one vector per quadrature point
type VectorValue []Vec

// Curl holds one curl vector per quadrature point
type Curl []Vec

// State selects a time snapshot of the solution
type State int

const (
	Current    State = iota // current solution
	Old                     // previous time step
	Older                   // two time steps back
	PreviousNL              // previous nonlinear iterate
	NumStates
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Current:
		return "current"
	case Old:
		return "old"
	case Older:
		return "older"
	case PreviousNL:
		return "previous nonlinear iterate"
	}
	return "unknown"
}

// IsHistory tells whether s refers to data from a previous step or iterate
func (s State) IsHistory() bool { return s != Current }

// Context selects the element where values are evaluated
type Context int

const (
	Element  Context = iota // local element
	Neighbor                // element across the current face
	NumContexts
)

// Kind tells how a variable is numbered
type Kind int

const (
	Nonlinear Kind = iota // primary unknown solved for
	Auxiliary             // derived/auxiliary variable
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Nonlinear:
		return "nonlinear"
	case Auxiliary:
		return "auxiliary"
	}
	return "unknown"
}

// Variable is the closed set of variable handles: *Field, *VectorField and *Scalar.
// Consumers switch on the concrete type; no other implementations exist.
type Variable interface {
	Name() string  // variable name
	Number() int   // number within its kind
	Kind() Kind    // nonlinear or auxiliary
	IsNodal() bool // continuous at nodes (e.g. Lagrange) or elemental (e.g. monomial)
	sealed()
}

// Meta holds the data shared by all variable handles
type Meta struct {
	VarName string // name
	Num     int    // number within its kind
	VarKind Kind   // nonlinear or auxiliary
	Nodal   bool   // nodal continuity
}

// Name returns the variable name
func (o *Meta) Name() string { return o.VarName }

// Number returns the variable number
func (o *Meta) Number() int { return o.Num }

// Kind returns the kind of variable
func (o *Meta) Kind() Kind { return o.VarKind }

// IsNodal tells whether the variable is continuous at nodes
func (o *Meta) IsNodal() bool { return o.Nodal }

func (o *Meta) sealed() {}
