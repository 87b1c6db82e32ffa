// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of kernels and problems read from JSON or YAML files
package inp

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/fun/dbf"
)

// Params holds the parameters of one kernel (or any object able to couple to variables)
//
//  Coupled maps a coupling name, as seen by the object, to the ordered list of variables
//  supplying it. An empty list declares an optional coupling that was not supplied.
//  Example (YAML):
//     name: force
//     type: coupled-force
//     variable: u
//     coupled: {v: [temp], w: []}
//     defaults: {w: 2.5}
//
//  Func and FuncPrms select a function f(t, {x}) from the gosl database; e.g.
//     func: xpoly1
//     funcprms: [{n: a0, v: 2}]
type Params struct {
	Name       string              `json:"name" yaml:"name"`             // object name; used in messages
	Type       string              `json:"type" yaml:"type"`             // kernel type; e.g. "reaction"
	Variable   string              `json:"variable" yaml:"variable"`     // variable this kernel acts on
	Coupled    map[string][]string `json:"coupled" yaml:"coupled"`       // coupling name => variables
	Defaults   map[string]float64  `json:"defaults" yaml:"defaults"`     // default values of optional couplings
	Implicit   *bool               `json:"implicit" yaml:"implicit"`     // implicit time scheme; nil => true
	Neighbor   bool                `json:"neighbor" yaml:"neighbor"`     // evaluate on the neighbor element
	SaveIn     []string            `json:"savein" yaml:"savein"`         // auxiliary variables receiving the residual
	DiagSaveIn []string            `json:"diagsavein" yaml:"diagsavein"` // auxiliary variables receiving the Jacobian diagonal
	Prms       map[string]float64  `json:"prms" yaml:"prms"`             // kernel coefficients; e.g. {"lambda": 2}
	Func       string              `json:"func" yaml:"func"`             // name of f(t, x) function; e.g. "xpoly1"
	FuncPrms   dbf.Params          `json:"funcprms" yaml:"funcprms"`     // parameters of Func
}

// CoupledNames returns the declared coupling names in sorted order
func (o *Params) CoupledNames() (names []string) {
	names = make([]string, 0, len(o.Coupled))
	for name := range o.Coupled {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// HasCoupledValue tells whether name was declared as a coupling (supplied or not)
func (o *Params) HasCoupledValue(name string) bool {
	_, ok := o.Coupled[name]
	return ok
}

// DefaultCoupledValue returns the value used when the optional coupling name is not supplied
func (o *Params) DefaultCoupledValue(name string) float64 {
	return o.Defaults[name]
}

// IsImplicit returns the time scheme flag; implicit unless stated otherwise
func (o *Params) IsImplicit() bool {
	if o.Implicit == nil {
		return true
	}
	return *o.Implicit
}

// Prm returns the coefficient named key or dflt if it is not given
func (o *Params) Prm(key string, dflt float64) float64 {
	if v, ok := o.Prms[key]; ok {
		return v
	}
	return dflt
}

// Couple adds a coupling declaration; no variable names declare an optional coupling
func (o *Params) Couple(name string, varNames ...string) *Params {
	if o.Coupled == nil {
		o.Coupled = make(map[string][]string)
	}
	o.Coupled[name] = append([]string{}, varNames...)
	return o
}

// String returns a short description such as "force(coupled-force)"
func (o *Params) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	if o.Type != "" {
		b.WriteString("(" + o.Type + ")")
	}
	return b.String()
}
