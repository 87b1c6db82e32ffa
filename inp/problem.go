// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// variable families
const (
	FamilyLagrange = "lagrange" // nodal, continuous
	FamilyMonomial = "monomial" // elemental, constant per element
	FamilyScalar   = "scalar"   // 0-D
)

// coordinate systems
const (
	CoordXYZ        = "xyz"        // Cartesian
	CoordRZ         = "rz"         // axisymmetric
	CoordRSpherical = "rspherical" // spherically symmetric
)

// VarData holds the definition of one variable and its uniform initial values
type VarData struct {
	Name   string  `json:"name" yaml:"name"`     // variable name
	Aux    bool    `json:"aux" yaml:"aux"`       // auxiliary variable
	Family string  `json:"family" yaml:"family"` // "lagrange", "monomial" or "scalar"
	Value  float64 `json:"value" yaml:"value"`   // current value
	Old    float64 `json:"old" yaml:"old"`       // value @ previous step
	Older  float64 `json:"older" yaml:"older"`   // value two steps back
}

// MeshData holds the data of a 1D mesh generated on the fly
type MeshData struct {
	Nelem int     `json:"nelem" yaml:"nelem"` // number of lin2 elements
	Xmin  float64 `json:"xmin" yaml:"xmin"`   // left end
	Xmax  float64 `json:"xmax" yaml:"xmax"`   // right end
	Nip   int     `json:"nip" yaml:"nip"`     // number of integration points per element
}

// Problem holds all data required to assemble a problem
type Problem struct {
	Desc      string     `json:"desc" yaml:"desc"`           // description
	Transient bool       `json:"transient" yaml:"transient"` // transient (otherwise steady) executioner
	Coord     string     `json:"coord" yaml:"coord"`         // coordinate system
	Dt        float64    `json:"dt" yaml:"dt"`               // time step; d(du/dt)/du = 1/dt
	Time      float64    `json:"time" yaml:"time"`           // initial time; functions f(t, x) are evaluated at it
	Threads   int        `json:"threads" yaml:"threads"`     // number of threads
	Mesh      MeshData   `json:"mesh" yaml:"mesh"`           // mesh
	Variables []*VarData `json:"variables" yaml:"variables"` // variables
	Kernels   []*Params  `json:"kernels" yaml:"kernels"`     // kernels
}

// ReadProblem reads a .json, .yaml or .yml problem file
func ReadProblem(path string) (o *Problem, err error) {
	b, err := readFile(path)
	if err != nil {
		return
	}
	o = new(Problem)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	case ".json":
		err = json.Unmarshal(b, o)
	default:
		return nil, chk.Err("ReadProblem: file extension of %q must be .json, .yaml or .yml", path)
	}
	if err != nil {
		return nil, chk.Err("ReadProblem: cannot unmarshal problem file %q:\n%v", path, err)
	}
	o.SetDefault()
	err = o.Validate()
	return
}

// readFile reads all bytes of a file; failures in io.ReadFile are returned as errors
func readFile(path string) (b []byte, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = chk.Err("ReadProblem: cannot read problem file %q:\n%v", path, e)
		}
	}()
	b = io.ReadFile(path)
	return
}

// SetDefault sets default values
func (o *Problem) SetDefault() {
	if o.Coord == "" {
		o.Coord = CoordXYZ
	}
	if o.Dt <= 0 {
		o.Dt = 1
	}
	if o.Threads < 1 {
		o.Threads = 1
	}
	if o.Mesh.Nelem < 1 {
		o.Mesh.Nelem = 1
	}
	if o.Mesh.Xmax <= o.Mesh.Xmin {
		o.Mesh.Xmax = o.Mesh.Xmin + 1
	}
	if o.Mesh.Nip < 1 {
		o.Mesh.Nip = 2
	}
	for _, v := range o.Variables {
		if v.Family == "" {
			v.Family = FamilyLagrange
		}
	}
	for i, k := range o.Kernels {
		if k.Name == "" {
			k.Name = io.Sf("kernel%d", i)
		}
	}
}

// Validate checks the consistency of names and options
func (o *Problem) Validate() (err error) {
	switch o.Coord {
	case CoordXYZ, CoordRZ, CoordRSpherical:
	default:
		return chk.Err("coordinate system %q is invalid; use xyz, rz or rspherical", o.Coord)
	}
	names := make(map[string]*VarData)
	for _, v := range o.Variables {
		if v.Name == "" {
			return chk.Err("all variables must have a name")
		}
		if _, ok := names[v.Name]; ok {
			return chk.Err("variable %q is defined twice", v.Name)
		}
		switch v.Family {
		case FamilyLagrange, FamilyMonomial, FamilyScalar:
		default:
			return chk.Err("variable %q has invalid family %q", v.Name, v.Family)
		}
		names[v.Name] = v
	}
	for _, k := range o.Kernels {
		v, ok := names[k.Variable]
		if !ok {
			return chk.Err("kernel %q acts on unknown variable %q", k.Name, k.Variable)
		}
		if v.Aux || v.Family == FamilyScalar {
			return chk.Err("kernel %q must act on a nonlinear field variable; %q is not", k.Name, k.Variable)
		}
	}
	return
}
