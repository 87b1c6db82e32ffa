// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import "github.com/cpmech/gocouple/vars"

// vectorVar runs the checks shared by the accessors of vector fields. f is nil if name is an
// optional coupling that was not supplied.
func (o *Coupleable) vectorVar(name string, comp int, r request) (f *vars.VectorField, s vars.State, err error) {
	if err = o.CheckVar(name); err != nil {
		return
	}
	ok, err := o.IsCoupled(name, 0)
	if err != nil || !ok {
		return
	}
	if o.nodal {
		return nil, 0, o.errConfig(name, "'%s' of '%s': vector variables are not required to be continuous and so should not be used with nodal compute objects", r.fn, name)
	}
	if f, err = o.VectorVar(name, comp); err != nil {
		return
	}
	s, err = o.resolve(name, r)
	return
}

// VectorValue returns u @ ips
func (o *Coupleable) VectorValue(name string, comp int) (vars.VectorValue, error) {
	return o.vectorValue(name, comp, request{"VectorValue", vars.Current, false})
}

// VectorValueOld returns u @ ips of the previous time step
func (o *Coupleable) VectorValueOld(name string, comp int) (vars.VectorValue, error) {
	return o.vectorValue(name, comp, request{"VectorValueOld", vars.Old, false})
}

// VectorValueOlder returns u @ ips of two time steps back
func (o *Coupleable) VectorValueOlder(name string, comp int) (vars.VectorValue, error) {
	return o.vectorValue(name, comp, request{"VectorValueOlder", vars.Older, false})
}

func (o *Coupleable) vectorValue(name string, comp int, r request) (vars.VectorValue, error) {
	f, s, err := o.vectorVar(name, comp, r)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.getDefaultVector(name), nil
	}
	return f.Sln(o.ctx(), s), nil
}

// VectorDot returns du/dt @ ips
func (o *Coupleable) VectorDot(name string, comp int) (vars.VectorValue, error) {
	f, _, err := o.vectorVar(name, comp, request{"VectorDot", vars.Current, true})
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.vectorZero, nil
	}
	return f.Dot(o.ctx()), nil
}

// Curl returns ∇×u @ ips
func (o *Coupleable) Curl(name string, comp int) (vars.Curl, error) {
	return o.curl(name, comp, request{"Curl", vars.Current, false})
}

// CurlOld returns ∇×u @ ips of the previous time step
func (o *Coupleable) CurlOld(name string, comp int) (vars.Curl, error) {
	return o.curl(name, comp, request{"CurlOld", vars.Old, false})
}

// CurlOlder returns ∇×u @ ips of two time steps back
func (o *Coupleable) CurlOlder(name string, comp int) (vars.Curl, error) {
	return o.curl(name, comp, request{"CurlOlder", vars.Older, false})
}

func (o *Coupleable) curl(name string, comp int, r request) (vars.Curl, error) {
	f, s, err := o.vectorVar(name, comp, r)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return o.curlZero, nil
	}
	return f.CurlSln(o.ctx(), s), nil
}
