// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vars

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Registry holds the variables known to a problem; one copy of each handle per thread
type Registry struct {
	fields  []map[string]Variable // [nthreads] name => *Field or *VectorField
	scalars []map[string]*Scalar  // [nthreads] name => *Scalar
}

// NewRegistry returns a new registry for nthreads threads
func NewRegistry(nthreads int) (o *Registry) {
	if nthreads < 1 {
		nthreads = 1
	}
	o = new(Registry)
	o.fields = make([]map[string]Variable, nthreads)
	o.scalars = make([]map[string]*Scalar, nthreads)
	for t := 0; t < nthreads; t++ {
		o.fields[t] = make(map[string]Variable)
		o.scalars[t] = make(map[string]*Scalar)
	}
	return
}

// Nthreads returns the number of thread copies
func (o *Registry) Nthreads() int { return len(o.fields) }

// Add adds a variable; the handle is kept by thread 0 and cloned for the other threads
func (o *Registry) Add(v Variable) (err error) {
	name := v.Name()
	if _, ok := o.fields[0][name]; ok {
		return chk.Err("variable %q exists already", name)
	}
	if _, ok := o.scalars[0][name]; ok {
		return chk.Err("variable %q exists already", name)
	}
	for t := range o.fields {
		switch w := v.(type) {
		case *Field:
			if t > 0 {
				w = w.Clone()
			}
			o.fields[t][name] = w
		case *VectorField:
			if t > 0 {
				w = w.Clone()
			}
			o.fields[t][name] = w
		case *Scalar:
			if t > 0 {
				w = w.Clone()
			}
			o.scalars[t][name] = w
		default:
			return chk.Err("variable %q has unknown type %T", name, v)
		}
	}
	return
}

// HasVariable tells whether a field variable named name exists
func (o *Registry) HasVariable(name string) bool {
	_, ok := o.fields[0][name]
	return ok
}

// HasScalarVariable tells whether a scalar (0-D) variable named name exists
func (o *Registry) HasScalarVariable(name string) bool {
	_, ok := o.scalars[0][name]
	return ok
}

// Variable returns the field variable of thread tid
func (o *Registry) Variable(tid int, name string) (v Variable, err error) {
	if tid < 0 || tid >= len(o.fields) {
		return nil, chk.Err("thread %d is not available; nthreads = %d", tid, len(o.fields))
	}
	v, ok := o.fields[tid][name]
	if !ok {
		return nil, chk.Err("cannot find field variable named %q", name)
	}
	return
}

// ScalarVariable returns the scalar variable of thread tid
func (o *Registry) ScalarVariable(tid int, name string) (v *Scalar, err error) {
	if tid < 0 || tid >= len(o.scalars) {
		return nil, chk.Err("thread %d is not available; nthreads = %d", tid, len(o.scalars))
	}
	v, ok := o.scalars[tid][name]
	if !ok {
		return nil, chk.Err("cannot find scalar variable named %q", name)
	}
	return
}

// Field returns the scalar field variable of thread tid
func (o *Registry) Field(tid int, name string) (f *Field, err error) {
	v, err := o.Variable(tid, name)
	if err != nil {
		return
	}
	f, ok := v.(*Field)
	if !ok {
		return nil, chk.Err("variable %q is not a scalar field", name)
	}
	return
}

// Fields returns all scalar fields of thread tid sorted by kind and number
func (o *Registry) Fields(tid int) (res []*Field) {
	for _, v := range o.fields[tid] {
		if f, ok := v.(*Field); ok {
			res = append(res, f)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].VarKind != res[j].VarKind {
			return res[i].VarKind < res[j].VarKind
		}
		return res[i].Num < res[j].Num
	})
	return
}
