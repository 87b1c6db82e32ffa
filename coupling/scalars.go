// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import "github.com/cpmech/gocouple/vars"

// ScalarValue returns the components of the scalar (0-D) variable coupled as name
func (o *Coupleable) ScalarValue(name string, comp int) ([]float64, error) {
	return o.scalarValue(name, comp, request{"ScalarValue", vars.Current, false})
}

// ScalarValueOld returns the components of the previous time step
func (o *Coupleable) ScalarValueOld(name string, comp int) ([]float64, error) {
	return o.scalarValue(name, comp, request{"ScalarValueOld", vars.Old, false})
}

// ScalarValueOlder returns the components of two time steps back
func (o *Coupleable) ScalarValueOlder(name string, comp int) ([]float64, error) {
	return o.scalarValue(name, comp, request{"ScalarValueOlder", vars.Older, false})
}

func (o *Coupleable) scalarValue(name string, comp int, r request) ([]float64, error) {
	if !o.prms.HasCoupledValue(name) {
		return nil, o.errConfig(name, "coupled scalar variable '%s' was never added to this object's parameters", name)
	}
	_, isScalar := o.scalars[name]
	_, isField := o.fields[name]
	if !isScalar && !isField {
		return o.getDefaultScalar(name), nil
	}
	v, err := o.ScalarVar(name, comp)
	if err != nil {
		return nil, err
	}
	s, err := o.resolve(name, r)
	if err != nil {
		return nil, err
	}
	return v.Sln(s), nil
}
