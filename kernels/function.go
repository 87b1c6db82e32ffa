// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// newFunction allocates the f(t, x) function named prms.Func; a constant cte if no name is given
func newFunction(prms *inp.Params, cte float64) (fcn dbf.T, err error) {
	if prms.Func == "" {
		return &dbf.Cte{C: cte}, nil
	}
	defer func() {
		if e := recover(); e != nil {
			fcn, err = nil, chk.Err("kernel %q: cannot get function %q because of the following error:\n%v", prms.Name, prms.Func, e)
		}
	}()
	fcn = dbf.New(prms.Func, prms.FuncPrms)
	return
}
