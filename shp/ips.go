// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// Ipoint holds the natural coordinates (r, s, t) and the weight (w) of one integration point
type Ipoint [4]float64

// W returns the weight
func (o Ipoint) W() float64 { return o[3] }

// GaussLegendre returns n Gauss-Legendre points on [-1, 1]; exact for polynomials of degree 2n-1
func GaussLegendre(n int) (ips []Ipoint, err error) {
	if n < 1 {
		return nil, chk.Err("cannot find %d Gauss-Legendre points; n must be positive", n)
	}
	x, w := num.GaussLegendreXW(-1, 1, n)
	ips = make([]Ipoint, n)
	for i := 0; i < n; i++ {
		ips[i] = Ipoint{x[i], 0, 0, w[i]}
	}
	return
}
