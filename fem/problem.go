// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "sync/atomic"

// Problem holds the problem-wide flags read by kernels and their couplings
type Problem struct {
	Transient bool    // transient (otherwise steady) executioner
	Dt        float64 // time step; d(du/dt)/du = 1/Dt
	T         float64 // current time
	nqp       int     // maximum number of integration points per element
	prevNL    atomic.Bool
}

// NewProblem returns a new problem
func NewProblem(transient bool, dt float64, maxQps int) *Problem {
	return &Problem{Transient: transient, Dt: dt, nqp: maxQps}
}

// IsTransient tells whether the executioner is transient
func (o *Problem) IsTransient() bool { return o.Transient }

// Time returns the current time
func (o *Problem) Time() float64 { return o.T }

// NeedsPreviousNewtonIteration flags that previous nonlinear iterates must be kept.
// Kernels of all threads may call this concurrently.
func (o *Problem) NeedsPreviousNewtonIteration(needed bool) { o.prevNL.Store(needed) }

// PreviousNewtonIteration tells whether previous nonlinear iterates must be kept
func (o *Problem) PreviousNewtonIteration() bool { return o.prevNL.Load() }

// MaxQps returns the maximum number of integration points per element
func (o *Problem) MaxQps() int { return o.nqp }
