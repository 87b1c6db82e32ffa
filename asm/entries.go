// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// Entries holds (i, j, x) triples put by one thread; they are replayed into a shared sparse
// matrix after all threads finish
type Entries struct {
	I []int     // row indices
	J []int     // column indices
	X []float64 // values
}

// Put appends one entry
func (o *Entries) Put(i, j int, x float64) {
	o.I = append(o.I, i)
	o.J = append(o.J, j)
	o.X = append(o.X, x)
}

// Len returns the number of entries
func (o *Entries) Len() int { return len(o.X) }

// Reset removes all entries keeping the capacity
func (o *Entries) Reset() {
	o.I = o.I[:0]
	o.J = o.J[:0]
	o.X = o.X[:0]
}

// Replay puts all entries into dest
func (o *Entries) Replay(dest Putter) {
	for k, x := range o.X {
		dest.Put(o.I[k], o.J[k], x)
	}
}
