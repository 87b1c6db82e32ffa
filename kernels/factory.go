// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernels

import (
	"sort"

	"github.com/cpmech/gocouple/asm"
	"github.com/cpmech/gocouple/coupling"
	"github.com/cpmech/gocouple/inp"
	"github.com/cpmech/gosl/chk"
)

// AllocatorType defines a function that allocates a kernel
type AllocatorType func() Kernel

// New returns a new kernel from factory, initialised for thread tid
func New(prms *inp.Params, prob coupling.Problem, reg Registry, a *asm.Assembly, tid int) (k Kernel, err error) {
	fcn, ok := allocators[prms.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for kernel {name=%q, type=%q}", prms.Name, prms.Type)
	}
	k = fcn()
	if k == nil {
		return nil, chk.Err("kernel {name=%q, type=%q} is not available", prms.Name, prms.Type)
	}
	err = k.Init(prms, prob, reg, a, tid)
	return
}

// SetAllocator sets a new callback function to allocate a kernel
func SetAllocator(kernelType string, fcn AllocatorType) {
	if _, ok := allocators[kernelType]; ok {
		chk.Panic("cannot set allocator function for %q because kernel type exists already", kernelType)
	}
	allocators[kernelType] = fcn
}

// GetAllocator gets callback function to allocate a kernel
func GetAllocator(kernelType string) AllocatorType {
	if fcn, ok := allocators[kernelType]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for kernel %q", kernelType)
	return nil
}

// Types returns the registered kernel types in sorted order
func Types() (res []string) {
	for key := range allocators {
		res = append(res, key)
	}
	sort.Strings(res)
	return
}

// allocators holds all kernel allocators
var allocators = make(map[string]AllocatorType)
