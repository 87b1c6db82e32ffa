// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const problemYAML = `
desc: reaction with coupled force
threads: 2
mesh: {nelem: 4, xmin: 0, xmax: 1, nip: 2}
variables:
  - {name: u, value: 1}
  - {name: v, family: monomial, value: 2}
  - {name: r, aux: true}
kernels:
  - {name: react, type: reaction, variable: u, savein: [r], prms: {lambda: 2}}
  - {name: force, type: coupled-force, variable: u, coupled: {v: [v], w: []}}
  - {name: vv, type: reaction, variable: v}
`

func Test_main01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("main01. assemble command")

	defer goleak.VerifyNone(tst)

	fn := filepath.Join(tst.TempDir(), "problem.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte(problemYAML), 0644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"assemble", fn, "--jacobian", "--check", "--threads", "3"})
	require.NoError(tst, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"kernels"})
	require.NoError(tst, cmd.Execute())

	// errors
	cmd = newRootCmd()
	cmd.SetArgs([]string{"assemble", filepath.Join(tst.TempDir(), "missing.yaml")})
	require.Error(tst, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"assemble"})
	require.Error(tst, cmd.Execute())
}
