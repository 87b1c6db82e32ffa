// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coupling

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// Class classifies coupling errors
type Class int

const (
	ConfigError   Class = iota // unresolvable name, scalar/field or vector/standard mismatch, nodal/elemental violation
	StateError                 // history or rates under a steady executioner, older data under explicit schemes
	InternalError              // unknown variable type or kind
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case ConfigError:
		return "configuration error"
	case StateError:
		return "state error"
	case InternalError:
		return "internal error"
	}
	return "unknown error"
}

// Error holds a fatal coupling error. There is no recovery path: callers stop the run.
type Error struct {
	Class  Class  // error class
	Object string // name of the object requesting the coupling
	Name   string // coupling name
	Msg    string // description
}

// Error returns the message prefixed by the object name
func (o *Error) Error() string {
	return io.Sf("%s: %s", o.Object, o.Msg)
}

// ClassOf returns the class of err and whether err is a coupling error
func ClassOf(err error) (c Class, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return
}

// errors //////////////////////////////////////////////////////////////////////////////////////////

func (o *Coupleable) errConfig(name, msg string, prm ...interface{}) error {
	return &Error{ConfigError, o.name, name, io.Sf(msg, prm...)}
}

func (o *Coupleable) errState(name, msg string, prm ...interface{}) error {
	return &Error{StateError, o.name, name, io.Sf(msg, prm...)}
}

func (o *Coupleable) errInternal(name, msg string, prm ...interface{}) error {
	return &Error{InternalError, o.name, name, io.Sf(msg, prm...)}
}
