// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quant

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a coded error message, the unit of an ErrorStack.
type Error struct {
	Code int
	Msg  string
	Err  error // wrapped cause, already part of Msg
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors by message so a wrapped or copied Error
// still satisfies errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == e.Msg && t.Code == e.Code
}

// Errorf formats an Error with the given code.
func Errorf(code int, format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Code: code, Msg: err.Error(), Err: errors.Unwrap(err)}
}

// Sentinel errors returned by the translator.
var (
	ErrNoColors = &Error{Msg: "no colors available for translation"}
	ErrOverflow = &Error{Msg: "integer overflow calculating memory allocation"}
	ErrKernel   = &Error{Msg: "invalid error diffusion map"}
)

// ErrorStack collects errors for one logical context.  The most recently
// pushed error is on top; a failing callee pushes before its caller so the
// deepest failure ends up at the bottom.
//
// The zero value is an empty stack.  An ErrorStack is not safe for
// concurrent use.
type ErrorStack struct {
	errs []*Error
}

// Push adds a coded message to the stack.
func (s *ErrorStack) Push(code int, msg string) {
	s.errs = append(s.errs, &Error{Code: code, Msg: msg})
}

// PushErr adds err to the stack, keeping its code when it is an *Error.
// Nil errors are ignored.
func (s *ErrorStack) PushErr(err error) {
	if err == nil {
		return
	}
	var e *Error
	if errors.As(err, &e) && e == err {
		s.errs = append(s.errs, e)
		return
	}
	s.errs = append(s.errs, &Error{Msg: err.Error(), Err: err})
}

// Clear empties the stack.  Call it before an operation to inspect only
// that operation's failures.
func (s *ErrorStack) Clear() { s.errs = s.errs[:0] }

// Len returns the number of errors on the stack.
func (s *ErrorStack) Len() int { return len(s.errs) }

// Errors returns the stack contents, top first.
func (s *ErrorStack) Errors() []*Error {
	r := make([]*Error, len(s.errs))
	for i, e := range s.errs {
		r[len(s.errs)-1-i] = e
	}
	return r
}

// Err returns nil for an empty stack, otherwise an error describing all
// entries top first.
func (s *ErrorStack) Err() error {
	if len(s.errs) == 0 {
		return nil
	}
	return stackError(s.Errors())
}

type stackError []*Error

func (se stackError) Error() string {
	msgs := make([]string, len(se))
	for i, e := range se {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (se stackError) Unwrap() []error {
	r := make([]error, len(se))
	for i, e := range se {
		r[i] = e
	}
	return r
}
