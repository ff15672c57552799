// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"errors"
	"fmt"
	"runtime"
)

// LoadError reports a document file that could not be read.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports ill-formed XML or an ill-formed query.
type ParseError struct {
	Src string // query text or file name
	Pos int    // byte offset into a query, 0 for documents
	Err error
}

func (e *ParseError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("parse %s: %v at offset %d", e.Src, e.Err, e.Pos)
	}
	return fmt.Sprintf("parse %s: %v", e.Src, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError reports an internal invariant violation, such as a malformed AST
// handed to the evaluator.
type EvalError string

func (e EvalError) Error() string {
	return "eval: " + string(e)
}

func panic2error(r interface{}, errRef *error) {
	if r != nil {
		if _, ok := r.(runtime.Error); ok {
			panic(r)
		}
		if err, ok := r.(error); ok {
			*errRef = err
		} else {
			*errRef = errors.New(fmt.Sprint(r))
		}
	}
}
