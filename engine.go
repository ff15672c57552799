// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

// Query is the representation of a compiled query.
// A Query is safe for concurrent use by multiple goroutines.
type Query struct {
	str string
	ast AbsolutePath
}

// String returns the source query text.
func (q *Query) String() string {
	return q.str
}

// AST returns the parsed absolute path.
func (q *Query) AST() AbsolutePath {
	return q.ast
}

// Compile parses the given query text into a Query.
func Compile(str string) (q *Query, err error) {
	defer func() {
		panic2error(recover(), &err)
	}()
	return &Query{str, parse(str)}, nil
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of global variables holding queries.
func MustCompile(str string) *Query {
	q, err := Compile(str)
	if err != nil {
		panic(err)
	}
	return q
}

// CompileRelative parses a relative path on its own, for callers that
// establish their own context sets and evaluate with Evaluator.Relative.
func CompileRelative(str string) (rp RelativePath, err error) {
	defer func() {
		panic2error(recover(), &err)
	}()
	return parseRelative(str), nil
}

// Eval compiles and evaluates a query in one step against a fresh
// evaluator resolving files against the working directory.
func Eval(str string) (NodeSet, error) {
	q, err := Compile(str)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(nil).Eval(q)
}
