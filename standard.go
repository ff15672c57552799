// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/xpathparser"
)

// CompileXPath translates a standard XPath 1.0 expression into a query
// against the named document. Only the dialect's subset translates: the
// child, parent, self, attribute and descendant-or-self axes, name and
// text() node tests, and predicates built from paths, equality against
// paths or string literals, and, or and not(). Anything else fails
// with *ParseError.
//
// This lets callers holding ordinary XPath strings, such as
// "/library/book[@id='1']/title", use the engine without writing the
// doc()-rooted dialect.
func CompileXPath(file, expr string) (q *Query, err error) {
	defer func() {
		panic2error(recover(), &err)
	}()
	parsed, perr := xpathparser.Parse(expr)
	if perr != nil {
		return nil, &ParseError{Src: expr, Err: perr}
	}
	lp, ok := parsed.(*xpathparser.LocationPath)
	if !ok {
		return nil, &ParseError{Src: expr, Err: errors.New("only location paths translate to the dialect")}
	}
	if !lp.Abs {
		return nil, &ParseError{Src: expr, Err: errors.New("only absolute location paths translate to the dialect")}
	}

	rp, leadingAll := translateSteps(lp)
	var ap AbsolutePath
	switch {
	case rp == nil:
		ap = &ApDoc{File: file}
	case leadingAll:
		ap = &ApAll{File: file, RP: rp}
	default:
		ap = &ApChildren{File: file, RP: rp}
	}
	return &Query{fmt.Sprintf("doc(%q)%s", file, expr), ap}, nil
}

// translateSteps folds a location path's steps into the dialect AST.
// A descendant-or-self::node() step becomes the "//" join of its two
// neighbours. leadingAll reports a path-initial "//".
func translateSteps(lp *xpathparser.LocationPath) (rp RelativePath, leadingAll bool) {
	all := false
	for _, step := range lp.Steps {
		if step.Axis == xpathparser.DescendantOrSelf && len(step.Predicates) == 0 {
			if t, ok := step.NodeTest.(xpathparser.NodeType); ok && t == xpathparser.Node {
				all = true
				continue
			}
		}

		piece := translateStep(step.Axis, step.NodeTest)
		for _, pred := range step.Predicates {
			piece = &RpFilter{RP: piece, Filter: translatePredicate(pred)}
		}

		switch {
		case rp == nil:
			rp = piece
			leadingAll = all
		case all:
			rp = &RpAll{LHS: rp, RHS: piece}
		default:
			rp = &RpChildren{LHS: rp, RHS: piece}
		}
		all = false
	}
	if all {
		// trailing "//" with no step to attach to
		unsupported("trailing descendant-or-self step")
	}
	return rp, leadingAll
}

func translateStep(axis xpathparser.Axis, test xpathparser.NodeTest) RelativePath {
	switch axis {
	case xpathparser.Child:
		switch t := test.(type) {
		case *xpathparser.NameTest:
			if t.Prefix != "" {
				unsupported("namespaced name test")
			}
			if t.Local == "*" {
				return &RpWildcard{}
			}
			return &RpTag{Tag: t.Local}
		case xpathparser.NodeType:
			switch t {
			case xpathparser.Text:
				return &RpText{}
			case xpathparser.Node:
				return &RpWildcard{}
			}
		}
	case xpathparser.Attribute:
		if t, ok := test.(*xpathparser.NameTest); ok && t.Prefix == "" && t.Local != "*" {
			return &RpAttribute{Name: t.Local}
		}
	case xpathparser.Parent:
		if t, ok := test.(xpathparser.NodeType); ok && t == xpathparser.Node {
			return &RpParent{}
		}
	case xpathparser.Self:
		if t, ok := test.(xpathparser.NodeType); ok && t == xpathparser.Node {
			return &RpCurrent{}
		}
	}
	unsupported(fmt.Sprintf("axis %v with node test %v", axis, test))
	return nil
}

func translatePredicate(expr xpathparser.Expr) Filter {
	switch e := expr.(type) {
	case *xpathparser.LocationPath:
		return &FExists{RP: translateRelative(e)}
	case *xpathparser.BinaryExpr:
		switch e.Op {
		case xpathparser.EQ:
			return &FValueEq{LHS: translateComparand(e.LHS), RHS: translateComparand(e.RHS)}
		case xpathparser.And:
			return &FAnd{LHS: translatePredicate(e.LHS), RHS: translatePredicate(e.RHS)}
		case xpathparser.Or:
			return &FOr{LHS: translatePredicate(e.LHS), RHS: translatePredicate(e.RHS)}
		}
	case *xpathparser.FuncCall:
		if e.Prefix == "" && e.Local == "not" && len(e.Args) == 1 {
			return &FNot{Filter: translatePredicate(e.Args[0])}
		}
	}
	unsupported(fmt.Sprintf("predicate %T", expr))
	return nil
}

func translateComparand(expr xpathparser.Expr) Comparand {
	switch e := expr.(type) {
	case xpathparser.String:
		return &Literal{Value: string(e)}
	case *xpathparser.LocationPath:
		return translateRelative(e)
	}
	unsupported(fmt.Sprintf("comparand %T", expr))
	return nil
}

func translateRelative(lp *xpathparser.LocationPath) RelativePath {
	if lp.Abs {
		unsupported("absolute path inside a predicate")
	}
	rp, leadingAll := translateSteps(lp)
	if rp == nil {
		return &RpCurrent{}
	}
	if leadingAll {
		rp = &RpAll{LHS: &RpCurrent{}, RHS: rp}
	}
	return rp
}

func unsupported(what string) {
	panic(&ParseError{Src: "xpath", Err: errors.New(what + " is not supported by the dialect")})
}
