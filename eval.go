// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"fmt"
)

// Evaluator interprets query ASTs against loaded documents. Evaluation is
// synchronous and, apart from the file reads done by doc(), pure: every
// function here maps a context node-set to a result node-set without
// touching shared state. The zero value is not usable; construct with
// NewEvaluator.
type Evaluator struct {
	loader *Loader
}

// NewEvaluator returns an Evaluator loading documents through the given
// loader. A nil loader gets a fresh one resolving against the working
// directory.
func NewEvaluator(loader *Loader) *Evaluator {
	if loader == nil {
		loader = NewLoader(nil)
	}
	return &Evaluator{loader: loader}
}

// Eval evaluates a compiled query and returns the deduplicated result.
func (e *Evaluator) Eval(q *Query) (NodeSet, error) {
	return e.Absolute(q.ast)
}

// Absolute evaluates an absolute path and returns the deduplicated result
// in production order.
func (e *Evaluator) Absolute(ap AbsolutePath) (ns NodeSet, err error) {
	defer func() {
		panic2error(recover(), &err)
	}()
	return e.absolute(ap), nil
}

// Relative evaluates a relative path against the given context set. This is
// the composition point for layers that maintain their own contexts, such
// as a FLWR engine binding variables to node-sets.
func (e *Evaluator) Relative(rp RelativePath, ctx NodeSet) (ns NodeSet, err error) {
	defer func() {
		panic2error(recover(), &err)
	}()
	return e.relative(rp, ctx), nil
}

func (e *Evaluator) absolute(ap AbsolutePath) NodeSet {
	switch ap := ap.(type) {
	case *ApDoc:
		return NodeSet{e.loader.root(ap.File)}
	case *ApChildren:
		// The first step looks among the document node's children, so
		// doc("f")/library selects the root element <library>.
		ctx := NodeSet{parentOf(e.loader.root(ap.File))}
		return unique(e.relative(ap.RP, ctx))
	case *ApAll:
		ctx := descendantsOrSelf(NodeSet{e.loader.root(ap.File)})
		return unique(e.relative(ap.RP, ctx))
	case nil:
		panic(EvalError("nil absolute path"))
	}
	panic(EvalError(fmt.Sprintf("unexpected absolute path %T", ap)))
}

func (e *Evaluator) relative(rp RelativePath, ctx NodeSet) NodeSet {
	switch rp := rp.(type) {
	case *RpTag:
		if rp.Tag == "" {
			panic(EvalError("empty tag name"))
		}
		var out NodeSet
		for _, n := range ctx {
			for _, c := range children(n) {
				if tagOf(c) == rp.Tag {
					out = append(out, c)
				}
			}
		}
		return out

	case *RpWildcard:
		var out NodeSet
		for _, n := range ctx {
			out = append(out, children(n)...)
		}
		return out

	case *RpCurrent:
		return ctx

	case *RpParent:
		var out NodeSet
		for _, n := range ctx {
			if p := parentOf(n); p != nil {
				out = append(out, p)
			}
		}
		return out

	case *RpText:
		var out NodeSet
		for _, n := range ctx {
			out = append(out, textOf(n)...)
		}
		return out

	case *RpAttribute:
		if rp.Name == "" {
			panic(EvalError("empty attribute name"))
		}
		var out NodeSet
		for _, n := range ctx {
			out = append(out, attributeOf(n, rp.Name)...)
		}
		return out

	case *RpParen:
		return e.relative(rp.RP, ctx)

	case *RpChildren:
		// Each node produced by the left path seeds a singleton context
		// for the right path; production order is the visit order.
		var out NodeSet
		for _, x := range e.relative(rp.LHS, ctx) {
			out = append(out, e.relative(rp.RHS, NodeSet{x})...)
		}
		return unique(out)

	case *RpAll:
		lhs := e.relative(rp.LHS, ctx)
		return unique(e.relative(rp.RHS, descendantsOrSelf(lhs)))

	case *RpFilter:
		var out NodeSet
		for _, x := range e.relative(rp.RP, ctx) {
			if e.truthy(rp.Filter, NodeSet{x}) {
				out = append(out, x)
			}
		}
		return out

	case *RpPair:
		// Both branches see the original context.
		out := append(NodeSet(nil), e.relative(rp.LHS, ctx)...)
		return append(out, e.relative(rp.RHS, ctx)...)

	case nil:
		panic(EvalError("nil relative path"))
	}
	panic(EvalError(fmt.Sprintf("unexpected relative path %T", rp)))
}

func (e *Evaluator) truthy(f Filter, ctx NodeSet) bool {
	switch f := f.(type) {
	case *FExists:
		return len(e.relative(f.RP, ctx)) > 0
	case *FValueEq:
		return e.valueEq(f.LHS, f.RHS, ctx)
	case *FIdentityEq:
		return e.identityEq(f.LHS, f.RHS, ctx)
	case *FParen:
		return e.truthy(f.Filter, ctx)
	case *FAnd:
		return e.truthy(f.LHS, ctx) && e.truthy(f.RHS, ctx)
	case *FOr:
		return e.truthy(f.LHS, ctx) || e.truthy(f.RHS, ctx)
	case *FNot:
		return !e.truthy(f.Filter, ctx)
	case nil:
		panic(EvalError("nil filter"))
	}
	panic(EvalError(fmt.Sprintf("unexpected filter %T", f)))
}

// operand is an evaluated comparand: a node-set, or a literal string.
type operand struct {
	ns    NodeSet
	lit   string
	isLit bool
}

func (e *Evaluator) operand(c Comparand, ctx NodeSet) operand {
	switch c := c.(type) {
	case *Literal:
		return operand{lit: c.Value, isLit: true}
	case RelativePath:
		return operand{ns: e.relative(c, ctx)}
	case nil:
		panic(EvalError("nil comparand"))
	}
	panic(EvalError(fmt.Sprintf("unexpected comparand %T", c)))
}

// valueEq: some pair of operand values is equal. Node against node compares
// whole subtrees structurally; node against literal compares the node's
// text content.
func (e *Evaluator) valueEq(lhs, rhs Comparand, ctx NodeSet) bool {
	l, r := e.operand(lhs, ctx), e.operand(rhs, ctx)
	switch {
	case l.isLit && r.isLit:
		return l.lit == r.lit
	case l.isLit:
		return anyTextEquals(r.ns, l.lit)
	case r.isLit:
		return anyTextEquals(l.ns, r.lit)
	default:
		for _, x := range l.ns {
			for _, y := range r.ns {
				if deepEqual(x, y) {
					return true
				}
			}
		}
		return false
	}
}

func anyTextEquals(ns NodeSet, s string) bool {
	for _, n := range ns {
		if textContent(n) == s {
			return true
		}
	}
	return false
}

// identityEq: some node of the left set is the same node as some node of
// the right set.
func (e *Evaluator) identityEq(lhs, rhs Comparand, ctx NodeSet) bool {
	l, r := e.operand(lhs, ctx), e.operand(rhs, ctx)
	if l.isLit || r.isLit {
		panic(EvalError("identity comparison with a string literal"))
	}
	for _, x := range l.ns {
		for _, y := range r.ns {
			if sameNode(x, y) {
				return true
			}
		}
	}
	return false
}
