// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"fmt"
	"strings"
)

// AbsolutePath is a query rooted at a named document.
type AbsolutePath interface {
	absolutePath()
}

// ApDoc is doc(File): the root element of the named document.
type ApDoc struct {
	File string
}

// ApChildren is doc(File)/RP.
type ApChildren struct {
	File string
	RP   RelativePath
}

// ApAll is doc(File)//RP.
type ApAll struct {
	File string
	RP   RelativePath
}

func (*ApDoc) absolutePath()      {}
func (*ApChildren) absolutePath() {}
func (*ApAll) absolutePath()      {}

// Comparand is an operand of a filter comparison: a relative path or a
// string literal.
type Comparand interface {
	comparand()
}

// RelativePath is a path evaluated against an established context set.
// Every relative path is also a valid comparand.
type RelativePath interface {
	Comparand
	relativePath()
}

// RpTag selects child elements with the given name.
type RpTag struct {
	Tag string
}

// RpWildcard selects all children.
type RpWildcard struct{}

// RpCurrent is '.': the context itself.
type RpCurrent struct{}

// RpParent is '..'.
type RpParent struct{}

// RpText is text(): the direct text children.
type RpText struct{}

// RpAttribute is @Name.
type RpAttribute struct {
	Name string
}

// RpParen is (RP).
type RpParen struct {
	RP RelativePath
}

// RpChildren is LHS/RHS.
type RpChildren struct {
	LHS RelativePath
	RHS RelativePath
}

// RpAll is LHS//RHS.
type RpAll struct {
	LHS RelativePath
	RHS RelativePath
}

// RpFilter is RP[Filter].
type RpFilter struct {
	RP     RelativePath
	Filter Filter
}

// RpPair is LHS, RHS: concatenation without deduplication.
type RpPair struct {
	LHS RelativePath
	RHS RelativePath
}

func (*RpTag) relativePath()       {}
func (*RpWildcard) relativePath()  {}
func (*RpCurrent) relativePath()   {}
func (*RpParent) relativePath()    {}
func (*RpText) relativePath()      {}
func (*RpAttribute) relativePath() {}
func (*RpParen) relativePath()     {}
func (*RpChildren) relativePath()  {}
func (*RpAll) relativePath()       {}
func (*RpFilter) relativePath()    {}
func (*RpPair) relativePath()      {}

func (*RpTag) comparand()       {}
func (*RpWildcard) comparand()  {}
func (*RpCurrent) comparand()   {}
func (*RpParent) comparand()    {}
func (*RpText) comparand()      {}
func (*RpAttribute) comparand() {}
func (*RpParen) comparand()     {}
func (*RpChildren) comparand()  {}
func (*RpAll) comparand()       {}
func (*RpFilter) comparand()    {}
func (*RpPair) comparand()      {}

// Literal is a quoted string comparand.
type Literal struct {
	Value string
}

func (*Literal) comparand() {}

// Filter is a predicate over a single-element context.
type Filter interface {
	filter()
}

// FExists is truthy iff RP yields a non-empty set.
type FExists struct {
	RP RelativePath
}

// FValueEq is LHS = RHS (deep structural equality between nodes; a node
// against a string literal compares its text content).
type FValueEq struct {
	LHS Comparand
	RHS Comparand
}

// FIdentityEq is LHS == RHS (same node).
type FIdentityEq struct {
	LHS Comparand
	RHS Comparand
}

// FParen is (Filter).
type FParen struct {
	Filter Filter
}

// FAnd is LHS and RHS.
type FAnd struct {
	LHS Filter
	RHS Filter
}

// FOr is LHS or RHS.
type FOr struct {
	LHS Filter
	RHS Filter
}

// FNot is not Filter.
type FNot struct {
	Filter Filter
}

func (*FExists) filter()     {}
func (*FValueEq) filter()    {}
func (*FIdentityEq) filter() {}
func (*FParen) filter()      {}
func (*FAnd) filter()        {}
func (*FOr) filter()         {}
func (*FNot) filter()        {}

// Dump renders an AST as an indented tree, one node per line.
func Dump(ap AbsolutePath) string {
	var sb strings.Builder
	dumpNode(&sb, ap, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node interface{}, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *ApDoc:
		fmt.Fprintf(sb, "%sdoc(%q)\n", indent, n.File)
	case *ApChildren:
		fmt.Fprintf(sb, "%sdoc(%q)/\n", indent, n.File)
		dumpNode(sb, n.RP, depth+1)
	case *ApAll:
		fmt.Fprintf(sb, "%sdoc(%q)//\n", indent, n.File)
		dumpNode(sb, n.RP, depth+1)
	case *RpTag:
		fmt.Fprintf(sb, "%stag %s\n", indent, n.Tag)
	case *RpWildcard:
		fmt.Fprintf(sb, "%s*\n", indent)
	case *RpCurrent:
		fmt.Fprintf(sb, "%s.\n", indent)
	case *RpParent:
		fmt.Fprintf(sb, "%s..\n", indent)
	case *RpText:
		fmt.Fprintf(sb, "%stext()\n", indent)
	case *RpAttribute:
		fmt.Fprintf(sb, "%s@%s\n", indent, n.Name)
	case *RpParen:
		fmt.Fprintf(sb, "%s(rp)\n", indent)
		dumpNode(sb, n.RP, depth+1)
	case *RpChildren:
		fmt.Fprintf(sb, "%sstep /\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *RpAll:
		fmt.Fprintf(sb, "%sstep //\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *RpFilter:
		fmt.Fprintf(sb, "%sfilter\n", indent)
		dumpNode(sb, n.RP, depth+1)
		dumpNode(sb, n.Filter, depth+1)
	case *RpPair:
		fmt.Fprintf(sb, "%spair ,\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *Literal:
		fmt.Fprintf(sb, "%s%q\n", indent, n.Value)
	case *FExists:
		fmt.Fprintf(sb, "%sexists\n", indent)
		dumpNode(sb, n.RP, depth+1)
	case *FValueEq:
		fmt.Fprintf(sb, "%seq =\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *FIdentityEq:
		fmt.Fprintf(sb, "%sis ==\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *FParen:
		fmt.Fprintf(sb, "%s(f)\n", indent)
		dumpNode(sb, n.Filter, depth+1)
	case *FAnd:
		fmt.Fprintf(sb, "%sand\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *FOr:
		fmt.Fprintf(sb, "%sor\n", indent)
		dumpNode(sb, n.LHS, depth+1)
		dumpNode(sb, n.RHS, depth+1)
	case *FNot:
		fmt.Fprintf(sb, "%snot\n", indent)
		dumpNode(sb, n.Filter, depth+1)
	default:
		fmt.Fprintf(sb, "%s<%T>\n", indent, n)
	}
}
