// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"bytes"

	"github.com/santhosh-tekuri/dom"
)

// The DOM adapter: the handful of read operations the evaluator needs,
// over nodes owned by their dom.Document. All of them are pure reads.

// children returns the element and text children of n in document order.
// Only elements and the document node have children.
func children(n dom.Node) []dom.Node {
	p, ok := n.(dom.Parent)
	if !ok {
		return nil
	}
	var cs []dom.Node
	for _, c := range p.Children() {
		switch c.(type) {
		case *dom.Element, *dom.Text:
			cs = append(cs, c)
		}
	}
	return cs
}

// parentOf returns the parent of n, or nil for a document node.
//
// Unlike the dom specification, the owning element is the parent of an
// attribute node, so @x/.. yields the element carrying x.
func parentOf(n dom.Node) dom.Node {
	switch n := n.(type) {
	case *dom.Attr:
		return n.Owner
	case *dom.Document:
		return nil
	default:
		if p := n.Parent(); p != nil {
			return p
		}
		return nil
	}
}

// tagOf returns the local element name, or "" for non-element nodes.
// "" is not a valid XML name, so it cannot collide with a real tag.
func tagOf(n dom.Node) string {
	if e, ok := n.(*dom.Element); ok {
		return e.Local
	}
	return ""
}

// textOf returns the direct text children of n in document order.
func textOf(n dom.Node) []dom.Node {
	p, ok := n.(dom.Parent)
	if !ok {
		return nil
	}
	var ts []dom.Node
	for _, c := range p.Children() {
		if t, ok := c.(*dom.Text); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// attributeOf returns the named attribute node of n as a zero-or-one slice.
func attributeOf(n dom.Node, name string) []dom.Node {
	e, ok := n.(*dom.Element)
	if !ok {
		return nil
	}
	if a := e.GetAttr("", name); a != nil {
		return []dom.Node{a}
	}
	return nil
}

// textContent returns the string contents of a node: an attribute's value,
// a text node's data, or the concatenated descendant text of an element.
func textContent(n dom.Node) string {
	switch n := n.(type) {
	case *dom.Text:
		return n.Data
	case *dom.Comment:
		return n.Data
	case *dom.ProcInst:
		return n.Data
	case *dom.Attr:
		return n.Value
	default:
		buf := new(bytes.Buffer)
		collectText(n, buf)
		return buf.String()
	}
}

func collectText(n dom.Node, buf *bytes.Buffer) {
	if t, ok := n.(*dom.Text); ok {
		buf.WriteString(t.Data)
	} else if p, ok := n.(dom.Parent); ok {
		for _, c := range p.Children() {
			collectText(c, buf)
		}
	}
}
