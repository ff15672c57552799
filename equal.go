// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"github.com/santhosh-tekuri/dom"
)

// sameNode reports whether two handles refer to the same node in the same
// document. All dom nodes are pointers, so interface identity is node
// identity.
func sameNode(a, b dom.Node) bool {
	return a == b
}

// deepEqual reports structural equality: same kind and name, same attribute
// set, and pairwise structurally equal children. This is the "=" semantics
// of the query language; it compares whole subtrees, not string values.
func deepEqual(a, b dom.Node) bool {
	switch a := a.(type) {
	case *dom.Element:
		b, ok := b.(*dom.Element)
		if !ok {
			return false
		}
		if a.URI != b.URI || a.Local != b.Local {
			return false
		}
		if len(a.Attrs) != len(b.Attrs) {
			return false
		}
		for _, attr := range a.Attrs {
			other := b.GetAttr(attr.Name.URI, attr.Name.Local)
			if other == nil || other.Value != attr.Value {
				return false
			}
		}
		return equalChildren(a, b)
	case *dom.Text:
		b, ok := b.(*dom.Text)
		return ok && a.Data == b.Data
	case *dom.Comment:
		b, ok := b.(*dom.Comment)
		return ok && a.Data == b.Data
	case *dom.ProcInst:
		b, ok := b.(*dom.ProcInst)
		return ok && a.Target == b.Target && a.Data == b.Data
	case *dom.Attr:
		b, ok := b.(*dom.Attr)
		return ok && a.Name.URI == b.Name.URI && a.Name.Local == b.Name.Local && a.Value == b.Value
	case *dom.Document:
		b, ok := b.(*dom.Document)
		return ok && equalChildren(a, b)
	}
	return false
}

func equalChildren(a, b dom.Parent) bool {
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !deepEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
