// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"github.com/santhosh-tekuri/dom"
)

// NodeSet is an ordered sequence of node handles. Duplicates may be present
// until unique is applied at a deduplication point.
type NodeSet []dom.Node

// unique collapses duplicate handles, keeping first occurrences in order.
// Duplicate means same identity, never structural equality: two distinct
// nodes with equal subtrees both stay.
func unique(ns NodeSet) NodeSet {
	if len(ns) < 2 {
		return ns
	}
	seen := make(map[dom.Node]struct{}, len(ns))
	var out NodeSet
	for _, n := range ns {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// descendantsOrSelf emits each node of ns followed by all its transitive
// descendants, depth-first in document order. The result is not guaranteed
// unique; callers deduplicate where required.
func descendantsOrSelf(ns NodeSet) NodeSet {
	var out NodeSet
	for _, n := range ns {
		iter := descendantOrSelfIter(n)
		for c := iter.Next(); c != nil; c = iter.Next() {
			out = append(out, c)
		}
	}
	return out
}
