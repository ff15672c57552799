// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"github.com/santhosh-tekuri/dom"
)

// Iterator over a collection of dom nodes.
type Iterator interface {
	// Next returns the next node in the iteration.
	// Returns nil if the iteration has no more nodes.
	Next() dom.Node
}

type emptyIter struct{}

func (emptyIter) Next() dom.Node {
	return nil
}

func selfIter(n dom.Node) Iterator {
	return &onceIter{n}
}

type onceIter struct {
	n dom.Node
}

func (iter *onceIter) Next() dom.Node {
	if iter.n != nil {
		n := iter.n
		iter.n = nil
		return n
	}
	return nil
}

func childIter(n dom.Node) Iterator {
	if p, ok := n.(dom.Parent); ok {
		return &sliceIter{p.Children(), 0}
	}
	return emptyIter{}
}

type sliceIter struct {
	arr []dom.Node
	i   int
}

func (iter *sliceIter) Next() dom.Node {
	if iter.i < len(iter.arr) {
		n := iter.arr[iter.i]
		iter.i++
		return n
	}
	return nil
}

// descendantOrSelfIter yields n and then its descendants, depth-first in
// document order.
func descendantOrSelfIter(n dom.Node) Iterator {
	return &descendantIter{nil, selfIter(n)}
}

type descendantIter struct {
	stack    []Iterator
	children Iterator
}

func (iter *descendantIter) Next() dom.Node {
	var n dom.Node
	for {
		n = iter.children.Next()
		if n != nil {
			break
		}
		if len(iter.stack) == 0 {
			return nil
		}
		iter.children = iter.stack[len(iter.stack)-1]
		iter.stack = iter.stack[:len(iter.stack)-1]
	}
	iter.stack = append(iter.stack, iter.children)
	iter.children = childIter(n)
	return n
}
