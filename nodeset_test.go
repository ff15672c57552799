// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/santhosh-tekuri/dom"
)

func parseString(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.Unmarshal(xml.NewDecoder(strings.NewReader(s)))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func elementsByTag(doc *dom.Document, tag string) []dom.Node {
	var out []dom.Node
	iter := descendantOrSelfIter(doc)
	for n := iter.Next(); n != nil; n = iter.Next() {
		if tagOf(n) == tag {
			out = append(out, n)
		}
	}
	return out
}

func tags(ns NodeSet) []string {
	var out []string
	for _, n := range ns {
		switch n := n.(type) {
		case *dom.Element:
			out = append(out, n.Local)
		case *dom.Text:
			out = append(out, "#text")
		case *dom.Document:
			out = append(out, "#document")
		}
	}
	return out
}

func TestUnique(t *testing.T) {
	doc := parseString(t, `<r><a/><b/></r>`)
	a := elementsByTag(doc, "a")[0]
	b := elementsByTag(doc, "b")[0]

	got := unique(NodeSet{a, b, a, b, b})
	if diff := cmp.Diff([]string{"a", "b"}, tags(got)); diff != "" {
		t.Errorf("unique mismatch (-want +got):\n%s", diff)
	}
	if !sameNode(got[0], a) || !sameNode(got[1], b) {
		t.Error("unique must keep the first occurrence of each node")
	}
}

// unique collapses identity duplicates only; structurally equal but
// distinct nodes both survive.
func TestUniqueIsIdentityBased(t *testing.T) {
	doc := parseString(t, `<r><a>same</a><a>same</a></r>`)
	as := elementsByTag(doc, "a")
	if len(as) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(as))
	}
	if !deepEqual(as[0], as[1]) {
		t.Fatal("fixture elements must be structurally equal")
	}
	got := unique(NodeSet{as[0], as[1]})
	if len(got) != 2 {
		t.Errorf("unique folded distinct nodes: got %d", len(got))
	}
}

func TestDescendantsOrSelf(t *testing.T) {
	doc := parseString(t, `<r><a><b/></a><c/></r>`)
	root := elementsByTag(doc, "r")[0]

	got := descendantsOrSelf(NodeSet{root})
	if diff := cmp.Diff([]string{"r", "a", "b", "c"}, tags(got)); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}

	// duplicates in the input stay duplicated; callers dedup
	a := elementsByTag(doc, "a")[0]
	got = descendantsOrSelf(NodeSet{a, root})
	if diff := cmp.Diff([]string{"a", "b", "r", "a", "b", "c"}, tags(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepEqual(t *testing.T) {
	doc := parseString(t, `<r><a x="1"><b>t</b></a><a x="1"><b>t</b></a><a x="2"><b>t</b></a></r>`)
	as := elementsByTag(doc, "a")

	if !deepEqual(as[0], as[1]) {
		t.Error("equal subtrees must compare equal")
	}
	if deepEqual(as[0], as[2]) {
		t.Error("differing attribute values must compare unequal")
	}
	if sameNode(as[0], as[1]) {
		t.Error("distinct nodes must not be identical")
	}
	if !sameNode(as[0], as[0]) {
		t.Error("a node must be identical to itself")
	}
}
