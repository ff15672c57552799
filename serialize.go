// Copyright 2024 The xqpath Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xqpath

import (
	"strings"

	"github.com/santhosh-tekuri/dom"
)

// Serialize renders each node of ns as an XML fragment, concatenated in
// order, one fragment per line, indented by two spaces per depth and
// without an XML declaration.
func Serialize(ns NodeSet) string {
	return SerializeIndent(ns, "  ")
}

// SerializeIndent is Serialize with a caller-chosen indent unit.
func SerializeIndent(ns NodeSet, indent string) string {
	var sb strings.Builder
	for _, n := range ns {
		writeNode(&sb, n, 0, indent)
		sb.WriteString("\n")
	}
	return sb.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func writeNode(sb *strings.Builder, n dom.Node, depth int, indent string) {
	prefix := strings.Repeat(indent, depth)
	switch n := n.(type) {
	case *dom.Element:
		sb.WriteString(prefix)
		sb.WriteString("<")
		sb.WriteString(n.Local)
		for _, attr := range n.Attrs {
			sb.WriteString(" ")
			sb.WriteString(attr.Name.Local)
			sb.WriteString(`="`)
			sb.WriteString(attrEscaper.Replace(attr.Value))
			sb.WriteString(`"`)
		}
		kids := renderable(n.Children())
		switch {
		case len(kids) == 0:
			sb.WriteString("/>")
		case textOnly(kids):
			sb.WriteString(">")
			for _, c := range kids {
				sb.WriteString(textEscaper.Replace(c.(*dom.Text).Data))
			}
			sb.WriteString("</")
			sb.WriteString(n.Local)
			sb.WriteString(">")
		default:
			sb.WriteString(">\n")
			for _, c := range kids {
				writeNode(sb, c, depth+1, indent)
				sb.WriteString("\n")
			}
			sb.WriteString(prefix)
			sb.WriteString("</")
			sb.WriteString(n.Local)
			sb.WriteString(">")
		}
	case *dom.Text:
		sb.WriteString(prefix)
		sb.WriteString(textEscaper.Replace(n.Data))
	case *dom.Comment:
		sb.WriteString(prefix)
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case *dom.ProcInst:
		sb.WriteString(prefix)
		sb.WriteString("<?")
		sb.WriteString(n.Target)
		sb.WriteString(" ")
		sb.WriteString(n.Data)
		sb.WriteString("?>")
	case *dom.Attr:
		// a bare attribute node renders as its value
		sb.WriteString(prefix)
		sb.WriteString(textEscaper.Replace(n.Value))
	case *dom.Document:
		for i, c := range renderable(n.Children()) {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeNode(sb, c, depth, indent)
		}
	}
}

// renderable drops whitespace-only text nodes; indentation re-creates the
// layout they carried in the source document.
func renderable(cs []dom.Node) []dom.Node {
	var out []dom.Node
	for _, c := range cs {
		if t, ok := c.(*dom.Text); ok && strings.TrimSpace(t.Data) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func textOnly(cs []dom.Node) bool {
	for _, c := range cs {
		if _, ok := c.(*dom.Text); !ok {
			return false
		}
	}
	return true
}
