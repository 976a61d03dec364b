package dom

import (
	"sort"
	"strings"
)

// Dump renders the children of id in the html5lib tree-construction test
// format:
//
//	| <html>
//	|   <head>
//	|   <body>
//	|     "text"
//
// Each line ends with a newline.
func Dump(d *Document, id NodeID) string {
	var b strings.Builder
	for _, c := range d.Children(id) {
		dumpNode(&b, d, c, 0)
	}
	return b.String()
}

func dumpLine(b *strings.Builder, depth int, s string) {
	b.WriteString("| ")
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

func dumpNode(b *strings.Builder, d *Document, id NodeID, depth int) {
	n := d.Node(id)
	switch n.Type {
	case ElementNode:
		name := n.Name
		if n.Namespace == Svgns || n.Namespace == Mathmlns {
			name = n.Namespace.Prefix() + " " + name
		}
		dumpLine(b, depth, "<"+name+">")

		attrs := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Name
			if p := a.Namespace.Prefix(); p != "" {
				key = p + " " + a.Name
			}
			attrs = append(attrs, key+`="`+a.Value+`"`)
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			dumpLine(b, depth+1, a)
		}
		if n.Template != Nil {
			dumpLine(b, depth+1, "content")
			for _, c := range d.Children(n.Template) {
				dumpNode(b, d, c, depth+2)
			}
		}
	case TextNode:
		dumpLine(b, depth, `"`+n.Data+`"`)
	case CommentNode:
		dumpLine(b, depth, "<!-- "+n.Data+" -->")
	case DocumentTypeNode:
		s := "<!DOCTYPE " + n.Name
		if n.PublicID != "" || n.SystemID != "" {
			s += ` "` + n.PublicID + `" "` + n.SystemID + `"`
		}
		dumpLine(b, depth, s+">")
	}
	for _, c := range n.Children {
		dumpNode(b, d, c, depth+1)
	}
}
