package dom

import (
	"github.com/beevik/etree"
)

// ToXML converts the tree under id into an XML document, declaring the
// namespace of each element whose namespace differs from its parent's.
// Template contents are emitted as children of the template element.
func ToXML(d *Document, id NodeID) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	x := xmlWriter{d: d}
	for _, c := range d.Children(id) {
		x.node(&doc.Element, c, Nons)
	}
	return doc
}

type xmlWriter struct {
	d *Document
}

func (x *xmlWriter) node(parent *etree.Element, id NodeID, parentNS Namespace) {
	n := x.d.Node(id)
	switch n.Type {
	case ElementNode:
		el := parent.CreateElement(n.Name)
		if n.Namespace != parentNS {
			el.CreateAttr("xmlns", n.Namespace.URI())
		}
		declared := map[Namespace]bool{}
		for _, a := range n.Attr {
			switch a.Namespace {
			case Nons:
				el.CreateAttr(a.Name, a.Value)
			case Xmlnsns:
				// namespace declarations are derived from element namespaces
			default:
				if !declared[a.Namespace] && a.Namespace != Xmlns {
					el.CreateAttr("xmlns:"+a.Namespace.Prefix(), a.Namespace.URI())
					declared[a.Namespace] = true
				}
				el.CreateAttr(a.Namespace.Prefix()+":"+a.Name, a.Value)
			}
		}
		children := n.Children
		if n.Template != Nil {
			children = x.d.Children(n.Template)
		}
		for _, c := range children {
			x.node(el, c, n.Namespace)
		}
	case TextNode:
		parent.CreateText(n.Data)
	case CommentNode:
		parent.CreateComment(n.Data)
	case DocumentTypeNode:
		parent.CreateDirective("DOCTYPE " + n.Name)
	}
}
