package dom

import (
	"go4.org/bytereplacer"
	"golang.org/x/net/html/atom"
)

// https://html.spec.whatwg.org/#escapingString
var (
	textEscaper = bytereplacer.New(
		"&", "&amp;",
		"\u00a0", "&nbsp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = bytereplacer.New(
		"&", "&amp;",
		"\u00a0", "&nbsp;",
		`"`, "&quot;",
	)
)

// Render serializes the children of id using the HTML fragment serialization
// algorithm. The scripting flag decides whether noscript contents are raw text.
// https://html.spec.whatwg.org/#serialising-html-fragments
func Render(d *Document, id NodeID, scripting bool) string {
	r := renderer{d: d, scripting: scripting}
	r.children(id)
	return string(r.dst)
}

type renderer struct {
	d         *Document
	scripting bool
	dst       []byte
}

func isVoidElement(n *Node) bool {
	return n.IsHTML(atom.Area, atom.Base, atom.Basefont, atom.Bgsound, atom.Br, atom.Col,
		atom.Embed, atom.Frame, atom.Hr, atom.Img, atom.Input, atom.Keygen, atom.Link,
		atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr)
}

func (r *renderer) rawTextParent(id NodeID) bool {
	if id == Nil {
		return false
	}
	n := r.d.Node(id)
	if n.IsHTML(atom.Style, atom.Script, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Plaintext) {
		return true
	}
	return r.scripting && n.IsHTML(atom.Noscript)
}

func attrName(a Attribute) string {
	switch a.Namespace {
	case Xmlns:
		return "xml:" + a.Name
	case Xmlnsns:
		if a.Name == "xmlns" {
			return "xmlns"
		}
		return "xmlns:" + a.Name
	case Xlinkns:
		return "xlink:" + a.Name
	}
	return a.Name
}

func (r *renderer) children(id NodeID) {
	n := r.d.Node(id)
	if n.Template != Nil {
		id = n.Template
	}
	for _, c := range r.d.Children(id) {
		r.node(c)
	}
}

func (r *renderer) node(id NodeID) {
	n := r.d.Node(id)
	switch n.Type {
	case ElementNode:
		r.dst = append(r.dst, '<')
		r.dst = append(r.dst, n.Name...)
		for _, a := range n.Attr {
			r.dst = append(r.dst, ' ')
			r.dst = append(r.dst, attrName(a)...)
			r.dst = append(r.dst, `="`...)
			r.dst = append(r.dst, attrEscaper.Replace([]byte(a.Value))...)
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		if isVoidElement(n) {
			return
		}
		if n.IsHTML(atom.Pre, atom.Textarea, atom.Listing) && len(n.Children) > 0 {
			if first := r.d.Node(n.Children[0]); first.Type == TextNode && len(first.Data) > 0 && first.Data[0] == '\n' {
				r.dst = append(r.dst, '\n')
			}
		}
		r.children(id)
		r.dst = append(r.dst, "</"...)
		r.dst = append(r.dst, n.Name...)
		r.dst = append(r.dst, '>')
	case TextNode:
		if r.rawTextParent(n.Parent) {
			r.dst = append(r.dst, n.Data...)
			return
		}
		r.dst = append(r.dst, textEscaper.Replace([]byte(n.Data))...)
	case CommentNode:
		r.dst = append(r.dst, "<!--"...)
		r.dst = append(r.dst, n.Data...)
		r.dst = append(r.dst, "-->"...)
	case DocumentTypeNode:
		r.dst = append(r.dst, "<!DOCTYPE "...)
		r.dst = append(r.dst, n.Name...)
		r.dst = append(r.dst, '>')
	}
}
