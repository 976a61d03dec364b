package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

// build creates <html><body><p>a</p></body></html> and returns the handles.
func build(t *testing.T) (d *Document, html, body, p NodeID) {
	t.Helper()
	d = NewDocument()
	html = d.CreateElement("html", Htmlns, nil)
	body = d.CreateElement("body", Htmlns, nil)
	p = d.CreateElement("p", Htmlns, []Attribute{{Name: "id", Value: "x"}})
	d.AppendChild(d.Root(), html)
	d.AppendChild(html, body)
	d.AppendChild(body, p)
	d.InsertText(p, Nil, "a")
	return d, html, body, p
}

func TestDocumentTree(t *testing.T) {
	d, html, body, p := build(t)

	assert.Equal(t, DocumentNode, d.Node(d.Root()).Type)
	assert.Equal(t, d.Root(), d.Parent(html))
	assert.Equal(t, body, d.Parent(p))
	assert.Equal(t, 0, d.IndexOf(body, p))
	assert.Equal(t, -1, d.IndexOf(html, p))
	assert.Equal(t, p, d.LastChild(body))
	assert.Equal(t, Nil, d.LastChild(d.LastChild(p)))

	v, ok := d.Node(p).AttrValue("id")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.True(t, d.Node(p).IsHTML(atom.Div, atom.P))
	assert.True(t, d.Node(p).Is(Htmlns, atom.P))
	assert.False(t, d.Node(p).Is(Svgns, atom.P))
	assert.False(t, d.Node(d.LastChild(p)).IsHTML(atom.P))
}

func TestDocumentInsertBefore(t *testing.T) {
	d, _, body, p := build(t)
	div := d.CreateElement("div", Htmlns, nil)
	d.InsertBefore(body, div, p)

	assert.Equal(t, []NodeID{div, p}, d.Children(body))
	assert.Equal(t, div, d.PrevSibling(p))
	assert.Equal(t, Nil, d.PrevSibling(div))

	assert.Panics(t, func() { d.InsertBefore(body, div, p) }, "attached child")
	assert.Panics(t, func() { d.InsertBefore(body, d.CreateComment("c"), d.Root()) }, "foreign reference")
}

func TestDocumentDetachAndReparent(t *testing.T) {
	d, html, body, p := build(t)
	d.Detach(p)
	assert.Empty(t, d.Children(body))
	assert.Equal(t, Nil, d.Parent(p))
	d.Detach(p)

	d.AppendChild(body, p)
	d.InsertText(body, Nil, "b")
	d.ReparentChildren(html, body)
	assert.Empty(t, d.Children(body))
	require.Len(t, d.Children(html), 3)
	assert.Equal(t, html, d.Parent(p))
}

func TestDocumentInsertTextMerges(t *testing.T) {
	d, _, body, p := build(t)
	d.InsertText(p, Nil, "b")
	require.Len(t, d.Children(p), 1)
	assert.Equal(t, "ab", d.Node(d.Children(p)[0]).Data)

	// text before p merges only with a preceding text sibling
	d.InsertText(body, p, "x")
	d.InsertText(body, p, "y")
	require.Len(t, d.Children(body), 2)
	assert.Equal(t, "xy", d.Node(d.Children(body)[0]).Data)

	before := d.Len()
	d.InsertText(d.Root(), Nil, "ignored")
	d.InsertText(body, Nil, "")
	assert.Equal(t, before, d.Len())
}

func TestDocumentCloneElement(t *testing.T) {
	d, _, _, p := build(t)
	c := d.CloneElement(p)
	assert.Equal(t, Nil, d.Parent(c))
	assert.Empty(t, d.Children(c))
	assert.Equal(t, d.Node(p).Attr, d.Node(c).Attr)

	d.Node(c).Attr[0].Value = "changed"
	assert.Equal(t, "x", d.Node(p).Attr[0].Value)
}

func TestDocumentTemplateContents(t *testing.T) {
	d := NewDocument()
	tmpl := d.CreateElement("template", Htmlns, nil)
	require.NotEqual(t, Nil, d.Node(tmpl).Template)
	assert.Equal(t, DocumentFragmentNode, d.Node(d.Node(tmpl).Template).Type)

	svgTemplate := d.CreateElement("template", Svgns, nil)
	assert.Equal(t, Nil, d.Node(svgTemplate).Template)

	d.AppendChild(d.Root(), tmpl)
	d.AppendChild(d.Node(tmpl).Template, d.CreateText("t"))
	var types []NodeType
	d.Walk(d.Root(), func(id NodeID, _ int) bool {
		types = append(types, d.Node(id).Type)
		return true
	})
	assert.Equal(t, []NodeType{DocumentNode, ElementNode, DocumentFragmentNode, TextNode}, types)
}

func TestDocumentInvalidHandle(t *testing.T) {
	d := NewDocument()
	assert.Panics(t, func() { d.Node(Nil) })
	assert.Panics(t, func() { d.Node(NodeID(d.Len() + 1)) })
}

func TestDump(t *testing.T) {
	d, html, _, p := build(t)
	d.InsertBefore(d.Root(), d.CreateDoctype("html", "", ""), html)
	svg := d.CreateElement("svg", Svgns, []Attribute{
		{Namespace: Xlinkns, Prefix: "xlink", Name: "href", Value: "#a"},
		{Name: "viewBox", Value: "0 0 1 1"},
	})
	d.AppendChild(p, svg)
	d.AppendChild(p, d.CreateComment(" c "))

	want := `| <!DOCTYPE html>
| <html>
|   <body>
|     <p>
|       id="x"
|       "a"
|       <svg svg>
|         viewBox="0 0 1 1"
|         xlink href="#a"
|       <!--  c  -->
`
	if diff := cmp.Diff(want, Dump(d, d.Root())); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		make func(d *Document, parent NodeID)
		want string
	}{
		{"escaped text", func(d *Document, parent NodeID) {
			d.InsertText(parent, Nil, "a<b>&\u00a0\"")
		}, "a&lt;b&gt;&amp;&nbsp;\""},
		{"escaped attribute", func(d *Document, parent NodeID) {
			d.AppendChild(parent, d.CreateElement("a", Htmlns, []Attribute{{Name: "title", Value: `<"&'>`}}))
		}, `<a title="<&quot;&amp;'>"></a>`},
		{"void element", func(d *Document, parent NodeID) {
			d.AppendChild(parent, d.CreateElement("br", Htmlns, nil))
		}, "<br>"},
		{"raw text", func(d *Document, parent NodeID) {
			s := d.CreateElement("script", Htmlns, nil)
			d.AppendChild(parent, s)
			d.InsertText(s, Nil, "a < b && c")
		}, "<script>a < b && c</script>"},
		{"leading newline in pre", func(d *Document, parent NodeID) {
			pre := d.CreateElement("pre", Htmlns, nil)
			d.AppendChild(parent, pre)
			d.InsertText(pre, Nil, "\nx")
		}, "<pre>\n\nx</pre>"},
		{"comment and doctype", func(d *Document, parent NodeID) {
			d.AppendChild(parent, d.CreateDoctype("html", "", ""))
			d.AppendChild(parent, d.CreateComment("c"))
		}, "<!DOCTYPE html><!--c-->"},
		{"foreign attributes", func(d *Document, parent NodeID) {
			d.AppendChild(parent, d.CreateElement("use", Svgns, []Attribute{
				{Namespace: Xlinkns, Prefix: "xlink", Name: "href", Value: "#a"},
				{Namespace: Xmlnsns, Name: "xmlns", Value: "http://www.w3.org/2000/svg"},
			}))
		}, `<use xlink:href="#a" xmlns="http://www.w3.org/2000/svg"></use>`},
		{"template contents", func(d *Document, parent NodeID) {
			tmpl := d.CreateElement("template", Htmlns, nil)
			d.AppendChild(parent, tmpl)
			d.AppendChild(d.Node(tmpl).Template, d.CreateElement("td", Htmlns, nil))
		}, "<template><td></td></template>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDocument()
			div := d.CreateElement("div", Htmlns, nil)
			d.AppendChild(d.Root(), div)
			tt.make(d, div)
			assert.Equal(t, tt.want, Render(d, div, false))
		})
	}
}

func TestRenderNoscript(t *testing.T) {
	d := NewDocument()
	ns := d.CreateElement("noscript", Htmlns, nil)
	d.AppendChild(d.Root(), ns)
	d.InsertText(ns, Nil, "<b>")
	assert.Equal(t, "<noscript>&lt;b&gt;</noscript>", Render(d, d.Root(), false))
	assert.Equal(t, "<noscript><b></noscript>", Render(d, d.Root(), true))
}

func TestToXML(t *testing.T) {
	d, _, _, p := build(t)
	svg := d.CreateElement("svg", Svgns, []Attribute{
		{Namespace: Xlinkns, Prefix: "xlink", Name: "href", Value: "#a"},
	})
	d.AppendChild(p, svg)
	d.AppendChild(svg, d.CreateElement("circle", Svgns, nil))

	doc := ToXML(d, d.Root())
	out, err := doc.WriteToString()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<html xmlns="http://www.w3.org/1999/xhtml">`)
	assert.Contains(t, out, `<p id="x">a<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xlink:href="#a"><circle/></svg></p>`)

	circle := doc.FindElement("//circle")
	require.NotNil(t, circle)
	assert.Nil(t, circle.SelectAttr("xmlns"))
}
