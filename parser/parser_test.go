package parser

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gobrowse/engine/parser/dom"
)

func dump(res *Result) string {
	return dom.Dump(res.Document, res.Document.Root())
}

func TestParseDocument(t *testing.T) {
	t.Parallel()
	res := Parse("<!DOCTYPE html><title>A &amp; B</title><p class=x>One<p>Two", Config{})
	want := `| <!DOCTYPE html>
| <html>
|   <head>
|     <title>
|       "A & B"
|   <body>
|     <p>
|       class="x"
|       "One"
|     <p>
|       "Two"
`
	if diff := cmp.Diff(want, dump(res)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Errors)
	assert.Equal(t, dom.NoQuirks, res.Document.Mode)
}

func TestParseScriptInsertion(t *testing.T) {
	t.Parallel()
	var scripts []string
	cfg := Config{
		ScriptingEnabled: true,
		Script: func(d *dom.Document, id dom.NodeID) string {
			n := d.Node(id)
			require.Equal(t, "script", n.Name)
			var text strings.Builder
			for _, c := range d.Children(id) {
				text.WriteString(d.Node(c).Data)
			}
			scripts = append(scripts, text.String())
			return "<p>x"
		},
	}
	res := Parse("<script>a</script><b>y", cfg)
	want := `| <html>
|   <head>
|     <script>
|       "a"
|   <body>
|     <p>
|       "x"
|       <b>
|         "y"
`
	if diff := cmp.Diff(want, dump(res)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"a"}, scripts)
}

func TestParseScriptNotCalledWithoutScripting(t *testing.T) {
	t.Parallel()
	called := false
	cfg := Config{Script: func(*dom.Document, dom.NodeID) string {
		called = true
		return ""
	}}
	Parse("<script>a</script>", cfg)
	assert.False(t, called)
}

func TestParseScriptNestingLimit(t *testing.T) {
	t.Parallel()
	calls := 0
	cfg := Config{
		ScriptingEnabled: true,
		Script: func(*dom.Document, dom.NodeID) string {
			calls++
			return "<script></script>"
		},
	}
	res := Parse("<script></script>", cfg)
	assert.Equal(t, maxScriptNesting, calls)

	scripts := 0
	res.Document.Walk(res.Document.Root(), func(id dom.NodeID, _ int) bool {
		if res.Document.Node(id).Name == "script" {
			scripts++
		}
		return true
	})
	assert.Equal(t, maxScriptNesting+1, scripts)
}

func TestParseSiblingScriptsAreNotNested(t *testing.T) {
	t.Parallel()
	calls := 0
	cfg := Config{
		ScriptingEnabled: true,
		Script: func(*dom.Document, dom.NodeID) string {
			calls++
			return "<i></i>"
		},
	}
	Parse(strings.Repeat("<script></script>x", 2*maxScriptNesting), cfg)
	assert.Equal(t, 2*maxScriptNesting, calls)
}

func TestParseStyleSheets(t *testing.T) {
	t.Parallel()
	res := Parse("<style>a{}</style><body><style>b</style><svg><style>c</style></svg>", Config{})
	assert.Equal(t, []string{"a{}", "b"}, res.StyleSheets)
}

func TestParseQuirksMode(t *testing.T) {
	tests := []struct {
		in     string
		srcdoc bool
		want   dom.QuirksMode
	}{
		{"<p>", false, dom.Quirks},
		{"<p>", true, dom.NoQuirks},
		{"<!DOCTYPE html>", false, dom.NoQuirks},
		{"<!doctype HTML>", false, dom.NoQuirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`, false, dom.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`, false, dom.LimitedQuirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "x">`, false, dom.LimitedQuirks},
		{`<!DOCTYPE html SYSTEM "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd">`, false, dom.Quirks},
		{"<!DOCTYPE svg>", false, dom.Quirks},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			res := Parse(tt.in, Config{IframeSrcdoc: tt.srcdoc})
			assert.Equal(t, tt.want, res.Document.Mode)
		})
	}
}

func errorKinds(errs []ParseError) []ErrorKind {
	kinds := make([]ErrorKind, 0, len(errs))
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	res := Parse("<p>", Config{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, MissingDoctype, res.Errors[0].Kind)
	assert.Equal(t, 1, res.Errors[0].Line)

	res = Parse("<!DOCTYPE html><b><i></b>", Config{})
	assert.Equal(t, []ErrorKind{MisnestedFormattingElement}, errorKinds(res.Errors))

	res = Parse("<!DOCTYPE html><div>", Config{})
	assert.Equal(t, []ErrorKind{EOFWithOpenElements}, errorKinds(res.Errors))

	res = Parse("<!DOCTYPE html><table>x</table>", Config{})
	assert.Contains(t, errorKinds(res.Errors), FosterParentedContent)
}

func TestParseTwoCodePointReferences(t *testing.T) {
	t.Parallel()
	res := Parse("<!DOCTYPE html>&NotSubset;&ThickSpace;&nvlt;<a title='&acE;'></a>", Config{})
	d := res.Document
	body := d.Children(d.LastChild(d.Root()))[1]
	kids := d.Children(body)
	require.Len(t, kids, 2)
	assert.Equal(t, "\u2282\u20d2\u205f\u200a<\u20d2", d.Node(kids[0]).Data)
	title, ok := d.Node(kids[1]).AttrValue("title")
	require.True(t, ok)
	assert.Equal(t, "\u223e\u0333", title)
	assert.Empty(t, res.Errors)
}

func TestParseForeignBreakoutEndTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<!DOCTYPE html><svg></p>x", `| <!DOCTYPE html>
| <html>
|   <head>
|   <body>
|     <svg svg>
|     <p>
|     "x"
`},
		{"<!DOCTYPE html><math></br>x", `| <!DOCTYPE html>
| <html>
|   <head>
|   <body>
|     <math math>
|     <br>
|     "x"
`},
		{"<!DOCTYPE html><svg><foreignObject><svg></p>x", `| <!DOCTYPE html>
| <html>
|   <head>
|   <body>
|     <svg svg>
|       <svg foreignObject>
|         <svg svg>
|         <p>
|         "x"
`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			res := Parse(tt.in, Config{})
			if diff := cmp.Diff(tt.want, dump(res)); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
			assert.Contains(t, errorKinds(res.Errors), UnexpectedEndTag)
		})
	}
}

func TestParseErrorsInInputOrder(t *testing.T) {
	t.Parallel()
	res := Parse("<a b b><!-- x --!>\u0000", Config{})
	require.NotEmpty(t, res.Errors)
	for i := 1; i < len(res.Errors); i++ {
		assert.LessOrEqual(t, res.Errors[i-1].Offset, res.Errors[i].Offset)
	}
}

func TestParseMaxErrors(t *testing.T) {
	t.Parallel()
	res := Parse("<a b b c c d d>", Config{MaxErrors: 2})
	assert.Len(t, res.Errors, 2)
}

func TestParseErrorSink(t *testing.T) {
	t.Parallel()
	sink := &ErrorList{}
	res := Parse("<p>", Config{Errors: sink})
	assert.Nil(t, res.Errors)
	require.Len(t, sink.Errors, 1)
	assert.Equal(t, "missing-doctype", sink.Errors[0].Kind.String())
}

func TestParseLogsErrors(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	Parse("<p>", Config{Logger: logger})

	var kinds []string
	for _, e := range hook.AllEntries() {
		if e.Message == "parse error" {
			kinds = append(kinds, e.Data["kind"].(ErrorKind).String())
		}
	}
	assert.Equal(t, []string{"missing-doctype"}, kinds)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestParseReader(t *testing.T) {
	t.Parallel()
	res, err := ParseReader(strings.NewReader("<p>x"), Config{})
	require.NoError(t, err)
	assert.Contains(t, dump(res), `"x"`)

	sentinel := errors.New("disk on fire")
	_, err = ParseReader(failingReader{sentinel}, Config{})
	require.Error(t, err)
	assert.Equal(t, sentinel, errors.Cause(err))
	assert.Contains(t, err.Error(), "reading html input")
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><p>One<p>Two",
		"<b>1<i>2</b>3</i>",
		"<table><tr><td>a &lt; b<td>&nbsp;</table>",
		"<pre>\n\nx</pre><textarea>\nt</textarea>",
		"<script>if (a < b) {}</script><style>p > a {}</style>",
		"<svg viewBox='0 0 1 1'><foreignObject><p>x</p></foreignObject></svg>",
		"<template><td>a</td></template>",
		"<p title='a\"b' lang=\"&amp;\">x<br>y<img src=1></p><!-- c -->",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			first := Parse(in, Config{})
			out := dom.Render(first.Document, first.Document.Root(), false)
			second := Parse(out, Config{})
			if diff := cmp.Diff(dump(first), dump(second)); diff != "" {
				t.Errorf("rendered %q\nround trip mismatch (-first +second):\n%s", out, diff)
			}
		})
	}
}

func TestRenderPlaintextGrows(t *testing.T) {
	t.Parallel()
	first := Parse("<!DOCTYPE html><plaintext>a", Config{})
	out := dom.Render(first.Document, first.Document.Root(), false)
	second := Parse(out, Config{})
	assert.Contains(t, dump(first), `"a"`)
	assert.Contains(t, dump(second), `"a</plaintext></body></html>"`)
}

// netDump renders an x/net/html tree in the dom.Dump format.
func netDump(b *strings.Builder, n *html.Node, depth int) {
	line := func(depth int, s string) {
		b.WriteString("| " + strings.Repeat("  ", depth) + s + "\n")
	}
	switch n.Type {
	case html.DoctypeNode:
		line(depth, "<!DOCTYPE "+n.Data+">")
	case html.CommentNode:
		line(depth, "<!-- "+n.Data+" -->")
	case html.TextNode:
		line(depth, `"`+n.Data+`"`)
	case html.ElementNode:
		name := n.Data
		if n.Namespace != "" {
			name = n.Namespace + " " + name
		}
		line(depth, "<"+name+">")
		attrs := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + " " + key
			}
			attrs = append(attrs, key+`="`+a.Val+`"`)
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			line(depth+1, a)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		netDump(b, c, depth+1)
	}
}

// TestAgainstNetHTML compares trees with golang.org/x/net/html, which
// implements the same algorithm.
func TestAgainstNetHTML(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><p>One<p>Two",
		"<b>1<i>2</b>3</i>",
		"<p><b>x<p>y",
		"<table><tr><td>a<td>b</table>x",
		"<table>x<tr><td>y</table>",
		"<ul><li>a<li>b</ul><dl><dt>x<dd>y</dl>",
		"<select><option>a<option>b</select>",
		"<svg viewBox='0 0 1 1'><path d=M0/></svg><math><mi>x</mi></math>",
		"<!-- c --><html><head><title>T&amp;</title></head><body>z</body></html><!-- d -->",
		"<frameset><frame></frameset>",
		"<h1>a<h2>b</h1>c",
		"<body><form><input></form>x",
		"<svg></p>x",
		"<math></br>x",
		"&NotSubset;&ThickSpace;&nvlt;",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			doc, err := html.ParseWithOptions(strings.NewReader(in), html.ParseOptionEnableScripting(false))
			require.NoError(t, err)
			var want strings.Builder
			for c := doc.FirstChild; c != nil; c = c.NextSibling {
				netDump(&want, c, 0)
			}
			if diff := cmp.Diff(want.String(), dump(Parse(in, Config{}))); diff != "" {
				t.Errorf("tree mismatch (-x/net/html +ours):\n%s", diff)
			}
		})
	}
}

func TestParseFragment(t *testing.T) {
	t.Parallel()
	res := ParseFragment("<td>x</td><td>y", FragmentContext{Name: "tr"}, Config{})
	require.Len(t, res.Nodes, 2)
	for _, id := range res.Nodes {
		assert.Equal(t, "td", res.Document.Node(id).Name)
		assert.Equal(t, res.Root, res.Document.Parent(id))
	}
	assert.Empty(t, res.Errors)
}

func TestParseFragmentInForm(t *testing.T) {
	t.Parallel()
	res := ParseFragment("<form><input>", FragmentContext{Name: "form"}, Config{})
	assert.Equal(t, "| <input>\n", dom.Dump(res.Document, res.Root))
	assert.Equal(t, []ErrorKind{UnexpectedStartTag}, errorKinds(res.Errors))
}

func TestParseFragmentStyleSheets(t *testing.T) {
	t.Parallel()
	res := ParseFragment("<style>a{}</style>", FragmentContext{Name: "div"}, Config{})
	assert.Equal(t, []string{"a{}"}, res.StyleSheets)
}
