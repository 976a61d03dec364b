package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobrowse/engine/parser"
	"github.com/gobrowse/engine/parser/dom"
)

const page = `<!DOCTYPE html>
<title>Links</title>
<p><a href="/one">one</a> <a name=x>two</a>
<svg><a xlink:href="#c"><text>three</text></a></svg>
<template><a href="/four">four</a></template>
<!-- note -->`

func names(d *dom.Document, ids []dom.NodeID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		n := d.Node(id)
		if n.Type == dom.ElementNode {
			out = append(out, n.Name)
			continue
		}
		out = append(out, n.Type.String()+":"+n.Data)
	}
	return out
}

func TestSelect(t *testing.T) {
	doc := parser.Parse(page, parser.Config{}).Document

	tests := []struct {
		src  string
		want []string
	}{
		{`tag == "title"`, []string{"title"}},
		{`tag == "a" && attr.href != ""`, []string{"a", "a"}},
		{`tag == "a" && ns == "svg"`, []string{"a"}},
		{`"xlink:href" in attr`, []string{"a"}},
		{`tag == "a" && text == "two"`, []string{"a"}},
		{`type == "comment"`, []string{"comment: note "}},
		{`type == "element" && depth == 1`, []string{"html"}},
		{`tag == "nothing"`, []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			p, err := Compile(tt.src)
			require.NoError(t, err)
			ids, err := p.Select(doc, doc.Root())
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(doc, ids))
		})
	}
}

func TestMatchText(t *testing.T) {
	res := parser.ParseFragment("<b>x<i>y</i></b>", parser.FragmentContext{Name: "div"}, parser.Config{})
	p, err := Compile(`text == "xy"`)
	require.NoError(t, err)

	ok, err := p.Match(res.Document, res.Nodes[0], 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`tag ==`, `tag`, `color == "red"`} {
		_, err := Compile(src)
		assert.Errorf(t, err, "compiling %q", src)
	}
}

func TestString(t *testing.T) {
	p, err := Compile(`tag == "p"`)
	require.NoError(t, err)
	assert.Equal(t, `tag == "p"`, p.String())
}
