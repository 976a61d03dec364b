// Package query selects nodes of a parsed document with boolean expressions
// such as
//
//	tag == "a" && attr.href != ""
//
// evaluated once per node.
package query

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/gobrowse/engine/parser/dom"
)

// Env is what an expression sees for one node.
type Env struct {
	// Type is "element", "text", "comment", "doctype", "document" or "fragment".
	Type string `expr:"type"`
	Tag  string `expr:"tag"`
	// NS is "html", "svg" or "math" for elements.
	NS    string            `expr:"ns"`
	Attr  map[string]string `expr:"attr"`
	Text  string            `expr:"text"`
	Depth int               `expr:"depth"`
}

// Predicate is a compiled selection expression.
type Predicate struct {
	src  string
	prog *vm.Program
}

// Compile checks src against Env and compiles it. The expression must
// evaluate to a bool.
func Compile(src string) (*Predicate, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "compiling selector %q", src)
	}
	return &Predicate{src: src, prog: prog}, nil
}

func (p *Predicate) String() string {
	return p.src
}

// Match evaluates the predicate for id, found at depth below the root the
// walk started from.
func (p *Predicate) Match(d *dom.Document, id dom.NodeID, depth int) (bool, error) {
	out, err := vm.Run(p.prog, envFor(d, id, depth))
	if err != nil {
		return false, errors.Wrapf(err, "evaluating selector %q on node %d", p.src, id)
	}
	return out.(bool), nil
}

// Select returns every node under root, root included, that the predicate
// matches, in tree order. Template contents are searched too.
func (p *Predicate) Select(d *dom.Document, root dom.NodeID) ([]dom.NodeID, error) {
	var (
		ids []dom.NodeID
		err error
	)
	d.Walk(root, func(id dom.NodeID, depth int) bool {
		if err != nil {
			return false
		}
		var ok bool
		if ok, err = p.Match(d, id, depth); ok {
			ids = append(ids, id)
		}
		return err == nil
	})
	return ids, err
}

func nsName(ns dom.Namespace) string {
	switch ns {
	case dom.Htmlns:
		return "html"
	case dom.Nons:
		return ""
	}
	return ns.Prefix()
}

func envFor(d *dom.Document, id dom.NodeID, depth int) Env {
	n := d.Node(id)
	env := Env{
		Type:  n.Type.String(),
		Depth: depth,
		Attr:  map[string]string{},
	}
	switch n.Type {
	case dom.ElementNode:
		env.Tag = n.Name
		env.NS = nsName(n.Namespace)
		for _, a := range n.Attr {
			name := a.Name
			if a.Namespace != dom.Nons {
				name = a.Namespace.Prefix() + ":" + a.Name
			}
			if _, dup := env.Attr[name]; !dup {
				env.Attr[name] = a.Value
			}
		}
		env.Text = textContent(d, id)
	case dom.TextNode, dom.CommentNode:
		env.Text = n.Data
	case dom.DocumentTypeNode:
		env.Tag = n.Name
	}
	return env
}

// textContent concatenates the text descendants of id.
func textContent(d *dom.Document, id dom.NodeID) string {
	var b strings.Builder
	d.Walk(id, func(c dom.NodeID, _ int) bool {
		if n := d.Node(c); n.Type == dom.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}
