package parser

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// FragmentContext describes the element a fragment is parsed as the
// contents of, like the target of an innerHTML assignment.
type FragmentContext struct {
	Name      string
	Namespace dom.Namespace

	// Attr matters only for annotation-xml, whose encoding attribute makes
	// it an HTML integration point.
	Attr []dom.Attribute
}

// FragmentResult is a parsed fragment. Nodes are the children of the
// synthetic root element, in order.
type FragmentResult struct {
	Document *dom.Document
	Root     dom.NodeID
	Nodes    []dom.NodeID

	Errors      []ParseError
	StyleSheets []string
}

// ParseFragment parses input as the contents of an element described by ctx.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func ParseFragment(input string, ctx FragmentContext, cfg Config) *FragmentResult {
	if ctx.Namespace == dom.Nons {
		ctx.Namespace = dom.Htmlns
	}
	p := NewParser(input, cfg)
	c := p.TreeConstructor

	c.context = c.doc.CreateElement(ctx.Name, ctx.Namespace, ctx.Attr)
	context := c.doc.Node(c.context)

	root := c.doc.CreateElement("html", dom.Htmlns, nil)
	c.doc.AppendChild(c.doc.Root(), root)
	c.openElements.push(root)

	if context.IsHTML(atom.Template) {
		c.pushTemplateMode(inTemplate)
	}
	c.insertionMode = c.resetInsertionMode()
	if context.IsHTML(atom.Form) {
		c.formElement = c.context
	}

	state := fragmentTokenizerState(context, cfg.ScriptingEnabled)
	p.log.WithFields(logrus.Fields{
		"context": ctx.Name,
		"mode":    c.insertionMode,
		"state":   state,
	}).Debug("parsing fragment")
	p.run(&Progress{
		InForeignContent: ctx.Namespace != dom.Htmlns,
		TokenizerState:   &state,
	})

	doc := c.Document()
	res := &FragmentResult{
		Document:    doc,
		Root:        root,
		Nodes:       doc.Children(root),
		StyleSheets: c.StyleSheets(),
	}
	if p.errs != nil {
		res.Errors = p.errs.Errors
	}
	return res
}

// fragmentTokenizerState is the state the tokenizer starts in for a
// fragment parsed in context.
func fragmentTokenizerState(context *dom.Node, scripting bool) TokenizerState {
	if context.Namespace != dom.Htmlns {
		return dataState
	}
	switch context.Atom {
	case atom.Title, atom.Textarea:
		return rcDataState
	case atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes:
		return rawTextState
	case atom.Noscript:
		if scripting {
			return rawTextState
		}
	case atom.Script:
		return scriptDataState
	case atom.Plaintext:
		return plaintextState
	}
	return dataState
}
