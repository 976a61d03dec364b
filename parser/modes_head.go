package parser

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespace(t) {
			return false, c.insertionMode
		}
	case CommentToken:
		c.insertCommentLast(t, c.doc.Root())
		return false, c.insertionMode
	case DoctypeToken:
		if !isConformingDoctype(t) {
			c.parseError(NonConformingDoctype, t)
		}
		c.insertAt(insertionPoint{parent: c.doc.Root()}, c.doc.CreateDoctype(t.TagName, t.PublicID, t.SystemID))
		c.doc.Mode = quirksModeFor(t, c.cfg.IframeSrcdoc)
		return false, beforeHTML
	}

	if !c.cfg.IframeSrcdoc {
		c.parseError(MissingDoctype, t)
		c.doc.Mode = dom.Quirks
	}
	return true, beforeHTML
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case CommentToken:
		c.insertCommentLast(t, c.doc.Root())
		return false, c.insertionMode
	case CharacterToken:
		if isWhitespace(t) {
			return false, c.insertionMode
		}
	case StartTagToken:
		if t.Atom == atom.Html {
			c.insertRootElement(t)
			return false, beforeHead
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Head, atom.Body, atom.Html, atom.Br:
		default:
			c.unexpected(t)
			return false, c.insertionMode
		}
	}

	c.insertRootElement(impliedTag(atom.Html, t))
	return true, beforeHead
}

// insertRootElement appends the html element to the document.
func (c *HTMLTreeConstructor) insertRootElement(t *Token) {
	id := c.createElementForToken(t, dom.Htmlns)
	c.insertAt(insertionPoint{parent: c.doc.Root()}, id)
	c.openElements.push(id)
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespace(t) {
			return false, c.insertionMode
		}
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		switch t.Atom {
		case atom.Html:
			return c.useRulesFor(t, inBody)
		case atom.Head:
			c.headElement = c.insertHTMLElement(t)
			return false, inHead
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Head, atom.Body, atom.Html, atom.Br:
		default:
			c.unexpected(t)
			return false, c.insertionMode
		}
	}

	c.headElement = c.insertHTMLElement(impliedTag(atom.Head, t))
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespace(t) {
			c.insertCharacter(t.Data)
			return false, c.insertionMode
		}
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		switch t.Atom {
		case atom.Html:
			return c.useRulesFor(t, inBody)
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta:
			c.insertHTMLElement(t)
			c.openElements.pop()
			c.acknowledgeSelfClosingTag()
			return false, c.insertionMode
		case atom.Title:
			return false, c.parseGenericText(t, rcDataState)
		case atom.Noscript:
			if c.cfg.ScriptingEnabled {
				return false, c.parseGenericText(t, rawTextState)
			}
			c.insertHTMLElement(t)
			return false, inHeadNoScript
		case atom.Noframes, atom.Style:
			return false, c.parseGenericText(t, rawTextState)
		case atom.Script:
			c.insertScriptElement(t)
			return false, text
		case atom.Template:
			c.insertHTMLElement(t)
			c.activeFormatting.insertMarker()
			c.framesetOK = false
			c.pushTemplateMode(inTemplate)
			return false, inTemplate
		case atom.Head:
			c.unexpected(t)
			return false, c.insertionMode
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Head:
			c.openElements.pop()
			return false, afterHead
		case atom.Body, atom.Html, atom.Br:
		case atom.Template:
			return false, c.closeTemplate(t)
		default:
			c.unexpected(t)
			return false, c.insertionMode
		}
	}

	c.openElements.pop()
	return true, afterHead
}

// insertScriptElement inserts a script element and hands the tokenizer to
// the script data state.
func (c *HTMLTreeConstructor) insertScriptElement(t *Token) {
	id := c.createElementForToken(t, dom.Htmlns)
	c.insertNode(id)
	c.openElements.push(id)
	c.switchTokenizerTo(scriptDataState)
	c.originalInsertionMode = c.insertionMode
}

// closeTemplate handles a template end tag for the in head rules and
// returns the insertion mode to continue in.
func (c *HTMLTreeConstructor) closeTemplate(t *Token) insertionMode {
	if !c.hasTemplateOnStack() {
		c.unexpected(t)
		return c.insertionMode
	}
	c.generateAllImpliedEndTagsThoroughly()
	if !c.currentNode().IsHTML(atom.Template) {
		c.unexpected(t)
	}
	c.popUntilHTML(atom.Template)
	c.activeFormatting.clearToLastMarker()
	c.popTemplateMode()
	return c.resetInsertionMode()
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case CharacterToken:
		if isWhitespace(t) {
			return c.useRulesFor(t, inHead)
		}
	case CommentToken:
		return c.useRulesFor(t, inHead)
	case StartTagToken:
		switch t.Atom {
		case atom.Html:
			return c.useRulesFor(t, inBody)
		case atom.Basefont, atom.Bgsound, atom.Link, atom.Meta, atom.Noframes, atom.Style:
			return c.useRulesFor(t, inHead)
		case atom.Head, atom.Noscript:
			c.unexpected(t)
			return false, c.insertionMode
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Noscript:
			c.openElements.pop()
			return false, inHead
		case atom.Br:
		default:
			c.unexpected(t)
			return false, c.insertionMode
		}
	}

	c.unexpected(t)
	c.openElements.pop()
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if isWhitespace(t) {
			c.insertCharacter(t.Data)
			return false, c.insertionMode
		}
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		switch t.Atom {
		case atom.Html:
			return c.useRulesFor(t, inBody)
		case atom.Body:
			c.insertHTMLElement(t)
			c.framesetOK = false
			return false, inBody
		case atom.Frameset:
			c.insertHTMLElement(t)
			return false, inFrameset
		case atom.Base, atom.Basefont, atom.Bgsound, atom.Link, atom.Meta,
			atom.Noframes, atom.Script, atom.Style, atom.Template, atom.Title:
			c.unexpected(t)
			c.openElements.push(c.headElement)
			reprocess, next := c.useRulesFor(t, inHead)
			c.openElements.remove(c.headElement)
			return reprocess, next
		case atom.Head:
			c.unexpected(t)
			return false, c.insertionMode
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Template:
			return c.useRulesFor(t, inHead)
		case atom.Body, atom.Html, atom.Br:
		default:
			c.unexpected(t)
			return false, c.insertionMode
		}
	}

	c.insertHTMLElement(impliedTag(atom.Body, t))
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		c.insertCharacter(t.Data)
		return false, c.insertionMode
	case EndOfFileToken:
		c.unexpected(t)
		c.openElements.pop()
		return true, c.originalInsertionMode
	case EndTagToken:
		id := c.openElements.pop()
		n := c.doc.Node(id)
		switch {
		case n.IsHTML(atom.Script):
			if c.cfg.ScriptingEnabled && c.cfg.Script != nil {
				c.progress.Script = id
			}
		case n.IsHTML(atom.Style):
			c.styleSheets = append(c.styleSheets, c.textContent(id))
		}
		return false, c.originalInsertionMode
	}
	panic(invariant("%s token in the text insertion mode", t.TokenType))
}

// textContent concatenates the text children of id.
func (c *HTMLTreeConstructor) textContent(id dom.NodeID) string {
	var b strings.Builder
	for _, child := range c.doc.Children(id) {
		if n := c.doc.Node(child); n.Type == dom.TextNode {
			b.WriteString(n.Data)
		}
	}
	return b.String()
}

// useRulesFor processes t with the rules of mode without switching to it.
// The returned mode is the one the rules of mode asked for, which is the
// current insertion mode unless they switched.
func (c *HTMLTreeConstructor) useRulesFor(t *Token, mode insertionMode) (bool, insertionMode) {
	return c.mappings[mode](t)
}
