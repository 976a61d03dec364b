package parser

import (
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if c.currentNode().IsHTML(atom.Table, atom.Tbody, atom.Template, atom.Tfoot, atom.Thead, atom.Tr) {
			c.pendingTableCharacters = c.pendingTableCharacters[:0]
			c.originalInsertionMode = c.insertionMode
			return true, inTableText
		}
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
		return false, c.insertionMode
	case DoctypeToken:
		c.unexpected(t)
		return false, c.insertionMode
	case StartTagToken:
		switch t.Atom {
		case atom.Caption:
			c.clearStackBackToTableContext()
			c.activeFormatting.insertMarker()
			c.insertHTMLElement(t)
			return false, inCaption
		case atom.Colgroup:
			c.clearStackBackToTableContext()
			c.insertHTMLElement(t)
			return false, inColumnGroup
		case atom.Col:
			c.clearStackBackToTableContext()
			c.insertHTMLElement(impliedTag(atom.Colgroup, t))
			return true, inColumnGroup
		case atom.Tbody, atom.Tfoot, atom.Thead:
			c.clearStackBackToTableContext()
			c.insertHTMLElement(t)
			return false, inTableBody
		case atom.Td, atom.Th, atom.Tr:
			c.clearStackBackToTableContext()
			c.insertHTMLElement(impliedTag(atom.Tbody, t))
			return true, inTableBody
		case atom.Table:
			c.unexpected(t)
			if !c.popUntil(tableScope, atom.Table) {
				return false, c.insertionMode
			}
			return true, c.resetInsertionMode()
		case atom.Style, atom.Script, atom.Template:
			return c.useRulesFor(t, inHead)
		case atom.Input:
			if !isHiddenInput(t) {
				break
			}
			c.unexpected(t)
			c.insertHTMLElement(t)
			c.openElements.pop()
			c.acknowledgeSelfClosingTag()
			return false, c.insertionMode
		case atom.Form:
			c.unexpected(t)
			if c.hasTemplateOnStack() || c.formElement != dom.Nil {
				return false, c.insertionMode
			}
			c.formElement = c.insertHTMLElement(t)
			c.openElements.pop()
			return false, c.insertionMode
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Table:
			if !c.popUntil(tableScope, atom.Table) {
				c.unexpected(t)
				return false, c.insertionMode
			}
			return false, c.resetInsertionMode()
		case atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html, atom.Tbody,
			atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Tr:
			c.unexpected(t)
			return false, c.insertionMode
		case atom.Template:
			return c.useRulesFor(t, inHead)
		}
	case EndOfFileToken:
		return c.useRulesFor(t, inBody)
	}

	c.parseError(FosterParentedContent, t)
	return c.fosterParentWithBodyRules(t)
}

// fosterParentWithBodyRules processes t using the in body rules with
// foster parenting enabled.
func (c *HTMLTreeConstructor) fosterParentWithBodyRules(t *Token) (bool, insertionMode) {
	c.fosterParenting = true
	defer func() { c.fosterParenting = false }()
	return c.useRulesFor(t, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode) {
	if t.TokenType == CharacterToken {
		if t.Data == "\x00" {
			c.parseError(UnexpectedNullCharacter, t)
		} else {
			c.pendingTableCharacters = append(c.pendingTableCharacters, *t)
		}
		return false, c.insertionMode
	}

	whitespace := true
	for i := range c.pendingTableCharacters {
		if !isWhitespace(&c.pendingTableCharacters[i]) {
			whitespace = false
			break
		}
	}
	if whitespace {
		for _, ch := range c.pendingTableCharacters {
			c.insertCharacter(ch.Data)
		}
	} else {
		c.parseError(FosterParentedContent, &c.pendingTableCharacters[0])
		// in body never switches modes on a character token
		for i := range c.pendingTableCharacters {
			c.fosterParentWithBodyRules(&c.pendingTableCharacters[i])
		}
	}
	c.pendingTableCharacters = c.pendingTableCharacters[:0]
	return true, c.originalInsertionMode
}

// closeCaption pops the caption and its marker. It reports whether a
// caption was in table scope.
func (c *HTMLTreeConstructor) closeCaption(t *Token) bool {
	if !c.elementInScope(tableScope, atom.Caption) {
		c.unexpected(t)
		return false
	}
	c.generateImpliedEndTags()
	if !c.currentNode().IsHTML(atom.Caption) {
		c.unexpected(t)
	}
	c.popUntilHTML(atom.Caption)
	c.activeFormatting.clearToLastMarker()
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isEndTag(t, atom.Caption):
		if !c.closeCaption(t) {
			return false, c.insertionMode
		}
		return false, inTable
	case isStartTag(t, atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td,
		atom.Tfoot, atom.Th, atom.Thead, atom.Tr), isEndTag(t, atom.Table):
		if !c.closeCaption(t) {
			return false, c.insertionMode
		}
		return true, inTable
	case isEndTag(t, atom.Body, atom.Col, atom.Colgroup, atom.Html, atom.Tbody, atom.Td,
		atom.Tfoot, atom.Th, atom.Thead, atom.Tr):
		c.unexpected(t)
		return false, c.insertionMode
	}
	return c.useRulesFor(t, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode) {
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
		case atom.Col:
			c.insertHTMLElement(t)
			c.openElements.pop()
			c.acknowledgeSelfClosingTag()
			return false, c.insertionMode
		case atom.Template:
			return c.useRulesFor(t, inHead)
		}
	case EndTagToken:
		switch t.Atom {
		case atom.Colgroup:
			if !c.currentNode().IsHTML(atom.Colgroup) {
				c.unexpected(t)
				return false, c.insertionMode
			}
			c.openElements.pop()
			return false, inTable
		case atom.Col:
			c.unexpected(t)
			return false, c.insertionMode
		case atom.Template:
			return c.useRulesFor(t, inHead)
		}
	case EndOfFileToken:
		return c.useRulesFor(t, inBody)
	}

	if !c.currentNode().IsHTML(atom.Colgroup) {
		c.unexpected(t)
		return false, c.insertionMode
	}
	c.openElements.pop()
	return true, inTable
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isStartTag(t, atom.Tr):
		c.clearStackBackToTableBodyContext()
		c.insertHTMLElement(t)
		return false, inRow
	case isStartTag(t, atom.Th, atom.Td):
		c.unexpected(t)
		c.clearStackBackToTableBodyContext()
		c.insertHTMLElement(impliedTag(atom.Tr, t))
		return true, inRow
	case isEndTag(t, atom.Tbody, atom.Tfoot, atom.Thead):
		if !c.elementInScope(tableScope, t.Atom) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.clearStackBackToTableBodyContext()
		c.openElements.pop()
		return false, inTable
	case isStartTag(t, atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot, atom.Thead),
		isEndTag(t, atom.Table):
		if !c.elementInScope(tableScope, atom.Tbody, atom.Thead, atom.Tfoot) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.clearStackBackToTableBodyContext()
		c.openElements.pop()
		return true, inTable
	case isEndTag(t, atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html,
		atom.Td, atom.Th, atom.Tr):
		c.unexpected(t)
		return false, c.insertionMode
	}
	return c.useRulesFor(t, inTable)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isStartTag(t, atom.Th, atom.Td):
		c.clearStackBackToTableRowContext()
		c.insertHTMLElement(t)
		c.activeFormatting.insertMarker()
		return false, inCell
	case isEndTag(t, atom.Tr):
		if !c.elementInScope(tableScope, atom.Tr) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.clearStackBackToTableRowContext()
		c.openElements.pop()
		return false, inTableBody
	case isStartTag(t, atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Tfoot,
		atom.Thead, atom.Tr), isEndTag(t, atom.Table):
		if !c.elementInScope(tableScope, atom.Tr) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.clearStackBackToTableRowContext()
		c.openElements.pop()
		return true, inTableBody
	case isEndTag(t, atom.Tbody, atom.Tfoot, atom.Thead):
		if !c.elementInScope(tableScope, t.Atom) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		if !c.elementInScope(tableScope, atom.Tr) {
			return false, c.insertionMode
		}
		c.clearStackBackToTableRowContext()
		c.openElements.pop()
		return true, inTableBody
	case isEndTag(t, atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html,
		atom.Td, atom.Th):
		c.unexpected(t)
		return false, c.insertionMode
	}
	return c.useRulesFor(t, inTable)
}

// closeCell closes the open td or th element and returns to the row.
func (c *HTMLTreeConstructor) closeCell(t *Token) insertionMode {
	c.generateImpliedEndTags()
	if !c.currentNode().IsHTML(atom.Td, atom.Th) {
		c.unexpected(t)
	}
	c.popUntilHTML(atom.Td, atom.Th)
	c.activeFormatting.clearToLastMarker()
	return inRow
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case isEndTag(t, atom.Td, atom.Th):
		if !c.elementInScope(tableScope, t.Atom) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		c.generateImpliedEndTags()
		if !c.currentNode().IsHTML(t.Atom) {
			c.unexpected(t)
		}
		c.popUntilHTML(t.Atom)
		c.activeFormatting.clearToLastMarker()
		return false, inRow
	case isStartTag(t, atom.Caption, atom.Col, atom.Colgroup, atom.Tbody, atom.Td,
		atom.Tfoot, atom.Th, atom.Thead, atom.Tr):
		if !c.elementInScope(tableScope, atom.Td, atom.Th) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		return true, c.closeCell(t)
	case isEndTag(t, atom.Body, atom.Caption, atom.Col, atom.Colgroup, atom.Html):
		c.unexpected(t)
		return false, c.insertionMode
	case isEndTag(t, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr):
		if !c.elementInScope(tableScope, t.Atom) {
			c.unexpected(t)
			return false, c.insertionMode
		}
		return true, c.closeCell(t)
	}
	return c.useRulesFor(t, inBody)
}
