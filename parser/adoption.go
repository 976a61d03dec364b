package parser

import (
	"github.com/gobrowse/engine/parser/dom"
)

// adoptionAgency runs the adoption agency algorithm for the formatting tag
// named by t.
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgency(t *Token) {
	subject := t.TagName

	// Steps 1-2.
	if top := c.openElements.top(); top != dom.Nil {
		n := c.doc.Node(top)
		if n.Namespace == dom.Htmlns && n.Name == subject && c.activeFormatting.index(top) == -1 {
			c.openElements.pop()
			return
		}
	}

	// Steps 3-4. The outer loop.
	for outer := 0; outer < 8; outer++ {
		// Step 4.3. Find the formatting element.
		formattingElement := c.lastBeforeMarker(t.Atom, subject)
		if formattingElement == dom.Nil {
			c.inBodyEndTagOther(t)
			return
		}

		// Step 4.4.
		feIndex := c.openElements.index(formattingElement)
		if feIndex == -1 {
			c.parseError(MisnestedFormattingElement, t)
			c.activeFormatting.remove(formattingElement)
			return
		}
		// Step 4.5.
		if !c.nodeInScope(formattingElement) {
			c.parseError(MisnestedFormattingElement, t)
			return
		}
		// Step 4.6.
		if formattingElement != c.openElements.top() {
			c.parseError(MisnestedFormattingElement, t)
		}

		// Step 4.7. The furthest block is the topmost special element below
		// the formatting element on the stack.
		furthestBlock := dom.Nil
		for _, id := range c.openElements[feIndex+1:] {
			if isSpecial(c.doc.Node(id)) {
				furthestBlock = id
				break
			}
		}
		// Step 4.8.
		if furthestBlock == dom.Nil {
			c.openElements = c.openElements[:feIndex]
			c.activeFormatting.remove(formattingElement)
			return
		}

		// Steps 4.9-4.10.
		commonAncestor := c.openElements[feIndex-1]
		bookmark := c.activeFormatting.index(formattingElement)

		// Steps 4.11-4.12. The inner loop.
		lastNode := furthestBlock
		node := furthestBlock
		x := c.openElements.index(node)
		for inner := 1; ; inner++ {
			x--
			node = c.openElements[x]
			if node == formattingElement {
				break
			}
			if ni := c.activeFormatting.index(node); inner > 3 && ni != -1 {
				c.activeFormatting.remove(node)
				if ni < bookmark {
					bookmark--
				}
			}
			ni := c.activeFormatting.index(node)
			if ni == -1 {
				c.openElements.remove(node)
				continue
			}
			clone := c.doc.CloneElement(node)
			c.activeFormatting[ni] = clone
			c.openElements[x] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = ni + 1
			}
			c.doc.Detach(lastNode)
			c.doc.AppendChild(node, lastNode)
			lastNode = node
		}

		// Step 4.13.
		c.doc.Detach(lastNode)
		c.insertAt(c.appropriatePlace(commonAncestor), lastNode)

		// Steps 4.14-4.16.
		clone := c.doc.CloneElement(formattingElement)
		c.doc.ReparentChildren(clone, furthestBlock)
		c.doc.AppendChild(furthestBlock, clone)

		// Step 4.17.
		if i := c.activeFormatting.index(formattingElement); i != -1 && i < bookmark {
			bookmark--
		}
		c.activeFormatting.remove(formattingElement)
		c.activeFormatting.insert(bookmark, clone)

		// Step 4.18.
		c.openElements.remove(formattingElement)
		c.openElements.insert(c.openElements.index(furthestBlock)+1, clone)
	}
}
