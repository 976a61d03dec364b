package parser

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

type insertionMode uint8

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	initial:            "initial",
	beforeHTML:         "before html",
	beforeHead:         "before head",
	inHead:             "in head",
	inHeadNoScript:     "in head noscript",
	afterHead:          "after head",
	inBody:             "in body",
	text:               "text",
	inTable:            "in table",
	inTableText:        "in table text",
	inCaption:          "in caption",
	inColumnGroup:      "in column group",
	inTableBody:        "in table body",
	inRow:              "in row",
	inCell:             "in cell",
	inSelect:           "in select",
	inSelectInTable:    "in select in table",
	inTemplate:         "in template",
	afterBody:          "after body",
	inFrameset:         "in frameset",
	afterFrameset:      "after frameset",
	afterAfterBody:     "after after body",
	afterAfterFrameset: "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return fmt.Sprintf("insertionMode(%d)", uint8(m))
}

// a treeConstructionModeHandler processes one token in an insertion mode.
// It returns whether the token must be reprocessed and the insertion mode
// to continue in, which is c.insertionMode when the mode does not change.
type treeConstructionModeHandler func(t *Token) (bool, insertionMode)

// HTMLTreeConstructor holds the state of the tree construction stage.
type HTMLTreeConstructor struct {
	doc   *dom.Document
	cfg   Config
	log   logrus.FieldLogger
	trace bool
	errs  ErrorSink

	insertionMode, originalInsertionMode insertionMode
	templateInsertionModes               []insertionMode

	openElements     elementStack
	activeFormatting formattingList

	headElement, formElement dom.NodeID

	// context is the context element of a fragment parse, or dom.Nil.
	context dom.NodeID

	framesetOK              bool
	fosterParenting         bool
	skipNewline             bool
	selfClosingAcknowledged bool

	pendingTableCharacters []Token
	pending                pendingText

	progress    Progress
	styleSheets []string

	mappings map[insertionMode]treeConstructionModeHandler
}

// pendingText accumulates consecutive characters bound for the same
// insertion point, so a run of character tokens becomes a single write.
type pendingText struct {
	at     insertionPoint
	buf    strings.Builder
	active bool
}

// NewHTMLTreeConstructor creates a tree constructor for a new document.
func NewHTMLTreeConstructor(cfg Config) *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{
		doc:        dom.NewDocument(),
		cfg:        cfg,
		log:        cfg.logger(),
		errs:       cfg.Errors,
		framesetOK: true,
	}
	c.trace = traceEnabled(c.log)
	c.createMappings()
	return c
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// Document returns the document being built.
func (c *HTMLTreeConstructor) Document() *dom.Document {
	c.flushText()
	return c.doc
}

// StyleSheets returns the text of every style element closed so far.
func (c *HTMLTreeConstructor) StyleSheets() []string {
	return c.styleSheets
}

// ProcessToken runs one token through the tree construction dispatcher and
// returns what the tokenizer needs to know before producing the next token.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.progress = Progress{}
	if t.TokenType != CharacterToken {
		c.flushText()
	}
	if c.skipNewline {
		c.skipNewline = false
		if t.TokenType == CharacterToken && t.Data == "\n" {
			return c.finishToken()
		}
	}
	c.selfClosingAcknowledged = t.TokenType != StartTagToken || !t.SelfClosing

	before := c.insertionMode
	for reprocess := true; reprocess; {
		if c.usesForeignRules(t) {
			reprocess = c.foreignContentHandler(t)
			continue
		}
		reprocess, c.insertionMode = c.mappings[c.insertionMode](t)
	}
	if c.trace && before != c.insertionMode {
		c.log.WithFields(logrus.Fields{"mode": c.insertionMode, "token": t}).Trace("insertion mode")
	}

	if !c.selfClosingAcknowledged {
		c.parseError(NonVoidHTMLElementStartTagWithTrailingSolidus, t)
	}
	if t.TokenType == EndOfFileToken {
		c.stopParsing()
	}
	return c.finishToken()
}

func (c *HTMLTreeConstructor) finishToken() *Progress {
	p := c.progress
	if len(c.openElements) > 0 {
		p.InForeignContent = c.doc.Node(c.adjustedCurrentNode()).Namespace != dom.Htmlns
	}
	return &p
}

// https://html.spec.whatwg.org/multipage/parsing.html#stop-parsing
func (c *HTMLTreeConstructor) stopParsing() {
	c.flushText()
	c.openElements = c.openElements[:0]
}

func (c *HTMLTreeConstructor) parseError(kind ErrorKind, t *Token) {
	e := ParseError{Kind: kind, Position: t.Pos}
	c.log.WithFields(logrus.Fields{
		"kind":   kind,
		"line":   e.Line,
		"col":    e.Column,
		"offset": e.Offset,
		"mode":   c.insertionMode,
	}).Debug("parse error")
	if c.errs != nil {
		c.errs.ReportError(e)
	}
}

// unexpected reports t as a token the current mode does not accept.
func (c *HTMLTreeConstructor) unexpected(t *Token) {
	switch t.TokenType {
	case StartTagToken:
		c.parseError(UnexpectedStartTag, t)
	case EndTagToken:
		c.parseError(UnexpectedEndTag, t)
	case DoctypeToken:
		c.parseError(UnexpectedDoctype, t)
	case EndOfFileToken:
		c.parseError(UnexpectedEOF, t)
	default:
		c.parseError(UnexpectedCharacter, t)
	}
}

// switchTokenizerTo asks the tokenizer to continue in state s.
func (c *HTMLTreeConstructor) switchTokenizerTo(s TokenizerState) {
	c.progress.TokenizerState = &s
}

func (c *HTMLTreeConstructor) acknowledgeSelfClosingTag() {
	c.selfClosingAcknowledged = true
}

// currentNode returns the node at the top of the stack of open elements.
func (c *HTMLTreeConstructor) currentNode() *dom.Node {
	id := c.openElements.top()
	if id == dom.Nil {
		panic(invariant("no current node in insertion mode %s", c.insertionMode))
	}
	return c.doc.Node(id)
}

// adjustedCurrentNode is the context element while parsing a fragment with
// only the root element open, and the current node otherwise.
func (c *HTMLTreeConstructor) adjustedCurrentNode() dom.NodeID {
	if c.context != dom.Nil && len(c.openElements) == 1 {
		return c.context
	}
	return c.openElements.top()
}

func (c *HTMLTreeConstructor) hasTemplateOnStack() bool {
	for _, id := range c.openElements {
		if c.doc.Node(id).IsHTML(atom.Template) {
			return true
		}
	}
	return false
}

func (c *HTMLTreeConstructor) currentTemplateMode() insertionMode {
	if n := len(c.templateInsertionModes); n > 0 {
		return c.templateInsertionModes[n-1]
	}
	panic(invariant("empty stack of template insertion modes"))
}

func (c *HTMLTreeConstructor) pushTemplateMode(m insertionMode) {
	c.templateInsertionModes = append(c.templateInsertionModes, m)
}

func (c *HTMLTreeConstructor) popTemplateMode() {
	if n := len(c.templateInsertionModes); n > 0 {
		c.templateInsertionModes = c.templateInsertionModes[:n-1]
	}
}

// insertionPoint is a position in the tree: before the child `before` of
// parent, or at the end of parent when before is dom.Nil.
type insertionPoint struct {
	parent, before dom.NodeID
}

// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) appropriatePlace(override dom.NodeID) insertionPoint {
	target := override
	if target == dom.Nil {
		target = c.openElements.top()
	}
	if target == dom.Nil {
		panic(invariant("no insertion target in insertion mode %s", c.insertionMode))
	}

	var p insertionPoint
	if c.fosterParenting && c.doc.Node(target).IsHTML(atom.Table, atom.Tbody, atom.Tfoot, atom.Thead, atom.Tr) {
		p = c.fosterParentPlace()
	} else {
		p = insertionPoint{parent: target}
	}

	if n := c.doc.Node(p.parent); n.IsHTML(atom.Template) {
		return insertionPoint{parent: n.Template}
	}
	return p
}

// fosterParentPlace locates the insertion point just before the last table
// on the stack, or inside a template opened after it.
func (c *HTMLTreeConstructor) fosterParentPlace() insertionPoint {
	lastTable, lastTemplate := -1, -1
	for i := len(c.openElements) - 1; i >= 0; i-- {
		n := c.doc.Node(c.openElements[i])
		if lastTable == -1 && n.IsHTML(atom.Table) {
			lastTable = i
		}
		if lastTemplate == -1 && n.IsHTML(atom.Template) {
			lastTemplate = i
		}
	}
	if lastTemplate != -1 && (lastTable == -1 || lastTemplate > lastTable) {
		return insertionPoint{parent: c.openElements[lastTemplate]}
	}
	if lastTable == -1 {
		return insertionPoint{parent: c.openElements[0]}
	}
	table := c.openElements[lastTable]
	if parent := c.doc.Parent(table); parent != dom.Nil {
		return insertionPoint{parent: parent, before: table}
	}
	return insertionPoint{parent: c.openElements[lastTable-1]}
}

func (c *HTMLTreeConstructor) insertAt(p insertionPoint, id dom.NodeID) {
	c.flushText()
	c.doc.InsertBefore(p.parent, id, p.before)
}

// insertNode inserts a detached node at the appropriate place.
func (c *HTMLTreeConstructor) insertNode(id dom.NodeID) {
	c.insertAt(c.appropriatePlace(dom.Nil), id)
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(data string) {
	p := c.appropriatePlace(dom.Nil)
	if c.doc.Node(p.parent).Type == dom.DocumentNode {
		return
	}
	if c.pending.active && c.pending.at == p {
		c.pending.buf.WriteString(data)
		return
	}
	c.flushText()
	c.pending.at = p
	c.pending.active = true
	c.pending.buf.WriteString(data)
}

// flushText writes accumulated characters to the tree. Every operation
// that inserts or moves nodes flushes first.
func (c *HTMLTreeConstructor) flushText() {
	if !c.pending.active {
		return
	}
	c.doc.InsertText(c.pending.at.parent, c.pending.at.before, c.pending.buf.String())
	c.pending.buf.Reset()
	c.pending.active = false
}

func (c *HTMLTreeConstructor) insertComment(t *Token, p insertionPoint) {
	c.insertAt(p, c.doc.CreateComment(t.Data))
}

// insertCommentLast appends a comment as the last child of parent.
func (c *HTMLTreeConstructor) insertCommentLast(t *Token, parent dom.NodeID) {
	c.insertComment(t, insertionPoint{parent: parent})
}

// createElementForToken creates a detached element in namespace ns.
// Attributes of foreign elements are adjusted; SVG tag names get their
// camel case spelling back.
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns dom.Namespace) dom.NodeID {
	name := t.TagName
	var attrs []dom.Attribute
	if ns == dom.Htmlns {
		attrs = make([]dom.Attribute, len(t.Attributes))
		for i, a := range t.Attributes {
			attrs[i] = dom.Attribute{Name: a.Name, Value: a.Value}
		}
	} else {
		if adjusted, ok := svgTagNameAdjustments[name]; ok && ns == dom.Svgns {
			name = adjusted
		}
		attrs = foreignAttributes(t.Attributes, ns)
	}
	return c.doc.CreateElement(name, ns, attrs)
}

// insertForeignElement creates an element for t, inserts it at the
// appropriate place and pushes it onto the stack of open elements.
func (c *HTMLTreeConstructor) insertForeignElement(t *Token, ns dom.Namespace) dom.NodeID {
	id := c.createElementForToken(t, ns)
	c.insertNode(id)
	c.openElements.push(id)
	return id
}

func (c *HTMLTreeConstructor) insertHTMLElement(t *Token) dom.NodeID {
	return c.insertForeignElement(t, dom.Htmlns)
}

// impliedTag is a start tag the parser acts on without it being in the
// input, like the head element of a document that never opened one.
func impliedTag(a atom.Atom, at *Token) *Token {
	return &Token{TokenType: StartTagToken, TagName: a.String(), Atom: a, Pos: at.Pos}
}

// parseGenericText inserts the element for t and continues in the text mode
// with the tokenizer in state s.
// https://html.spec.whatwg.org/multipage/parsing.html#generic-raw-text-element-parsing-algorithm
func (c *HTMLTreeConstructor) parseGenericText(t *Token, s TokenizerState) insertionMode {
	c.insertHTMLElement(t)
	c.switchTokenizerTo(s)
	c.originalInsertionMode = c.insertionMode
	return text
}

// addMissingAttributes copies attributes of t that id does not have yet.
func (c *HTMLTreeConstructor) addMissingAttributes(id dom.NodeID, t *Token) {
	n := c.doc.Node(id)
	for _, a := range t.Attributes {
		if _, ok := n.AttrValue(a.Name); !ok {
			n.Attr = append(n.Attr, dom.Attribute{Name: a.Name, Value: a.Value})
		}
	}
}

func isWhitespace(t *Token) bool {
	if t.TokenType != CharacterToken {
		return false
	}
	switch t.Data {
	case "\t", "\n", "\f", "\r", " ":
		return true
	}
	return false
}

func isStartTag(t *Token, atoms ...atom.Atom) bool {
	return t.TokenType == StartTagToken && isOneOf(t.Atom, atoms...)
}

func isEndTag(t *Token, atoms ...atom.Atom) bool {
	return t.TokenType == EndTagToken && isOneOf(t.Atom, atoms...)
}

func isOneOf(a atom.Atom, atoms ...atom.Atom) bool {
	if a == 0 {
		return false
	}
	for _, x := range atoms {
		if a == x {
			return true
		}
	}
	return false
}
