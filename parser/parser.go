package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gobrowse/engine/parser/dom"
)

// Parser drives a tokenizer and a tree constructor over one input.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor

	cfg  Config
	errs *ErrorList
	log  logrus.FieldLogger

	// scriptEnds holds, for every script output still being tokenized, the
	// input offset just past it. A script closed by the last character of an
	// output is still nested in it. Its length is the current nesting depth.
	scriptEnds []int
}

// NewParser creates a parser for a decoded input.
func NewParser(input string, cfg Config) *Parser {
	p := &Parser{cfg: cfg, log: cfg.logger()}
	if cfg.Errors == nil {
		p.errs = &ErrorList{Max: cfg.MaxErrors}
		p.cfg.Errors = p.errs
	}
	p.Tokenizer = NewHTMLTokenizer(input, p.cfg.Errors)
	p.Tokenizer.setLogger(p.log)
	p.TreeConstructor = NewHTMLTreeConstructor(p.cfg)
	return p
}

// Progress is what the tree constructor hands back to the tokenizer after
// each token.
type Progress struct {
	// InForeignContent is set when the adjusted current node is not an HTML
	// element. CDATA sections are only recognized then.
	InForeignContent bool

	// TokenizerState, when set, is the state to continue tokenizing in.
	TokenizerState *TokenizerState

	// Script is a script element that was just closed and must run before
	// the next token.
	Script dom.NodeID
}

// Result is a parsed document.
type Result struct {
	Document *dom.Document

	// Errors is nil when Config.Errors was set.
	Errors []ParseError

	// StyleSheets holds the text of each style element, in document order.
	StyleSheets []string
}

// Parse parses a decoded document.
func Parse(input string, cfg Config) *Result {
	return NewParser(input, cfg).Start()
}

// ParseReader reads r to the end and parses it as UTF-8. Callers that need
// encoding sniffing wrap r with golang.org/x/net/html/charset first.
func ParseReader(r io.Reader, cfg Config) (*Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading html input")
	}
	return Parse(string(b), cfg), nil
}

// Start runs the parse to the end of the input.
func (p *Parser) Start() *Result {
	p.run(nil)
	res := &Result{
		Document:    p.TreeConstructor.Document(),
		StyleSheets: p.TreeConstructor.StyleSheets(),
	}
	if p.errs != nil {
		res.Errors = p.errs.Errors
	}
	return res
}

// run alternates between the two stages until the end-of-file token has
// been processed. progress seeds the first call to the tokenizer.
func (p *Parser) run(progress *Progress) {
	for p.Tokenizer.Next() {
		t := p.Tokenizer.Token(progress)
		progress = p.TreeConstructor.ProcessToken(t)
		if progress.Script != dom.Nil {
			p.runScript(progress.Script)
		}
	}
}

// runScript executes a closed script element and feeds its output back
// into the input right after the script's end tag.
func (p *Parser) runScript(script dom.NodeID) {
	pos := p.Tokenizer.pos
	n := 0
	for n < len(p.scriptEnds) && p.scriptEnds[n] >= pos {
		n++
	}
	p.scriptEnds = p.scriptEnds[:n]
	if len(p.scriptEnds) >= maxScriptNesting {
		p.log.WithField("depth", len(p.scriptEnds)).Debug("script nesting limit reached")
		return
	}

	out := p.cfg.Script(p.TreeConstructor.Document(), script)
	if out == "" {
		return
	}
	before := len(p.Tokenizer.input)
	p.Tokenizer.Insert(out)
	inserted := len(p.Tokenizer.input) - before
	for i := range p.scriptEnds {
		p.scriptEnds[i] += inserted
	}
	p.scriptEnds = append(p.scriptEnds, pos+inserted)
}
