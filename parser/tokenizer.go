package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	input []rune
	pos   int

	// line and col locate the most recently consumed character; cursor is
	// the position parse errors and tokens are reported at.
	line, col   int
	lastNewline bool
	cursor      Position

	done                      bool
	returnState, currentState TokenizerState
	emittedTokens             []Token
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	inForeignContent          bool

	errs  ErrorSink
	log   logrus.FieldLogger
	trace bool
}

// NewHTMLTokenizer creates a tokenizer over an already decoded input. Parse
// errors are reported to sink, which may be nil.
func NewHTMLTokenizer(input string, sink ErrorSink) *HTMLTokenizer {
	return &HTMLTokenizer{
		input:        []rune(normalizeNewlines(input)),
		line:         1,
		tokenBuilder: newTokenBuilder(),
		errs:         sink,
		log:          discardLogger(),
	}
}

// normalizeNewlines replaces CR LF pairs and lone CRs with LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

func (p *HTMLTokenizer) setLogger(l logrus.FieldLogger) {
	p.log = l
	p.trace = traceEnabled(l)
}

// SwitchTo changes the lexical state the next character is consumed in. The
// tree constructor uses it after start tags whose contents are not markup.
func (p *HTMLTokenizer) SwitchTo(s TokenizerState) {
	if p.trace {
		p.log.WithField("state", s).Trace("tokenizer state switched")
	}
	p.currentState = s
}

// Insert places s in the input stream immediately after the last consumed
// character. Tokenization resumes with the inserted characters.
func (p *HTMLTokenizer) Insert(s string) {
	if s == "" {
		return
	}
	ins := []rune(normalizeNewlines(s))
	input := make([]rune, 0, len(p.input)+len(ins))
	input = append(input, p.input[:p.pos]...)
	input = append(input, ins...)
	p.input = append(input, p.input[p.pos:]...)
}

func (p *HTMLTokenizer) parseError(kind ErrorKind) {
	e := ParseError{Kind: kind, Position: p.cursor}
	p.log.WithFields(logrus.Fields{
		"kind":   kind,
		"line":   e.Line,
		"col":    e.Column,
		"offset": e.Offset,
	}).Debug("parse error")
	if p.errs != nil {
		p.errs.ReportError(e)
	}
}

// consume reads the next character of the input stream. At the end of the
// input it returns eof without moving.
func (p *HTMLTokenizer) consume() (rune, bool) {
	if p.pos >= len(p.input) {
		p.cursor = Position{Offset: p.pos, Line: p.line, Column: p.col + 1}
		return 0, true
	}
	r := p.input[p.pos]
	p.pos++
	if p.lastNewline {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.lastNewline = r == '\n'
	p.cursor = Position{Offset: p.pos - 1, Line: p.line, Column: p.col}

	switch {
	case isNonCharacter(int(r)):
		p.parseError(NoncharacterInInputStream)
	case r != 0 && isControl(int(r)) && !isASCIIWhitespace(int(r)):
		p.parseError(ControlCharacterInInputStream)
	}
	return r, false
}

// skip consumes n characters that a lookahead already matched.
func (p *HTMLTokenizer) skip(n int) {
	for i := 0; i < n; i++ {
		p.consume()
	}
}

// peek returns the next unconsumed character.
func (p *HTMLTokenizer) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// lookahead reports whether the current character r followed by the
// unconsumed input starts with s.
func (p *HTMLTokenizer) lookahead(r rune, eof bool, s string, foldCase bool) bool {
	want := []rune(s)
	if eof || p.pos+len(want)-1 > len(p.input) {
		return false
	}
	for i, w := range want {
		got := r
		if i > 0 {
			got = p.input[p.pos+i-1]
		}
		if foldCase {
			got, w = toASCIILower(got), toASCIILower(w)
		}
		if got != w {
			return false
		}
	}
	return true
}

func isNonCharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	return code <= 0x10FFFF && code&0xFFFE == 0xFFFE
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

// isHTMLSpace reports whether r is tab, line feed, form feed or space. Carriage
// returns never reach the state machine.
func isHTMLSpace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\f' || r == ' '
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIILower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isASCIIAlpha(r rune) bool {
	return isASCIIUpper(r) || isASCIILower(r)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func wasConsumedByAttribute(returnState TokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(p.returnState) {
		for _, v := range p.tokenBuilder.TempBuffer() {
			p.tokenBuilder.WriteAttributeValue(v)
		}
	} else {
		p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	}
}

// isApprEndTagToken reports whether the end tag being built matches the last
// start tag emitted. With no start tag emitted yet, no end tag matches.
func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName != "" && p.lastEmittedStartTagName == p.tokenBuilder.name.String()
}

func (p *HTMLTokenizer) emitChars(rs ...rune) {
	for _, r := range rs {
		p.emit(p.tokenBuilder.CharacterToken(r))
	}
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		token.Pos = p.cursor
		switch token.TokenType {
		case EndTagToken:
			if len(token.Attributes) > 0 {
				p.parseError(EndTagWithAttributes)
				token.Attributes = nil
			}
			if token.SelfClosing {
				p.parseError(EndTagWithTrailingSolidus)
				token.SelfClosing = false
			}
		case StartTagToken:
			p.lastEmittedStartTagName = token.TagName
		}
		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitCurrentTag() TokenizerState {
	p.tokenBuilder.CommitAttribute()
	switch p.tokenBuilder.curTagType {
	case startTag:
		p.emit(p.tokenBuilder.StartTagToken())
	case endTag:
		p.emit(p.tokenBuilder.EndTagToken())
	}
	return dataState
}

func (p *HTMLTokenizer) emitEOF() {
	p.emit(p.tokenBuilder.EndOfFileToken())
}

func (p *HTMLTokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		if ret.TokenType == EndOfFileToken {
			p.done = true
		}
		return &ret
	}
	return nil
}

// Next reports whether the end-of-file token has not been handed out yet.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next token. progress carries what the tree constructor
// learned from the previous token: a requested lexical state and whether
// the adjusted current node is foreign, which enables CDATA sections.
// After the end-of-file token every call returns another end-of-file token.
func (p *HTMLTokenizer) Token(progress *Progress) *Token {
	if progress != nil {
		p.inForeignContent = progress.InForeignContent
		if progress.TokenizerState != nil {
			p.SwitchTo(*progress.TokenizerState)
		}
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if token := p.takeLastEmittedToken(); token != nil {
			return token
		}
		if p.done {
			eof := p.tokenBuilder.EndOfFileToken()
			eof.Pos = p.cursor
			return &eof
		}
		r, eof := p.consume()
		p.processRune(r, eof)
	}
}

// processRune runs the state machine on one character. A state may ask for
// the character to be reconsumed in the next state, which can chain.
func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		prev := p.currentState
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
		if p.trace && prev != p.currentState {
			p.log.WithFields(logrus.Fields{"state": p.currentState, "rune": string(r)}).Trace("tokenizer")
		}
	}
}

// a parserStateHandler is a func that takes in a rune and a bool representing
// the endoffile and returns whether to reconsume the rune and the next state
// to transition to.
type parserStateHandler func(in rune, eof bool) (bool, TokenizerState)

func (p *HTMLTokenizer) stateToParser(state TokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	case namedCharacterReferenceState:
		return p.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return p.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return p.numericCharacterReferenceEndStateParser
	}

	panic(invariant("no handler for tokenizer state %s", state))
}
