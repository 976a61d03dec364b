package parser

func (p *HTMLTokenizer) emitComment() {
	p.emit(p.tokenBuilder.CommentToken())
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '>':
		p.emitComment()
		return false, dataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteData('\uFFFD')
	default:
		p.tokenBuilder.WriteData(r)
	}
	return false, bogusCommentState
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	switch {
	case p.lookahead(r, eof, "--", false):
		p.skip(1)
		p.tokenBuilder.Reset()
		return false, commentStartState
	case p.lookahead(r, eof, "doctype", true):
		p.skip(6)
		return false, doctypeState
	case p.lookahead(r, eof, "[CDATA[", false):
		p.skip(6)
		if p.inForeignContent {
			return false, cdataSectionState
		}
		p.parseError(CDATAInHTMLContent)
		p.tokenBuilder.Reset()
		for _, c := range "[CDATA[" {
			p.tokenBuilder.WriteData(c)
		}
		return false, bogusCommentState
	default:
		p.parseError(IncorrectlyOpenedComment)
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			p.parseError(AbruptClosingOfEmptyComment)
			p.emitComment()
			return false, dataState
		}
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInComment)
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.parseError(AbruptClosingOfEmptyComment)
		p.emitComment()
		return false, dataState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInComment)
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '<':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteData('\uFFFD')
	default:
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof {
		switch r {
		case '!':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignBangState
		case '<':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r != '>' {
		p.parseError(NestedComment)
	}
	return true, commentEndState
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInComment)
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	if r == '-' {
		return false, commentEndState
	}
	p.tokenBuilder.WriteData('-')
	return true, commentState
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInComment)
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '>':
		p.emitComment()
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInComment)
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '-':
		for _, c := range "--!" {
			p.tokenBuilder.WriteData(c)
		}
		return false, commentEndDashState
	case '>':
		p.parseError(IncorrectlyClosedComment)
		p.emitComment()
		return false, dataState
	default:
		for _, c := range "--!" {
			p.tokenBuilder.WriteData(c)
		}
		return true, commentState
	}
}

// emitDoctypeAtEOF handles end of input in every doctype state.
func (p *HTMLTokenizer) emitDoctypeAtEOF() (bool, TokenizerState) {
	p.parseError(EOFInDoctype)
	p.tokenBuilder.EnableForceQuirks()
	p.emit(p.tokenBuilder.DoctypeToken())
	p.emitEOF()
	return false, dataState
}

func (p *HTMLTokenizer) emitDoctype() TokenizerState {
	p.emit(p.tokenBuilder.DoctypeToken())
	return dataState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.tokenBuilder.Reset()
		return p.emitDoctypeAtEOF()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeNameState
	case '>':
		return true, beforeDoctypeNameState
	default:
		p.parseError(MissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	p.tokenBuilder.Reset()
	if eof {
		return p.emitDoctypeAtEOF()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeNameState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
	case '>':
		p.parseError(MissingDoctypeName)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeNameState
	case '>':
		return false, p.emitDoctype()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
	}
	return false, doctypeNameState
}

// bogusDoctype marks the doctype as forcing quirks and skips to its end.
func (p *HTMLTokenizer) bogusDoctype(kind ErrorKind) (bool, TokenizerState) {
	p.parseError(kind)
	p.tokenBuilder.EnableForceQuirks()
	return true, bogusDoctypeState
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	switch {
	case isHTMLSpace(r):
		return false, afterDoctypeNameState
	case r == '>':
		return false, p.emitDoctype()
	case p.lookahead(r, eof, "public", true):
		p.skip(5)
		return false, afterDoctypePublicKeywordState
	case p.lookahead(r, eof, "system", true):
		p.skip(5)
		return false, afterDoctypeSystemKeywordState
	default:
		return p.bogusDoctype(InvalidCharacterSequenceAfterDoctypeName)
	}
}

// afterDoctypeKeyword handles the states right after the PUBLIC and SYSTEM
// keywords, and the states before the identifiers when space is false.
func (p *HTMLTokenizer) afterDoctypeKeyword(r rune, eof bool, system, space bool) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	self, before := afterDoctypePublicKeywordState, beforeDoctypePublicIdentifierState
	dq, sq := doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState
	missingSpace, missingID, missingQuote := MissingWhitespaceAfterDoctypePublicKeyword, MissingDoctypePublicIdentifier, MissingQuoteBeforeDoctypePublicIdentifier
	if system {
		self, before = afterDoctypeSystemKeywordState, beforeDoctypeSystemIdentifierState
		dq, sq = doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState
		missingSpace, missingID, missingQuote = MissingWhitespaceAfterDoctypeSystemKeyword, MissingDoctypeSystemIdentifier, MissingQuoteBeforeDoctypeSystemIdentifier
	}
	if !space {
		self = before
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		if space {
			return false, before
		}
		return false, self
	case '"', '\'':
		if space {
			p.parseError(missingSpace)
		}
		if system {
			p.tokenBuilder.StartSystemIdentifier()
		} else {
			p.tokenBuilder.StartPublicIdentifier()
		}
		if r == '"' {
			return false, dq
		}
		return false, sq
	case '>':
		p.parseError(missingID)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		return p.bogusDoctype(missingQuote)
	}
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterDoctypeKeyword(r, eof, false, true)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterDoctypeKeyword(r, eof, false, false)
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterDoctypeKeyword(r, eof, true, true)
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterDoctypeKeyword(r, eof, true, false)
}

// doctypeIdentifier handles the four quoted identifier states.
func (p *HTMLTokenizer) doctypeIdentifier(r rune, eof bool, quote rune, system bool, self TokenizerState) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	write, after, abrupt := p.tokenBuilder.WritePublicIdentifier, afterDoctypePublicIdentifierState, AbruptDoctypePublicIdentifier
	if system {
		write, after, abrupt = p.tokenBuilder.WriteSystemIdentifier, afterDoctypeSystemIdentifierState, AbruptDoctypeSystemIdentifier
	}
	switch r {
	case quote:
		return false, after
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		write('\uFFFD')
	case '>':
		p.parseError(abrupt)
		p.tokenBuilder.EnableForceQuirks()
		return false, p.emitDoctype()
	default:
		write(r)
	}
	return false, self
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', false, doctypePublicIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', false, doctypePublicIdentifierSingleQuotedState)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', true, doctypeSystemIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', true, doctypeSystemIdentifierSingleQuotedState)
}

// afterPublicIdentifier handles the after public identifier state and, when
// space is false, the state between the two identifiers.
func (p *HTMLTokenizer) afterPublicIdentifier(r rune, eof bool, space bool) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		return false, p.emitDoctype()
	case '"', '\'':
		if space {
			p.parseError(MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		}
		p.tokenBuilder.StartSystemIdentifier()
		if r == '"' {
			return false, doctypeSystemIdentifierDoubleQuotedState
		}
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		return p.bogusDoctype(MissingQuoteBeforeDoctypeSystemIdentifier)
	}
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterPublicIdentifier(r, eof, true)
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.afterPublicIdentifier(r, eof, false)
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		return p.emitDoctypeAtEOF()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeSystemIdentifierState
	case '>':
		return false, p.emitDoctype()
	default:
		p.parseError(UnexpectedCharacterAfterDoctypeSystemIdentifier)
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.DoctypeToken())
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '>':
		return false, p.emitDoctype()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
	}
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInCDATA)
		p.emitEOF()
		return false, dataState
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	p.emitChars(r)
	return false, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	p.emitChars(']')
	return true, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof {
		switch r {
		case ']':
			p.emitChars(']')
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	p.emitChars(']', ']')
	return true, cdataSectionState
}
