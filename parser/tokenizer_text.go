package parser

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars(r)
		return false, dataState
	default:
		p.emitChars(r)
		return false, dataState
	}
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitEOF()
		return false, rcDataState
	}
	switch r {
	case '&':
		p.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, rcDataState
	default:
		p.emitChars(r)
		return false, rcDataState
	}
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitEOF()
		return false, rawTextState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, rawTextState
	default:
		p.emitChars(r)
		return false, rawTextState
	}
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitEOF()
		return false, scriptDataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataState
	default:
		p.emitChars(r)
		return false, scriptDataState
	}
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.emitEOF()
		return false, plaintextState
	}
	if r == '\u0000' {
		p.parseError(UnexpectedNullCharacter)
		r = '\uFFFD'
	}
	p.emitChars(r)
	return false, plaintextState
}

// lessThanSign handles the '<' states of RCDATA and RAWTEXT, which only
// differ in the states they move to.
func (p *HTMLTokenizer) lessThanSign(r rune, eof bool, text, endTagOpen TokenizerState) (bool, TokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitChars('<')
	return true, text
}

// endTagOpen handles the "</" states of the text content models.
func (p *HTMLTokenizer) endTagOpen(r rune, eof bool, text, endTagName TokenizerState) (bool, TokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, endTagName
	}
	p.emitChars('<', '/')
	return true, text
}

// endTagName handles the end tag name states of the text content models. The
// end tag is only recognized if it is appropriate; otherwise everything since
// the '<' is emitted as text.
func (p *HTMLTokenizer) endTagName(r rune, eof bool, text, self TokenizerState) (bool, TokenizerState) {
	if !eof {
		switch {
		case isHTMLSpace(r):
			if p.isApprEndTagToken() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if p.isApprEndTagToken() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if p.isApprEndTagToken() {
				return false, p.emitCurrentTag()
			}
		case isASCIIAlpha(r):
			p.tokenBuilder.WriteName(toASCIILower(r))
			p.tokenBuilder.WriteTempBuffer(r)
			return false, self
		}
	}
	p.emitChars('<', '/')
	p.emit(p.tokenBuilder.TempBufferCharTokens()...)
	return true, text
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.lessThanSign(r, eof, rcDataState, rcDataEndTagOpenState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagOpen(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagName(r, eof, rcDataState, rcDataEndTagNameState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.lessThanSign(r, eof, rawTextState, rawTextEndTagOpenState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagOpen(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagName(r, eof, rawTextState, rawTextEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '!' {
		p.emitChars('<', '!')
		return false, scriptDataEscapeStartState
	}
	return p.lessThanSign(r, eof, scriptDataState, scriptDataEndTagOpenState)
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagOpen(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagName(r, eof, scriptDataState, scriptDataEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '-' {
		p.emitChars('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '-' {
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedDashState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedDashDashState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitChars('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChars('<')
		return true, scriptDataDoubleEscapeStartState
	}
	return p.lessThanSign(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagOpenState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagOpen(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.endTagName(r, eof, scriptDataEscapedState, scriptDataEscapedEndTagNameState)
}

// doubleEscapeBoundary handles the states that look for a "script" tag name
// to enter or leave the double escaped state.
func (p *HTMLTokenizer) doubleEscapeBoundary(r rune, eof bool, self, onScript, otherwise TokenizerState) (bool, TokenizerState) {
	if eof {
		return true, otherwise
	}
	switch {
	case isHTMLSpace(r) || r == '/' || r == '>':
		p.emitChars(r)
		if p.tokenBuilder.TempBuffer() == "script" {
			return false, onScript
		}
		return false, otherwise
	case isASCIIAlpha(r):
		p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
		p.emitChars(r)
		return false, self
	default:
		return true, otherwise
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedDashState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedDashDashState
	}
	switch r {
	case '-':
		p.emitChars('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChars('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitChars('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.emitChars('\uFFFD')
		return false, scriptDataDoubleEscapedState
	default:
		p.emitChars(r)
		return false, scriptDataDoubleEscapedState
	}
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChars('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}
