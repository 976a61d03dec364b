package parser

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFBeforeTagName)
		p.emitChars('<')
		p.emitEOF()
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = startTag
		return true, tagNameState
	case r == '?':
		p.parseError(UnexpectedQuestionMarkInsteadOfTagName)
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.emitChars('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFBeforeTagName)
		p.emitChars('<', '/')
		p.emitEOF()
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		p.tokenBuilder.Reset()
		p.tokenBuilder.curTagType = endTag
		return true, tagNameState
	case r == '>':
		p.parseError(MissingEndTagName)
		return false, dataState
	default:
		p.parseError(InvalidFirstCharacterOfTagName)
		p.tokenBuilder.Reset()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch {
	case isHTMLSpace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, p.emitCurrentTag()
	case r == '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, tagNameState
	}
}

// startAttribute commits the attribute being built, if any, and starts an
// empty one.
func (p *HTMLTokenizer) startAttribute() {
	p.tokenBuilder.CommitAttribute()
}

// leaveAttributeName drops the attribute being built when its name is
// already on the tag.
func (p *HTMLTokenizer) leaveAttributeName() {
	if p.tokenBuilder.RemoveDuplicateAttributeName() {
		p.parseError(DuplicateAttribute)
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/', '>':
		return true, afterAttributeNameState
	case '=':
		p.parseError(UnexpectedEqualsSignBeforeAttributeName)
		p.startAttribute()
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.startAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.leaveAttributeName()
		return true, afterAttributeNameState
	}
	switch r {
	case '\t', '\n', '\f', ' ', '/', '>':
		p.leaveAttributeName()
		return true, afterAttributeNameState
	case '=':
		p.leaveAttributeName()
		return false, beforeAttributeValueState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeName('\uFFFD')
	case '"', '\'', '<':
		p.parseError(UnexpectedCharacterInAttributeName)
		p.tokenBuilder.WriteAttributeName(r)
	default:
		p.tokenBuilder.WriteAttributeName(toASCIILower(r))
	}
	return false, attributeNameState
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.startAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		p.parseError(MissingAttributeValue)
		return false, p.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

// quotedAttributeValue handles both quoted attribute value states.
func (p *HTMLTokenizer) quotedAttributeValue(r rune, eof bool, quote rune, self TokenizerState) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = self
		return false, characterReferenceState
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
	default:
		p.tokenBuilder.WriteAttributeValue(r)
	}
	return false, self
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.quotedAttributeValue(r, eof, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	return p.quotedAttributeValue(r, eof, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case '>':
		return false, p.emitCurrentTag()
	case '\u0000':
		p.parseError(UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
	case '"', '\'', '<', '=', '`':
		p.parseError(UnexpectedCharacterInUnquotedAttributeValue)
		p.tokenBuilder.WriteAttributeValue(r)
	default:
		p.tokenBuilder.WriteAttributeValue(r)
	}
	return false, attributeValueUnquotedState
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.parseError(MissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, TokenizerState) {
	if eof {
		p.parseError(EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	if r == '>' {
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	}
	p.parseError(UnexpectedSolidusInTag)
	return true, beforeAttributeNameState
}
