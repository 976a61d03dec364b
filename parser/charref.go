package parser

// https://html.spec.whatwg.org/multipage/parsing.html#character-reference-state
func (p *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, TokenizerState) {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')
	switch {
	case !eof && isASCIIAlphanumeric(r):
		return true, namedCharacterReferenceState
	case !eof && r == '#':
		p.tokenBuilder.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	default:
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
}

// namedCharacterReferenceStateParser is entered with the first character of
// the name. It matches the longest name in the table against that character
// and the input following it, consuming only the matched characters.
func (p *HTMLTokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, TokenizerState) {
	candidate := []rune{r}
	for i := p.pos; i < len(p.input) && len(candidate) < longestCharacterReference; i++ {
		c := p.input[i]
		if !isASCIIAlphanumeric(c) && c != ';' {
			break
		}
		candidate = append(candidate, c)
		if c == ';' {
			break
		}
	}

	for n := len(candidate); n > 0; n-- {
		value, ok := namedCharacterReferences[string(candidate[:n])]
		if !ok {
			continue
		}
		p.skip(n - 1)
		for _, c := range candidate[:n] {
			p.tokenBuilder.WriteTempBuffer(c)
		}
		terminated := candidate[n-1] == ';'
		if !terminated && wasConsumedByAttribute(p.returnState) {
			// historical: "&amp=" and "&ampx" stay literal inside attributes.
			if next, ok := p.peek(); ok && (next == '=' || isASCIIAlphanumeric(next)) {
				p.flushCodePointsAsCharacterReference()
				return false, p.returnState
			}
		}
		if !terminated {
			p.parseError(MissingSemicolonAfterCharacterReference)
		}
		p.tokenBuilder.ResetTempBuffer()
		for _, c := range value {
			p.tokenBuilder.WriteTempBuffer(c)
		}
		p.flushCodePointsAsCharacterReference()
		return false, p.returnState
	}

	p.flushCodePointsAsCharacterReference()
	return true, ambiguousAmpersandState
}

func (p *HTMLTokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, TokenizerState) {
	switch {
	case eof:
		return true, p.returnState
	case isASCIIAlphanumeric(r):
		if wasConsumedByAttribute(p.returnState) {
			p.tokenBuilder.WriteAttributeValue(r)
		} else {
			p.emitChars(r)
		}
		return false, ambiguousAmpersandState
	case r == ';':
		p.parseError(UnknownNamedCharacterReference)
		return true, p.returnState
	default:
		return true, p.returnState
	}
}

func (p *HTMLTokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, TokenizerState) {
	p.tokenBuilder.SetCharRef(0)
	if !eof && (r == 'x' || r == 'X') {
		p.tokenBuilder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	p.parseError(AbsenceOfDigitsInNumericCharacterReference)
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, TokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	p.parseError(AbsenceOfDigitsInNumericCharacterReference)
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, TokenizerState) {
	switch {
	case eof:
	case isASCIIDigit(r):
		p.tokenBuilder.AccumulateCharRef(16, int(r-'0'))
		return false, hexadecimalCharacterReferenceState
	case r >= 'A' && r <= 'F':
		p.tokenBuilder.AccumulateCharRef(16, int(r-'A'+10))
		return false, hexadecimalCharacterReferenceState
	case r >= 'a' && r <= 'f':
		p.tokenBuilder.AccumulateCharRef(16, int(r-'a'+10))
		return false, hexadecimalCharacterReferenceState
	case r == ';':
		p.finishNumericCharacterReference()
		return false, p.returnState
	}
	p.parseError(MissingSemicolonAfterCharacterReference)
	return true, numericCharacterReferenceEndState
}

func (p *HTMLTokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, TokenizerState) {
	switch {
	case eof:
	case isASCIIDigit(r):
		p.tokenBuilder.AccumulateCharRef(10, int(r-'0'))
		return false, decimalCharacterReferenceState
	case r == ';':
		p.finishNumericCharacterReference()
		return false, p.returnState
	}
	p.parseError(MissingSemicolonAfterCharacterReference)
	return true, numericCharacterReferenceEndState
}

var numericCharacterReferenceEndStateTable = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// numericCharacterReferenceEndStateParser is only ever entered to reconsume
// the character that ended the digits. It consumes nothing itself, so that
// character is handed on to the return state.
func (p *HTMLTokenizer) numericCharacterReferenceEndStateParser(r rune, eof bool) (bool, TokenizerState) {
	p.finishNumericCharacterReference()
	return true, p.returnState
}

func (p *HTMLTokenizer) finishNumericCharacterReference() {
	code := p.tokenBuilder.GetCharRef()
	switch {
	case code == 0:
		p.parseError(NullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		p.parseError(CharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case isSurrogate(code):
		p.parseError(SurrogateCharacterReference)
		code = 0xFFFD
	case isNonCharacter(code):
		p.parseError(NoncharacterCharacterReference)
	case code == 0x0D || (isControl(code) && !isASCIIWhitespace(code)):
		p.parseError(ControlCharacterReference)
		if remapped, ok := numericCharacterReferenceEndStateTable[code]; ok {
			code = int(remapped)
		}
	}

	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
}
