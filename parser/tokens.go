package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"
)

// TokenType is the kind of a Token.
type TokenType uint8

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	EndOfFileToken
	CommentToken
	DoctypeToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Character"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case EndOfFileToken:
		return "EndOfFile"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "DOCTYPE"
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// Attribute is a name/value pair of a tag token.
type Attribute struct {
	Name  string
	Value string
}

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType TokenType

	// TagName is the lowercased name of a tag, or the name of a doctype.
	TagName string
	Atom    atom.Atom

	// Attributes are kept in source order. Only the first occurrence of a
	// name is recorded.
	Attributes  []Attribute
	SelfClosing bool

	// Data is the text of a comment, or the single character of a
	// character token.
	Data string

	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
	ForceQuirks bool

	// Pos is the position of the character that completed the token.
	Pos Position
}

// Attr returns the value of the named attribute.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t *Token) String() string {
	switch t.TokenType {
	case CharacterToken:
		return fmt.Sprintf("Character %q", t.Data)
	case StartTagToken, EndTagToken:
		var b strings.Builder
		b.WriteString(t.TokenType.String())
		b.WriteString(" <")
		b.WriteString(t.TagName)
		for _, a := range t.Attributes {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			b.WriteString(" /")
		}
		b.WriteByte('>')
		return b.String()
	case CommentToken:
		return fmt.Sprintf("Comment %q", t.Data)
	case DoctypeToken:
		return fmt.Sprintf("DOCTYPE %q public=%q system=%q quirks=%v", t.TagName, t.PublicID, t.SystemID, t.ForceQuirks)
	}
	return t.TokenType.String()
}

type tagType uint8

const (
	startTag tagType = iota
	endTag
)

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes             []Attribute
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	hasPublicID            bool
	hasSystemID            bool
	selfClosing            bool
	forceQuirks            bool
	removeNextAttr         bool
	curTagType             tagType
	characterReferenceCode int
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears everything but the temporary buffer, which outlives the
// token it was collected for in the end tag name states.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
	t.curTagType = startTag
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// StartPublicIdentifier marks the public identifier present but empty.
func (t *TokenBuilder) StartPublicIdentifier() {
	t.hasPublicID = true
	t.publicID.Reset()
}

// StartSystemIdentifier marks the system identifier present but empty.
func (t *TokenBuilder) StartSystemIdentifier() {
	t.hasSystemID = true
	t.systemID.Reset()
}

func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// WriteData appends a character to the current comment.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteName appends a character to the current tag or doctype name.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// RemoveDuplicateAttributeName checks if the current name is already
// in the list of commited attributes. If so, the attribute will be dropped
// when it is committed.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	k := t.attributeKey.String()
	for _, a := range t.attributes {
		if a.Name == k {
			t.removeNextAttr = true
			return true
		}
	}
	return false
}

// CommitAttribute ends the creation of a key/value
// pair by copying the name and value fields into the
// attribute list and clearing the name and value fields.
func (t *TokenBuilder) CommitAttribute() {
	if !t.removeNextAttr && t.attributeKey.Len() > 0 {
		t.attributes = append(t.attributes, Attribute{
			Name:  t.attributeKey.String(),
			Value: t.attributeValue.String(),
		})
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a character to the temporary buffer of the current
// state.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer just returns the string version of the current buffer conents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TempBufferCharTokens returns one character token per rune of the temporary
// buffer.
func (t *TokenBuilder) TempBufferCharTokens() []Token {
	s := t.tempBuffer.String()
	tokens := make([]Token, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, t.CharacterToken(r))
	}
	return tokens
}

// SetCharRef sets the character reference code.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// GetCharRef returns the character reference code.
func (t *TokenBuilder) GetCharRef() int {
	return t.characterReferenceCode
}

// AccumulateCharRef multiplies the character reference code by base and adds
// digit. The code saturates just above the Unicode range so that long digit
// runs cannot overflow.
func (t *TokenBuilder) AccumulateCharRef(base, digit int) {
	t.characterReferenceCode = t.characterReferenceCode*base + digit
	if t.characterReferenceCode > 0x10FFFF {
		t.characterReferenceCode = 0x110000
	}
}

func (t *TokenBuilder) tagToken(tt TokenType) Token {
	name := t.name.String()
	return Token{
		TokenType:   tt,
		TagName:     name,
		Atom:        atom.Lookup([]byte(name)),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// StartTagToken creates a start tag token from the builder
// contents.
func (t *TokenBuilder) StartTagToken() Token {
	return t.tagToken(StartTagToken)
}

// EndTagToken creates an end tag token from the builder
// contents.
func (t *TokenBuilder) EndTagToken() Token {
	return t.tagToken(EndTagToken)
}

// CharacterToken creates a character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: CharacterToken,
		Data:      string(r),
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: EndOfFileToken,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: CommentToken,
		Data:      t.data.String(),
	}
}

// DoctypeToken creates a doc type token from the builder contents.
func (t *TokenBuilder) DoctypeToken() Token {
	return Token{
		TokenType:   DoctypeToken,
		TagName:     t.name.String(),
		ForceQuirks: t.forceQuirks,
		PublicID:    t.publicID.String(),
		SystemID:    t.systemID.String(),
		HasPublicID: t.hasPublicID,
		HasSystemID: t.hasSystemID,
	}
}
