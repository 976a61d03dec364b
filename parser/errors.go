package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is a stable identifier for a recoverable markup error.
type ErrorKind uint8

// Tokenizer errors use the identifiers of
// https://html.spec.whatwg.org/multipage/parsing.html#parse-errors.
const (
	noError ErrorKind = iota
	AbruptClosingOfEmptyComment
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	AbsenceOfDigitsInNumericCharacterReference
	CDATAInHTMLContent
	CharacterReferenceOutsideUnicodeRange
	ControlCharacterInInputStream
	ControlCharacterReference
	DuplicateAttribute
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	EOFBeforeTagName
	EOFInCDATA
	EOFInComment
	EOFInDoctype
	EOFInScriptHTMLCommentLikeText
	EOFInTag
	IncorrectlyClosedComment
	IncorrectlyOpenedComment
	InvalidCharacterSequenceAfterDoctypeName
	InvalidFirstCharacterOfTagName
	MissingAttributeValue
	MissingDoctypeName
	MissingDoctypePublicIdentifier
	MissingDoctypeSystemIdentifier
	MissingEndTagName
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	MissingSemicolonAfterCharacterReference
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceBetweenAttributes
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	NestedComment
	NoncharacterCharacterReference
	NoncharacterInInputStream
	NonVoidHTMLElementStartTagWithTrailingSolidus
	NullCharacterReference
	SurrogateCharacterReference
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedNullCharacter
	UnexpectedQuestionMarkInsteadOfTagName
	UnexpectedSolidusInTag
	UnknownNamedCharacterReference

	// Tree construction errors have no standard identifiers.
	MissingDoctype
	NonConformingDoctype
	UnexpectedDoctype
	UnexpectedStartTag
	UnexpectedEndTag
	UnexpectedCharacter
	UnexpectedEOF
	EOFWithOpenElements
	MisnestedFormattingElement
	FosterParentedContent
)

var errorKindNames = [...]string{
	noError:                                    "no-error",
	AbruptClosingOfEmptyComment:                "abrupt-closing-of-empty-comment",
	AbruptDoctypePublicIdentifier:              "abrupt-doctype-public-identifier",
	AbruptDoctypeSystemIdentifier:              "abrupt-doctype-system-identifier",
	AbsenceOfDigitsInNumericCharacterReference: "absence-of-digits-in-numeric-character-reference",
	CDATAInHTMLContent:                         "cdata-in-html-content",
	CharacterReferenceOutsideUnicodeRange:      "character-reference-outside-unicode-range",
	ControlCharacterInInputStream:              "control-character-in-input-stream",
	ControlCharacterReference:                  "control-character-reference",
	DuplicateAttribute:                         "duplicate-attribute",
	EndTagWithAttributes:                       "end-tag-with-attributes",
	EndTagWithTrailingSolidus:                  "end-tag-with-trailing-solidus",
	EOFBeforeTagName:                           "eof-before-tag-name",
	EOFInCDATA:                                 "eof-in-cdata",
	EOFInComment:                               "eof-in-comment",
	EOFInDoctype:                               "eof-in-doctype",
	EOFInScriptHTMLCommentLikeText:             "eof-in-script-html-comment-like-text",
	EOFInTag:                                   "eof-in-tag",
	IncorrectlyClosedComment:                   "incorrectly-closed-comment",
	IncorrectlyOpenedComment:                   "incorrectly-opened-comment",
	InvalidCharacterSequenceAfterDoctypeName:   "invalid-character-sequence-after-doctype-name",
	InvalidFirstCharacterOfTagName:             "invalid-first-character-of-tag-name",
	MissingAttributeValue:                      "missing-attribute-value",
	MissingDoctypeName:                         "missing-doctype-name",
	MissingDoctypePublicIdentifier:             "missing-doctype-public-identifier",
	MissingDoctypeSystemIdentifier:             "missing-doctype-system-identifier",
	MissingEndTagName:                          "missing-end-tag-name",
	MissingQuoteBeforeDoctypePublicIdentifier:  "missing-quote-before-doctype-public-identifier",
	MissingQuoteBeforeDoctypeSystemIdentifier:  "missing-quote-before-doctype-system-identifier",
	MissingSemicolonAfterCharacterReference:    "missing-semicolon-after-character-reference",
	MissingWhitespaceAfterDoctypePublicKeyword: "missing-whitespace-after-doctype-public-keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword: "missing-whitespace-after-doctype-system-keyword",
	MissingWhitespaceBeforeDoctypeName:         "missing-whitespace-before-doctype-name",
	MissingWhitespaceBetweenAttributes:         "missing-whitespace-between-attributes",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "missing-whitespace-between-doctype-public-and-system-identifiers",
	NestedComment:                                   "nested-comment",
	NoncharacterCharacterReference:                  "noncharacter-character-reference",
	NoncharacterInInputStream:                       "noncharacter-in-input-stream",
	NonVoidHTMLElementStartTagWithTrailingSolidus:   "non-void-html-element-start-tag-with-trailing-solidus",
	NullCharacterReference:                          "null-character-reference",
	SurrogateCharacterReference:                     "surrogate-character-reference",
	UnexpectedCharacterAfterDoctypeSystemIdentifier: "unexpected-character-after-doctype-system-identifier",
	UnexpectedCharacterInAttributeName:              "unexpected-character-in-attribute-name",
	UnexpectedCharacterInUnquotedAttributeValue:     "unexpected-character-in-unquoted-attribute-value",
	UnexpectedEqualsSignBeforeAttributeName:         "unexpected-equals-sign-before-attribute-name",
	UnexpectedNullCharacter:                         "unexpected-null-character",
	UnexpectedQuestionMarkInsteadOfTagName:          "unexpected-question-mark-instead-of-tag-name",
	UnexpectedSolidusInTag:                          "unexpected-solidus-in-tag",
	UnknownNamedCharacterReference:                  "unknown-named-character-reference",
	MissingDoctype:                                  "missing-doctype",
	NonConformingDoctype:                            "non-conforming-doctype",
	UnexpectedDoctype:                               "unexpected-doctype",
	UnexpectedStartTag:                              "unexpected-start-tag",
	UnexpectedEndTag:                                "unexpected-end-tag",
	UnexpectedCharacter:                             "unexpected-character",
	UnexpectedEOF:                                   "unexpected-eof",
	EOFWithOpenElements:                             "eof-with-open-elements",
	MisnestedFormattingElement:                      "misnested-formatting-element",
	FosterParentedContent:                           "foster-parented-content",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Position locates a character in the newline-normalized input stream.
// Offset counts scalar values from zero; Line and Column start at one.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a recoverable deviation from conforming markup.
type ParseError struct {
	Kind ErrorKind
	Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Kind)
}

// ErrorSink receives parse errors in input order. It is written to by the
// tokenizer and the tree constructor and never read by either.
type ErrorSink interface {
	ReportError(ParseError)
}

// ErrorList is an ErrorSink that keeps every error, up to an optional cap.
type ErrorList struct {
	Errors []ParseError
	Max    int
}

func (l *ErrorList) ReportError(e ParseError) {
	if l.Max > 0 && len(l.Errors) >= l.Max {
		return
	}
	l.Errors = append(l.Errors, e)
}

// InvariantError is the panic value raised when the state machine reaches a
// state that well-formed or malformed input alike can never produce. It marks
// a defect in the parser and is never recovered.
type InvariantError struct {
	cause error
}

func invariant(format string, args ...interface{}) *InvariantError {
	return &InvariantError{cause: errors.WithStack(errors.Errorf(format, args...))}
}

func (e *InvariantError) Error() string {
	return "html: invariant violated: " + e.cause.Error()
}

func (e *InvariantError) Cause() error {
	return e.cause
}

// Format prints the stack captured at the violation with %+v.
func (e *InvariantError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "html: invariant violated: %+v", e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}
