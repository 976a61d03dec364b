package parser

import "fmt"

// TokenizerState is a lexical state of the tokenizer.
type TokenizerState uint8

const (
	dataState TokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

// The content states the tree constructor switches the tokenizer into.
const (
	DataState         = dataState
	RCDataState       = rcDataState
	RawTextState      = rawTextState
	ScriptDataState   = scriptDataState
	PlaintextState    = plaintextState
	CDATASectionState = cdataSectionState
)

var tokenizerStateNames = [...]string{
	dataState:                                "dataState",
	rcDataState:                              "rcDataState",
	rawTextState:                             "rawTextState",
	scriptDataState:                          "scriptDataState",
	plaintextState:                           "plaintextState",
	tagOpenState:                             "tagOpenState",
	endTagOpenState:                          "endTagOpenState",
	tagNameState:                             "tagNameState",
	rcDataLessThanSignState:                  "rcDataLessThanSignState",
	rcDataEndTagOpenState:                    "rcDataEndTagOpenState",
	rcDataEndTagNameState:                    "rcDataEndTagNameState",
	rawTextLessThanSignState:                 "rawTextLessThanSignState",
	rawTextEndTagOpenState:                   "rawTextEndTagOpenState",
	rawTextEndTagNameState:                   "rawTextEndTagNameState",
	scriptDataLessThanSignState:              "scriptDataLessThanSignState",
	scriptDataEndTagOpenState:                "scriptDataEndTagOpenState",
	scriptDataEndTagNameState:                "scriptDataEndTagNameState",
	scriptDataEscapeStartState:               "scriptDataEscapeStartState",
	scriptDataEscapeStartDashState:           "scriptDataEscapeStartDashState",
	scriptDataEscapedState:                   "scriptDataEscapedState",
	scriptDataEscapedDashState:               "scriptDataEscapedDashState",
	scriptDataEscapedDashDashState:           "scriptDataEscapedDashDashState",
	scriptDataEscapedLessThanSignState:       "scriptDataEscapedLessThanSignState",
	scriptDataEscapedEndTagOpenState:         "scriptDataEscapedEndTagOpenState",
	scriptDataEscapedEndTagNameState:         "scriptDataEscapedEndTagNameState",
	scriptDataDoubleEscapeStartState:         "scriptDataDoubleEscapeStartState",
	scriptDataDoubleEscapedState:             "scriptDataDoubleEscapedState",
	scriptDataDoubleEscapedDashState:         "scriptDataDoubleEscapedDashState",
	scriptDataDoubleEscapedDashDashState:     "scriptDataDoubleEscapedDashDashState",
	scriptDataDoubleEscapedLessThanSignState: "scriptDataDoubleEscapedLessThanSignState",
	scriptDataDoubleEscapeEndState:           "scriptDataDoubleEscapeEndState",
	beforeAttributeNameState:                 "beforeAttributeNameState",
	attributeNameState:                       "attributeNameState",
	afterAttributeNameState:                  "afterAttributeNameState",
	beforeAttributeValueState:                "beforeAttributeValueState",
	attributeValueDoubleQuotedState:          "attributeValueDoubleQuotedState",
	attributeValueSingleQuotedState:          "attributeValueSingleQuotedState",
	attributeValueUnquotedState:              "attributeValueUnquotedState",
	afterAttributeValueQuotedState:           "afterAttributeValueQuotedState",
	selfClosingStartTagState:                 "selfClosingStartTagState",
	bogusCommentState:                        "bogusCommentState",
	markupDeclarationOpenState:               "markupDeclarationOpenState",
	commentStartState:                        "commentStartState",
	commentStartDashState:                    "commentStartDashState",
	commentState:                             "commentState",
	commentLessThanSignState:                 "commentLessThanSignState",
	commentLessThanSignBangState:             "commentLessThanSignBangState",
	commentLessThanSignBangDashState:         "commentLessThanSignBangDashState",
	commentLessThanSignBangDashDashState:     "commentLessThanSignBangDashDashState",
	commentEndDashState:                      "commentEndDashState",
	commentEndState:                          "commentEndState",
	commentEndBangState:                      "commentEndBangState",
	doctypeState:                             "doctypeState",
	beforeDoctypeNameState:                   "beforeDoctypeNameState",
	doctypeNameState:                         "doctypeNameState",
	afterDoctypeNameState:                    "afterDoctypeNameState",
	afterDoctypePublicKeywordState:           "afterDoctypePublicKeywordState",
	beforeDoctypePublicIdentifierState:       "beforeDoctypePublicIdentifierState",
	doctypePublicIdentifierDoubleQuotedState: "doctypePublicIdentifierDoubleQuotedState",
	doctypePublicIdentifierSingleQuotedState: "doctypePublicIdentifierSingleQuotedState",
	afterDoctypePublicIdentifierState:        "afterDoctypePublicIdentifierState",
	betweenDoctypePublicAndSystemIdentifiersState: "betweenDoctypePublicAndSystemIdentifiersState",
	afterDoctypeSystemKeywordState:                "afterDoctypeSystemKeywordState",
	beforeDoctypeSystemIdentifierState:            "beforeDoctypeSystemIdentifierState",
	doctypeSystemIdentifierDoubleQuotedState:      "doctypeSystemIdentifierDoubleQuotedState",
	doctypeSystemIdentifierSingleQuotedState:      "doctypeSystemIdentifierSingleQuotedState",
	afterDoctypeSystemIdentifierState:             "afterDoctypeSystemIdentifierState",
	bogusDoctypeState:                             "bogusDoctypeState",
	cdataSectionState:                             "cdataSectionState",
	cdataSectionBracketState:                      "cdataSectionBracketState",
	cdataSectionEndState:                          "cdataSectionEndState",
	characterReferenceState:                       "characterReferenceState",
	namedCharacterReferenceState:                  "namedCharacterReferenceState",
	ambiguousAmpersandState:                       "ambiguousAmpersandState",
	numericCharacterReferenceState:                "numericCharacterReferenceState",
	hexadecimalCharacterReferenceStartState:       "hexadecimalCharacterReferenceStartState",
	decimalCharacterReferenceStartState:           "decimalCharacterReferenceStartState",
	hexadecimalCharacterReferenceState:            "hexadecimalCharacterReferenceState",
	decimalCharacterReferenceState:                "decimalCharacterReferenceState",
	numericCharacterReferenceEndState:             "numericCharacterReferenceEndState",
}

func (s TokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return fmt.Sprintf("TokenizerState(%d)", uint8(s))
}
