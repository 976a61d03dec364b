package parser

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobrowse/engine/internal/html5lib"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes to collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' onload='test' ></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "\uFFFD123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<p title='a&amp;b' lang=x&lt;y>", map[string]string{
		"title": "a&b",
		"lang":  "x<y",
	}},
}

// TestTokenizerAttributeAccuracy makes sure that the first token carries
// exactly the expected attributes.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

func runTestTokenizerAttributeAccuracy(tt tokenizerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(tt.inHTML, nil)
		token := p.Token(nil)
		require.Equal(t, StartTagToken, token.TokenType)
		assert.Len(t, token.Attributes, len(tt.attrs))
		for k, v := range tt.attrs {
			got, ok := token.Attr(k)
			if assert.Truef(t, ok, "missing attribute %q", k) {
				assert.Equal(t, v, got)
			}
		}
	})
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     TokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState TokenizerState // the next state
}

// TestStateParsers checks that each state of the state machine moves to the
// expected next state for a single character. Transitions that depend on
// lookahead or on earlier input are covered by the token level tests.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceState},
		{'<', dataState, false, tagOpenState},
		{'\u0000', dataState, false, dataState},
		{'a', dataState, false, dataState},

		{'&', rcDataState, false, characterReferenceState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'\u0000', rcDataState, false, rcDataState},
		{'#', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'&', rawTextState, false, rawTextState},
		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'a', scriptDataState, false, scriptDataState},
		{'<', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'Z', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},
		{' ', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'1', endTagOpenState, true, bogusCommentState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\n', tagNameState, false, beforeAttributeNameState},
		{' ', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'a', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'a', rcDataEndTagOpenState, true, rcDataEndTagNameState},
		{'1', rcDataEndTagOpenState, true, rcDataState},
		{'a', rcDataEndTagNameState, false, rcDataEndTagNameState},
		{'>', rcDataEndTagNameState, true, rcDataState},

		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'a', rawTextEndTagOpenState, true, rawTextEndTagNameState},
		{' ', rawTextEndTagNameState, true, rawTextState},

		{'/', scriptDataLessThanSignState, false, scriptDataEndTagOpenState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},
		{'a', scriptDataLessThanSignState, true, scriptDataState},
		{'-', scriptDataEscapeStartState, false, scriptDataEscapeStartDashState},
		{'a', scriptDataEscapeStartState, true, scriptDataState},
		{'-', scriptDataEscapeStartDashState, false, scriptDataEscapedDashDashState},
		{'-', scriptDataEscapedState, false, scriptDataEscapedDashState},
		{'<', scriptDataEscapedState, false, scriptDataEscapedLessThanSignState},
		{'a', scriptDataEscapedState, false, scriptDataEscapedState},
		{'-', scriptDataEscapedDashState, false, scriptDataEscapedDashDashState},
		{'a', scriptDataEscapedDashState, false, scriptDataEscapedState},
		{'-', scriptDataEscapedDashDashState, false, scriptDataEscapedDashDashState},
		{'>', scriptDataEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataEscapedLessThanSignState, false, scriptDataEscapedEndTagOpenState},
		{'s', scriptDataEscapedLessThanSignState, true, scriptDataDoubleEscapeStartState},
		{'1', scriptDataEscapedLessThanSignState, true, scriptDataEscapedState},
		{' ', scriptDataDoubleEscapeStartState, false, scriptDataEscapedState},
		{'s', scriptDataDoubleEscapeStartState, false, scriptDataDoubleEscapeStartState},
		{'-', scriptDataDoubleEscapedState, false, scriptDataDoubleEscapedDashState},
		{'<', scriptDataDoubleEscapedState, false, scriptDataDoubleEscapedLessThanSignState},
		{'>', scriptDataDoubleEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataDoubleEscapedLessThanSignState, false, scriptDataDoubleEscapeEndState},
		{'>', scriptDataDoubleEscapeEndState, false, scriptDataDoubleEscapedState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'>', beforeAttributeNameState, true, afterAttributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},

		{' ', attributeNameState, true, afterAttributeNameState},
		{'/', attributeNameState, true, afterAttributeNameState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{'"', attributeNameState, false, attributeNameState},
		{'a', attributeNameState, false, attributeNameState},

		{' ', afterAttributeNameState, false, afterAttributeNameState},
		{'/', afterAttributeNameState, false, selfClosingStartTagState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'>', afterAttributeNameState, false, dataState},
		{'a', afterAttributeNameState, true, attributeNameState},

		{' ', beforeAttributeValueState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'>', beforeAttributeValueState, false, dataState},
		{'a', beforeAttributeValueState, true, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'&', attributeValueDoubleQuotedState, false, characterReferenceState},
		{'\'', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'"', attributeValueSingleQuotedState, false, attributeValueSingleQuotedState},
		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'&', attributeValueUnquotedState, false, characterReferenceState},
		{'>', attributeValueUnquotedState, false, dataState},
		{'`', attributeValueUnquotedState, false, attributeValueUnquotedState},

		{' ', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'>', afterAttributeValueQuotedState, false, dataState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},

		{'>', selfClosingStartTagState, false, dataState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},

		{'>', bogusCommentState, false, dataState},
		{'a', bogusCommentState, false, bogusCommentState},

		{'-', commentStartState, false, commentStartDashState},
		{'>', commentStartState, false, dataState},
		{'a', commentStartState, true, commentState},
		{'-', commentStartDashState, false, commentEndState},
		{'>', commentStartDashState, false, dataState},
		{'a', commentStartDashState, true, commentState},
		{'<', commentState, false, commentLessThanSignState},
		{'-', commentState, false, commentEndDashState},
		{'a', commentState, false, commentState},
		{'!', commentLessThanSignState, false, commentLessThanSignBangState},
		{'<', commentLessThanSignState, false, commentLessThanSignState},
		{'a', commentLessThanSignState, true, commentState},
		{'-', commentLessThanSignBangState, false, commentLessThanSignBangDashState},
		{'a', commentLessThanSignBangState, true, commentState},
		{'-', commentLessThanSignBangDashState, false, commentLessThanSignBangDashDashState},
		{'a', commentLessThanSignBangDashState, true, commentEndDashState},
		{'>', commentLessThanSignBangDashDashState, true, commentEndState},
		{'a', commentLessThanSignBangDashDashState, true, commentEndState},
		{'-', commentEndDashState, false, commentEndState},
		{'a', commentEndDashState, true, commentState},
		{'>', commentEndState, false, dataState},
		{'!', commentEndState, false, commentEndBangState},
		{'-', commentEndState, false, commentEndState},
		{'a', commentEndState, true, commentState},
		{'-', commentEndBangState, false, commentEndDashState},
		{'>', commentEndBangState, false, dataState},
		{'a', commentEndBangState, true, commentState},

		{' ', doctypeState, false, beforeDoctypeNameState},
		{'>', doctypeState, true, beforeDoctypeNameState},
		{'a', doctypeState, true, beforeDoctypeNameState},
		{' ', beforeDoctypeNameState, false, beforeDoctypeNameState},
		{'a', beforeDoctypeNameState, false, doctypeNameState},
		{'>', beforeDoctypeNameState, false, dataState},
		{' ', doctypeNameState, false, afterDoctypeNameState},
		{'>', doctypeNameState, false, dataState},
		{'a', doctypeNameState, false, doctypeNameState},
		{' ', afterDoctypeNameState, false, afterDoctypeNameState},
		{'>', afterDoctypeNameState, false, dataState},
		{'x', afterDoctypeNameState, true, bogusDoctypeState},
		{' ', afterDoctypePublicKeywordState, false, beforeDoctypePublicIdentifierState},
		{'"', afterDoctypePublicKeywordState, false, doctypePublicIdentifierDoubleQuotedState},
		{'\'', afterDoctypePublicKeywordState, false, doctypePublicIdentifierSingleQuotedState},
		{'>', afterDoctypePublicKeywordState, false, dataState},
		{'a', afterDoctypePublicKeywordState, true, bogusDoctypeState},
		{' ', beforeDoctypePublicIdentifierState, false, beforeDoctypePublicIdentifierState},
		{'"', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierDoubleQuotedState},
		{'>', beforeDoctypePublicIdentifierState, false, dataState},
		{'"', doctypePublicIdentifierDoubleQuotedState, false, afterDoctypePublicIdentifierState},
		{'>', doctypePublicIdentifierDoubleQuotedState, false, dataState},
		{'\'', doctypePublicIdentifierSingleQuotedState, false, afterDoctypePublicIdentifierState},
		{' ', afterDoctypePublicIdentifierState, false, betweenDoctypePublicAndSystemIdentifiersState},
		{'>', afterDoctypePublicIdentifierState, false, dataState},
		{'"', afterDoctypePublicIdentifierState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'a', afterDoctypePublicIdentifierState, true, bogusDoctypeState},
		{' ', betweenDoctypePublicAndSystemIdentifiersState, false, betweenDoctypePublicAndSystemIdentifiersState},
		{'\'', betweenDoctypePublicAndSystemIdentifiersState, false, doctypeSystemIdentifierSingleQuotedState},
		{' ', afterDoctypeSystemKeywordState, false, beforeDoctypeSystemIdentifierState},
		{'"', afterDoctypeSystemKeywordState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'"', beforeDoctypeSystemIdentifierState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'"', doctypeSystemIdentifierDoubleQuotedState, false, afterDoctypeSystemIdentifierState},
		{'\'', doctypeSystemIdentifierSingleQuotedState, false, afterDoctypeSystemIdentifierState},
		{' ', afterDoctypeSystemIdentifierState, false, afterDoctypeSystemIdentifierState},
		{'>', afterDoctypeSystemIdentifierState, false, dataState},
		{'a', afterDoctypeSystemIdentifierState, true, bogusDoctypeState},
		{'>', bogusDoctypeState, false, dataState},
		{'a', bogusDoctypeState, false, bogusDoctypeState},

		{']', cdataSectionState, false, cdataSectionBracketState},
		{'a', cdataSectionState, false, cdataSectionState},
		{']', cdataSectionBracketState, false, cdataSectionEndState},
		{'a', cdataSectionBracketState, true, cdataSectionState},
		{']', cdataSectionEndState, false, cdataSectionEndState},
		{'>', cdataSectionEndState, false, dataState},
		{'a', cdataSectionEndState, true, cdataSectionState},

		{'#', characterReferenceState, false, numericCharacterReferenceState},
		{'a', characterReferenceState, true, namedCharacterReferenceState},
		{'x', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'X', numericCharacterReferenceState, false, hexadecimalCharacterReferenceStartState},
		{'1', numericCharacterReferenceState, true, decimalCharacterReferenceStartState},
		{'f', hexadecimalCharacterReferenceStartState, true, hexadecimalCharacterReferenceState},
		{'1', decimalCharacterReferenceStartState, true, decimalCharacterReferenceState},
		{'F', hexadecimalCharacterReferenceState, false, hexadecimalCharacterReferenceState},
		{'9', decimalCharacterReferenceState, false, decimalCharacterReferenceState},
		{'a', decimalCharacterReferenceState, true, numericCharacterReferenceEndState},
		{'a', ambiguousAmpersandState, false, ambiguousAmpersandState},
	}

	for _, testcase := range stateParserTests {
		runStateParserTest(testcase, t)
	}
}

func runStateParserTest(testcase stateMachineTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%#U", testcase.startingState, testcase.inRune)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer("", nil)
		reconsume, state := p.stateToParser(testcase.startingState)(testcase.inRune, false)
		assert.Equal(t, testcase.nextExpectedState, state)
		assert.Equal(t, testcase.shouldReconsume, reconsume)
	})
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to tokenize
	startState TokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // since we are testing internal state, we need a function that can look inside the tokenizer
	setup      func(*HTMLTokenizer)                  // any setup code will be run before tokenization
}

// feed runs every character of the input through the state machine without
// the end-of-file step, which would flush the token being built.
func feed(p *HTMLTokenizer, start TokenizerState) {
	p.SwitchTo(start)
	for p.pos < len(p.input) {
		r, eof := p.consume()
		p.processRune(r, eof)
	}
}

// TestParseStatefulness checks the token builder after a few characters in
// a given state.
func TestParseStatefulness(t *testing.T) {
	name := func(p *HTMLTokenizer) string { return p.tokenBuilder.name.String() }
	data := func(p *HTMLTokenizer) string { return p.tokenBuilder.data.String() }
	attrName := func(p *HTMLTokenizer) string { return p.tokenBuilder.attributeKey.String() }
	attrValue := func(p *HTMLTokenizer) string { return p.tokenBuilder.attributeValue.String() }
	quirks := func(p *HTMLTokenizer) string { return fmt.Sprintf("%t", p.tokenBuilder.forceQuirks) }
	check := func(get func(*HTMLTokenizer) string, want string) func(*HTMLTokenizer) (string, string) {
		return func(p *HTMLTokenizer) (string, string) { return get(p), want }
	}
	inDoubleQuotedValue := func(p *HTMLTokenizer) { p.returnState = attributeValueDoubleQuotedState }

	parserStatefulnessTestCases := []parserStatefulnessTestCase{
		{"&", dataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), dataState.String() }, nil},
		{"&", rcDataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), rcDataState.String() }, nil},
		{"b", tagOpenState, check(name, "b"), nil},
		{"bAc", tagOpenState, check(name, "bac"), nil},
		{"bA\u0000c", tagOpenState, check(name, "ba\uFFFDc"), nil},
		{"P", endTagOpenState, check(name, "p"), nil},
		{"1", endTagOpenState, check(data, "1"), nil},
		{"<", tagNameState, check(name, "<"), nil},
		{"U", rcDataEndTagNameState, check(name, "u"), nil},
		{"U", scriptDataEscapedEndTagNameState, check(name, "u"), nil},
		{"U", scriptDataDoubleEscapeStartState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "u" }, nil},
		{"U", attributeNameState, check(attrName, "u"), nil},
		{"\u0000", attributeNameState, check(attrName, "\uFFFD"), nil},
		{"\u0000", attributeValueDoubleQuotedState, check(attrValue, "\uFFFD"), nil},
		{"A", attributeValueSingleQuotedState, check(attrValue, "A"), nil},
		{"&", attributeValueUnquotedState, func(p *HTMLTokenizer) (string, string) {
			return p.returnState.String(), attributeValueUnquotedState.String()
		}, nil},
		{">", selfClosingStartTagState, func(p *HTMLTokenizer) (string, string) { return fmt.Sprintf("%t", p.tokenBuilder.selfClosing), "true" }, nil},
		{"\u0000", bogusCommentState, check(data, "\uFFFD"), nil},
		{"3", commentStartDashState, check(data, "-3"), nil},
		{"<", commentState, check(data, "<"), nil},
		{"a", commentEndDashState, check(data, "-a"), nil},
		{"A", commentEndState, check(data, "--A"), nil},
		{"@", commentEndBangState, check(data, "--!@"), nil},
		{"A", beforeDoctypeNameState, check(name, "a"), nil},
		{">", beforeDoctypeNameState, check(quirks, "true"), nil},
		{"A", beforeDoctypePublicIdentifierState, check(quirks, "true"), nil},
		{"\u0000", doctypePublicIdentifierDoubleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.publicID.String(), "\uFFFD" }, nil},
		{"a", doctypeSystemIdentifierSingleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.systemID.String(), "a" }, nil},
		{"a", ambiguousAmpersandState, check(attrValue, "a"), inDoubleQuotedValue},
		{"1", ambiguousAmpersandState, check(attrValue, "1"), inDoubleQuotedValue},
		{"X", numericCharacterReferenceState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "X" }, nil},
		{"22", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "34"
		}, nil},
		{"ff", hexadecimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "255"
		}, nil},
		{"134", decimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "134"
		}, nil},
		{"99999999999", decimalCharacterReferenceState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%d", p.tokenBuilder.GetCharRef()), "1114112"
		}, nil},
	}

	for _, testcase := range parserStatefulnessTestCases {
		runParserStatefulnessTest(testcase, t)
	}
}

func runParserStatefulnessTest(testcase parserStatefulnessTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%q", testcase.startState, testcase.inHTML)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(testcase.inHTML, nil)
		if testcase.setup != nil {
			testcase.setup(p)
		}
		feed(p, testcase.startState)
		answer, expected := testcase.testFunc(p)
		assert.Equal(t, expected, answer)
	})
}

// tokenize pulls every token out of a tokenizer started in state, without
// the trailing end-of-file token.
func tokenize(input string, state TokenizerState, lastStartTag string) ([]*Token, []ParseError) {
	errs := &ErrorList{}
	p := NewHTMLTokenizer(input, errs)
	p.lastEmittedStartTagName = lastStartTag
	progress := &Progress{TokenizerState: &state}
	var tokens []*Token
	for p.Next() {
		tok := p.Token(progress)
		progress = nil
		if tok.TokenType == EndOfFileToken {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, errs.Errors
}

var html5libStates = map[string]TokenizerState{
	"Data state":          dataState,
	"PLAINTEXT state":     plaintextState,
	"RCDATA state":        rcDataState,
	"RAWTEXT state":       rawTextState,
	"Script data state":   scriptDataState,
	"CDATA section state": cdataSectionState,
}

// html5libTokens converts tokens to the html5lib test representation,
// merging runs of characters.
func html5libTokens(tokens []*Token) []html5lib.Token {
	var out []html5lib.Token
	for _, tok := range tokens {
		var h html5lib.Token
		switch tok.TokenType {
		case CharacterToken:
			if n := len(out); n > 0 && out[n-1].Type == "Character" {
				out[n-1].Data += tok.Data
				continue
			}
			h = html5lib.Token{Type: "Character", Data: tok.Data}
		case StartTagToken:
			h = html5lib.Token{Type: "StartTag", Name: tok.TagName, SelfClosing: tok.SelfClosing}
			for _, a := range tok.Attributes {
				h.Attrs = append(h.Attrs, html5lib.Attr{Name: a.Name, Value: a.Value})
			}
			sort.Slice(h.Attrs, func(i, j int) bool { return h.Attrs[i].Name < h.Attrs[j].Name })
		case EndTagToken:
			h = html5lib.Token{Type: "EndTag", Name: tok.TagName}
		case CommentToken:
			h = html5lib.Token{Type: "Comment", Data: tok.Data}
		case DoctypeToken:
			h = html5lib.Token{Type: "DOCTYPE", Name: tok.TagName, Correct: !tok.ForceQuirks}
			if tok.HasPublicID {
				id := tok.PublicID
				h.PublicID = &id
			}
			if tok.HasSystemID {
				id := tok.SystemID
				h.SystemID = &id
			}
		}
		out = append(out, h)
	}
	return out
}

func TestHTML5LibTokenizer(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "tokenizer", "*.test"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		f, err := os.Open(file)
		require.NoError(t, err)
		tests, err := html5lib.ReadTokenizerTests(f)
		f.Close()
		require.NoError(t, err, file)

		for _, test := range tests {
			for _, state := range test.InitialStates {
				runHTML5LibTokenizerTest(t, filepath.Base(file), test, state)
			}
		}
	}
}

func runHTML5LibTokenizerTest(t *testing.T, file string, test html5lib.TokenizerTest, state string) {
	t.Run(fmt.Sprintf("%s/%s/%s", file, test.Description, state), func(t *testing.T) {
		t.Parallel()
		start, ok := html5libStates[state]
		require.Truef(t, ok, "unknown initial state %q", state)

		tokens, errs := tokenize(test.Input, start, test.LastStartTag)
		if diff := cmp.Diff(test.Output, html5libTokens(tokens)); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}

		var want, got []string
		for _, e := range test.Errors {
			want = append(want, e.Code)
		}
		for _, e := range errs {
			got = append(got, e.Kind.String())
		}
		assert.Equal(t, want, got)
	})
}

func TestTokenPositions(t *testing.T) {
	t.Parallel()
	errs := &ErrorList{}
	p := NewHTMLTokenizer("a\r\n<b\rc=1>\n&#0;", errs)

	var tokens []*Token
	for p.Next() {
		tokens = append(tokens, p.Token(nil))
	}
	require.Len(t, tokens, 6)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, "\n", tokens[1].Data)
	assert.Equal(t, StartTagToken, tokens[2].TokenType)
	assert.Equal(t, Position{Offset: 8, Line: 3, Column: 4}, tokens[2].Pos)
	assert.Equal(t, "\uFFFD", tokens[4].Data)
	assert.Equal(t, EndOfFileToken, tokens[5].TokenType)

	require.Len(t, errs.Errors, 1)
	assert.Equal(t, NullCharacterReference, errs.Errors[0].Kind)
	assert.Equal(t, 4, errs.Errors[0].Line)
}

func TestTokenizerInsert(t *testing.T) {
	t.Parallel()
	p := NewHTMLTokenizer("<p>c", nil)
	first := p.Token(nil)
	require.Equal(t, "p", first.TagName)

	p.Insert("a<i>b")
	var got strings.Builder
	for p.Next() {
		tok := p.Token(nil)
		switch tok.TokenType {
		case CharacterToken:
			got.WriteString(tok.Data)
		case StartTagToken:
			got.WriteString("<" + tok.TagName + ">")
		}
	}
	assert.Equal(t, "a<i>bc", got.String())
}

func TestTokenizerSwitchTo(t *testing.T) {
	t.Parallel()
	p := NewHTMLTokenizer("<style><b></style>", nil)
	require.Equal(t, "style", p.Token(nil).TagName)

	p.SwitchTo(rawTextState)
	var text strings.Builder
	for {
		tok := p.Token(nil)
		if tok.TokenType != CharacterToken {
			assert.Equal(t, EndTagToken, tok.TokenType)
			assert.Equal(t, "style", tok.TagName)
			break
		}
		text.WriteString(tok.Data)
	}
	assert.Equal(t, "<b>", text.String())
}

func TestTokenAfterEOF(t *testing.T) {
	t.Parallel()
	p := NewHTMLTokenizer("", nil)
	assert.Equal(t, EndOfFileToken, p.Token(nil).TokenType)
	assert.False(t, p.Next())
	assert.Equal(t, EndOfFileToken, p.Token(nil).TokenType)
}

func TestCDATAOnlyInForeignContent(t *testing.T) {
	t.Parallel()
	p := NewHTMLTokenizer("<![CDATA[x]]>", nil)
	tok := p.Token(&Progress{InForeignContent: true})
	assert.Equal(t, CharacterToken, tok.TokenType)
	assert.Equal(t, "x", tok.Data)
}

func TestNamedCharacterReferenceTable(t *testing.T) {
	assert.Len(t, namedCharacterReferences, 2231)
	assert.Equal(t, "\u2282\u20D2", namedCharacterReferences["NotSubset;"])
	assert.Equal(t, "\u00C6", namedCharacterReferences["AElig"])
	for name := range namedCharacterReferences {
		assert.LessOrEqual(t, len(name), longestCharacterReference, name)
	}

	src, err := os.ReadFile("entities.go")
	require.NoError(t, err)
	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src), "entities.go is not gofmt formatted")
}
