package html5lib

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDat = `#data
<p>One<p>Two
#errors
(1,3): expected-doctype-but-got-start-tag
#document
| <html>
|   <head>
|   <body>
|     <p>
|       "One"
|     <p>
|       "Two"

#data
<pre>
a
b</pre>
#errors
#script-on
#document
| <html>
|   <head>
|   <body>
|     <pre>
|       "a
b"

#data
<path>
#errors
#document-fragment
svg path
#document
| <svg path>
`

func TestReadTreeTests(t *testing.T) {
	tests, err := ReadTreeTests(strings.NewReader(sampleDat))
	require.NoError(t, err)
	require.Len(t, tests, 3)

	assert.Equal(t, 1, tests[0].Line)
	assert.Equal(t, "<p>One<p>Two", tests[0].Data)
	assert.Equal(t, []string{"(1,3): expected-doctype-but-got-start-tag"}, tests[0].Errors)
	assert.Equal(t, ScriptBoth, tests[0].Script)
	assert.Nil(t, tests[0].Fragment)
	want := "| <html>\n|   <head>\n|   <body>\n|     <p>\n|       \"One\"\n|     <p>\n|       \"Two\"\n"
	if diff := cmp.Diff(want, tests[0].Document); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "<pre>\na\nb</pre>", tests[1].Data)
	assert.Equal(t, ScriptOn, tests[1].Script)
	assert.Empty(t, tests[1].Errors)
	assert.True(t, strings.HasSuffix(tests[1].Document, "|       \"a\nb\"\n"))

	require.NotNil(t, tests[2].Fragment)
	assert.Equal(t, FragmentContext{Namespace: "svg", Name: "path"}, *tests[2].Fragment)
	assert.Equal(t, "| <svg path>\n", tests[2].Document)
}

func TestReadTreeTestsRejectsLeadingContent(t *testing.T) {
	_, err := ReadTreeTests(strings.NewReader("garbage\n#data\nx\n"))
	assert.Error(t, err)
}

const sampleTokenizer = `{"tests": [
{"description": "Start tag with attributes",
 "input": "<a b='1' A=2>x<!--c-->y",
 "output": [["StartTag", "a", {"b": "1"}], ["Character", "x"], ["Comment", "c"], ["Character", "y"]],
 "errors": [{"code": "duplicate-attribute", "line": 1, "col": 12}]},
{"description": "Doctype",
 "initialStates": ["Data state", "RCDATA state"],
 "lastStartTag": "title",
 "input": "<!DOCTYPE html>",
 "output": [["DOCTYPE", "html", null, null, true]]},
{"description": "Double escaped",
 "doubleEscaped": true,
 "input": "\\u0000",
 "output": [["Character", "\\u0000"], ["Character", "z"]]}
]}`

func TestReadTokenizerTests(t *testing.T) {
	tests, err := ReadTokenizerTests(strings.NewReader(sampleTokenizer))
	require.NoError(t, err)
	require.Len(t, tests, 3)

	assert.Equal(t, []string{"Data state"}, tests[0].InitialStates)
	assert.Equal(t, []Token{
		{Type: "StartTag", Name: "a", Attrs: []Attr{{Name: "b", Value: "1"}}},
		{Type: "Character", Data: "x"},
		{Type: "Comment", Data: "c"},
		{Type: "Character", Data: "y"},
	}, tests[0].Output)
	assert.Equal(t, []Error{{Code: "duplicate-attribute", Line: 1, Col: 12}}, tests[0].Errors)

	assert.Equal(t, []string{"Data state", "RCDATA state"}, tests[1].InitialStates)
	assert.Equal(t, "title", tests[1].LastStartTag)
	require.Len(t, tests[1].Output, 1)
	doctype := tests[1].Output[0]
	assert.Equal(t, "html", doctype.Name)
	assert.Nil(t, doctype.PublicID)
	assert.Nil(t, doctype.SystemID)
	assert.True(t, doctype.Correct)

	assert.Equal(t, "\x00", tests[2].Input)
	assert.Equal(t, []Token{{Type: "Character", Data: "\x00z"}}, tests[2].Output)
}
