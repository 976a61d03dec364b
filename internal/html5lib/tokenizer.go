package html5lib

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Token is an expected token of a tokenizer test. Adjacent character
// tokens are already merged, as in the test files.
type Token struct {
	Type string

	// Name is the tag name or the doctype name.
	Name        string
	Attrs       []Attr
	SelfClosing bool

	// Data is the text of Character and Comment tokens.
	Data string

	PublicID, SystemID *string
	// Correct is false when the doctype forces quirks mode.
	Correct bool
}

// Attr is an expected attribute. Attributes are sorted by name because the
// test format stores them in a JSON object.
type Attr struct {
	Name, Value string
}

// Error is an expected parse error.
type Error struct {
	Code string `json:"code"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// TokenizerTest is one entry of a .test file.
type TokenizerTest struct {
	Description   string
	Input         string
	Output        []Token
	Errors        []Error
	InitialStates []string
	LastStartTag  string
}

type rawTokenizerTest struct {
	Description   string          `json:"description"`
	Input         string          `json:"input"`
	Output        [][]interface{} `json:"output"`
	DoubleEscaped bool            `json:"doubleEscaped"`
	LastStartTag  string          `json:"lastStartTag"`
	Errors        []Error         `json:"errors"`
	InitialStates []string        `json:"initialStates"`
}

// ReadTokenizerTests parses a .test file.
func ReadTokenizerTests(r io.Reader) ([]TokenizerTest, error) {
	var file struct {
		Tests []rawTokenizerTest `json:"tests"`
	}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decoding tokenizer tests")
	}

	tests := make([]TokenizerTest, 0, len(file.Tests))
	for _, raw := range file.Tests {
		unescape := func(s string) (string, error) { return s, nil }
		if raw.DoubleEscaped {
			unescape = unescapeDouble
		}
		input, err := unescape(raw.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "test %q: input", raw.Description)
		}
		output, err := readOutput(raw.Output, unescape)
		if err != nil {
			return nil, errors.Wrapf(err, "test %q: output", raw.Description)
		}
		states := raw.InitialStates
		if len(states) == 0 {
			states = []string{"Data state"}
		}
		tests = append(tests, TokenizerTest{
			Description:   raw.Description,
			Input:         input,
			Output:        output,
			Errors:        raw.Errors,
			InitialStates: states,
			LastStartTag:  raw.LastStartTag,
		})
	}
	return tests, nil
}

func readOutput(raw [][]interface{}, unescape func(string) (string, error)) ([]Token, error) {
	str := func(v []interface{}, i int) (*string, error) {
		if i >= len(v) || v[i] == nil {
			return nil, nil
		}
		s, ok := v[i].(string)
		if !ok {
			return nil, errors.Errorf("field %d is %T, want string", i, v[i])
		}
		s, err := unescape(s)
		return &s, err
	}
	val := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	var tokens []Token
	for _, v := range raw {
		if len(v) == 0 {
			continue
		}
		kind, _ := v[0].(string)
		name, err := str(v, 1)
		if err != nil {
			return nil, err
		}
		tok := Token{Type: kind}
		switch kind {
		case "DOCTYPE":
			tok.Name = val(name)
			if tok.PublicID, err = str(v, 2); err != nil {
				return nil, err
			}
			if tok.SystemID, err = str(v, 3); err != nil {
				return nil, err
			}
			if len(v) > 4 {
				tok.Correct, _ = v[4].(bool)
			}
		case "StartTag":
			tok.Name = val(name)
			if len(v) > 2 {
				attrs, _ := v[2].(map[string]interface{})
				for k, a := range attrs {
					s, _ := a.(string)
					if s, err = unescape(s); err != nil {
						return nil, err
					}
					tok.Attrs = append(tok.Attrs, Attr{Name: k, Value: s})
				}
				sort.Slice(tok.Attrs, func(i, j int) bool { return tok.Attrs[i].Name < tok.Attrs[j].Name })
			}
			if len(v) > 3 {
				tok.SelfClosing, _ = v[3].(bool)
			}
		case "EndTag":
			tok.Name = val(name)
		case "Comment", "Character":
			tok.Data = val(name)
		default:
			return nil, errors.Errorf("unknown token type %q", kind)
		}
		if kind == "Character" && len(tokens) > 0 && tokens[len(tokens)-1].Type == "Character" {
			tokens[len(tokens)-1].Data += tok.Data
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// unescapeDouble resolves the \uXXXX escapes of doubleEscaped tests, which
// carry lone surrogates and noncharacters JSON cannot hold.
func unescapeDouble(s string) (string, error) {
	if !strings.Contains(s, `\u`) {
		return s, nil
	}
	var b strings.Builder
	for {
		i := strings.Index(s, `\u`)
		if i < 0 || i+6 > len(s) {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		n, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
		if err != nil {
			return "", errors.Wrapf(err, "bad escape %q", s[i:i+6])
		}
		b.WriteRune(rune(n))
		s = s[i+6:]
	}
}
