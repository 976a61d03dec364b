// Package html5lib reads the test formats of the html5lib-tests suite: the
// tree construction .dat files and the tokenizer .test JSON files.
package html5lib

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ScriptMode says which scripting flag a tree test applies to.
type ScriptMode uint8

const (
	ScriptBoth ScriptMode = iota
	ScriptOff
	ScriptOn
)

// FragmentContext names the context element of a fragment test. Namespace is
// "", "svg" or "math".
type FragmentContext struct {
	Namespace string
	Name      string
}

// TreeTest is one #data block of a .dat file.
type TreeTest struct {
	// Line is where the #data header was found, for test names.
	Line int

	Data     string
	Errors   []string
	Fragment *FragmentContext
	Script   ScriptMode

	// Document is the expected dump: one "| " line per node, each ending
	// with a newline.
	Document string
}

const (
	sectionData      = "#data"
	sectionErrors    = "#errors"
	sectionNewErrors = "#new-errors"
	sectionFragment  = "#document-fragment"
	sectionScriptOn  = "#script-on"
	sectionScriptOff = "#script-off"
	sectionDocument  = "#document"
)

func isSection(line string) bool {
	switch line {
	case sectionData, sectionErrors, sectionNewErrors, sectionFragment,
		sectionScriptOn, sectionScriptOff, sectionDocument:
		return true
	}
	return false
}

// ReadTreeTests parses a .dat file.
func ReadTreeTests(r io.Reader) ([]TreeTest, error) {
	var (
		tests   []TreeTest
		cur     *TreeTest
		section string
		data    []string
		doc     []string
	)
	finish := func() {
		if cur == nil {
			return
		}
		cur.Data = strings.Join(data, "\n")
		for len(doc) > 0 && doc[len(doc)-1] == "" {
			doc = doc[:len(doc)-1]
		}
		if len(doc) > 0 {
			cur.Document = strings.Join(doc, "\n") + "\n"
		}
		tests = append(tests, *cur)
		cur, data, doc = nil, nil, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()

		// A document section runs until the next #data header. Text nodes
		// may span lines, so nothing else inside it is a header.
		if line == sectionData {
			finish()
			cur = &TreeTest{Line: lineNo}
			section = sectionData
			continue
		}
		if cur == nil {
			if line == "" {
				continue
			}
			return nil, errors.Errorf("line %d: content before the first %s", lineNo, sectionData)
		}
		if section != sectionDocument && isSection(line) {
			section = line
			switch line {
			case sectionScriptOn:
				cur.Script = ScriptOn
			case sectionScriptOff:
				cur.Script = ScriptOff
			}
			continue
		}

		switch section {
		case sectionData:
			data = append(data, line)
		case sectionErrors:
			if line != "" {
				cur.Errors = append(cur.Errors, line)
			}
		case sectionFragment:
			if line == "" {
				continue
			}
			ctx := &FragmentContext{Name: line}
			if ns, name, ok := strings.Cut(line, " "); ok {
				ctx.Namespace, ctx.Name = ns, name
			}
			cur.Fragment = ctx
		case sectionDocument:
			doc = append(doc, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tree construction tests")
	}
	finish()
	return tests, nil
}
