package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gobrowse/engine/internal/html5lib"
	"github.com/gobrowse/engine/parser/dom"
)

var fragmentNamespaces = map[string]dom.Namespace{
	"":     dom.Htmlns,
	"svg":  dom.Svgns,
	"math": dom.Mathmlns,
}

func readTreeTests(t *testing.T) map[string][]html5lib.TreeTest {
	files, err := filepath.Glob(filepath.Join("testdata", "tree", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	tests := map[string][]html5lib.TreeTest{}
	for _, file := range files {
		f, err := os.Open(file)
		require.NoError(t, err)
		tt, err := html5lib.ReadTreeTests(f)
		f.Close()
		require.NoError(t, err, file)
		tests[filepath.Base(file)] = tt
	}
	return tests
}

// parseTreeTest parses the input of a tree test and dumps the result the
// way the .dat files write it.
func parseTreeTest(test html5lib.TreeTest, scripting bool) string {
	cfg := Config{ScriptingEnabled: scripting}
	if test.Fragment == nil {
		res := Parse(test.Data, cfg)
		return dom.Dump(res.Document, res.Document.Root())
	}
	ctx := FragmentContext{
		Name:      test.Fragment.Name,
		Namespace: fragmentNamespaces[test.Fragment.Namespace],
	}
	res := ParseFragment(test.Data, ctx, cfg)
	return dom.Dump(res.Document, res.Root)
}

func TestTreeConstruction(t *testing.T) {
	for file, tests := range readTreeTests(t) {
		for _, test := range tests {
			switch test.Script {
			case html5lib.ScriptBoth:
				runTreeConstructionTest(t, file, test, false)
				runTreeConstructionTest(t, file, test, true)
			case html5lib.ScriptOff:
				runTreeConstructionTest(t, file, test, false)
			case html5lib.ScriptOn:
				runTreeConstructionTest(t, file, test, true)
			}
		}
	}
}

func runTreeConstructionTest(t *testing.T, file string, test html5lib.TreeTest, scripting bool) {
	name := fmt.Sprintf("%s:%d", file, test.Line)
	if scripting {
		name += "/scripting"
	}
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		got := parseTreeTest(test, scripting)
		if diff := cmp.Diff(test.Document, got); diff != "" {
			t.Errorf("input %q\ntree mismatch (-want +got):\n%s", test.Data, diff)
		}
	})
}
