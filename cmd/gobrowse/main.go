// gobrowse parses an HTML document and prints the result.
//
// The input is read from the named file, or stdin when no file is given, and
// decoded using the byte order mark, <meta charset> or -content-type.
//
// Examples:
//
//	gobrowse page.html
//	gobrowse -o errors page.html
//	gobrowse -o xml -fragment "svg g" snippet.html
//	gobrowse -select 'tag == "a" && attr.href != ""' page.html
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/gobrowse/engine/internal/query"
	"github.com/gobrowse/engine/parser"
	"github.com/gobrowse/engine/parser/dom"
)

var (
	output      = flag.String("o", "dump", "output: dump, html, xml or errors")
	selector    = flag.String("select", "", "print only the nodes matching this expression")
	fragment    = flag.String("fragment", "", `parse the input as the contents of this element, e.g. "div" or "svg g"`)
	contentType = flag.String("content-type", "", "Content-Type header used to pick the input encoding")
	scripting   = flag.Bool("scripting", false, "parse with the scripting flag set")
	verbose     = flag.Bool("v", false, "log parse errors")
	trace       = flag.Bool("vv", false, "log every tokenizer and tree construction step")
)

func main() {
	flag.Parse()

	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case *trace:
		log.SetLevel(logrus.TraceLevel)
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func openInput() (io.ReadCloser, string, error) {
	switch flag.NArg() {
	case 0:
		return io.NopCloser(os.Stdin), "stdin", nil
	case 1:
		name := flag.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			return nil, "", errors.Wrap(err, "opening input")
		}
		return f, name, nil
	}
	return nil, "", errors.New("at most one input file may be given")
}

func parseFragmentContext(s string) parser.FragmentContext {
	ctx := parser.FragmentContext{Name: s}
	if ns, name, ok := strings.Cut(s, " "); ok {
		ctx.Name = name
		switch ns {
		case "svg":
			ctx.Namespace = dom.Svgns
		case "math":
			ctx.Namespace = dom.Mathmlns
		}
	}
	return ctx
}

func run(stdout io.Writer) error {
	log := newLogger()

	in, name, err := openInput()
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := charset.NewReader(in, *contentType)
	if err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	cfg := parser.Config{
		ScriptingEnabled: *scripting,
		Logger:           log.WithField("input", name),
	}
	var (
		doc  *dom.Document
		root dom.NodeID
		errs []parser.ParseError
	)
	if *fragment != "" {
		res := parser.ParseFragment(string(b), parseFragmentContext(*fragment), cfg)
		doc, root, errs = res.Document, res.Root, res.Errors
	} else {
		res := parser.Parse(string(b), cfg)
		doc, root, errs = res.Document, res.Document.Root(), res.Errors
	}
	log.WithFields(logrus.Fields{"nodes": doc.Len(), "errors": len(errs), "mode": doc.Mode}).Info("parsed")

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	if *selector != "" {
		return printSelection(w, doc, root)
	}

	switch *output {
	case "dump":
		_, err = io.WriteString(w, dom.Dump(doc, root))
	case "html":
		_, err = fmt.Fprintln(w, dom.Render(doc, root, *scripting))
	case "xml":
		x := dom.ToXML(doc, root)
		x.Indent(2)
		_, err = x.WriteTo(w)
	case "errors":
		for _, e := range errs {
			if _, err = fmt.Fprintf(w, "%s:%s\n", name, e); err != nil {
				break
			}
		}
	default:
		return errors.Errorf("unknown output %q", *output)
	}
	return errors.Wrap(err, "writing output")
}

func printSelection(w io.Writer, doc *dom.Document, root dom.NodeID) error {
	p, err := query.Compile(*selector)
	if err != nil {
		return err
	}
	ids, err := p.Select(doc, root)
	if err != nil {
		return err
	}
	for _, id := range ids {
		n := doc.Node(id)
		var s string
		switch n.Type {
		case dom.ElementNode:
			s = "<" + n.Name
			for _, a := range n.Attr {
				s += fmt.Sprintf(" %s=%q", a.Name, a.Value)
			}
			s += ">"
		case dom.TextNode:
			s = fmt.Sprintf("%q", n.Data)
		case dom.CommentNode:
			s = "<!--" + n.Data + "-->"
		default:
			s = n.Type.String()
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", id, s); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	return nil
}
