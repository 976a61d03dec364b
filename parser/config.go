package parser

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gobrowse/engine/parser/dom"
)

// ScriptFunc is the scripting collaborator. It is called synchronously when a
// script element has been closed and returns text to insert into the input
// right after the script's end tag, the way document.write does.
type ScriptFunc func(d *dom.Document, script dom.NodeID) string

// Config holds the knobs of a parse. The zero value parses with scripting
// disabled and collects errors into the result.
type Config struct {
	// ScriptingEnabled decides how noscript is parsed and whether Script
	// is called.
	ScriptingEnabled bool

	// IframeSrcdoc marks the input as an iframe srcdoc document, which never
	// falls into quirks mode for a missing doctype.
	IframeSrcdoc bool

	Logger logrus.FieldLogger

	// Errors receives every parse error. When nil, errors are collected on
	// the Result.
	Errors ErrorSink

	Script ScriptFunc

	// MaxErrors caps the errors kept on the Result. Zero keeps them all.
	MaxErrors int
}

// maxScriptNesting bounds re-entrant script execution: text inserted by a
// script may close another script whose output is inserted in turn.
const maxScriptNesting = 8

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return discardLogger()
	}
	return c.Logger
}

// traceEnabled reports whether l would write Trace entries. Per character
// logging is skipped entirely otherwise.
func traceEnabled(l logrus.FieldLogger) bool {
	switch l := l.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.TraceLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.TraceLevel)
	}
	return false
}
