package parser

import (
	"strings"

	"github.com/gobrowse/engine/parser/dom"
)

// Public identifiers that put a document in quirks mode when matched
// exactly, ignoring ASCII case.
var quirkyPublicIdentifiers = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

const quirkySystemIdentifier = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

// Public identifier prefixes that put a document in quirks mode, lowercased.
var quirkyPublicIdentifierPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

const (
	html401Frameset     = "-//w3c//dtd html 4.01 frameset//"
	html401Transitional = "-//w3c//dtd html 4.01 transitional//"
	xhtml1Frameset      = "-//w3c//dtd xhtml 1.0 frameset//"
	xhtml1Transitional  = "-//w3c//dtd xhtml 1.0 transitional//"
)

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// quirksModeFor selects the document mode from a DOCTYPE token.
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func quirksModeFor(t *Token, iframeSrcdoc bool) dom.QuirksMode {
	if iframeSrcdoc {
		return dom.NoQuirks
	}
	public := strings.ToLower(t.PublicID)
	system := strings.ToLower(t.SystemID)

	if t.ForceQuirks || t.TagName != "html" {
		return dom.Quirks
	}
	for _, id := range quirkyPublicIdentifiers {
		if public == id {
			return dom.Quirks
		}
	}
	if system == quirkySystemIdentifier {
		return dom.Quirks
	}
	if hasAnyPrefix(public, quirkyPublicIdentifierPrefixes...) {
		return dom.Quirks
	}
	if !t.HasSystemID && hasAnyPrefix(public, html401Frameset, html401Transitional) {
		return dom.Quirks
	}

	if hasAnyPrefix(public, xhtml1Frameset, xhtml1Transitional) {
		return dom.LimitedQuirks
	}
	if t.HasSystemID && hasAnyPrefix(public, html401Frameset, html401Transitional) {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}

// isConformingDoctype reports whether a DOCTYPE token is one of the forms
// that does not raise a parse error.
func isConformingDoctype(t *Token) bool {
	if t.TagName != "html" || t.HasPublicID {
		return false
	}
	return !t.HasSystemID || t.SystemID == "about:legacy-compat"
}
