package parser

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/gobrowse/engine/parser/dom"
)

// The tokenizer lowercases tag names, SVG wants e.g. "foreignObject".
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

type foreignAttribute struct {
	prefix    string
	local     string
	namespace dom.Namespace
}

var foreignAttributeAdjustments = map[string]foreignAttribute{
	"xlink:actuate": {"xlink", "actuate", dom.Xlinkns},
	"xlink:arcrole": {"xlink", "arcrole", dom.Xlinkns},
	"xlink:href":    {"xlink", "href", dom.Xlinkns},
	"xlink:role":    {"xlink", "role", dom.Xlinkns},
	"xlink:show":    {"xlink", "show", dom.Xlinkns},
	"xlink:title":   {"xlink", "title", dom.Xlinkns},
	"xlink:type":    {"xlink", "type", dom.Xlinkns},
	"xml:lang":      {"xml", "lang", dom.Xmlns},
	"xml:space":     {"xml", "space", dom.Xmlns},
	"xmlns":         {"", "xmlns", dom.Xmlnsns},
	"xmlns:xlink":   {"xmlns", "xlink", dom.Xmlnsns},
}

// foreignAttributes converts token attributes for an element in namespace
// ns, renaming per the namespace's table and namespacing xlink, xml and
// xmlns attributes.
func foreignAttributes(attrs []Attribute, ns dom.Namespace) []dom.Attribute {
	var names map[string]string
	switch ns {
	case dom.Svgns:
		names = svgAttributeAdjustments
	case dom.Mathmlns:
		names = mathMLAttributeAdjustments
	}
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if f, ok := foreignAttributeAdjustments[a.Name]; ok {
			out = append(out, dom.Attribute{Namespace: f.namespace, Prefix: f.prefix, Name: f.local, Value: a.Value})
			continue
		}
		name := a.Name
		if adjusted, ok := names[name]; ok {
			name = adjusted
		}
		out = append(out, dom.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// isBreakoutTag reports whether a start tag leaves foreign content.
func isBreakoutTag(t *Token) bool {
	switch t.Atom {
	case atom.B, atom.Big, atom.Blockquote, atom.Body, atom.Br, atom.Center,
		atom.Code, atom.Dd, atom.Div, atom.Dl, atom.Dt, atom.Em, atom.Embed,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Head, atom.Hr,
		atom.I, atom.Img, atom.Li, atom.Listing, atom.Menu, atom.Meta, atom.Nobr,
		atom.Ol, atom.P, atom.Pre, atom.Ruby, atom.S, atom.Small, atom.Span,
		atom.Strong, atom.Strike, atom.Sub, atom.Sup, atom.Table, atom.Tt, atom.U,
		atom.Ul, atom.Var:
		return true
	case atom.Font:
		for _, a := range t.Attributes {
			switch a.Name {
			case "color", "face", "size":
				return true
			}
		}
	}
	return false
}

func isMathMLTextIntegrationPoint(n *dom.Node) bool {
	if n.Type != dom.ElementNode || n.Namespace != dom.Mathmlns {
		return false
	}
	switch n.Atom {
	case atom.Mi, atom.Mo, atom.Mn, atom.Ms, atom.Mtext:
		return true
	}
	return false
}

func isHTMLIntegrationPoint(n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	switch n.Namespace {
	case dom.Mathmlns:
		if n.Atom == atom.AnnotationXml {
			enc, _ := n.AttrValue("encoding")
			enc = strings.ToLower(enc)
			return enc == "text/html" || enc == "application/xhtml+xml"
		}
	case dom.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// usesForeignRules decides which rules a token is processed with: those of
// the insertion mode, or those for foreign content.
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) usesForeignRules(t *Token) bool {
	if len(c.openElements) == 0 || t.TokenType == EndOfFileToken {
		return false
	}
	n := c.doc.Node(c.adjustedCurrentNode())
	if n.Namespace == dom.Htmlns {
		return false
	}
	if isMathMLTextIntegrationPoint(n) {
		if t.TokenType == StartTagToken && t.Atom != atom.Mglyph && t.Atom != atom.Malignmark {
			return false
		}
		if t.TokenType == CharacterToken {
			return false
		}
	}
	if n.Namespace == dom.Mathmlns && n.Atom == atom.AnnotationXml &&
		t.TokenType == StartTagToken && t.Atom == atom.Svg {
		return false
	}
	if isHTMLIntegrationPoint(n) && (t.TokenType == StartTagToken || t.TokenType == CharacterToken) {
		return false
	}
	return true
}

// popUntilHTMLOrIntegrationPoint pops foreign elements until the current node
// is an HTML element or an integration point.
func (c *HTMLTreeConstructor) popUntilHTMLOrIntegrationPoint() {
	for {
		n := c.currentNode()
		if isMathMLTextIntegrationPoint(n) || isHTMLIntegrationPoint(n) || n.Namespace == dom.Htmlns {
			return
		}
		c.openElements.pop()
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) foreignContentHandler(t *Token) bool {
	switch t.TokenType {
	case CharacterToken:
		switch {
		case t.Data == "\x00":
			c.parseError(UnexpectedNullCharacter, t)
			c.insertCharacter("\uFFFD")
		case isWhitespace(t):
			c.insertCharacter(t.Data)
		default:
			c.insertCharacter(t.Data)
			c.framesetOK = false
		}
	case CommentToken:
		c.insertComment(t, c.appropriatePlace(dom.Nil))
	case DoctypeToken:
		c.parseError(UnexpectedDoctype, t)
	case StartTagToken:
		if isBreakoutTag(t) {
			c.parseError(UnexpectedStartTag, t)
			c.popUntilHTMLOrIntegrationPoint()
			var reprocess bool
			reprocess, c.insertionMode = c.useRulesFor(t, c.insertionMode)
			return reprocess
		}
		ns := c.doc.Node(c.adjustedCurrentNode()).Namespace
		c.insertForeignElement(t, ns)
		if t.SelfClosing {
			c.openElements.pop()
			c.acknowledgeSelfClosingTag()
		}
	case EndTagToken:
		if t.Atom == atom.Br || t.Atom == atom.P {
			c.parseError(UnexpectedEndTag, t)
			c.popUntilHTMLOrIntegrationPoint()
			var reprocess bool
			reprocess, c.insertionMode = c.useRulesFor(t, c.insertionMode)
			return reprocess
		}
		n := c.currentNode()
		if t.Atom == atom.Script && n.Namespace == dom.Svgns && n.Name == "script" {
			c.openElements.pop()
			return false
		}
		if strings.ToLower(n.Name) != t.TagName {
			c.parseError(UnexpectedEndTag, t)
		}
		for i := len(c.openElements) - 1; i > 0; i-- {
			n := c.doc.Node(c.openElements[i])
			if strings.ToLower(n.Name) == t.TagName {
				c.openElements = c.openElements[:i]
				return false
			}
			if prev := c.doc.Node(c.openElements[i-1]); prev.Namespace == dom.Htmlns {
				var reprocess bool
				reprocess, c.insertionMode = c.useRulesFor(t, c.insertionMode)
				return reprocess
			}
		}
	}
	return false
}

