// Package document provides a namespace-aware, read-only tree over a parsed
// define.xml document, with the path queries and attribute lookups the rule
// layers need. The tree is built once per run and never mutated.
package document

import "strings"

// XML namespaces used by define.xml documents.
const (
	NamespaceODM    = "http://www.cdisc.org/ns/odm/v1.3"
	NamespaceDefV21 = "http://www.cdisc.org/ns/def/v2.1"
	NamespaceDefV20 = "http://www.cdisc.org/ns/def/v2.0"
	NamespaceXlink  = "http://www.w3.org/1999/xlink"
	NamespaceArm    = "http://www.cdisc.org/ns/arm/v1.0"
)

// prefixes maps the conventional query prefixes to the namespace URIs they
// may resolve to. "def" accepts both the 2.0 and 2.1 namespaces so one
// query works across define.xml versions.
var prefixes = map[string][]string{
	"odm":   {NamespaceODM},
	"def":   {NamespaceDefV21, NamespaceDefV20},
	"xlink": {NamespaceXlink},
	"arm":   {NamespaceArm},
}

// Document is the read-only handle to a parsed define.xml tree.
type Document struct {
	root *Element
}

// Root returns the document element.
func (d *Document) Root() *Element {
	return d.root
}

// Attr is one attribute on an element. Space is the resolved namespace URI,
// empty for unprefixed attributes.
type Attr struct {
	Space string
	Local string
	Value string
}

// Element is one element in the parsed tree.
type Element struct {
	Space    string
	Local    string
	Attrs    []Attr
	Children []*Element
	Parent   *Element

	text strings.Builder
}

// Text returns the text directly under the element, trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.text.String())
}

// Attr returns the value of the named unprefixed attribute, or "" when
// absent. Missing attributes are not an error; they simply read empty.
func (e *Element) Attr(local string) string {
	v, _ := e.LookupAttr("", local)
	return v
}

// AttrNS returns the value of a namespaced attribute, or "" when absent.
func (e *Element) AttrNS(space, local string) string {
	v, _ := e.LookupAttr(space, local)
	return v
}

// DefAttr returns the value of a def-namespace attribute, accepting both
// the 2.0 and 2.1 namespaces.
func (e *Element) DefAttr(local string) string {
	if v, ok := e.LookupAttr(NamespaceDefV21, local); ok {
		return v
	}
	v, _ := e.LookupAttr(NamespaceDefV20, local)
	return v
}

// LookupAttr returns an attribute value and whether it is present.
// An empty space matches only unprefixed attributes.
func (e *Element) LookupAttr(space, local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Local == local && a.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// HasDefAttr reports whether a def-namespace attribute is present,
// regardless of value.
func (e *Element) HasDefAttr(local string) bool {
	if _, ok := e.LookupAttr(NamespaceDefV21, local); ok {
		return true
	}
	_, ok := e.LookupAttr(NamespaceDefV20, local)
	return ok
}

// Name returns the element's qualified display name using the conventional
// prefix for its namespace, for use in diagnostics.
func (e *Element) Name() string {
	for prefix, spaces := range prefixes {
		for _, s := range spaces {
			if e.Space == s {
				return prefix + ":" + e.Local
			}
		}
	}
	return e.Local
}

// Path returns the element's location as a slash-separated chain of
// qualified names from the root, for use as a diagnostic location hint.
func (e *Element) Path() string {
	if e.Parent == nil {
		return "/" + e.Name()
	}
	return e.Parent.Path() + "/" + e.Name()
}

// Description returns the text of the element's
// Description/TranslatedText child, or "" when absent.
func (e *Element) Description() string {
	for _, desc := range e.ChildrenNamed("odm:Description") {
		for _, tt := range desc.ChildrenNamed("odm:TranslatedText") {
			if t := tt.Text(); t != "" {
				return t
			}
		}
	}
	return ""
}

// matchName reports whether the element matches a qualified query name such
// as "odm:ItemDef" or "def:MethodDef". A bare name matches the local name
// in any namespace.
func (e *Element) matchName(qname string) bool {
	prefix, local, ok := strings.Cut(qname, ":")
	if !ok {
		return e.Local == qname
	}
	if e.Local != local {
		return false
	}
	for _, space := range prefixes[prefix] {
		if e.Space == space {
			return true
		}
	}
	return false
}

// ChildrenNamed returns the direct children matching a qualified name,
// in document order.
func (e *Element) ChildrenNamed(qname string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.matchName(qname) {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns all descendants matching a qualified name, in
// document order, including e itself when it matches.
func (e *Element) Descendants(qname string) []*Element {
	var out []*Element
	e.walk(func(el *Element) {
		if el.matchName(qname) {
			out = append(out, el)
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// Find returns all elements matching a simple slash-separated path query.
// The first segment selects descendants of the root anywhere in the tree;
// subsequent segments select direct children. For example
// "odm:ItemGroupDef/odm:ItemRef" returns every ItemRef under any
// ItemGroupDef. Results are in document order.
func (d *Document) Find(path string) []*Element {
	if d == nil || d.root == nil || path == "" {
		return nil
	}

	segments := strings.Split(path, "/")
	current := d.root.Descendants(segments[0])
	for _, seg := range segments[1:] {
		var next []*Element
		for _, el := range current {
			next = append(next, el.ChildrenNamed(seg)...)
		}
		current = next
	}
	return current
}

// Walk calls fn for every element in document order.
func (d *Document) Walk(fn func(*Element)) {
	if d == nil || d.root == nil {
		return
	}
	d.root.walk(fn)
}

// ElementCount returns the number of elements in the tree.
func (d *Document) ElementCount() int {
	count := 0
	d.Walk(func(*Element) { count++ })
	return count
}
