// Package graph builds the identifier cross-reference index over a parsed
// define.xml tree: which OIDs are defined, by what kind of element, and
// which OIDs are referenced, from where.
package graph

import "github.com/definexml/validator/document"

// RefKind tags the attribute through which an identifier was referenced.
type RefKind string

const (
	RefItemGroup RefKind = "ItemGroupOID"
	RefItem      RefKind = "ItemOID"
	RefCodeList  RefKind = "CodeListOID"
	RefMethod    RefKind = "MethodOID"
)

// Definition records one element defining an OID.
type Definition struct {
	// OwnerTag is the qualified name of the defining element
	OwnerTag string
}

// Reference records one cross-reference to an OID.
type Reference struct {
	// Kind is the referencing attribute
	Kind RefKind

	// LocationHint is the path of the referencing element
	LocationHint string
}

// IdentifierGraph holds the defined and referenced identifier collections.
// It is built in one pass over the tree and immutable thereafter. Iteration
// helpers return identifiers in document order so downstream findings are
// reproducible.
type IdentifierGraph struct {
	// Defined maps each OID to the elements that define it
	Defined map[string][]Definition

	// Referenced maps each OID to the references made to it
	Referenced map[string][]Reference

	// definedOrder lists defined OIDs by first appearance in the document
	definedOrder []string

	// referencedOrder lists referenced OIDs by first appearance
	referencedOrder []string
}

// Build scans the tree once and produces the identifier graph. Elements
// without an OID attribute and empty reference attributes contribute no
// entries; they are not errors.
func Build(doc *document.Document) *IdentifierGraph {
	g := &IdentifierGraph{
		Defined:    make(map[string][]Definition),
		Referenced: make(map[string][]Reference),
	}
	if doc == nil {
		return g
	}

	doc.Walk(func(e *document.Element) {
		if oid := e.Attr("OID"); oid != "" {
			if _, seen := g.Defined[oid]; !seen {
				g.definedOrder = append(g.definedOrder, oid)
			}
			g.Defined[oid] = append(g.Defined[oid], Definition{OwnerTag: e.Name()})
		}

		g.addRef(e, RefItemGroup, e.Attr("ItemGroupOID"))
		g.addRef(e, RefItem, e.Attr("ItemOID"))
		g.addRef(e, RefCodeList, e.Attr("CodeListOID"))
		g.addRef(e, RefMethod, e.DefAttr("MethodOID"))
	})

	return g
}

func (g *IdentifierGraph) addRef(e *document.Element, kind RefKind, oid string) {
	if oid == "" {
		return
	}
	if _, seen := g.Referenced[oid]; !seen {
		g.referencedOrder = append(g.referencedOrder, oid)
	}
	g.Referenced[oid] = append(g.Referenced[oid], Reference{
		Kind:         kind,
		LocationHint: e.Path(),
	})
}

// IsDefined reports whether the OID is defined anywhere in the document.
func (g *IdentifierGraph) IsDefined(oid string) bool {
	_, ok := g.Defined[oid]
	return ok
}

// DefinedOIDs returns all defined OIDs in document order.
func (g *IdentifierGraph) DefinedOIDs() []string {
	return g.definedOrder
}

// ReferencedOIDs returns all referenced OIDs in document order.
func (g *IdentifierGraph) ReferencedOIDs() []string {
	return g.referencedOrder
}

// Orphans returns the referenced OIDs with no definition, in document order.
func (g *IdentifierGraph) Orphans() []string {
	var out []string
	for _, oid := range g.referencedOrder {
		if !g.IsDefined(oid) {
			out = append(out, oid)
		}
	}
	return out
}

// Duplicates returns the OIDs defined more than once, in document order.
func (g *IdentifierGraph) Duplicates() []string {
	var out []string
	for _, oid := range g.definedOrder {
		if len(g.Defined[oid]) > 1 {
			out = append(out, oid)
		}
	}
	return out
}
