package layer

import (
	"fmt"
	"sort"
	"strings"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/document"
)

// NewTerminologyLayer checks configured controlled-terminology requirements
// against the document's codelists. All findings here are advisory: the
// layer rolls MAJOR up to WARNING.
func NewTerminologyLayer() Layer {
	return Layer{
		ID: dv.LayerTerminology,
		Checks: []Check{
			{Name: "required_term_sets", Run: checkRequiredTermSets},
			{Name: "standard_references", Run: checkStandardRefs},
		},
	}
}

// findCodeList locates the codelist for a canonical key: its Name contains
// the key (case-insensitive) or its OID is exactly "CL."+key. The first
// match in document order wins.
func findCodeList(doc *document.Document, key string) *document.Element {
	upper := strings.ToUpper(key)
	for _, cl := range doc.Find("odm:CodeList") {
		if strings.Contains(strings.ToUpper(cl.Attr("Name")), upper) {
			return cl
		}
		if cl.Attr("OID") == "CL."+upper {
			return cl
		}
	}
	return nil
}

// codedTerms collects the CodedValue set of a codelist's items.
func codedTerms(cl *document.Element) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, item := range cl.Descendants("odm:CodeListItem") {
		if v := item.Attr("CodedValue"); v != "" {
			terms[v] = struct{}{}
		}
	}
	for _, item := range cl.Descendants("odm:EnumeratedItem") {
		if v := item.Attr("CodedValue"); v != "" {
			terms[v] = struct{}{}
		}
	}
	return terms
}

func checkRequiredTermSets(in Input) []dv.Finding {
	var findings []dv.Finding

	// Configured keys in sorted order so output is deterministic.
	keys := make([]string, 0, len(in.Opts.RequiredTerminologySets))
	for key := range in.Opts.RequiredTerminologySets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		required := in.Opts.RequiredTerminologySets[key]
		if len(required) == 0 {
			continue
		}

		cl := findCodeList(in.Doc, key)
		if cl == nil {
			findings = append(findings, dv.Major(dv.CodeCodeListNotFound).
				Subject(key).
				Message(fmt.Sprintf("%s codelist not found in define.xml", key)).
				Build())
			continue
		}

		present := codedTerms(cl)
		var missing []string
		for _, term := range required {
			if _, ok := present[term]; !ok {
				missing = append(missing, term)
			}
		}
		sort.Strings(missing)

		for _, term := range missing {
			findings = append(findings, dv.Major(dv.CodeMissingTerm).
				Subject(key).
				Message(fmt.Sprintf("%s codelist missing required term: %q", key, term)).
				Context("missing_term", term).
				Build())
		}
	}
	return findings
}

func checkStandardRefs(in Input) []dv.Finding {
	for _, cl := range in.Doc.Find("odm:CodeList") {
		if cl.HasDefAttr("StandardOID") {
			return nil
		}
	}
	return []dv.Finding{
		dv.Minor(dv.CodeNoStandardRefs).
			Message("No controlled-terminology standard OID references found").
			Build(),
	}
}
