package layer

import (
	"fmt"

	dv "github.com/definexml/validator"
)

// NewBusinessLayer checks the critical business rules: derived variables
// must name a computational method, CodeList references must resolve, and
// datasets must declare their structure. Severities come from the
// configured overrides; MAJOR findings here are blocking.
func NewBusinessLayer() Layer {
	return Layer{
		ID: dv.LayerBusiness,
		Checks: []Check{
			{Name: "derived_variables_methods", Run: checkDerivedMethods},
			{Name: "codelist_references", Run: checkCodeListRefs},
			{Name: "dataset_structure", Run: checkDatasetStructure},
		},
	}
}

func checkDerivedMethods(in Input) []dv.Finding {
	var findings []dv.Finding
	severity := in.Opts.SeverityFor(dv.CodeDerivedNoMethod, dv.SeverityMajor)

	for _, item := range in.Doc.Find("odm:ItemDef") {
		if item.DefAttr("Origin") != "Derived" {
			continue
		}
		if item.DefAttr("MethodOID") != "" {
			continue
		}
		name := item.Attr("Name")
		findings = append(findings, dv.NewFinding(severity, dv.CodeDerivedNoMethod).
			Subject(name).
			Message(fmt.Sprintf("Derived variable %q missing MethodOID", name)).
			Build())
	}
	return findings
}

func checkCodeListRefs(in Input) []dv.Finding {
	// Resolve against the defined CodeList identifiers only. This is
	// narrower than the identifier graph, which records every defining
	// element regardless of kind.
	defined := make(map[string]struct{})
	for _, cl := range in.Doc.Find("odm:CodeList") {
		if oid := cl.Attr("OID"); oid != "" {
			defined[oid] = struct{}{}
		}
	}

	var findings []dv.Finding
	severity := in.Opts.SeverityFor(dv.CodeInvalidCodeListRef, dv.SeverityMajor)

	for _, item := range in.Doc.Find("odm:ItemDef") {
		oid := item.Attr("CodeListOID")
		if oid == "" {
			continue
		}
		if _, ok := defined[oid]; ok {
			continue
		}
		name := item.Attr("Name")
		findings = append(findings, dv.NewFinding(severity, dv.CodeInvalidCodeListRef).
			Subject(name).
			Message(fmt.Sprintf("Variable %q references undefined CodeList %q", name, oid)).
			Context("codelist_oid", oid).
			Build())
	}
	return findings
}

func checkDatasetStructure(in Input) []dv.Finding {
	var findings []dv.Finding
	severity := in.Opts.SeverityFor(dv.CodeMissingStructure, dv.SeverityMajor)

	for _, ds := range in.Doc.Find("odm:ItemGroupDef") {
		if ds.DefAttr("Structure") != "" {
			continue
		}
		name := ds.Attr("Name")
		findings = append(findings, dv.NewFinding(severity, dv.CodeMissingStructure).
			Subject(name).
			Message(fmt.Sprintf("Dataset %q missing def:Structure attribute", name)).
			Build())
	}
	return findings
}
