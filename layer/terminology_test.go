package layer

import (
	"testing"

	dv "github.com/definexml/validator"
)

// sexOnly restricts the required terminology to the SEX codelist so tests
// can assert exact finding sets.
func sexOnly(in Input, terms ...string) Input {
	in.Opts.RequiredTerminologySets = map[string][]string{"SEX": terms}
	return in
}

func TestTerminologyLayer_MissingTerm(t *testing.T) {
	const sexMF = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3"
	     xmlns:def="http://www.cdisc.org/ns/def/v2.1">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <CodeList OID="CL.SEX" Name="Sex" def:StandardOID="STD.CT">
	      <EnumeratedItem CodedValue="M"/>
	      <EnumeratedItem CodedValue="F"/>
	    </CodeList>
	  </MetaDataVersion></Study>
	</ODM>`

	in := sexOnly(input(t, sexMF), "M", "F", "U")
	findings := NewTerminologyLayer().Run(in)

	missing := findingsByCode(findings, dv.CodeMissingTerm)
	if len(missing) != 1 {
		t.Fatalf("missing_term findings = %d; want exactly 1", len(missing))
	}
	if missing[0].Context["missing_term"] != "U" {
		t.Errorf("missing term = %q; want U", missing[0].Context["missing_term"])
	}
	if missing[0].Severity != dv.SeverityMajor {
		t.Errorf("severity = %s; want MAJOR", missing[0].Severity)
	}

	// Terminology is advisory: MAJOR rolls up to WARNING, not FAIL.
	if got := dv.Rollup(dv.LayerTerminology, findings); got != dv.StatusWarning {
		t.Errorf("Rollup = %s; want WARNING", got)
	}
}

func TestTerminologyLayer_AllTermsPresent(t *testing.T) {
	const sexFull = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3"
	     xmlns:def="http://www.cdisc.org/ns/def/v2.1">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <CodeList OID="CL.SEX" Name="Sex" def:StandardOID="STD.CT">
	      <EnumeratedItem CodedValue="M"/>
	      <EnumeratedItem CodedValue="F"/>
	      <EnumeratedItem CodedValue="U"/>
	    </CodeList>
	  </MetaDataVersion></Study>
	</ODM>`

	in := sexOnly(input(t, sexFull), "M", "F", "U")
	if findings := NewTerminologyLayer().Run(in); len(findings) != 0 {
		t.Errorf("findings = %v; want none", findings)
	}
}

func TestTerminologyLayer_CodeListNotFound(t *testing.T) {
	in := sexOnly(input(t, skeleton), "M", "F", "U")
	findings := NewTerminologyLayer().Run(in)

	notFound := findingsByCode(findings, dv.CodeCodeListNotFound)
	if len(notFound) != 1 {
		t.Fatalf("codelist_not_found findings = %d; want 1", len(notFound))
	}
	if notFound[0].Subject != "SEX" {
		t.Errorf("subject = %q; want SEX", notFound[0].Subject)
	}
	// The per-term checks are skipped when the codelist is absent.
	if missing := findingsByCode(findings, dv.CodeMissingTerm); len(missing) != 0 {
		t.Errorf("missing_term findings = %d; want 0 when codelist not found", len(missing))
	}
}

func TestTerminologyLayer_MatchesByOID(t *testing.T) {
	// The Name carries no hint; the codelist is located by its CL.<KEY> OID.
	const byOID = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3"
	     xmlns:def="http://www.cdisc.org/ns/def/v2.1">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <CodeList OID="CL.SEX" Name="Gender codes" def:StandardOID="STD.CT">
	      <CodeListItem CodedValue="M"/>
	      <CodeListItem CodedValue="F"/>
	      <CodeListItem CodedValue="U"/>
	    </CodeList>
	  </MetaDataVersion></Study>
	</ODM>`

	in := sexOnly(input(t, byOID), "M", "F", "U")
	if findings := NewTerminologyLayer().Run(in); len(findings) != 0 {
		t.Errorf("findings = %v; want none when codelist found by OID", findings)
	}
}

func TestTerminologyLayer_NoStandardRefs(t *testing.T) {
	const noStd = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <CodeList OID="CL.SEX" Name="Sex">
	      <EnumeratedItem CodedValue="M"/>
	      <EnumeratedItem CodedValue="F"/>
	      <EnumeratedItem CodedValue="U"/>
	    </CodeList>
	  </MetaDataVersion></Study>
	</ODM>`

	in := sexOnly(input(t, noStd), "M", "F", "U")
	findings := NewTerminologyLayer().Run(in)

	noRefs := findingsByCode(findings, dv.CodeNoStandardRefs)
	if len(noRefs) != 1 || noRefs[0].Severity != dv.SeverityMinor {
		t.Errorf("no_standard_refs findings = %v; want one MINOR", noRefs)
	}
}

func TestTerminologyLayer_EmptyRequirementSkipped(t *testing.T) {
	in := sexOnly(input(t, skeleton)) // zero required terms
	findings := findingsByCode(NewTerminologyLayer().Run(in), dv.CodeCodeListNotFound)
	if len(findings) != 0 {
		t.Errorf("findings = %v; want none for an empty requirement", findings)
	}
}
