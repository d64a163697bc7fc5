package layer

import (
	"fmt"
	"strings"
	"testing"

	dv "github.com/definexml/validator"
)

// A reference to X with no definition anywhere yields exactly one CRITICAL
// orphan finding.
func TestPatternsLayer_OrphanedReference(t *testing.T) {
	const orphan = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <ItemGroupDef OID="IG.DM" Name="DM">
	      <ItemRef ItemOID="IT.GONE" OrderNumber="1"/>
	    </ItemGroupDef>
	  </MetaDataVersion></Study>
	</ODM>`

	findings := findingsByCode(NewPatternsLayer().Run(input(t, orphan)), dv.CodeOrphanReference)
	if len(findings) != 1 {
		t.Fatalf("orphan_reference findings = %d; want exactly 1", len(findings))
	}

	f := findings[0]
	if f.Subject != "IT.GONE" {
		t.Errorf("subject = %q; want IT.GONE", f.Subject)
	}
	if f.Severity != dv.SeverityCritical {
		t.Errorf("severity = %s; want CRITICAL", f.Severity)
	}
	if f.Context["reference_kind"] != "ItemOID" {
		t.Errorf("reference_kind = %q; want ItemOID", f.Context["reference_kind"])
	}
	if !strings.Contains(f.Context["location"], "odm:ItemRef") {
		t.Errorf("location = %q; want a path ending at the referencing ItemRef", f.Context["location"])
	}
}

// An OID defined twice yields exactly one CRITICAL duplicate finding
// recording both occurrences.
func TestPatternsLayer_DuplicateOID(t *testing.T) {
	const dup = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <ItemDef OID="IT.DUP" Name="A"/>
	    <ItemDef OID="IT.DUP" Name="B"/>
	  </MetaDataVersion></Study>
	</ODM>`

	findings := findingsByCode(NewPatternsLayer().Run(input(t, dup)), dv.CodeDuplicateOID)
	if len(findings) != 1 {
		t.Fatalf("duplicate_oid findings = %d; want exactly 1", len(findings))
	}

	f := findings[0]
	if f.Subject != "IT.DUP" {
		t.Errorf("subject = %q; want IT.DUP", f.Subject)
	}
	if f.Severity != dv.SeverityCritical {
		t.Errorf("severity = %s; want CRITICAL", f.Severity)
	}
	if f.Context["occurrences"] != "2" {
		t.Errorf("occurrences = %q; want 2", f.Context["occurrences"])
	}
}

func orderingDoc(orders ...string) string {
	var refs strings.Builder
	for i, n := range orders {
		fmt.Fprintf(&refs, `<ItemRef ItemOID="IT.%02d" OrderNumber="%s"/>`, i, n)
	}
	var defs strings.Builder
	for i := range orders {
		fmt.Fprintf(&defs, `<ItemDef OID="IT.%02d" Name="V%02d"/>`, i, i)
	}
	return fmt.Sprintf(`<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <ItemGroupDef OID="IG.DM" Name="DM">%s</ItemGroupDef>
	    %s
	  </MetaDataVersion></Study>
	</ODM>`, refs.String(), defs.String())
}

func TestPatternsLayer_VariableOrdering(t *testing.T) {
	tests := []struct {
		name      string
		orders    []string
		wantCodes []dv.CheckCode
	}{
		{"sequential", []string{"1", "2", "3"}, nil},
		{"gaps are fine", []string{"1", "5", "9"}, nil},
		{
			"out of order",
			[]string{"1", "3", "2"},
			[]dv.CheckCode{dv.CodeOrderNonSequential},
		},
		{
			"duplicates",
			[]string{"1", "1", "2"},
			[]dv.CheckCode{dv.CodeOrderDuplicate},
		},
		{
			"non numeric",
			[]string{"1", "abc", "2"},
			[]dv.CheckCode{dv.CodeOrderNonNumeric},
		},
		{
			"duplicate and out of order",
			[]string{"2", "1", "1"},
			[]dv.CheckCode{dv.CodeOrderDuplicate, dv.CodeOrderNonSequential},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := NewPatternsLayer().Run(input(t, orderingDoc(tt.orders...)))

			var ordering []dv.Finding
			for _, f := range findings {
				switch f.Code {
				case dv.CodeOrderNonNumeric, dv.CodeOrderDuplicate, dv.CodeOrderNonSequential:
					ordering = append(ordering, f)
				}
			}

			if len(ordering) != len(tt.wantCodes) {
				t.Fatalf("ordering findings = %v; want codes %v", ordering, tt.wantCodes)
			}
			for i, code := range tt.wantCodes {
				if ordering[i].Code != code {
					t.Errorf("ordering[%d].Code = %s; want %s", i, ordering[i].Code, code)
				}
			}
		})
	}
}

// Out-of-order numbering alone must not trigger the duplicate or
// non-numeric conditions.
func TestPatternsLayer_NonSequentialIsInfoOnly(t *testing.T) {
	findings := NewPatternsLayer().Run(input(t, orderingDoc("1", "3", "2")))

	nonSeq := findingsByCode(findings, dv.CodeOrderNonSequential)
	if len(nonSeq) != 1 {
		t.Fatalf("order_non_sequential findings = %d; want exactly 1", len(nonSeq))
	}
	if nonSeq[0].Severity != dv.SeverityInfo {
		t.Errorf("severity = %s; want INFO", nonSeq[0].Severity)
	}
	if len(findingsByCode(findings, dv.CodeOrderDuplicate)) != 0 {
		t.Error("unexpected order_duplicate finding")
	}
	if len(findingsByCode(findings, dv.CodeOrderNonNumeric)) != 0 {
		t.Error("unexpected order_non_numeric finding")
	}
}

func TestPatternsLayer_EmptyValueList(t *testing.T) {
	const vlm = `<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3"
	     xmlns:def="http://www.cdisc.org/ns/def/v2.1">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <def:ValueListDef OID="VL.EMPTY"/>
	    <def:ValueListDef OID="VL.OK">
	      <ItemRef ItemOID="IT.X" OrderNumber="1"/>
	    </def:ValueListDef>
	    <ItemDef OID="IT.X" Name="X"/>
	  </MetaDataVersion></Study>
	</ODM>`

	findings := findingsByCode(NewPatternsLayer().Run(input(t, vlm)), dv.CodeEmptyValueList)
	if len(findings) != 1 || findings[0].Subject != "VL.EMPTY" {
		t.Errorf("empty_value_list findings = %v; want one for VL.EMPTY", findings)
	}
}

func TestPatternsLayer_OrphanCapApplied(t *testing.T) {
	var refs strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&refs, `<ItemRef ItemOID="IT.GONE.%02d" OrderNumber="%d"/>`, i, i+1)
	}
	doc := fmt.Sprintf(`<ODM xmlns="http://www.cdisc.org/ns/odm/v1.3">
	  <Study OID="ST.001"><MetaDataVersion OID="MDV.1">
	    <ItemGroupDef OID="IG.DM" Name="DM">%s</ItemGroupDef>
	  </MetaDataVersion></Study>
	</ODM>`, refs.String())

	in := input(t, doc)
	in.Opts.FindingCapPerCheck = 5

	findings := NewPatternsLayer().Run(in)
	orphans := findingsByCode(findings, dv.CodeOrphanReference)
	if len(orphans) != 5 {
		t.Errorf("orphan findings = %d; want capped at 5", len(orphans))
	}
	if caps := findingsByCode(findings, dv.CodeFindingsCapped); len(caps) != 1 {
		t.Errorf("findings_capped = %d; want 1", len(caps))
	}
}
