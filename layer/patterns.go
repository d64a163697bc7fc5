package layer

import (
	"fmt"
	"sort"
	"strconv"

	dv "github.com/definexml/validator"
)

// NewPatternsLayer detects cross-reference and consistency defects using
// the identifier graph: orphaned references, duplicate definitions,
// ItemRef ordering anomalies, and empty value-level metadata.
func NewPatternsLayer() Layer {
	return Layer{
		ID: dv.LayerPatterns,
		Checks: []Check{
			{Name: "orphaned_oids", Run: checkOrphanedOIDs},
			{Name: "duplicate_oids", Run: checkDuplicateOIDs},
			{Name: "variable_ordering", Run: checkVariableOrdering},
			{Name: "vlm_shape", Run: checkValueListShape},
		},
	}
}

func checkOrphanedOIDs(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, oid := range in.Graph.Orphans() {
		refs := in.Graph.Referenced[oid]
		b := dv.Critical(dv.CodeOrphanReference).
			Subject(oid).
			Message(fmt.Sprintf("Referenced OID %q is not defined anywhere", oid))
		if len(refs) > 0 {
			b.Context("reference_kind", string(refs[0].Kind)).
				Context("location", refs[0].LocationHint)
		}
		findings = append(findings, b.Build())
	}
	return capped(findings, in, "orphaned reference")
}

func checkDuplicateOIDs(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, oid := range in.Graph.Duplicates() {
		defs := in.Graph.Defined[oid]
		owners := make([]string, 0, len(defs))
		for _, d := range defs {
			owners = append(owners, d.OwnerTag)
		}
		sort.Strings(owners)

		findings = append(findings, dv.Critical(dv.CodeDuplicateOID).
			Subject(oid).
			Message(fmt.Sprintf("OID %q is defined %d times", oid, len(defs))).
			Context("occurrences", strconv.Itoa(len(defs))).
			Context("owners", fmt.Sprintf("%v", owners)).
			Build())
	}
	return capped(findings, in, "duplicate definition")
}

// checkVariableOrdering evaluates three independent conditions per dataset:
// non-numeric OrderNumbers, duplicate OrderNumbers, and OrderNumbers out of
// ascending order. A dataset can trip any combination of the three.
func checkVariableOrdering(in Input) []dv.Finding {
	var findings []dv.Finding

	for _, ds := range in.Doc.Find("odm:ItemGroupDef") {
		name := ds.Attr("Name")

		var orders []int
		nonNumeric := false
		for _, ref := range ds.ChildrenNamed("odm:ItemRef") {
			raw := ref.Attr("OrderNumber")
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				nonNumeric = true
				continue
			}
			orders = append(orders, n)
		}

		if nonNumeric {
			findings = append(findings, dv.Minor(dv.CodeOrderNonNumeric).
				Subject(name).
				Message(fmt.Sprintf("Dataset %q has non-numeric OrderNumber", name)).
				Build())
		}
		if len(orders) == 0 {
			continue
		}

		seen := make(map[int]struct{}, len(orders))
		duplicate := false
		for _, n := range orders {
			if _, ok := seen[n]; ok {
				duplicate = true
				break
			}
			seen[n] = struct{}{}
		}
		if duplicate {
			findings = append(findings, dv.Minor(dv.CodeOrderDuplicate).
				Subject(name).
				Message(fmt.Sprintf("Dataset %q has duplicate OrderNumbers", name)).
				Build())
		}

		if !sort.IntsAreSorted(orders) {
			findings = append(findings, dv.Info(dv.CodeOrderNonSequential).
				Subject(name).
				Message(fmt.Sprintf("Dataset %q has non-sequential OrderNumbers", name)).
				Build())
		}
	}
	return findings
}

func checkValueListShape(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, vlm := range in.Doc.Find("def:ValueListDef") {
		if len(vlm.ChildrenNamed("odm:ItemRef")) > 0 {
			continue
		}
		oid := vlm.Attr("OID")
		findings = append(findings, dv.Minor(dv.CodeEmptyValueList).
			Subject(oid).
			Message(fmt.Sprintf("ValueListDef %q is empty", oid)).
			Build())
	}
	return findings
}
