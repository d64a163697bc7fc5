package layer

import (
	"fmt"

	dv "github.com/definexml/validator"
)

// NewMethodsLayer assesses the quality of computational-method
// descriptions. The thresholds and the code-keyword vocabulary come from
// the configured QualityPolicy; the checks themselves only classify.
func NewMethodsLayer() Layer {
	return Layer{
		ID: dv.LayerMethods,
		Checks: []Check{
			{Name: "method_quality", Run: checkMethodQuality},
		},
	}
}

func checkMethodQuality(in Input) []dv.Finding {
	methods := in.Doc.Find("def:MethodDef")
	if len(methods) == 0 {
		return []dv.Finding{
			dv.Info(dv.CodeNoMethods).
				Message("No computational methods defined (unusual for derived variables)").
				Build(),
		}
	}

	policy := in.Opts.Quality
	var findings []dv.Finding

	for _, method := range methods {
		oid := method.Attr("OID")
		name := method.Attr("Name")
		if name == "" {
			name = oid
		}

		desc := method.Description()
		switch {
		case desc == "":
			findings = append(findings, dv.Major(dv.CodeMethodNoDescription).
				Subject(name).
				Message(fmt.Sprintf("Method %q has no description", name)).
				Context("method_oid", oid).
				Build())

		case len(desc) < policy.BriefThreshold:
			findings = append(findings, dv.Minor(dv.CodeMethodBrief).
				Subject(name).
				Message(fmt.Sprintf("Method %q has very brief description (%d chars)", name, len(desc))).
				Context("method_oid", oid).
				Context("description_length", fmt.Sprintf("%d", len(desc))).
				Build())

		case len(desc) > policy.VerboseThreshold && !policy.ContainsCode(desc):
			// Long descriptions that read as code are legitimately detailed.
			findings = append(findings, dv.Info(dv.CodeMethodVerbose).
				Subject(name).
				Message(fmt.Sprintf("Method %q has very long description (%d chars) - consider splitting", name, len(desc))).
				Context("method_oid", oid).
				Context("description_length", fmt.Sprintf("%d", len(desc))).
				Build())
		}
	}
	return findings
}
