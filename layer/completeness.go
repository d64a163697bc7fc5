package layer

import (
	"fmt"

	dv "github.com/definexml/validator"
)

// NewCompletenessLayer checks metadata coverage: descriptions on variables,
// datasets, and methods. Completeness issues never block; the strongest
// finding this layer produces is MINOR, and each check is capped so a
// document with systemic omissions stays readable.
func NewCompletenessLayer() Layer {
	return Layer{
		ID: dv.LayerCompleteness,
		Checks: []Check{
			{Name: "variable_labels", Run: checkVariableLabels},
			{Name: "dataset_descriptions", Run: checkDatasetDescriptions},
			{Name: "method_documentation", Run: checkMethodDocumentation},
		},
	}
}

func checkVariableLabels(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, item := range in.Doc.Find("odm:ItemDef") {
		if item.Description() != "" {
			continue
		}
		name := item.Attr("Name")
		findings = append(findings, dv.Minor(dv.CodeVariableNoLabel).
			Subject(name).
			Message(fmt.Sprintf("Variable %q missing description/label", name)).
			Build())
	}
	return capped(findings, in, "variable label")
}

func checkDatasetDescriptions(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, ds := range in.Doc.Find("odm:ItemGroupDef") {
		if ds.Description() != "" {
			continue
		}
		name := ds.Attr("Name")
		findings = append(findings, dv.Minor(dv.CodeDatasetNoDescription).
			Subject(name).
			Message(fmt.Sprintf("Dataset %q missing description", name)).
			Build())
	}
	return capped(findings, in, "dataset description")
}

func checkMethodDocumentation(in Input) []dv.Finding {
	var findings []dv.Finding
	minChars := in.Opts.Quality.MinDocChars

	for _, method := range in.Doc.Find("def:MethodDef") {
		desc := method.Description()
		if len(desc) >= minChars {
			continue
		}
		oid := method.Attr("OID")
		findings = append(findings, dv.Minor(dv.CodeMethodShortDoc).
			Subject(oid).
			Message(fmt.Sprintf("Method %q has insufficient documentation (<%d chars)", oid, minChars)).
			Build())
	}
	return capped(findings, in, "method documentation")
}
