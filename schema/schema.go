// Package schema delegates XSD conformance checking to the jacoelho/xsd
// engine and converts its validation errors into findings, and manages
// download and caching of the official CDISC define.xml schemas.
package schema

import (
	"fmt"
	"os"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/xsderrors"

	dv "github.com/definexml/validator"
)

// detailLimit bounds how many schema errors are reported individually;
// the remainder is summarized in one capped finding.
const detailLimit = 10

// Checker validates define.xml files against a compiled XSD schema.
// A Checker is safe for concurrent use once constructed.
type Checker struct {
	schema *xsd.Engine
}

// NewChecker loads and compiles the schema at the given path.
func NewChecker(schemaPath string) (*Checker, error) {
	s, err := xsd.Compile(xsd.File(schemaPath))
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", schemaPath, err)
	}
	return &Checker{schema: s}, nil
}

// Check validates the file and returns conformance findings. A document
// that conforms yields no findings. A schema engine failure (as opposed to
// a document defect) yields one evaluation-failure finding so the rollup
// reports ERROR rather than silently passing the layer.
func (c *Checker) Check(definePath string) []dv.Finding {
	f, err := os.Open(definePath)
	if err != nil {
		return []dv.Finding{evaluationFailure(err)}
	}
	defer f.Close()

	err = c.schema.Validate(f)
	if err == nil {
		return nil
	}

	var list []*xsderrors.Error
	for _, item := range xsderrors.Flatten(err) {
		diag, ok := item.(*xsderrors.Error)
		if !ok {
			return []dv.Finding{evaluationFailure(err)}
		}
		list = append(list, diag)
	}
	if len(list) == 0 {
		return []dv.Finding{evaluationFailure(err)}
	}

	var findings []dv.Finding
	for i, v := range list {
		if i == detailLimit {
			break
		}
		b := dv.Critical(dv.CodeSchemaViolation).
			Layer(dv.LayerSchema).
			Subject(v.Path()).
			Message(fmt.Sprintf("[%s] %s", v.Code(), v.Message()))
		if v.Line() > 0 {
			b.Context("line", fmt.Sprintf("%d", v.Line()))
		}
		findings = append(findings, b.Build())
	}

	if len(list) > detailLimit {
		findings = append(findings, dv.Info(dv.CodeFindingsCapped).
			Layer(dv.LayerSchema).
			Message(fmt.Sprintf("... and %d more schema errors", len(list)-detailLimit)).
			Context("suppressed", fmt.Sprintf("%d", len(list)-detailLimit)).
			Build())
	}
	return findings
}

// evaluationFailure reports a schema engine failure (as opposed to a
// document defect) as one evaluation-failure finding.
func evaluationFailure(err error) dv.Finding {
	return dv.Critical(dv.CodeCheckEvaluation).
		Subject("schema_conformance").
		Layer(dv.LayerSchema).
		Message(fmt.Sprintf("check %q failed to evaluate: %v", "schema_conformance", err)).
		Build()
}
