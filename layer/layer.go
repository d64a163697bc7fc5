// Package layer implements the rule-check groups of the define.xml
// validation engine. Each layer is a named set of independent checks; every
// check is a pure function over the shared immutable inputs (document,
// identifier graph, options) returning findings.
package layer

import (
	"fmt"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/document"
	"github.com/definexml/validator/graph"
)

// Input is the shared immutable state every check reads. Checks never
// mutate any of it.
type Input struct {
	// Doc is the parsed define.xml tree
	Doc *document.Document

	// Graph is the identifier cross-reference index
	Graph *graph.IdentifierGraph

	// Opts is the run configuration
	Opts *dv.Options
}

// CheckFunc is one rule check: shared inputs in, findings out.
type CheckFunc func(in Input) []dv.Finding

// Check pairs a rule check with its diagnostic name.
type Check struct {
	Name string
	Run  CheckFunc
}

// Layer is one named group of checks executed and reported as a unit.
type Layer struct {
	ID     dv.LayerID
	Checks []Check
}

// Run executes every check in order and returns the combined findings, all
// tagged with the layer id. A panicking check is isolated: it contributes a
// single evaluation-failure finding naming the check, and the remaining
// checks still run.
func (l Layer) Run(in Input) []dv.Finding {
	var findings []dv.Finding
	for _, check := range l.Checks {
		findings = append(findings, l.runCheck(check, in)...)
	}
	for i := range findings {
		findings[i].Layer = l.ID
	}
	return findings
}

func (l Layer) runCheck(check Check, in Input) (findings []dv.Finding) {
	defer func() {
		if r := recover(); r != nil {
			findings = []dv.Finding{
				dv.Critical(dv.CodeCheckEvaluation).
					Subject(check.Name).
					Message(fmt.Sprintf("check %q failed to evaluate: %v", check.Name, r)).
					Build(),
			}
		}
	}()
	return check.Run(in)
}

// All returns every rule-check layer in fixed execution order. The schema
// layer is constructed separately because it needs a compiled schema; see
// the schema package.
func All() []Layer {
	return []Layer{
		NewStructureLayer(),
		NewBusinessLayer(),
		NewTerminologyLayer(),
		NewCompletenessLayer(),
		NewMethodsLayer(),
		NewPatternsLayer(),
	}
}

// capped truncates findings at the per-check cap and appends one summary
// finding reporting how many occurrences were suppressed.
func capped(findings []dv.Finding, in Input, what string) []dv.Finding {
	cap := in.Opts.Cap()
	if len(findings) <= cap {
		return findings
	}
	suppressed := len(findings) - cap
	findings = findings[:cap]
	return append(findings, dv.Info(dv.CodeFindingsCapped).
		Message(fmt.Sprintf("... and %d more %s findings suppressed by the per-check cap", suppressed, what)).
		Context("suppressed", fmt.Sprintf("%d", suppressed)).
		Build())
}
