// Package engine orchestrates the validation layers over a parsed
// define.xml document and composes the final verdict.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/document"
	"github.com/definexml/validator/graph"
	"github.com/definexml/validator/layer"
)

// SchemaChecker validates a define.xml file against its XSD schema.
// It is an external collaborator; schema conformance runs only when one is
// attached. See the schema package for the standard implementation.
type SchemaChecker interface {
	Check(definePath string) []dv.Finding
}

// Validator runs the layered validation pipeline. All layers read the same
// immutable document, identifier graph, and options, so they can execute on
// independent goroutines with no locking; results merge in fixed layer
// order so the verdict is deterministic regardless of scheduling.
type Validator struct {
	options *dv.Options
	metrics *dv.Metrics
	layers  []layer.Layer

	schemaChecker SchemaChecker

	// sem bounds batch validation concurrency
	sem     chan struct{}
	semOnce sync.Once
}

// New creates a Validator with the given options.
func New(opts ...dv.Option) *Validator {
	options := dv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a Validator from pre-resolved options, as produced
// by config.Resolve.
func NewWithOptions(options *dv.Options) *Validator {
	if options == nil {
		options = dv.DefaultOptions()
	}
	return &Validator{
		options: options,
		metrics: dv.NewMetrics(),
		layers:  layer.All(),
	}
}

// SetSchemaChecker attaches the schema-conformance collaborator.
func (v *Validator) SetSchemaChecker(c SchemaChecker) {
	v.schemaChecker = c
}

// Options returns the validator's options.
func (v *Validator) Options() *dv.Options {
	return v.options
}

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *dv.Metrics {
	return v.metrics
}

// ValidateFile parses and validates a define.xml file. The schema layer
// runs when enabled and a SchemaChecker is attached; the rule layers run
// against the parsed tree.
func (v *Validator) ValidateFile(ctx context.Context, definePath string) (*dv.Verdict, error) {
	doc, err := document.ParseFile(definePath)
	if err != nil {
		return nil, err
	}
	return v.validate(ctx, doc, definePath)
}

// ValidateDocument validates an already-parsed document. The schema layer
// is absent from the verdict because conformance checking needs the raw
// file; use ValidateFile to include it.
func (v *Validator) ValidateDocument(ctx context.Context, doc *document.Document) (*dv.Verdict, error) {
	return v.validate(ctx, doc, "")
}

func (v *Validator) validate(ctx context.Context, doc *document.Document, definePath string) (*dv.Verdict, error) {
	if doc == nil {
		return nil, fmt.Errorf("validate: nil document")
	}
	start := time.Now()

	in := layer.Input{
		Doc:   doc,
		Graph: graph.Build(doc),
		Opts:  v.options,
	}

	results := make(map[dv.LayerID]*dv.LayerResult)
	var executed []dv.LayerID

	// Schema conformance runs first; it reads the raw file, not the tree.
	if definePath != "" && v.schemaChecker != nil && v.options.LayerEnabled(dv.LayerSchema) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := v.runSchemaLayer(definePath)
		results[dv.LayerSchema] = result
		executed = append(executed, dv.LayerSchema)
	}

	enabled := v.enabledLayers()
	if v.options.ParallelLayers && len(enabled) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v.runParallel(enabled, in, results)
	} else {
		for _, l := range enabled {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[l.ID] = v.runLayer(l, in)
		}
	}
	for _, l := range enabled {
		executed = append(executed, l.ID)
	}

	verdict := dv.NewVerdict(results, executed)
	v.metrics.RecordRun(time.Since(start), verdict.Passed())
	return verdict, nil
}

// enabledLayers returns the rule-check layers selected for this run, in
// fixed order.
func (v *Validator) enabledLayers() []layer.Layer {
	var enabled []layer.Layer
	for _, l := range v.layers {
		if v.options.LayerEnabled(l.ID) {
			enabled = append(enabled, l)
		}
	}
	return enabled
}

// runParallel executes layers on independent goroutines. Each goroutine
// writes only its own slot, and the shared results map is filled after all
// workers complete, so composition order never depends on scheduling.
func (v *Validator) runParallel(layers []layer.Layer, in layer.Input, results map[dv.LayerID]*dv.LayerResult) {
	slots := make([]*dv.LayerResult, len(layers))

	var wg sync.WaitGroup
	for i, l := range layers {
		wg.Add(1)
		go func(i int, l layer.Layer) {
			defer wg.Done()
			slots[i] = v.runLayer(l, in)
		}(i, l)
	}
	wg.Wait()

	for i, l := range layers {
		results[l.ID] = slots[i]
	}
}

func (v *Validator) runLayer(l layer.Layer, in layer.Input) *dv.LayerResult {
	start := time.Now()
	findings := l.Run(in)
	duration := time.Since(start)

	result := dv.NewLayerResult(l.ID, findings, duration)
	v.record(result)
	return result
}

func (v *Validator) runSchemaLayer(definePath string) *dv.LayerResult {
	start := time.Now()
	findings := v.schemaChecker.Check(definePath)
	duration := time.Since(start)

	result := dv.NewLayerResult(dv.LayerSchema, findings, duration)
	v.record(result)
	return result
}

func (v *Validator) record(result *dv.LayerResult) {
	v.metrics.RecordLayer(result.Layer, result.Duration, len(result.Findings))
	for _, f := range result.Findings {
		v.metrics.RecordFinding(f.Severity)
	}

	if obs := v.options.Observer; obs != nil {
		for _, f := range result.Findings {
			obs.OnFinding(f)
		}
		obs.OnLayerComplete(result)
	}
}

// FileResult pairs one batch input with its verdict or error.
type FileResult struct {
	Path    string
	Verdict *dv.Verdict
	Err     error
}

// ValidateBatch validates multiple define.xml files in parallel, bounded by
// the configured worker count. Results are returned in input order.
func (v *Validator) ValidateBatch(ctx context.Context, paths []string) []FileResult {
	v.semOnce.Do(func() {
		workers := v.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		v.sem = make(chan struct{}, workers)
	})

	results := make([]FileResult, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(idx int, definePath string) {
			defer wg.Done()

			v.sem <- struct{}{}
			defer func() { <-v.sem }()

			verdict, err := v.ValidateFile(ctx, definePath)
			results[idx] = FileResult{Path: definePath, Verdict: verdict, Err: err}
		}(i, path)
	}

	wg.Wait()
	return results
}
