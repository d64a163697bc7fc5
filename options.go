package definevalidator

import (
	"runtime"
	"strings"
)

// Observer receives progress events from the engine while a run executes.
// It is an optional side channel: the verdict is complete and correct
// whether or not an observer is attached. Implementations must be safe for
// concurrent use when parallel layer execution is enabled.
type Observer interface {
	// OnFinding is called once for each finding as a layer produces it.
	OnFinding(f Finding)

	// OnLayerComplete is called once per layer after its result is final.
	OnLayerComplete(r *LayerResult)
}

// QualityPolicy holds the tunable heuristics the method-quality checks use.
// The defaults match common SAS-derivation documentation conventions; they
// are policy, not engine logic, and can be replaced via WithQualityPolicy.
type QualityPolicy struct {
	// MinDocChars is the minimum description length the completeness layer
	// accepts before flagging a method as under-documented
	MinDocChars int

	// BriefThreshold is the length below which a description is "too brief"
	BriefThreshold int

	// VerboseThreshold is the length above which a description is "very long"
	VerboseThreshold int

	// CodeKeywords is the vocabulary that marks a long description as
	// containing procedural or code content
	CodeKeywords []string
}

// DefaultQualityPolicy returns the standard heuristic thresholds.
func DefaultQualityPolicy() QualityPolicy {
	return QualityPolicy{
		MinDocChars:      20,
		BriefThreshold:   50,
		VerboseThreshold: 1000,
		CodeKeywords:     []string{"proc ", "data ", "if ", "then", "="},
	}
}

// ContainsCode reports whether the text matches the code-keyword vocabulary,
// case-insensitively.
func (p QualityPolicy) ContainsCode(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range p.CodeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Option configures the engine.
type Option func(*Options)

// Options holds all configuration for a validation run. It is treated as
// immutable input by every rule check.
type Options struct {
	// EnabledLayers selects which layers run, in fixed layer order.
	// Empty means all layers.
	EnabledLayers []LayerID

	// RequiredTerminologySets maps a canonical codelist key (e.g. "RACE")
	// to the controlled terms that codelist must contain
	RequiredTerminologySets map[string][]string

	// SeverityOverrides remaps the severity of individual check codes
	SeverityOverrides map[CheckCode]Severity

	// FindingCapPerCheck limits how many findings one check reports;
	// the remainder is summarized in a single capped finding
	FindingCapPerCheck int

	// Quality holds the method-quality heuristics
	Quality QualityPolicy

	// ParallelLayers runs independent layers on separate goroutines
	ParallelLayers bool

	// WorkerCount bounds batch validation concurrency
	WorkerCount int

	// Observer receives progress events; nil disables the side channel
	Observer Observer
}

// DefaultOptions returns the default configuration: all layers enabled,
// the FDA-required RACE and SEX term sets, the original criticality map,
// and a finding cap of 10 per check.
func DefaultOptions() *Options {
	return &Options{
		EnabledLayers: nil, // all
		RequiredTerminologySets: map[string][]string{
			"RACE": {
				"AMERICAN INDIAN OR ALASKA NATIVE",
				"ASIAN",
				"BLACK OR AFRICAN AMERICAN",
				"NATIVE HAWAIIAN OR OTHER PACIFIC ISLANDER",
				"WHITE",
				"MULTIPLE",
				"NOT REPORTED",
				"OTHER",
				"UNKNOWN",
			},
			"SEX": {"M", "F", "U"},
		},
		SeverityOverrides: map[CheckCode]Severity{
			CodeDerivedNoMethod:    SeverityCritical,
			CodeInvalidCodeListRef: SeverityCritical,
			CodeMissingStructure:   SeverityMajor,
		},
		FindingCapPerCheck: 10,
		Quality:            DefaultQualityPolicy(),
		ParallelLayers:     false,
		WorkerCount:        runtime.NumCPU(),
	}
}

// SeverityFor returns the configured severity for a check code, or the
// given default when no override is present.
func (o *Options) SeverityFor(code CheckCode, def Severity) Severity {
	if o == nil {
		return def
	}
	if s, ok := o.SeverityOverrides[code]; ok && s.Valid() {
		return s
	}
	return def
}

// Cap returns the effective per-check finding cap. Zero or negative caps
// fall back to the default of 10.
func (o *Options) Cap() int {
	if o == nil || o.FindingCapPerCheck <= 0 {
		return 10
	}
	return o.FindingCapPerCheck
}

// LayerEnabled reports whether the layer is selected for this run.
func (o *Options) LayerEnabled(id LayerID) bool {
	if o == nil || len(o.EnabledLayers) == 0 {
		return true
	}
	for _, l := range o.EnabledLayers {
		if l == id {
			return true
		}
	}
	return false
}

// WithLayers restricts the run to the given layers.
func WithLayers(layers ...LayerID) Option {
	return func(o *Options) {
		o.EnabledLayers = layers
	}
}

// WithTerminologySet sets the required terms for one codelist key,
// replacing only that key.
func WithTerminologySet(key string, terms []string) Option {
	return func(o *Options) {
		if o.RequiredTerminologySets == nil {
			o.RequiredTerminologySets = make(map[string][]string)
		}
		o.RequiredTerminologySets[key] = terms
	}
}

// WithSeverityOverride remaps the severity of one check code,
// replacing only that key.
func WithSeverityOverride(code CheckCode, severity Severity) Option {
	return func(o *Options) {
		if o.SeverityOverrides == nil {
			o.SeverityOverrides = make(map[CheckCode]Severity)
		}
		o.SeverityOverrides[code] = severity
	}
}

// WithFindingCap sets the per-check finding cap.
func WithFindingCap(n int) Option {
	return func(o *Options) {
		o.FindingCapPerCheck = n
	}
}

// WithQualityPolicy replaces the method-quality heuristics.
func WithQualityPolicy(p QualityPolicy) Option {
	return func(o *Options) {
		o.Quality = p
	}
}

// WithParallelLayers enables parallel layer execution.
func WithParallelLayers(enable bool) Option {
	return func(o *Options) {
		o.ParallelLayers = enable
	}
}

// WithWorkerCount bounds batch validation concurrency.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		o.WorkerCount = n
	}
}

// WithObserver attaches a progress observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}
