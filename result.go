package definevalidator

import (
	"time"
)

// LayerResult is the outcome of one executed validation layer.
// It is created by the engine after the layer's checks complete and is
// never mutated afterward.
type LayerResult struct {
	// Layer identifies which layer ran
	Layer LayerID `json:"layer"`

	// Status is derived from Findings via Rollup
	Status Status `json:"status"`

	// Findings in the order the checks produced them
	Findings []Finding `json:"findings,omitempty"`

	// Duration is the wall-clock time the layer took
	Duration time.Duration `json:"durationMs"`
}

// NewLayerResult folds a layer's findings into a finalized result.
func NewLayerResult(layer LayerID, findings []Finding, duration time.Duration) *LayerResult {
	return &LayerResult{
		Layer:    layer,
		Status:   Rollup(layer, findings),
		Findings: findings,
		Duration: duration,
	}
}

// CountBySeverity returns the number of findings with the given severity.
func (r *LayerResult) CountBySeverity(s Severity) int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			count++
		}
	}
	return count
}

// Verdict is the terminal, read-only output of one validation run.
type Verdict struct {
	// Overall is the worst status among executed layers
	Overall Status `json:"overallStatus"`

	// TotalFindings across all executed layers
	TotalFindings int `json:"totalFindings"`

	// CriticalCount is the number of CRITICAL findings across all layers
	CriticalCount int `json:"criticalCount"`

	// Layers maps each executed layer to its result. Layers that were not
	// selected for the run are absent, not present-with-empty-results.
	Layers map[LayerID]*LayerResult `json:"perLayer"`

	// LayerOrder lists the executed layers in fixed execution order
	LayerOrder []LayerID `json:"layerOrder"`
}

// NewVerdict assembles the verdict once all selected layers have run.
// The executed slice must be in fixed layer order.
func NewVerdict(results map[LayerID]*LayerResult, executed []LayerID) *Verdict {
	v := &Verdict{
		Overall:    RollupOverall(results),
		Layers:     results,
		LayerOrder: executed,
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		v.TotalFindings += len(r.Findings)
		v.CriticalCount += r.CountBySeverity(SeverityCritical)
	}
	return v
}

// Passed reports whether the run produced no blocking outcome.
func (v *Verdict) Passed() bool {
	return v.Overall == StatusPass || v.Overall == StatusWarning
}

// Findings returns all findings across layers in fixed layer order.
func (v *Verdict) Findings() []Finding {
	var all []Finding
	for _, id := range v.LayerOrder {
		if r := v.Layers[id]; r != nil {
			all = append(all, r.Findings...)
		}
	}
	return all
}

// FindingsBySeverity returns all findings with the given severity,
// in fixed layer order.
func (v *Verdict) FindingsBySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range v.Findings() {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}
