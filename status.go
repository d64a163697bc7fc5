package definevalidator

// Status is the rolled-up outcome of one layer or of a whole run.
// The order is total: ERROR > FAIL > WARNING > PASS.
type Status string

const (
	// StatusPass indicates no findings at all.
	StatusPass Status = "PASS"
	// StatusWarning indicates only advisory findings.
	StatusWarning Status = "WARNING"
	// StatusFail indicates blocking findings.
	StatusFail Status = "FAIL"
	// StatusError indicates a check could not be evaluated.
	StatusError Status = "ERROR"
)

// Rank returns the position of the status in the total order.
// Higher rank means worse. Unknown statuses rank below PASS.
func (s Status) Rank() int {
	switch s {
	case StatusError:
		return 4
	case StatusFail:
		return 3
	case StatusWarning:
		return 2
	case StatusPass:
		return 1
	}
	return 0
}

// Worse returns the worse of the two statuses.
func (s Status) Worse(other Status) Status {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// majorFails maps each layer to its MAJOR-severity policy. Layers listed
// true treat MAJOR findings as blocking (FAIL); all others roll MAJOR up to
// WARNING. CRITICAL is FAIL everywhere and evaluation failures are ERROR
// everywhere; only the MAJOR mapping is per layer.
var majorFails = map[LayerID]bool{
	LayerSchema:       true,
	LayerStructure:    true,
	LayerBusiness:     true,
	LayerTerminology:  false,
	LayerCompleteness: false,
	LayerMethods:      false,
	LayerPatterns:     false,
}

// MajorFails reports whether MAJOR findings are blocking for the layer.
func MajorFails(layer LayerID) bool {
	return majorFails[layer]
}

// Rollup computes the status of one layer from its findings.
//
// Any evaluation-failure finding forces ERROR. Otherwise the maximum
// severity decides: CRITICAL is FAIL; MAJOR is FAIL for blocking layers and
// WARNING for advisory layers (see MajorFails); MINOR and INFO are WARNING;
// no findings is PASS.
func Rollup(layer LayerID, findings []Finding) Status {
	maxSeverity := Severity("")
	for _, f := range findings {
		if f.IsEvaluationFailure() {
			return StatusError
		}
		if f.Severity.Rank() > maxSeverity.Rank() {
			maxSeverity = f.Severity
		}
	}

	switch maxSeverity {
	case SeverityCritical:
		return StatusFail
	case SeverityMajor:
		if MajorFails(layer) {
			return StatusFail
		}
		return StatusWarning
	case SeverityMinor, SeverityInfo:
		return StatusWarning
	}
	return StatusPass
}

// RollupOverall computes the run status as the worst status among all
// executed layers. A run with no executed layers is PASS.
func RollupOverall(results map[LayerID]*LayerResult) Status {
	overall := StatusPass
	for _, r := range results {
		if r == nil {
			continue
		}
		overall = overall.Worse(r.Status)
	}
	return overall
}
