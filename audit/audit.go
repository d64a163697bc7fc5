// Package audit assembles the run metadata regulators expect around a
// validation verdict: a unique run identifier, timestamps, file integrity
// hashes, and a log of the checks performed.
package audit

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	dv "github.com/definexml/validator"
)

// Entry is one logged event in the trail.
type Entry struct {
	Check     string    `json:"check"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// Trail is the audit record of one validation run.
type Trail struct {
	ValidationID     string    `json:"validation_id"`
	DefinePath       string    `json:"define_xml_path"`
	DefineSizeBytes  int64     `json:"define_xml_size_bytes"`
	DefineSHA256     string    `json:"define_xml_sha256"`
	Timestamp        time.Time `json:"validation_timestamp"`
	ValidatorVersion string    `json:"validator_version"`
	ChecksPerformed  []Entry   `json:"checks_performed"`
}

// MaxDefineSizeBytes is the submission gateway limit on define.xml size.
const MaxDefineSizeBytes = 100 << 20

// NewTrail builds the audit trail for one input file: run id, size, hash.
// It fails if the file is unreadable or exceeds the gateway size limit.
func NewTrail(definePath string) (*Trail, error) {
	info, err := os.Stat(definePath)
	if err != nil {
		return nil, fmt.Errorf("stat define.xml: %w", err)
	}
	if info.Size() > MaxDefineSizeBytes {
		return nil, fmt.Errorf("define.xml exceeds size limit: %d bytes > %d", info.Size(), MaxDefineSizeBytes)
	}

	hash, err := HashFile(definePath)
	if err != nil {
		return nil, fmt.Errorf("hash define.xml: %w", err)
	}

	return &Trail{
		ValidationID:     newValidationID(),
		DefinePath:       definePath,
		DefineSizeBytes:  info.Size(),
		DefineSHA256:     hash,
		Timestamp:        time.Now().UTC(),
		ValidatorVersion: dv.Version,
	}, nil
}

// Log appends one entry to the trail.
func (t *Trail) Log(check, status, detail string) {
	t.ChecksPerformed = append(t.ChecksPerformed, Entry{
		Check:     check,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Detail:    detail,
	})
}

// newValidationID generates a unique run identifier of the form
// VAL-20260830T101500Z-3f2a9c1d.
func newValidationID() string {
	stamp := time.Now().UTC().Format("20060102T150405Z")
	suffix := uuid.NewString()[:8]
	return "VAL-" + stamp + "-" + suffix
}

// Record wraps a verdict with its audit trail; this is what the report
// renderers consume.
type Record struct {
	Trail   *Trail      `json:"audit_trail"`
	Verdict *dv.Verdict `json:"verdict"`
}
