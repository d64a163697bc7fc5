package report

import (
	"encoding/json"
	"io"

	"github.com/definexml/validator/audit"
)

// WriteJSON writes the record as indented JSON. The shape follows the
// struct tags on Record, Trail, and Verdict, so downstream pipelines can
// depend on stable field names.
func WriteJSON(w io.Writer, rec *audit.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
