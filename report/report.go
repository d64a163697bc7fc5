// Package report renders validation records for humans and machines.
// Three formats are supported: plain or colored text for terminals, JSON
// for pipelines, and a standalone HTML page for review packages.
package report

import (
	"fmt"
	"io"

	"github.com/definexml/validator/audit"
)

// Format selects the output representation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name from user input.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatHTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json, or html)", s)
	}
}

// Render writes the record to w in the given format. Text output is
// uncolored; use TextRenderer directly for terminal styling.
func Render(w io.Writer, format Format, rec *audit.Record) error {
	switch format {
	case FormatText:
		return TextRenderer{}.Render(w, rec)
	case FormatJSON:
		return WriteJSON(w, rec)
	case FormatHTML:
		return WriteHTML(w, rec)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
