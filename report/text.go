package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/audit"
)

// Terminal palette, kept minimal and accessible.
var (
	colorPass     = lipgloss.Color("34")  // Green
	colorWarn     = lipgloss.Color("214") // Orange
	colorFail     = lipgloss.Color("196") // Red
	colorMuted    = lipgloss.Color("240") // Dark gray
	colorHeading  = lipgloss.Color("39")  // Blue
	colorCritical = lipgloss.Color("201") // Magenta
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorHeading)
	passStyle     = lipgloss.NewStyle().Foreground(colorPass)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCritical)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// TextRenderer writes a human-readable summary. With Color set it styles
// the output for terminals; otherwise the same layout is emitted as plain
// text suitable for logs and files.
type TextRenderer struct {
	Color bool
}

// Render writes the record to w.
func (r TextRenderer) Render(w io.Writer, rec *audit.Record) error {
	var b strings.Builder

	trail := rec.Trail
	verdict := rec.Verdict

	b.WriteString(r.heading("define.xml validation report"))
	b.WriteString("\n")
	if trail != nil {
		fmt.Fprintf(&b, "Run:       %s\n", trail.ValidationID)
		fmt.Fprintf(&b, "File:      %s (%d bytes)\n", trail.DefinePath, trail.DefineSizeBytes)
		fmt.Fprintf(&b, "SHA-256:   %s\n", trail.DefineSHA256)
		fmt.Fprintf(&b, "Timestamp: %s\n", trail.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&b, "Validator: %s\n", trail.ValidatorVersion)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall: %s\n", r.status(verdict.Overall))
	fmt.Fprintf(&b, "Findings: %d total, %d critical\n\n", verdict.TotalFindings, verdict.CriticalCount)

	for _, id := range verdict.LayerOrder {
		result := verdict.Layers[id]
		if result == nil {
			continue
		}
		fmt.Fprintf(&b, "%-14s %s  (%d findings, %s)\n",
			string(id), r.status(result.Status), len(result.Findings), result.Duration.Round(100*time.Microsecond))
		for _, f := range result.Findings {
			b.WriteString(r.finding(f))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r TextRenderer) finding(f dv.Finding) string {
	line := fmt.Sprintf("  [%s] %s: %s", f.Severity, f.Code, f.Message)
	if f.Subject != "" {
		line += fmt.Sprintf(" (%s)", f.Subject)
	}
	if r.Color {
		switch f.Severity {
		case dv.SeverityCritical:
			line = criticalStyle.Render(line)
		case dv.SeverityMajor:
			line = failStyle.Render(line)
		case dv.SeverityMinor:
			line = warnStyle.Render(line)
		default:
			line = mutedStyle.Render(line)
		}
	}
	return line + "\n"
}

func (r TextRenderer) status(s dv.Status) string {
	if !r.Color {
		return string(s)
	}
	switch s {
	case dv.StatusPass:
		return passStyle.Render(string(s))
	case dv.StatusWarning:
		return warnStyle.Render(string(s))
	default:
		return failStyle.Render(string(s))
	}
}

func (r TextRenderer) heading(s string) string {
	if r.Color {
		return headingStyle.Render(s) + "\n"
	}
	return s + "\n" + strings.Repeat("=", len(s)) + "\n"
}
