package report

import (
	"html/template"
	"io"

	dv "github.com/definexml/validator"
	"github.com/definexml/validator/audit"
)

// WriteHTML writes a standalone HTML page for the record. The page has no
// external assets so it can be archived alongside the submission.
func WriteHTML(w io.Writer, rec *audit.Record) error {
	return htmlTmpl.Execute(w, htmlData{Record: rec})
}

type htmlData struct {
	*audit.Record
}

// OrderedLayers yields layer results in fixed execution order for the
// template's range.
func (d htmlData) OrderedLayers() []*dv.LayerResult {
	var out []*dv.LayerResult
	for _, id := range d.Verdict.LayerOrder {
		if r := d.Verdict.Layers[id]; r != nil {
			out = append(out, r)
		}
	}
	return out
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>define.xml validation report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
  h1 { font-size: 1.4rem; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; font-size: 0.9rem; }
  th { background: #f5f5f5; }
  .PASS { color: #1a7f37; font-weight: bold; }
  .WARNING { color: #b35900; font-weight: bold; }
  .FAIL, .ERROR { color: #c0241d; font-weight: bold; }
  .CRITICAL { color: #8b008b; font-weight: bold; }
  .MAJOR { color: #c0241d; }
  .MINOR { color: #b35900; }
  .INFO { color: #666; }
  .meta { color: #666; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>define.xml validation report</h1>
{{with .Trail}}
<p class="meta">
  Run {{.ValidationID}}<br>
  File {{.DefinePath}} ({{.DefineSizeBytes}} bytes)<br>
  SHA-256 {{.DefineSHA256}}<br>
  Validated {{.Timestamp.Format "2006-01-02 15:04:05 MST"}} by validator {{.ValidatorVersion}}
</p>
{{end}}
<p>Overall: <span class="{{.Verdict.Overall}}">{{.Verdict.Overall}}</span>
({{.Verdict.TotalFindings}} findings, {{.Verdict.CriticalCount}} critical)</p>

<table>
<tr><th>Layer</th><th>Status</th><th>Findings</th><th>Duration</th></tr>
{{range .OrderedLayers}}
<tr><td>{{.Layer}}</td><td class="{{.Status}}">{{.Status}}</td><td>{{len .Findings}}</td><td>{{.Duration}}</td></tr>
{{end}}
</table>

{{range .OrderedLayers}}{{if .Findings}}
<h2>{{.Layer}}</h2>
<table>
<tr><th>Severity</th><th>Code</th><th>Subject</th><th>Message</th></tr>
{{range .Findings}}
<tr><td class="{{.Severity}}">{{.Severity}}</td><td>{{.Code}}</td><td>{{.Subject}}</td><td>{{.Message}}</td></tr>
{{end}}
</table>
{{end}}{{end}}
</body>
</html>
`))
