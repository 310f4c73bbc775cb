// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"html/template"
	"io"
)

// htmlTemplate is the self-contained report page. It inlines its styling so
// the file can be mailed around or archived without companions.
var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ARXML merge report</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #222; }
  h1 { border-bottom: 2px solid #888; padding-bottom: 0.3rem; }
  table { border-collapse: collapse; margin: 1rem 0; }
  th, td { border: 1px solid #bbb; padding: 0.3rem 0.6rem; text-align: left; }
  th { background: #eee; }
  .ok { color: #2a7f2a; }
  .fail { color: #b03030; }
  .warn { color: #9a6700; }
</style>
</head>
<body>
<h1>ARXML merge report</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} with strategy <strong>{{.Strategy}}</strong>.</p>
<p>Result: {{if .Success}}<strong class="ok">success</strong>{{else}}<strong class="fail">failure</strong>{{end}},
{{.Summary.TotalConflicts}} conflict(s), {{.Summary.WarningCount}} warning(s), {{.Summary.ErrorCount}} error(s).</p>

{{if .Summary.ByType}}<h2>Conflict summary</h2>
<table>
<tr><th>Conflict type</th><th>Count</th></tr>
{{range $type, $count := .Summary.ByType}}<tr><td>{{$type}}</td><td>{{$count}}</td></tr>
{{end}}</table>
<table>
<tr><th>Resolution strategy</th><th>Count</th></tr>
{{range $strategy, $count := .Summary.ByStrategy}}<tr><td>{{$strategy}}</td><td>{{$count}}</td></tr>
{{end}}</table>
{{end}}

<h2>Inputs</h2>
<ul>
{{range .Inputs}}<li>{{.}}</li>
{{end}}</ul>

{{if .Errors}}<h2>Errors</h2>
<ul>
{{range .Errors}}<li class="fail">{{.}}</li>
{{end}}</ul>
{{end}}

{{if .Conflicts}}<h2>Conflicts</h2>
<table>
<tr><th>Path</th><th>Element</th><th>Conflict</th><th>Resolution</th><th>Description</th></tr>
{{range .Conflicts}}<tr>
<td>{{.Path}}</td>
<td>{{.ElementType}} {{.ElementName}}</td>
<td>{{.Type}}</td>
<td>{{.Resolution}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}</table>
{{end}}

{{if .Warnings}}<h2>Warnings</h2>
<ul>
{{range .Warnings}}<li class="warn">{{.}}</li>
{{end}}</ul>
{{end}}

<h2>Signal inventory</h2>
{{if .Signals}}<table>
<tr><th>Name</th><th>Kind</th><th>Length</th><th>Source</th></tr>
{{range .Signals}}<tr><td>{{.Name}}</td><td>{{.Kind}}</td><td>{{if .Length}}{{.Length}}{{end}}</td><td>{{.Source}}</td></tr>
{{end}}</table>
{{else}}<p>No signals found.</p>
{{end}}

<h2>Interface inventory</h2>
{{if .Interfaces}}<table>
<tr><th>Name</th><th>Kind</th><th>Data type</th><th>Source</th></tr>
{{range .Interfaces}}<tr><td>{{.Name}}</td><td>{{.Kind}}</td><td>{{.DataType}}</td><td>{{.Source}}</td></tr>
{{end}}</table>
{{else}}<p>No interfaces found.</p>
{{end}}
</body>
</html>
`))

// WriteHTML writes the report as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	if err := htmlTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
