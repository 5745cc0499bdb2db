package export

import (
	"html/template"
	"io"
)

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="bs">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { font-size: 18px; margin: 0 0 12px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; font-size: 12px; }
th { background: #f0f0f0; }
.logo { max-height: 60px; margin-bottom: 10px; }
.footer { margin-top: 16px; font-size: 10px; color: #555; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
{{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="logo">{{end}}
<h1>{{if .Header}}{{.Header}}{{else}}{{.Title}}{{end}}</h1>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
<div class="footer">{{if .Footer}}{{.Footer}} · {{end}}{{.Created.Format "02.01.2006 15:04"}}</div>
</body>
</html>
`))

// WriteHTML renders the printable page for doc. All cell text is escaped.
func WriteHTML(w io.Writer, doc Document) error {
	return printTemplate.Execute(w, doc)
}
