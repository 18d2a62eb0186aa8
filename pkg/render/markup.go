package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const markupTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Name}}{{.Name}}{{else}}Resume{{end}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; font-size: 11pt; }
h1 { font-size: 20pt; margin-bottom: 2pt; }
h2 { font-size: 13pt; border-bottom: 1px solid #444; margin-top: 14pt; }
p { margin: 2pt 0; }
.meta { color: #555; }
</style>
</head>
<body>
{{- if or .Name .Contact}}
<header>
{{- if .Name}}
<h1>{{.Name}}</h1>
{{- end}}
{{- if .Contact}}
<p class="contact">{{join .Contact " | "}}</p>
{{- end}}
</header>
{{- end}}
{{- range .Sections}}
<section class="{{.Key}}">
<h2>{{.Heading}}</h2>
{{- range .Entries}}
{{- if .Label}}
<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{- else}}
<div class="entry">
{{- if or .Title .Org}}
<p>{{if .Title}}<strong>{{.Title}}</strong>{{end}}{{if and .Title .Org}} | {{end}}{{.Org}}</p>
{{- end}}
{{- range .Meta}}
<p class="meta">{{.}}</p>
{{- end}}
{{- range .Text}}
<p>{{emphasize .}}</p>
{{- end}}
{{- if .Bullets}}
<ul>
{{- range .Bullets}}
<li>{{emphasize .}}</li>
{{- end}}
</ul>
{{- end}}
</div>
{{- end}}
{{- end}}
</section>
{{- end}}
</body>
</html>
`

//nolint:gochecknoglobals // parsed once
var (
	markupTmpl = template.Must(template.New("markup").Funcs(template.FuncMap{
		"join":      strings.Join,
		"emphasize": emphasize,
	}).Parse(markupTemplate))

	strongPattern = regexp.MustCompile(`\*\*([^*\n]+)\*\*|__([^_\n]+)__`)
	emPattern     = regexp.MustCompile(`\*([^*\n]+)\*|\b_([^_\n]+)_\b`)
	breakPattern  = regexp.MustCompile(`\r?\n`)
)

// writeMarkup renders v as semantic HTML suitable for word processor import.
func writeMarkup(v view) (out string, err error) {
	var buf bytes.Buffer
	err = markupTmpl.Execute(&buf, v)
	if err != nil {
		err = errors.Wrap(err, "failed to execute markup template")
		return out, err
	}
	out = buf.String()
	return out, err
}

// emphasize escapes s and then turns **bold**, __bold__, *italic* and _italic_
// markers into strong and em elements. Line breaks become <br>.
func emphasize(s string) (html template.HTML) {
	escaped := template.HTMLEscapeString(s)
	escaped = strongPattern.ReplaceAllString(escaped, "<strong>$1$2</strong>")
	escaped = emPattern.ReplaceAllString(escaped, "<em>$1$2</em>")
	escaped = breakPattern.ReplaceAllString(escaped, "<br>")
	//nolint:gosec // input is escaped above
	html = template.HTML(escaped)
	return html
}
