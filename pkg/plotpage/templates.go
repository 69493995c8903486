package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"
)

// EChartsAssetURL is the script the rendered pages load echarts from.
const EChartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

const (
	pageTemplate    = "page"
	sectionTemplate = "section"
)

const templateSource = `
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} · {{.ProjectName}}</title>
<script src="` + EChartsAssetURL + `"></script>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: {{.Theme.Background}}; color: {{.Theme.TextPrimary}}; }
header { padding: 24px 32px; border-bottom: 1px solid {{.Theme.Border}}; }
header h1 { margin: 0; font-size: 22px; }
header .project { color: {{.Theme.Accent}}; font-weight: 600; letter-spacing: .04em; }
header p { color: {{.Theme.TextMuted}}; margin: 6px 0 0; }
main { padding: 24px 32px; }
section { background: {{.Theme.Surface}}; border: 1px solid {{.Theme.Border}}; border-radius: 8px; padding: 16px; margin-bottom: 24px; }
section h2 { margin: 0 0 4px; font-size: 17px; }
section .subtitle { color: {{.Theme.TextMuted}}; margin: 0 0 12px; }
.echart-box { width: 100%; }
.hint { color: {{.Theme.TextMuted}}; font-size: 13px; }
{{.ExtraCSS}}
</style>
</head>
<body>
<header>
<div class="project">{{.ProjectName}}</div>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
</header>
<main>
{{.Content}}
</main>
</body>
</html>
{{end}}

{{define "section"}}<section>
{{if .Title}}<h2>{{.Title}}</h2>{{end}}
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
{{.Chart}}
{{with .Hint}}<div class="hint"><strong>{{.Title}}</strong><ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul></div>{{end}}
</section>
{{end}}
`

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("plotpage").Parse(templateSource)
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template.
}

type pageData struct {
	Title       string
	Description string
	ProjectName string
	Theme       ThemeConfig
	ExtraCSS    template.CSS
	Content     template.HTML
}

type sectionData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []string
}
