package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var PatientPageTemplate = &patientPageTemplate{
	template.Must(template.New("patient_page.html").Funcs(template.FuncMap{
		"selected": contains,
		"icon":     icon,
	}).ParseFS(templateFS, "templates/patient_page.html")),
}

type patientPageTemplate struct {
	*template.Template
}

func (t *patientPageTemplate) Execute(w io.Writer, ctx interface{}) error {
	return t.Render(w, ctx.(*Page))
}

func (t *patientPageTemplate) Render(w io.Writer, page *Page) error {
	return t.Template.Execute(w, page)
}

func contains(v string, values []string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func icon(name string) string {
	switch name {
	case "discharge":
		return IconDischarge
	}
	return ""
}
