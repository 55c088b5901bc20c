package http

import (
	"embed"
	"html/template"
)

const (
	pageTemplate  = "index.html"
	errorTemplate = "error.html"
)

type errorPageData struct {
	Status  int
	Title   string
	Message string
}

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplates parses the embedded page templates for gin's HTML renderer.
func PageTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}
