package server

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var viewFuncs = template.FuncMap{
	"rfc3339": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
}

// parseViews parses every embedded template
func parseViews() (*template.Template, error) {
	return template.New("").Funcs(viewFuncs).ParseFS(templateFS, "templates/*.html")
}
