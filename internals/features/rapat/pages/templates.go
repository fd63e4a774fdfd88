package pages

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates di-parse sekali saat package dimuat.
var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
