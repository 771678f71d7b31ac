// Package views holds the HTML pages rendered by the account handlers.
package views

import (
	"embed"
	"html/template"
)

// Template names.
const (
	Login    = "login.html"
	Register = "register.html"
	Profile  = "profile.html"
)

//go:embed templates/*.html
var files embed.FS

// Parse returns the embedded page templates.
func Parse() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// Must is like Parse but panics on error.
func Must() *template.Template {
	return template.Must(Parse())
}
