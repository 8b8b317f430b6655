// Package web embeds the site's templates, static assets and content.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed content
var contentFS embed.FS

// NewsCatalog is the path of the news catalog inside Content()
const NewsCatalog = "content/news.yaml"

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02/01/2006")
	},
	"year": func() int { return time.Now().Year() },
}

// Templates parses every page template together with the shared partials
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
}

// Static returns the asset tree served under /static
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func Content() fs.FS {
	return contentFS
}
