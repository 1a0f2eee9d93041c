package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// pageSet holds one parsed page: the shared layout plus its content block
type pageSet struct {
	tmpl *template.Template
}

func mustPage(content string) pageSet {
	t := template.Must(template.ParseFS(templateFS, "templates/layout.gohtml", "templates/"+content))
	return pageSet{tmpl: t}
}

var (
	homePage        = mustPage("home.gohtml")
	leaderboardPage = mustPage("leaderboard.gohtml")
)

func (p pageSet) render(w io.Writer, data any) error {
	return p.tmpl.ExecuteTemplate(w, "layout", data)
}
