package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/supercuration/supercon/internal"
)

var log = internal.GetLogger()

var LayoutTemplates = []string{
	"templates/layout.html",
}

//go:embed templates/*
var TemplatesFS embed.FS

func NewPage(title, subTitle, path string, templates []string, data interface{}) *Page {
	return &Page{
		Title:     title,
		SubTitle:  subTitle,
		Templates: templates,
		Path:      path,
		Data:      data,
	}
}

type Page struct {
	Title     string
	SubTitle  string
	Templates []string
	Path      string
	Data      interface{}
}

func (p *Page) Render(w http.ResponseWriter, r *http.Request) {
	// If HX-Request header is set, render content template only
	// If the page was loaded directly, render full layout
	if r.Header.Get("HX-Request") == "true" {
		p.render(w, p.Templates, "Content")
	} else {
		templates := append(append([]string{}, LayoutTemplates...), p.Templates...)
		p.render(w, templates, "Layout")
	}
}

func (p *Page) render(w http.ResponseWriter, templates []string, name string) {
	tmpl, err := template.New(p.Title).Funcs(templateFuncs()).ParseFS(TemplatesFS, templates...)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = tmpl.ExecuteTemplate(w, name, p)
	if err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}
}
