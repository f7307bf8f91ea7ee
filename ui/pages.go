package ui

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

// Page names. Each page is parsed together with templates/layout.html.
const (
	PageListing = "listing"
	PageDetail  = "detail"
)

var pageNames = []string{PageListing, PageDetail}

// Pages holds one parsed template set per page.
type Pages struct {
	sets map[string]*template.Template
}

// ParsePages parses the layout and every page template from fsys.
func ParsePages(fsys fs.FS, funcs template.FuncMap) (*Pages, error) {
	p := &Pages{sets: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", name, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

// Render executes the named page into w.
func (p *Pages) Render(w io.Writer, page string, data any) error {
	t, ok := p.sets[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// StaticHandler serves the files under static/.
func StaticHandler(fsys fs.FS) (http.Handler, error) {
	static, err := fs.Sub(fsys, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}
	return http.FileServerFS(static), nil
}
