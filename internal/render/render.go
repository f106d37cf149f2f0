// Package render turns handler data into HTML pages.  Each page template is
// parsed together with base.html and executed through its "base" block.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movies-catalogue/internal/tmdb"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageHome  = "homepage"
	PageMovie = "movie_details"
	PageError = "error"
)

var pages = []string{PageHome, PageMovie, PageError}

// Renderer implements echo.Renderer.
type Renderer struct {
	tmpls map[string]*template.Template
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"tmdbImageURL": imageURL,
	}
}

// imageURL accepts the raw map value so templates can pass fields such as
// .poster_path, which may be null upstream.
func imageURL(path any, size string) string {
	p, _ := path.(string)
	if p == "" {
		return ""
	}
	return tmdb.BuildPosterURL(p, size)
}

// New parses all embedded pages.
func New() (*Renderer, error) {
	r := &Renderer{tmpls: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.tmpls[page] = t
	}
	return r, nil
}

// Render executes page name with data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.tmpls[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}
