// Package view renders the server-side pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/attendance"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// FragmentHeader asks for the page content without the layout. The browser
// sets it when a refresh event arrives.
const FragmentHeader = "X-Fragment"

var pageNames = []string{"dashboard", "employees", "attendance", "history"}

// Page is what every template receives.
type Page struct {
	Title  string
	Nav    string
	Ready  bool
	Topics []string
	Data   interface{}
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"statusClass": func(s string) string {
		switch attendance.Status(s) {
		case attendance.StatusPresent:
			return "badge-present"
		case attendance.StatusAbsent:
			return "badge-absent"
		default:
			return "badge-unmarked"
		}
	},
}

// New parses the layout together with each page.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page. Requests carrying FragmentHeader get only
// the "content" block.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	entry := "layout.html"
	if req.Header.Get(FragmentHeader) != "" {
		entry = "content"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, page); err != nil {
		slog.ErrorContext(req.Context(), "Failed to render page", "page", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded CSS and JS under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
