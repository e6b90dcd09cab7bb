// internal/handler/render.go
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/middleware"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
)

const (
	webTemplateDir = "templates/web"
	layoutFile     = "layout.html"
)

// Data is the template context for a page. Render adds CurrentUser,
// Flashes and CSRFField.
type Data map[string]interface{}

// Renderer executes page templates wrapped in the shared layout.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *auth.SessionManager
}

// NewRenderer parses every page under templates/web in fsys together with
// the layout.
func NewRenderer(fsys fs.FS, sessions *auth.SessionManager) (*Renderer, error) {
	entries, err := fs.ReadDir(fsys, webTemplateDir)
	if err != nil {
		return nil, fmt.Errorf("reading page templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template), sessions: sessions}
	layout := path.Join(webTemplateDir, layoutFile)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == layoutFile || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layout, path.Join(webTemplateDir, name))
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"selected": func(id uint, ids []uint) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
	"fieldError": func(errs map[string]string, field string) string {
		return errs[field]
	},
}

// Render writes page with status. The page is rendered to a buffer first so
// a template error still produces a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data Data) {
	tmpl, ok := rd.pages[page]
	if !ok {
		slog.ErrorContext(r.Context(), "unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = Data{}
	}
	data["CurrentUser"] = middleware.CurrentUser(r.Context())
	data["Flashes"] = rd.sessions.Flashes(w, r)
	data["CSRFField"] = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutFile, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", "page", page, "error", err, "requestID", chmw.GetReqID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
