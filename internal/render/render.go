// Package render parses the HTML templates and renders pages with the
// shared layout data: site branding, navigation, flash messages and the
// composed display blocks.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/scms-go/internal/blocks"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/session"
)

// Template sets. A page template lives in one of these directories and is
// parsed together with the layouts the set lists.
const (
	SetPublic = "public"
	SetAdmin  = "admin"
	SetAuth   = "auth"
)

var setLayouts = map[string][]string{
	SetPublic: {"layouts/base.html", "layouts/public.html"},
	SetAdmin:  {"layouts/base.html", "layouts/admin.html"},
	SetAuth:   {"layouts/base.html"},
}

var blankLinesRegex = regexp.MustCompile(`\n(?:[ \t\r]*\n)+`)

// Flasher pops the pending flash message of a session.
type Flasher interface {
	PopFlash(ctx context.Context) (session.Flash, bool)
}

// Renderer handles template rendering with caching.
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	fsys      fs.FS
	flasher   Flasher
	isDev     bool
	now       func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Sessions    Flasher
	// IsDev re-parses templates on every render.
	IsDev bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		fsys:    cfg.TemplatesFS,
		flasher: cfg.Sessions,
		isDev:   cfg.IsDev,
		now:     time.Now,
	}

	templates, err := parseTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

// parseTemplates parses every page of every set.
func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	partials, err := templateFiles(fsys, "partials")
	if err != nil {
		return nil, fmt.Errorf("getting partials: %w", err)
	}

	templates := make(map[string]*template.Template)
	for set, layouts := range setLayouts {
		pages, err := templateFiles(fsys, set)
		if err != nil {
			return nil, fmt.Errorf("getting %s templates: %w", set, err)
		}

		for _, page := range pages {
			name := set + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{}, layouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(fsys, files...)
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", name, err)
			}
			templates[name] = tmpl
		}
	}
	return templates, nil
}

// templateFiles returns all .html files in a directory. A missing directory
// yields no files.
func templateFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a template is registered.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Description string
	Site        model.SiteConfig
	Menu        []model.MenuItem
	Page        router.Page
	User        *model.User
	Main        []blocks.Rendered
	Sidebar     []blocks.Rendered
	Loading     bool
	Data        any
	Errors      map[string]string
	Flash       string
	FlashType   string
	CurrentYear int
	CSRFToken   string
}

// PageTitle joins the page title with the site name.
func (d TemplateData) PageTitle() string {
	site := d.Site.MetaTitle
	if site == "" {
		site = d.Site.Name
	}
	switch {
	case d.Title == "":
		return site
	case site == "":
		return d.Title
	}
	return d.Title + " | " + site
}

// MetaDescription returns the page description or the site default.
func (d TemplateData) MetaDescription() string {
	if d.Description != "" {
		return d.Description
	}
	return d.Site.MetaDescription
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page with the given status code. The page is
// executed into a buffer so template errors never produce partial output.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	data.CurrentYear = r.now().Year()
	if r.flasher != nil && data.Flash == "" {
		if f, ok := r.flasher.PopFlash(req.Context()); ok {
			data.Flash = f.Message
			data.FlashType = f.Type
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	out := blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		slog.Debug("writing response", "template", name, "error", err)
	}
	return nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.isDev {
		templates, err := parseTemplates(r.fsys)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.templates = templates
		r.mu.Unlock()
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	return tmpl, nil
}
