// Package web renders server-side HTML pages from embedded templates and
// serves embedded static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef names a page template and its default title.
type ViewDef struct {
	Template string
	Title    string
}

// ViewData is the value every page template executes against.
// BasePath lets templates build portable URLs via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template tree per view, each a clone of the
// shared layouts. Templates are parsed once at startup so a broken template
// fails the boot rather than a request.
type TemplateSet struct {
	views    map[string]*template.Template
	layout   string
	basePath string
}

// Options configures NewTemplateSet.
type Options struct {
	// LayoutGlob matches the shared layout and partial templates.
	LayoutGlob string
	// ViewDir holds the per-page templates named by ViewDef.Template.
	ViewDir string
	// Layout is the template name executed to render a page.
	Layout   string
	BasePath string
	Funcs    template.FuncMap
}

// NewTemplateSet parses the layouts in fsys once and clones them for each view.
func NewTemplateSet(fsys fs.FS, opts Options, views ...ViewDef) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(opts.Funcs).ParseFS(fsys, opts.LayoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewFS, err := fs.Sub(fsys, opts.ViewDir)
	if err != nil {
		return nil, err
	}

	set := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewFS, v.Template); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", v.Template, err)
		}
		set[v.Template] = t
	}

	return &TemplateSet{
		views:    set,
		layout:   opts.Layout,
		basePath: opts.BasePath,
	}, nil
}

// Render writes view with the given status. The page is rendered into a
// buffer first so a template error never leaves a half-written response.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, view ViewDef, data any) error {
	t, ok := ts.views[view.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", view.Template)
	}

	vd := ViewData{
		Title:    view.Title,
		BasePath: ts.basePath,
		Data:     data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, ts.layout, vd); err != nil {
		return fmt.Errorf("render %s: %w", view.Template, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// PageHandler renders view with no page data.
func (ts *TemplateSet) PageHandler(view ViewDef) http.HandlerFunc {
	return ts.StatusHandler(view, http.StatusOK)
}

// StatusHandler renders view with no page data and a fixed status, such as
// a not-found page.
func (ts *TemplateSet) StatusHandler(view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, view, nil); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}
