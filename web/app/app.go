// Package app is the server-rendered FLAMES site: the name form, the
// computed result, and the history of past computations.
package app

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/flames/internal/results"
	"github.com/JaimeStill/flames/pkg/pagination"
	"github.com/JaimeStill/flames/pkg/routes"
	"github.com/JaimeStill/flames/pkg/web"
)

//go:embed templates static
var assets embed.FS

// MissingNamesMessage is shown when either name is left blank.
const MissingNamesMessage = "Please enter both names."

var (
	indexView   = web.ViewDef{Template: "index.html", Title: "Play"}
	historyView = web.ViewDef{Template: "history.html", Title: "History"}
	errorView   = web.ViewDef{Template: "error.html", Title: "Error"}
)

// Config holds the settings the site needs from the service configuration.
type Config struct {
	Title       string
	MaxFormSize int64
	Pagination  pagination.Config
}

// App serves the HTML pages backed by a results.System.
type App struct {
	sys        results.System
	templates  *web.TemplateSet
	logger     *slog.Logger
	title      string
	maxForm    int64
	pagination pagination.Config
}

// New parses the embedded templates and returns the site.
func New(sys results.System, logger *slog.Logger, cfg Config) (*App, error) {
	funcs := template.FuncMap{
		"timestamp": func(t time.Time) string {
			return t.UTC().Format("2006-01-02 15:04 MST")
		},
	}

	ts, err := web.NewTemplateSet(assets, web.Options{
		LayoutGlob: "templates/*.html",
		ViewDir:    "templates/views",
		Layout:     "layout",
		Funcs:      funcs,
	}, indexView, historyView, errorView)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return &App{
		sys:        sys,
		templates:  ts,
		logger:     logger.With("module", "web"),
		title:      cfg.Title,
		maxForm:    cfg.MaxFormSize,
		pagination: cfg.Pagination,
	}, nil
}

// Routes returns the page routes. /indraprasth is kept as an alias of
// /history for existing links.
func (a *App) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: a.Index},
			{Method: "POST", Pattern: "/flames", Handler: a.Play},
			{Method: "GET", Pattern: "/history", Handler: a.History},
			{Method: "GET", Pattern: "/indraprasth", Handler: a.History},
		},
	}
}

// Handler returns the site's router, including static assets and a
// not-found page for unmatched paths.
func (a *App) Handler() (http.Handler, error) {
	static, err := web.Static(assets, "static", "/static/")
	if err != nil {
		return nil, err
	}

	r := web.NewRouter()
	routes.Register(r.Mux(), a.Routes())
	r.Handle("GET /static/", static)
	r.SetFallback(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a.renderError(w, http.StatusNotFound, "That page does not exist.")
	}))
	return r, nil
}

func (a *App) view(v web.ViewDef) web.ViewDef {
	if a.title != "" {
		v.Title = v.Title + " · " + a.title
	}
	return v
}

func (a *App) render(w http.ResponseWriter, status int, v web.ViewDef, data any) {
	if err := a.templates.Render(w, status, a.view(v), data); err != nil {
		a.logger.Error("render failed", "template", v.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	a.render(w, status, errorView, errorPage{
		Status:  status,
		Heading: http.StatusText(status),
		Message: message,
	})
}

func statusMessage(err error) (int, string) {
	switch {
	case errors.Is(err, results.ErrMissingName):
		return http.StatusBadRequest, MissingNamesMessage
	case errors.Is(err, results.ErrNameTooLong):
		return http.StatusBadRequest, fmt.Sprintf("Names can be at most %d characters.", results.MaxNameLength)
	}
	status := results.MapHTTPStatus(err)
	return status, http.StatusText(status)
}
