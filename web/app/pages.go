package app

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JaimeStill/flames/internal/flames"
	"github.com/JaimeStill/flames/internal/results"
	"github.com/JaimeStill/flames/pkg/pagination"
)

type formPage struct {
	Name1  string
	Name2  string
	Result *results.Result
	Error  string
}

type historyPage struct {
	Results pagination.PageResult[results.Result]
	Search  string
	Filter  string
	Labels  []flames.Label
}

type errorPage struct {
	Status  int
	Heading string
	Message string
}

// PageURL builds a history link for page n that keeps the active filters.
func (p historyPage) PageURL(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	q.Set("page_size", strconv.Itoa(p.Results.PageSize))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Filter != "" {
		q.Set("result", p.Filter)
	}
	return "/history?" + q.Encode()
}

// Index renders the empty form.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, indexView, formPage{})
}

// Play handles the form submission: validate, compute, store, and render
// the form again with the result.
func (a *App) Play(w http.ResponseWriter, r *http.Request) {
	if a.maxForm > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxForm)
	}

	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.renderError(w, http.StatusRequestEntityTooLarge, "The submitted form is too large.")
			return
		}
		a.renderError(w, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	cmd := results.PlayCommand{
		Name1: r.PostForm.Get("name1"),
		Name2: r.PostForm.Get("name2"),
	}

	res, err := a.sys.Play(r.Context(), cmd)
	if err != nil {
		status, message := statusMessage(err)
		if status >= http.StatusInternalServerError {
			a.logger.Error("play failed", "error", err)
			a.renderError(w, status, "The result could not be saved. Please try again.")
			return
		}
		a.logger.Warn("play rejected", "error", err)
		a.render(w, status, indexView, formPage{
			Name1: cmd.Name1,
			Name2: cmd.Name2,
			Error: message,
		})
		return
	}

	a.render(w, http.StatusOK, indexView, formPage{
		Name1:  res.Name1,
		Name2:  res.Name2,
		Result: res,
	})
}

// History renders stored results newest first, paged and optionally
// filtered by label or name.
func (a *App) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := pagination.PageRequestFromQuery(query, a.pagination)
	page.Sort = nil
	filters := results.FiltersFromQuery(query)

	list, err := a.sys.List(r.Context(), page, filters)
	if err != nil {
		a.logger.Error("history failed", "error", err)
		a.renderError(w, http.StatusInternalServerError, "History is unavailable right now.")
		return
	}

	data := historyPage{
		Results: *list,
		Labels:  flames.Labels(),
	}
	if page.Search != nil {
		data.Search = *page.Search
	}
	if filters.Result != nil {
		data.Filter = string(*filters.Result)
	}

	a.render(w, http.StatusOK, historyView, data)
}
