package results

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/flames/pkg/handlers"
	"github.com/JaimeStill/flames/pkg/pagination"
	"github.com/JaimeStill/flames/pkg/routes"
)

// Handler provides the JSON endpoints for results.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "results"),
		pagination: pagination,
	}
}

// Routes returns the route group for result endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/flames",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: docs.List},
			{Method: "GET", Pattern: "/all", Handler: h.ListAll, OpenAPI: docs.ListAll},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: docs.Find},
			{Method: "POST", Pattern: "", Handler: h.Play, OpenAPI: docs.Play},
		},
	}
}

// Play computes and stores the result for a JSON {name1, name2} body.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	var cmd PlayCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res, err := h.sys.Play(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, res)
}

// List returns a page of results filtered by query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListAll returns every stored result, newest first.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.sys.ListAll(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, all)
}

// Find returns one result by its numeric id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	res, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, res)
}
