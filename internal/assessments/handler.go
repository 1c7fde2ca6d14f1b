package assessments

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/haven-app/haven/pkg/handlers"
	"github.com/haven-app/haven/pkg/pagination"
	"github.com/haven-app/haven/pkg/routes"
)

// Handler provides HTTP endpoints for assessment operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "assessments"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for assessment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/risk",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Latest},
			{Method: "GET", Pattern: "/changes", Handler: h.Changes},
			{Method: "GET", Pattern: "/history", Handler: h.History},
			{Method: "GET", Pattern: "/snapshots", Handler: h.List},
			{Method: "GET", Pattern: "/snapshots/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/evaluate", Handler: h.Evaluate},
			{Method: "POST", Pattern: "/snapshots/search", Handler: h.Search},
		},
	}
}

func userID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		return uuid.Nil, ErrMissingUser
	}
	return id, nil
}

// Latest returns the user's most recent snapshot.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	snap, err := h.sys.Latest(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snap)
}

// Changes returns the structured diff between the user's two most
// recent snapshots.
func (h *Handler) Changes(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	report, err := h.sys.Changes(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// History returns the user's risk trend over the requested window.
// The days query parameter defaults to the configured window.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var days int
	if d := r.URL.Query().Get("days"); d != "" {
		days, err = strconv.Atoi(d)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidDays)
			return
		}
	}

	points, err := h.sys.History(r.Context(), id, days)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, points)
}

// List returns a paginated list of snapshots with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single snapshot by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	snap, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snap)
}

// Evaluate processes a JSON body of features and raw signals, scores them
// against the active rule set, and optionally appends the result to history.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var cmd EvaluateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	eval, err := h.sys.Evaluate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, eval)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching snapshots.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
