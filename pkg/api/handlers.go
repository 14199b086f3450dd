package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	registry    *Registry
	maxElements int
}

// NewHandlers creates handlers over the given registry. Forests larger than
// maxElements are rejected.
func NewHandlers(registry *Registry, maxElements int) *Handlers {
	return &Handlers{
		registry:    registry,
		maxElements: maxElements,
	}
}

// HandleCreate handles POST /api/v1/forests.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Room for every weight as a 20-digit number plus separators.
	limit := int64(h.maxElements)*22 + 1024
	var req CreateForestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if len(req.Weights) > h.maxElements {
		writeError(w, http.StatusBadRequest, "too_many_elements", "weights")
		return
	}

	// The decode above can be the slow part for a large forest.
	if expired(w, r) {
		return
	}

	s, err := h.registry.Create(req.Weights)
	if err != nil {
		if errors.Is(err, ErrTooManyForests) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "too_many_forests", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	writeJSON(w, http.StatusCreated, s.Describe())
}

// HandleMerge handles POST /api/v1/forests/{id}/merge.
func (h *Handlers) HandleMerge(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if !isJSON(r) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req MergeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if expired(w, r) {
		return
	}

	resp, err := s.Merge(req.Destination-1, req.Source-1)
	if err != nil {
		writeRangeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleConnected handles GET /api/v1/forests/{id}/connected?a=1&b=2.
func (h *Handlers) HandleConnected(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	a, err := strconv.Atoi(q.Get("a"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "a")
		return
	}
	b, err := strconv.Atoi(q.Get("b"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "b")
		return
	}

	connected, err := s.Connected(a-1, b-1)
	if err != nil {
		writeRangeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConnectedResponse{Connected: connected})
}

// HandleGet handles GET /api/v1/forests/{id}.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Describe())
}

// HandleDelete handles DELETE /api/v1/forests/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "forest_not_found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Forests: h.registry.Len()})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "forest_not_found", "")
		return nil, false
	}
	return s, true
}

// expired writes a timeout error if the request context is already done.
func expired(w http.ResponseWriter, r *http.Request) bool {
	if r.Context().Err() == nil {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	return true
}

func writeRangeError(w http.ResponseWriter, err error) {
	var re *RangeError
	if errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, "index_out_of_range", re.Field)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "")
}

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
