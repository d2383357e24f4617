package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/redeclipse/stats-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg != nil && h.pg.Ping(ctx) == nil,
		"redis":    h.redis != nil && h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// pagingParams are the validated listing query parameters. Pages are
// zero-based; a page past the end yields an empty item list, not an
// error.
type pagingParams struct {
	Page    int `validate:"gte=0"`
	PerPage int `validate:"gte=1,lte=100"`
}

func (h *Handler) paging(r *http.Request) (pagingParams, error) {
	p := pagingParams{Page: 0, PerPage: h.pageSize}
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New("invalid page parameter")
		}
		p.Page = n
	}
	if v := r.URL.Query().Get("pagesize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.New("invalid pagesize parameter")
		}
		p.PerPage = n
	}
	if err := h.validator.Struct(p); err != nil {
		return p, errors.New("paging parameters out of range")
	}
	return p, nil
}

// window parses the recent-games window (0 = all games).
func window(r *http.Request) int {
	if v := r.URL.Query().Get("window"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// handleError maps service errors: unresolved entities become 404,
// everything else surfaces unchanged as 500.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, logic.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "not found")
		return
	}
	h.logger.Errorw("request failed", "path", r.URL.Path, "error", err)
	h.errorResponse(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
