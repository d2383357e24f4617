package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListServers returns all server handles as resolved views
// @Summary List Servers
// @Tags Servers
// @Produce json
// @Success 200 {object} models.Page[*models.Server]
// @Router /servers [get]
func (h *Handler) ListServers(w http.ResponseWriter, r *http.Request) {
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.servers.Paginate(r.Context(), params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// GetServer returns one server view
// @Summary Get Server
// @Tags Servers
// @Produce json
// @Param handle path string true "Server handle"
// @Success 200 {object} models.Server
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{handle} [get]
func (h *Handler) GetServer(w http.ResponseWriter, r *http.Request) {
	sv, err := h.servers.Get(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, sv)
}

// GetServerGames returns a page of the server's games
// @Summary Get Server Games
// @Tags Servers
// @Produce json
// @Param handle path string true "Server handle"
// @Success 200 {object} models.Page[models.Game]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{handle}/games [get]
func (h *Handler) GetServerGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sv, err := h.servers.Get(ctx, chi.URLParam(r, "handle"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.servers.GamesPage(ctx, sv, params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}
