package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redeclipse/stats-api/internal/logic"
	"github.com/redeclipse/stats-api/internal/models"
)

// ListMaps returns all map names as resolved views
// @Summary List Maps
// @Tags Maps
// @Produce json
// @Param race query bool false "Only maps with timed races on record"
// @Success 200 {object} models.Page[*models.Map]
// @Router /maps [get]
func (h *Handler) ListMaps(w http.ResponseWriter, r *http.Request) {
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	race := r.URL.Query().Get("race") == "true"
	page, err := h.maps.Paginate(r.Context(), params.Page, params.PerPage, race)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// GetMap returns one map with its top race times
// @Summary Get Map
// @Tags Maps
// @Produce json
// @Param name path string true "Map name"
// @Success 200 {object} models.MapDetail
// @Failure 404 {object} map[string]string "Not Found"
// @Router /maps/{name} [get]
func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m, err := h.maps.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	races, err := h.maps.TopRaces(ctx, m, false)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if races == nil {
		races = []models.RaceResult{}
	}
	h.jsonResponse(w, http.StatusOK, models.MapDetail{Map: m, TopRaces: races})
}

// GetMapGames returns a page of the map's games
// @Summary Get Map Games
// @Tags Maps
// @Produce json
// @Param name path string true "Map name"
// @Success 200 {object} models.Page[models.Game]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /maps/{name}/games [get]
func (h *Handler) GetMapGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.maps.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.maps.GamesPage(ctx, m, params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// GetMapTopRaces returns the best race time per handle on this map
// @Summary Get Map Top Races
// @Tags Maps
// @Produce json
// @Param name path string true "Map name"
// @Param endurance query bool false "Restrict to endurance races"
// @Success 200 {array} models.RaceResult
// @Failure 404 {object} map[string]string "Not Found"
// @Router /maps/{name}/topraces [get]
func (h *Handler) GetMapTopRaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m, err := h.maps.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	endurance := r.URL.Query().Get("endurance") == "true"
	races, err := h.maps.TopRaces(ctx, m, endurance)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if races == nil {
		races = []models.RaceResult{}
	}
	h.jsonResponse(w, http.StatusOK, races)
}

// GetMapWeapons returns per-weapon summed counters over the map's games
// @Summary Get Map Weapons
// @Tags Maps
// @Produce json
// @Param name path string true "Map name"
// @Success 200 {array} models.WeaponSummary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /maps/{name}/weapons [get]
func (h *Handler) GetMapWeapons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m, err := h.maps.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	f := logic.NewGameFilter().GameIn("gw.game_id", m.GameIDs)
	weapons, err := h.weapons.AllFromFilter(ctx, f)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, weapons)
}
