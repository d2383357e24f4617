package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/redeclipse/stats-api/internal/models"
)

// ListPlayers returns all player handles as resolved views
// @Summary List Players
// @Tags Players
// @Produce json
// @Param page query int false "Page (zero-based)" default(0)
// @Param pagesize query int false "Page size" default(20)
// @Success 200 {object} models.Page[*models.Player]
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.players.Paginate(r.Context(), params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// GetPlayer returns one player with its performance ratios
// @Summary Get Player
// @Tags Players
// @Produce json
// @Param handle path string true "Player handle"
// @Param window query int false "Restrict ratios to the N most recent games (0 = all)"
// @Success 200 {object} models.PlayerDetail
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{handle} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	ctx := r.Context()

	p, err := h.players.Get(ctx, handle)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	detail := models.PlayerDetail{Player: p, Window: window(r)}

	// The ratio queries are independent; fill them in parallel.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { detail.DPM, err = h.players.DPM(ctx, p, detail.Window); return err })
	g.Go(func() (err error) { detail.FPM, err = h.players.FPM(ctx, p, detail.Window); return err })
	g.Go(func() (err error) { detail.KDR, err = h.players.KDR(ctx, p, detail.Window); return err })
	g.Go(func() (err error) { detail.DFR, err = h.players.DFR(ctx, p, detail.Window); return err })
	g.Go(func() (err error) { detail.TopMaps, err = h.players.TopMaps(ctx, p, detail.Window); return err })
	if err := g.Wait(); err != nil {
		h.handleError(w, r, err)
		return
	}
	if detail.TopMaps == nil {
		detail.TopMaps = []models.MapCount{}
	}

	h.jsonResponse(w, http.StatusOK, detail)
}

// GetPlayerGames returns a page of the player's games, oldest first
// @Summary Get Player Games
// @Tags Players
// @Produce json
// @Param handle path string true "Player handle"
// @Success 200 {object} models.Page[models.Game]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{handle}/games [get]
func (h *Handler) GetPlayerGames(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	ctx := r.Context()

	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.players.Get(ctx, handle)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.players.GamesPage(ctx, p, params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// GetPlayerWeapons returns the player's per-weapon summed counters
// @Summary Get Player Weapons
// @Tags Players
// @Produce json
// @Param handle path string true "Player handle"
// @Success 200 {array} models.WeaponSummary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{handle}/weapons [get]
func (h *Handler) GetPlayerWeapons(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	ctx := r.Context()

	p, err := h.players.Get(ctx, handle)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	weapons, err := h.weapons.AllFromPlayer(ctx, p.Handle)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, weapons)
}
