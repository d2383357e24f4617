package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListModes returns every competitive mode with its game-id list
// @Summary List Modes
// @Tags Modes
// @Produce json
// @Success 200 {array} models.Mode
// @Router /modes [get]
func (h *Handler) ListModes(w http.ResponseWriter, r *http.Request) {
	modes, err := h.modes.All(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, modes)
}

// GetMode returns one mode view
// @Summary Get Mode
// @Tags Modes
// @Produce json
// @Param name path string true "Mode name"
// @Success 200 {object} models.Mode
// @Failure 404 {object} map[string]string "Not Found"
// @Router /modes/{name} [get]
func (h *Handler) GetMode(w http.ResponseWriter, r *http.Request) {
	m, err := h.modes.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, m)
}

// GetModeGames returns a page of the mode's games
// @Summary Get Mode Games
// @Tags Modes
// @Produce json
// @Param name path string true "Mode name"
// @Success 200 {object} models.Page[models.Game]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /modes/{name}/games [get]
func (h *Handler) GetModeGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.modes.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.modes.GamesPage(ctx, m, params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// ListMutators returns every mutator with its game-id list
// @Summary List Mutators
// @Tags Mutators
// @Produce json
// @Success 200 {array} models.Mutator
// @Router /mutators [get]
func (h *Handler) ListMutators(w http.ResponseWriter, r *http.Request) {
	muts, err := h.mutators.All(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, muts)
}

// GetMutator returns one mutator view
// @Summary Get Mutator
// @Tags Mutators
// @Produce json
// @Param name path string true "Mutator name, possibly mode-qualified"
// @Success 200 {object} models.Mutator
// @Failure 404 {object} map[string]string "Not Found"
// @Router /mutators/{name} [get]
func (h *Handler) GetMutator(w http.ResponseWriter, r *http.Request) {
	m, err := h.mutators.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, m)
}

// GetMutatorGames returns a page of the mutator's games
// @Summary Get Mutator Games
// @Tags Mutators
// @Produce json
// @Param name path string true "Mutator name, possibly mode-qualified"
// @Success 200 {object} models.Page[models.Game]
// @Failure 404 {object} map[string]string "Not Found"
// @Router /mutators/{name}/games [get]
func (h *Handler) GetMutatorGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := h.paging(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.mutators.Get(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	page, err := h.mutators.GamesPage(ctx, m, params.Page, params.PerPage)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, page)
}

// ListWeapons returns global summed counters for every weapon
// @Summary List Weapons
// @Tags Weapons
// @Produce json
// @Success 200 {array} models.WeaponSummary
// @Router /weapons [get]
func (h *Handler) ListWeapons(w http.ResponseWriter, r *http.Request) {
	weapons, err := h.weapons.All(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, weapons)
}

// GetWeapon returns global summed counters for one weapon
// @Summary Get Weapon
// @Tags Weapons
// @Produce json
// @Param name path string true "Weapon name"
// @Success 200 {object} models.WeaponSummary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /weapons/{name} [get]
func (h *Handler) GetWeapon(w http.ResponseWriter, r *http.Request) {
	wp, err := h.weapons.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, wp)
}
