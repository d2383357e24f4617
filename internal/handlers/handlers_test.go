package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/redeclipse/stats-api/internal/logic"
	"github.com/redeclipse/stats-api/internal/models"
)

func newTestHandler(cfg Config) http.Handler {
	cfg.Logger = zap.NewNop()
	return New(cfg).Routes()
}

func doRequest(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestHandler(Config{})
	rec := doRequest(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyNoBackends(t *testing.T) {
	h := newTestHandler(Config{})
	rec := doRequest(t, h, "/readyz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without backends", rec.Code)
	}
}

func TestListPlayers(t *testing.T) {
	players := &MockPlayerService{
		PaginateFunc: func(ctx context.Context, page, perPage int) (*models.Page[*models.Player], error) {
			return models.Paginate(page, perPage,
				func(pg, ps int) ([]*models.Player, error) {
					return []*models.Player{{Handle: "ace"}, {Handle: "bob"}}, nil
				},
				func() (int, error) { return 2, nil })
		},
	}
	h := newTestHandler(Config{Players: players})

	rec := doRequest(t, h, "/api/v1/players/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var page models.Page[models.Player]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Errorf("page = %+v", page)
	}
	if page.Items[0].Handle != "ace" {
		t.Errorf("first handle = %q, want ace", page.Items[0].Handle)
	}
}

func TestListPlayersBadPaging(t *testing.T) {
	h := newTestHandler(Config{Players: &MockPlayerService{}})

	for _, q := range []string{"?page=-1", "?pagesize=0", "?pagesize=101", "?page=abc"} {
		rec := doRequest(t, h, "/api/v1/players/"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestGetPlayer(t *testing.T) {
	players := &MockPlayerService{
		GetFunc: func(ctx context.Context, handle string) (*models.Player, error) {
			if handle != "ace" {
				return nil, fmt.Errorf("player %q: %w", handle, logic.ErrNotFound)
			}
			return &models.Player{Handle: "ace", GameIDs: []int64{1, 2}}, nil
		},
		RatioFunc: func(ctx context.Context, p *models.Player, window int) (float64, error) {
			return 1.5, nil
		},
		TopMapsFunc: func(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error) {
			return []models.MapCount{{Name: "bath", Games: 2}}, nil
		},
	}
	h := newTestHandler(Config{Players: players})

	rec := doRequest(t, h, "/api/v1/players/ace/?window=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var detail models.PlayerDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Handle != "ace" || detail.Window != 50 {
		t.Errorf("detail = %+v", detail)
	}
	if detail.DPM != 1.5 || detail.KDR != 1.5 {
		t.Errorf("ratios not filled: %+v", detail)
	}
	if len(detail.TopMaps) != 1 || detail.TopMaps[0].Name != "bath" {
		t.Errorf("top maps = %v", detail.TopMaps)
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	players := &MockPlayerService{
		GetFunc: func(ctx context.Context, handle string) (*models.Player, error) {
			return nil, fmt.Errorf("player %q: %w", handle, logic.ErrNotFound)
		},
	}
	h := newTestHandler(Config{Players: players})

	rec := doRequest(t, h, "/api/v1/players/nobody/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetMapTopRaces(t *testing.T) {
	var gotEndurance bool
	maps := &MockMapService{
		GetFunc: func(ctx context.Context, name string) (*models.Map, error) {
			return &models.Map{Name: name, GameIDs: []int64{1}}, nil
		},
		TopRacesFunc: func(ctx context.Context, m *models.Map, endurance bool) ([]models.RaceResult, error) {
			gotEndurance = endurance
			return nil, nil
		},
	}
	h := newTestHandler(Config{Maps: maps})

	rec := doRequest(t, h, "/api/v1/maps/bath/topraces?endurance=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotEndurance {
		t.Error("endurance query parameter not forwarded")
	}
	// nil results render as an empty JSON array, not null.
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty array", got)
	}
}

func TestGetPlayerWeapons(t *testing.T) {
	players := &MockPlayerService{
		GetFunc: func(ctx context.Context, handle string) (*models.Player, error) {
			return &models.Player{Handle: handle}, nil
		},
	}
	weapons := &MockWeaponService{
		AllFromPlayerFunc: func(ctx context.Context, handle string) ([]*models.WeaponSummary, error) {
			return []*models.WeaponSummary{{Name: "rifle"}, {Name: "grenade", Passive: true}}, nil
		},
	}
	h := newTestHandler(Config{Players: players, Weapons: weapons})

	rec := doRequest(t, h, "/api/v1/players/ace/weapons")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []models.WeaponSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 || out[0].Name != "rifle" || !out[1].Passive {
		t.Errorf("weapons = %+v", out)
	}
}
