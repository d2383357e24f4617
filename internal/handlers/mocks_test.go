package handlers

import (
	"context"

	"github.com/redeclipse/stats-api/internal/logic"
	"github.com/redeclipse/stats-api/internal/models"
)

// Mock services embed their interface so only the methods a test
// exercises need an override; calling anything else panics.

type MockPlayerService struct {
	logic.PlayerService
	GetFunc      func(ctx context.Context, handle string) (*models.Player, error)
	PaginateFunc func(ctx context.Context, page, perPage int) (*models.Page[*models.Player], error)
	GamesPageFn  func(ctx context.Context, p *models.Player, page, perPage int) (*models.Page[models.Game], error)
	RatioFunc    func(ctx context.Context, p *models.Player, window int) (float64, error)
	TopMapsFunc  func(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error)
}

func (m *MockPlayerService) Get(ctx context.Context, handle string) (*models.Player, error) {
	return m.GetFunc(ctx, handle)
}

func (m *MockPlayerService) Paginate(ctx context.Context, page, perPage int) (*models.Page[*models.Player], error) {
	return m.PaginateFunc(ctx, page, perPage)
}

func (m *MockPlayerService) GamesPage(ctx context.Context, p *models.Player, page, perPage int) (*models.Page[models.Game], error) {
	return m.GamesPageFn(ctx, p, page, perPage)
}

func (m *MockPlayerService) DPM(ctx context.Context, p *models.Player, window int) (float64, error) {
	return m.RatioFunc(ctx, p, window)
}

func (m *MockPlayerService) FPM(ctx context.Context, p *models.Player, window int) (float64, error) {
	return m.RatioFunc(ctx, p, window)
}

func (m *MockPlayerService) KDR(ctx context.Context, p *models.Player, window int) (float64, error) {
	return m.RatioFunc(ctx, p, window)
}

func (m *MockPlayerService) DFR(ctx context.Context, p *models.Player, window int) (float64, error) {
	return m.RatioFunc(ctx, p, window)
}

func (m *MockPlayerService) TopMaps(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error) {
	return m.TopMapsFunc(ctx, p, window)
}

type MockMapService struct {
	logic.MapService
	GetFunc      func(ctx context.Context, name string) (*models.Map, error)
	TopRacesFunc func(ctx context.Context, m *models.Map, endurance bool) ([]models.RaceResult, error)
}

func (m *MockMapService) Get(ctx context.Context, name string) (*models.Map, error) {
	return m.GetFunc(ctx, name)
}

func (m *MockMapService) TopRaces(ctx context.Context, mp *models.Map, endurance bool) ([]models.RaceResult, error) {
	return m.TopRacesFunc(ctx, mp, endurance)
}

type MockWeaponService struct {
	logic.WeaponService
	AllFromPlayerFunc func(ctx context.Context, handle string) ([]*models.WeaponSummary, error)
}

func (m *MockWeaponService) AllFromPlayer(ctx context.Context, handle string) ([]*models.WeaponSummary, error) {
	return m.AllFromPlayerFunc(ctx, handle)
}
