package logic

import (
	"context"
	"fmt"
	"slices"

	"github.com/redeclipse/stats-api/internal/models"
	"github.com/redeclipse/stats-api/internal/ruleset"
)

type modeService struct {
	pg PgPool
	rs *ruleset.Catalog
}

func NewModeService(pg PgPool, rs *ruleset.Catalog) ModeService {
	return &modeService{pg: pg, rs: rs}
}

func (s *modeService) List() []string {
	return s.rs.ModeNames()
}

func (s *modeService) Count() int {
	return len(s.rs.ModeNames())
}

func (s *modeService) Get(ctx context.Context, name string) (*models.Mode, error) {
	if !slices.Contains(s.rs.ModeNames(), name) {
		return nil, fmt.Errorf("mode %q: %w", name, ErrNotFound)
	}
	ids, err := gameIDsWhere(ctx, s.pg, NewGameFilter().HasMode("g.id", name))
	if err != nil {
		return nil, err
	}
	return &models.Mode{
		Name:     name,
		LongName: s.rs.LongName(name),
		GameIDs:  ids,
	}, nil
}

func (s *modeService) All(ctx context.Context) ([]*models.Mode, error) {
	names := s.rs.ModeNames()
	out := make([]*models.Mode, 0, len(names))
	for _, n := range names {
		m, err := s.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *modeService) Games(ctx context.Context, m *models.Mode, page, pageSize int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.PageSlice(m.GameIDs, page, pageSize), false)
}

func (s *modeService) RecentGames(ctx context.Context, m *models.Mode, n int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.RecentWindow(m.GameIDs, n), true)
}

func (s *modeService) GamesPage(ctx context.Context, m *models.Mode, page, perPage int) (*models.Page[models.Game], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]models.Game, error) { return s.Games(ctx, m, pg, ps) },
		func() (int, error) { return len(m.GameIDs), nil })
}
