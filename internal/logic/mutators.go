package logic

import (
	"context"
	"fmt"
	"slices"

	"github.com/redeclipse/stats-api/internal/models"
	"github.com/redeclipse/stats-api/internal/ruleset"
)

type mutatorService struct {
	pg PgPool
	rs *ruleset.Catalog
}

func NewMutatorService(pg PgPool, rs *ruleset.Catalog) MutatorService {
	return &mutatorService{pg: pg, rs: rs}
}

func (s *mutatorService) List() []string {
	return s.rs.MutatorNames()
}

func (s *mutatorService) Count() int {
	return len(s.rs.MutatorNames())
}

func (s *mutatorService) Get(ctx context.Context, name string) (*models.Mutator, error) {
	if !slices.Contains(s.rs.MutatorNames(), name) {
		return nil, fmt.Errorf("mutator %q: %w", name, ErrNotFound)
	}
	// HasMutator splits compound names into mode + mutator conditions.
	ids, err := gameIDsWhere(ctx, s.pg, NewGameFilter().HasMutator("g.id", name))
	if err != nil {
		return nil, err
	}
	return &models.Mutator{Name: name, GameIDs: ids}, nil
}

func (s *mutatorService) All(ctx context.Context) ([]*models.Mutator, error) {
	names := s.rs.MutatorNames()
	out := make([]*models.Mutator, 0, len(names))
	for _, n := range names {
		m, err := s.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *mutatorService) Games(ctx context.Context, m *models.Mutator, page, pageSize int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.PageSlice(m.GameIDs, page, pageSize), false)
}

func (s *mutatorService) RecentGames(ctx context.Context, m *models.Mutator, n int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.RecentWindow(m.GameIDs, n), true)
}

func (s *mutatorService) GamesPage(ctx context.Context, m *models.Mutator, page, perPage int) (*models.Page[models.Game], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]models.Game, error) { return s.Games(ctx, m, pg, ps) },
		func() (int, error) { return len(m.GameIDs), nil })
}
