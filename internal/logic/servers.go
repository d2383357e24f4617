package logic

import (
	"context"
	"fmt"

	"github.com/redeclipse/stats-api/internal/models"
)

type serverService struct {
	pg PgPool
}

func NewServerService(pg PgPool) ServerService {
	return &serverService{pg: pg}
}

func (s *serverService) HandleList(ctx context.Context) ([]string, error) {
	rows, err := s.pg.Query(ctx,
		"SELECT handle FROM game_servers WHERE handle <> '' GROUP BY handle ORDER BY MAX(game_id) DESC")
	if err != nil {
		return nil, fmt.Errorf("server handles: %w", err)
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan handle: %w", err)
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

func (s *serverService) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pg.QueryRow(ctx,
		"SELECT COUNT(DISTINCT handle) FROM game_servers WHERE handle <> ''").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("server count: %w", err)
	}
	return n, nil
}

func (s *serverService) Get(ctx context.Context, handle string) (*models.Server, error) {
	if handle == "" {
		return nil, fmt.Errorf("server %q: %w", handle, ErrNotFound)
	}
	rows, err := s.pg.Query(ctx,
		`SELECT gs.game_id FROM game_servers gs
		 JOIN games g ON g.id = gs.game_id
		 WHERE gs.handle = $1
		 GROUP BY gs.game_id ORDER BY gs.game_id ASC`, handle)
	if err != nil {
		return nil, fmt.Errorf("server game ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("server %q: %w", handle, ErrNotFound)
	}

	sv := &models.Server{Handle: handle, GameIDs: ids}
	if sv.First, err = s.record(ctx, ids[0]); err != nil {
		return nil, err
	}
	if sv.Latest, err = s.record(ctx, ids[len(ids)-1]); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *serverService) record(ctx context.Context, gameID int64) (*models.ServerRecord, error) {
	var r models.ServerRecord
	err := s.pg.QueryRow(ctx,
		"SELECT game_id, handle FROM game_servers WHERE game_id = $1 LIMIT 1",
		gameID).Scan(&r.GameID, &r.Handle)
	if err != nil {
		return nil, fmt.Errorf("server record game=%d: %w", gameID, err)
	}
	return &r, nil
}

func (s *serverService) All(ctx context.Context, page, pageSize int) ([]*models.Server, error) {
	handles, err := s.HandleList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Server, 0, pageSize)
	for _, h := range models.PageSlice(handles, page, pageSize) {
		sv, err := s.Get(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, nil
}

func (s *serverService) Paginate(ctx context.Context, page, perPage int) (*models.Page[*models.Server], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]*models.Server, error) { return s.All(ctx, pg, ps) },
		func() (int, error) { return s.Count(ctx) })
}

func (s *serverService) Games(ctx context.Context, sv *models.Server, page, pageSize int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.PageSlice(sv.GameIDs, page, pageSize), false)
}

func (s *serverService) RecentGames(ctx context.Context, sv *models.Server, n int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.RecentWindow(sv.GameIDs, n), true)
}

func (s *serverService) GamesPage(ctx context.Context, sv *models.Server, page, perPage int) (*models.Page[models.Game], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]models.Game, error) { return s.Games(ctx, sv, pg, ps) },
		func() (int, error) { return len(sv.GameIDs), nil })
}
