package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redeclipse/stats-api/internal/cache"
	"github.com/redeclipse/stats-api/internal/models"
)

type mapService struct {
	pg         PgPool
	cache      Cache
	ttl        time.Duration
	maxResults int // row cap for top race listings
}

func NewMapService(pg PgPool, c Cache, ttl time.Duration, maxResults int) MapService {
	return &mapService{pg: pg, cache: c, ttl: ttl, maxResults: maxResults}
}

// List returns all map names ordered by most recent game. With race
// set, only maps that have hosted at least one timed race qualify.
func (s *mapService) List(ctx context.Context, race bool) ([]string, error) {
	f := NewGameFilter()
	if race {
		f.HasMode("g.id", "race").HasMutator("g.id", "timed")
	}
	rows, err := s.pg.Query(ctx,
		"SELECT g.map FROM games g WHERE "+f.Where()+" GROUP BY g.map ORDER BY MAX(g.id) DESC",
		f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("map list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan map name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *mapService) Count(ctx context.Context, race bool) (int, error) {
	f := NewGameFilter()
	if race {
		f.HasMode("g.id", "race").HasMutator("g.id", "timed")
	}
	var n int
	err := s.pg.QueryRow(ctx,
		"SELECT COUNT(DISTINCT g.map) FROM games g WHERE "+f.Where(), f.Args()...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("map count: %w", err)
	}
	return n, nil
}

func (s *mapService) Get(ctx context.Context, name string) (*models.Map, error) {
	rows, err := s.pg.Query(ctx,
		"SELECT id FROM games WHERE map = $1 ORDER BY id ASC", name)
	if err != nil {
		return nil, fmt.Errorf("map game ids: %w", err)
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
		return nil, fmt.Errorf("map %q: %w", name, ErrNotFound)
	}

	m := &models.Map{Name: name, GameIDs: ids}
	if err := s.pg.QueryRow(ctx,
		"SELECT COALESCE(SUM(timeplayed), 0) FROM games WHERE map = $1", name).Scan(&m.GameTime); err != nil {
		return nil, fmt.Errorf("map game time: %w", err)
	}
	if err := s.pg.QueryRow(ctx,
		"SELECT COALESCE(SUM(timeactive), 0) FROM game_players WHERE game_id = ANY($1)", ids).Scan(&m.PlayerTime); err != nil {
		return nil, fmt.Errorf("map player time: %w", err)
	}

	first, err := fetchGames(ctx, s.pg, ids[:1], false)
	if err != nil {
		return nil, err
	}
	latest, err := fetchGames(ctx, s.pg, ids[len(ids)-1:], false)
	if err != nil {
		return nil, err
	}
	if len(first) > 0 {
		m.First = &first[0]
	}
	if len(latest) > 0 {
		m.Latest = &latest[0]
	}
	return m, nil
}

func (s *mapService) All(ctx context.Context, page, pageSize int, race bool) ([]*models.Map, error) {
	names, err := s.List(ctx, race)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Map, 0, pageSize)
	for _, n := range models.PageSlice(names, page, pageSize) {
		m, err := s.Get(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *mapService) Paginate(ctx context.Context, page, perPage int, race bool) (*models.Page[*models.Map], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]*models.Map, error) { return s.All(ctx, pg, ps, race) },
		func() (int, error) { return s.Count(ctx, race) })
}

func (s *mapService) Games(ctx context.Context, m *models.Map, page, pageSize int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.PageSlice(m.GameIDs, page, pageSize), false)
}

func (s *mapService) RecentGames(ctx context.Context, m *models.Map, n int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.RecentWindow(m.GameIDs, n), true)
}

func (s *mapService) GamesPage(ctx context.Context, m *models.Map, page, perPage int) (*models.Page[models.Game], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]models.Game, error) { return s.Games(ctx, m, pg, ps) },
		func() (int, error) { return len(m.GameIDs), nil })
}

func (s *mapService) TopRaces(ctx context.Context, m *models.Map, endurance bool) ([]models.RaceResult, error) {
	var v []models.RaceResult
	err := s.cache.GetOrCompute(ctx, cache.Key("map", m.Name, "topraces", endurance), s.ttl, &v,
		func() (err error) { v, err = s.topRaces(ctx, m, endurance); return err })
	return v, err
}

// topRaces returns the best completed race time per handle, fastest
// first. A score of 0 means the race was never finished. Ordering
// among identical scores for one handle is undefined; the first row
// scanned wins.
func (s *mapService) topRaces(ctx context.Context, m *models.Map, endurance bool) ([]models.RaceResult, error) {
	f := NewGameFilter().
		GameIn("gp.game_id", m.GameIDs).
		HasMode("gp.game_id", "race").
		HasMutator("gp.game_id", "timed").
		LacksMutator("gp.game_id", "freestyle")
	if endurance {
		f.HasMutator("gp.game_id", "endurance")
	}
	rows, err := s.pg.Query(ctx,
		`SELECT gp.game_id, gp.handle, gp.name, gp.score, g.time
		 FROM game_players gp JOIN games g ON g.id = gp.game_id
		 WHERE `+f.Where(), f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("top races: %w", err)
	}
	defer rows.Close()

	best := make(map[string]models.RaceResult)
	for rows.Next() {
		var r models.RaceResult
		if err := rows.Scan(&r.GameID, &r.Handle, &r.Name, &r.Score, &r.When); err != nil {
			return nil, fmt.Errorf("scan race result: %w", err)
		}
		if r.Score <= 0 {
			continue
		}
		if prev, ok := best[r.Handle]; !ok || r.Score < prev.Score {
			best[r.Handle] = r
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.RaceResult, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	if s.maxResults > 0 && len(out) > s.maxResults {
		out = out[:s.maxResults]
	}
	return out, nil
}
