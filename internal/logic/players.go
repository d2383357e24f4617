package logic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redeclipse/stats-api/internal/cache"
	"github.com/redeclipse/stats-api/internal/models"
	"github.com/redeclipse/stats-api/internal/ruleset"
)

type playerService struct {
	pg    PgPool
	cache Cache
	rs    *ruleset.Catalog
	ttl   time.Duration
}

func NewPlayerService(pg PgPool, c Cache, rs *ruleset.Catalog, ttl time.Duration) PlayerService {
	return &playerService{pg: pg, cache: c, rs: rs, ttl: ttl}
}

// HandleList returns all non-empty player handles, most recently seen
// first.
func (s *playerService) HandleList(ctx context.Context) ([]string, error) {
	rows, err := s.pg.Query(ctx,
		"SELECT handle FROM game_players WHERE handle <> '' GROUP BY handle ORDER BY MAX(game_id) DESC")
	if err != nil {
		return nil, fmt.Errorf("player handles: %w", err)
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

func (s *playerService) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pg.QueryRow(ctx,
		"SELECT COUNT(DISTINCT handle) FROM game_players WHERE handle <> ''").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("player count: %w", err)
	}
	return n, nil
}

// Get builds the Player view for a handle: its ascending game-id list
// restricted to games that still exist, and its first and latest
// records.
func (s *playerService) Get(ctx context.Context, handle string) (*models.Player, error) {
	if handle == "" {
		return nil, fmt.Errorf("player %q: %w", handle, ErrNotFound)
	}
	rows, err := s.pg.Query(ctx,
		`SELECT gp.game_id FROM game_players gp
		 JOIN games g ON g.id = gp.game_id
		 WHERE gp.handle = $1
		 GROUP BY gp.game_id ORDER BY gp.game_id ASC`, handle)
	if err != nil {
		return nil, fmt.Errorf("player game ids: %w", err)
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
		return nil, fmt.Errorf("player %q: %w", handle, ErrNotFound)
	}

	p := &models.Player{Handle: handle, GameIDs: ids}
	if p.First, err = s.record(ctx, ids[0], handle); err != nil {
		return nil, err
	}
	if p.Latest, err = s.record(ctx, ids[len(ids)-1], handle); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *playerService) record(ctx context.Context, gameID int64, handle string) (*models.PlayerRecord, error) {
	var r models.PlayerRecord
	err := s.pg.QueryRow(ctx,
		`SELECT game_id, handle, name, score, frags, deaths, timealive, timeactive
		 FROM game_players WHERE game_id = $1 AND handle = $2 LIMIT 1`,
		gameID, handle).Scan(
		&r.GameID, &r.Handle, &r.Name, &r.Score, &r.Frags, &r.Deaths, &r.TimeAlive, &r.TimeActive)
	if err != nil {
		return nil, fmt.Errorf("player record game=%d: %w", gameID, err)
	}
	return &r, nil
}

func (s *playerService) All(ctx context.Context, page, pageSize int) ([]*models.Player, error) {
	handles, err := s.HandleList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Player, 0, pageSize)
	for _, h := range models.PageSlice(handles, page, pageSize) {
		p, err := s.Get(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *playerService) Paginate(ctx context.Context, page, perPage int) (*models.Page[*models.Player], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]*models.Player, error) { return s.All(ctx, pg, ps) },
		func() (int, error) { return s.Count(ctx) })
}

func (s *playerService) Games(ctx context.Context, p *models.Player, page, pageSize int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.PageSlice(p.GameIDs, page, pageSize), false)
}

func (s *playerService) RecentGames(ctx context.Context, p *models.Player, n int) ([]models.Game, error) {
	return fetchGames(ctx, s.pg, models.RecentWindow(p.GameIDs, n), true)
}

func (s *playerService) GamesPage(ctx context.Context, p *models.Player, page, perPage int) (*models.Page[models.Game], error) {
	return models.Paginate(page, perPage,
		func(pg, ps int) ([]models.Game, error) { return s.Games(ctx, p, pg, ps) },
		func() (int, error) { return len(p.GameIDs), nil })
}

func (s *playerService) GamePlayer(ctx context.Context, p *models.Player, gameID int64) (*models.PlayerRecord, error) {
	return s.record(ctx, gameID, p.Handle)
}

func (s *playerService) DPM(ctx context.Context, p *models.Player, window int) (float64, error) {
	var v float64
	err := s.cache.GetOrCompute(ctx, cache.Key("player", p.Handle, "dpm", window), s.ttl, &v,
		func() (err error) { v, err = s.dpm(ctx, p, window); return err })
	return v, err
}

func (s *playerService) FPM(ctx context.Context, p *models.Player, window int) (float64, error) {
	var v float64
	err := s.cache.GetOrCompute(ctx, cache.Key("player", p.Handle, "fpm", window), s.ttl, &v,
		func() (err error) { v, err = s.fpm(ctx, p, window); return err })
	return v, err
}

func (s *playerService) KDR(ctx context.Context, p *models.Player, window int) (float64, error) {
	var v float64
	err := s.cache.GetOrCompute(ctx, cache.Key("player", p.Handle, "kdr", window), s.ttl, &v,
		func() (err error) { v, err = s.kdr(ctx, p, window); return err })
	return v, err
}

func (s *playerService) DFR(ctx context.Context, p *models.Player, window int) (float64, error) {
	var v float64
	err := s.cache.GetOrCompute(ctx, cache.Key("player", p.Handle, "dfr", window), s.ttl, &v,
		func() (err error) { v, err = s.dfr(ctx, p, window); return err })
	return v, err
}

func (s *playerService) TopMaps(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error) {
	var v []models.MapCount
	err := s.cache.GetOrCompute(ctx, cache.Key("player", p.Handle, "topmaps", window), s.ttl, &v,
		func() (err error) { v, err = s.topMaps(ctx, p, window); return err })
	return v, err
}

// weaponDamage sums damage over both fire modes for the windowed,
// standard-weapons games of a player.
func (s *playerService) weaponDamage(ctx context.Context, handle string, games []int64) (int64, error) {
	f := NewGameFilter().
		GameIn("gw.game_id", games).
		NormalWeapons("gw.game_id", s.rs.NormalWeaponsExcluded()).
		Eq("gw.playerhandle", handle)
	var d1, d2 int64
	err := s.pg.QueryRow(ctx,
		"SELECT COALESCE(SUM(gw.damage1), 0), COALESCE(SUM(gw.damage2), 0) FROM game_weapons gw WHERE "+f.Where(),
		f.Args()...).Scan(&d1, &d2)
	if err != nil {
		return 0, fmt.Errorf("sum weapon damage: %w", err)
	}
	return d1 + d2, nil
}

// sumRecords sums two game_players columns over the windowed,
// standard-weapons games of a player. Empty result sets sum to 0.
func (s *playerService) sumRecords(ctx context.Context, handle string, games []int64, colA, colB string) (int64, int64, error) {
	f := NewGameFilter().
		GameIn("gp.game_id", games).
		NormalWeapons("gp.game_id", s.rs.NormalWeaponsExcluded()).
		Eq("gp.handle", handle)
	var a, b int64
	err := s.pg.QueryRow(ctx,
		fmt.Sprintf("SELECT COALESCE(SUM(gp.%s), 0), COALESCE(SUM(gp.%s), 0) FROM game_players gp WHERE %s",
			colA, colB, f.Where()),
		f.Args()...).Scan(&a, &b)
	if err != nil {
		return 0, 0, fmt.Errorf("sum player %s/%s: %w", colA, colB, err)
	}
	return a, b, nil
}

func (s *playerService) dpm(ctx context.Context, p *models.Player, window int) (float64, error) {
	games := models.RecentWindow(p.GameIDs, window)
	damage, err := s.weaponDamage(ctx, p.Handle, games)
	if err != nil {
		return 0, err
	}
	alive, _, err := s.sumRecords(ctx, p.Handle, games, "timealive", "frags")
	if err != nil {
		return 0, err
	}
	return float64(damage) / (math.Max(1, float64(alive)) / 60), nil
}

func (s *playerService) fpm(ctx context.Context, p *models.Player, window int) (float64, error) {
	games := models.RecentWindow(p.GameIDs, window)
	alive, frags, err := s.sumRecords(ctx, p.Handle, games, "timealive", "frags")
	if err != nil {
		return 0, err
	}
	return float64(frags) / (math.Max(1, float64(alive)) / 60), nil
}

func (s *playerService) kdr(ctx context.Context, p *models.Player, window int) (float64, error) {
	games := models.RecentWindow(p.GameIDs, window)
	frags, deaths, err := s.sumRecords(ctx, p.Handle, games, "frags", "deaths")
	if err != nil {
		return 0, err
	}
	return float64(frags) / math.Max(1, float64(deaths)), nil
}

func (s *playerService) dfr(ctx context.Context, p *models.Player, window int) (float64, error) {
	games := models.RecentWindow(p.GameIDs, window)
	damage, err := s.weaponDamage(ctx, p.Handle, games)
	if err != nil {
		return 0, err
	}
	_, frags, err := s.sumRecords(ctx, p.Handle, games, "timealive", "frags")
	if err != nil {
		return 0, err
	}
	return float64(damage) / math.Max(1, float64(frags)), nil
}

// topMaps counts map occurrences over the windowed game set. Names are
// sorted ascending first so the count sort has a stable tie-break.
func (s *playerService) topMaps(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error) {
	games := models.RecentWindow(p.GameIDs, window)
	f := NewGameFilter().GameIn("g.id", games)
	rows, err := s.pg.Query(ctx,
		"SELECT g.map FROM games g WHERE "+f.Where(), f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("top maps: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan map name: %w", err)
		}
		counts[name]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.MapCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.MapCount{Name: name, Games: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Games > out[j].Games })
	return out, nil
}
