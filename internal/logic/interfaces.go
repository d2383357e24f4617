package logic

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/redeclipse/stats-api/internal/models"
)

// ErrNotFound is returned when an entity identifier is absent from its
// listing. Handlers map it to 404; the services never substitute a
// default.
var ErrNotFound = errors.New("not found")

// PgPool defines the read-only interface onto the PostgreSQL pool.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Cache is the cache-aside port. On a hit dest is filled from the
// cached value and compute never runs; on a miss compute must fill
// dest, which is then stored under key for ttl. Cache failures degrade
// to a direct compute; compute errors propagate unchanged.
type Cache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func() error) error
}

// PlayerService resolves player handles and derives their statistics.
type PlayerService interface {
	HandleList(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, handle string) (*models.Player, error)
	All(ctx context.Context, page, pageSize int) ([]*models.Player, error)
	Paginate(ctx context.Context, page, perPage int) (*models.Page[*models.Player], error)

	Games(ctx context.Context, p *models.Player, page, pageSize int) ([]models.Game, error)
	RecentGames(ctx context.Context, p *models.Player, n int) ([]models.Game, error)
	GamesPage(ctx context.Context, p *models.Player, page, perPage int) (*models.Page[models.Game], error)
	GamePlayer(ctx context.Context, p *models.Player, gameID int64) (*models.PlayerRecord, error)

	// Ratio metrics over the last <window> games (0 = all games),
	// restricted to games with the standard weapon set.
	DPM(ctx context.Context, p *models.Player, window int) (float64, error)
	FPM(ctx context.Context, p *models.Player, window int) (float64, error)
	KDR(ctx context.Context, p *models.Player, window int) (float64, error)
	DFR(ctx context.Context, p *models.Player, window int) (float64, error)

	TopMaps(ctx context.Context, p *models.Player, window int) ([]models.MapCount, error)
}

// ServerService resolves server handles.
type ServerService interface {
	HandleList(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, handle string) (*models.Server, error)
	All(ctx context.Context, page, pageSize int) ([]*models.Server, error)
	Paginate(ctx context.Context, page, perPage int) (*models.Page[*models.Server], error)

	Games(ctx context.Context, s *models.Server, page, pageSize int) ([]models.Game, error)
	RecentGames(ctx context.Context, s *models.Server, n int) ([]models.Game, error)
	GamesPage(ctx context.Context, s *models.Server, page, perPage int) (*models.Page[models.Game], error)
}

// MapService resolves map names. The race flag restricts listings to
// maps with at least one timed race on record.
type MapService interface {
	List(ctx context.Context, race bool) ([]string, error)
	Count(ctx context.Context, race bool) (int, error)
	Get(ctx context.Context, name string) (*models.Map, error)
	All(ctx context.Context, page, pageSize int, race bool) ([]*models.Map, error)
	Paginate(ctx context.Context, page, perPage int, race bool) (*models.Page[*models.Map], error)

	Games(ctx context.Context, m *models.Map, page, pageSize int) ([]models.Game, error)
	RecentGames(ctx context.Context, m *models.Map, n int) ([]models.Game, error)
	GamesPage(ctx context.Context, m *models.Map, page, perPage int) (*models.Page[models.Game], error)

	TopRaces(ctx context.Context, m *models.Map, endurance bool) ([]models.RaceResult, error)
}

// ModeService resolves game modes from the ruleset catalog.
type ModeService interface {
	List() []string
	Count() int
	Get(ctx context.Context, name string) (*models.Mode, error)
	All(ctx context.Context) ([]*models.Mode, error)

	Games(ctx context.Context, m *models.Mode, page, pageSize int) ([]models.Game, error)
	RecentGames(ctx context.Context, m *models.Mode, n int) ([]models.Game, error)
	GamesPage(ctx context.Context, m *models.Mode, page, perPage int) (*models.Page[models.Game], error)
}

// MutatorService resolves mutators, including the compound
// "<mode>-<mutator>" names for mode-specific mutators.
type MutatorService interface {
	List() []string
	Count() int
	Get(ctx context.Context, name string) (*models.Mutator, error)
	All(ctx context.Context) ([]*models.Mutator, error)

	Games(ctx context.Context, m *models.Mutator, page, pageSize int) ([]models.Game, error)
	RecentGames(ctx context.Context, m *models.Mutator, n int) ([]models.Game, error)
	GamesPage(ctx context.Context, m *models.Mutator, page, perPage int) (*models.Page[models.Game], error)
}

// WeaponService sums weapon counters over a selectable scope.
type WeaponService interface {
	List() []string
	Count() int
	Get(ctx context.Context, name string) (*models.WeaponSummary, error)
	All(ctx context.Context) ([]*models.WeaponSummary, error)

	FromWeapon(ctx context.Context, weapon string) (*models.WeaponSummary, error)
	FromPlayer(ctx context.Context, weapon, handle string) (*models.WeaponSummary, error)
	FromPlayerGames(ctx context.Context, weapon, handle string, games []int64) (*models.WeaponSummary, error)
	FromGame(ctx context.Context, weapon string, game int64) (*models.WeaponSummary, error)
	FromGames(ctx context.Context, weapon string, games []int64) (*models.WeaponSummary, error)
	FromGamePlayer(ctx context.Context, weapon string, game int64, handle string) (*models.WeaponSummary, error)
	FromFilter(ctx context.Context, weapon string, f *GameFilter) (*models.WeaponSummary, error)

	AllFromPlayer(ctx context.Context, handle string) ([]*models.WeaponSummary, error)
	AllFromPlayerGames(ctx context.Context, handle string, games []int64) ([]*models.WeaponSummary, error)
	AllFromGame(ctx context.Context, game int64) ([]*models.WeaponSummary, error)
	AllFromGames(ctx context.Context, games []int64) ([]*models.WeaponSummary, error)
	AllFromFilter(ctx context.Context, f *GameFilter) ([]*models.WeaponSummary, error)
}
