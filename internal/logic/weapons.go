package logic

import (
	"context"
	"fmt"
	"slices"

	"github.com/redeclipse/stats-api/internal/models"
	"github.com/redeclipse/stats-api/internal/ruleset"
)

// weaponColumns is the fixed counter set summed by every weapon query,
// in scan order.
var weaponColumns = []string{
	"timewielded", "timeloadout",
	"damage1", "frags1", "hits1", "flakhits1", "shots1", "flakshots1",
	"damage2", "frags2", "hits2", "flakhits2", "shots2", "flakshots2",
}

type weaponService struct {
	pg PgPool
	rs *ruleset.Catalog
}

func NewWeaponService(pg PgPool, rs *ruleset.Catalog) WeaponService {
	return &weaponService{pg: pg, rs: rs}
}

func (s *weaponService) List() []string {
	return s.rs.WeaponNames()
}

func (s *weaponService) Count() int {
	return len(s.rs.WeaponNames())
}

func (s *weaponService) Get(ctx context.Context, name string) (*models.WeaponSummary, error) {
	if !slices.Contains(s.rs.WeaponNames(), name) {
		return nil, fmt.Errorf("weapon %q: %w", name, ErrNotFound)
	}
	return s.FromWeapon(ctx, name)
}

func (s *weaponService) All(ctx context.Context) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		return s.FromWeapon(ctx, name)
	})
}

// finish sums every counter over the records matching filter. SQL
// COALESCE guarantees zero sums instead of NULLs when nothing matches.
func (s *weaponService) finish(ctx context.Context, name string, f *GameFilter) (*models.WeaponSummary, error) {
	query := "SELECT "
	for i, c := range weaponColumns {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("COALESCE(SUM(gw.%s), 0)", c)
	}
	query += " FROM game_weapons gw WHERE " + f.Where()

	w := &models.WeaponSummary{Name: name, Passive: s.rs.IsPassiveWeapon(name)}
	err := s.pg.QueryRow(ctx, query, f.Args()...).Scan(
		&w.TimeWielded, &w.TimeLoadout,
		&w.Damage1, &w.Frags1, &w.Hits1, &w.FlakHits1, &w.Shots1, &w.FlakShots1,
		&w.Damage2, &w.Frags2, &w.Hits2, &w.FlakHits2, &w.Shots2, &w.FlakShots2)
	if err != nil {
		return nil, fmt.Errorf("weapon %s sums: %w", name, err)
	}
	return w, nil
}

func (s *weaponService) FromWeapon(ctx context.Context, weapon string) (*models.WeaponSummary, error) {
	return s.finish(ctx, weapon, NewGameFilter().Eq("gw.weapon", weapon))
}

func (s *weaponService) FromPlayer(ctx context.Context, weapon, handle string) (*models.WeaponSummary, error) {
	f := NewGameFilter().Eq("gw.weapon", weapon).Eq("gw.playerhandle", handle)
	return s.finish(ctx, weapon, f)
}

func (s *weaponService) FromPlayerGames(ctx context.Context, weapon, handle string, games []int64) (*models.WeaponSummary, error) {
	f := NewGameFilter().Eq("gw.weapon", weapon).Eq("gw.playerhandle", handle).GameIn("gw.game_id", games)
	return s.finish(ctx, weapon, f)
}

func (s *weaponService) FromGame(ctx context.Context, weapon string, game int64) (*models.WeaponSummary, error) {
	f := NewGameFilter().Eq("gw.weapon", weapon).Eq("gw.game_id", game)
	return s.finish(ctx, weapon, f)
}

func (s *weaponService) FromGames(ctx context.Context, weapon string, games []int64) (*models.WeaponSummary, error) {
	f := NewGameFilter().Eq("gw.weapon", weapon).GameIn("gw.game_id", games)
	return s.finish(ctx, weapon, f)
}

func (s *weaponService) FromGamePlayer(ctx context.Context, weapon string, game int64, handle string) (*models.WeaponSummary, error) {
	f := NewGameFilter().Eq("gw.weapon", weapon).Eq("gw.game_id", game).Eq("gw.playerhandle", handle)
	return s.finish(ctx, weapon, f)
}

// FromFilter sums over an arbitrary caller-built filter. The weapon
// condition is appended to it, so the filter must target the
// game_weapons alias "gw".
func (s *weaponService) FromFilter(ctx context.Context, weapon string, f *GameFilter) (*models.WeaponSummary, error) {
	return s.finish(ctx, weapon, f.Eq("gw.weapon", weapon))
}

func (s *weaponService) AllFromPlayer(ctx context.Context, handle string) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		return s.FromPlayer(ctx, name, handle)
	})
}

func (s *weaponService) AllFromPlayerGames(ctx context.Context, handle string, games []int64) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		return s.FromPlayerGames(ctx, name, handle, games)
	})
}

func (s *weaponService) AllFromGame(ctx context.Context, game int64) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		return s.FromGame(ctx, name, game)
	})
}

func (s *weaponService) AllFromGames(ctx context.Context, games []int64) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		return s.FromGames(ctx, name, games)
	})
}

func (s *weaponService) AllFromFilter(ctx context.Context, f *GameFilter) ([]*models.WeaponSummary, error) {
	return s.each(func(name string) (*models.WeaponSummary, error) {
		// Each weapon gets its own copy of the filter conditions.
		clone := &GameFilter{conds: slices.Clone(f.conds), args: slices.Clone(f.args)}
		return s.FromFilter(ctx, name, clone)
	})
}

func (s *weaponService) each(fn func(name string) (*models.WeaponSummary, error)) ([]*models.WeaponSummary, error) {
	names := s.rs.WeaponNames()
	out := make([]*models.WeaponSummary, 0, len(names))
	for _, n := range names {
		w, err := fn(n)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
