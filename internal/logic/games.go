package logic

import (
	"context"
	"fmt"

	"github.com/redeclipse/stats-api/internal/models"
)

// fetchGames materializes full Game rows for a pre-ordered id list.
// The ids decide membership, the database decides nothing but content;
// ordering is re-applied since ANY() loses it.
func fetchGames(ctx context.Context, pg PgPool, ids []int64, desc bool) ([]models.Game, error) {
	if len(ids) == 0 {
		return []models.Game{}, nil
	}
	order := "ASC"
	if desc {
		order = "DESC"
	}
	rows, err := pg.Query(ctx,
		"SELECT id, map, time, timeplayed, mode, mutators FROM games WHERE id = ANY($1) ORDER BY id "+order, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	defer rows.Close()

	games := make([]models.Game, 0, len(ids))
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.Map, &g.Time, &g.TimePlayed, &g.Mode, &g.Mutators); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// gameIDsWhere returns ascending game ids matching a filter.
func gameIDsWhere(ctx context.Context, pg PgPool, f *GameFilter) ([]int64, error) {
	rows, err := pg.Query(ctx,
		"SELECT g.id FROM games g WHERE "+f.Where()+" ORDER BY g.id ASC", f.Args()...)
	if err != nil {
		return nil, fmt.Errorf("game ids: %w", err)
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
	return ids, rows.Err()
}
