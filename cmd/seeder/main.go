// Command seeder fills a development database with a small, fixed set
// of games so the API has something to serve. It is destructive: the
// stats tables are truncated first. Never point it at production.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redeclipse/stats-api/internal/ruleset"
)

const (
	numGames       = 60
	playersPerGame = 4
)

var (
	maps    = []string{"albatross", "bath", "canals", "dutility", "echo"}
	handles = []string{"ace", "bandit", "comet", "drifter", "echo9", "fixer", "", ""}
	servers = []string{"eu-main", "us-west", ""}
)

func main() {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(1))
	if err := seed(ctx, pool, rng); err != nil {
		log.Fatalf("seed: %v", err)
	}
	fmt.Printf("seeded %d games\n", numGames)
}

func seed(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rs := ruleset.Default()
	modes := rs.ModeNames()
	weapons := rs.WeaponNames()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"TRUNCATE games, game_players, game_servers, game_weapons RESTART IDENTITY")
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	now := time.Now().Unix()
	for i := 0; i < numGames; i++ {
		mode := modes[rng.Intn(len(modes))]
		muts := []string{}
		if mode == "race" {
			muts = append(muts, "timed")
			if rng.Intn(3) == 0 {
				muts = append(muts, "endurance")
			}
		} else if rng.Intn(4) == 0 {
			muts = append(muts, "insta")
		}
		timeplayed := int64(300 + rng.Intn(600))

		var gameID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO games (map, time, timeplayed, mode, mutators)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			maps[rng.Intn(len(maps))], now-int64(numGames-i)*3600, timeplayed,
			mode, muts).Scan(&gameID)
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO game_servers (game_id, handle) VALUES ($1, $2)",
			gameID, servers[rng.Intn(len(servers))])
		if err != nil {
			return fmt.Errorf("insert server: %w", err)
		}

		for p := 0; p < playersPerGame; p++ {
			handle := handles[rng.Intn(len(handles))]
			score := int64(rng.Intn(2000))
			if mode == "race" && rng.Intn(4) == 0 {
				score = 0 // did not finish
			}
			if err := seedPlayer(ctx, tx, rng, gameID, handle, score, timeplayed, weapons); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedPlayer(ctx context.Context, tx pgx.Tx, rng *rand.Rand, gameID int64, handle string, score, timeplayed int64, weapons []string) error {
	frags := int64(rng.Intn(30))
	deaths := int64(rng.Intn(30))
	alive := timeplayed - int64(rng.Intn(int(timeplayed/4)))

	_, err := tx.Exec(ctx,
		`INSERT INTO game_players (game_id, handle, name, score, frags, deaths, timealive, timeactive)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		gameID, handle, displayName(handle), score, frags, deaths, alive, timeplayed)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	if handle == "" {
		return nil
	}

	for _, w := range weapons {
		if rng.Intn(3) != 0 {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO game_weapons (game_id, playerhandle, weapon,
			   timewielded, timeloadout,
			   damage1, frags1, hits1, flakhits1, shots1, flakshots1,
			   damage2, frags2, hits2, flakhits2, shots2, flakshots2)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			gameID, handle, w,
			rng.Intn(120), rng.Intn(300),
			rng.Intn(500), rng.Intn(10), rng.Intn(80), rng.Intn(20), rng.Intn(120), rng.Intn(30),
			rng.Intn(200), rng.Intn(5), rng.Intn(40), rng.Intn(10), rng.Intn(60), rng.Intn(15))
		if err != nil {
			return fmt.Errorf("insert weapon row: %w", err)
		}
	}
	return nil
}

func displayName(handle string) string {
	if handle == "" {
		return "unnamed"
	}
	return handle
}
