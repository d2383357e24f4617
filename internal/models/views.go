package models

// Entity views are built fresh per request from the current database
// state. Game-id lists are ascending by game id and contain only games
// that still exist.

// Player is the resolved view for one player handle.
type Player struct {
	Handle  string  `json:"handle"`
	GameIDs []int64 `json:"game_ids"`

	First  *PlayerRecord `json:"-"`
	Latest *PlayerRecord `json:"-"`
}

// Server is the resolved view for one server handle.
type Server struct {
	Handle  string  `json:"handle"`
	GameIDs []int64 `json:"game_ids"`

	First  *ServerRecord `json:"first"`
	Latest *ServerRecord `json:"latest"`
}

// Map is the resolved view for one map name. GameTime is the summed
// duration of its games, PlayerTime the summed player active time.
type Map struct {
	Name    string  `json:"name"`
	GameIDs []int64 `json:"game_ids"`

	GameTime   int64 `json:"gametime"`
	PlayerTime int64 `json:"playertime"`

	First  *Game `json:"-"`
	Latest *Game `json:"-"`
}

// Mode is the resolved view for one game mode.
type Mode struct {
	Name     string  `json:"name"`
	LongName string  `json:"longname"`
	GameIDs  []int64 `json:"game_ids"`
}

// Mutator is the resolved view for one mutator name. Compound names
// ("<mode>-<mutator>") restrict the mutator to games of that mode.
type Mutator struct {
	Name    string  `json:"name"`
	GameIDs []int64 `json:"game_ids"`
}

// MapCount is one entry of a player's top-maps ranking.
type MapCount struct {
	Name  string `json:"name"`
	Games int    `json:"games"`
}

// RaceResult is one row of a map's top race times. Score is the elapsed
// race time, so lower is better.
type RaceResult struct {
	GameID int64  `json:"game_id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Score  int64  `json:"score"`
	When   int64  `json:"when"`
}

// RecentWindow returns the last n of an ascending game-id list, newest
// first. n <= 0 or n > len means the whole list; the slice never
// aliases ids.
func RecentWindow(ids []int64, n int) []int64 {
	if n <= 0 || n > len(ids) {
		n = len(ids)
	}
	out := make([]int64, 0, n)
	for i := len(ids) - 1; i >= len(ids)-n; i-- {
		out = append(out, ids[i])
	}
	return out
}

// PageSlice returns page <page> of <list> with pageSize entries per
// page. pageSize <= 0 returns the whole list; pages past the end are
// empty, not an error.
func PageSlice[T any](list []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return list
	}
	start := page * pageSize
	if start < 0 || start >= len(list) {
		return nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
