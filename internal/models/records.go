package models

// Game is one completed game. IDs are assigned at game completion and
// increase monotonically, so they double as the temporal ordering key.
type Game struct {
	ID         int64    `json:"id"`
	Map        string   `json:"map"`
	Time       int64    `json:"time"` // epoch seconds, when the game was played
	TimePlayed int64    `json:"timeplayed"`
	Mode       string   `json:"mode"`
	Mutators   []string `json:"mutators"`
}

// PlayerRecord is one player's row for one game. An empty handle means
// the player was anonymous; anonymous rows never surface as entities.
type PlayerRecord struct {
	GameID     int64  `json:"game_id"`
	Handle     string `json:"handle"`
	Name       string `json:"name"` // display name at time of game
	Score      int64  `json:"score"`
	Frags      int64  `json:"frags"`
	Deaths     int64  `json:"deaths"`
	TimeAlive  int64  `json:"timealive"`
	TimeActive int64  `json:"timeactive"`
}

// ServerRecord is one server's row for one game.
type ServerRecord struct {
	GameID int64  `json:"game_id"`
	Handle string `json:"handle"`
}
