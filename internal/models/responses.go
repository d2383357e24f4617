package models

// PlayerDetail is the player detail payload: the resolved view plus
// its performance ratios and map ranking over the requested window.
type PlayerDetail struct {
	*Player

	Window  int        `json:"window"` // 0 = all games
	DPM     float64    `json:"dpm"`
	FPM     float64    `json:"fpm"`
	KDR     float64    `json:"kdr"`
	DFR     float64    `json:"dfr"`
	TopMaps []MapCount `json:"topmaps"`
}

// MapDetail is the map detail payload; top races are computed at
// resolution time, matching the map's fixed serialization.
type MapDetail struct {
	*Map

	TopRaces []RaceResult `json:"topraces"`
}
