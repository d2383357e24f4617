package models

// WeaponSummary carries the fixed set of summed weapon counters over
// some scope (a player, a game set, everything). Missing sums are
// normalized to 0 at query time, so the zero value is a valid summary.
type WeaponSummary struct {
	Name string `json:"name"`

	TimeWielded int64 `json:"timewielded"`
	TimeLoadout int64 `json:"timeloadout"`

	Damage1    int64 `json:"damage1"`
	Frags1     int64 `json:"frags1"`
	Hits1      int64 `json:"hits1"`
	FlakHits1  int64 `json:"flakhits1"`
	Shots1     int64 `json:"shots1"`
	FlakShots1 int64 `json:"flakshots1"`

	Damage2    int64 `json:"damage2"`
	Frags2     int64 `json:"frags2"`
	Hits2      int64 `json:"hits2"`
	FlakHits2  int64 `json:"flakhits2"`
	Shots2     int64 `json:"shots2"`
	FlakShots2 int64 `json:"flakshots2"`

	// Passive weapons accrue stats from being equipped rather than
	// actively used.
	Passive bool `json:"passive"`
}

// Time returns the effective time for the weapon: loadout time for
// passive weapons, wielded time otherwise.
func (w *WeaponSummary) Time() int64 {
	if w.Passive {
		return w.TimeLoadout
	}
	return w.TimeWielded
}

// Damage returns the summed damage across both fire modes.
func (w *WeaponSummary) Damage() int64 {
	return w.Damage1 + w.Damage2
}

// Frags returns the summed frags across both fire modes.
func (w *WeaponSummary) Frags() int64 {
	return w.Frags1 + w.Frags2
}
