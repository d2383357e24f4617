// Package ruleset holds the static game-ruleset metadata: mode, mutator
// and weapon catalogs. The catalog is built once at startup and shared
// read-only by the stat services; nothing in here touches the database.
package ruleset

import "fmt"

// Modes "demo" and "edit" are internal/non-competitive and are excluded
// from mode listings, but their games still exist in the database.
var internalModes = map[string]bool{
	"demo": true,
	"edit": true,
}

// Catalog is the immutable ruleset lookup table.
type Catalog struct {
	modes     []string          // listing order, internal modes excluded
	longNames map[string]string // mode -> display name
	baseMuts  []string
	modeMuts  map[string][]string // mode -> mode-specific mutators
	weapons   []string
	passive   map[string]bool // weapons whose stats accrue from loadout time

	normalWeaponsExcluded []string // mutators that alter the weapon set
}

// Default returns the catalog for the current game version.
func Default() *Catalog {
	return &Catalog{
		modes: []string{
			"deathmatch", "capture-the-flag", "defend-and-control",
			"bomber-ball", "race",
		},
		longNames: map[string]string{
			"demo":               "Demo",
			"edit":               "Editing",
			"deathmatch":         "Deathmatch",
			"capture-the-flag":   "Capture the Flag",
			"defend-and-control": "Defend and Control",
			"bomber-ball":        "Bomber Ball",
			"race":               "Race",
		},
		baseMuts: []string{
			"multi", "ffa", "coop", "insta", "medieval", "kaboom",
			"duel", "survivor", "classic", "onslaught", "freestyle",
			"vampire", "resize", "hard", "basic",
		},
		modeMuts: map[string][]string{
			"capture-the-flag":   {"quick", "defend", "protect"},
			"defend-and-control": {"quick", "king"},
			"bomber-ball":        {"hold", "basket", "attack"},
			"race":               {"timed", "endurance", "gauntlet"},
		},
		weapons: []string{
			"claw", "pistol", "sword", "shotgun", "smg", "flamer",
			"plasma", "zapper", "rifle", "corroder", "grenade", "mine",
			"rocket", "melee",
		},
		passive: map[string]bool{
			"melee":   true,
			"grenade": true,
			"mine":    true,
			"rocket":  true,
		},
		normalWeaponsExcluded: []string{"insta", "medieval", "kaboom", "duel"},
	}
}

// ModeNames returns the competitive mode names in listing order.
func (c *Catalog) ModeNames() []string {
	out := make([]string, len(c.modes))
	copy(out, c.modes)
	return out
}

// HasMode reports whether name is a known mode, internal modes included.
func (c *Catalog) HasMode(name string) bool {
	_, ok := c.longNames[name]
	return ok
}

// IsInternalMode reports whether name is one of the non-competitive modes.
func (c *Catalog) IsInternalMode(name string) bool {
	return internalModes[name]
}

// LongName returns the display name for a mode, or the mode name itself
// when it has no display entry.
func (c *Catalog) LongName(mode string) string {
	if ln, ok := c.longNames[mode]; ok {
		return ln
	}
	return mode
}

// MutatorNames returns every base mutator followed by the compound
// "<mode>-<mutator>" names for mode-specific mutators, in listing order.
func (c *Catalog) MutatorNames() []string {
	out := make([]string, 0, len(c.baseMuts)+8)
	out = append(out, c.baseMuts...)
	for _, mode := range c.modes {
		for _, mut := range c.modeMuts[mode] {
			out = append(out, fmt.Sprintf("%s-%s", mode, mut))
		}
	}
	return out
}

// WeaponNames returns the weapon names in canonical order.
func (c *Catalog) WeaponNames() []string {
	out := make([]string, len(c.weapons))
	copy(out, c.weapons)
	return out
}

// IsPassiveWeapon reports whether a weapon accrues stats from being
// equipped (loadout time) rather than actively wielded.
func (c *Catalog) IsPassiveWeapon(name string) bool {
	return c.passive[name]
}

// NormalWeaponsExcluded returns the mutators that replace or alter the
// standard weapon set. Games carrying any of them are skipped by the
// performance-ratio queries.
func (c *Catalog) NormalWeaponsExcluded() []string {
	out := make([]string, len(c.normalWeaponsExcluded))
	copy(out, c.normalWeaponsExcluded)
	return out
}
