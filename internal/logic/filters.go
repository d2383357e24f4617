package logic

import (
	"fmt"
	"strings"
)

// GameFilter accumulates parameterized WHERE fragments over a game-id
// column. Mode and mutator membership is pushed down to the database as
// subqueries against the per-game ruleset encoding (games.mode text,
// games.mutators text[]) instead of being evaluated over materialized
// records.
type GameFilter struct {
	conds []string
	args  []any
}

func NewGameFilter() *GameFilter {
	return &GameFilter{}
}

// add appends a condition. frag uses %s verbs where positional
// placeholders ($n) for args should be substituted.
func (f *GameFilter) add(frag string, args ...any) *GameFilter {
	ph := make([]any, len(args))
	for i, a := range args {
		f.args = append(f.args, a)
		ph[i] = fmt.Sprintf("$%d", len(f.args))
	}
	f.conds = append(f.conds, fmt.Sprintf(frag, ph...))
	return f
}

// HasMode requires the game in col to be of the given mode.
func (f *GameFilter) HasMode(col, mode string) *GameFilter {
	return f.add("EXISTS (SELECT 1 FROM games fg WHERE fg.id = "+col+" AND fg.mode = %s)", mode)
}

// HasMutator requires the game in col to carry the given mutator. A
// compound "<mode>-<mutator>" name requires both the mode and the
// mutator to hold. Mode names may themselves be hyphenated
// (capture-the-flag) while mutator names are single tokens, so the
// split happens at the last hyphen.
func (f *GameFilter) HasMutator(col, name string) *GameFilter {
	if i := strings.LastIndex(name, "-"); i >= 0 {
		f.HasMode(col, name[:i])
		name = name[i+1:]
	}
	return f.add("EXISTS (SELECT 1 FROM games fg WHERE fg.id = "+col+" AND %s = ANY(fg.mutators))", name)
}

// LacksMutator is the negated form of HasMutator for a plain name.
func (f *GameFilter) LacksMutator(col, name string) *GameFilter {
	return f.add("NOT EXISTS (SELECT 1 FROM games fg WHERE fg.id = "+col+" AND %s = ANY(fg.mutators))", name)
}

// NormalWeapons excludes games carrying any weapon-altering mutator.
func (f *GameFilter) NormalWeapons(col string, excluded []string) *GameFilter {
	return f.add("NOT EXISTS (SELECT 1 FROM games fg WHERE fg.id = "+col+" AND fg.mutators && %s)", excluded)
}

// GameIn restricts col to the given game ids. An empty list matches
// nothing, which makes sums over it collapse to zero.
func (f *GameFilter) GameIn(col string, ids []int64) *GameFilter {
	return f.add(col+" = ANY(%s)", ids)
}

// Eq adds a plain equality condition.
func (f *GameFilter) Eq(col string, v any) *GameFilter {
	return f.add(col+" = %s", v)
}

// Where renders the accumulated conditions joined with AND, or TRUE
// when the filter is empty.
func (f *GameFilter) Where() string {
	if len(f.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(f.conds, " AND ")
}

// Args returns the positional arguments matching Where().
func (f *GameFilter) Args() []any {
	return f.args
}
