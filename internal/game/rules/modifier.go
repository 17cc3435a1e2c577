// Package rules computes rule legality and numeric rule values. Every output
// is produced the same way: a base value computed from plain game state, then
// folded through the ordered list of modifiers attached to the players
// involved.
package rules

import (
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
)

// NumericRule identifies a numeric rule value subject to modification.
type NumericRule string

const (
	RuleAttackRange    NumericRule = "ATTACK_RANGE"
	RuleSeatDistance   NumericRule = "SEAT_DISTANCE"
	RuleMaxUsesPerTurn NumericRule = "MAX_USES_PER_TURN"
	RuleDrawCount      NumericRule = "DRAW_COUNT"
)

// BoolRule identifies a boolean rule decision subject to modification.
type BoolRule string

const (
	RuleCanUseCard  BoolRule = "CAN_USE_CARD"
	RuleCanRespond  BoolRule = "CAN_RESPOND"
	RuleAutoRespond BoolRule = "AUTO_RESPOND"
	RuleUsableAs    BoolRule = "USABLE_AS"
)

// Query carries the state a modifier may inspect when forming an opinion.
// From is the seat the rule is evaluated for; To is the counterpart seat
// where one exists (distance target, response requester), otherwise -1.
// Card is the physical card under consideration when the rule concerns one.
type Query struct {
	Game     *game.Game
	From     int
	To       int
	CardName string
	Card     *game.Card
}

// Modifier adjusts rule outputs. A modifier returns (value, true) to override
// the running value for the next modifier in the fold, or (_, false) to state
// no opinion. Modifiers wanting cumulative behaviour must read current and
// add to it; they cannot assume they receive the unmodified base.
type Modifier interface {
	Name() string
	ModifyNumeric(rule NumericRule, q Query, current int) (int, bool)
	ModifyBool(rule BoolRule, q Query, current bool) (bool, bool)
}

// Source yields the ordered list of modifiers active for a seat. Order is
// attachment order and is load-bearing: the fold is last-writer-wins, so two
// distance-affecting cards interact differently if swapped.
type Source interface {
	ActiveModifiers(seat int) []Modifier
}

// FoldNumeric folds a base numeric value through the ordered modifiers.
func FoldNumeric(mods []Modifier, rule NumericRule, q Query, base int) int {
	value := base
	for _, m := range mods {
		if next, ok := m.ModifyNumeric(rule, q, value); ok {
			value = next
		}
	}
	return value
}

// FoldBool folds a base boolean decision through the ordered modifiers.
func FoldBool(mods []Modifier, rule BoolRule, q Query, base bool) bool {
	value := base
	for _, m := range mods {
		if next, ok := m.ModifyBool(rule, q, value); ok {
			value = next
		}
	}
	return value
}

// emptySource is used when no modifier source is configured.
type emptySource struct{}

func (emptySource) ActiveModifiers(int) []Modifier { return nil }

// NoModifiers is a Source with no active modifiers for any seat.
var NoModifiers Source = emptySource{}
