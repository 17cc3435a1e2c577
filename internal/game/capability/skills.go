package capability

import (
	"math"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// Hero skill identifiers.
const (
	SkillMashu   = "Mashu"
	SkillPaoxiao = "Paoxiao"
	SkillWusheng = "Wusheng"
)

// Mashu shortens the owner's distance to every other seat by one.
func Mashu(owner int) *Capability {
	return &Capability{
		ID: SkillMashu,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleSeatDistance && q.From == owner {
				return current - 1, true
			}
			return 0, false
		},
	}
}

// Paoxiao removes the per-turn Slash limit.
func Paoxiao() *Capability {
	return &Capability{
		ID: SkillPaoxiao,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleMaxUsesPerTurn && q.CardName == game.CardSlash {
				return math.MaxInt, true
			}
			return 0, false
		},
	}
}

// Wusheng lets the owner play any red card as a Slash.
func Wusheng() *Capability {
	return &Capability{
		ID: SkillWusheng,
		Bool: func(rule rules.BoolRule, q rules.Query, current bool) (bool, bool) {
			if rule == rules.RuleUsableAs && q.CardName == game.CardSlash &&
				q.Card != nil && q.Card.Suit.IsRed() {
				return true, true
			}
			return false, false
		},
	}
}
