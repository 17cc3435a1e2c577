package capability

import (
	"math"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// ZhugeCrossbow lifts the per-turn Slash limit entirely.
func ZhugeCrossbow() *Capability {
	return &Capability{
		ID: game.CardZhugeCrossbow,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleMaxUsesPerTurn && q.CardName == game.CardSlash {
				return math.MaxInt, true
			}
			return 0, false
		},
	}
}

// QinggangSword fixes the wielder's attack range at 2.
func QinggangSword() *Capability {
	return weaponRange(game.CardQinggangSword, 2)
}

// KirinBow fixes the wielder's attack range at 5.
func KirinBow() *Capability {
	return weaponRange(game.CardKirinBow, 5)
}

func weaponRange(id string, reach int) *Capability {
	return &Capability{
		ID: id,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleAttackRange {
				return reach, true
			}
			return 0, false
		},
	}
}

// DefensiveHorse makes the owner one step further away from everyone else.
// Cumulative: it reads the running distance and adds to it.
func DefensiveHorse(owner int) *Capability {
	return &Capability{
		ID: game.CardDefensiveHorse,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleSeatDistance && q.To == owner {
				return current + 1, true
			}
			return 0, false
		},
	}
}

// OffensiveHorse brings everyone else one step closer to the owner.
func OffensiveHorse(owner int) *Capability {
	return &Capability{
		ID: game.CardOffensiveHorse,
		Numeric: func(rule rules.NumericRule, q rules.Query, current int) (int, bool) {
			if rule == rules.RuleSeatDistance && q.From == owner {
				return current - 1, true
			}
			return 0, false
		},
	}
}

// EightTrigrams answers Dodge windows on the owner's behalf: a judgment card
// is flipped, and a red result counts as a successful Dodge without spending
// a hand card.
func EightTrigrams(owner int) *Capability {
	return &Capability{
		ID: game.CardEightTrigrams,
		Bool: func(rule rules.BoolRule, q rules.Query, current bool) (bool, bool) {
			if rule != rules.RuleAutoRespond || q.From != owner || q.CardName != game.CardDodge {
				return false, false
			}
			if current {
				// Already answered by an earlier effect; don't waste a judgment.
				return true, true
			}
			judged, ok := q.Game.Judge()
			if !ok {
				return false, false
			}
			return judged.Suit.IsRed(), true
		},
	}
}

// ForEquipment maps an equipment card to its capability record, if it has
// rule-modifying behaviour. owner is the seat the card is equipped on.
func ForEquipment(card game.Card, owner int) *Capability {
	switch card.Name {
	case game.CardZhugeCrossbow:
		return ZhugeCrossbow()
	case game.CardQinggangSword:
		return QinggangSword()
	case game.CardKirinBow:
		return KirinBow()
	case game.CardDefensiveHorse:
		return DefensiveHorse(owner)
	case game.CardOffensiveHorse:
		return OffensiveHorse(owner)
	case game.CardEightTrigrams:
		return EightTrigrams(owner)
	}
	return nil
}
