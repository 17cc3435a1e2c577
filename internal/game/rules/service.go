package rules

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
)

// Decision reasons surfaced to callers.
const (
	ReasonUsageLimitReached = "UsageLimitReached"
	ReasonPlayerNotAlive    = "PlayerNotAlive"
	ReasonHealthFull        = "HealthFull"
	ReasonDeniedByModifier  = "DeniedByModifier"
)

// Decision is the structured outcome of a boolean rule query.
type Decision struct {
	Allowed bool
	Reason  string
	Details map[string]string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string, details map[string]string) Decision {
	return Decision{Allowed: false, Reason: reason, Details: details}
}

// Service computes base rule values from game state and applies the modifier
// fold on top. Resolvers call it immediately before applying effects as a
// final guard, independently of the earlier query-time check that offered the
// action to the player.
type Service struct {
	game   *game.Game
	mods   Source
	usage  *UsageCounter
	logger *zap.Logger
}

// NewService creates a rule service bound to one game.
func NewService(g *game.Game, mods Source, usage *UsageCounter, logger *zap.Logger) *Service {
	if mods == nil {
		mods = NoModifiers
	}
	if usage == nil {
		usage = NewUsageCounter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{game: g, mods: mods, usage: usage, logger: logger}
}

// Usage exposes the per-turn usage counter.
func (s *Service) Usage() *UsageCounter { return s.usage }

// AttackRange returns the effective attack range of the seat. Base is 1;
// weapons override it through the fold.
func (s *Service) AttackRange(seat int) int {
	q := Query{Game: s.game, From: seat, To: -1}
	return FoldNumeric(s.mods.ActiveModifiers(seat), RuleAttackRange, q, 1)
}

// SeatDistance returns the effective distance from one seat to another. Base
// is the topological seat distance; horses and movement skills adjust it.
// The attacker's modifiers fold first, then the defender's, both in
// attachment order.
func (s *Service) SeatDistance(from, to int) int {
	base := s.game.SeatSteps(from, to)
	q := Query{Game: s.game, From: from, To: to}
	mods := append(append([]Modifier(nil), s.mods.ActiveModifiers(from)...), s.mods.ActiveModifiers(to)...)
	d := FoldNumeric(mods, RuleSeatDistance, q, base)
	if d < 1 && from != to {
		d = 1
	}
	return d
}

// IsWithinAttackRange reports whether the target seat is inside the
// attacker's effective range.
func (s *Service) IsWithinAttackRange(from, to int) bool {
	return s.SeatDistance(from, to) <= s.AttackRange(from)
}

// MaxUsesPerTurn returns how many times the seat may use the named card per
// turn. Base is 1 for Slash and unlimited otherwise.
func (s *Service) MaxUsesPerTurn(seat int, cardName string) int {
	base := math.MaxInt
	if cardName == game.CardSlash {
		base = 1
	}
	q := Query{Game: s.game, From: seat, To: -1, CardName: cardName}
	return FoldNumeric(s.mods.ActiveModifiers(seat), RuleMaxUsesPerTurn, q, base)
}

// DrawCount returns how many cards the seat draws in its draw phase.
func (s *Service) DrawCount(seat int) int {
	q := Query{Game: s.game, From: seat, To: -1}
	return FoldNumeric(s.mods.ActiveModifiers(seat), RuleDrawCount, q, 2)
}

// CanUseCard decides whether the seat may use the named card right now.
func (s *Service) CanUseCard(seat int, cardName string) Decision {
	p, ok := s.game.FindPlayer(seat)
	if !ok || !p.Alive {
		return deny(ReasonPlayerNotAlive, map[string]string{"seat": fmt.Sprintf("%d", seat)})
	}
	if cardName == game.CardPeach && p.Health >= p.MaxHealth {
		return deny(ReasonHealthFull, nil)
	}
	used := s.usage.Count(seat, cardName)
	if limit := s.MaxUsesPerTurn(seat, cardName); used >= limit {
		return deny(ReasonUsageLimitReached, map[string]string{
			"card":  cardName,
			"used":  fmt.Sprintf("%d", used),
			"limit": fmt.Sprintf("%d", limit),
		})
	}
	q := Query{Game: s.game, From: seat, To: -1, CardName: cardName}
	if !FoldBool(s.mods.ActiveModifiers(seat), RuleCanUseCard, q, true) {
		return deny(ReasonDeniedByModifier, map[string]string{"card": cardName})
	}
	return allow()
}

// CanRespond decides whether the seat may answer a response window with the
// named card.
func (s *Service) CanRespond(seat int, cardName string) bool {
	p, ok := s.game.FindPlayer(seat)
	if !ok || !p.Alive {
		return false
	}
	q := Query{Game: s.game, From: seat, To: -1, CardName: cardName}
	return FoldBool(s.mods.ActiveModifiers(seat), RuleCanRespond, q, true)
}

// AutoRespond reports whether an attached effect answers the response window
// on the seat's behalf, without consuming a hand card. Eight Trigrams armor
// is the canonical case: it flips a judgment card and succeeds on red.
func (s *Service) AutoRespond(seat int, cardName string) bool {
	q := Query{Game: s.game, From: seat, To: -1, CardName: cardName}
	return FoldBool(s.mods.ActiveModifiers(seat), RuleAutoRespond, q, false)
}

// UsableAs reports whether the seat may play the given card as the named
// card. A card is always usable as itself; skills like Wusheng widen this.
func (s *Service) UsableAs(seat int, card game.Card, asName string) bool {
	if card.Name == asName {
		return true
	}
	q := Query{Game: s.game, From: seat, To: -1, CardName: asName, Card: &card}
	return FoldBool(s.mods.ActiveModifiers(seat), RuleUsableAs, q, false)
}

// LegalTargets returns the seats the attacker may target with the named card,
// in seat order. Only Slash is range-restricted.
func (s *Service) LegalTargets(seat int, cardName string) []int {
	var targets []int
	for _, p := range s.game.AlivePlayers() {
		if p.Seat == seat {
			continue
		}
		if cardName == game.CardSlash && !s.IsWithinAttackRange(seat, p.Seat) {
			continue
		}
		targets = append(targets, p.Seat)
	}
	return targets
}
