package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// UseCardResolver is the entry resolver for a "play this card" action. It
// re-validates legality as a final guard, moves the card, records usage, and
// pushes the card's effect resolver.
type UseCardResolver struct{}

// Name implements Resolver.
func (r *UseCardResolver) Name() string { return "UseCard" }

// Resolve implements Resolver.
func (r *UseCardResolver) Resolve(ctx *Context) Result {
	card, ok := ctx.Actor.HandCard(ctx.Action.CardID)
	if !ok {
		return FailDetails(CodeCardNotFound, "CardNotFound", map[string]string{
			"card_id": ctx.Action.CardID,
		})
	}

	effectiveName := card.Name
	if ctx.Action.AsName != "" {
		effectiveName = ctx.Action.AsName
	}
	if effectiveName != card.Name && !ctx.Rules.UsableAs(ctx.Actor.Seat, card, effectiveName) {
		return FailDetails(CodeRuleValidation, "CardNotUsableAs", map[string]string{
			"card": card.Name,
			"as":   effectiveName,
		})
	}

	// Final guard: the query-time check that offered this action may be stale.
	if dec := ctx.Rules.CanUseCard(ctx.Actor.Seat, effectiveName); !dec.Allowed {
		code := CodeRuleValidation
		if dec.Reason == rules.ReasonUsageLimitReached {
			code = CodeUsageLimitReached
		}
		return FailDetails(code, dec.Reason, dec.Details)
	}

	var effect Resolver
	if card.Type == game.CardTypeEquipment {
		effect = &EquipResolver{}
	} else {
		factory, ok := ctx.Registry.Lookup(effectiveName)
		if !ok {
			// A card in the deck with no registered effect is a wiring defect.
			return FailDetails(CodeInvalidState, "NoEffectRegistered", map[string]string{
				"card": effectiveName,
			})
		}
		effect = factory()
		if err := ctx.Mover.DiscardFromHand(ctx.Game, ctx.Actor, []string{card.ID}); err != nil {
			return Fail(CodeInvalidState, "CardMoveFailed")
		}
	}

	ctx.Rules.Usage().Record(ctx.Actor.Seat, effectiveName)

	evt := events.New(events.EventCardUsed, ctx.Actor.Seat, -1)
	evt.CardID = card.ID
	evt.CardName = effectiveName
	ctx.Publish(evt)

	ctx.Log().Info("card used",
		zap.Int("seat", ctx.Actor.Seat),
		zap.String("card", card.Name),
		zap.String("as", effectiveName),
		zap.Ints("targets", ctx.Action.TargetSeats),
	)

	ctx.Stack.Push(effect, ctx.WithCard(&card))
	return Ok()
}
