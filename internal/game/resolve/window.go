package resolve

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
)

// ResponseWindowResolver asks one or more seats, in order, whether they play
// the named response card, and records the outcome in the scratch store for
// the handler resolver pushed beneath it. The effect resolver pushes the
// handler first and the window second; LIFO order then runs the window first,
// which is the whole continuation trick: ask on this pop, react on the next.
type ResponseWindowResolver struct {
	Exchange   string
	Responders []int
	CardName   string
	Prompt     string
}

// Name implements Resolver.
func (r *ResponseWindowResolver) Name() string { return "ResponseWindow" }

// Resolve implements Resolver.
func (r *ResponseWindowResolver) Resolve(ctx *Context) Result {
	if ctx.Scratch == nil {
		return Fail(CodeInvalidState, "ScratchMissing")
	}

	for _, seat := range r.Responders {
		p, ok := ctx.Game.FindPlayer(seat)
		if !ok || !p.Alive {
			continue
		}

		// Attached effects (armor) may answer without consuming a card.
		if ctx.Rules.AutoRespond(seat, r.CardName) {
			r.recordSuccess(ctx, seat, "")
			return Ok()
		}

		if !ctx.Rules.CanRespond(seat, r.CardName) {
			continue
		}
		eligible := p.HandCardsNamed(r.CardName)
		if len(eligible) == 0 {
			continue
		}

		if ctx.Provider == nil {
			return Fail(CodeInvalidState, "ChoiceProviderMissing")
		}
		ids := make([]string, len(eligible))
		for i, c := range eligible {
			ids[i] = c.ID
		}
		answer := ctx.Provider.Ask(ChoiceRequest{
			ID:             uuid.NewString(),
			Seat:           seat,
			Kind:           ChoiceSelectCards,
			Prompt:         r.Prompt,
			AllowedCardIDs: ids,
			MinCards:       0,
			MaxCards:       1,
		})
		if len(answer.CardIDs) != 1 {
			continue
		}
		chosen := answer.CardIDs[0]
		if !contains(ids, chosen) {
			continue
		}
		if err := ctx.Mover.DiscardFromHand(ctx.Game, p, []string{chosen}); err != nil {
			return Fail(CodeInvalidState, "CardMoveFailed")
		}
		r.recordSuccess(ctx, seat, chosen)
		return Ok()
	}

	ctx.Scratch.Put(ScratchResponseOutcome, r.Exchange, OutcomeNoResponse)
	evt := events.New(events.EventNoResponse, -1, -1)
	evt.CardName = r.CardName
	ctx.Publish(evt)
	ctx.Log().Debug("response window closed without response",
		zap.String("card", r.CardName),
		zap.Ints("responders", r.Responders),
	)
	return Ok()
}

func (r *ResponseWindowResolver) recordSuccess(ctx *Context, seat int, cardID string) {
	ctx.Scratch.Put(ScratchResponseOutcome, r.Exchange, OutcomeResponseSuccess)
	evt := events.New(events.EventResponseSuccess, seat, -1)
	evt.CardName = r.CardName
	evt.CardID = cardID
	ctx.Publish(evt)
	ctx.Log().Debug("response window answered",
		zap.Int("seat", seat),
		zap.String("card", r.CardName),
		zap.Bool("auto", cardID == ""),
	)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func exchangeID() string {
	return uuid.NewString()
}
