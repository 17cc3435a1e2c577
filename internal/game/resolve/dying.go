package resolve

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
)

// DyingResolver starts the rescue sub-chain for a player at zero or less
// health. It reuses the response-window pattern: a rescue handler is pushed
// first and a Peach window on top of it. Everyone still alive is asked in
// seat order, the dying player first.
type DyingResolver struct {
	Exchange string
}

// Name implements Resolver.
func (r *DyingResolver) Name() string { return "Dying" }

// Resolve implements Resolver.
func (r *DyingResolver) Resolve(ctx *Context) Result {
	if ctx.Scratch == nil {
		return Fail(CodeInvalidState, "ScratchMissing")
	}
	raw, ok := ctx.Scratch.Get(ScratchDyingSeat, r.Exchange)
	if !ok {
		return Fail(CodeInvalidState, "DyingSeatMissing")
	}
	seat, ok := raw.(int)
	if !ok {
		return Fail(CodeInvalidState, "DyingSeatMalformed")
	}
	ctx.Scratch.Delete(ScratchDyingSeat, r.Exchange)

	p, found := ctx.Game.FindPlayer(seat)
	if !found {
		return Fail(CodeInvalidState, "DyingPlayerMissing")
	}
	// Invariant: a dying player is still marked alive at nonpositive health.
	// A violation is a wiring defect, not a normal runtime condition.
	if p.Health > 0 || !p.Alive {
		return FailDetails(CodeInvalidState, "DyingInvariantViolated", map[string]string{
			"seat":   strconv.Itoa(seat),
			"health": strconv.Itoa(p.Health),
		})
	}

	evt := events.New(events.EventDyingStart, seat, -1)
	evt.Amount = p.Health
	ctx.Publish(evt)
	ctx.Log().Info("player dying",
		zap.Int("seat", seat),
		zap.Int("health", p.Health),
	)

	responders := []int{seat}
	for _, other := range ctx.Game.AlivePlayers() {
		if other.Seat != seat {
			responders = append(responders, other.Seat)
		}
	}

	exchange := exchangeID()
	ctx.Stack.Push(&DyingRescueHandlerResolver{Exchange: exchange, Seat: seat}, ctx)
	ctx.Stack.Push(&ResponseWindowResolver{
		Exchange:   exchange,
		Responders: responders,
		CardName:   game.CardPeach,
		Prompt:     "Play a Peach to rescue the dying player?",
	}, ctx)
	return Ok()
}

// DyingRescueHandlerResolver reacts to the Peach window. A successful rescue
// heals one point; if that still leaves the player at zero or below, a fresh
// dying resolver is pushed, modeling iterative rescue attempts. No rescue
// finalizes the death.
type DyingRescueHandlerResolver struct {
	Exchange string
	Seat     int
}

// Name implements Resolver.
func (r *DyingRescueHandlerResolver) Name() string { return "DyingRescueHandler" }

// Resolve implements Resolver.
func (r *DyingRescueHandlerResolver) Resolve(ctx *Context) Result {
	if ctx.Scratch == nil {
		return Fail(CodeInvalidState, "ScratchMissing")
	}
	raw, ok := ctx.Scratch.Get(ScratchResponseOutcome, r.Exchange)
	if !ok {
		return Fail(CodeInvalidState, "ResponseOutcomeMissing")
	}
	outcome, ok := raw.(ResponseOutcome)
	if !ok {
		return Fail(CodeInvalidState, "ResponseOutcomeMalformed")
	}
	ctx.Scratch.Delete(ScratchResponseOutcome, r.Exchange)

	p, found := ctx.Game.FindPlayer(r.Seat)
	if !found {
		return Fail(CodeInvalidState, "DyingPlayerMissing")
	}

	if outcome == OutcomeResponseSuccess {
		before := p.Health
		p.Health++

		evt := events.New(events.EventHealed, r.Seat, -1)
		evt.Amount = 1
		ctx.Publish(evt)
		ctx.Log().Info("player rescued",
			zap.Int("seat", r.Seat),
			zap.Int("health_before", before),
			zap.Int("health_after", p.Health),
		)

		if p.Health <= 0 {
			exchange := exchangeID()
			ctx.Scratch.Put(ScratchDyingSeat, exchange, r.Seat)
			ctx.Stack.Push(&DyingResolver{Exchange: exchange}, ctx)
		}
		return Ok()
	}

	p.Alive = false
	died := events.New(events.EventPlayerDied, r.Seat, -1)
	if ctx.PendingDamage != nil {
		died.Data["killer"] = strconv.Itoa(ctx.PendingDamage.Source)
	}
	ctx.Publish(died)
	ctx.Log().Info("player died",
		zap.Int("seat", r.Seat),
	)
	return Ok()
}
