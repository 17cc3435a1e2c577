package resolve

import (
	"strconv"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
)

// SlashResolver resolves a Slash against exactly one target: it builds the
// damage that happens if nobody responds, then opens a Dodge window for the
// target with a hit handler underneath it.
type SlashResolver struct{}

// Name implements Resolver.
func (r *SlashResolver) Name() string { return "Slash" }

// Resolve implements Resolver.
func (r *SlashResolver) Resolve(ctx *Context) Result {
	if len(ctx.Action.TargetSeats) != 1 {
		return Fail(CodeInvalidTarget, "SlashNeedsOneTarget")
	}
	targetSeat := ctx.Action.TargetSeats[0]
	target, ok := ctx.Game.FindPlayer(targetSeat)
	if !ok {
		return FailDetails(CodeInvalidTarget, "TargetNotFound", map[string]string{
			"seat": strconv.Itoa(targetSeat),
		})
	}
	if !target.Alive {
		return FailDetails(CodeTargetNotAlive, "TargetNotAlive", map[string]string{
			"seat": strconv.Itoa(targetSeat),
		})
	}
	if targetSeat == ctx.Actor.Seat {
		return Fail(CodeInvalidTarget, "CannotTargetSelf")
	}
	// Final guard: range may have changed since the action was offered.
	if !ctx.Rules.IsWithinAttackRange(ctx.Actor.Seat, targetSeat) {
		return FailDetails(CodeRuleValidation, "OutOfRange", map[string]string{
			"from": strconv.Itoa(ctx.Actor.Seat),
			"to":   strconv.Itoa(targetSeat),
		})
	}

	desc := &DamageDescriptor{
		Source:        ctx.Actor.Seat,
		Target:        targetSeat,
		Amount:        1,
		Kind:          DamageNormal,
		Reason:        "slash",
		TriggersDying: true,
	}
	if ctx.Card != nil {
		desc.CardID = ctx.Card.ID
	}

	ctx.EnsureScratch()
	exchange := exchangeID()

	// Handler first, window second: LIFO runs the window before the handler.
	ctx.Stack.Push(&SlashHitResolver{Exchange: exchange, Damage: desc}, ctx)
	ctx.Stack.Push(&ResponseWindowResolver{
		Exchange:   exchange,
		Responders: []int{targetSeat},
		CardName:   game.CardDodge,
		Prompt:     "Play a Dodge to cancel the Slash?",
	}, ctx)
	return Ok()
}

// SlashHitResolver reads the Dodge window's outcome and applies or negates
// the prepared damage.
type SlashHitResolver struct {
	Exchange string
	Damage   *DamageDescriptor
}

// Name implements Resolver.
func (r *SlashHitResolver) Name() string { return "SlashHit" }

// Resolve implements Resolver.
func (r *SlashHitResolver) Resolve(ctx *Context) Result {
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

	if outcome == OutcomeResponseSuccess {
		// Dodged; the Slash is negated and nothing further resolves.
		return Ok()
	}
	ctx.Stack.Push(&DamageResolver{}, ctx.WithPendingDamage(r.Damage))
	return Ok()
}
