package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
)

// PeachResolver heals the actor by one point when played from hand during
// the play phase. Rescue Peaches go through the dying chain instead and
// never reach this resolver.
type PeachResolver struct{}

// Name implements Resolver.
func (r *PeachResolver) Name() string { return "Peach" }

// Resolve implements Resolver.
func (r *PeachResolver) Resolve(ctx *Context) Result {
	p := ctx.Actor
	if !p.Alive {
		return Fail(CodeTargetNotAlive, "ActorNotAlive")
	}
	if p.Health >= p.MaxHealth {
		return Fail(CodeRuleValidation, "HealthFull")
	}

	before := p.Health
	p.Health++

	evt := events.New(events.EventHealed, p.Seat, -1)
	evt.Amount = 1
	if ctx.Card != nil {
		evt.CardID = ctx.Card.ID
	}
	ctx.Publish(evt)

	ctx.Log().Info("peach used",
		zap.Int("seat", p.Seat),
		zap.Int("health_before", before),
		zap.Int("health_after", p.Health),
	)
	return Ok()
}
