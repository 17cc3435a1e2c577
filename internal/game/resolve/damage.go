package resolve

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
)

// DamageKind tags the nature of damage for skills that care.
type DamageKind string

const (
	DamageNormal DamageKind = "NORMAL"
	DamageFire   DamageKind = "FIRE"
)

// DamageDescriptor fully describes one instance of pending damage before it
// is applied.
type DamageDescriptor struct {
	Source        int
	Target        int
	Amount        int
	Kind          DamageKind
	Reason        string
	CardID        string
	TriggersDying bool
}

// Validate checks structural validity; seat existence is checked against the
// game by the resolver.
func (d *DamageDescriptor) Validate() error {
	if d == nil {
		return errors.New("nil damage descriptor")
	}
	if d.Amount <= 0 {
		return fmt.Errorf("damage amount must be positive, got %d", d.Amount)
	}
	if d.Source == d.Target {
		return fmt.Errorf("damage source and target must differ, both %d", d.Source)
	}
	return nil
}

// DamageResolver applies the context's pending damage to its target and, when
// health drops to zero or below, opens the dying sub-chain.
//
// Health is not clamped at zero: a large hit leaves the target negative and
// each rescue heals one point, so deep dying states need several rescues.
type DamageResolver struct{}

// Name implements Resolver.
func (r *DamageResolver) Name() string { return "Damage" }

// Resolve implements Resolver.
func (r *DamageResolver) Resolve(ctx *Context) Result {
	d := ctx.PendingDamage
	if d == nil {
		return Fail(CodeInvalidState, "PendingDamageMissing")
	}
	if err := d.Validate(); err != nil {
		return FailDetails(CodeInvalidState, "PendingDamageInvalid", map[string]string{
			"error": err.Error(),
		})
	}
	target, ok := ctx.Game.FindPlayer(d.Target)
	if !ok {
		return FailDetails(CodeInvalidTarget, "TargetNotFound", map[string]string{
			"seat": strconv.Itoa(d.Target),
		})
	}
	if !target.Alive {
		return FailDetails(CodeTargetNotAlive, "TargetNotAlive", map[string]string{
			"seat": strconv.Itoa(d.Target),
		})
	}

	// Pre-application hook point: skills listening here may react before the
	// health change lands.
	created := events.New(events.EventDamageCreated, d.Source, d.Target)
	created.Amount = d.Amount
	created.CardID = d.CardID
	created.Data["kind"] = string(d.Kind)
	created.Data["reason"] = d.Reason
	ctx.Publish(created)

	before := target.Health
	target.Health = before - d.Amount

	applied := events.New(events.EventDamageApplied, d.Source, d.Target)
	applied.Amount = d.Amount
	applied.CardID = d.CardID
	applied.Data["before"] = fmt.Sprintf("%d", before)
	applied.Data["after"] = fmt.Sprintf("%d", target.Health)
	ctx.Publish(applied)

	ctx.Log().Info("damage applied",
		zap.Int("source", d.Source),
		zap.Int("target", d.Target),
		zap.Int("amount", d.Amount),
		zap.String("kind", string(d.Kind)),
		zap.String("reason", d.Reason),
		zap.Int("health_before", before),
		zap.Int("health_after", target.Health),
	)

	if target.Health > 0 {
		return Ok()
	}
	if d.TriggersDying {
		exchange := exchangeID()
		ctx.EnsureScratch().Put(ScratchDyingSeat, exchange, d.Target)
		ctx.Stack.Push(&DyingResolver{Exchange: exchange}, ctx)
		return Ok()
	}

	// No dying phase for this damage; the player dies on the spot.
	target.Alive = false
	died := events.New(events.EventPlayerDied, d.Target, -1)
	died.Data["killer"] = strconv.Itoa(d.Source)
	ctx.Publish(died)
	return Ok()
}
