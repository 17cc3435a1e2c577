package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
)

// EquipResolver moves an equipment card from the hand into its slot and
// swaps the matching capability record. A card already occupying the slot is
// discarded and its capability detached first, keeping fold order aligned
// with the equipment area.
type EquipResolver struct{}

// Name implements Resolver.
func (r *EquipResolver) Name() string { return "Equip" }

// Resolve implements Resolver.
func (r *EquipResolver) Resolve(ctx *Context) Result {
	if ctx.Card == nil {
		return Fail(CodeInvalidState, "EquipCardMissing")
	}
	replaced, err := ctx.Mover.Equip(ctx.Game, ctx.Actor, ctx.Card.ID)
	if err != nil {
		return FailDetails(CodeCardNotFound, "EquipFailed", map[string]string{
			"error": err.Error(),
		})
	}
	if ctx.Caps != nil {
		if replaced != nil {
			ctx.Caps.Detach(ctx.Actor.Seat, replaced.Name)
		}
		if cap := capability.ForEquipment(*ctx.Card, ctx.Actor.Seat); cap != nil {
			ctx.Caps.Attach(ctx.Actor.Seat, cap)
		}
	}
	ctx.Log().Info("equipment attached",
		zap.Int("seat", ctx.Actor.Seat),
		zap.String("card", ctx.Card.Name),
		zap.Bool("replaced", replaced != nil),
	)
	return Ok()
}
