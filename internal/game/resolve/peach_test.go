package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

func TestPeachHealsOnePoint(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	actor, _ := env.game.FindPlayer(0)
	actor.Health = 2

	env.stack.Push(&PeachResolver{}, env.context(0))
	env.drain(t)

	assert.Equal(t, 3, actor.Health)
	assert.True(t, env.hasEvent(events.EventHealed))
}

func TestPeachAtFullHealthFails(t *testing.T) {
	env := newTestEnv(t, 2, 4)

	env.stack.Push(&PeachResolver{}, env.context(0))
	res := env.stack.Pop()
	require.False(t, res.Success)
	assert.Equal(t, CodeRuleValidation, res.Code)
	assert.Equal(t, "HealthFull", res.MessageKey)
}

func TestUseCardPeachBlockedAtFullHealth(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	peach := env.giveCard(0, game.CardPeach)

	ctx := env.context(0)
	ctx.Action = Action{CardID: peach.ID}
	env.stack.Push(&UseCardResolver{}, ctx)

	// CanUseCard rejects the Peach before it ever leaves the hand.
	res := env.drainExpectFailure(t)
	assert.Equal(t, CodeRuleValidation, res.Code)
	assert.Equal(t, rules.ReasonHealthFull, res.MessageKey)

	actor, _ := env.game.FindPlayer(0)
	_, stillHeld := actor.HandCard(peach.ID)
	assert.True(t, stillHeld)
}

func TestUseCardPeachHealsWhenWounded(t *testing.T) {
	env := newTestEnv(t, 2, 4)
	actor, _ := env.game.FindPlayer(0)
	actor.Health = 1
	peach := env.giveCard(0, game.CardPeach)

	ctx := env.context(0)
	ctx.Action = Action{CardID: peach.ID}
	env.stack.Push(&UseCardResolver{}, ctx)
	env.drain(t)

	assert.Equal(t, 2, actor.Health)
	_, stillHeld := actor.HandCard(peach.ID)
	assert.False(t, stillHeld)
}
