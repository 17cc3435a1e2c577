package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

type driverEnv struct {
	game      *game.Game
	driver    *Driver
	caps      *capability.Set
	bus       *events.Bus
	provider  *resolve.ScriptedProvider
	published []events.Event
}

func newDriverEnv(t *testing.T, playerCount, health int, script []resolve.ChoiceResult) *driverEnv {
	t.Helper()
	g := game.New(game.Config{
		PlayerCount:   playerCount,
		InitialHealth: health,
		Seed:          11,
	}, nil)
	caps := capability.NewSet()
	ruleSvc := rules.NewService(g, caps, rules.NewUsageCounter(), nil)
	bus := events.NewBus()
	mover := game.NewMover(nil)
	provider := &resolve.ScriptedProvider{Script: script}

	env := &driverEnv{
		game:     g,
		caps:     caps,
		bus:      bus,
		provider: provider,
	}
	bus.Subscribe(func(evt events.Event) {
		env.published = append(env.published, evt)
	})
	env.driver = New(g, ruleSvc, caps, resolve.DefaultRegistry(), mover, bus, provider, nil)
	return env
}

func (e *driverEnv) countEvents(eventType events.EventType) int {
	n := 0
	for _, evt := range e.published {
		if evt.Type == eventType {
			n++
		}
	}
	return n
}

func TestRunTurnWalksAllPhases(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil) // empty script: the seat passes on everything

	require.NoError(t, env.driver.RunTurn(0))

	assert.Equal(t, 1, env.countEvents(events.EventTurnBegin))
	assert.Equal(t, len(turnSequence), env.countEvents(events.EventPhaseChanged))

	p, _ := env.game.FindPlayer(0)
	assert.Len(t, p.Hand, 2, "draw phase gives two cards")
}

func TestRunTurnEnforcesHandLimit(t *testing.T) {
	env := newDriverEnv(t, 2, 1, nil)
	p, _ := env.game.FindPlayer(0)

	// Health 1 with two drawn cards forces a discard down to one. The empty
	// script declines the discard pick; the fallback discards from the front.
	require.NoError(t, env.driver.RunTurn(0))
	assert.Len(t, p.Hand, 1)
}

func TestRunTurnResetsUsage(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil)
	env.driver.rules.Usage().Record(0, game.CardSlash)

	require.NoError(t, env.driver.RunTurn(0))
	assert.Equal(t, 0, env.driver.rules.Usage().Count(0, game.CardSlash))
}

func TestRunTurnRejectsDeadSeat(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil)
	p, _ := env.game.FindPlayer(1)
	p.Alive = false

	assert.Error(t, env.driver.RunTurn(1))
}

func TestExecuteActionSurfacesFirstFailure(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil)
	p, _ := env.game.FindPlayer(0)

	err := env.driver.ExecuteAction(p, resolve.Action{CardID: "no-such-card"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CardNotFound")

	records := env.driver.Records()
	require.NotEmpty(t, records)
	assert.False(t, records[len(records)-1].Result.Success)
}

func TestExecuteActionRecordsHistory(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil)
	p, _ := env.game.FindPlayer(0)
	slash := game.Card{ID: "s1", Name: game.CardSlash, Suit: game.SuitSpade, Rank: 7}
	p.Hand = append(p.Hand, slash)

	err := env.driver.ExecuteAction(p, resolve.Action{CardID: "s1", TargetSeats: []int{1}})
	require.NoError(t, err)

	records := env.driver.Records()
	require.NotEmpty(t, records)
	assert.Equal(t, "UseCard", records[0].Resolver)
	for _, rec := range records {
		assert.True(t, rec.Result.Success)
	}
}

func TestRunPlaysScriptedLethalGame(t *testing.T) {
	env := newDriverEnv(t, 2, 1, []resolve.ChoiceResult{
		{CardIDs: []string{"s1"}}, // play the Slash
		{TargetSeats: []int{1}},   // at seat 1
	})
	// Strip the deck so the draw phase cannot hand out rescue Peaches.
	env.game.DrawPile = nil
	p, _ := env.game.FindPlayer(0)
	p.Hand = append(p.Hand, game.Card{ID: "s1", Name: game.CardSlash, Suit: game.SuitSpade, Rank: 7})

	winner, err := env.driver.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, winner)

	loser, _ := env.game.FindPlayer(1)
	assert.False(t, loser.Alive)
	assert.Equal(t, 1, env.countEvents(events.EventPlayerDied))
}

func TestPlayPhaseNeverOffersResponseOnlyCards(t *testing.T) {
	env := newDriverEnv(t, 2, 4, []resolve.ChoiceResult{
		{CardIDs: []string{"d1"}}, // would pick the Dodge if it were offered
	})
	env.game.DrawPile = nil
	p, _ := env.game.FindPlayer(0)
	p.Hand = append(p.Hand, game.Card{ID: "d1", Name: game.CardDodge, Suit: game.SuitDiamond, Rank: 2})

	// A Dodge has no registered effect: it must not be offered, so the turn
	// completes without touching the scripted answer.
	require.NoError(t, env.driver.RunTurn(0))

	_, stillHeld := p.HandCard("d1")
	assert.True(t, stillHeld)
	assert.Equal(t, 1, env.provider.Remaining(), "no play-phase question should have been asked")
}

func TestPlayPhaseOffersWushengVirtualSlash(t *testing.T) {
	env := newDriverEnv(t, 2, 4, []resolve.ChoiceResult{
		{CardIDs: []string{"r1"}},
		{TargetSeats: []int{1}},
	})
	env.game.DrawPile = nil
	env.caps.Attach(0, capability.Wusheng())
	p, _ := env.game.FindPlayer(0)
	p.Hand = append(p.Hand, game.Card{ID: "r1", Name: game.CardDodge, Suit: game.SuitHeart, Rank: 2})

	require.NoError(t, env.driver.RunTurn(0))

	target, _ := env.game.FindPlayer(1)
	assert.Equal(t, 3, target.Health, "the red card should have resolved as a Slash")
	_, stillHeld := p.HandCard("r1")
	assert.False(t, stillHeld)
	assert.Equal(t, 1, env.driver.rules.Usage().Count(0, game.CardSlash))
}

func TestRunReturnsNoWinnerOnStalemate(t *testing.T) {
	env := newDriverEnv(t, 2, 4, nil)
	env.driver.maxTurns = 3
	// Empty deck, empty hands: nobody can ever act.
	env.game.DrawPile = nil

	winner, err := env.driver.Run()
	require.NoError(t, err)
	assert.Equal(t, NoWinner, winner)
}
