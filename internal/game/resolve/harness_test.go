package resolve

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// testEnv wires a minimal engine around one game for resolver tests.
type testEnv struct {
	game     *game.Game
	caps     *capability.Set
	rules    *rules.Service
	bus      *events.Bus
	mover    *game.Mover
	registry *Registry
	stack    *Stack
	provider ChoiceProvider

	published []events.Event
}

func newTestEnv(t *testing.T, playerCount, health int) *testEnv {
	t.Helper()
	g := game.New(game.Config{
		PlayerCount:   playerCount,
		InitialHealth: health,
		Seed:          42,
	}, zap.NewNop())

	env := &testEnv{
		game:     g,
		caps:     capability.NewSet(),
		bus:      events.NewBus(),
		mover:    game.NewMover(nil),
		registry: DefaultRegistry(),
		stack:    NewStack(nil),
	}
	env.rules = rules.NewService(g, env.caps, rules.NewUsageCounter(), nil)
	env.bus.Subscribe(func(evt events.Event) {
		env.published = append(env.published, evt)
	})
	return env
}

func (e *testEnv) context(actorSeat int) *Context {
	actor, ok := e.game.FindPlayer(actorSeat)
	if !ok {
		panic(fmt.Sprintf("no player in seat %d", actorSeat))
	}
	return &Context{
		Game:     e.game,
		Actor:    actor,
		Stack:    e.stack,
		Mover:    e.mover,
		Rules:    e.rules,
		Caps:     e.caps,
		Registry: e.registry,
		Provider: e.provider,
		Bus:      e.bus,
	}
}

// drain pops until the stack is empty, failing the test on the first failed
// result.
func (e *testEnv) drain(t *testing.T) {
	t.Helper()
	for !e.stack.IsEmpty() {
		if res := e.stack.Pop(); !res.Success {
			t.Fatalf("resolver failed: code=%s key=%s", res.Code, res.MessageKey)
		}
	}
}

// drainExpectFailure pops until a failure occurs and returns it.
func (e *testEnv) drainExpectFailure(t *testing.T) Result {
	t.Helper()
	for !e.stack.IsEmpty() {
		if res := e.stack.Pop(); !res.Success {
			return res
		}
	}
	t.Fatalf("expected a resolver failure, stack drained cleanly")
	return Result{}
}

func (e *testEnv) eventTypes() []events.EventType {
	out := make([]events.EventType, len(e.published))
	for i, evt := range e.published {
		out[i] = evt.Type
	}
	return out
}

func (e *testEnv) hasEvent(eventType events.EventType) bool {
	for _, evt := range e.published {
		if evt.Type == eventType {
			return true
		}
	}
	return false
}

var testCardSerial int

// giveCard puts a fresh named card into the seat's hand and returns it.
func (e *testEnv) giveCard(seat int, name string) game.Card {
	testCardSerial++
	c := game.Card{
		ID:   fmt.Sprintf("test-%s-%d", name, testCardSerial),
		Name: name,
		Suit: game.SuitSpade,
		Rank: 7,
	}
	switch name {
	case game.CardDodge:
		c.Suit = game.SuitDiamond
	case game.CardPeach:
		c.Suit = game.SuitHeart
	}
	switch name {
	case game.CardZhugeCrossbow, game.CardQinggangSword, game.CardKirinBow:
		c.Type = game.CardTypeEquipment
		c.Slot = game.EquipSlotWeapon
	case game.CardEightTrigrams:
		c.Type = game.CardTypeEquipment
		c.Slot = game.EquipSlotArmor
	case game.CardDefensiveHorse:
		c.Type = game.CardTypeEquipment
		c.Slot = game.EquipSlotDefensiveHorse
	case game.CardOffensiveHorse:
		c.Type = game.CardTypeEquipment
		c.Slot = game.EquipSlotOffensiveHorse
	}
	p, _ := e.game.FindPlayer(seat)
	p.Hand = append(p.Hand, c)
	return c
}

// scriptAnswers installs a scripted provider with the given answers.
func (e *testEnv) scriptAnswers(answers ...ChoiceResult) {
	e.provider = &ScriptedProvider{Script: answers}
}

// pickCards is a shorthand for a select-cards answer.
func pickCards(ids ...string) ChoiceResult {
	return ChoiceResult{CardIDs: ids}
}

// declineChoice is an empty answer: pass / no response.
func declineChoice() ChoiceResult {
	return ChoiceResult{}
}
