package resolve

import (
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/capability"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/events"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/rules"
)

// Action is the high-level action one resolution chain is executing: use the
// identified card, optionally as another card, against the listed seats.
type Action struct {
	CardID      string
	AsName      string
	TargetSeats []int
}

// Context is the bundle of references threaded through every resolver
// invocation. It is immutable per construction: a resolver that must hand a
// changed field to a nested resolver builds a copy via a With method rather
// than mutating in place. The Scratch store and the Stack are shared across
// all copies belonging to one resolution.
type Context struct {
	Game     *game.Game
	Actor    *game.Player
	Action   Action
	Choice   *ChoiceResult
	Card     *game.Card
	Stack    *Stack
	Mover    *game.Mover
	Rules    *rules.Service
	Caps     *capability.Set
	Registry *Registry

	PendingDamage *DamageDescriptor

	Provider ChoiceProvider
	Scratch  *Scratch
	Bus      *events.Bus
	Logger   *zap.Logger
}

// WithPendingDamage returns a copy carrying the descriptor.
func (c *Context) WithPendingDamage(d *DamageDescriptor) *Context {
	cp := *c
	cp.PendingDamage = d
	return &cp
}

// WithCard returns a copy carrying the card being resolved.
func (c *Context) WithCard(card *game.Card) *Context {
	cp := *c
	cp.Card = card
	return &cp
}

// WithActor returns a copy acting as a different player.
func (c *Context) WithActor(p *game.Player) *Context {
	cp := *c
	cp.Actor = p
	return &cp
}

// WithChoice returns a copy carrying the player's structured choice.
func (c *Context) WithChoice(choice *ChoiceResult) *Context {
	cp := *c
	cp.Choice = choice
	return &cp
}

// EnsureScratch lazily creates the shared scratch store. The store is shared
// by reference, so copies made afterwards see the same entries.
func (c *Context) EnsureScratch() *Scratch {
	if c.Scratch == nil {
		c.Scratch = NewScratch()
	}
	return c.Scratch
}

// Publish sends an event if a bus is configured; absence is a no-op.
func (c *Context) Publish(evt events.Event) {
	if c.Bus != nil {
		c.Bus.Publish(evt)
	}
}

// Log returns the configured logger, never nil.
func (c *Context) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
