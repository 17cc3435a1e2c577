package resolve

import "github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game"

// EffectFactory builds the resolver implementing one card's effect. Effect
// resolvers are stateless; they read the card and targets from the context.
type EffectFactory func() Resolver

// Registry maps card names to effect factories. It is an explicit value
// constructed by the caller — once in the server, per test in tests — never
// hidden global state.
type Registry struct {
	factories map[string]EffectFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]EffectFactory)}
}

// DefaultRegistry creates a registry with the base card effects wired.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(game.CardSlash, func() Resolver { return &SlashResolver{} })
	r.Register(game.CardPeach, func() Resolver { return &PeachResolver{} })
	return r
}

// Register binds a card name to an effect factory.
func (r *Registry) Register(cardName string, factory EffectFactory) {
	r.factories[cardName] = factory
}

// Lookup returns the factory for a card name.
func (r *Registry) Lookup(cardName string) (EffectFactory, bool) {
	f, ok := r.factories[cardName]
	return f, ok
}
