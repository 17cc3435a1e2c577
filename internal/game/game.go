package game

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config describes how to set up a game.
type Config struct {
	PlayerCount   int
	InitialHealth int
	Seed          int64
}

// Game holds the full mutable state of one match: seated players, the shared
// piles and turn counters. All mutation is synchronous and single-threaded;
// determinism comes from the seeded RNG and the recorded player choices.
type Game struct {
	ID          string
	Players     []*Player
	DrawPile    []Card
	DiscardPile []Card
	Turn        int
	CurrentSeat int

	rng    *rand.Rand
	logger *zap.Logger
}

// New creates a game with a freshly built, seed-shuffled deck and the
// configured number of seated players.
func New(cfg Config, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		ID:     uuid.NewString(),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
	}
	for seat := 0; seat < cfg.PlayerCount; seat++ {
		g.Players = append(g.Players, &Player{
			Seat:      seat,
			Health:    cfg.InitialHealth,
			MaxHealth: cfg.InitialHealth,
			Alive:     true,
		})
	}
	g.DrawPile = BuildDeck(g.rng)
	logger.Info("game created",
		zap.String("game_id", g.ID),
		zap.Int("players", cfg.PlayerCount),
		zap.Int("deck_size", len(g.DrawPile)),
		zap.Int64("seed", cfg.Seed),
	)
	return g
}

// FindPlayer returns the player in the given seat.
func (g *Game) FindPlayer(seat int) (*Player, bool) {
	if seat < 0 || seat >= len(g.Players) {
		return nil, false
	}
	return g.Players[seat], true
}

// AlivePlayers returns all players still in the game, in seat order.
func (g *Game) AlivePlayers() []*Player {
	var out []*Player
	for _, p := range g.Players {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

// AliveCount returns the number of players still in the game.
func (g *Game) AliveCount() int {
	return len(g.AlivePlayers())
}

// SeatSteps returns the topological distance between two seats: the minimum
// number of steps walking the circle of alive players in either direction.
// Dead players do not count as steps. Returns 0 for identical seats.
func (g *Game) SeatSteps(from, to int) int {
	if from == to {
		return 0
	}
	alive := g.AlivePlayers()
	fromIdx, toIdx := -1, -1
	for i, p := range alive {
		if p.Seat == from {
			fromIdx = i
		}
		if p.Seat == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return len(g.Players) + 1
	}
	clockwise := toIdx - fromIdx
	if clockwise < 0 {
		clockwise += len(alive)
	}
	counter := len(alive) - clockwise
	if counter < clockwise {
		return counter
	}
	return clockwise
}

// DrawTop removes and returns the top card of the draw pile, recycling the
// discard pile through the seeded RNG when the draw pile is empty.
func (g *Game) DrawTop() (Card, bool) {
	if len(g.DrawPile) == 0 {
		g.recycleDiscard()
	}
	if len(g.DrawPile) == 0 {
		return Card{}, false
	}
	c := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]
	return c, true
}

// Judge flips the top card of the draw pile into the discard pile and returns
// it. Used by armor effects that decide outcomes by card flip.
func (g *Game) Judge() (Card, bool) {
	c, ok := g.DrawTop()
	if !ok {
		return Card{}, false
	}
	g.DiscardPile = append(g.DiscardPile, c)
	return c, true
}

func (g *Game) recycleDiscard() {
	if len(g.DiscardPile) == 0 {
		return
	}
	g.DrawPile = g.DiscardPile
	g.DiscardPile = nil
	g.rng.Shuffle(len(g.DrawPile), func(i, j int) {
		g.DrawPile[i], g.DrawPile[j] = g.DrawPile[j], g.DrawPile[i]
	})
	g.logger.Debug("recycled discard pile", zap.Int("cards", len(g.DrawPile)))
}
