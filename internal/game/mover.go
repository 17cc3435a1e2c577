package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrCardNotFound is returned when a zone transfer names a card the player
// does not hold.
var ErrCardNotFound = errors.New("card not found")

// Mover performs all zone transfers. Resolvers never splice zones directly;
// they go through a Mover so every movement is logged in one place.
type Mover struct {
	logger *zap.Logger
}

// NewMover creates a card mover.
func NewMover(logger *zap.Logger) *Mover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mover{logger: logger}
}

// Draw moves up to n cards from the draw pile into the player's hand and
// returns them. Fewer cards are drawn if both piles run dry.
func (m *Mover) Draw(g *Game, p *Player, n int) []Card {
	var drawn []Card
	for i := 0; i < n; i++ {
		c, ok := g.DrawTop()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, c)
		drawn = append(drawn, c)
	}
	m.logger.Debug("cards drawn",
		zap.Int("seat", p.Seat),
		zap.Int("requested", n),
		zap.Int("drawn", len(drawn)),
	)
	return drawn
}

// DiscardFromHand moves the named cards from the player's hand to the discard
// pile. Fails without partial effect if any card is missing.
func (m *Mover) DiscardFromHand(g *Game, p *Player, cardIDs []string) error {
	for _, id := range cardIDs {
		if _, ok := p.HandCard(id); !ok {
			return fmt.Errorf("%w: %s in hand of seat %d", ErrCardNotFound, id, p.Seat)
		}
	}
	for _, id := range cardIDs {
		c, _ := p.RemoveHandCard(id)
		g.DiscardPile = append(g.DiscardPile, c)
	}
	m.logger.Debug("cards discarded",
		zap.Int("seat", p.Seat),
		zap.Int("count", len(cardIDs)),
	)
	return nil
}

// Equip moves an equipment card from the hand into the equipment area,
// discarding any card already occupying the same slot. Returns the replaced
// card, if there was one.
func (m *Mover) Equip(g *Game, p *Player, cardID string) (*Card, error) {
	c, ok := p.HandCard(cardID)
	if !ok {
		return nil, fmt.Errorf("%w: %s in hand of seat %d", ErrCardNotFound, cardID, p.Seat)
	}
	if c.Type != CardTypeEquipment {
		return nil, fmt.Errorf("card %s is not equipment", c.Name)
	}
	var replaced *Card
	if prev, ok := p.EquippedInSlot(c.Slot); ok {
		p.RemoveEquipment(prev.ID)
		g.DiscardPile = append(g.DiscardPile, prev)
		replaced = &prev
	}
	p.RemoveHandCard(cardID)
	p.Equipment = append(p.Equipment, c)
	m.logger.Debug("card equipped",
		zap.Int("seat", p.Seat),
		zap.String("card", c.Name),
		zap.Bool("replaced", replaced != nil),
	)
	return replaced, nil
}
