package game

// Player is the mutable per-seat record. Resolvers mutate health, the alive
// flag and zone membership directly; there is no transactional rollback.
type Player struct {
	Seat      int
	Hero      string
	Health    int
	MaxHealth int
	Alive     bool
	Hand      []Card
	Equipment []Card
}

// HandCard looks up a hand card by ID.
func (p *Player) HandCard(cardID string) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveHandCard removes a card from the hand by ID and returns it.
func (p *Player) RemoveHandCard(cardID string) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// HandCardsNamed returns all hand cards with the given name.
func (p *Player) HandCardsNamed(name string) []Card {
	var out []Card
	for _, c := range p.Hand {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// EquippedInSlot returns the equipment card occupying the slot, if any.
func (p *Player) EquippedInSlot(slot EquipSlot) (Card, bool) {
	for _, c := range p.Equipment {
		if c.Slot == slot {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveEquipment removes an equipment card by ID and returns it.
func (p *Player) RemoveEquipment(cardID string) (Card, bool) {
	for i, c := range p.Equipment {
		if c.ID == cardID {
			p.Equipment = append(p.Equipment[:i], p.Equipment[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}
