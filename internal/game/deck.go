package game

import (
	"fmt"
	"math/rand"
)

type deckEntry struct {
	name  string
	typ   CardType
	slot  EquipSlot
	suit  Suit
	rank  int
	count int
}

// baseDeck is a reduced standard deck: the three basic cards carry the bulk,
// plus one copy of each equipment card.
var baseDeck = []deckEntry{
	{CardSlash, CardTypeBasic, EquipSlotNone, SuitSpade, 7, 15},
	{CardSlash, CardTypeBasic, EquipSlotNone, SuitHeart, 10, 5},
	{CardSlash, CardTypeBasic, EquipSlotNone, SuitDiamond, 6, 5},
	{CardDodge, CardTypeBasic, EquipSlotNone, SuitDiamond, 2, 15},
	{CardPeach, CardTypeBasic, EquipSlotNone, SuitHeart, 3, 8},

	{CardZhugeCrossbow, CardTypeEquipment, EquipSlotWeapon, SuitClub, 1, 1},
	{CardQinggangSword, CardTypeEquipment, EquipSlotWeapon, SuitSpade, 6, 1},
	{CardKirinBow, CardTypeEquipment, EquipSlotWeapon, SuitHeart, 5, 1},
	{CardEightTrigrams, CardTypeEquipment, EquipSlotArmor, SuitSpade, 2, 1},
	{CardDefensiveHorse, CardTypeEquipment, EquipSlotDefensiveHorse, SuitHeart, 13, 1},
	{CardOffensiveHorse, CardTypeEquipment, EquipSlotOffensiveHorse, SuitSpade, 5, 1},
}

// BuildDeck constructs the full card list and shuffles it with the provided
// RNG. Card IDs are positional, not random, so that a fixed seed yields a
// bit-identical deck.
func BuildDeck(rng *rand.Rand) []Card {
	var deck []Card
	serial := 0
	for _, e := range baseDeck {
		for i := 0; i < e.count; i++ {
			deck = append(deck, Card{
				ID:   fmt.Sprintf("card-%03d-%s", serial, e.name),
				Name: e.name,
				Suit: e.suit,
				Rank: e.rank,
				Type: e.typ,
				Slot: e.slot,
			})
			serial++
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
