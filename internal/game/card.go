package game

import "fmt"

// Suit represents the suit printed on a card.
type Suit int

const (
	SuitSpade Suit = iota
	SuitHeart
	SuitClub
	SuitDiamond
)

var suitNames = map[Suit]string{
	SuitSpade:   "SPADE",
	SuitHeart:   "HEART",
	SuitClub:    "CLUB",
	SuitDiamond: "DIAMOND",
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SUIT_%d", int(s))
}

// IsRed returns true for hearts and diamonds.
func (s Suit) IsRed() bool {
	return s == SuitHeart || s == SuitDiamond
}

// CardType is the broad category of a card.
type CardType int

const (
	CardTypeBasic CardType = iota
	CardTypeTrick
	CardTypeEquipment
)

var cardTypeNames = map[CardType]string{
	CardTypeBasic:     "BASIC",
	CardTypeTrick:     "TRICK",
	CardTypeEquipment: "EQUIPMENT",
}

func (ct CardType) String() string {
	if name, ok := cardTypeNames[ct]; ok {
		return name
	}
	return fmt.Sprintf("CARD_TYPE_%d", int(ct))
}

// EquipSlot identifies the equipment area slot a card occupies.
type EquipSlot int

const (
	EquipSlotNone EquipSlot = iota
	EquipSlotWeapon
	EquipSlotArmor
	EquipSlotDefensiveHorse
	EquipSlotOffensiveHorse
)

// Card names used by the base deck.
const (
	CardSlash = "Slash"
	CardDodge = "Dodge"
	CardPeach = "Peach"

	CardZhugeCrossbow  = "ZhugeCrossbow"
	CardQinggangSword  = "QinggangSword"
	CardKirinBow       = "KirinBow"
	CardEightTrigrams  = "EightTrigrams"
	CardDefensiveHorse = "DefensiveHorse"
	CardOffensiveHorse = "OffensiveHorse"
)

// Card is a single physical card. Cards are identified by ID; two copies of
// the same name are distinct cards.
type Card struct {
	ID   string
	Name string
	Suit Suit
	Rank int
	Type CardType
	Slot EquipSlot
}

func (c Card) String() string {
	return fmt.Sprintf("%s[%s %d]", c.Name, c.Suit, c.Rank)
}
