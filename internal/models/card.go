package models

import "github.com/google/uuid"

// Suit identifies a card suit. JOKER is its own suit.
type Suit string

const (
	SuitHeart   Suit = "HEART"
	SuitDiamond Suit = "DIAMOND"
	SuitClub    Suit = "CLUB"
	SuitSpade   Suit = "SPADE"
	SuitJoker   Suit = "JOKER"
)

// NaturalSuits lists the four non-joker suits in deck order.
var NaturalSuits = [4]Suit{SuitHeart, SuitDiamond, SuitClub, SuitSpade}

// Card is immutable once created. ID is unique within a session's full
// card set: value 1 is the Ace, 11-13 are J/Q/K, value 0 marks a joker.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Suit  Suit      `json:"suit"`
	Value int       `json:"value"`
}

// IsWildcard reports whether the card acts as a joker.
func (c Card) IsWildcard() bool {
	return c.Value == 0 || c.Suit == SuitJoker
}

// Points returns the penalty value of the card when left in hand at
// round end: jokers 20, aces 15, face cards 10, everything else its pip value.
func (c Card) Points() int {
	switch {
	case c.IsWildcard():
		return 20
	case c.Value == 1:
		return 15
	case c.Value >= 11:
		return 10
	default:
		return c.Value
	}
}

// NewJoker creates a joker card with a fresh identity.
func NewJoker() Card {
	return Card{ID: uuid.New(), Suit: SuitJoker, Value: 0}
}

// NewCard creates a natural card with a fresh identity.
func NewCard(suit Suit, value int) Card {
	return Card{ID: uuid.New(), Suit: suit, Value: value}
}

// HandPoints sums the penalty points of every card in a hand.
func HandPoints(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Points()
	}
	return total
}

// CardByID returns the card with the given id from cards, if present.
func CardByID(cards []Card, id uuid.UUID) (Card, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCardByID returns cards without the card carrying id. The second
// return value is false when the id was not present.
func RemoveCardByID(cards []Card, id uuid.UUID) ([]Card, bool) {
	for i, c := range cards {
		if c.ID == id {
			out := make([]Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			out = append(out, cards[i+1:]...)
			return out, true
		}
	}
	return cards, false
}
