// Package rules implements the Carioca meld and contract validators as
// pure functions over card slices. Nothing here mutates its inputs or
// touches session state; the engine and the bots both call into it.
package rules

import (
	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// MinMeldSize is the smallest group that can ever be laid on the table.
const MinMeldSize = 3

// MaxEscalaSize is bounded by the thirteen values of a suit.
const MaxEscalaSize = 13

// splitNaturals partitions a group into natural cards and jokers.
func splitNaturals(cards []models.Card) (naturals, jokers []models.Card) {
	for _, c := range cards {
		if c.IsWildcard() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}

// IsTrio reports whether cards form a valid trio of at least minLen:
// every natural card shares one value, no two naturals repeat a suit,
// and jokers never outnumber naturals.
func IsTrio(cards []models.Card, minLen int) bool {
	if len(cards) < minLen || len(cards) < MinMeldSize {
		return false
	}
	naturals, jokers := splitNaturals(cards)
	if len(jokers) > len(naturals) {
		return false
	}
	seenSuits := map[models.Suit]bool{}
	value := -1
	for _, c := range naturals {
		if value == -1 {
			value = c.Value
		} else if c.Value != value {
			return false
		}
		if seenSuits[c.Suit] {
			return false
		}
		seenSuits[c.Suit] = true
	}
	return true
}

// IsEscala reports whether cards form a valid escala of at least minLen:
// same-suit naturals with no repeated values arranged in a circular run
// (wrapping past King back to Ace), with jokers filling the gaps. The
// minimal enclosing span of the natural values, once joker-filled, must
// fit within the total card count, and jokers never outnumber naturals.
func IsEscala(cards []models.Card, minLen int) bool {
	if len(cards) < minLen || len(cards) < MinMeldSize || len(cards) > MaxEscalaSize {
		return false
	}
	naturals, jokers := splitNaturals(cards)
	if len(jokers) > len(naturals) || len(naturals) == 0 {
		return false
	}
	suit := naturals[0].Suit
	seen := map[int]bool{}
	for _, c := range naturals {
		if c.Suit != suit {
			return false
		}
		if seen[c.Value] {
			return false
		}
		seen[c.Value] = true
	}
	return circularSpan(seen) <= len(cards)
}

// circularSpan returns the length of the smallest circular arc of the
// 13 values (Ace..King, wrapping King->Ace) that contains every value
// in the set. With one value the span is 1; the arc excludes the
// largest circular gap between consecutive values.
func circularSpan(values map[int]bool) int {
	present := make([]int, 0, len(values))
	for v := 1; v <= 13; v++ {
		if values[v] {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0
	}
	maxGap := 0
	for i := range present {
		next := present[(i+1)%len(present)]
		gap := next - present[i]
		if gap <= 0 {
			gap += 13
		}
		if gap > maxGap {
			maxGap = gap
		}
	}
	return 13 - maxGap + 1
}

// IsValidMeld reports whether cards form any valid meld of at least
// MinMeldSize cards.
func IsValidMeld(cards []models.Card) bool {
	return IsTrio(cards, MinMeldSize) || IsEscala(cards, MinMeldSize)
}

// CanAddToMeld reports whether appending card keeps meld a valid trio
// or escala.
func CanAddToMeld(card models.Card, meld []models.Card) bool {
	extended := make([]models.Card, 0, len(meld)+1)
	extended = append(extended, meld...)
	extended = append(extended, card)
	return IsTrio(extended, MinMeldSize) || IsEscala(extended, MinMeldSize)
}

// IsTrioShaped classifies a laid meld: true when its naturals agree on
// a single value. Laid melds always contain at least two naturals, so
// the classification is unambiguous (an escala never repeats a value,
// a trio never repeats a suit).
func IsTrioShaped(meld []models.Card) bool {
	naturals, _ := splitNaturals(meld)
	if len(naturals) == 0 {
		return false
	}
	for _, c := range naturals[1:] {
		if c.Value != naturals[0].Value {
			return false
		}
	}
	return true
}

// TrioValue returns the shared value of a trio-shaped meld's naturals.
func TrioValue(meld []models.Card) int {
	naturals, _ := splitNaturals(meld)
	if len(naturals) == 0 {
		return 0
	}
	return naturals[0].Value
}

// MeldJokerCount returns how many wildcards the meld holds.
func MeldJokerCount(meld []models.Card) int {
	_, jokers := splitNaturals(meld)
	return len(jokers)
}

// CanStealJoker reports whether the stealer holding hand may swap card
// into meld to free a joker. Trio-shaped melds demand a 2-for-1 trade:
// at least two naturals already in the meld, card matching the meld's
// value, and a second card of that value in hand whose suit keeps the
// absorbed meld a valid trio. Escala-shaped melds accept a 1-for-1
// swap when card fits one joker's position.
func CanStealJoker(card models.Card, meld []models.Card, hand []models.Card) bool {
	if MeldJokerCount(meld) == 0 || card.IsWildcard() {
		return false
	}
	if IsTrioShaped(meld) {
		naturals, _ := splitNaturals(meld)
		if len(naturals) < 2 || card.Value != naturals[0].Value {
			return false
		}
		_, ok := StealTradeCard(card, meld, hand)
		return ok
	}
	// Escala: substituting card for one joker must preserve the run at
	// its original length.
	return IsEscala(withoutOneJoker(meld, card), len(meld))
}

// withoutOneJoker returns meld with one joker removed and the given
// cards absorbed in its place.
func withoutOneJoker(meld []models.Card, absorbed ...models.Card) []models.Card {
	swapped := make([]models.Card, 0, len(meld)+len(absorbed))
	removedJoker := false
	for _, c := range meld {
		if !removedJoker && c.IsWildcard() {
			removedJoker = true
			continue
		}
		swapped = append(swapped, c)
	}
	return append(swapped, absorbed...)
}

// StealTradeCard finds the second same-value natural in hand that a
// trio steal consumes alongside card. With two decks a matching value
// may still duplicate a suit already on the table, so only a trade
// leaving the absorbed meld a valid trio qualifies. Returns false when
// none exists.
func StealTradeCard(card models.Card, meld, hand []models.Card) (models.Card, bool) {
	for _, c := range hand {
		if c.ID == card.ID || c.IsWildcard() || c.Value != card.Value {
			continue
		}
		if IsTrio(withoutOneJoker(meld, card, c), MinMeldSize) {
			return c, true
		}
	}
	return models.Card{}, false
}
