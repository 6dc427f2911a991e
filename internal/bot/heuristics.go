package bot

import (
	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// valueDistance is the circular distance between two card values on
// the 13-value wheel.
func valueDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if 13-d < d {
		d = 13 - d
	}
	return d
}

// isPartOfPotentialGroup reports whether card still has company in
// hand: a wildcard, a same-value card of another suit, or a same-suit
// neighbor within run distance.
func isPartOfPotentialGroup(card models.Card, hand []models.Card) bool {
	if card.IsWildcard() {
		return true
	}
	for _, c := range hand {
		if c.ID == card.ID || c.IsWildcard() {
			continue
		}
		if c.Value == card.Value && c.Suit != card.Suit {
			return true
		}
		if c.Suit == card.Suit && valueDistance(c.Value, card.Value) <= 2 {
			return true
		}
	}
	return false
}

// isCardUseful reports whether acquiring card would improve hand:
// wildcards always, otherwise whenever the card pairs into a potential
// group or adds a new suit to a value already held.
func isCardUseful(card models.Card, hand []models.Card) bool {
	if card.IsWildcard() {
		return true
	}
	return isPartOfPotentialGroup(card, hand)
}

// countMatchingValue counts the naturals in hand sharing card's value.
func countMatchingValue(card models.Card, hand []models.Card) int {
	n := 0
	for _, c := range hand {
		if !c.IsWildcard() && c.Value == card.Value {
			n++
		}
	}
	return n
}

// isExcellentDiscard is the bar an easy bot needs before buying: a
// joker, or a card completing at least a pair already in hand.
func isExcellentDiscard(card models.Card, hand []models.Card) bool {
	return card.IsWildcard() || countMatchingValue(card, hand) >= 2
}

// handIsWeak reports whether fewer than half the hand's cards belong
// to a potential group.
func handIsWeak(hand []models.Card) bool {
	if len(hand) == 0 {
		return false
	}
	connected := 0
	for _, c := range hand {
		if isPartOfPotentialGroup(c, hand) {
			connected++
		}
	}
	return connected*2 < len(hand)
}

// scoreLeader returns the opponent with the lowest cumulative score,
// the one closest to winning the game.
func scoreLeader(sess *models.GameSession, excludeID uuid.UUID) *models.Player {
	var leader *models.Player
	for _, p := range sess.Players {
		if p.ID == excludeID {
			continue
		}
		if leader == nil || p.Score < leader.Score {
			leader = p
		}
	}
	return leader
}

// closeCompetitors returns the opponents within ten points of the
// leader, leader included.
func closeCompetitors(sess *models.GameSession, excludeID uuid.UUID) []*models.Player {
	leader := scoreLeader(sess, excludeID)
	if leader == nil {
		return nil
	}
	var out []*models.Player
	for _, p := range sess.Players {
		if p.ID == excludeID {
			continue
		}
		if p.Score-leader.Score <= 10 {
			out = append(out, p)
		}
	}
	return out
}

// opponentUsefulness counts matching values for card across every
// opponent's hand; discarding a low-usefulness card feeds nobody.
func opponentUsefulness(card models.Card, sess *models.GameSession, excludeID uuid.UUID) int {
	n := 0
	for _, p := range sess.Players {
		if p.ID == excludeID {
			continue
		}
		n += countMatchingValue(card, p.Hand)
	}
	return n
}
