package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// buildDeck assembles the full Carioca card set: two standard 52-card
// decks plus four jokers, every card with a fresh identity.
func buildDeck() []models.Card {
	deck := make([]models.Card, 0, NumDecks*52+NumDecks*JokersPerDeck)
	for d := 0; d < NumDecks; d++ {
		for _, suit := range models.NaturalSuits {
			for value := 1; value <= 13; value++ {
				deck = append(deck, models.NewCard(suit, value))
			}
		}
		for j := 0; j < JokersPerDeck; j++ {
			deck = append(deck, models.NewJoker())
		}
	}
	return deck
}

// dealRound hands a fresh shuffled deck out for a round: eleven cards
// per player and the first discard flipped.
func (e *Engine) dealRound(sess *models.GameSession) {
	deck := buildDeck()
	e.shuffle(deck)

	for _, p := range sess.Players {
		p.Hand = append([]models.Card(nil), deck[:CardsPerPlayer]...)
		deck = deck[CardsPerPlayer:]
		p.Melds = nil
		p.BoughtCards = nil
		p.HasDrawn = false
		p.BuysThisRound = 0
	}

	sess.DiscardPile = []models.Card{deck[0]}
	sess.Deck = deck[1:]
	sess.ReshuffleCount = 0
	sess.PendingBuyIntents = nil
	sess.ReadyForNextRound = nil
}

// drawOne pops the top card of the deck, recycling the discard pile
// when the deck runs out. The second return value is false when the
// deck cannot supply a card within the round's reshuffle allowance,
// which ends the round.
func (e *Engine) drawOne(sess *models.GameSession) (models.Card, bool) {
	if len(sess.Deck) == 0 && !e.reshuffleDiscard(sess) {
		return models.Card{}, false
	}
	card := sess.Deck[len(sess.Deck)-1]
	sess.Deck = sess.Deck[:len(sess.Deck)-1]
	return card, true
}

// reshuffleDiscard recycles every discard card except the top one back
// into the deck, consuming one of the round's three allowances.
func (e *Engine) reshuffleDiscard(sess *models.GameSession) bool {
	if sess.ReshuffleCount >= MaxReshuffles {
		return false
	}
	if len(sess.DiscardPile) <= 1 {
		return false
	}
	top := sess.DiscardPile[len(sess.DiscardPile)-1]
	recycled := append([]models.Card(nil), sess.DiscardPile[:len(sess.DiscardPile)-1]...)
	e.shuffle(recycled)

	sess.Deck = append(sess.Deck, recycled...)
	sess.DiscardPile = []models.Card{top}
	sess.ReshuffleCount++

	e.log.WithFields(logrus.Fields{
		"session":   sess.ID,
		"reshuffle": sess.ReshuffleCount,
	}).Debug("discard pile reshuffled into deck")
	return true
}
