package engine

import (
	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// handleDrawDeck draws the turn player's card from the deck.
func (e *Engine) handleDrawDeck(sess *models.GameSession, player *models.Player, seat int) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	if seat != sess.CurrentTurn {
		return models.Fail(models.StatusTurnViolation, "no es tu turno")
	}
	if player.HasDrawn {
		return models.Fail(models.StatusPrecondition, "ya robaste una carta este turno")
	}

	card, ok := e.drawOne(sess)
	if !ok {
		// Deck exhausted beyond the reshuffle allowance: the round ends
		// with every standing hand scored and no winner.
		e.finalizeRound(sess, nil)
		return models.OK(sess.Status, map[string]interface{}{
			"roundEnded": true,
			"reason":     "deck_exhausted",
		})
	}

	player.Hand = append(player.Hand, card)
	player.BoughtCards = append(player.BoughtCards, card)
	player.HasDrawn = true
	// The buy window closes the moment the turn player draws.
	sess.PendingBuyIntents = nil

	return models.OK(sess.Status, map[string]interface{}{"card": card})
}

// handleDrawDiscard executes a buy: the caller takes the top discard
// plus two deck cards. For the turn player this is simply their draw;
// anyone else consumes one of their seven lifetime buys, subject to the
// intent priority window.
func (e *Engine) handleDrawDiscard(sess *models.GameSession, player *models.Player, seat int) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	turnPlayer := sess.TurnPlayer()
	if turnPlayer == nil {
		return models.Fail(models.StatusInternal, "operación fallida")
	}
	if turnPlayer.HasDrawn {
		return models.Fail(models.StatusPrecondition, "la ventana de compra está cerrada")
	}
	top, ok := sess.TopDiscard()
	if !ok {
		return models.Fail(models.StatusPrecondition, "no hay cartas en el pozo")
	}
	isTurn := seat == sess.CurrentTurn
	if !isTurn && player.BuysUsed >= MaxBuys {
		return models.Fail(models.StatusPrecondition, "ya usaste todas tus compras")
	}

	// The turn player sits at distance zero and outranks every queued
	// intent, so only off-turn buyers go through arbitration.
	if !isTurn {
		seats := make(map[uuid.UUID]int, len(sess.Players))
		for i, p := range sess.Players {
			seats[p.ID] = i
		}
		if winner, contested := ResolveBuyPriority(sess.PendingBuyIntents, seats, sess.CurrentTurn, len(sess.Players), e.now(), e.buyWindow); contested && winner != player.ID {
			return models.Fail(models.StatusPrecondition, "otro jugador tiene prioridad de compra")
		}
	}

	sess.DiscardPile = sess.DiscardPile[:len(sess.DiscardPile)-1]
	acquired := []models.Card{top}
	for i := 0; i < 2; i++ {
		card, ok := e.drawOne(sess)
		if !ok {
			// Mid-buy exhaustion: hand over what was taken so far, then
			// close the round like any other dead deck.
			player.Hand = append(player.Hand, acquired...)
			e.finalizeRound(sess, nil)
			return models.OK(sess.Status, map[string]interface{}{
				"roundEnded": true,
				"reason":     "deck_exhausted",
			})
		}
		acquired = append(acquired, card)
	}

	player.Hand = append(player.Hand, acquired...)
	player.BoughtCards = append(player.BoughtCards, acquired...)
	if isTurn {
		player.HasDrawn = true
	} else {
		player.BuysUsed++
		player.BuysThisRound++
	}
	sess.PendingBuyIntents = nil

	return models.OK(sess.Status, map[string]interface{}{
		"cards": acquired,
		"buy":   !isTurn,
	})
}

// handleDiscard moves one named card from hand to the discard pile and
// closes the turn, or the round when the hand empties.
func (e *Engine) handleDiscard(sess *models.GameSession, player *models.Player, seat int, payload models.MovePayload) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	if seat != sess.CurrentTurn {
		return models.Fail(models.StatusTurnViolation, "no es tu turno")
	}
	if !player.HasDrawn {
		return models.Fail(models.StatusPrecondition, "debes robar una carta antes de descartar")
	}
	card, found := models.CardByID(player.Hand, payload.CardID)
	if !found {
		return models.Fail(models.StatusNotFound, "la carta no está en tu mano")
	}

	player.Hand, _ = models.RemoveCardByID(player.Hand, card.ID)
	sess.DiscardPile = append(sess.DiscardPile, card)
	player.BoughtCards = nil

	if len(player.Hand) == 0 {
		e.finalizeRound(sess, player)
		return models.OK(sess.Status, map[string]interface{}{
			"card":   card,
			"winner": player.ID,
		})
	}

	player.HasDrawn = false
	sess.CurrentTurn = nextSeat(sess.CurrentTurn, len(sess.Players))
	sess.Players[sess.CurrentTurn].HasDrawn = false
	e.pruneExpiredIntents(sess)

	return models.OK(sess.Status, map[string]interface{}{
		"card":     card,
		"nextTurn": sess.Players[sess.CurrentTurn].ID,
	})
}

// nextSeat advances the turn counter-clockwise (decreasing index).
func nextSeat(current, playerCount int) int {
	return (current - 1 + playerCount) % playerCount
}

// pruneExpiredIntents drops buy intents older than the priority window.
func (e *Engine) pruneExpiredIntents(sess *models.GameSession) {
	if len(sess.PendingBuyIntents) == 0 {
		return
	}
	cutoff := e.now().Add(-e.buyWindow)
	kept := sess.PendingBuyIntents[:0]
	for _, intent := range sess.PendingBuyIntents {
		if intent.Timestamp.After(cutoff) {
			kept = append(kept, intent)
		}
	}
	sess.PendingBuyIntents = kept
}
