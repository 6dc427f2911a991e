package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// ResolveBuyPriority arbitrates the registered buy intents. Intents
// older than window are ignored; each surviving intent is ranked by its
// seat's counter-clockwise distance from the current turn (distance 0
// is the turn player), ties broken by registration time. The second
// return value is false when no live intent exists, in which case any
// caller may buy.
func ResolveBuyPriority(intents []models.BuyIntent, seats map[uuid.UUID]int, currentTurn, playerCount int, now time.Time, window time.Duration) (uuid.UUID, bool) {
	cutoff := now.Add(-window)
	bestDistance := playerCount
	var bestTime time.Time
	var winner uuid.UUID
	found := false

	for _, intent := range intents {
		if !intent.Timestamp.After(cutoff) {
			continue
		}
		seat, ok := seats[intent.PlayerID]
		if !ok {
			continue
		}
		distance := (currentTurn - seat + playerCount) % playerCount
		if !found || distance < bestDistance || (distance == bestDistance && intent.Timestamp.Before(bestTime)) {
			found = true
			bestDistance = distance
			bestTime = intent.Timestamp
			winner = intent.PlayerID
		}
	}
	return winner, found
}

// handleIntendBuy registers the caller's wish to buy the top discard.
// Repeat registrations are absorbed; the first timestamp stands.
func (e *Engine) handleIntendBuy(sess *models.GameSession, player *models.Player, seat int) models.MoveResult {
	if sess.Status != models.StatusPlaying {
		return models.Fail(models.StatusPrecondition, "la partida no está en juego")
	}
	turnPlayer := sess.TurnPlayer()
	if turnPlayer != nil && turnPlayer.HasDrawn {
		return models.Fail(models.StatusPrecondition, "la ventana de compra está cerrada")
	}
	if seat != sess.CurrentTurn && player.BuysUsed >= MaxBuys {
		return models.Fail(models.StatusPrecondition, "ya usaste todas tus compras")
	}
	if _, ok := sess.TopDiscard(); !ok {
		return models.Fail(models.StatusPrecondition, "no hay cartas en el pozo")
	}

	for _, intent := range sess.PendingBuyIntents {
		if intent.PlayerID == player.ID {
			return models.OK(sess.Status, map[string]interface{}{"registered": true})
		}
	}
	sess.PendingBuyIntents = append(sess.PendingBuyIntents, models.BuyIntent{
		PlayerID:  player.ID,
		Timestamp: e.now(),
	})
	return models.OK(sess.Status, map[string]interface{}{"registered": true})
}
