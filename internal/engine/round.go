package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/rules"
)

// finalizeRound scores every standing hand (the winner, when there is
// one, scores zero), appends the per-round histories, and either opens
// the inter-round lobby or, after round 8, finishes the game with the
// buys adjustment applied.
func (e *Engine) finalizeRound(sess *models.GameSession, winner *models.Player) {
	for _, p := range sess.Players {
		points := models.HandPoints(p.Hand)
		if winner != nil && p.ID == winner.ID {
			points = 0
		}
		p.Score += points
		p.RoundScores = append(p.RoundScores, points)
		p.RoundBuys = append(p.RoundBuys, p.BuysThisRound)
		p.BuysThisRound = 0
		p.BoughtCards = nil
		p.HasDrawn = false
	}
	sess.PendingBuyIntents = nil

	if sess.CurrentRound >= rules.FinalRound {
		for _, p := range sess.Players {
			p.Score = e.buysPenalty(p.Score, p.BuysUsed)
		}
		sess.Status = models.StatusFinished
	} else {
		sess.Status = models.StatusRoundEnded
		e.autoReadyBots(sess)
	}

	fields := logrus.Fields{"session": sess.ID, "round": sess.CurrentRound, "status": sess.Status}
	if winner != nil {
		fields["winner"] = winner.Name
	}
	e.log.WithFields(fields).Info("round finalized")
}

// autoReadyBots marks every bot ready for the next round.
func (e *Engine) autoReadyBots(sess *models.GameSession) {
	for _, p := range sess.Players {
		if p.IsBot && !sess.IsReady(p.ID) {
			sess.ReadyForNextRound = append(sess.ReadyForNextRound, p.ID)
		}
	}
}

// handleReadyForNextRound records a player's readiness in the
// inter-round lobby. A repeat call is rejected.
func (e *Engine) handleReadyForNextRound(sess *models.GameSession, player *models.Player) models.MoveResult {
	if sess.Status != models.StatusRoundEnded {
		return models.Fail(models.StatusPrecondition, "la ronda aún no termina")
	}
	if sess.IsReady(player.ID) {
		return models.Fail(models.StatusPrecondition, "ya estás listo para la siguiente ronda")
	}
	sess.ReadyForNextRound = append(sess.ReadyForNextRound, player.ID)
	e.autoReadyBots(sess)
	return models.OK(sess.Status, map[string]interface{}{
		"ready": len(sess.ReadyForNextRound),
	})
}

// handleStartNextRound deals the next round. Host only, and every
// non-host player must have marked ready.
func (e *Engine) handleStartNextRound(sess *models.GameSession, player *models.Player) models.MoveResult {
	if sess.Status != models.StatusRoundEnded {
		return models.Fail(models.StatusPrecondition, "la ronda aún no termina")
	}
	if player.ID != sess.CreatorID {
		return models.Fail(models.StatusTurnViolation, "solo el anfitrión puede iniciar la siguiente ronda")
	}
	for _, p := range sess.Players {
		if p.ID != sess.CreatorID && !sess.IsReady(p.ID) {
			return models.Fail(models.StatusPrecondition, "aún hay jugadores que no están listos")
		}
	}

	prevRound := sess.CurrentRound
	sess.CurrentRound++
	e.dealRound(sess)
	n := len(sess.Players)
	sess.CurrentTurn = (n - (prevRound % n)) % n
	sess.Status = models.StatusPlaying

	return models.OK(sess.Status, map[string]interface{}{
		"round":   sess.CurrentRound,
		"starter": sess.Players[sess.CurrentTurn].ID,
	})
}
