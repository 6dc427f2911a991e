package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
	"github.com/paulo1403/carioca-game-web-sub000/internal/rules"
)

// PlayerView is one seat as seen by a specific observer. Hand and
// BoughtCards are populated only for the observer's own seat; everyone
// else is reduced to a count. Melds are table-visible for all.
type PlayerView struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	HandCount     int             `json:"handCount"`
	Hand          []models.Card   `json:"hand,omitempty"`
	BoughtCards   []models.Card   `json:"boughtCards,omitempty"`
	Melds         [][]models.Card `json:"melds"`
	Score         int             `json:"score"`
	RoundScores   []int           `json:"roundScores"`
	RoundBuys     []int           `json:"roundBuys"`
	BuysUsed      int             `json:"buysUsed"`
	BuysRemaining int             `json:"buysRemaining"`
	HasDrawn      bool            `json:"hasDrawn"`
	IsBot         bool            `json:"isBot"`
	IsCurrentTurn bool            `json:"isCurrentTurn"`
	IsReady       bool            `json:"isReady"`
}

// GameView is the client-facing projection of a session, obfuscated
// for one observer. The realtime transport that pushes it is the
// caller's concern.
type GameView struct {
	SessionID       uuid.UUID     `json:"sessionId"`
	Status          models.Status `json:"status"`
	Round           int           `json:"round"`
	Contract        string        `json:"contract"`
	CreatorID       uuid.UUID     `json:"creatorId"`
	CurrentPlayerID uuid.UUID     `json:"currentPlayerId"`
	DeckCount       int           `json:"deckCount"`
	DiscardCount    int           `json:"discardCount"`
	DiscardTop      *models.Card  `json:"discardTop,omitempty"`
	ReshuffleCount  int           `json:"reshuffleCount"`
	Players         []PlayerView  `json:"players"`
	LastAction      string        `json:"lastAction,omitempty"`
}

// GetGameState builds the observer-specific projection of a session.
func (e *Engine) GetGameState(ctx context.Context, sessionID, forPlayer uuid.UUID) (*GameView, error) {
	sess, err := e.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("partida no encontrada")
	}

	view := &GameView{
		SessionID:      sess.ID,
		Status:         sess.Status,
		Round:          sess.CurrentRound,
		CreatorID:      sess.CreatorID,
		DeckCount:      len(sess.Deck),
		DiscardCount:   len(sess.DiscardPile),
		ReshuffleCount: sess.ReshuffleCount,
		LastAction:     sess.LastAction,
	}
	if req, err := rules.ContractForRound(sess.CurrentRound); err == nil {
		view.Contract = req.Describe()
	}
	if top, ok := sess.TopDiscard(); ok {
		card := top
		view.DiscardTop = &card
	}
	if sess.Status == models.StatusPlaying {
		if turn := sess.TurnPlayer(); turn != nil {
			view.CurrentPlayerID = turn.ID
		}
	}

	view.Players = make([]PlayerView, 0, len(sess.Players))
	for i, p := range sess.Players {
		pv := PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			HandCount:     len(p.Hand),
			Melds:         p.Melds,
			Score:         p.Score,
			RoundScores:   p.RoundScores,
			RoundBuys:     p.RoundBuys,
			BuysUsed:      p.BuysUsed,
			BuysRemaining: MaxBuys - p.BuysUsed,
			HasDrawn:      p.HasDrawn,
			IsBot:         p.IsBot,
			IsCurrentTurn: sess.Status == models.StatusPlaying && i == sess.CurrentTurn,
			IsReady:       sess.IsReady(p.ID),
		}
		if p.ID == forPlayer {
			pv.Hand = p.Hand
			pv.BoughtCards = p.BoughtCards
		}
		view.Players = append(view.Players, pv)
	}
	return view, nil
}
