// Package models defines the data types shared by the Carioca engine,
// the bot decision layer, and the persistence stores. Serialization of
// these types is purely a store concern; the engine only ever sees the
// typed collections below.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a game session.
type Status string

const (
	StatusWaiting    Status = "WAITING"
	StatusPlaying    Status = "PLAYING"
	StatusRoundEnded Status = "ROUND_ENDED"
	StatusFinished   Status = "FINISHED"
)

// Difficulty selects a bot's decision tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ActionType enumerates every move the engine accepts.
type ActionType string

const (
	ActionDrawDeck          ActionType = "DRAW_DECK"
	ActionDrawDiscard       ActionType = "DRAW_DISCARD"
	ActionDiscard           ActionType = "DISCARD"
	ActionDown              ActionType = "DOWN"
	ActionAddToMeld         ActionType = "ADD_TO_MELD"
	ActionStealJoker        ActionType = "STEAL_JOKER"
	ActionIntendBuy         ActionType = "INTEND_BUY"
	ActionReadyForNextRound ActionType = "READY_FOR_NEXT_ROUND"
	ActionStartNextRound    ActionType = "START_NEXT_ROUND"
)

// Player holds one seat's full state. Hand is owned exclusively by the
// player; Melds are the table-visible groups laid down this round.
// BoughtCards mirrors the cards acquired this turn for client highlighting
// and is always a subset of Hand.
type Player struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Hand          []Card     `json:"hand"`
	Melds         [][]Card   `json:"melds"`
	BoughtCards   []Card     `json:"boughtCards"`
	Score         int        `json:"score"`
	RoundScores   []int      `json:"roundScores"`
	RoundBuys     []int      `json:"roundBuys"`
	BuysUsed      int        `json:"buysUsed"`
	BuysThisRound int        `json:"buysThisRound"`
	HasDrawn      bool       `json:"hasDrawn"`
	IsBot         bool       `json:"isBot"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
}

// HasMelds reports whether the player has fulfilled the round contract.
func (p *Player) HasMelds() bool { return len(p.Melds) > 0 }

// BuyIntent records a player's wish to buy the top discard, timestamped
// for the priority window.
type BuyIntent struct {
	PlayerID  uuid.UUID `json:"playerId"`
	Timestamp time.Time `json:"timestamp"`
}

// GameSession is the full authoritative state of one Carioca game.
// Turn order is fixed by player position; CurrentTurn always indexes a
// valid player.
type GameSession struct {
	ID                uuid.UUID   `json:"id"`
	Players           []*Player   `json:"players"`
	Deck              []Card      `json:"deck"`
	DiscardPile       []Card      `json:"discardPile"`
	CurrentTurn       int         `json:"currentTurn"`
	CurrentRound      int         `json:"currentRound"`
	Status            Status      `json:"status"`
	CreatorID         uuid.UUID   `json:"creatorId"`
	ReadyForNextRound []uuid.UUID `json:"readyForNextRound"`
	ReshuffleCount    int         `json:"reshuffleCount"`
	PendingBuyIntents []BuyIntent `json:"pendingBuyIntents"`
	LastAction        string      `json:"lastAction"`
}

// PlayerByID returns the player with the given id and its seat index,
// or nil and -1 when absent.
func (s *GameSession) PlayerByID(id uuid.UUID) (*Player, int) {
	for i, p := range s.Players {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

// TurnPlayer returns the player whose turn it currently is.
func (s *GameSession) TurnPlayer() *Player {
	if s.CurrentTurn < 0 || s.CurrentTurn >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentTurn]
}

// TopDiscard returns the top card of the discard pile.
func (s *GameSession) TopDiscard() (Card, bool) {
	if len(s.DiscardPile) == 0 {
		return Card{}, false
	}
	return s.DiscardPile[len(s.DiscardPile)-1], true
}

// IsReady reports whether the player already marked themselves ready.
func (s *GameSession) IsReady(playerID uuid.UUID) bool {
	for _, id := range s.ReadyForNextRound {
		if id == playerID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session. Stores hand copies to the
// engine and the engine mutates them freely, so the two sides must never
// share backing arrays.
func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		cp.Hand = append([]Card(nil), p.Hand...)
		cp.BoughtCards = append([]Card(nil), p.BoughtCards...)
		cp.Melds = make([][]Card, len(p.Melds))
		for j, m := range p.Melds {
			cp.Melds[j] = append([]Card(nil), m...)
		}
		cp.RoundScores = append([]int(nil), p.RoundScores...)
		cp.RoundBuys = append([]int(nil), p.RoundBuys...)
		out.Players[i] = &cp
	}
	out.Deck = append([]Card(nil), s.Deck...)
	out.DiscardPile = append([]Card(nil), s.DiscardPile...)
	out.ReadyForNextRound = append([]uuid.UUID(nil), s.ReadyForNextRound...)
	out.PendingBuyIntents = append([]BuyIntent(nil), s.PendingBuyIntents...)
	return &out
}
