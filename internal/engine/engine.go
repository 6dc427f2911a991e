// Package engine is the authoritative Carioca move processor. Each
// ProcessMove call is a pure function of the loaded session snapshot
// plus the action: the engine holds no game state of its own, only the
// collaborators it was built with and a per-session lock table that
// serializes concurrent moves against the same session.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

const (
	MinPlayers     = 3
	MaxPlayers     = 6
	CardsPerPlayer = 11
	MaxBuys        = 7
	MaxReshuffles  = 3
	NumDecks       = 2
	JokersPerDeck  = 2
)

// DefaultBuyIntentWindow is how long a registered buy intent stays
// eligible for priority arbitration.
const DefaultBuyIntentWindow = 10 * time.Second

// Repository is the session persistence collaborator. Load returns a
// snapshot the engine may mutate freely; Save must apply the whole
// snapshot atomically.
type Repository interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error)
	Save(ctx context.Context, session *models.GameSession) error
}

// Participant is one seat's final standing, handed to the history
// recorder when a game finishes.
type Participant struct {
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	IsBot    bool      `json:"isBot"`
}

// ActionRecord is the per-move audit entry handed to the history
// recorder.
type ActionRecord struct {
	SessionID uuid.UUID         `json:"sessionId"`
	PlayerID  uuid.UUID         `json:"playerId"`
	Action    models.ActionType `json:"action"`
	Round     int               `json:"round"`
	Timestamp int64             `json:"timestamp"`
}

// HistoryRecorder receives the per-move audit trail and, once per
// finished game, the final result.
type HistoryRecorder interface {
	RecordAction(ctx context.Context, rec ActionRecord) error
	RecordGameHistory(ctx context.Context, sessionID, winnerID uuid.UUID, participants []Participant) error
}

// BuysPenaltyFunc adjusts a player's final score from the buys they
// used across the whole game. Applied once, after round 8 resolves.
type BuysPenaltyFunc func(score, buysUsed int) int

// ApplyRemainingBuysPenalty is the standard adjustment: every unused
// buy discounts ten points from the final score.
func ApplyRemainingBuysPenalty(score, buysUsed int) int {
	remaining := MaxBuys - buysUsed
	if remaining < 0 {
		remaining = 0
	}
	return score - remaining*10
}

// Engine processes moves against persisted sessions.
type Engine struct {
	repo        Repository
	history     HistoryRecorder
	log         *logrus.Logger
	buysPenalty BuysPenaltyFunc
	buyWindow   time.Duration
	now         func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the default standard logger.
func WithLogger(log *logrus.Logger) Option { return func(e *Engine) { e.log = log } }

// WithBuysPenalty overrides the end-of-game buys adjustment.
func WithBuysPenalty(fn BuysPenaltyFunc) Option { return func(e *Engine) { e.buysPenalty = fn } }

// WithBuyIntentWindow overrides the buy-intent freshness window.
func WithBuyIntentWindow(d time.Duration) Option { return func(e *Engine) { e.buyWindow = d } }

// WithRandSource seeds the engine's shuffling, for deterministic tests.
func WithRandSource(src rand.Source) Option { return func(e *Engine) { e.rng = rand.New(src) } }

// WithClock overrides the engine's wall clock, for tests.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New builds an Engine around its persistence and history collaborators.
func New(repo Repository, history HistoryRecorder, opts ...Option) *Engine {
	e := &Engine{
		repo:        repo,
		history:     history,
		log:         logrus.StandardLogger(),
		buysPenalty: ApplyRemainingBuysPenalty,
		buyWindow:   DefaultBuyIntentWindow,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:       make(map[uuid.UUID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// sessionLock returns the mutex serializing moves for one session.
func (e *Engine) sessionLock(sessionID uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[sessionID] = lock
	}
	return lock
}

// shuffle permutes cards in place.
func (e *Engine) shuffle(cards []models.Card) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// ProcessMove applies one action to a session. Moves for the same
// session are applied strictly one at a time, in arrival order; no
// failure path writes to the repository.
func (e *Engine) ProcessMove(ctx context.Context, sessionID, playerID uuid.UUID, action models.ActionType, payload models.MovePayload) models.MoveResult {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.repo.Load(ctx, sessionID)
	if err != nil {
		e.log.WithError(err).WithField("session", sessionID).Error("load session failed")
		return models.Fail(models.StatusInternal, "operación fallida")
	}
	if sess == nil {
		return models.Fail(models.StatusNotFound, "partida no encontrada")
	}
	if sess.Status == models.StatusFinished {
		return models.Fail(models.StatusTerminal, "la partida ya terminó")
	}
	player, seat := sess.PlayerByID(playerID)
	if player == nil {
		return models.Fail(models.StatusNotFound, "jugador no encontrado")
	}

	var res models.MoveResult
	switch action {
	case models.ActionDrawDeck:
		res = e.handleDrawDeck(sess, player, seat)
	case models.ActionDrawDiscard:
		res = e.handleDrawDiscard(sess, player, seat)
	case models.ActionDiscard:
		res = e.handleDiscard(sess, player, seat, payload)
	case models.ActionDown:
		res = e.handleDown(sess, player, seat, payload)
	case models.ActionAddToMeld:
		res = e.handleAddToMeld(sess, player, seat, payload)
	case models.ActionStealJoker:
		res = e.handleStealJoker(sess, player, seat, payload)
	case models.ActionIntendBuy:
		res = e.handleIntendBuy(sess, player, seat)
	case models.ActionReadyForNextRound:
		res = e.handleReadyForNextRound(sess, player)
	case models.ActionStartNextRound:
		res = e.handleStartNextRound(sess, player)
	default:
		res = models.Fail(models.StatusNotFound, fmt.Sprintf("acción desconocida: %s", action))
	}
	if !res.Success {
		return res
	}

	sess.LastAction = fmt.Sprintf("%s:%s", player.Name, action)
	if err := e.repo.Save(ctx, sess); err != nil {
		e.log.WithError(err).WithField("session", sessionID).Error("save session failed")
		return models.Fail(models.StatusInternal, "operación fallida")
	}
	res.GameStatus = sess.Status

	e.recordAction(sess, playerID, action)
	if sess.Status == models.StatusFinished {
		e.recordGameHistory(sess, res)
	}

	e.log.WithFields(logrus.Fields{
		"session": sessionID,
		"player":  player.Name,
		"action":  action,
		"status":  sess.Status,
		"round":   sess.CurrentRound,
	}).Debug("move applied")
	return res
}

// recordAction publishes the per-move audit record, best effort.
func (e *Engine) recordAction(sess *models.GameSession, playerID uuid.UUID, action models.ActionType) {
	if e.history == nil {
		return
	}
	rec := ActionRecord{
		SessionID: sess.ID,
		PlayerID:  playerID,
		Action:    action,
		Round:     sess.CurrentRound,
		Timestamp: e.now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := e.history.RecordAction(ctx, rec); err != nil {
			e.log.WithError(err).WithField("session", rec.SessionID).Warn("record action failed")
		}
	}()
}

// recordGameHistory publishes the finished-game record, best effort.
func (e *Engine) recordGameHistory(sess *models.GameSession, res models.MoveResult) {
	if e.history == nil {
		return
	}
	var winnerID uuid.UUID
	if res.Data != nil {
		if id, ok := res.Data["winner"].(uuid.UUID); ok {
			winnerID = id
		}
	}
	participants := make([]Participant, 0, len(sess.Players))
	for _, p := range sess.Players {
		participants = append(participants, Participant{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			IsBot:    p.IsBot,
		})
	}
	sessionID := sess.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.history.RecordGameHistory(ctx, sessionID, winnerID, participants); err != nil {
			e.log.WithError(err).WithField("session", sessionID).Warn("record game history failed")
		}
	}()
}
