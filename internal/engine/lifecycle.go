package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// botNames seeds synthetic player names, cycled when a table holds more
// bots than names.
var botNames = []string{"Lucía", "Mateo", "Valentina", "Santiago", "Camila"}

// CreateSession opens a new waiting session with the creator seated
// first. Turn order is fixed by join order.
func (e *Engine) CreateSession(ctx context.Context, creatorName string) (*models.GameSession, error) {
	creator := &models.Player{ID: uuid.New(), Name: creatorName}
	sess := &models.GameSession{
		ID:        uuid.New(),
		Players:   []*models.Player{creator},
		Status:    models.StatusWaiting,
		CreatorID: creator.ID,
	}
	if err := e.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	e.log.WithField("session", sess.ID).Info("session created")
	return sess, nil
}

// JoinSession seats a new human player. Only possible while waiting.
func (e *Engine) JoinSession(ctx context.Context, sessionID uuid.UUID, name string) (*models.Player, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("join session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("partida no encontrada")
	}
	if sess.Status != models.StatusWaiting {
		return nil, fmt.Errorf("la partida ya comenzó")
	}
	if len(sess.Players) >= MaxPlayers {
		return nil, fmt.Errorf("la partida está llena")
	}
	player := &models.Player{ID: uuid.New(), Name: name}
	sess.Players = append(sess.Players, player)
	if err := e.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("join session: %w", err)
	}
	return player, nil
}

// AddBot seats a synthetic player with the given difficulty.
func (e *Engine) AddBot(ctx context.Context, sessionID uuid.UUID, difficulty models.Difficulty) (*models.Player, error) {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("add bot: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("partida no encontrada")
	}
	if sess.Status != models.StatusWaiting {
		return nil, fmt.Errorf("la partida ya comenzó")
	}
	if len(sess.Players) >= MaxPlayers {
		return nil, fmt.Errorf("la partida está llena")
	}
	bots := 0
	for _, p := range sess.Players {
		if p.IsBot {
			bots++
		}
	}
	bot := &models.Player{
		ID:         uuid.New(),
		Name:       fmt.Sprintf("%s (Bot)", botNames[bots%len(botNames)]),
		IsBot:      true,
		Difficulty: difficulty,
	}
	sess.Players = append(sess.Players, bot)
	if err := e.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("add bot: %w", err)
	}
	return bot, nil
}

// StartGame deals round 1 and opens play. Host only, at least three
// players seated.
func (e *Engine) StartGame(ctx context.Context, sessionID, playerID uuid.UUID) error {
	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := e.repo.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	if sess == nil {
		return fmt.Errorf("partida no encontrada")
	}
	if sess.Status != models.StatusWaiting {
		return fmt.Errorf("la partida ya comenzó")
	}
	if playerID != sess.CreatorID {
		return fmt.Errorf("solo el anfitrión puede iniciar la partida")
	}
	if len(sess.Players) < MinPlayers {
		return fmt.Errorf("se necesitan al menos %d jugadores", MinPlayers)
	}

	sess.CurrentRound = 1
	sess.CurrentTurn = 0
	e.dealRound(sess)
	sess.Status = models.StatusPlaying

	if err := e.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	e.log.WithFields(logrus.Fields{
		"session": sessionID,
		"players": len(sess.Players),
	}).Info("game started")
	return nil
}
