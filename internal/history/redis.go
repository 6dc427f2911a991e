// Package history implements the engine's audit trail collaborators: a
// Redis queue for the per-move action stream, a Postgres archive for
// finished games, and helpers to combine or silence them.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paulo1403/carioca-game-web-sub000/internal/engine"
)

const (
	// actionQueueKey is the list a downstream consumer drains for the
	// per-move stream.
	actionQueueKey = "carioca:action_queue"

	// finishedQueueKey receives one entry per finished game.
	finishedQueueKey = "carioca:finished_games"
)

// Queue pushes history records onto Redis lists.
type Queue struct {
	client *redis.Client
}

// NewQueue connects a client to the given Redis URL and verifies it
// with a ping.
func NewQueue(ctx context.Context, redisURL string) (*Queue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Queue{client: client}, nil
}

// Close releases the underlying client.
func (q *Queue) Close() error { return q.client.Close() }

// RecordAction pushes one move record onto the action queue.
func (q *Queue) RecordAction(ctx context.Context, rec engine.ActionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode action record: %w", err)
	}
	if err := q.client.LPush(ctx, actionQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("queue action record: %w", err)
	}
	return nil
}

// finishedGame is the queued payload for one finished game.
type finishedGame struct {
	SessionID    uuid.UUID            `json:"sessionId"`
	WinnerID     uuid.UUID            `json:"winnerId"`
	Participants []engine.Participant `json:"participants"`
}

// RecordGameHistory pushes the final result onto the finished-games
// queue.
func (q *Queue) RecordGameHistory(ctx context.Context, sessionID, winnerID uuid.UUID, participants []engine.Participant) error {
	raw, err := json.Marshal(finishedGame{
		SessionID:    sessionID,
		WinnerID:     winnerID,
		Participants: participants,
	})
	if err != nil {
		return fmt.Errorf("encode finished game: %w", err)
	}
	if err := q.client.LPush(ctx, finishedQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("queue finished game: %w", err)
	}
	return nil
}
