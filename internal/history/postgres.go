package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulo1403/carioca-game-web-sub000/internal/engine"
)

// Archive persists the audit trail in Postgres: one row per move and
// one row per finished game.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive wraps an existing pool, shared with the session store.
func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

// EnsureSchema creates the history tables when missing.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS game_actions (
    id         BIGSERIAL PRIMARY KEY,
    session_id UUID NOT NULL,
    player_id  UUID NOT NULL,
    action     TEXT NOT NULL,
    round      INT NOT NULL,
    ts         BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS game_actions_session_idx ON game_actions (session_id);
CREATE TABLE IF NOT EXISTS game_history (
    session_id   UUID PRIMARY KEY,
    winner_id    UUID NOT NULL,
    participants JSONB NOT NULL,
    finished_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := a.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

// RecordAction appends one move row.
func (a *Archive) RecordAction(ctx context.Context, rec engine.ActionRecord) error {
	_, err := a.pool.Exec(ctx, `
INSERT INTO game_actions (session_id, player_id, action, round, ts)
VALUES ($1, $2, $3, $4, $5)`,
		rec.SessionID, rec.PlayerID, string(rec.Action), rec.Round, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// RecordGameHistory writes the final standings for one finished game.
func (a *Archive) RecordGameHistory(ctx context.Context, sessionID, winnerID uuid.UUID, participants []engine.Participant) error {
	raw, err := json.Marshal(participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}
	_, err = a.pool.Exec(ctx, `
INSERT INTO game_history (session_id, winner_id, participants)
VALUES ($1, $2, $3)
ON CONFLICT (session_id) DO NOTHING`,
		sessionID, winnerID, raw)
	if err != nil {
		return fmt.Errorf("record game history: %w", err)
	}
	return nil
}
