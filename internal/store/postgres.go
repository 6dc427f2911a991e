package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// Postgres persists sessions as JSONB rows. The whole session travels
// as one document, so Save is naturally atomic at the row level.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to the given database URL and verifies it
// with a ping.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() { p.pool.Close() }

// Pool exposes the connection pool for collaborators sharing the same
// database, like the history archive.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

// EnsureSchema creates the sessions table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS game_sessions (
    id         UUID PRIMARY KEY,
    status     TEXT NOT NULL,
    round      INT NOT NULL DEFAULT 0,
    state      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Load reads one session, or nil when unknown.
func (p *Postgres) Load(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT state FROM game_sessions WHERE id = $1`, sessionID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var sess models.GameSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &sess, nil
}

// Save upserts the full session document.
func (p *Postgres) Save(ctx context.Context, session *models.GameSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	_, err = p.pool.Exec(ctx, `
INSERT INTO game_sessions (id, status, round, state, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (id) DO UPDATE
SET status = EXCLUDED.status,
    round = EXCLUDED.round,
    state = EXCLUDED.state,
    updated_at = now()`,
		session.ID, string(session.Status), session.CurrentRound, raw)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session row. Unknown ids are a no-op.
func (p *Postgres) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM game_sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
