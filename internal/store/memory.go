// Package store provides the session repositories behind the engine:
// an in-memory map for tests and single-node play, and a Postgres
// implementation for durable sessions.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/models"
)

// Memory keeps sessions in a map guarded by a read-write mutex. Load
// and Save both deep-copy, so callers never share backing arrays with
// the store or with each other.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.GameSession
}

// NewMemory builds an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[uuid.UUID]*models.GameSession)}
}

// Load returns a snapshot of the session, or nil when unknown.
func (m *Memory) Load(_ context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID].Clone(), nil
}

// Save stores a snapshot of the session.
func (m *Memory) Save(_ context.Context, session *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session.Clone()
	return nil
}

// Delete removes a session. Unknown ids are a no-op.
func (m *Memory) Delete(_ context.Context, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// List returns snapshots of every stored session, in no defined order.
func (m *Memory) List(_ context.Context) ([]*models.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	return out, nil
}
