package history

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/paulo1403/carioca-game-web-sub000/internal/engine"
)

// Nop discards every record. Used in tests and when no history backend
// is configured.
type Nop struct{}

func (Nop) RecordAction(context.Context, engine.ActionRecord) error { return nil }

func (Nop) RecordGameHistory(context.Context, uuid.UUID, uuid.UUID, []engine.Participant) error {
	return nil
}

// Tee fans every record out to each recorder, collecting their errors.
type Tee []engine.HistoryRecorder

func (t Tee) RecordAction(ctx context.Context, rec engine.ActionRecord) error {
	var errs []error
	for _, r := range t {
		if err := r.RecordAction(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t Tee) RecordGameHistory(ctx context.Context, sessionID, winnerID uuid.UUID, participants []engine.Participant) error {
	var errs []error
	for _, r := range t {
		if err := r.RecordGameHistory(ctx, sessionID, winnerID, participants); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
