package models

import "github.com/google/uuid"

// Move status classifiers, HTTP-class. The transport layer may forward
// them as response codes; the engine only uses them to distinguish the
// error taxonomy.
const (
	StatusOK            = 200
	StatusTurnViolation = 403
	StatusNotFound      = 404
	StatusPrecondition  = 409
	StatusTerminal      = 410
	StatusRuleViolation = 422
	StatusInternal      = 500
)

// MovePayload carries the action-specific inputs of a move. Unused
// fields are left zero.
type MovePayload struct {
	CardID      uuid.UUID     `json:"cardId,omitempty"`
	Groups      [][]uuid.UUID `json:"groups,omitempty"`
	MeldOwnerID uuid.UUID     `json:"meldOwnerId,omitempty"`
	MeldIndex   int           `json:"meldIndex"`
}

// MoveResult is what ProcessMove hands back to the caller. Data holds
// action-specific fields (drawn cards, winner, scores...).
type MoveResult struct {
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Status     int                    `json:"status,omitempty"`
	GameStatus Status                 `json:"gameStatus,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Fail builds a failure result with a status classifier and a
// player-facing message.
func Fail(status int, msg string) MoveResult {
	return MoveResult{Success: false, Error: msg, Status: status}
}

// OK builds a success result carrying the session's post-move status.
func OK(gameStatus Status, data map[string]interface{}) MoveResult {
	return MoveResult{Success: true, Status: StatusOK, GameStatus: gameStatus, Data: data}
}
