// Package session holds the per-engagement state and the store contract the
// conversation engine persists it through.
package session

import (
	"context"
	"time"

	"github.com/MikeSquared-Agency/loki/internal/detect"
)

// Stage is the position in the scripted engagement.
type Stage string

const (
	StageHook          Stage = "hook"
	StageTrustBuilding Stage = "trust_building"
	StageExtraction    Stage = "extraction"
	StageExit          Stage = "exit"
)

// StageForTurn maps a turn count onto its stage. Stage is purely a function
// of the turn counter: 1 hooks, 2 builds trust, 3-5 extract, 6+ disengage.
func StageForTurn(turn int) Stage {
	switch {
	case turn <= 1:
		return StageHook
	case turn == 2:
		return StageTrustBuilding
	case turn <= 5:
		return StageExtraction
	default:
		return StageExit
	}
}

// State is the durable per-session record. Stage is a cached projection of
// Turn; it is persisted so readers of the raw record don't need the mapping.
type State struct {
	SessionID string          `json:"session_id"`
	Turn      int             `json:"turn"`
	Stage     Stage           `json:"stage"`
	ScamType  detect.ScamType `json:"scam_type"`
}

// NewState returns the zero-state for a fresh engagement.
func NewState(sessionID string) State {
	return State{
		SessionID: sessionID,
		Turn:      0,
		Stage:     StageHook,
		ScamType:  detect.Unknown,
	}
}

// Store is the durable session store contract. Implementations must treat
// absent or expired ids as "no prior state" and report that through the
// found flag, never as an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (State, bool, error)
	Put(ctx context.Context, sessionID string, state State, ttl time.Duration) error
}
