// Package engine drives one turn of a honeypot conversation: classify the
// inbound message, advance the session through its stages, pick the persona
// reply, and harvest artifacts.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/loki/internal/detect"
	"github.com/MikeSquared-Agency/loki/internal/extract"
	"github.com/MikeSquared-Agency/loki/internal/hermes"
	"github.com/MikeSquared-Agency/loki/internal/persona"
	"github.com/MikeSquared-Agency/loki/internal/session"
	"github.com/MikeSquared-Agency/loki/internal/store"
)

// TurnResult is everything one turn produces for the boundary layer.
type TurnResult struct {
	IsScam         bool
	ScamType       detect.ScamType
	Confidence     float64
	Persona        persona.Persona
	NextMessage    string
	Intelligence   extract.Intelligence
	State          session.State
	Classification detect.Result
}

type Engine struct {
	sessions session.Store
	archive  *store.Store   // optional
	bus      *hermes.Client // optional
	ttl      time.Duration
	logger   *slog.Logger
}

func New(sessions session.Store, archive *store.Store, bus *hermes.Client, ttl time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		sessions: sessions,
		archive:  archive,
		bus:      bus,
		ttl:      ttl,
		logger:   logger,
	}
}

// ResolveSessionID returns the caller-supplied id, or mints a fresh one when
// it is empty. Unseen ids are adopted as-is.
func ResolveSessionID(sessionID string) string {
	if sessionID == "" {
		return uuid.NewString()
	}
	return sessionID
}

// Engage runs one turn. A missing or expired session is treated as fresh
// zero-state; a session store failure surfaces as an error. The scam type is
// sticky: once a session locks onto a concrete type, a later turn that
// classifies as unknown keeps the locked type, while a different concrete
// type overwrites it.
//
// Turns for different sessions are safe to run concurrently. Turns for the
// same session id race on the session read-modify-write; callers must
// serialize those to keep the turn counter and stickiness intact.
func (e *Engine) Engage(ctx context.Context, sessionID, message string) (TurnResult, error) {
	sessionID = ResolveSessionID(sessionID)

	prior, found, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return TurnResult{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if !found {
		prior = session.NewState(sessionID)
	}

	turn := prior.Turn + 1
	classification := detect.Classify(message)

	scamType := classification.ScamType
	if scamType == detect.Unknown && prior.ScamType != detect.Unknown {
		scamType = prior.ScamType
	}

	stage := session.StageForTurn(turn)

	result := TurnResult{
		IsScam:         scamType != detect.Unknown,
		ScamType:       scamType,
		Confidence:     classification.Confidence,
		Persona:        persona.None,
		NextMessage:    "",
		Intelligence:   extract.None(),
		Classification: classification,
	}

	if scamType != detect.Unknown {
		result.Persona, result.NextMessage = persona.Select(scamType, stage, sessionID, turn)
		result.Intelligence = extract.All(message)
	}

	state := session.State{
		SessionID: sessionID,
		Turn:      turn,
		Stage:     stage,
		ScamType:  scamType,
	}
	if err := e.sessions.Put(ctx, sessionID, state, e.ttl); err != nil {
		return TurnResult{}, fmt.Errorf("save session %s: %w", sessionID, err)
	}
	result.State = state

	e.record(ctx, result)

	return result, nil
}

// record archives the turn and publishes harvested intel. Both collaborators
// are optional and neither can fail the turn.
func (e *Engine) record(ctx context.Context, r TurnResult) {
	if e.archive != nil && r.IsScam {
		_, err := e.archive.SaveEngagement(ctx, store.Engagement{
			SessionID:    r.State.SessionID,
			Turn:         r.State.Turn,
			Stage:        string(r.State.Stage),
			ScamType:     string(r.ScamType),
			Confidence:   r.Confidence,
			UPIIDs:       r.Intelligence.UPIIDs,
			BankAccounts: r.Intelligence.BankAccounts,
			PhoneNumbers: r.Intelligence.PhoneNumbers,
			URLs:         r.Intelligence.URLs,
		})
		if err != nil {
			e.logger.Warn("failed to archive engagement", "session_id", r.State.SessionID, "error", err)
		}
	}

	if e.bus != nil && !r.Intelligence.Empty() {
		err := e.bus.Publish(hermes.SubjectIntelExtracted, hermes.IntelEvent{
			SessionID:    r.State.SessionID,
			Turn:         r.State.Turn,
			ScamType:     string(r.ScamType),
			Confidence:   r.Confidence,
			UPIIDs:       r.Intelligence.UPIIDs,
			BankAccounts: r.Intelligence.BankAccounts,
			PhoneNumbers: r.Intelligence.PhoneNumbers,
			URLs:         r.Intelligence.URLs,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			e.logger.Warn("failed to publish intel event", "session_id", r.State.SessionID, "error", err)
		}
	}
}
