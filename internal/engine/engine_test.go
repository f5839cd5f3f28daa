package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/loki/internal/detect"
	"github.com/MikeSquared-Agency/loki/internal/persona"
	"github.com/MikeSquared-Agency/loki/internal/session"
)

func newTestEngine() (*Engine, *session.MemoryStore) {
	store := session.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, nil, nil, time.Hour, logger), store
}

func TestEngage_FirstTurnPhishing(t *testing.T) {
	eng, store := newTestEngine()
	ctx := context.Background()

	result, err := eng.Engage(ctx, "", "Urgent! Login immediately to verify account: http://scam-link.com/login")
	if err != nil {
		t.Fatalf("engage failed: %v", err)
	}

	if !result.IsScam {
		t.Error("expected is_scam true")
	}
	if result.ScamType != detect.Phishing {
		t.Errorf("expected phishing, got %s", result.ScamType)
	}
	if result.Persona != persona.NaiveStudent {
		t.Errorf("expected naive_student, got %s", result.Persona)
	}
	if result.NextMessage == "" {
		t.Error("expected a non-empty reply when engaging")
	}
	if len(result.Intelligence.URLs) != 1 || result.Intelligence.URLs[0] != "http://scam-link.com/login" {
		t.Errorf("expected exactly the scam url, got %v", result.Intelligence.URLs)
	}
	if result.State.SessionID == "" {
		t.Error("expected a minted session id")
	}
	if result.State.Turn != 1 || result.State.Stage != session.StageHook {
		t.Errorf("expected turn 1 / hook, got %d / %s", result.State.Turn, result.State.Stage)
	}

	saved, found, _ := store.Get(ctx, result.State.SessionID)
	if !found {
		t.Fatal("expected session to be persisted")
	}
	if saved != result.State {
		t.Errorf("persisted state %+v differs from returned %+v", saved, result.State)
	}
}

func TestEngage_BenignMessage(t *testing.T) {
	eng, _ := newTestEngine()

	result, err := eng.Engage(context.Background(), "", "Hey, just checking in. How are you?")
	if err != nil {
		t.Fatalf("engage failed: %v", err)
	}

	if result.IsScam {
		t.Error("expected is_scam false")
	}
	if result.Persona != persona.None {
		t.Errorf("expected persona none, got %s", result.Persona)
	}
	if result.NextMessage != "" {
		t.Errorf("expected empty reply, got %q", result.NextMessage)
	}
	if !result.Intelligence.Empty() {
		t.Errorf("expected empty intelligence, got %+v", result.Intelligence)
	}
	if result.State.Turn != 1 {
		t.Errorf("expected turn 1, got %d", result.State.Turn)
	}
}

func TestEngage_StickyScamType(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	first, err := eng.Engage(ctx, "sess-sticky", "Please share the OTP code sent to your phone")
	if err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	if first.ScamType != detect.OTPFraud {
		t.Fatalf("expected otp_fraud on turn 1, got %s", first.ScamType)
	}

	second, err := eng.Engage(ctx, "sess-sticky", "ok give me a minute")
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	if second.ScamType != detect.OTPFraud {
		t.Errorf("expected locked scam type otp_fraud, got %s", second.ScamType)
	}
	if !second.IsScam {
		t.Error("expected is_scam true while locked")
	}
	if second.Confidence != 0.0 {
		t.Errorf("expected raw confidence 0.0 for the benign turn, got %f", second.Confidence)
	}
	if second.State.Turn != 2 || second.State.Stage != session.StageTrustBuilding {
		t.Errorf("expected turn 2 / trust_building, got %d / %s", second.State.Turn, second.State.Stage)
	}
	if second.Persona != persona.ConfusedUser {
		t.Errorf("expected confused_user, got %s", second.Persona)
	}
}

func TestEngage_LastDetectedConcreteTypeWins(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	if _, err := eng.Engage(ctx, "sess-switch", "share the otp code"); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	second, err := eng.Engage(ctx, "sess-switch", "instant loan approved, no cibil check, pay processing fee")
	if err != nil {
		t.Fatalf("turn 2 failed: %v", err)
	}

	if second.ScamType != detect.LoanScam {
		t.Errorf("expected loan_scam to overwrite otp_fraud, got %s", second.ScamType)
	}
}

func TestEngage_StageProgression(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	wantStages := []session.Stage{
		session.StageHook,
		session.StageTrustBuilding,
		session.StageExtraction,
		session.StageExtraction,
		session.StageExtraction,
		session.StageExit,
		session.StageExit,
	}

	for i, want := range wantStages {
		result, err := eng.Engage(ctx, "sess-stages", "verify your login")
		if err != nil {
			t.Fatalf("turn %d failed: %v", i+1, err)
		}
		if result.State.Turn != i+1 {
			t.Errorf("turn %d: counter reports %d", i+1, result.State.Turn)
		}
		if result.State.Stage != want {
			t.Errorf("turn %d: expected stage %s, got %s", i+1, want, result.State.Stage)
		}
	}
}

func TestEngage_ExpiredSessionIsFresh(t *testing.T) {
	store := session.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := New(store, nil, nil, 10*time.Millisecond, logger)
	ctx := context.Background()

	if _, err := eng.Engage(ctx, "sess-ttl", "share the otp code"); err != nil {
		t.Fatalf("turn 1 failed: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	result, err := eng.Engage(ctx, "sess-ttl", "share the otp code")
	if err != nil {
		t.Fatalf("turn after expiry failed: %v", err)
	}
	if result.State.Turn != 1 {
		t.Errorf("expected expired session to restart at turn 1, got %d", result.State.Turn)
	}
}

// failingStore reports an error on every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (session.State, bool, error) {
	return session.State{}, false, errors.New("connection refused")
}

func (failingStore) Put(context.Context, string, session.State, time.Duration) error {
	return errors.New("connection refused")
}

func TestEngage_StoreFailureSurfaces(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := New(failingStore{}, nil, nil, time.Hour, logger)

	if _, err := eng.Engage(context.Background(), "sess-x", "verify login"); err == nil {
		t.Error("expected store failure to surface as an error")
	}
}

func TestResolveSessionID(t *testing.T) {
	if got := ResolveSessionID("keep-me"); got != "keep-me" {
		t.Errorf("expected caller id to be kept, got %s", got)
	}
	minted := ResolveSessionID("")
	if minted == "" {
		t.Error("expected a minted id for empty input")
	}
	if minted == ResolveSessionID("") {
		t.Error("expected minted ids to be unique")
	}
}
