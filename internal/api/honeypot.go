package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/loki/internal/detect"
	"github.com/MikeSquared-Agency/loki/internal/engine"
	"github.com/MikeSquared-Agency/loki/internal/extract"
	"github.com/MikeSquared-Agency/loki/internal/session"
)

// HoneypotRequest is one inbound scammer message. Message is a pointer so an
// absent field can be rejected instead of read as empty.
type HoneypotRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"session_id,omitempty"`
	Sender    string  `json:"sender,omitempty"`
	Language  string  `json:"language,omitempty"`
}

// SessionStateBody is the session snapshot exposed to callers. The locked
// scam type is reported at the top level, not here.
type SessionStateBody struct {
	SessionID string `json:"session_id"`
	Turn      int    `json:"turn"`
	Stage     string `json:"stage"`
}

// Explanation describes why a message was (or wasn't) classified as a scam.
type Explanation struct {
	Summary string   `json:"summary"`
	Signals []string `json:"signals"`
}

type HoneypotResponse struct {
	IsScam                bool                 `json:"is_scam"`
	ScamType              string               `json:"scam_type"`
	Confidence            float64              `json:"confidence"`
	PersonaUsed           string               `json:"persona_used"`
	NextMessage           string               `json:"next_message"`
	ExtractedIntelligence extract.Intelligence `json:"extracted_intelligence"`
	SessionState          SessionStateBody     `json:"session_state"`
	Explanation           Explanation          `json:"explanation"`
}

// honeypot handles POST /api/v1/honeypot — one turn of the deception loop.
func (s *Server) honeypot(w http.ResponseWriter, r *http.Request) {
	var req HoneypotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "Invalid request parameters")
		return
	}
	message := *req.Message

	if utf8.RuneCountInString(message) > s.maxMessageChars {
		writeError(w, http.StatusRequestEntityTooLarge, "RequestEntityTooLarge",
			fmt.Sprintf("Message too long (max %d chars)", s.maxMessageChars))
		return
	}

	// A blank message never reaches the engine: the session id is still
	// resolved so the response contract holds, but the turn counter must not
	// advance.
	if strings.TrimSpace(message) == "" {
		writeJSON(w, http.StatusOK, benignResponse(engine.ResolveSessionID(req.SessionID)))
		return
	}

	result, err := s.engine.Engage(r.Context(), req.SessionID, message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func toResponse(r engine.TurnResult) HoneypotResponse {
	signals := make([]string, 0, len(r.Classification.Signals))
	for _, sig := range r.Classification.Signals {
		signals = append(signals, sig.String())
	}

	summary := "No scam indicators detected."
	if r.IsScam {
		summary = fmt.Sprintf("Detected %s pattern with %.2f confidence.", r.ScamType, r.Confidence)
	}

	return HoneypotResponse{
		IsScam:                r.IsScam,
		ScamType:              string(r.ScamType),
		Confidence:            r.Confidence,
		PersonaUsed:           string(r.Persona),
		NextMessage:           r.NextMessage,
		ExtractedIntelligence: r.Intelligence,
		SessionState: SessionStateBody{
			SessionID: r.State.SessionID,
			Turn:      r.State.Turn,
			Stage:     string(r.State.Stage),
		},
		Explanation: Explanation{Summary: summary, Signals: signals},
	}
}

// benignResponse is the fixed reply for blank input.
func benignResponse(sessionID string) HoneypotResponse {
	return HoneypotResponse{
		IsScam:                false,
		ScamType:              string(detect.Unknown),
		Confidence:            0.0,
		PersonaUsed:           "none",
		NextMessage:           "",
		ExtractedIntelligence: extract.None(),
		SessionState: SessionStateBody{
			SessionID: sessionID,
			Turn:      0,
			Stage:     string(session.StageHook),
		},
		Explanation: Explanation{Summary: "No scam indicators detected.", Signals: []string{}},
	}
}
