package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nowme-app/nowme-server/internal/gate"
	"github.com/nowme-app/nowme-server/internal/presenter"
	"go.uber.org/zap"
)

func (s *Server) handleQuick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if !s.hasCredential {
		writeError(w, http.StatusServiceUnavailable, "OPENAI_API_KEY is missing")
		return
	}
	text, ok := decodeText(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.analysis.Quick(r.Context(), text)
	if err != nil {
		s.logger.Error("quick analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFull(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if !s.hasCredential {
		writeError(w, http.StatusServiceUnavailable, "OPENAI_API_KEY is missing")
		return
	}
	text, ok := decodeText(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.analysis.Full(r.Context(), text)
	if err != nil {
		s.logger.Error("full analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	text, ok := decodeText(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := s.gates.Open(r.Context(), text)
	if err != nil {
		s.logger.Error("failed to open session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}

// gateView is the gate snapshot plus the outbound engagement targets.
type gateView struct {
	gate.Snapshot
	Links map[string]string `json:"links"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")
	if sessionID == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodDelete:
		s.gates.Abandon(sessionID)
		w.WriteHeader(http.StatusNoContent)
	case action == "gate" && r.Method == http.MethodGet:
		s.handleGateState(w, r, sessionID)
	case action == "engage" && r.Method == http.MethodPost:
		s.handleEngage(w, r, sessionID)
	case action == "retry" && r.Method == http.MethodPost:
		s.handleRetry(w, r, sessionID)
	case action == "result" && r.Method == http.MethodGet:
		s.handleResult(w, r, sessionID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (s *Server) handleGateState(w http.ResponseWriter, r *http.Request, sessionID string) {
	g, ok := s.gates.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	writeJSON(w, http.StatusOK, gateView{
		Snapshot: g.Snapshot(),
		Links: map[string]string{
			"line":  s.links.Line,
			"x":     s.links.X,
			"insta": s.links.Instagram,
		},
	})
}

func (s *Server) handleEngage(w http.ResponseWriter, r *http.Request, sessionID string) {
	g, ok := s.gates.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Action == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g.Engage(body.Action)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request, sessionID string) {
	g, ok := s.gates.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	g.Retry(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request, sessionID string) {
	// A live gate keeps the result hidden until both the analysis and the
	// engagement action have landed. Once the gate is gone (post-reveal or
	// expired), stored results are served directly.
	g, live := s.gates.Get(sessionID)
	if live && g.Snapshot().State != gate.StateReady {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}

	result, err := s.store.GetResult(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("failed to read stored result", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	writeJSON(w, http.StatusOK, presenter.Present(*result))

	// The reveal completes the flow; the gate has served its purpose.
	if live {
		s.gates.Abandon(sessionID)
	}
}
