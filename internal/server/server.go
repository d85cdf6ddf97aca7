package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nowme-app/nowme-server/internal/gate"
	"github.com/nowme-app/nowme-server/internal/models"
	"github.com/nowme-app/nowme-server/internal/session"
	"github.com/nowme-app/nowme-server/pkg/config"
	"go.uber.org/zap"
)

// AnalysisService is the pair of model-backed analysis stages.
type AnalysisService interface {
	Quick(ctx context.Context, text string) (models.AnalysisResult, error)
	Full(ctx context.Context, text string) (models.AnalysisResult, error)
}

// Server exposes the analysis flow over HTTP.
type Server struct {
	analysis      AnalysisService
	gates         *gate.Manager
	store         session.Store
	links         config.LinksConfig
	hasCredential bool
	logger        *zap.Logger
}

func New(analysis AnalysisService, gates *gate.Manager, store session.Store, links config.LinksConfig, hasCredential bool, logger *zap.Logger) *Server {
	return &Server{
		analysis:      analysis,
		gates:         gates,
		store:         store,
		links:         links,
		hasCredential: hasCredential,
		logger:        logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/quick", s.handleQuick)
	mux.HandleFunc("/api/full", s.handleFull)
	mux.HandleFunc("/api/sessions", s.handleCreateSession)
	mux.HandleFunc("/api/sessions/", s.handleSession)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeText(r *http.Request) (string, bool) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", false
	}
	return body.Text, true
}
