package gate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nowme-app/nowme-server/internal/session"
	"github.com/nowme-app/nowme-server/internal/telemetry"
	"go.uber.org/zap"
)

// Manager owns the live gates, one per session. Gates are dropped when the
// flow completes (the result is revealed), when the session is abandoned
// explicitly, or after the session TTL for flows that are simply walked
// away from — the stored session data ages out on the same clock.
type Manager struct {
	store       session.Store
	analyzer    Analyzer
	recorder    telemetry.Recorder
	promptDelay time.Duration
	ttl         time.Duration
	logger      *zap.Logger

	mu    sync.Mutex
	gates map[string]*Gate
}

func NewManager(store session.Store, analyzer Analyzer, recorder telemetry.Recorder, promptDelay, ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:       store,
		analyzer:    analyzer,
		recorder:    recorder,
		promptDelay: promptDelay,
		ttl:         ttl,
		logger:      logger,
		gates:       make(map[string]*Gate),
	}
}

// Open commits the diary text for a fresh session and starts its gate.
func (m *Manager) Open(ctx context.Context, text string) (string, error) {
	sessionID := uuid.New().String()
	if err := m.store.SaveText(ctx, sessionID, text); err != nil {
		return "", err
	}

	g := New(sessionID, m.store, m.analyzer, m.recorder, m.promptDelay, m.logger)

	m.mu.Lock()
	m.gates[sessionID] = g
	m.mu.Unlock()

	// Expire the gate alongside the stored session data.
	time.AfterFunc(m.ttl, func() { m.Abandon(sessionID) })

	g.Start(ctx)
	return sessionID, nil
}

func (m *Manager) Get(sessionID string) (*Gate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gates[sessionID]
	return g, ok
}

// Abandon closes and forgets a session's gate. Stored session data is kept
// until the store expires it.
func (m *Manager) Abandon(sessionID string) {
	m.mu.Lock()
	g, ok := m.gates[sessionID]
	delete(m.gates, sessionID)
	m.mu.Unlock()

	if ok {
		g.Close()
	}
}
