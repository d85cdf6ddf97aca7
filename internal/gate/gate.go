package gate

import (
	"context"
	"sync"
	"time"

	"github.com/nowme-app/nowme-server/internal/models"
	"github.com/nowme-app/nowme-server/internal/session"
	"github.com/nowme-app/nowme-server/internal/telemetry"
	"go.uber.org/zap"
)

// State is the gate's externally visible phase.
type State string

const (
	// StateAnalyzing: analysis running, user not yet engaged.
	StateAnalyzing State = "analyzing"
	// StateAwaitingEngagement: analysis finished first, waiting for the user.
	StateAwaitingEngagement State = "awaiting_engagement"
	// StateAwaitingAnalysis: user engaged first, analysis still running.
	StateAwaitingAnalysis State = "awaiting_analysis"
	// StateReady: both conditions hold; the result can be revealed.
	StateReady State = "ready"
	// StateFailed: analysis failed; retryable. Engagement is preserved.
	StateFailed State = "failed"
)

// Analyzer is the full-analysis stage consumed by the gate.
type Analyzer interface {
	Full(ctx context.Context, text string) (models.AnalysisResult, error)
}

// Snapshot is the observable gate record a UI polls.
type Snapshot struct {
	State         State                  `json:"state"`
	PromptVisible bool                   `json:"promptVisible"`
	Engagement    models.EngagementState `json:"engagement"`
	Error         string                 `json:"error,omitempty"`
}

// Gate sequences one session from committed text to result reveal: it runs
// the full analysis concurrently with the engagement-prompt timer and
// transitions to Ready exactly once, when both the analysis has completed
// and the user has performed an engagement action, in either order.
type Gate struct {
	sessionID   string
	store       session.Store
	analyzer    Analyzer
	recorder    telemetry.Recorder
	promptDelay time.Duration
	logger      *zap.Logger

	mu            sync.Mutex
	engaged       bool
	analysisDone  bool
	failed        bool
	errMsg        string
	promptVisible bool
	closed        bool
	readyFired    bool
	running       bool

	ready chan struct{}
}

func New(sessionID string, store session.Store, analyzer Analyzer, recorder telemetry.Recorder, promptDelay time.Duration, logger *zap.Logger) *Gate {
	if promptDelay <= 0 {
		promptDelay = time.Second
	}
	return &Gate{
		sessionID:   sessionID,
		store:       store,
		analyzer:    analyzer,
		recorder:    recorder,
		promptDelay: promptDelay,
		logger:      logger,
		ready:       make(chan struct{}),
	}
}

// Start kicks off the full analysis and the engagement-prompt timer.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	if g.running || g.closed {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.mu.Unlock()

	time.AfterFunc(g.promptDelay, func() {
		g.mu.Lock()
		g.promptVisible = true
		g.mu.Unlock()
	})

	// The analysis outlives the request that started it.
	go g.runAnalysis(context.WithoutCancel(ctx))
}

func (g *Gate) runAnalysis(ctx context.Context) {
	// Absent text is an empty diary, not an error.
	text, err := g.store.GetText(ctx, g.sessionID)
	if err != nil {
		g.logger.Warn("failed to load session text", zap.Error(err))
		text = ""
	}

	result, err := g.analyzer.Full(ctx, text)

	g.mu.Lock()
	if g.closed {
		// The user left the flow; a late completion is a no-op.
		g.mu.Unlock()
		return
	}
	if err != nil {
		g.failed = true
		g.running = false
		g.errMsg = "分析に失敗しました。もう一度お試しください。"
		g.mu.Unlock()
		g.logger.Warn("full analysis failed",
			zap.String("session_id", g.sessionID),
			zap.Error(err))
		return
	}
	g.mu.Unlock()

	// Persist first; the stored value is the session's single latest result.
	if err := g.store.SaveResult(ctx, g.sessionID, result); err != nil {
		g.mu.Lock()
		g.failed = true
		g.running = false
		g.errMsg = "分析に失敗しました。もう一度お試しください。"
		g.mu.Unlock()
		g.logger.Error("failed to persist analysis result", zap.Error(err))
		return
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.analysisDone = true
	g.running = false
	g.maybeReadyLocked()
	g.mu.Unlock()
}

// Engage records that the user performed one of the outbound engagement
// actions. Idempotent: only the first action flips the flag and emits the
// telemetry record; repeats are no-ops.
func (g *Gate) Engage(action string) {
	g.mu.Lock()
	if g.closed || g.engaged {
		g.mu.Unlock()
		return
	}
	g.engaged = true
	g.maybeReadyLocked()
	g.mu.Unlock()

	g.recorder.Record(g.sessionID, action)
}

// Retry re-runs a failed analysis. Engagement is untouched, so a user who
// already engaged only waits for the analysis to land.
func (g *Gate) Retry(ctx context.Context) {
	g.mu.Lock()
	if !g.failed || g.closed {
		g.mu.Unlock()
		return
	}
	g.failed = false
	g.errMsg = ""
	g.running = true
	g.mu.Unlock()

	go g.runAnalysis(context.WithoutCancel(ctx))
}

// maybeReadyLocked re-evaluates the transition rule. Called with g.mu held,
// after each of the two events lands; either can arrive first, and the
// ready channel closes exactly once.
func (g *Gate) maybeReadyLocked() {
	if g.engaged && g.analysisDone && !g.readyFired {
		g.readyFired = true
		close(g.ready)
	}
}

// Ready is closed when the gate reaches the Ready state.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// Snapshot returns the current observable state record.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		PromptVisible: g.promptVisible,
		Engagement: models.EngagementState{
			AnalysisDone: g.analysisDone,
			Engaged:      g.engaged,
		},
		Error: g.errMsg,
	}
	switch {
	case g.readyFired:
		s.State = StateReady
	case g.failed:
		s.State = StateFailed
	case g.analysisDone:
		s.State = StateAwaitingEngagement
	case g.engaged:
		s.State = StateAwaitingAnalysis
	default:
		s.State = StateAnalyzing
	}
	return s
}

// Close marks the session as abandoned. In-flight work is not cancelled;
// completions arriving afterwards are discarded.
func (g *Gate) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
