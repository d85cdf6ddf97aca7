package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nowme-app/nowme-server/internal/analysis"
	"github.com/nowme-app/nowme-server/internal/models"
	"go.uber.org/zap"
)

// ErrModelUnavailable is the single typed failure of an analysis round-trip:
// the model call failed or returned something that is not JSON. Callers must
// surface it, never substitute fabricated content for it.
var ErrModelUnavailable = errors.New("analysis model unavailable")

// maxInputRunes is how much of the diary text is forwarded to the model.
const maxInputRunes = 6000

// Service runs the two analysis stages against the generative model and
// coerces their raw output into canonical results.
type Service struct {
	client     Client
	quickFloor time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

func NewService(client Client, quickFloor, timeout time.Duration, logger *zap.Logger) *Service {
	if quickFloor <= 0 {
		quickFloor = 1500 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		client:     client,
		quickFloor: quickFloor,
		timeout:    timeout,
		logger:     logger,
	}
}

// Quick runs the preview stage. The result is not surfaced before the
// minimum display delay has elapsed, even when the model answers instantly:
// the floor timer starts before the call and is awaited after it, so a slow
// model is never additionally delayed.
func (s *Service) Quick(ctx context.Context, text string) (models.AnalysisResult, error) {
	floor := time.NewTimer(s.quickFloor)
	defer floor.Stop()

	raw, err := s.complete(ctx, quickSystemPrompt, text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	select {
	case <-floor.C:
	case <-ctx.Done():
		return models.AnalysisResult{}, ctx.Err()
	}
	return analysis.Merge(raw, text, analysis.Quick), nil
}

// Full runs the rich stage and returns the complete result shape.
func (s *Service) Full(ctx context.Context, text string) (models.AnalysisResult, error) {
	raw, err := s.complete(ctx, fullSystemPrompt, text)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return analysis.Merge(raw, text, analysis.Full), nil
}

// complete performs the single model attempt for a stage. No retries.
func (s *Service) complete(ctx context.Context, system, text string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Complete(ctx, system, "テキスト:\n"+clip(text))
	if err != nil {
		s.logger.Warn("analysis stage failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return raw, nil
}

func clip(text string) string {
	r := []rune(text)
	if len(r) > maxInputRunes {
		return string(r[:maxInputRunes])
	}
	return text
}
