package session

import (
	"context"

	"github.com/nowme-app/nowme-server/internal/models"
)

// Store is the session-scoped key-value collaborator. Each session owns
// exactly two values: the committed diary text and the latest full analysis
// result (JSON-serialized). Both are write-then-overwrite; reads of absent
// values are not errors.
type Store interface {
	SaveText(ctx context.Context, sessionID, text string) error
	// GetText returns the committed text, or "" when none was committed.
	GetText(ctx context.Context, sessionID string) (string, error)

	// SaveResult overwrites the session's latest full result.
	SaveResult(ctx context.Context, sessionID string, result models.AnalysisResult) error
	// GetResult returns the latest full result, or nil when none exists.
	GetResult(ctx context.Context, sessionID string) (*models.AnalysisResult, error)

	// Delete drops everything held for the session.
	Delete(ctx context.Context, sessionID string) error
	Close() error
}
