package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nowme-app/nowme-server/internal/models"
)

// MemoryStore is a thread-safe in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	texts   map[string]string
	results map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		texts:   make(map[string]string),
		results: make(map[string][]byte),
	}
}

func (s *MemoryStore) SaveText(ctx context.Context, sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.texts[sessionID] = text
	return nil
}

func (s *MemoryStore) GetText(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.texts[sessionID], nil
}

func (s *MemoryStore) SaveResult(ctx context.Context, sessionID string, result models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[sessionID] = data
	return nil
}

func (s *MemoryStore) GetResult(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	s.mu.RLock()
	data, exists := s.results[sessionID]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.texts, sessionID)
	delete(s.results, sessionID)
	return nil
}

func (s *MemoryStore) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
