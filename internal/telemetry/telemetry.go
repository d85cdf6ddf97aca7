package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Recorder records which engagement action a user chose. Delivery is
// best-effort: implementations never block the caller, never retry, and
// never surface failures.
type Recorder interface {
	Record(sessionID, action string)
}

// HTTPRecorder posts engagement records to an endpoint, fire-and-forget.
type HTTPRecorder struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewHTTPRecorder(endpoint string, logger *zap.Logger) *HTTPRecorder {
	return &HTTPRecorder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 3 * time.Second},
		logger:   logger,
	}
}

func (r *HTTPRecorder) Record(sessionID, action string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		body, _ := json.Marshal(map[string]string{
			"sessionId": sessionID,
			"action":    action,
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
		if err != nil {
			r.logger.Warn("engagement record not sent", zap.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.Warn("engagement record not sent", zap.Error(err))
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			r.logger.Warn("engagement record rejected", zap.Int("status", resp.StatusCode))
		}
	}()
}

// NopRecorder drops records, used when no telemetry endpoint is configured.
type NopRecorder struct{}

func (NopRecorder) Record(sessionID, action string) {}
