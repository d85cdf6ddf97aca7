package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client is the opaque generative-model collaborator: given a system
// instruction and the user text it returns a best-effort JSON object, or an
// error when the round-trip itself fails. Field-level problems inside a
// returned object are not this layer's concern.
type Client interface {
	Complete(ctx context.Context, system, user string) (map[string]any, error)
}

// OpenAIClient calls the OpenAI chat-completions API in JSON mode.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (map[string]any, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		},
	)
	if err != nil {
		c.logger.Error("chat completion failed", zap.Error(err))
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty response")
	}

	var raw map[string]any
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		c.logger.Error("non-JSON model response",
			zap.Error(err),
			zap.String("response", content))
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return raw, nil
}
