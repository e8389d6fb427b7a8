// Package generation invokes the external text-generation service with
// deterministic decoding parameters. The gateway never retries: a failed
// call degrades to the local matcher instead of adding latency.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"catalog-assistant/internal/common/config"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/models"
)

var (
	// ErrNotConfigured means no credential is present. This is a valid,
	// handled state: callers skip straight to the local matcher without
	// attempting a network call.
	ErrNotConfigured = errors.New("GENERATION_NOT_CONFIGURED")

	// ErrTransport covers network failures, non-success statuses, and
	// call timeouts.
	ErrTransport = errors.New("GENERATION_TRANSPORT_ERROR")
)

const apiVersion = "2023-06-01"

type Gateway struct {
	config config.GenerationConfig
	client *http.Client
	logger logger.Logger
}

func NewGateway(cfg config.GenerationConfig, log logger.Logger) *Gateway {
	return &Gateway{
		config: cfg,
		// The per-call context carries the timeout; the client itself
		// stays unbounded.
		client: &http.Client{},
		logger: log.With(map[string]interface{}{"stage": "generation"}),
	}
}

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	TopP        float64      `json:"top_p"`
	System      string       `json:"system"`
	Messages    []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends the system instructions and message sequence to the
// generation service and returns the raw text of the first content block.
// Decoding is pinned to the most deterministic settings the service
// accepts: temperature 0 and top_p 0.1.
func (g *Gateway) Generate(ctx context.Context, system string, messages []models.ChatMessage) (string, error) {
	if !g.config.Configured() {
		return "", ErrNotConfigured
	}

	if g.config.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout())
		defer cancel()
	}

	wireMessages := make([]apiMessage, 0, len(messages))
	for _, m := range messages {
		wireMessages = append(wireMessages, apiMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	body, _ := json.Marshal(apiRequest{
		Model:       g.config.Model,
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0,
		TopP:        0.1,
		System:      system,
		Messages:    wireMessages,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", g.config.BaseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.config.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: call timed out", ErrTransport)
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrTransport, err)
	}

	if len(envelope.Content) == 0 {
		return "", fmt.Errorf("%w: empty response envelope", ErrTransport)
	}

	g.logger.Debug("generation call succeeded", map[string]interface{}{
		"responseChars": len(envelope.Content[0].Text),
	})

	return envelope.Content[0].Text, nil
}
