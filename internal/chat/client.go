// Package chat implements the conversational companion: a messages API
// client and the session transcript around it.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ljmonteiro/companheiro/internal/config"
	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
	"github.com/ljmonteiro/companheiro/internal/model"
)

// Sender produces one assistant reply for a transcript. The only production
// implementation is Client; tests substitute fakes.
type Sender interface {
	Send(ctx context.Context, system string, msgs []model.Message) (string, error)
}

// Client calls the messages API. One request per user turn, no streaming.
type Client struct {
	cfg    config.ChatConfig
	client *http.Client
}

// NewClient creates a messages API client from the chat configuration.
func NewClient(cfg config.ChatConfig) *Client {
	return &Client{cfg: cfg, client: &http.Client{}}
}

type apiRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []model.Message `json:"messages"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Send posts the full transcript and returns the first text block of the
// reply. An empty string with a nil error means the reply carried no text.
func (c *Client) Send(ctx context.Context, system string, msgs []model.Message) (string, error) {
	body := apiRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    system,
		Messages:  msgs,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-api-key", c.cfg.APIKey)
	}
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewSystemError("chat request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("chat endpoint returned %d", resp.StatusCode)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
