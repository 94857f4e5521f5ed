// Package llm provides a minimal client for OpenAI-compatible chat
// completion HTTP APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL targets the OpenAI API; any compatible server works.
const DefaultBaseURL = "https://api.openai.com/v1"

// Completer produces a completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls a chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// New creates a chat completion client. An empty baseURL falls back to
// DefaultBaseURL.
func New(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("chat completion decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("chat completion: status %d", resp.StatusCode)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return result.Choices[0].Message.Content, nil
}
