// Package doagent implements the llm.Client contract against a DigitalOcean
// GenAI Agent (chat-completions compatible) endpoint.
package doagent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"garden-backend/internal/llm"
)

const completionsPath = "/api/v1/chat/completions"

// Client calls a chat-completions endpoint over HTTP with a bounded timeout.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// New constructs a client. Missing credentials are allowed; Configured reports
// them and Complete refuses to dial.
func New(apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &Client{
		apiKey:    strings.TrimSpace(apiKey),
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:     strings.TrimSpace(model),
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether both the API key and endpoint are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// Complete issues exactly one POST to the completions endpoint and returns the
// raw response body on 2xx. It never retries.
func (c *Client) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, llm.ErrNotConfigured
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("%w: %v", llm.ErrTimeout, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &llm.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return json.RawMessage(body), nil
}

var _ llm.Client = (*Client)(nil)
