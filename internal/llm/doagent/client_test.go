package doagent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garden-backend/internal/llm"
)

func TestCompleteNotConfigured(t *testing.T) {
	c := New("", "", "test-model", time.Second, 100)
	if c.Configured() {
		t.Fatalf("expected Configured() to be false")
	}
	if _, err := c.Complete(context.Background(), "hi"); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteSendsChatPayload(t *testing.T) {
	var got struct {
		Model       string `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int    `json:"max_tokens"`
		Stream      bool   `json:"stream"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-1" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	t.Cleanup(srv.Close)

	c := New("key-1", srv.URL, "test-model", time.Second, 500)
	raw, err := c.Complete(context.Background(), "recommend plants")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected raw body")
	}
	if got.Model != "test-model" || got.MaxTokens != 500 || got.Stream {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "recommend plants" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if got.Temperature < 0.69 || got.Temperature > 0.71 {
		t.Fatalf("unexpected temperature %v", got.Temperature)
	}
}

func TestCompleteNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"slow down"}`))
	}))
	t.Cleanup(srv.Close)

	c := New("key-1", srv.URL, "test-model", time.Second, 100)
	_, err := c.Complete(context.Background(), "hi")
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", statusErr.Code)
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := New("key-1", srv.URL, "test-model", 20*time.Millisecond, 100)
	_, err := c.Complete(context.Background(), "hi")
	if !errors.Is(err, llm.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
