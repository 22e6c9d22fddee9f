package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-haiku",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicReply(text, stopReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stopReason,
			"usage": map[string]any{
				"input_tokens":  180,
				"output_tokens": 42,
			},
		})
	}
}

func anthropicError(status int, errType string, header http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": errType, "message": errType},
		})
	}
}

func TestAnthropicProvider_GeneratesQuestion(t *testing.T) {
	var body []byte
	reply := anthropicReply(numericQuestion, "end_turn")
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameJSON(resp.Content, []byte(numericQuestion)) {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 180 || resp.Usage.OutputTokens != 42 || resp.Usage.TotalTokens != 222 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("expected stop reason %q, got %q", StopEnd, resp.StopReason)
	}
	if resp.Model != "claude-haiku-4-5-20251001" {
		t.Fatalf("model = %q", resp.Model)
	}
	if !strings.Contains(string(body), `"correct_answer"`) {
		t.Fatalf("question schema not sent: %s", body)
	}
}

func TestAnthropicProvider_StripsCodeFence(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply("```json\n"+choiceQuestion+"\n```", "end_turn"))

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameJSON(resp.Content, []byte(choiceQuestion)) {
		t.Fatalf("content = %s", resp.Content)
	}
}

func TestAnthropicProvider_TruncatedQuestion(t *testing.T) {
	partial := numericQuestion[:40]
	p := newTestAnthropicProvider(t, anthropicReply(partial, "max_tokens"))

	_, err := p.Generate(context.Background(), questionRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T: %v", err, err)
	}
	if string(maxTok.Content) != partial {
		t.Fatalf("partial content = %q", maxTok.Content)
	}
}

func TestAnthropicProvider_PointsOutOfRange(t *testing.T) {
	bad := strings.Replace(numericQuestion, `"points":2`, `"points":50`, 1)
	p := newTestAnthropicProvider(t, anthropicReply(bad, "end_turn"))

	_, err := p.Generate(context.Background(), questionRequest())
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	var hits atomic.Int32
	limited := anthropicError(http.StatusTooManyRequests, "rate_limit_error", http.Header{"Retry-After": {"3"}})
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		limited(w, r)
	})

	_, err := p.Generate(context.Background(), questionRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T: %v", err, err)
	}
	if rl.RetryAfter != 3*time.Second {
		t.Fatalf("RetryAfter = %s, want 3s", rl.RetryAfter)
	}
	if hits.Load() != 1 {
		t.Fatalf("SDK retried: %d requests", hits.Load())
	}
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, func(err error) bool {
			var e *ErrAuthentication
			return errors.As(err, &e)
		}},
		{"unknown model", http.StatusNotFound, func(err error) bool {
			var e *ErrRequestRejected
			return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
		}},
		{"overloaded", http.StatusServiceUnavailable, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicError(tt.status, "api_error", nil))
			_, err := p.Generate(context.Background(), questionRequest())
			if !tt.check(err) {
				t.Fatalf("status %d mapped to %T: %v", tt.status, err, err)
			}
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
