package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiReply(text, finishReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finishReason,
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     120,
				"candidatesTokenCount": 40,
				"totalTokenCount":      160,
			},
			"modelVersion": "gemini-2.0-flash-001",
		})
	}
}

func TestGeminiProvider_GeneratesQuestion(t *testing.T) {
	var path string
	var sent map[string]any
	reply := geminiReply(numericQuestion, "STOP")
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&sent)
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameJSON(resp.Content, []byte(numericQuestion)) {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 160 || resp.StopReason != StopEnd {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Model != "gemini-2.0-flash-001" {
		t.Fatalf("model = %q", resp.Model)
	}
	if !strings.HasSuffix(path, "/models/gemini-2.0-flash:generateContent") {
		t.Fatalf("path = %q", path)
	}
	gen, _ := sent["generationConfig"].(map[string]any)
	if gen["responseMimeType"] != "application/json" || gen["responseSchema"] == nil {
		t.Fatalf("generationConfig = %v", gen)
	}
}

func TestGeminiProvider_TruncatedQuestion(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(`{"question":"What is 7`, "MAX_TOKENS"))

	_, err := p.Generate(context.Background(), questionRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T: %v", err, err)
	}
}

func TestGeminiProvider_StatusMapping(t *testing.T) {
	geminiError := func(code int, status string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s","status":"%s"}}`, code, status, status)
		}
	}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{"quota", geminiError(http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"), func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"bad key", geminiError(http.StatusForbidden, "PERMISSION_DENIED"), func(err error) bool {
			var e *ErrAuthentication
			return errors.As(err, &e)
		}},
		{"bad request", geminiError(http.StatusBadRequest, "INVALID_ARGUMENT"), func(err error) bool {
			var e *ErrRequestRejected
			return errors.As(err, &e)
		}},
		{"overloaded", geminiError(http.StatusServiceUnavailable, "UNAVAILABLE"), func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGeminiProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), questionRequest())
			if !tt.check(err) {
				t.Fatalf("mapped to %T: %v", err, err)
			}
		})
	}
}

func TestMapGeminiError_ValueAPIError(t *testing.T) {
	err := fmt.Errorf("generate: %w", genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"})
	var rl *ErrRateLimit
	if !errors.As(mapGeminiError(err), &rl) {
		t.Fatalf("wrapped APIError value not classified: %v", mapGeminiError(err))
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_QuestionSchema(t *testing.T) {
	schema := buildGeminiSchema(quizSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 6 || len(schema.Required) != 6 {
		t.Fatalf("properties=%d required=%d, want 6 each", len(schema.Properties), len(schema.Required))
	}
	kind := schema.Properties["type"]
	if kind.Type != genai.TypeString || len(kind.Enum) != 3 {
		t.Fatalf("type property = %+v", kind)
	}
	options := schema.Properties["options"]
	if options.Type != genai.TypeArray || options.Items == nil || options.Items.Type != genai.TypeString {
		t.Fatalf("options property = %+v", options)
	}
	points := schema.Properties["points"]
	if points.Type != genai.TypeInteger {
		t.Fatalf("points type = %s", points.Type)
	}
	if points.Minimum == nil || *points.Minimum != 1 || points.Maximum == nil || *points.Maximum != 10 {
		t.Fatalf("points bounds = %v..%v", points.Minimum, points.Maximum)
	}
}

func TestBuildGeminiSchema_Keywords(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "array",
		"minItems": 2,
		"maxItems": float64(4),
		"items":    map[string]any{"type": []any{"null", "number"}},
	})
	if schema.MinItems == nil || *schema.MinItems != 2 || schema.MaxItems == nil || *schema.MaxItems != 4 {
		t.Fatalf("item bounds = %v..%v", schema.MinItems, schema.MaxItems)
	}
	if schema.Items.Type != genai.TypeNumber {
		t.Fatalf("nullable union mapped to %s", schema.Items.Type)
	}
}
