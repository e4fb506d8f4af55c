package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/54yyyu/yo-cmd/internal/config"
	"github.com/54yyyu/yo-cmd/internal/llm"
)

func newTestProvider(serverURL string) *Provider {
	return &Provider{
		cfg:      &config.Config{APIKey: "test-key", Model: "gpt-4o-mini"},
		client:   &http.Client{Timeout: 5 * time.Second},
		endpoint: serverURL,
	}
}

func TestGenerateCommandSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/chat/completions" {
			http.Error(w, "wrong path", http.StatusNotFound)
			return
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stream {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "pwd # prints the working directory"}},
			},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	got, err := p.GenerateCommand(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("GenerateCommand failed: %v", err)
	}
	if got != "pwd # prints the working directory" {
		t.Errorf("Unexpected response text: %q", got)
	}
}

func TestGenerateCommandAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	_, err := p.GenerateCommand(context.Background(), "prompt")
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != llm.AuthError {
		t.Fatalf("Expected AuthError, got %v", err)
	}
}

func TestGenerateCommandNonJSONErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("<html><body>401 Unauthorized</body></html>"))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	_, err := p.GenerateCommand(context.Background(), "prompt")
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected an APIError, got %v", err)
	}
	if apiErr.Type != llm.AuthError {
		t.Errorf("HTML 401 page should classify by status as AuthError, got %s", apiErr.Type)
	}
}

func TestGenerateCommandNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	_, err := p.GenerateCommand(context.Background(), "prompt")
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != llm.EmptyResponseError {
		t.Fatalf("Expected EmptyResponseError, got %v", err)
	}
}

func TestVerifyConnectionFiltersModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"id": "gpt-4o"},
				{"id": "whisper-1"},
				{"id": "gpt-4o-mini"},
			},
		})
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	models, err := p.VerifyConnection(context.Background())
	if err != nil {
		t.Fatalf("VerifyConnection failed: %v", err)
	}
	for _, m := range models {
		if m == "whisper-1" {
			t.Errorf("Non-chat model should be filtered out, got %v", models)
		}
	}
}
