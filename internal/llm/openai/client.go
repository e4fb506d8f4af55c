package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/54yyyu/yo-cmd/internal/config"
	"github.com/54yyyu/yo-cmd/internal/llm"
	"github.com/54yyyu/yo-cmd/internal/logging"
	"github.com/54yyyu/yo-cmd/internal/retry"
)

// OpenAI API structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	// Explicitly non-streaming; some proxies default to streaming when
	// the field is omitted.
	Stream bool `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Provider implements the llm.Provider interface for OpenAI-compatible
// chat completion APIs.
type Provider struct {
	cfg      *config.Config
	client   *http.Client
	endpoint string
}

// NewProvider creates a new OpenAI provider.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	return &Provider{
		cfg:      cfg,
		client:   &http.Client{Timeout: config.DefaultHTTPTimeout},
		endpoint: config.OpenAIAPIEndpoint,
	}, nil
}

func init() {
	llm.RegisterProvider("openai", NewProvider)
}

// GenerateCommand implements the llm.Provider interface.
func (p *Provider) GenerateCommand(ctx context.Context, promptText string) (string, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return "", llm.NewAPIError(llm.ConfigError, "No API key configured", nil)
	}

	reqBody := chatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: promptText}},
		Temperature: 0.1,
		MaxTokens:   500,
		Stream:      false,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	logging.Debugf("openai: chat completion model=%s", p.cfg.Model)

	apiURL := strings.TrimSuffix(p.endpoint, "/") + "/chat/completions"
	body, resp, err := p.doWithRetry(ctx, apiURL, jsonBody)
	if err != nil {
		return "", llm.ClassifyHTTPError(resp, err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		// Proxies serve non-JSON error pages; classify those by status.
		if resp.StatusCode != http.StatusOK {
			return "", llm.ClassifyHTTPError(resp, nil)
		}
		return "", llm.NewAPIError(llm.InvalidResponseError, "Failed to parse API response", err)
	}
	if completion.Error != nil {
		return "", llm.Classify(fmt.Errorf("API error: %s", completion.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		if apiErr := llm.ClassifyHTTPError(resp, nil); apiErr != nil {
			return "", apiErr
		}
	}
	if len(completion.Choices) == 0 {
		return "", llm.NewAPIError(llm.EmptyResponseError, "No response choices returned", nil)
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// VerifyConnection implements the llm.Provider interface.
func (p *Provider) VerifyConnection(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return nil, llm.NewAPIError(llm.ConfigError, "No API key configured", nil)
	}

	apiURL := strings.TrimSuffix(p.endpoint, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, llm.ClassifyHTTPError(nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var models modelsResponse
	if err := json.Unmarshal(body, &models); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, llm.ClassifyHTTPError(resp, nil)
		}
		return nil, llm.NewAPIError(llm.InvalidResponseError, "Failed to parse models response", err)
	}
	if models.Error != nil {
		return nil, llm.Classify(fmt.Errorf("API error: %s", models.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, llm.ClassifyHTTPError(resp, nil)
	}

	var names []string
	for _, m := range models.Data {
		if strings.HasPrefix(m.ID, "gpt-") || strings.HasPrefix(m.ID, "o") {
			names = append(names, m.ID)
		}
	}
	if len(names) == 0 {
		names = []string{"gpt-4o", "gpt-4o-mini"}
	}
	return names, nil
}

func (p *Provider) doWithRetry(ctx context.Context, apiURL string, jsonBody []byte) ([]byte, *http.Response, error) {
	var body []byte
	var resp *http.Response

	retryCfg := retry.Config{MaxAttempts: config.MaxRetryAttempts, BaseDelay: config.RetryBaseDelay}
	err := retry.Do(ctx, retryCfg, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		r, err := p.client.Do(req)
		if err != nil {
			return retry.Transient(err)
		}
		b, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		body, resp = b, r
		switch r.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return retry.Transient(fmt.Errorf("upstream returned status %d", r.StatusCode))
		}
		return nil
	})
	if err != nil {
		return nil, resp, err
	}
	return body, resp, nil
}
