package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/54yyyu/yo-cmd/internal/config"
	"github.com/54yyyu/yo-cmd/internal/llm"
	"github.com/54yyyu/yo-cmd/internal/logging"
	"github.com/54yyyu/yo-cmd/internal/retry"
)

// Gemini API structures
type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type modelsResponse struct {
	Models []struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	} `json:"models"`
	Error *apiError `json:"error,omitempty"`
}

// Provider implements the llm.Provider interface for the Google
// Generative Language API.
type Provider struct {
	cfg      *config.Config
	client   *http.Client
	endpoint string
}

// NewProvider creates a new Gemini provider.
func NewProvider(cfg *config.Config) (llm.Provider, error) {
	return &Provider{
		cfg:      cfg,
		client:   &http.Client{Timeout: config.DefaultHTTPTimeout},
		endpoint: config.GeminiAPIEndpoint,
	}, nil
}

func init() {
	llm.RegisterProvider("gemini", NewProvider)
}

// GenerateCommand implements the llm.Provider interface.
func (p *Provider) GenerateCommand(ctx context.Context, promptText string) (string, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return "", llm.NewAPIError(llm.ConfigError, "No API key configured", nil)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(p.endpoint, "/"), p.cfg.Model)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: promptText}}}},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	logging.Debugf("gemini: generateContent model=%s", p.cfg.Model)

	body, resp, err := p.doWithRetry(ctx, apiURL, jsonBody)
	if err != nil {
		return "", llm.ClassifyHTTPError(resp, err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		// Proxies serve non-JSON error pages; classify those by status.
		if resp.StatusCode != http.StatusOK {
			return "", llm.ClassifyHTTPError(resp, nil)
		}
		return "", llm.NewAPIError(llm.InvalidResponseError, "Failed to parse API response", err)
	}
	if genResp.Error != nil {
		return "", classifyAPIError(genResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		if apiErr := llm.ClassifyHTTPError(resp, nil); apiErr != nil {
			return "", apiErr
		}
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", llm.NewAPIError(llm.EmptyResponseError, "No candidates returned", nil)
	}

	var builder strings.Builder
	for _, pt := range genResp.Candidates[0].Content.Parts {
		builder.WriteString(pt.Text)
	}
	return strings.TrimSpace(builder.String()), nil
}

// VerifyConnection implements the llm.Provider interface. It lists the
// available models, which both checks the key and feeds model selection.
func (p *Provider) VerifyConnection(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return nil, llm.NewAPIError(llm.ConfigError, "No API key configured", nil)
	}

	apiURL := strings.TrimSuffix(p.endpoint, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.cfg.APIKey)

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
		return nil, classifyAPIError(models.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, llm.ClassifyHTTPError(resp, nil)
	}

	var names []string
	for _, m := range models.Models {
		name := strings.TrimPrefix(m.Name, "models/")
		if strings.HasPrefix(name, "gemini") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, llm.NewAPIError(llm.EmptyResponseError, "No usable models returned", nil)
	}
	return names, nil
}

// doWithRetry posts the body, retrying transient upstream failures with
// a short backoff.
func (p *Provider) doWithRetry(ctx context.Context, apiURL string, jsonBody []byte) ([]byte, *http.Response, error) {
	var body []byte
	var resp *http.Response

	retryCfg := retry.Config{MaxAttempts: config.MaxRetryAttempts, BaseDelay: config.RetryBaseDelay}
	err := retry.Do(ctx, retryCfg, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", p.cfg.APIKey)

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

func classifyAPIError(e *apiError) error {
	err := errors.New(e.Message)
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.NewAPIError(llm.AuthError, e.Message, err)
	case http.StatusTooManyRequests:
		return llm.NewAPIError(llm.QuotaExceededError, e.Message, err)
	case http.StatusNotFound:
		return llm.NewAPIError(llm.ModelNotFoundError, e.Message, err)
	}
	return llm.Classify(err)
}
