// Package completion adapts an OpenAI-compatible chat completion API to the
// CompletionService interface.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventradar/config"
	domainerrors "eventradar/internal/domain/errors"
	"eventradar/internal/domain/service"
	"eventradar/internal/infra/httpclient"
	"eventradar/internal/infra/metrics"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const chatCompletionsPath = "/chat/completions"

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClientParams holds dependencies for the completion client, injected by Fx.
type ClientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

type openRouterClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewOpenRouterClient creates a CompletionService for OpenRouter or any
// endpoint speaking the same chat completion protocol.
func NewOpenRouterClient(params ClientParams) (service.CompletionService, error) {
	cfg := params.Config.Completion
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("completion base URL is required")
	}
	if cfg.APIKey == "" {
		params.Logger.Warn("Completion API key is empty; requests will likely be rejected")
	}

	return &openRouterClient{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + chatCompletionsPath,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: httpclient.New(cfg.Timeout),
		logger:     params.Logger,
		metrics:    params.Metrics,
	}, nil
}

// Complete implements service.CompletionService
func (c *openRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: []contentPart{{Type: "text", Text: prompt}},
		}},
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	defer func() { c.metrics.ObserveCompletion(time.Since(start)) }()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.NewUpstreamScoringError(0, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", domainerrors.NewUpstreamScoringError(resp.StatusCode, resp.Status, nil)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", domainerrors.NewUpstreamScoringError(resp.StatusCode, "malformed response body", err)
	}

	// Some providers report rate limiting in a 200 body instead of the status line.
	if payload.Error != nil && len(payload.Choices) == 0 {
		return "", domainerrors.NewUpstreamScoringError(resp.StatusCode, payload.Error.Message, nil)
	}

	if len(payload.Choices) == 0 {
		c.logger.WarnContext(ctx, "Completion response carried no choices", slog.String("model", c.model))

		return "", nil
	}

	return payload.Choices[0].Message.Content, nil
}
