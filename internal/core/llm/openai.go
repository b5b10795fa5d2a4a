package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	coreerrors "github.com/teleflash/teleflash/internal/core/errors"
	"github.com/teleflash/teleflash/internal/platform/config"
	"github.com/teleflash/teleflash/internal/platform/observability"
)

type openaiClient struct {
	client      *openai.Client
	model       string
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// NewOpenAI builds a Completer for the configured model. LLM_BASE_URL
// points it at any OpenAI-compatible endpoint.
func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Completer {
	clientCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		clientCfg.BaseURL = cfg.LLMBaseURL
	}

	model := cfg.LLMModel
	if model == "" {
		model = defaultModel
	}

	limit := rate.Inf
	if cfg.LLMRateLimitRPS > 0 {
		limit = rate.Limit(cfg.LLMRateLimitRPS)
	}

	return &openaiClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		logger:      logger,
		rateLimiter: rate.NewLimiter(limit, rateLimiterBurst),
	}
}

func (c *openaiClient) Complete(ctx context.Context, req Request) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	})

	observability.LLMRequestDuration.WithLabelValues(c.model, req.Operation).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Debug().Err(err).
			Str(logKeyOperation, req.Operation).
			Str(logKeyModel, c.model).
			Int(logKeyMaxTokens, req.MaxTokens).
			Msg("chat completion failed")

		return "", classifyError(fmt.Errorf(errOpenAIChatCompletion, err))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", coreerrors.ErrEmptyResponse)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classifyError tags retryable API failures. 429 is a rate limit; 5xx
// and API errors without a status are transient.
func classifyError(err error) error {
	status, ok := statusCode(err)
	if !ok {
		return err
	}

	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", coreerrors.ErrRateLimited, err)
	case status == 0 || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", coreerrors.ErrTransient, err)
	default:
		return err
	}
}

func statusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, true
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, true
	}

	return 0, false
}
