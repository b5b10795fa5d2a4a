// Package summarize turns the filtered posts into an English narrative and
// translates it to Finnish.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	coreerrors "github.com/teleflash/teleflash/internal/core/errors"
	"github.com/teleflash/teleflash/internal/core/llm"
	"github.com/teleflash/teleflash/internal/platform/observability"
	"github.com/teleflash/teleflash/internal/platform/retry"
)

const (
	maxPosts            = 20
	previewRunes        = 500
	trimmedPreviewRunes = 300
	tokenBudget         = 4096
	maxResponseTokens   = 1500
	tokensPerDropped    = 200

	summarizeTemperature = 0.7
	summarizeTopP        = 0.9
	translateTemperature = 0.5

	dateLayout = "2006-01-02 15:04:05-07:00"

	operationSummarize = "summarize"
	operationTranslate = "translate"

	reasonRateLimited = "rate_limited"
	reasonTransient   = "transient"
)

// Summarizer asks the completion endpoint for a cited narrative over the
// posts. It never returns an error: failures come back as readable
// strings that are published like a summary.
type Summarizer struct {
	llm    llm.Completer
	tokens llm.TokenCounter
	policy retry.Policy
	logger *zerolog.Logger
}

func NewSummarizer(completer llm.Completer, tokens llm.TokenCounter, policy retry.Policy, logger *zerolog.Logger) *Summarizer {
	policy.Retryable = isRetryable

	return &Summarizer{
		llm:    completer,
		tokens: tokens,
		policy: policy,
		logger: logger,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, posts []domain.RecentPost) string {
	if len(posts) == 0 {
		return NoMessagesResult
	}

	req := llm.Request{
		System:      summarizeSystemPrompt,
		User:        BuildPrompt(posts, maxPosts, previewRunes),
		Temperature: summarizeTemperature,
		TopP:        summarizeTopP,
		MaxTokens:   maxResponseTokens,
		Operation:   operationSummarize,
	}

	if keep, over := s.fitBudget(req); over {
		s.logger.Info().Int("keep", keep).Msg("prompt exceeds token budget, trimming posts")
		req.User = BuildPrompt(posts, keep, trimmedPreviewRunes)
	}

	var (
		out     string
		lastErr error
	)

	policy := s.policy
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		observability.LLMRetries.WithLabelValues(retryReason(err)).Inc()
		s.logger.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("summary request failed, retrying")
	}

	err := policy.Do(ctx, func(ctx context.Context) error {
		var callErr error

		out, callErr = s.llm.Complete(ctx, req)
		lastErr = callErr

		return callErr
	})
	if err == nil {
		return out
	}

	s.logger.Error().Err(err).Msg("summary generation failed")

	if lastErr == nil {
		lastErr = err
	}

	switch {
	case errors.Is(lastErr, coreerrors.ErrRateLimited):
		return RateLimitedResult
	case errors.Is(lastErr, coreerrors.ErrTransient):
		return fmt.Sprintf(apiErrorFormat, lastErr)
	default:
		return fmt.Sprintf(genericErrorFormat, lastErr)
	}
}

// fitBudget returns how many posts to keep when the prompt plus the
// response allowance exceed the context window.
func (s *Summarizer) fitBudget(req llm.Request) (int, bool) {
	total := s.tokens.Count(req.System) + s.tokens.Count(req.User) + req.MaxTokens
	if total <= tokenBudget {
		return maxPosts, false
	}

	return max(1, maxPosts-(total-tokenBudget)/tokensPerDropped), true
}

// BuildPrompt renders the user message for the first limit posts, each
// body cut to preview runes.
func BuildPrompt(posts []domain.RecentPost, limit, preview int) string {
	if len(posts) > limit {
		posts = posts[:limit]
	}

	blocks := make([]string, 0, len(posts))
	for _, p := range posts {
		blocks = append(blocks, postBlock(p, preview))
	}

	return fmt.Sprintf(summarizeUserPrompt, strings.Join(blocks, "\n\n"))
}

func postBlock(p domain.RecentPost, preview int) string {
	link := strconv.Itoa(p.MessageID)
	if u := p.Permalink(); u != "" {
		link = "<" + u + ">"
	}

	return fmt.Sprintf(postBlockFormat,
		p.MessageID,
		p.ChannelTitle,
		p.ChannelUsername,
		p.Date.Format(dateLayout),
		truncateRunes(p.Body, preview),
		p.Views,
		p.Forwards,
		link,
	)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}

func isRetryable(err error) bool {
	return errors.Is(err, coreerrors.ErrRateLimited) || errors.Is(err, coreerrors.ErrTransient)
}

func retryReason(err error) string {
	if errors.Is(err, coreerrors.ErrRateLimited) {
		return reasonRateLimited
	}

	return reasonTransient
}
