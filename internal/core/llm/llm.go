// Package llm wraps the chat-completion endpoint used for summaries and
// translations.
package llm

import (
	"context"
)

// Request is one system + user completion call.
type Request struct {
	System      string
	User        string
	Temperature float32
	TopP        float32
	MaxTokens   int
	// Operation labels metrics and logs, e.g. "summarize".
	Operation string
}

// Completer returns the trimmed text of the first choice.
//
// Errors wrap errors.ErrRateLimited for HTTP 429 responses and
// errors.ErrTransient for server-side failures; anything else is returned
// unclassified and should not be retried.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// TokenCounter estimates how many tokens a prompt consumes.
type TokenCounter interface {
	Count(text string) int
}
