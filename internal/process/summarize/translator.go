package summarize

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/llm"
)

// Translator renders an English summary in Finnish with a single call.
type Translator struct {
	llm    llm.Completer
	logger *zerolog.Logger
}

func NewTranslator(completer llm.Completer, logger *zerolog.Logger) *Translator {
	return &Translator{llm: completer, logger: logger}
}

// Translate returns the Finnish text, or an in-band error string.
func (t *Translator) Translate(ctx context.Context, summary string) string {
	if summary == "" {
		return NoSummaryToTranslate
	}

	out, err := t.llm.Complete(ctx, llm.Request{
		System:      translateSystemPrompt,
		User:        fmt.Sprintf(translateUserPrompt, summary),
		Temperature: translateTemperature,
		MaxTokens:   maxResponseTokens,
		Operation:   operationTranslate,
	})
	if err != nil {
		t.logger.Error().Err(err).Msg("translation failed")

		return fmt.Sprintf(translateErrorFormat, err)
	}

	return out
}
