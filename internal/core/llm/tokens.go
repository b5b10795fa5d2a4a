package llm

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var bpeLoaderOnce sync.Once

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter returns a BPE counter for model using the embedded
// tables, so no network access is needed. Unknown models fall back to
// cl100k_base, and if that cannot load either, to a rune-based estimate.
func NewTokenCounter(model string) TokenCounter {
	bpeLoaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}

	if err != nil {
		return approxCounter{}
	}

	return &tiktokenCounter{enc: enc}
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

type approxCounter struct{}

func (approxCounter) Count(text string) int {
	n := utf8.RuneCountInString(text)

	return (n + approxRunesPerToken - 1) / approxRunesPerToken
}
