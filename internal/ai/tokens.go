package ai

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

// tokenCounter estimates prompt sizes. The encoding is loaded on first use;
// when it cannot be loaded the rune count is used instead.
type tokenCounter struct {
	model  string
	logger *zap.Logger

	once sync.Once
	enc  *tiktoken.Tiktoken
}

func newTokenCounter(model string, logger *zap.Logger) *tokenCounter {
	return &tokenCounter{model: model, logger: logger}
}

func (t *tokenCounter) load() {
	enc, err := tiktoken.EncodingForModel(t.model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		t.logger.Warn("Token encoding unavailable, falling back to rune count", zap.String("model", t.model), zap.Error(err))
		return
	}
	t.enc = enc
}

func (t *tokenCounter) Count(text string) int {
	if t == nil {
		return 0
	}
	t.once.Do(t.load)
	if t.enc == nil {
		return utf8.RuneCountInString(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}
