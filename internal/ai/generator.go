package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrGeneratorUnavailable covers transport and API failures of the backend.
	ErrGeneratorUnavailable = errors.New("text generator unavailable")
	// ErrGenerationTimeout is returned when a single call exceeds its timeout
	// while the caller's context is still alive.
	ErrGenerationTimeout = errors.New("text generation timed out")
)

// Generator turns a prompt into text. Output format is not guaranteed.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configures NewGenerator.
type Options struct {
	ClientType  string // ollama or openai
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	// Timeout bounds every Generate call.
	Timeout time.Duration
	// EstimateTokens enables the tiktoken prompt-size histogram.
	EstimateTokens bool
	HTTPClient     *http.Client
}

// NewGenerator builds the backend selected by opts.ClientType.
func NewGenerator(opts Options, logger *zap.Logger) (Generator, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	var counter *tokenCounter
	if opts.EstimateTokens {
		counter = newTokenCounter(opts.Model, logger)
	}

	switch strings.ToLower(opts.ClientType) {
	case "openai":
		return newOpenAIGenerator(opts, counter, logger), nil
	case "ollama":
		return newOllamaGenerator(opts, counter, logger)
	default:
		return nil, fmt.Errorf("unknown AI client type: %q", opts.ClientType)
	}
}

// classifyError maps a backend failure to the package sentinels. parent is
// the caller's context, before the per-call timeout was applied.
func classifyError(parent context.Context, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrGenerationTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
