package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

const backendOllama = "ollama"

type ollamaGenerator struct {
	client      *api.Client
	model       string
	temperature float64
	timeout     time.Duration
	tokens      *tokenCounter
	logger      *zap.Logger
}

var _ Generator = (*ollamaGenerator)(nil)

func newOllamaGenerator(opts Options, tokens *tokenCounter, logger *zap.Logger) (*ollamaGenerator, error) {
	// api.NewClient wants the bare host, without /v1
	baseURL := strings.TrimSuffix(strings.TrimSuffix(opts.BaseURL, "/"), "/v1")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama base URL %q: %w", baseURL, err)
	}

	logger.Info("Ollama generator created",
		zap.String("baseURL", baseURL),
		zap.String("model", opts.Model),
		zap.Duration("timeout", opts.Timeout),
	)
	return &ollamaGenerator{
		client:      api.NewClient(parsedURL, opts.HTTPClient),
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		tokens:      tokens,
		logger:      logger.Named("OllamaGenerator"),
	}, nil
}

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    g.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": g.temperature,
		},
	}
	if g.tokens != nil {
		aiPromptTokens.WithLabelValues(backendOllama, g.model).Observe(float64(g.tokens.Count(prompt)))
	}

	requestCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	var resp api.ChatResponse
	err := g.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	duration := time.Since(start)

	if err != nil {
		err = classifyError(ctx, err)
		aiRequestsTotal.WithLabelValues(backendOllama, g.model, statusLabel(err)).Inc()
		g.logger.Warn("Ollama request failed", zap.Duration("duration", duration), zap.Error(err))
		return "", err
	}

	aiRequestsTotal.WithLabelValues(backendOllama, g.model, "success").Inc()
	aiRequestDuration.WithLabelValues(backendOllama, g.model).Observe(duration.Seconds())
	g.logger.Debug("Ollama response received",
		zap.Duration("duration", duration),
		zap.Int("promptEvalCount", resp.PromptEvalCount),
		zap.Int("evalCount", resp.EvalCount),
	)
	return resp.Message.Content, nil
}
