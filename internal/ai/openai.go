package ai

import (
	"context"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const backendOpenAI = "openai"

// openAIGenerator talks to any OpenAI-compatible chat completion endpoint.
type openAIGenerator struct {
	client      *openaigo.Client
	model       string
	temperature float32
	timeout     time.Duration
	tokens      *tokenCounter
	logger      *zap.Logger
}

var _ Generator = (*openAIGenerator)(nil)

func newOpenAIGenerator(opts Options, tokens *tokenCounter, logger *zap.Logger) *openAIGenerator {
	cfg := openaigo.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = opts.HTTPClient

	logger.Info("OpenAI generator created",
		zap.String("baseURL", cfg.BaseURL),
		zap.String("model", opts.Model),
		zap.Duration("timeout", opts.Timeout),
	)
	return &openAIGenerator{
		client:      openaigo.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		timeout:     opts.Timeout,
		tokens:      tokens,
		logger:      logger.Named("OpenAIGenerator"),
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.tokens != nil {
		aiPromptTokens.WithLabelValues(backendOpenAI, g.model).Observe(float64(g.tokens.Count(prompt)))
	}

	requestCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(requestCtx, openaigo.ChatCompletionRequest{
		Model: g.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
	})
	duration := time.Since(start)

	if err != nil {
		err = classifyError(ctx, err)
		aiRequestsTotal.WithLabelValues(backendOpenAI, g.model, statusLabel(err)).Inc()
		g.logger.Warn("OpenAI request failed", zap.Duration("duration", duration), zap.Error(err))
		return "", err
	}

	aiRequestsTotal.WithLabelValues(backendOpenAI, g.model, "success").Inc()
	aiRequestDuration.WithLabelValues(backendOpenAI, g.model).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		g.logger.Warn("OpenAI returned no choices", zap.Duration("duration", duration))
		return "", nil
	}
	g.logger.Debug("OpenAI response received",
		zap.Duration("duration", duration),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
