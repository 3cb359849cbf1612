package questionnaire

import (
	"context"
	"errors"
	"fmt"

	"mood-server/internal/ai"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds generation attempts per follow-up question.
const DefaultMaxAttempts = 10

// Result is the outcome of asking for the next question.
type Result struct {
	// Text is what the user sees: a question block or ExhaustedMessage.
	Text string
	// Question is nil when Exhausted is set.
	Question *Question
	// Exhausted reports that every attempt failed to yield a valid, unseen question.
	Exhausted bool
}

// Agent drives a Session: seed questions first, then generated follow-ups,
// then a summary.
type Agent struct {
	generator   ai.Generator
	seeds       []Question
	maxAttempts int
	logger      *zap.Logger
}

// AgentOption customises an Agent.
type AgentOption func(*Agent)

// WithSeedQuestions replaces the default seed list. An empty list starts
// sessions directly in generation.
func WithSeedQuestions(seeds []Question) AgentOption {
	return func(a *Agent) { a.seeds = append([]Question(nil), seeds...) }
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) AgentOption {
	return func(a *Agent) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// NewAgent creates an Agent backed by generator.
func NewAgent(generator ai.Generator, logger *zap.Logger, opts ...AgentOption) *Agent {
	a := &Agent{
		generator:   generator,
		seeds:       DefaultSeedQuestions(),
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.Named("QuestionnaireAgent"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SeedCount is the number of fixed questions asked before generation.
func (a *Agent) SeedCount() int { return len(a.seeds) }

// Next records answer (when non-empty) and produces the next question,
// mutating s. On error s may be partially updated and must be discarded.
//
// Unparsable output, duplicate titles and per-call timeouts consume an
// attempt. Any other generator error aborts and is returned.
func (a *Agent) Next(ctx context.Context, s *Session, answer string) (Result, error) {
	if answer != "" {
		s.recordAnswer(answer)
	}

	if s.Step < len(a.seeds) {
		q := a.seeds[s.Step]
		s.recordQuestion(q)
		questionsIssuedTotal.WithLabelValues("seed").Inc()
		return Result{Text: q.Text(), Question: &q}, nil
	}

	log := a.logger.With(zap.String("identity", s.Identity), zap.Int("step", s.Step))
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		prompt := followUpPrompt(s.Transcript, answer, s.IssuedTitles)
		raw, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			if errors.Is(err, ai.ErrGenerationTimeout) {
				generationAttemptsTotal.WithLabelValues("timeout").Inc()
				log.Warn("Generation attempt timed out", zap.Int("attempt", attempt), zap.Error(err))
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			return Result{}, fmt.Errorf("follow-up generation failed: %w", err)
		}

		q, ok := ParseQuestion(raw)
		if !ok {
			generationAttemptsTotal.WithLabelValues("parse_failure").Inc()
			log.Warn("Generated output failed format validation", zap.Int("attempt", attempt), zap.String("output", raw))
			continue
		}
		if s.IssuedTitles.Contains(q.Title) {
			generationAttemptsTotal.WithLabelValues("duplicate").Inc()
			log.Warn("Generated question repeats an issued title", zap.Int("attempt", attempt), zap.String("title", q.Title))
			continue
		}

		generationAttemptsTotal.WithLabelValues("accepted").Inc()
		questionsIssuedTotal.WithLabelValues("generated").Inc()
		s.recordQuestion(q)
		log.Debug("Follow-up question accepted", zap.Int("attempt", attempt), zap.String("title", q.Title))
		return Result{Text: q.Text(), Question: &q}, nil
	}

	questionsIssuedTotal.WithLabelValues("exhausted").Inc()
	log.Warn("Generation attempts exhausted", zap.Int("attempts", a.maxAttempts))
	return Result{Text: ExhaustedMessage, Exhausted: true}, nil
}

// Summarize asks the generator once for a leisure-activity recommendation
// based on the whole transcript. The output is returned as is.
func (a *Agent) Summarize(ctx context.Context, s *Session) (string, error) {
	out, err := a.generator.Generate(ctx, summaryPrompt(s.Transcript))
	if err != nil {
		summariesTotal.WithLabelValues("error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	summariesTotal.WithLabelValues("success").Inc()
	return out, nil
}
