package service

import (
	"context"
	"time"

	"mood-server/internal/messaging"
	"mood-server/internal/questionnaire"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionnaireService runs the questionnaire for signed-in users and
// announces finished sessions.
type QuestionnaireService interface {
	Start(ctx context.Context, userID uuid.UUID) (questionnaire.Result, error)
	Next(ctx context.Context, userID uuid.UUID, answer string) (questionnaire.Result, error)
	Summarize(ctx context.Context, userID uuid.UUID) (string, error)
}

var _ QuestionnaireService = (*questionnaireServiceImpl)(nil)

type questionnaireServiceImpl struct {
	registry *questionnaire.Registry
	events   messaging.EventPublisher
	logger   *zap.Logger
}

func NewQuestionnaireService(registry *questionnaire.Registry, events messaging.EventPublisher, logger *zap.Logger) QuestionnaireService {
	return &questionnaireServiceImpl{
		registry: registry,
		events:   events,
		logger:   logger.Named("QuestionnaireService"),
	}
}

func (s *questionnaireServiceImpl) Start(ctx context.Context, userID uuid.UUID) (questionnaire.Result, error) {
	return s.registry.Start(ctx, userID.String())
}

func (s *questionnaireServiceImpl) Next(ctx context.Context, userID uuid.UUID, answer string) (questionnaire.Result, error) {
	return s.registry.Next(ctx, userID.String(), answer)
}

func (s *questionnaireServiceImpl) Summarize(ctx context.Context, userID uuid.UUID) (string, error) {
	summary, session, err := s.registry.Summarize(ctx, userID.String())
	if err != nil {
		return "", err
	}

	event := messaging.QuestionnaireCompleted{
		UserID:         userID.String(),
		Steps:          session.Step,
		Recommendation: summary,
		CompletedAt:    time.Now().UTC(),
	}
	if err := s.events.PublishQuestionnaireCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish questionnaire completion", zap.Stringer("userID", userID), zap.Error(err))
	}
	return summary, nil
}
