package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// MailDispatcher hands outgoing mail to whatever delivers it.
type MailDispatcher interface {
	DispatchVerificationMail(ctx context.Context, mail VerificationMail) error
}

// EventPublisher broadcasts questionnaire lifecycle events.
type EventPublisher interface {
	PublishQuestionnaireCompleted(ctx context.Context, event QuestionnaireCompleted) error
}

// rabbitMQPublisher publishes JSON messages to one durable fanout exchange.
type rabbitMQPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func newRabbitMQPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (*rabbitMQPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}
	logger.Info("Exchange declared", zap.String("exchange", exchange))
	return &rabbitMQPublisher{ch: ch, exchange: exchange, logger: logger}, nil
}

func (p *rabbitMQPublisher) publish(ctx context.Context, messageType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", messageType, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		"",         // routing key, unused for fanout
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Type:         messageType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish message", zap.String("type", messageType), zap.Error(err))
		return fmt.Errorf("failed to publish %s: %w", messageType, err)
	}
	p.logger.Debug("Message published", zap.String("type", messageType))
	return nil
}

func (p *rabbitMQPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

// RabbitMQMailDispatcher queues verification mail on the mail exchange.
type RabbitMQMailDispatcher struct {
	*rabbitMQPublisher
}

var _ MailDispatcher = (*RabbitMQMailDispatcher)(nil)

func NewRabbitMQMailDispatcher(conn *amqp.Connection, exchange string, logger *zap.Logger) (*RabbitMQMailDispatcher, error) {
	p, err := newRabbitMQPublisher(conn, exchange, logger.Named("MailDispatcher"))
	if err != nil {
		return nil, err
	}
	return &RabbitMQMailDispatcher{p}, nil
}

func (d *RabbitMQMailDispatcher) DispatchVerificationMail(ctx context.Context, mail VerificationMail) error {
	return d.publish(ctx, "verification_mail", mail)
}

// RabbitMQEventPublisher broadcasts questionnaire events.
type RabbitMQEventPublisher struct {
	*rabbitMQPublisher
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (*RabbitMQEventPublisher, error) {
	p, err := newRabbitMQPublisher(conn, exchange, logger.Named("EventPublisher"))
	if err != nil {
		return nil, err
	}
	return &RabbitMQEventPublisher{p}, nil
}

func (e *RabbitMQEventPublisher) PublishQuestionnaireCompleted(ctx context.Context, event QuestionnaireCompleted) error {
	return e.publish(ctx, "questionnaire_completed", event)
}

// LogPublisher stands in for the broker when none is configured: mail and
// events are only written to the log.
type LogPublisher struct {
	logger *zap.Logger
}

var (
	_ MailDispatcher = (*LogPublisher)(nil)
	_ EventPublisher = (*LogPublisher)(nil)
)

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("LogPublisher")}
}

func (l *LogPublisher) DispatchVerificationMail(_ context.Context, mail VerificationMail) error {
	l.logger.Info("Verification mail (no broker configured)",
		zap.String("to", mail.To),
		zap.String("verifyURL", mail.VerifyURL),
		zap.Time("expiresAt", mail.ExpiresAt),
	)
	return nil
}

func (l *LogPublisher) PublishQuestionnaireCompleted(_ context.Context, event QuestionnaireCompleted) error {
	l.logger.Info("Questionnaire completed",
		zap.String("userID", event.UserID),
		zap.Int("steps", event.Steps),
	)
	return nil
}
