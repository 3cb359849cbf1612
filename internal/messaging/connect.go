package messaging

import (
	"context"
	"fmt"
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Connect dials RabbitMQ, retrying up to maxRetries times.
func Connect(ctx context.Context, uri string, maxRetries int, retryDelay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	logger.Info("Attempting to connect to RabbitMQ",
		zap.String("url", maskURL(uri)),
		zap.Int("max_retries", maxRetries),
		zap.Duration("retry_delay", retryDelay),
	)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ", zap.Int("attempt", attempt))
			go func() {
				notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				} else {
					logger.Info("RabbitMQ connection closed gracefully")
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

func maskURL(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "invalid-url"
	}
	if u.User != nil {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
