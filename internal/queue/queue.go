package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/stakeworks/stake-ledger/internal/config"
	"github.com/stakeworks/stake-ledger/internal/observability/metrics"
	"github.com/stakeworks/stake-ledger/internal/types"
)

// QueueManager publishes staking events to a durable RabbitMQ queue
// consumed by downstream services.
type QueueManager struct {
	connection     *amqp.Connection
	channel        *amqp.Channel
	queueName      string
	publishTimeout time.Duration
	logger         *zap.Logger
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	connection, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the queue: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.QueueName, err)
	}

	return &QueueManager{
		connection:     connection,
		channel:        channel,
		queueName:      cfg.QueueName,
		publishTimeout: cfg.PublishTimeout,
		logger:         logger.With(zap.String("module", "queue")),
	}, nil
}

func (qm *QueueManager) PublishStakingEvent(ctx context.Context, event *types.StakingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal staking event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, qm.publishTimeout)
	defer cancel()

	messageID := uuid.NewString()
	err = qm.channel.PublishWithContext(
		publishCtx,
		"",           // default exchange
		qm.queueName, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
		},
	)
	if err != nil {
		qm.logger.Error("failed to publish staking event",
			zap.String("event_type", string(event.EventType)),
			zap.String("account", event.Account),
			zap.Error(err),
		)
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish staking event: %w", err)
	}

	qm.logger.Debug("published staking event",
		zap.String("event_type", string(event.EventType)),
		zap.String("account", event.Account),
		zap.String("message_id", messageID),
	)
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	if err := qm.channel.Close(); err != nil {
		qm.logger.Error("failed to close the channel", zap.Error(err))
	}
	if err := qm.connection.Close(); err != nil {
		qm.logger.Error("failed to close the connection", zap.Error(err))
	}
	qm.logger.Info("queue manager stopped")
}
