package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ для событий активности
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

var (
	_ ports.ActivityPublisher = (*Client)(nil)
	_ ports.ActivityConsumer  = (*Client)(nil)
)

// NewClient подключается к RabbitMQ и объявляет очередь событий.
func NewClient(cfg config.RabbitMQConfig, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// идемпотентно: очередь создаётся, только если её нет
	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	logger.Info("rabbitmq connected", "queue", q.Name, "messages", q.Messages)
	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Warn("error closing RabbitMQ connection", "error", err)
		}
	}
	c.logger.Info("rabbitmq connection closed")
}

// PublishActivity публикует событие активности в очередь.
func (c *Client) PublishActivity(ctx context.Context, payload payloads.ActivityPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    payload.At,
			Type:         string(payload.Kind),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	c.logger.Debug("activity published", "queue", c.queue.Name, "kind", payload.Kind, "photo_id", payload.PhotoID)
	return nil
}

// StartConsumingActivities начинает потребление событий; обработка идёт в отдельной горутине
// до отмены ctx или закрытия канала. Канал done закрывается при выходе горутины.
func (c *Client) StartConsumingActivities(ctx context.Context, handler func(context.Context, payloads.ActivityPayload) error) (<-chan struct{}, error) {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Error("rabbitmq channel closed, stopping consumer")
					return
				}
				handleDelivery(ctx, c.logger, msg, handler)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping rabbitmq consumer")
				return
			}
		}
	}()

	return done, nil
}

// handleDelivery: битое сообщение отклоняется без возврата в очередь,
// ошибка обработчика возвращает сообщение в очередь.
func handleDelivery(ctx context.Context, logger *slog.Logger, msg amqp.Delivery, handler func(context.Context, payloads.ActivityPayload) error) {
	var payload payloads.ActivityPayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logger.Error("error unmarshalling message", "error", err, "body", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			logger.Error("error NACKing message after unmarshal failure", "error", err)
		}
		return
	}

	if err := handler(ctx, payload); err != nil {
		logger.Error("error processing message", "error", err, "kind", payload.Kind)
		if err := msg.Nack(false, true); err != nil {
			logger.Error("error NACKing message after processing failure", "error", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("error ACKing message", "error", err)
	}
}
