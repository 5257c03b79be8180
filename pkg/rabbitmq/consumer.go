package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc обрабатывает одно сообщение. Ошибка приводит к nack без
// повторной постановки в очередь (poison message не должен зациклить поток).
type HandlerFunc func(ctx context.Context, body []byte) error

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	URL          string
	QueueName    string
	DurableQueue bool
	DeclareQueue bool
	// Настройки привязки очереди к обменнику (если ExchangeName пуст — без привязки)
	ExchangeName    string
	ExchangeType    string
	DeclareExchange bool
	RoutingKey      string
	// Настройки QoS
	PrefetchCount int
	ConsumerTag   string

	Logger Logger
}

// Consumer потребляет сообщения одной очереди и передает их в обработчик.
type Consumer struct {
	config     ConsumerConfig
	connection *amqp.Connection
	channel    *amqp.Channel

	Logger Logger
}

// NewConsumer устанавливает соединение и настраивает сущности RabbitMQ.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = NewNoopLogger()
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("consumer: RabbitMQ URL is required")
	}
	if cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("consumer: failed to open a channel: %w", err)
	}

	c := &Consumer{
		config:     cfg,
		connection: conn,
		channel:    ch,
		Logger:     logger,
	}

	if err := c.setup(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// setup объявляет очередь, обменник и привязку согласно конфигурации.
func (c *Consumer) setup() error {
	cfg := c.config

	if cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("consumer: failed to set QoS: %w", err)
		}
	}

	if cfg.DeclareExchange && cfg.ExchangeName != "" {
		if cfg.ExchangeType == "" {
			return fmt.Errorf("consumer: exchange type is required when declaring exchange %q", cfg.ExchangeName)
		}
		err := c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare exchange %q: %w", cfg.ExchangeName, err)
		}
	}

	if cfg.DeclareQueue {
		_, err := c.channel.QueueDeclare(cfg.QueueName, cfg.DurableQueue, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to declare queue %q: %w", cfg.QueueName, err)
		}
	}

	if cfg.ExchangeName != "" {
		err := c.channel.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.ExchangeName, false, nil)
		if err != nil {
			return fmt.Errorf("consumer: failed to bind queue %q to %q: %w", cfg.QueueName, cfg.ExchangeName, err)
		}
	}

	c.Logger.Debug("Consumer topology ready", "queue", cfg.QueueName, "exchange", cfg.ExchangeName, "routing_key", cfg.RoutingKey)
	return nil
}

// Start блокирует и обрабатывает сообщения до отмены контекста
// или закрытия канала доставки.
func (c *Consumer) Start(ctx context.Context, handler HandlerFunc) error {
	deliveries, err := c.channel.Consume(
		c.config.QueueName,
		c.config.ConsumerTag,
		false, // auto-ack выключен, подтверждаем вручную
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming from %q: %w", c.config.QueueName, err)
	}

	c.Logger.Info("Consumer started", "queue", c.config.QueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Consumer context cancelled, stopping", "queue", c.config.QueueName)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("consumer: delivery channel for %q closed unexpectedly", c.config.QueueName)
			}

			if err := handler(ctx, d.Body); err != nil {
				c.Logger.Error("Handler failed, discarding message", "queue", c.config.QueueName, "error", err)
				if nackErr := d.Nack(false, false); nackErr != nil {
					c.Logger.Error("Failed to nack message", "error", nackErr)
				}
				continue
			}

			if ackErr := d.Ack(false); ackErr != nil {
				c.Logger.Error("Failed to ack message", "error", ackErr)
			}
		}
	}
}

// Close закрывает канал и соединение.
func (c *Consumer) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
