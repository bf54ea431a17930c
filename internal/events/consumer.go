package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/metrics"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// PaymentEventType represents the type of gateway payment event.
type PaymentEventType string

const (
	PaymentEventConfirmed PaymentEventType = "payment.confirmed"
	PaymentEventFailed    PaymentEventType = "payment.failed"
	PaymentEventExpired   PaymentEventType = "payment.expired"
)

// PaymentEvent is a payment-gateway event consumed from the payments topic.
type PaymentEvent struct {
	ID         string           `json:"id"`
	Type       PaymentEventType `json:"type"`
	CheckoutID string           `json:"checkout_id"`
	ComandaID  string           `json:"comanda_id"`
	Status     string           `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`
}

// PaymentApplier applies a confirmed or failed gateway payment to the
// comanda it belongs to.
type PaymentApplier interface {
	ApplyGatewayPayment(ctx context.Context, comandaID, checkoutID string, confirmed bool) error
}

// KafkaConsumer consumes payment-gateway events from Kafka.
type KafkaConsumer struct {
	reader  *kafka.Reader
	applier PaymentApplier
	logger  *logging.Logger
	stopCh  chan struct{}
}

// NewKafkaConsumer creates a new Kafka-based payment event consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, applier PaymentApplier, logger *logging.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.PaymentsTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader:  reader,
		applier: applier,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start begins consuming events until the context is cancelled or Stop is
// called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting payment event consumer", nil)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Payment event consumer stopped", nil)
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}
			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var event PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal payment event", logging.Fields{"error": err.Error()})
		return
	}

	metrics.PaymentEvents.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case PaymentEventConfirmed:
		c.apply(ctx, &event, true)
	case PaymentEventFailed, PaymentEventExpired:
		c.apply(ctx, &event, false)
	default:
		c.logger.Debug("Ignoring unknown payment event type", logging.Fields{"type": event.Type})
	}
}

func (c *KafkaConsumer) apply(ctx context.Context, event *PaymentEvent, confirmed bool) {
	c.logger.Info("Applying gateway payment event", logging.Fields{
		"event_id":    event.ID,
		"comanda_id":  event.ComandaID,
		"checkout_id": event.CheckoutID,
		"confirmed":   confirmed,
	})

	if err := c.applier.ApplyGatewayPayment(ctx, event.ComandaID, event.CheckoutID, confirmed); err != nil {
		c.logger.Error("Failed to apply gateway payment", logging.Fields{
			"comanda_id": event.ComandaID,
			"error":      err.Error(),
		})
	}
}
