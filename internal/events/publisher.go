package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// EventType represents the type of comanda event.
type EventType string

const (
	EventTypeComandaCreated       EventType = "comanda.created"
	EventTypeComandaStatusChanged EventType = "comanda.status_changed"
	EventTypeComandaPaga          EventType = "comanda.paga"
	EventTypeComandaCancelada     EventType = "comanda.cancelada"
)

// ComandaEvent is the envelope published for comanda lifecycle changes.
type ComandaEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	ComandaID string          `json:"comanda_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// KafkaPublisher publishes comanda events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logging.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ComandasTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// PublishComandaCreated publishes a comanda created event.
func (p *KafkaPublisher) PublishComandaCreated(ctx context.Context, c *models.Comanda) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeComandaCreated, c.ID, data)
}

// PublishComandaStatusChanged publishes a status change event.
func (p *KafkaPublisher) PublishComandaStatusChanged(ctx context.Context, c *models.Comanda, previous models.ComandaStatus) error {
	payload := struct {
		Comanda        *models.Comanda      `json:"comanda"`
		PreviousStatus models.ComandaStatus `json:"previous_status"`
		NewStatus      models.ComandaStatus `json:"new_status"`
	}{
		Comanda:        c,
		PreviousStatus: previous,
		NewStatus:      c.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	eventType := EventTypeComandaStatusChanged
	if c.Status == models.StatusCancelada {
		eventType = EventTypeComandaCancelada
	}
	return p.publish(ctx, eventType, c.ID, data)
}

// PublishComandaPaga publishes a paid-flag event.
func (p *KafkaPublisher) PublishComandaPaga(ctx context.Context, comandaID string, pago bool) error {
	data, err := json.Marshal(struct {
		Pago bool `json:"pago"`
	}{Pago: pago})
	if err != nil {
		return err
	}
	return p.publish(ctx, EventTypeComandaPaga, comandaID, data)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, comandaID string, data []byte) error {
	event := &ComandaEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		ComandaID: comandaID,
		Data:      data,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ComandaID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"comanda_id": event.ComandaID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"comanda_id": event.ComandaID,
	})
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher", nil)
	return p.writer.Close()
}
