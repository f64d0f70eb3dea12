package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"property-service/internal/constants"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

var routingKeys = map[domain.PropertyEventType]string{
	domain.PropertyCreated: constants.RoutingKeyPropertyCreated,
	domain.PropertyUpdated: constants.RoutingKeyPropertyUpdated,
	domain.PropertyDeleted: constants.RoutingKeyPropertyDeleted,
}

// RabbitMQPropertyEventsAdapter публикует события жизненного цикла объектов
type RabbitMQPropertyEventsAdapter struct {
	producer messagePublisher
}

func NewRabbitMQPropertyEventsAdapter(producer messagePublisher) (*RabbitMQPropertyEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &RabbitMQPropertyEventsAdapter{producer: producer}, nil
}

func (a *RabbitMQPropertyEventsAdapter) Publish(ctx context.Context, event domain.PropertyEvent) error {
	routingKey, ok := routingKeys[event.Type]
	if !ok {
		return fmt.Errorf("unknown property event type %q", event.Type)
	}

	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "RabbitMQPropertyEventsAdapter",
		"routing_key": routingKey,
		"property_id": event.PropertyID,
	})

	body, err := json.Marshal(toEventDTO(event))
	if err != nil {
		adapterLogger.Error("Failed to marshal property event to JSON", err, nil)
		return fmt.Errorf("failed to marshal %s: %w", event.Type, err)
	}

	if err := contracts.ValidateEvent(string(event.Type), constants.EventVersionV1, body); err != nil {
		adapterLogger.Error("Property event does not match its schema", err, nil)
		return fmt.Errorf("invalid %s: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"event-type":    string(event.Type),
			"event-version": constants.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish property event", err, nil)
		return err
	}

	adapterLogger.Info("Successfully published property event", port.Fields{"event_type": string(event.Type)})
	return nil
}

// NoopPropertyEvents используется, когда RabbitMQ выключен
type NoopPropertyEvents struct{}

func (NoopPropertyEvents) Publish(ctx context.Context, event domain.PropertyEvent) error {
	contextkeys.LoggerFromContext(ctx).Debug("Property events are disabled, dropping event", port.Fields{
		"event_type":  string(event.Type),
		"property_id": event.PropertyID,
	})
	return nil
}
