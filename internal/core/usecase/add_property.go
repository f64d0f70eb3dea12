package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"strings"
	"time"
)

type AddPropertyUseCase struct {
	storage port.PropertyStoragePort
	events  port.PropertyEventsPort
}

func NewAddPropertyUseCase(storage port.PropertyStoragePort, events port.PropertyEventsPort) *AddPropertyUseCase {
	return &AddPropertyUseCase{storage: storage, events: events}
}

func (uc *AddPropertyUseCase) Execute(ctx context.Context, property domain.NewProperty) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "AddProperty",
		"owner":    property.Owner,
	})

	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(property.Owner) == "" || strings.TrimSpace(property.Name) == "" {
		return nil, fmt.Errorf("%w: owner and name are required", domain.ErrInvalidInput)
	}
	if _, _, err := domain.ParseLocation(property.Location); err != nil {
		ucLogger.Warn("Rejected property with invalid location", port.Fields{"location": property.Location})
		return nil, err
	}

	created, err := uc.storage.Create(ctx, property)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	publishEvent(ctx, uc.events, ucLogger, domain.PropertyEvent{
		Type:       domain.PropertyCreated,
		PropertyID: created.ID,
		OccurredAt: time.Now().UTC(),
		Property:   created,
		Owner:      created.Owner,
	})

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": created.ID})
	return created, nil
}

// publishEvent не валит операцию: запись уже закоммичена, событие - best effort
func publishEvent(ctx context.Context, events port.PropertyEventsPort, logger port.LoggerPort, event domain.PropertyEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish property event", err, port.Fields{
			"event_type":  string(event.Type),
			"property_id": event.PropertyID,
		})
	}
}
