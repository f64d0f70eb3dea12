package usecase

import (
	"context"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"time"
)

type DeletePropertyUseCase struct {
	storage port.PropertyStoragePort
	events  port.PropertyEventsPort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort, events port.PropertyEventsPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage, events: events}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id int) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	deleted, err := uc.storage.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	publishEvent(ctx, uc.events, ucLogger, domain.PropertyEvent{
		Type:       domain.PropertyDeleted,
		PropertyID: deleted.ID,
		OccurredAt: time.Now().UTC(),
		Owner:      deleted.Owner,
	})

	ucLogger.Info("Use case finished successfully", nil)
	return deleted, nil
}
