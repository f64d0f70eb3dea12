package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"time"
)

type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
	events  port.PropertyEventsPort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort, events port.PropertyEventsPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage, events: events}
}

// Execute не проверяет существование заранее: хранилище само вернет ErrPropertyNotFound
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id int, update domain.PropertyUpdate) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	if update.Location != nil {
		if _, _, err := domain.ParseLocation(*update.Location); err != nil {
			return nil, err
		}
	}
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}

	updated, err := uc.storage.Update(ctx, id, update)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	// пустое обновление ничего не меняет, событие не нужно
	if !update.IsEmpty() {
		publishEvent(ctx, uc.events, ucLogger, domain.PropertyEvent{
			Type:       domain.PropertyUpdated,
			PropertyID: updated.ID,
			OccurredAt: time.Now().UTC(),
			Property:   updated,
			Owner:      updated.Owner,
		})
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}
