package usecase

import (
	"context"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

type GetPropertyByIDUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyByIDUseCase(storage port.PropertyStoragePort) *GetPropertyByIDUseCase {
	return &GetPropertyByIDUseCase{storage: storage}
}

func (uc *GetPropertyByIDUseCase) Execute(ctx context.Context, id int) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyByID",
		"property_id": id,
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.storage.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}
