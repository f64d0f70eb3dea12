package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"strings"
)

type GetPropertiesByOwnerUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertiesByOwnerUseCase(storage port.PropertyStoragePort) *GetPropertiesByOwnerUseCase {
	return &GetPropertiesByOwnerUseCase{storage: storage}
}

func (uc *GetPropertiesByOwnerUseCase) Execute(ctx context.Context, owner string) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetPropertiesByOwner",
		"owner":    owner,
	})

	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}

	properties, err := uc.storage.FindByOwner(ctx, owner)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(properties)})
	return properties, nil
}
