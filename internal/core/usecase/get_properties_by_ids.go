package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

// MaxIDsPerRequest ограничивает размер выборки по списку ID
const MaxIDsPerRequest = 100

type GetPropertiesByIDsUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertiesByIDsUseCase(storage port.PropertyStoragePort) *GetPropertiesByIDsUseCase {
	return &GetPropertiesByIDsUseCase{storage: storage}
}

func (uc *GetPropertiesByIDsUseCase) Execute(ctx context.Context, ids []int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetPropertiesByIDs",
		"ids_amount": len(ids),
	})

	ucLogger.Info("Use case started", nil)

	if len(ids) > MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: too many ids requested, max %d", domain.ErrInvalidInput, MaxIDsPerRequest)
	}
	for _, id := range ids {
		if !domain.IsValidPropertyID(id) {
			return nil, fmt.Errorf("%w: property id %d is out of range", domain.ErrInvalidInput, id)
		}
	}
	if len(ids) == 0 {
		ucLogger.Info("Received empty list of IDs, returning empty result.", nil)
		return []domain.Property{}, nil
	}

	properties, err := uc.storage.FindByIDs(ctx, ids)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(properties)})
	return properties, nil
}
