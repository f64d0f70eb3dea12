package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
)

const MaxComparedProperties = 10

type GetComparisonUseCase struct {
	generator port.TextGeneratorPort
}

func NewGetComparisonUseCase(generator port.TextGeneratorPort) *GetComparisonUseCase {
	return &GetComparisonUseCase{generator: generator}
}

func (uc *GetComparisonUseCase) Execute(ctx context.Context, properties []domain.PropertyDescriptor) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetComparison",
		"properties": len(properties),
	})

	ucLogger.Info("Use case started", nil)

	if len(properties) < 2 {
		return "", fmt.Errorf("%w: at least two properties are required for comparison", domain.ErrInvalidInput)
	}
	if len(properties) > MaxComparedProperties {
		return "", fmt.Errorf("%w: at most %d properties can be compared", domain.ErrInvalidInput, MaxComparedProperties)
	}
	if uc.generator == nil {
		return "", domain.ErrGeneratorDisabled
	}

	comparison, err := uc.generator.GenerateComparison(ctx, properties)
	if err != nil {
		ucLogger.Error("Text generator returned an error", err, nil)
		return "", err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return comparison, nil
}
