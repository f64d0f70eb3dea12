package usecase

import (
	"context"
	"fmt"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"strings"
)

type GetDescriptionUseCase struct {
	generator port.TextGeneratorPort
}

func NewGetDescriptionUseCase(generator port.TextGeneratorPort) *GetDescriptionUseCase {
	return &GetDescriptionUseCase{generator: generator}
}

func (uc *GetDescriptionUseCase) Execute(ctx context.Context, property domain.PropertyDescriptor) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetDescription",
		"name":     property.Name,
	})

	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(property.Name) == "" {
		return "", fmt.Errorf("%w: property name is required", domain.ErrInvalidInput)
	}
	if uc.generator == nil {
		return "", domain.ErrGeneratorDisabled
	}

	description, err := uc.generator.GenerateDescription(ctx, property)
	if err != nil {
		ucLogger.Error("Text generator returned an error", err, nil)
		return "", err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return description, nil
}
