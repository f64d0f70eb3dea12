package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type GetAnswerUseCase interface {
	Execute(ctx context.Context, query string, history []domain.ChatMessage) (string, error)
}

type GetDescriptionUseCase interface {
	Execute(ctx context.Context, property domain.PropertyDescriptor) (string, error)
}

type GetComparisonUseCase interface {
	Execute(ctx context.Context, properties []domain.PropertyDescriptor) (string, error)
}
