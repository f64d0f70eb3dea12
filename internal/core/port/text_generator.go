package port

import (
	"context"
	"property-service/internal/core/domain"
)

type TextGeneratorPort interface {
	GenerateAnswer(ctx context.Context, query string, history []domain.ChatMessage) (string, error)
	GenerateDescription(ctx context.Context, property domain.PropertyDescriptor) (string, error)
	GenerateComparison(ctx context.Context, properties []domain.PropertyDescriptor) (string, error)
}
