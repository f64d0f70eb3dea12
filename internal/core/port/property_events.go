package port

import (
	"context"
	"property-service/internal/core/domain"
)

type PropertyEventsPort interface {
	Publish(ctx context.Context, event domain.PropertyEvent) error
}
