package port

import (
	"context"
	"property-service/internal/core/domain"
)

type PropertyStoragePort interface {
	// Create назначает следующий последовательный ID и сохраняет объект
	Create(ctx context.Context, property domain.NewProperty) (*domain.Property, error)
	FindAll(ctx context.Context) ([]domain.Property, error)
	FindByID(ctx context.Context, id int) (*domain.Property, error)
	FindByOwner(ctx context.Context, owner string) ([]domain.Property, error)
	FindByIDs(ctx context.Context, ids []int) ([]domain.Property, error)
	Update(ctx context.Context, id int, update domain.PropertyUpdate) (*domain.Property, error)
	Delete(ctx context.Context, id int) (*domain.Property, error)
}
