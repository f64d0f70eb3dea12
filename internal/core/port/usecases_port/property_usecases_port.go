package usecases_port

import (
	"context"
	"property-service/internal/core/domain"
)

type AddPropertyUseCase interface {
	Execute(ctx context.Context, property domain.NewProperty) (*domain.Property, error)
}

type GetAllPropertiesUseCase interface {
	Execute(ctx context.Context) ([]domain.PropertyWithAddress, error)
}

type GetPropertyByIDUseCase interface {
	Execute(ctx context.Context, id int) (*domain.Property, error)
}

type GetPropertiesByOwnerUseCase interface {
	Execute(ctx context.Context, owner string) ([]domain.Property, error)
}

type GetPropertiesByIDsUseCase interface {
	Execute(ctx context.Context, ids []int) ([]domain.Property, error)
}

type UpdatePropertyUseCase interface {
	Execute(ctx context.Context, id int, update domain.PropertyUpdate) (*domain.Property, error)
}

type DeletePropertyUseCase interface {
	Execute(ctx context.Context, id int) (*domain.Property, error)
}
